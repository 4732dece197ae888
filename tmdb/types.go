package tmdb

// Item kinds understood by the API. They double as the path segments
// TMDB uses ("movie", "tv").
const (
	KindMovie  = "movie"
	KindSeries = "tv"
)

// Item is one raw catalog record as TMDB returns it from discover and
// search. Movie and series payloads differ in a few field names (title
// vs name, release_date vs first_air_date); both sets are declared and
// the accessor methods pick whichever is populated.
type Item struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	OriginalLanguage string  `json:"original_language"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	Overview         string  `json:"overview"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
}

// DisplayTitle returns the movie title or series name.
func (i Item) DisplayTitle() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Name
}

// Released returns the release date (movie) or first air date (series),
// possibly empty. YYYY-MM-DD when present.
func (i Item) Released() string {
	if i.ReleaseDate != "" {
		return i.ReleaseDate
	}
	return i.FirstAirDate
}

// Page is one page of discover/search results.
type Page struct {
	Page         int    `json:"page"`
	Results      []Item `json:"results"`
	TotalPages   int    `json:"total_pages"`
	TotalResults int    `json:"total_results"`
}

// Translation is one localized translation record on a detail response.
type Translation struct {
	ISO639_1  string `json:"iso_639_1"`
	ISO3166_1 string `json:"iso_3166_1"`
}

// Translations wraps the translations list from append_to_response.
type Translations struct {
	Translations []Translation `json:"translations"`
}

// TerritoryEntry is one per-country group in release_dates (movies) or
// content_ratings (series); only the country tag matters here.
type TerritoryEntry struct {
	ISO3166_1 string `json:"iso_3166_1"`
}

// TerritoryResults wraps a per-country results list.
type TerritoryResults struct {
	Results []TerritoryEntry `json:"results"`
}

// Detail is a full item record with the appended sub-resources the
// classifier needs. ReleaseDates is populated for movies,
// ContentRatings for series.
type Detail struct {
	Item
	Translations   Translations     `json:"translations"`
	ReleaseDates   TerritoryResults `json:"release_dates"`
	ContentRatings TerritoryResults `json:"content_ratings"`
}

// HasTranslation reports whether a translation in the given language
// exists on the record.
func (d *Detail) HasTranslation(lang string) bool {
	for _, t := range d.Translations.Translations {
		if t.ISO639_1 == lang {
			return true
		}
	}
	return false
}

// HasTerritoryRelease reports whether the record carries a release date
// group (movie) or content rating (series) tagged to the country.
func (d *Detail) HasTerritoryRelease(country string) bool {
	for _, r := range d.ReleaseDates.Results {
		if r.ISO3166_1 == country {
			return true
		}
	}
	for _, r := range d.ContentRatings.Results {
		if r.ISO3166_1 == country {
			return true
		}
	}
	return false
}

// ExternalIDs holds the cross-site identifiers for an item. Only the
// IMDb id is consumed; it is empty when TMDB has no mapping.
type ExternalIDs struct {
	IMDBID string `json:"imdb_id"`
}
