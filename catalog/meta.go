package catalog

import (
	"fmt"

	"github.com/cinedesi/addon/tmdb"
)

// Meta is the formatted, externally-addressable form of an item as the
// addon serves it. ID is the IMDb id.
type Meta struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Poster      string `json:"poster"`
	Background  string `json:"background,omitempty"`
	Description string `json:"description,omitempty"`
	ReleaseInfo string `json:"releaseInfo,omitempty"`
	IMDbRating  string `json:"imdbRating,omitempty"`
	Language    string `json:"language,omitempty"`
}

const (
	posterSize   = "w500"
	backdropSize = "w1280"
)

// MetaType maps an upstream kind onto the addon's content type.
func MetaType(kind string) string {
	if kind == tmdb.KindSeries {
		return "series"
	}
	return "movie"
}

// KindFor is the inverse of MetaType: it maps an addon content type to
// the upstream kind.
func KindFor(metaType string) (string, bool) {
	switch metaType {
	case "movie":
		return tmdb.KindMovie, true
	case "series":
		return tmdb.KindSeries, true
	}
	return "", false
}

// languageNames labels the language codes the shipped catalogs use.
// Unknown codes fall through as-is.
var languageNames = map[string]string{
	"hi": "Hindi",
	"ta": "Tamil",
	"te": "Telugu",
	"ml": "Malayalam",
	"kn": "Kannada",
	"bn": "Bengali",
	"mr": "Marathi",
	"pa": "Punjabi",
	"gu": "Gujarati",
	"en": "English",
}

func languageLabel(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// formatMeta builds the served representation of a raw item. ok is
// false when the item has no valid external presentation: no poster, or
// no IMDb id supplied by the caller.
func formatMeta(item tmdb.Item, kind, imdbID string) (Meta, bool) {
	if imdbID == "" || item.PosterPath == "" {
		return Meta{}, false
	}

	m := Meta{
		ID:          imdbID,
		Type:        MetaType(kind),
		Name:        item.DisplayTitle(),
		Poster:      fmt.Sprintf("%s/%s%s", tmdb.ImageBaseURL, posterSize, item.PosterPath),
		Description: item.Overview,
		ReleaseInfo: releaseInfo(item.Released()),
		Language:    languageLabel(item.OriginalLanguage),
	}
	if item.BackdropPath != "" {
		m.Background = fmt.Sprintf("%s/%s%s", tmdb.ImageBaseURL, backdropSize, item.BackdropPath)
	}
	if item.VoteAverage > 0 {
		m.IMDbRating = fmt.Sprintf("%.1f", item.VoteAverage)
	}
	return m, true
}

// releaseInfo reduces a YYYY-MM-DD date to its year; partial or odd
// dates pass through unchanged.
func releaseInfo(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return date
}
