package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)

	c, err := New("key")
	require.NoError(t, err)
	assert.NotNil(t, c)
}

// newMockTMDB returns a client pointed at a recording mock server.
func newMockTMDB(t *testing.T, handler http.HandlerFunc) (*Client, *[]*http.Request) {
	t.Helper()
	var seen []*http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := New("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c, &seen
}

func TestDiscoverMovieQuery(t *testing.T) {
	c, seen := newMockTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Page{
			Page:    2,
			Results: []Item{{ID: 1, Title: "Movie", OriginalLanguage: "hi"}},
		})
	})

	page, err := c.Discover(context.Background(), DiscoverQuery{
		Kind:     KindMovie,
		Language: "hi",
		Region:   "IN",
		MinVotes: 5,
		MaxDate:  "2025-06-01",
		Page:     2,
	})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Movie", page.Results[0].Title)

	require.Len(t, *seen, 1)
	r := (*seen)[0]
	assert.Equal(t, "/discover/movie", r.URL.Path)
	q := r.URL.Query()
	assert.Equal(t, "test-key", q.Get("api_key"))
	assert.Equal(t, "hi", q.Get("with_original_language"))
	assert.Equal(t, "IN", q.Get("region"))
	assert.Equal(t, "5", q.Get("vote_count.gte"))
	assert.Equal(t, "primary_release_date.desc", q.Get("sort_by"))
	assert.Equal(t, "2025-06-01", q.Get("primary_release_date.lte"))
	assert.Equal(t, "2", q.Get("page"))
}

func TestDiscoverSeriesQuery(t *testing.T) {
	c, seen := newMockTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Page{})
	})

	_, err := c.Discover(context.Background(), DiscoverQuery{
		Kind:     KindSeries,
		Language: "hi",
		MaxDate:  "2025-06-01",
		Page:     1,
	})
	require.NoError(t, err)

	r := (*seen)[0]
	assert.Equal(t, "/discover/tv", r.URL.Path)
	q := r.URL.Query()
	assert.Equal(t, "first_air_date.desc", q.Get("sort_by"))
	assert.Equal(t, "2025-06-01", q.Get("first_air_date.lte"))
	assert.Empty(t, q.Get("region"))
	assert.Empty(t, q.Get("vote_count.gte"))
}

func TestSearch(t *testing.T) {
	c, seen := newMockTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Page{Results: []Item{{ID: 9, Title: "Found"}}})
	})

	page, err := c.Search(context.Background(), KindMovie, "sholay deewar", 3)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)

	r := (*seen)[0]
	assert.Equal(t, "/search/movie", r.URL.Path)
	assert.Equal(t, "sholay deewar", r.URL.Query().Get("query"))
	assert.Equal(t, "3", r.URL.Query().Get("page"))
}

func TestDetailAppendsSubResources(t *testing.T) {
	c, seen := newMockTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"id": 42,
			"title": "Movie",
			"original_language": "hi",
			"translations": {"translations": [{"iso_639_1": "ta"}]},
			"release_dates": {"results": [{"iso_3166_1": "IN"}]}
		}`))
	})

	d, err := c.Detail(context.Background(), KindMovie, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), d.ID)
	assert.True(t, d.HasTranslation("ta"))
	assert.False(t, d.HasTranslation("en"))
	assert.True(t, d.HasTerritoryRelease("IN"))
	assert.False(t, d.HasTerritoryRelease("US"))

	r := (*seen)[0]
	assert.Equal(t, "/movie/42", r.URL.Path)
	assert.Equal(t, "translations,release_dates,credits", r.URL.Query().Get("append_to_response"))
}

func TestDetailSeriesUsesContentRatings(t *testing.T) {
	c, seen := newMockTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"id": 7,
			"name": "Show",
			"content_ratings": {"results": [{"iso_3166_1": "IN"}]}
		}`))
	})

	d, err := c.Detail(context.Background(), KindSeries, 7)
	require.NoError(t, err)
	assert.True(t, d.HasTerritoryRelease("IN"))

	r := (*seen)[0]
	assert.Equal(t, "/tv/7", r.URL.Path)
	assert.Equal(t, "translations,content_ratings,credits", r.URL.Query().Get("append_to_response"))
}

func TestExternalIDs(t *testing.T) {
	c, seen := newMockTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"imdb_id": "tt0076221"}`))
	})

	ids, err := c.ExternalIDs(context.Background(), KindMovie, 860)
	require.NoError(t, err)
	assert.Equal(t, "tt0076221", ids.IMDBID)
	assert.Equal(t, "/movie/860/external_ids", (*seen)[0].URL.Path)
}

func TestNon200IsAnError(t *testing.T) {
	c, _ := newMockTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status_message":"invalid key"}`, http.StatusUnauthorized)
	})

	_, err := c.Discover(context.Background(), DiscoverQuery{Kind: KindMovie, Language: "hi", Page: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestItemAccessors(t *testing.T) {
	movie := Item{Title: "Dangal", ReleaseDate: "2016-12-23"}
	assert.Equal(t, "Dangal", movie.DisplayTitle())
	assert.Equal(t, "2016-12-23", movie.Released())

	show := Item{Name: "Sacred Games", FirstAirDate: "2018-07-06"}
	assert.Equal(t, "Sacred Games", show.DisplayTitle())
	assert.Equal(t, "2018-07-06", show.Released())

	assert.Empty(t, Item{}.Released())
}
