package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/cinedesi/addon/tmdb"
)

// fakeSource is the in-memory upstream used across the package tests.
// Pages are keyed by language and page number, details and external ids
// by item id; call counts verify caching behavior.
type fakeSource struct {
	mu sync.Mutex

	discoverPages map[string][]tmdb.Item
	discoverErr   map[string]error
	discoverCalls []tmdb.DiscoverQuery

	searchPages map[string][]tmdb.Item
	searchErr   error
	searchCalls int

	details     map[int64]*tmdb.Detail
	detailErr   map[int64]error
	detailCalls map[int64]int

	imdb          map[int64]string
	externalErr   map[int64]error
	externalCalls map[int64]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		discoverPages: make(map[string][]tmdb.Item),
		discoverErr:   make(map[string]error),
		searchPages:   make(map[string][]tmdb.Item),
		details:       make(map[int64]*tmdb.Detail),
		detailErr:     make(map[int64]error),
		detailCalls:   make(map[int64]int),
		imdb:          make(map[int64]string),
		externalErr:   make(map[int64]error),
		externalCalls: make(map[int64]int),
	}
}

func pageKey(lang string, page int) string {
	return fmt.Sprintf("%s:%d", lang, page)
}

func (f *fakeSource) setPage(lang string, page int, items ...tmdb.Item) {
	f.discoverPages[pageKey(lang, page)] = items
}

func (f *fakeSource) Discover(_ context.Context, q tmdb.DiscoverQuery) (*tmdb.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.discoverCalls = append(f.discoverCalls, q)
	key := pageKey(q.Language, q.Page)
	if err := f.discoverErr[key]; err != nil {
		return nil, err
	}
	return &tmdb.Page{Page: q.Page, Results: f.discoverPages[key]}, nil
}

func (f *fakeSource) Search(_ context.Context, _, query string, page int) (*tmdb.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &tmdb.Page{Page: page, Results: f.searchPages[pageKey(query, page)]}, nil
}

func (f *fakeSource) Detail(_ context.Context, _ string, id int64) (*tmdb.Detail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.detailCalls[id]++
	if err := f.detailErr[id]; err != nil {
		return nil, err
	}
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return &tmdb.Detail{}, nil
}

func (f *fakeSource) ExternalIDs(_ context.Context, _ string, id int64) (tmdb.ExternalIDs, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.externalCalls[id]++
	if err := f.externalErr[id]; err != nil {
		return tmdb.ExternalIDs{}, err
	}
	return tmdb.ExternalIDs{IMDBID: f.imdb[id]}, nil
}

// discoveredLanguages lists the languages queried, in call order.
func (f *fakeSource) discoveredLanguages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	langs := make([]string, 0, len(f.discoverCalls))
	for _, q := range f.discoverCalls {
		langs = append(langs, q.Language)
	}
	return langs
}

// item builds a representable raw item: the id doubles as the IMDb
// mapping key the tests register.
func item(id int64, lang, date string) tmdb.Item {
	return tmdb.Item{
		ID:               id,
		Title:            fmt.Sprintf("Movie %d", id),
		OriginalLanguage: lang,
		ReleaseDate:      date,
		PosterPath:       fmt.Sprintf("/poster-%d.jpg", id),
		VoteAverage:      7.2,
	}
}
