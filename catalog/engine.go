package catalog

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinedesi/addon/cache"
	"github.com/cinedesi/addon/tmdb"
)

// Engine defaults.
const (
	// PageLength is the fixed length a composite page is truncated to.
	PageLength = 20

	// FanoutFloor is the accumulated item count below which the engine
	// keeps querying secondary languages.
	FanoutFloor = 25

	// pageCacheTTL holds a formatted result page.
	pageCacheTTL = 6 * time.Hour
)

// Options tunes the engine. Zero values select the defaults above;
// ClassifySearch controls whether search results inside a
// language-scoped catalog go through the classifier.
type Options struct {
	PageLength     int
	FanoutFloor    int
	PageTTL        time.Duration
	ClassifySearch bool
}

// Engine assembles catalog pages: it translates the client offset to an
// upstream page, issues the discover/search queries, classifies and
// merges composite results, resolves IMDb ids, and caches the formatted
// page. Every failure path degrades to an empty, well-formed list.
type Engine struct {
	source     Source
	store      cache.Store
	sizes      *PageSizes
	resolver   *Resolver
	classifier *Classifier
	log        zerolog.Logger
	opts       Options

	now func() time.Time // overridable in tests
}

// NewEngine wires the engine with its collaborators.
func NewEngine(source Source, store cache.Store, sizes *PageSizes, resolver *Resolver, classifier *Classifier, log zerolog.Logger, opts Options) *Engine {
	if opts.PageLength <= 0 {
		opts.PageLength = PageLength
	}
	if opts.FanoutFloor <= 0 {
		opts.FanoutFloor = FanoutFloor
	}
	if opts.PageTTL <= 0 {
		opts.PageTTL = pageCacheTTL
	}
	return &Engine{
		source:     source,
		store:      store,
		sizes:      sizes,
		resolver:   resolver,
		classifier: classifier,
		log:        log,
		opts:       opts,
		now:        time.Now,
	}
}

// Request carries the client-facing parameters for one catalog page.
type Request struct {
	Search string
	Offset int
}

// Catalog serves one formatted page for the definition. It never
// returns an error: any required upstream failure yields an empty list,
// and the caller always gets well-formed output.
func (e *Engine) Catalog(ctx context.Context, def Definition, req Request) []Meta {
	sig := Signature{Kind: def.Kind, CatalogID: def.ID, Search: req.Search}
	pageSize := e.sizes.For(sig)
	page := UpstreamPage(req.Offset, pageSize)

	key := sig.PageKey(page)
	if v, ok := e.store.Get(key); ok {
		if metas, ok := v.([]Meta); ok {
			return metas
		}
	}

	var (
		items []tmdb.Item
		err   error
	)
	switch {
	case req.Search != "":
		items, err = e.search(ctx, def, req.Search, page)
	case def.Composite():
		items, err = e.composite(ctx, def, page)
	default:
		items, err = e.discover(ctx, def, def.Language, page)
	}
	if err != nil {
		e.log.Warn().Err(err).Stringer("catalog", sig).Int("page", page).Msg("upstream query failed")
		return []Meta{}
	}

	metas := e.format(ctx, def.Kind, items)

	e.store.Set(key, metas, e.opts.PageTTL)
	if req.Offset == 0 {
		e.sizes.Learn(sig, len(metas))
	}
	return metas
}

// discover issues one listing query for a language variant of the
// definition.
func (e *Engine) discover(ctx context.Context, def Definition, lang string, page int) ([]tmdb.Item, error) {
	p, err := e.source.Discover(ctx, tmdb.DiscoverQuery{
		Kind:     def.Kind,
		Language: lang,
		Region:   def.Territory,
		MinVotes: def.MinVotes,
		MaxDate:  asOfDate(e.now()),
		Page:     page,
	})
	if err != nil {
		return nil, err
	}
	return p.Results, nil
}

// composite assembles a page from the primary language plus classified
// items from the secondary languages, stopping once the floor is met.
func (e *Engine) composite(ctx context.Context, def Definition, page int) ([]tmdb.Item, error) {
	acc, err := e.discover(ctx, def, def.Language, page)
	if err != nil {
		return nil, err
	}

	for _, lang := range def.Secondary {
		if len(acc) >= e.opts.FanoutFloor {
			break
		}
		items, err := e.discover(ctx, def, lang, page)
		if err != nil {
			return nil, err
		}
		acc = append(acc, e.qualifying(ctx, def.Kind, items)...)
	}

	acc = dedupeByID(acc)
	sortByReleaseDesc(acc)
	if len(acc) > e.opts.PageLength {
		acc = acc[:e.opts.PageLength]
	}
	return acc, nil
}

// search issues a single text query; no multi-source fan-out, since the
// term already scopes the results.
func (e *Engine) search(ctx context.Context, def Definition, query string, page int) ([]tmdb.Item, error) {
	p, err := e.source.Search(ctx, def.Kind, query, page)
	if err != nil {
		return nil, err
	}
	items := p.Results
	if def.LanguageScoped() && e.opts.ClassifySearch {
		items = e.qualifying(ctx, def.Kind, items)
	}
	return items, nil
}

// qualifying filters items through the classifier, fanning the detail
// lookups out concurrently while preserving order.
func (e *Engine) qualifying(ctx context.Context, kind string, items []tmdb.Item) []tmdb.Item {
	verdicts := mapConcurrent(ctx, items, func(ctx context.Context, it tmdb.Item) bool {
		return e.classifier.Qualifies(ctx, kind, it.ID)
	})

	kept := make([]tmdb.Item, 0, len(items))
	for i, it := range items {
		if verdicts[i] {
			kept = append(kept, it)
		}
	}
	return kept
}

// format resolves IMDb ids concurrently and builds the served metas,
// dropping items without a valid external presentation.
func (e *Engine) format(ctx context.Context, kind string, items []tmdb.Item) []Meta {
	ids := mapConcurrent(ctx, items, func(ctx context.Context, it tmdb.Item) string {
		id, ok := e.resolver.Resolve(ctx, kind, it.ID)
		if !ok {
			return ""
		}
		return id
	})

	metas := make([]Meta, 0, len(items))
	for i, it := range items {
		if m, ok := formatMeta(it, kind, ids[i]); ok {
			metas = append(metas, m)
		}
	}
	return metas
}

// dedupeByID keeps the first occurrence of each upstream id.
func dedupeByID(items []tmdb.Item) []tmdb.Item {
	seen := make(map[int64]struct{}, len(items))
	out := make([]tmdb.Item, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}

// sortByReleaseDesc orders newest first. Absent dates compare as the
// empty string, which lands them at the end.
func sortByReleaseDesc(items []tmdb.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Released() > items[j].Released()
	})
}
