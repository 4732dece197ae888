package catalog

import (
	"time"

	"github.com/cinedesi/addon/cache"
)

// DefaultPageSize is assumed for a catalog variant until its true page
// size has been observed. Upstream pages are not contractually sized;
// 20 matches TMDB's usual listing page.
const DefaultPageSize = 20

// learnedSizeTTL keeps an observed page size for a long while; a
// restart loses it and the variant reverts to the default.
const learnedSizeTTL = 7 * 24 * time.Hour

// PageSizes learns the authoritative per-variant page size from the
// first successfully served page. Only the first page's count is
// trustworthy: trailing pages may be short.
type PageSizes struct {
	store    cache.Store
	fallback int
}

// NewPageSizes creates a learner backed by the shared store.
func NewPageSizes(store cache.Store) *PageSizes {
	return &PageSizes{store: store, fallback: DefaultPageSize}
}

// For returns the learned page size for the variant, or the default.
func (p *PageSizes) For(sig Signature) int {
	if v, ok := p.store.Get(sig.SizeKey()); ok {
		if n, ok := v.(int); ok && n > 0 {
			return n
		}
	}
	return p.fallback
}

// Learn records an observed first-page count. Callers must only invoke
// it for requests whose client offset was zero; zero counts are ignored.
func (p *PageSizes) Learn(sig Signature, observed int) {
	if observed <= 0 {
		return
	}
	p.store.Set(sig.SizeKey(), observed, learnedSizeTTL)
}

// UpstreamPage translates a client-visible item offset into the
// upstream 1-based page index. Pure function of its inputs; computed
// fresh per request, never cached.
func UpstreamPage(offset, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return offset/pageSize + 1
}
