package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinedesi/addon/cache"
)

// Default TTLs for enrichment lookups. Resolved mappings are stable and
// cached long; a missing mapping may appear later, so the negative
// sentinel expires after an hour and the lookup is retried.
const (
	resolveHitTTL  = 24 * time.Hour
	resolveMissTTL = time.Hour
)

// Resolver maps a TMDB id to its IMDb id, memoized with asymmetric
// TTLs. An unresolvable id is a normal outcome, not an error: the
// caller drops the item.
type Resolver struct {
	source Source
	store  cache.Store
	log    zerolog.Logger

	hitTTL  time.Duration
	missTTL time.Duration
}

// NewResolver creates a resolver backed by the shared store. Zero TTLs
// select the defaults.
func NewResolver(source Source, store cache.Store, log zerolog.Logger, hitTTL, missTTL time.Duration) *Resolver {
	if hitTTL <= 0 {
		hitTTL = resolveHitTTL
	}
	if missTTL <= 0 {
		missTTL = resolveMissTTL
	}
	return &Resolver{source: source, store: store, log: log, hitTTL: hitTTL, missTTL: missTTL}
}

// Resolve returns the IMDb id for the item, or ok=false when no mapping
// exists (or the lookup failed and the negative result is cached).
func (r *Resolver) Resolve(ctx context.Context, kind string, id int64) (string, bool) {
	key := fmt.Sprintf("imdb:%s:%d", kind, id)
	if v, ok := r.store.Get(key); ok {
		s, _ := v.(string)
		return s, s != ""
	}

	ids, err := r.source.ExternalIDs(ctx, kind, id)
	if err != nil {
		r.log.Debug().Err(err).Str("kind", kind).Int64("id", id).Msg("external id lookup failed")
		r.store.Set(key, "", r.missTTL)
		return "", false
	}
	if ids.IMDBID == "" {
		// Negative cache: known (for now) to lack a mapping.
		r.store.Set(key, "", r.missTTL)
		return "", false
	}

	r.store.Set(key, ids.IMDBID, r.hitTTL)
	return ids.IMDBID, true
}
