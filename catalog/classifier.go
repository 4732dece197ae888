package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinedesi/addon/cache"
)

// Classifier TTLs mirror the resolver's asymmetry: "qualifies" is
// stable, "does not qualify" can flip when a new translation or
// regional release appears.
const (
	classifyHitTTL  = 24 * time.Hour
	classifyMissTTL = time.Hour
)

// Classifier decides whether an item belongs in a language-scoped
// catalog even though its original language differs. Three independent
// signals are checked in order, any one sufficient: the original
// language matches, a localized translation exists, or a release record
// is tagged to the territory.
//
// On upstream failure the classifier fails closed by default: a
// conservative false is cached under the short TTL so the item is
// retried within the hour. FailOpen flips that for deployments that
// prefer inclusion over precision.
type Classifier struct {
	source Source
	store  cache.Store
	log    zerolog.Logger

	lang      string
	territory string
	failOpen  bool

	hitTTL  time.Duration
	missTTL time.Duration
}

// NewClassifier creates a classifier for the given language/territory.
// Zero TTLs select the defaults.
func NewClassifier(source Source, store cache.Store, log zerolog.Logger, lang, territory string, failOpen bool, hitTTL, missTTL time.Duration) *Classifier {
	if hitTTL <= 0 {
		hitTTL = classifyHitTTL
	}
	if missTTL <= 0 {
		missTTL = classifyMissTTL
	}
	return &Classifier{
		source: source, store: store, log: log,
		lang: lang, territory: territory, failOpen: failOpen,
		hitTTL: hitTTL, missTTL: missTTL,
	}
}

// Qualifies reports whether the item satisfies the language predicate.
func (c *Classifier) Qualifies(ctx context.Context, kind string, id int64) bool {
	key := fmt.Sprintf("lang:%s:%s:%d", c.lang, kind, id)
	if v, ok := c.store.Get(key); ok {
		b, _ := v.(bool)
		return b
	}

	d, err := c.source.Detail(ctx, kind, id)
	if err != nil {
		c.log.Debug().Err(err).Str("kind", kind).Int64("id", id).Msg("detail fetch failed, caching fallback verdict")
		c.store.Set(key, c.failOpen, c.missTTL)
		return c.failOpen
	}

	qualifies := d.OriginalLanguage == c.lang ||
		d.HasTranslation(c.lang) ||
		d.HasTerritoryRelease(c.territory)

	if qualifies {
		c.store.Set(key, true, c.hitTTL)
	} else {
		c.store.Set(key, false, c.missTTL)
	}
	return qualifies
}
