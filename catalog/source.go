package catalog

import (
	"context"

	"github.com/cinedesi/addon/tmdb"
)

// Source is the upstream the engine aggregates from. *tmdb.Client
// satisfies it; tests substitute fakes.
type Source interface {
	Discover(ctx context.Context, q tmdb.DiscoverQuery) (*tmdb.Page, error)
	Search(ctx context.Context, kind, query string, page int) (*tmdb.Page, error)
	Detail(ctx context.Context, kind string, id int64) (*tmdb.Detail, error)
	ExternalIDs(ctx context.Context, kind string, id int64) (tmdb.ExternalIDs, error)
}
