// Package catalog implements the aggregation core of the addon: it maps
// client item offsets onto upstream pages, fans out over the source
// language variants of a composite catalog, classifies and enriches the
// raw records, and serves deduplicated, ordered, IMDb-addressable pages.
package catalog

import (
	"fmt"
	"time"
)

// Signature identifies one catalog variant plus an optional search
// term. It is an immutable value type; every cache key for the variant
// derives from it.
type Signature struct {
	Kind      string
	CatalogID string
	Search    string
}

func (s Signature) String() string {
	if s.Search != "" {
		return fmt.Sprintf("%s|%s|q=%s", s.Kind, s.CatalogID, s.Search)
	}
	return fmt.Sprintf("%s|%s", s.Kind, s.CatalogID)
}

// PageKey is the cache key for a formatted result page of this variant.
func (s Signature) PageKey(page int) string {
	return fmt.Sprintf("catalog:%s:p%d", s, page)
}

// SizeKey is the cache key for the learned page size of this variant.
func (s Signature) SizeKey() string {
	return "pagesize:" + s.String()
}

// ist is the fixed offset zone the as-of date is computed in, regardless
// of host timezone: the upstream listings are curated against Indian
// release schedules.
var ist = time.FixedZone("IST", 5*3600+1800)

// asOfDate formats the release-date upper bound for discover queries.
func asOfDate(now time.Time) string {
	return now.In(ist).Format("2006-01-02")
}
