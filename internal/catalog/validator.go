// Package catalog holds the reconciliation core: validation of freshly
// observed products, the pure reconcile decision, and the updater that
// applies decisions against the store gateway.
package catalog

import (
	"math"

	"supermarket-prices/internal/model"
)

// Validation bounds for freshly observed products. Values outside these
// ranges are scrape artefacts, not real listings.
const (
	minNameLength = 4
	maxNameLength = 100
	minIDLength   = 2
	maxIDLength   = 20
	maxPrice      = 999
)

// Validate reports whether an observed product is sane enough to be
// reconciled. Rejected observations are discarded; the listing will be
// re-observed on the next scheduled pass.
func Validate(p model.Product) bool {
	if len(p.Name) < minNameLength || len(p.Name) > maxNameLength {
		return false
	}
	if len(p.ID) < minIDLength || len(p.ID) > maxIDLength {
		return false
	}
	if math.IsNaN(p.CurrentPrice) || p.CurrentPrice <= 0 || p.CurrentPrice > maxPrice {
		return false
	}
	return true
}
