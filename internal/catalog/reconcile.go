package catalog

import (
	"math"
	"time"

	"supermarket-prices/internal/model"

	"github.com/rs/zerolog"
)

// DefaultMinPriceDelta ignores sub-5-cent price movements, which are almost
// always rounding noise at the source rather than real price changes.
// A delta of 0 selects exact-inequality comparison instead.
const DefaultMinPriceDelta = 0.05

// Outcome is the decision for one reconciled observation: its
// classification and the record to persist.
type Outcome struct {
	Result  model.Result
	Product model.Product
}

// Reconciler decides, for each observation, whether it represents a new
// product, a price change, an informational change, or no change, and
// produces the merged record. Reconcile is a pure decision over two
// snapshots; it performs no I/O and never fails.
type Reconciler struct {
	minPriceDelta float64
	logger        zerolog.Logger
}

// NewReconciler creates a reconciler with the given price-change threshold.
func NewReconciler(minPriceDelta float64, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		minPriceDelta: minPriceDelta,
		logger:        logger.With().Str("component", "reconciler").Logger(),
	}
}

// Reconcile merges an observed product with the stored record for the same
// identity. A nil stored record means the product has never been seen.
// The rules are evaluated in priority order and the first match wins.
func (r *Reconciler) Reconcile(observed model.Product, stored *model.Product, now time.Time) Outcome {
	if stored == nil {
		return Outcome{Result: model.ResultNewProduct, Product: r.newProduct(observed, now)}
	}

	if r.priceChanged(observed, *stored) && !lastSampleIsToday(*stored, now) {
		return Outcome{Result: model.ResultPriceChanged, Product: r.mergePriceChange(observed, *stored, now)}
	}

	if infoChanged(observed, *stored) {
		return Outcome{Result: model.ResultInfoChanged, Product: mergeInfoChange(observed, *stored, now)}
	}

	merged := *stored
	merged.LastChecked = now
	return Outcome{Result: model.ResultAlreadyUpToDate, Product: merged}
}

// newProduct prepares a first-time observation for persistence: its history
// starts with a single sample dated today.
func (r *Reconciler) newProduct(observed model.Product, now time.Time) model.Product {
	p := observed
	p.Category = model.NormalizeCategories(p.Category)
	p.PriceHistory = []model.DatedPrice{{Date: model.CalendarDay(now), Price: p.CurrentPrice}}
	p.LastUpdated = now
	p.LastChecked = now
	return p
}

// priceChanged applies the configured policy: exact inequality when the
// threshold is zero, otherwise a minimum absolute delta.
func (r *Reconciler) priceChanged(observed, stored model.Product) bool {
	if r.minPriceDelta == 0 {
		return stored.CurrentPrice != observed.CurrentPrice
	}
	return math.Abs(stored.CurrentPrice-observed.CurrentPrice) > r.minPriceDelta
}

// lastSampleIsToday reports whether the newest history entry already covers
// today's UTC calendar date. At most one price sample per day is retained.
func lastSampleIsToday(stored model.Product, now time.Time) bool {
	last, ok := stored.LastSample()
	if !ok {
		// Corrupted empty history: carry on and let the append repair it.
		return false
	}
	return model.SameCalendarDay(last.Date, now)
}

// mergePriceChange adopts the observed fields and appends today's price to
// the stored history.
func (r *Reconciler) mergePriceChange(observed, stored model.Product, now time.Time) model.Product {
	merged := observed
	merged.PriceHistory = append(
		append([]model.DatedPrice(nil), stored.PriceHistory...),
		model.DatedPrice{Date: model.CalendarDay(now), Price: observed.CurrentPrice},
	)
	merged.Category = mergeCategories(stored.Category, observed.Category)
	merged.LastUpdated = now
	merged.LastChecked = now

	event := r.logger.Info().
		Str("product_id", merged.ID).
		Str("name", merged.Name).
		Float64("old_price", stored.CurrentPrice).
		Float64("new_price", observed.CurrentPrice)
	if observed.CurrentPrice > stored.CurrentPrice {
		event.Msg("price up")
	} else {
		event.Msg("price down")
	}

	return merged
}

// infoChanged reports whether any non-price field worth persisting differs:
// an upgradable category, the provenance site, the printed size, or the
// derived unit pricing fields.
func infoChanged(observed, stored model.Product) bool {
	if categoryUpgradable(stored.Category, observed.Category) {
		return true
	}
	if stored.SourceSite != observed.SourceSite {
		return true
	}
	if stored.Size != observed.Size {
		return true
	}
	if stored.UnitPrice != observed.UnitPrice ||
		stored.UnitName != observed.UnitName ||
		stored.OriginalUnitQuantity != observed.OriginalUnitQuantity {
		return true
	}
	return false
}

// mergeInfoChange adopts the observed informational fields while carrying
// price state and lastUpdated over from the stored record untouched. A
// same-day re-scrape with a different price lands here and deliberately
// keeps the stored price, so currentPrice stays consistent with the last
// history entry.
func mergeInfoChange(observed, stored model.Product, now time.Time) model.Product {
	merged := observed
	merged.CurrentPrice = stored.CurrentPrice
	merged.PriceHistory = stored.PriceHistory
	merged.Category = mergeCategories(stored.Category, observed.Category)
	merged.LastUpdated = stored.LastUpdated
	merged.LastChecked = now
	return merged
}

// categoryUpgradable reports whether the stored categories are off-taxonomy
// or the Uncategorised sentinel while the observation brings real ones. The
// sentinel is always eligible for replacement.
func categoryUpgradable(stored, observed []string) bool {
	if model.HasValidCategories(stored) {
		return false
	}
	return len(observed) > 0 && !model.OnlySentinel(observed)
}

// mergeCategories never downgrades a valid stored category to a blank or
// off-taxonomy observed one.
func mergeCategories(stored, observed []string) []string {
	if len(observed) == 0 || model.OnlySentinel(observed) {
		if len(stored) > 0 {
			return stored
		}
		return []string{model.Uncategorised}
	}
	if model.HasValidCategories(stored) && !model.HasValidCategories(observed) {
		return stored
	}
	return observed
}
