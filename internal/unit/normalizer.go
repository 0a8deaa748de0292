// Package unit derives comparable per-unit prices ($/kg, $/L) from the
// free-text package sizes printed by retail sites, so products with
// incompatible pack sizes can be compared.
package unit

import (
	"regexp"
	"strconv"
	"strings"

	"supermarket-prices/internal/model"
)

// Derived holds the normalized unit pricing fields for a product.
type Derived struct {
	// UnitPrice is the price per normalized unit, rounded to 2 decimals.
	UnitPrice float64
	// UnitName is the normalized unit, either "kg" or "L".
	UnitName string
	// OriginalQuantity is the quantity as printed, before g->kg or mL->L
	// normalization (e.g. 250 for "250ml").
	OriginalQuantity float64
}

// Quantities outside this range are treated as parse failures rather than
// real package sizes.
const maxQuantity = 9999

var (
	multiplierPattern = regexp.MustCompile(`(?i)(\d+)\s*x\s*(\d+(?:\.\d+)?)\s*(kg|g|ml|l)\b`)
	packPattern       = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(kg|g|ml|l)\b\s*(\d+)\s*pack`)
	tokenPattern      = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(kg|g|ml|l)\b`)
)

// matcher is one named size heuristic. Matchers run in fixed priority order
// and the first match wins; each is independently testable.
type matcher struct {
	name  string
	match func(name, size string) (quantity float64, unit string, ok bool)
}

var matchers = []matcher{
	{"per-kg", matchPerKg},
	{"multiplier", matchMultiplier},
	{"pack", matchPack},
	{"token", matchToken},
}

// Normalize derives a per-unit price from a product name, its printed size,
// and the current shelf price. It is pure and never fails for malformed
// input; ok is false when no unit price could be confidently derived.
func Normalize(name, size string, currentPrice float64) (Derived, bool) {
	for _, m := range matchers {
		quantity, unitName, matched := m.match(name, size)
		if !matched {
			continue
		}
		if quantity <= 0 || quantity >= maxQuantity {
			return Derived{}, false
		}

		original := quantity
		switch strings.ToLower(unitName) {
		case "g":
			quantity /= 1000
			unitName = "kg"
		case "kg":
			unitName = "kg"
		case "ml":
			quantity /= 1000
			unitName = "L"
		case "l":
			unitName = "L"
		}

		return Derived{
			UnitPrice:        model.Round2(currentPrice / quantity),
			UnitName:         unitName,
			OriginalQuantity: original,
		}, true
	}
	return Derived{}, false
}

// matchPerKg handles loose-weight products: a size of exactly "kg" or
// containing "per kg" means one kilogram.
func matchPerKg(_, size string) (float64, string, bool) {
	s := strings.ToLower(strings.TrimSpace(size))
	if s == "kg" || strings.Contains(s, "per kg") {
		return 1, "kg", true
	}
	return 0, "", false
}

// matchMultiplier handles multi-pack notations such as "4 x 107mL",
// yielding the combined quantity.
func matchMultiplier(name, size string) (float64, string, bool) {
	for _, text := range []string{size, name} {
		m := multiplierPattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		count, err1 := strconv.ParseFloat(m[1], 64)
		each, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		return count * each, m[3], true
	}
	return 0, "", false
}

// matchPack handles notations such as "107g 12pack". Small pack counts
// (6 or fewer) describe the per-unit size already printed, so the count is
// not multiplied in; larger counts are bulk packs and are.
func matchPack(name, size string) (float64, string, bool) {
	for _, text := range []string{size, name} {
		m := packPattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		each, err1 := strconv.ParseFloat(m[1], 64)
		count, err2 := strconv.ParseFloat(m[3], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		if count > 6 {
			return each * count, m[2], true
		}
		return each, m[2], true
	}
	return 0, "", false
}

// matchToken scans the candidate pool (name, size, then each whitespace
// token of size) for the first plain "<number><unit>" token.
func matchToken(name, size string) (float64, string, bool) {
	pool := append([]string{name, size}, strings.Fields(size)...)
	for _, text := range pool {
		m := tokenPattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		quantity, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return quantity, m[2], true
	}
	return 0, "", false
}
