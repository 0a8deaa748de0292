package model

import "strings"

// Uncategorised is the sentinel category for products whose category could
// not be derived. It is always eligible for replacement by a real category.
const Uncategorised = "Uncategorised"

// ValidCategories is the fixed taxonomy of category slugs that scraped
// products may be filed under.
var ValidCategories = []string{
	// fresh
	"eggs",
	"fruit",
	"fresh-vegetables",
	"salads-coleslaw",
	"bread",
	"bread-rolls",
	"specialty-bread",
	"bakery-cakes",
	"bakery-desserts",
	// chilled
	"milk",
	"long-life-milk",
	"sour-cream",
	"cream",
	"yoghurt",
	"butter",
	"cheese",
	"cheese-slices",
	"salami",
	"other-deli-foods",
	// meat
	"beef-lamb",
	"chicken",
	"ham",
	"bacon",
	"pork",
	"patties-meatballs",
	"sausages",
	"deli-meats",
	"meat-alternatives",
	"seafood",
	"salmon",
	// frozen
	"ice-cream",
	"ice-blocks",
	"pastries-cheesecake",
	"frozen-chips",
	"frozen-vegetables",
	"frozen-fruit",
	"frozen-seafood",
	"pies-sausage-rolls",
	"pizza",
	"other-savouries",
	// pantry
	"rice",
	"noodles",
	"pasta",
	"beans-spaghetti",
	"canned-fish",
	"canned-meat",
	"soup",
	"cereal",
	"spreads",
	"baking",
	"sauces",
	"oils-vinegars",
	"world-foods",
	// snacks
	"chocolate",
	"boxed-chocolate",
	"chips",
	"crackers",
	"biscuits",
	"muesli-bars",
	"nuts-bulk-mix",
	"sweets-lollies",
	"other-snacks",
	// drinks
	"black-tea",
	"green-tea",
	"herbal-tea",
	"drinking-chocolate",
	"coffee",
	"soft-drinks",
	"energy-drinks",
	"juice",
	// pets
	"cat-food",
	"cat-treats",
	"dog-food",
	"dog-treats",
}

var validCategorySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(ValidCategories))
	for _, c := range ValidCategories {
		set[c] = struct{}{}
	}
	return set
}()

// IsValidCategory reports whether slug belongs to the known taxonomy.
func IsValidCategory(slug string) bool {
	_, ok := validCategorySet[slug]
	return ok
}

// HasValidCategories reports whether every entry belongs to the taxonomy and
// the list is non-empty. The Uncategorised sentinel is not a valid category.
func HasValidCategories(categories []string) bool {
	if len(categories) == 0 {
		return false
	}
	for _, c := range categories {
		if !IsValidCategory(c) {
			return false
		}
	}
	return true
}

// NormalizeCategories drops blank entries and guarantees a non-empty
// result: when nothing remains it resolves to the Uncategorised sentinel.
// Off-taxonomy entries are kept; validity is judged at reconciliation time.
func NormalizeCategories(categories []string) []string {
	var out []string
	for _, c := range categories {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{Uncategorised}
	}
	return out
}

// OnlySentinel reports whether the list is empty or carries nothing but the
// Uncategorised sentinel.
func OnlySentinel(categories []string) bool {
	for _, c := range categories {
		if c != Uncategorised {
			return false
		}
	}
	return true
}
