// Package feed turns raw scraped observations into canonical products:
// title-cased names, taxonomy-checked categories, manual overrides and
// derived unit prices. The scraping layer itself lives outside this
// repository; observations arrive as JSON documents.
package feed

import (
	"strings"
	"time"

	"supermarket-prices/internal/model"
	"supermarket-prices/internal/unit"
)

// Observation is one freshly scraped snapshot of a product listing.
type Observation struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Size       string   `json:"size,omitempty"`
	Price      float64  `json:"price"`
	Category   []string `json:"category,omitempty"`
	SourceSite string   `json:"sourceSite,omitempty"`
}

// Builder constructs canonical products from observations. It is safe for
// concurrent use once created.
type Builder struct {
	overrides  map[string]Override
	sourceSite string
}

// NewBuilder creates a builder applying the given per-id overrides. The
// default source site is used for observations that carry none.
func NewBuilder(overrides []Override, defaultSourceSite string) *Builder {
	byID := make(map[string]Override, len(overrides))
	for _, o := range overrides {
		byID[o.ID] = o
	}
	return &Builder{
		overrides:  byID,
		sourceSite: defaultSourceSite,
	}
}

// Build constructs the canonical product for one observation at the given
// observation time. The record is complete when returned; nothing mutates
// it afterwards.
func (b *Builder) Build(o Observation, now time.Time) model.Product {
	name := TitleCase(strings.Join(strings.Fields(o.Name), " "))
	size := strings.TrimSpace(o.Size)
	categories := o.Category

	if override, ok := b.overrides[strings.TrimSpace(o.ID)]; ok {
		if override.Size != "" {
			size = override.Size
		}
		if override.Category != "" {
			categories = []string{override.Category}
		}
	}

	sourceSite := o.SourceSite
	if sourceSite == "" {
		sourceSite = b.sourceSite
	}

	price := model.Round2(o.Price)
	p := model.Product{
		ID:           strings.TrimSpace(o.ID),
		Name:         name,
		Size:         size,
		CurrentPrice: price,
		SourceSite:   sourceSite,
		Category:     model.NormalizeCategories(categories),
		LastUpdated:  now,
		LastChecked:  now,
		PriceHistory: []model.DatedPrice{{Date: model.CalendarDay(now), Price: price}},
	}

	if derived, ok := unit.Normalize(p.Name, p.Size, p.CurrentPrice); ok {
		p.UnitPrice = derived.UnitPrice
		p.UnitName = derived.UnitName
		p.OriginalUnitQuantity = derived.OriginalQuantity
	}

	return p
}
