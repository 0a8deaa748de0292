package model

import (
	"math"
	"time"
)

// Product is the canonical persisted record for one catalogue item.
// Identity is the (ID, Name) pair; Name doubles as the store partition key.
type Product struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	Size                 string       `json:"size,omitempty"`
	CurrentPrice         float64      `json:"currentPrice"`
	LastUpdated          time.Time    `json:"lastUpdated"`
	LastChecked          time.Time    `json:"lastChecked"`
	PriceHistory         []DatedPrice `json:"priceHistory"`
	SourceSite           string       `json:"sourceSite"`
	Category             []string     `json:"category"`
	UnitPrice            float64      `json:"unitPrice,omitempty"`
	UnitName             string       `json:"unitName,omitempty"`
	OriginalUnitQuantity float64      `json:"originalUnitQuantity,omitempty"`
}

// DatedPrice is one immutable price sample: on Date the observed price was Price.
type DatedPrice struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// LastSample returns the most recently appended price history entry.
// The second return value is false when the history is empty, which only
// happens for records corrupted outside this process.
func (p *Product) LastSample() (DatedPrice, bool) {
	if len(p.PriceHistory) == 0 {
		return DatedPrice{}, false
	}
	return p.PriceHistory[len(p.PriceHistory)-1], true
}

// CalendarDay truncates t to its UTC calendar date. All same-day comparisons
// go through this so that mixed-zone timestamps never compare unequal days
// as equal or vice versa.
func CalendarDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// SameCalendarDay reports whether a and b fall on the same UTC calendar date.
func SameCalendarDay(a, b time.Time) bool {
	return CalendarDay(a).Equal(CalendarDay(b))
}

// Round2 rounds to 2 decimal places, the precision prices are stored at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
