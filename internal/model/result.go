package model

// Result classifies the outcome of reconciling a single observation.
// The values are mutually exclusive and evaluated in this priority order.
type Result int

const (
	ResultNewProduct Result = iota
	ResultPriceChanged
	ResultInfoChanged
	ResultAlreadyUpToDate
	ResultFailed
)

// String returns the result name used in logs and summaries.
func (r Result) String() string {
	switch r {
	case ResultNewProduct:
		return "new-product"
	case ResultPriceChanged:
		return "price-changed"
	case ResultInfoChanged:
		return "info-changed"
	case ResultAlreadyUpToDate:
		return "already-up-to-date"
	case ResultFailed:
		return "failed"
	default:
		return "unknown"
	}
}
