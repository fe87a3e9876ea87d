package repo

type ProductFilter struct {
	LowStockOnly bool
}

// StockPolicy selects how DeductStock applies the lines of an order.
type StockPolicy string

const (
	// StockPolicyTwoPhase validates every line before deducting anything.
	StockPolicyTwoPhase StockPolicy = "two_phase"
	// StockPolicyInterleaved checks and deducts line by line. A failing line
	// leaves the deductions of the earlier lines in place.
	StockPolicyInterleaved StockPolicy = "interleaved"
)

func (p StockPolicy) Valid() bool {
	return p == StockPolicyTwoPhase || p == StockPolicyInterleaved
}
