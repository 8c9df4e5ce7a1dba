package models

import "time"

// PNLEntry is one order as seen by the profit and loss report.
type PNLEntry struct {
	OrderID           string  `json:"orderId"`
	ArticleName       string  `json:"articleName"`
	ArticleNumber     string  `json:"articleNumber"`
	CustomerName      string  `json:"customerName"`
	Quantity          int     `json:"quantity"`
	CostPrice         float64 `json:"costPrice"`
	TotalCostPrice    float64 `json:"totalCostPrice"`
	SellingPrice      float64 `json:"sellingPrice"`
	TotalSellingPrice float64 `json:"totalSellingPrice"`
	ProfitLoss        float64 `json:"profitLoss"`
	Date              Date    `json:"date"`
}

// PNLReport is the active order set with its aggregate profit. Start and End
// are zero for an unfiltered report.
type PNLReport struct {
	Start       Date       `json:"start"`
	End         Date       `json:"end"`
	Entries     []PNLEntry `json:"entries"`
	TotalProfit float64    `json:"totalProfit"`
}

// Filtered reports whether the report was restricted to a date range.
func (r PNLReport) Filtered() bool { return !r.Start.IsZero() || !r.End.IsZero() }

// Totals sums cost and selling totals over the entries.
func (r PNLReport) Totals() (cost, selling float64) {
	for _, e := range r.Entries {
		cost += e.TotalCostPrice
		selling += e.TotalSellingPrice
	}
	return cost, selling
}

// PNLSnapshot is the periodic summary persisted by the scheduler.
type PNLSnapshot struct {
	Start        Date      `json:"start"`
	End          Date      `json:"end"`
	Orders       int       `json:"orders"`
	TotalCost    float64   `json:"totalCost"`
	TotalSelling float64   `json:"totalSelling"`
	TotalProfit  float64   `json:"totalProfit"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SnapshotOf summarizes a report.
func SnapshotOf(r PNLReport, now time.Time) PNLSnapshot {
	cost, selling := r.Totals()
	return PNLSnapshot{
		Start:        r.Start,
		End:          r.End,
		Orders:       len(r.Entries),
		TotalCost:    cost,
		TotalSelling: selling,
		TotalProfit:  r.TotalProfit,
		CreatedAt:    now,
	}
}

// Attributes encodes the snapshot for storage.
func (s PNLSnapshot) Attributes() Attributes {
	attrs := Attributes{
		"start":        s.Start.String(),
		"end":          s.End.String(),
		"orders":       s.Orders,
		"totalCost":    s.TotalCost,
		"totalSelling": s.TotalSelling,
		"totalProfit":  s.TotalProfit,
	}
	setTime(attrs, "createdAt", s.CreatedAt)
	return attrs
}
