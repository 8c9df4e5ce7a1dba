// Package pnl derives the profit and loss report from orders and the current
// stock catalog.
package pnl

import (
	"strings"

	"github.com/mamadbah2/boutique/internal/domain/models"
)

// Compute joins every order against the current stock cost and returns the
// unfiltered report. orders must be in creation order; entries come out newest
// first.
//
// Cost basis is the stock item's cost now, not at order time: editing an
// item's cost changes the profit of its past orders. An order whose item no
// longer exists costs zero.
func Compute(orders []models.Order, stock []models.StockItem) models.PNLReport {
	costs := make(map[string]models.Numeric, len(stock))
	for _, item := range stock {
		costs[item.ID] = item.ProductCost
	}

	entries := make([]models.PNLEntry, 0, len(orders))
	for i := len(orders) - 1; i >= 0; i-- {
		entries = append(entries, entryFor(orders[i], costs))
	}

	return models.PNLReport{
		Entries:     entries,
		TotalProfit: TotalProfit(entries),
	}
}

// Filter restricts an unfiltered report to orders dated within
// [startDate, endDate], inclusive on both ends. Both bounds are required. A
// reversed range is not rejected; it simply matches nothing.
func Filter(report models.PNLReport, startDate, endDate string) (models.PNLReport, error) {
	start, end, err := ParseRange(startDate, endDate)
	if err != nil {
		return models.PNLReport{}, err
	}

	entries := make([]models.PNLEntry, 0, len(report.Entries))
	for _, e := range report.Entries {
		if e.Date.Between(start, end) {
			entries = append(entries, e)
		}
	}

	return models.PNLReport{
		Start:       start,
		End:         end,
		Entries:     entries,
		TotalProfit: TotalProfit(entries),
	}, nil
}

// ParseRange validates a pair of filter bounds.
func ParseRange(startDate, endDate string) (models.Date, models.Date, error) {
	if strings.TrimSpace(startDate) == "" || strings.TrimSpace(endDate) == "" {
		return models.Date{}, models.Date{}, models.ErrMissingDateRange
	}
	start, err := models.ParseDate(startDate)
	if err != nil {
		return models.Date{}, models.Date{}, err
	}
	end, err := models.ParseDate(endDate)
	if err != nil {
		return models.Date{}, models.Date{}, err
	}
	return start, end, nil
}

// TotalProfit sums profitLoss over entries.
func TotalProfit(entries []models.PNLEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.ProfitLoss
	}
	return total
}

func entryFor(order models.Order, costs map[string]models.Numeric) models.PNLEntry {
	var costPrice float64
	if cost, ok := costs[order.StockArticle.ID]; ok {
		if v, ok := cost.Float(); ok {
			costPrice = v
		}
	}

	sellingPrice, ok := order.SellingPrice.Float()
	if !ok {
		sellingPrice = 0
	}

	// A quantity that is absent, unreadable or zero counts as one unit.
	quantity, ok := order.Quantity.Int()
	if !ok || quantity == 0 {
		quantity = 1
	}
	q := float64(quantity)

	return models.PNLEntry{
		OrderID:           order.ID,
		ArticleName:       order.StockArticle.ProductName,
		ArticleNumber:     order.StockArticle.ArticleNumber,
		CustomerName:      order.Customer.FullName(),
		Quantity:          quantity,
		CostPrice:         costPrice,
		TotalCostPrice:    costPrice * q,
		SellingPrice:      sellingPrice,
		TotalSellingPrice: sellingPrice * q,
		ProfitLoss:        (sellingPrice - costPrice) * q,
		Date:              order.Date,
	}
}
