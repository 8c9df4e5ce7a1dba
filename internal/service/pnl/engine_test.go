package pnl_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/boutique/internal/domain/models"
	"github.com/mamadbah2/boutique/internal/service/pnl"
)

func order(id, stockID, selling, quantity, date string) models.Order {
	d, _ := models.ParseDate(date)
	return models.Order{
		ID:           id,
		StockArticle: models.StockSnapshot{ID: stockID, ProductName: "Lawn suit", ArticleNumber: "A-" + stockID},
		Customer:     models.CustomerSnapshot{ID: "c1", FirstName: "Sana", SecondName: "Malik"},
		SellingPrice: models.Numeric(selling),
		Quantity:     models.Numeric(quantity),
		Date:         d,
		Time:         "10:30",
	}
}

func item(id, cost string) models.StockItem {
	return models.StockItem{ID: id, ProductName: "Lawn suit", ProductCost: models.Numeric(cost)}
}

func TestCompute_ScenarioCostSellingQuantity(t *testing.T) {
	report := pnl.Compute(
		[]models.Order{order("o1", "s1", "150", "3", "2024-01-05")},
		[]models.StockItem{item("s1", "100")},
	)

	require.Len(t, report.Entries, 1)
	e := report.Entries[0]
	assert.Equal(t, 3, e.Quantity)
	assert.Equal(t, 100.0, e.CostPrice)
	assert.Equal(t, 300.0, e.TotalCostPrice)
	assert.Equal(t, 450.0, e.TotalSellingPrice)
	assert.Equal(t, 150.0, e.ProfitLoss)
	assert.Equal(t, 150.0, report.TotalProfit)
	assert.Equal(t, "Sana Malik", e.CustomerName)
	assert.Equal(t, "A-s1", e.ArticleNumber)
	assert.False(t, report.Filtered())
}

func TestCompute_MissingStockCostsZero(t *testing.T) {
	report := pnl.Compute(
		[]models.Order{order("o1", "gone", "80", "2", "2024-01-05")},
		[]models.StockItem{item("s1", "100")},
	)

	e := report.Entries[0]
	assert.Zero(t, e.CostPrice)
	assert.Equal(t, 160.0, e.ProfitLoss)
}

func TestCompute_UnparseableCostCostsZero(t *testing.T) {
	report := pnl.Compute(
		[]models.Order{order("o1", "s1", "80", "1", "2024-01-05")},
		[]models.StockItem{item("s1", "n/a")},
	)

	assert.Zero(t, report.Entries[0].CostPrice)
	assert.Equal(t, 80.0, report.Entries[0].ProfitLoss)
}

func TestCompute_QuantityDefaultsToOne(t *testing.T) {
	cases := map[string]string{
		"missing":     "",
		"unparseable": "several",
		"zero":        "0",
	}
	for name, qty := range cases {
		t.Run(name, func(t *testing.T) {
			report := pnl.Compute(
				[]models.Order{order("o1", "s1", "150", qty, "2024-01-05")},
				[]models.StockItem{item("s1", "100")},
			)
			e := report.Entries[0]
			assert.Equal(t, 1, e.Quantity)
			assert.Equal(t, 50.0, e.ProfitLoss)
		})
	}
}

func TestCompute_LenientNumbers(t *testing.T) {
	report := pnl.Compute(
		[]models.Order{order("o1", "s1", "20.5 each", "3.9", "2024-01-05")},
		[]models.StockItem{item("s1", "12.5kg")},
	)

	e := report.Entries[0]
	assert.Equal(t, 3, e.Quantity)
	assert.Equal(t, 12.5, e.CostPrice)
	assert.Equal(t, 20.5, e.SellingPrice)
	assert.InDelta(t, 24.0, e.ProfitLoss, 1e-9)
}

func TestCompute_UnparseableSellingPriceIsZero(t *testing.T) {
	report := pnl.Compute(
		[]models.Order{order("o1", "s1", "free", "2", "2024-01-05")},
		[]models.StockItem{item("s1", "10")},
	)

	assert.Equal(t, -20.0, report.Entries[0].ProfitLoss)
}

func TestCompute_NewestFirstAndTotals(t *testing.T) {
	orders := []models.Order{
		order("o1", "s1", "150", "1", "2024-03-01"),
		order("o2", "s1", "90", "2", "2024-01-01"),
		order("o3", "missing", "10", "1", "2024-02-01"),
	}
	report := pnl.Compute(orders, []models.StockItem{item("s1", "100")})

	require.Len(t, report.Entries, 3)
	assert.Equal(t, "o3", report.Entries[0].OrderID)
	assert.Equal(t, "o2", report.Entries[1].OrderID)
	assert.Equal(t, "o1", report.Entries[2].OrderID)

	var sum float64
	for _, e := range report.Entries {
		sum += e.ProfitLoss
	}
	assert.Equal(t, sum, report.TotalProfit)
	assert.Equal(t, 40.0, report.TotalProfit)
}

func TestCompute_Empty(t *testing.T) {
	report := pnl.Compute(nil, nil)
	assert.Empty(t, report.Entries)
	assert.Zero(t, report.TotalProfit)
}

func TestFilter_ScenarioJanuaryOnly(t *testing.T) {
	full := pnl.Compute([]models.Order{
		order("jan", "s1", "150", "1", "2024-01-05"),
		order("feb", "s1", "150", "1", "2024-02-10"),
	}, []models.StockItem{item("s1", "100")})

	filtered, err := pnl.Filter(full, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, filtered.Entries, 1)
	assert.Equal(t, "jan", filtered.Entries[0].OrderID)
	assert.Equal(t, 50.0, filtered.TotalProfit)
	assert.True(t, filtered.Filtered())
	assert.Equal(t, "2024-01-01", filtered.Start.String())
}

func TestFilter_InclusiveBounds(t *testing.T) {
	full := pnl.Compute([]models.Order{
		order("before", "s1", "1", "1", "2024-01-09"),
		order("start", "s1", "1", "1", "2024-01-10"),
		order("end", "s1", "1", "1", "2024-01-20"),
		order("after", "s1", "1", "1", "2024-01-21"),
	}, nil)

	filtered, err := pnl.Filter(full, "2024-01-10", "2024-01-20")
	require.NoError(t, err)
	require.Len(t, filtered.Entries, 2)
	assert.Equal(t, "end", filtered.Entries[0].OrderID)
	assert.Equal(t, "start", filtered.Entries[1].OrderID)
}

func TestFilter_AcceptsUnpaddedBounds(t *testing.T) {
	full := pnl.Compute([]models.Order{order("o1", "s1", "1", "1", "2024-01-05")}, nil)

	filtered, err := pnl.Filter(full, "2024-1-1", "2024-1-5")
	require.NoError(t, err)
	assert.Len(t, filtered.Entries, 1)
}

func TestFilter_MissingBoundIsRejected(t *testing.T) {
	full := pnl.Compute([]models.Order{order("o1", "s1", "150", "1", "2024-01-05")}, []models.StockItem{item("s1", "100")})
	before := full

	for _, bounds := range [][2]string{{"", "2024-01-31"}, {"2024-01-01", ""}, {"", ""}, {" ", "2024-01-31"}} {
		_, err := pnl.Filter(full, bounds[0], bounds[1])
		assert.ErrorIs(t, err, models.ErrMissingDateRange)
	}
	assert.Equal(t, before, full)
}

func TestFilter_InvalidBoundIsValidationError(t *testing.T) {
	_, err := pnl.Filter(models.PNLReport{}, "yesterday", "2024-01-31")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestFilter_ReversedRangeIsEmpty(t *testing.T) {
	full := pnl.Compute([]models.Order{order("o1", "s1", "150", "1", "2024-01-05")}, nil)

	filtered, err := pnl.Filter(full, "2024-01-31", "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, filtered.Entries)
	assert.Zero(t, filtered.TotalProfit)
}

func TestFilter_UndatedOrdersNeverMatch(t *testing.T) {
	full := pnl.Compute([]models.Order{order("o1", "s1", "150", "1", "")}, nil)

	filtered, err := pnl.Filter(full, "0001-01-01", "9999-12-31")
	require.NoError(t, err)
	assert.Empty(t, filtered.Entries)
}
