package pnl

import (
	"fmt"
	"io"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/boutique/internal/domain/models"
)

// currency of every amount the boutique books.
const currency = money.PKR

var exportHeader = []interface{}{
	"Article",
	"Article Number",
	"Customer",
	"Quantity",
	"Cost Price",
	"Total Cost",
	"Selling Price",
	"Total Selling",
	"Profit/Loss",
	"Date",
}

// FormatAmount renders an amount with two fixed decimals.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// WriteXLSX renders the report as a spreadsheet: a header row, one row per
// entry and a closing totals row.
func WriteXLSX(w io.Writer, report models.PNLReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := exportHeader
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, e := range report.Entries {
		values := []interface{}{
			e.ArticleName,
			e.ArticleNumber,
			e.CustomerName,
			e.Quantity,
			e.CostPrice,
			e.TotalCostPrice,
			e.SellingPrice,
			e.TotalSellingPrice,
			e.ProfitLoss,
			e.Date.String(),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("cell for row %d: %w", row, err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	cost, selling := report.Totals()
	totals := []interface{}{"Total", "", "", "", "", cost, "", selling, report.TotalProfit, ""}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell for totals: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &totals); err != nil {
		return fmt.Errorf("write totals: %w", err)
	}

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("amount style: %w", err)
	}
	lastCell, err := excelize.CoordinatesToCellName(9, row)
	if err != nil {
		return fmt.Errorf("cell for style range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "E2", lastCell, amountStyle); err != nil {
		return fmt.Errorf("apply amount style: %w", err)
	}

	return f.Write(w)
}

// SnapshotRow is the sheet row appended for a stored snapshot.
func SnapshotRow(s models.PNLSnapshot) []interface{} {
	return []interface{}{
		s.Start.String(),
		s.End.String(),
		s.Orders,
		FormatAmount(s.TotalCost),
		FormatAmount(s.TotalSelling),
		FormatAmount(s.TotalProfit),
		s.CreatedAt.Format("2006-01-02 15:04"),
	}
}

// Digest is the short text summary sent to the owner.
func Digest(report models.PNLReport) string {
	period := "all orders"
	if report.Filtered() {
		period = fmt.Sprintf("%s to %s", report.Start, report.End)
	}
	cost, selling := report.Totals()

	outcome := "Profit"
	if report.TotalProfit < 0 {
		outcome = "Loss"
	}

	return fmt.Sprintf("Boutique PNL (%s)\nOrders: %d\nSales: %s\nCost: %s\n%s: %s",
		period,
		len(report.Entries),
		display(selling),
		display(cost),
		outcome,
		display(report.TotalProfit))
}

func display(v float64) string {
	return money.NewFromFloat(v, currency).Display()
}
