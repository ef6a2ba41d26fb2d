// Package export renders computed quotes as an xlsx workbook.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/zzyhdu/tk-tools/internal/freight"
	"github.com/zzyhdu/tk-tools/internal/quote"
)

const (
	SummarySheet = "Summary"
	LayoutsSheet = "Layouts"

	// ContentType is the MIME type of the rendered workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ErrRowMismatch is returned when SKUs and results do not line up.
var ErrRowMismatch = errors.New("skus and results differ in length")

var summaryHeader = []any{
	"SKU ID", "Name", "Layout", "Carton L (cm)", "Carton W (cm)", "Carton H (cm)",
	"Channel", "Warehouse", "Origin", "Tier", "Chargeable weight (kg)",
	"First-leg cost (CNY)", "Total cost per item (CNY)", "Suggested price (CNY)",
	"Discounted price (CNY)", "Estimated profit (CNY)", "Suggested price (USD)",
}

var layoutsHeader = []any{
	"SKU ID", "Rank", "Layout", "L", "W", "H", "Volume", "Ratio", "Selected",
}

// WriteWorkbook writes one Summary row per SKU and one Layouts row per
// candidate layout. skus[i] must be the input that produced results[i].
func WriteWorkbook(w io.Writer, skus []quote.SKU, results []quote.Result) error {
	if len(skus) != len(results) {
		return fmt.Errorf("%w: %d skus, %d results", ErrRowMismatch, len(skus), len(results))
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(LayoutsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeRow(f, SummarySheet, 1, summaryHeader); err != nil {
		return err
	}
	if err := writeRow(f, LayoutsSheet, 1, layoutsHeader); err != nil {
		return err
	}
	if err := styleHeader(f, SummarySheet, len(summaryHeader), header); err != nil {
		return err
	}
	if err := styleHeader(f, LayoutsSheet, len(layoutsHeader), header); err != nil {
		return err
	}

	layoutRow := 2
	for i, sku := range skus {
		res := results[i]
		if err := writeRow(f, SummarySheet, i+2, summaryRow(sku, res)); err != nil {
			return err
		}
		for rank, layout := range res.Layouts {
			selected := ""
			if res.Selected != nil && rank == res.EffectiveSelectedIndex {
				selected = "yes"
			}
			row := []any{
				res.SKUID, rank + 1, layout.Label,
				layout.Dims.L, layout.Dims.W, layout.Dims.H,
				layout.Volume, layout.Ratio, selected,
			}
			if err := writeRow(f, LayoutsSheet, layoutRow, row); err != nil {
				return err
			}
			layoutRow++
		}
	}

	if err := f.SetColWidth(SummarySheet, "A", "Q", 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func summaryRow(sku quote.SKU, res quote.Result) []any {
	layout := quote.NewSnapshot(sku, res).Layout
	return []any{
		res.SKUID,
		sku.Name,
		layout,
		res.Physical.LengthCm,
		res.Physical.WidthCm,
		res.Physical.HeightCm,
		channelLabel(sku.Channel),
		sku.DestinationWarehouseID,
		sku.OriginRegion.Label(),
		freight.TierLabel(res.FirstLeg.Tier),
		res.Pricing.ChargeableWeightKg,
		res.FirstLeg.FirstLegCost,
		res.Pricing.TotalCost,
		cell(res.Pricing.PredictedSellingPrice),
		cell(res.Pricing.DiscountedSellingPrice),
		cell(res.Pricing.EstimatedProfit),
		cell(res.SuggestedPriceUSD),
	}
}

func channelLabel(c freight.Channel) string {
	for _, info := range freight.Channels() {
		if info.Channel == c {
			return info.Label
		}
	}
	return string(c)
}

// cell leaves undefined values blank instead of writing zero.
func cell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	if err := f.SetSheetRow(sheet, start, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, columns, style int) error {
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	return nil
}
