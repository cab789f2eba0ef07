package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"propmarket/internal/analysis"
)

// SheetName is the worksheet holding the area summary.
const SheetName = "Areas"

// Columns is the header row of the summary sheet.
var Columns = []interface{}{"Postcode Area", "City", "Sales", "Mean Price", "Std Dev", "Min Price", "Max Price"}

// WriteWorkbook saves one row per area to an .xlsx file at path.
func WriteWorkbook(path string, label string, summaries []analysis.AreaSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   "Property market areas",
		Subject: label,
	}); err != nil {
		return fmt.Errorf("failed to set document properties: %w", err)
	}

	header := Columns
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, s := range summaries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{s.Area, s.City, s.Count, round2(s.Mean), round2(s.StdDev), s.Min, s.Max}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
