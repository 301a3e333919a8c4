// =============================================================================
// StatementGuard - XLSX Report Export
// =============================================================================
//
// Writes the full result payload into a single workbook, one sheet per
// result category. Decimal values are written as strings so the stated and
// computed amounts survive untouched by spreadsheet float handling.
//
// =============================================================================

package export

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ridhanshr/StatementGuard/internal/engine"
	"github.com/ridhanshr/StatementGuard/internal/rules"
)

// WriteWorkbook writes all seven categories into one XLSX file and returns
// its path.
func (e *Exporter) WriteWorkbook(data *engine.ResultData) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	for _, category := range rules.Categories {
		if _, err := f.NewSheet(category); err != nil {
			return "", fmt.Errorf("failed to create sheet %s: %w", category, err)
		}
		if err := fillSheet(f, category, data); err != nil {
			return "", fmt.Errorf("sheet %s: %w", category, err)
		}
	}

	// Drop the default sheet so the workbook holds exactly the seven
	// category sheets.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to remove default sheet: %w", err)
	}

	path := filepath.Join(e.dir, e.fileName("results")+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}

func fillSheet(f *excelize.File, category string, data *engine.ResultData) error {
	var header []any
	var body [][]any

	switch category {
	case rules.CategoryValidations:
		header = []any{"card", "field", "expected", "actual", "status"}
		for _, r := range data.Validations {
			body = append(body, []any{r.Card, r.Field, r.Expected.String(), r.Actual.String(), r.Status})
		}
	case rules.CategoryFiltered:
		header = []any{"posting", "card", "line"}
		for _, r := range data.Filtered {
			body = append(body, []any{r.PostingDate, r.Card, r.Line})
		}
	case rules.CategoryStructure:
		header = []any{"customer", "has_01", "has_02", "has_03", "has_04", "status", "missing"}
		for _, r := range data.Structure {
			body = append(body, []any{r.Customer, r.Has01, r.Has02, r.Has03, r.Has04, r.Status, r.Missing})
		}
	case rules.CategoryDuplicates:
		header = []any{"card", "posting_date", "trx_detail", "amount", "direction", "count"}
		for _, r := range data.Duplicates {
			body = append(body, []any{r.Card, r.PostingDate, r.Detail, r.Amount.String(), r.Direction, r.Count})
		}
	case rules.CategoryZeroAmount:
		header = []any{"card", "posting_date", "trx_detail", "amount", "direction"}
		for _, r := range data.ZeroAmount {
			body = append(body, []any{r.Card, r.PostingDate, r.Detail, r.Amount.String(), r.Direction})
		}
	case rules.CategoryTotPayment:
		header = []any{"card", "tot_payment", "has_cr", "cr_total", "status"}
		for _, r := range data.TotPayment {
			body = append(body, []any{r.Card, r.TotPayment.String(), r.HasCR, r.CRTotal.String(), r.Status})
		}
	case rules.CategorySequence:
		header = []any{"customer", "sequence", "status"}
		for _, r := range data.Sequence {
			body = append(body, []any{r.Customer, r.Sequence, r.Status})
		}
	default:
		return fmt.Errorf("unknown result category %q", category)
	}

	if err := f.SetSheetRow(category, "A1", &header); err != nil {
		return err
	}
	for i, row := range body {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(category, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
