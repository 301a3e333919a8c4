// =============================================================================
// StatementGuard - CSV Report Export
// =============================================================================
//
// Writes validation results to CSV, one file per result category. Quoting
// follows standard CSV escaping: fields containing a comma, double quote or
// newline are quoted and internal quotes are doubled, so a round trip
// through any conforming reader reproduces the original values byte for
// byte. Raw statement lines in the filtered-transaction rows rely on this.
//
// =============================================================================

package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/ridhanshr/StatementGuard/internal/engine"
	"github.com/ridhanshr/StatementGuard/internal/rules"
	"github.com/ridhanshr/StatementGuard/pkg/utils"
)

// Exporter writes report files for a completed run.
type Exporter struct {
	dir        string
	nameFormat string
}

// NewExporter creates an exporter writing into dir, naming files after the
// configured placeholder format.
func NewExporter(dir, nameFormat string) *Exporter {
	return &Exporter{dir: dir, nameFormat: nameFormat}
}

// CategoryRows returns the final row list for one category. The returned
// value is always a typed slice, possibly empty.
func CategoryRows(data *engine.ResultData, category string) (any, error) {
	switch category {
	case rules.CategoryValidations:
		return data.Validations, nil
	case rules.CategoryFiltered:
		return data.Filtered, nil
	case rules.CategoryStructure:
		return data.Structure, nil
	case rules.CategoryDuplicates:
		return data.Duplicates, nil
	case rules.CategoryZeroAmount:
		return data.ZeroAmount, nil
	case rules.CategoryTotPayment:
		return data.TotPayment, nil
	case rules.CategorySequence:
		return data.Sequence, nil
	default:
		return nil, fmt.Errorf("unknown result category %q", category)
	}
}

// WriteCSV writes one category's rows to w.
func WriteCSV(w io.Writer, rows any) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// WriteCSVReports writes one CSV file per category and returns the created
// paths in category order.
func (e *Exporter) WriteCSVReports(data *engine.ResultData) ([]string, error) {
	paths := make([]string, 0, len(rules.Categories))

	for _, category := range rules.Categories {
		rows, err := CategoryRows(data, category)
		if err != nil {
			return paths, err
		}

		path := filepath.Join(e.dir, e.fileName(category)+".csv")
		if err := writeCSVFile(path, rows); err != nil {
			return paths, fmt.Errorf("category %s: %w", category, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

func (e *Exporter) fileName(category string) string {
	return utils.ReportFileName(e.nameFormat, category)
}

func writeCSVFile(path string, rows any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if err := WriteCSV(file, rows); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
