// =============================================================================
// StatementGuard - Export Command
// =============================================================================
//
// This file defines the 'export' command, which runs a validation and writes
// the results to report files.
//
// COMMAND USAGE:
//   statementguard export --file PTSTMT.TXT                  # CSV, one file per category
//   statementguard export --file PTSTMT.TXT --format xlsx    # One workbook, one sheet per category
//   statementguard export --file PTSTMT.TXT --format both
//
// Report location, file naming and retention come from the configuration
// (report_dir, report_name_format, report_max_age_days). With a retention
// age set, reports older than the limit are removed before the new export
// is written.
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ridhanshr/StatementGuard/internal/export"
	"github.com/ridhanshr/StatementGuard/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	exportFile     string
	exportCardType string
	exportFrom     string
	exportUntil    string
	exportFormat   string
)

// =============================================================================
// EXPORT COMMAND DEFINITION
// =============================================================================

// exportCmd represents the 'export' command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Validate a PTSTMT statement file and write report files",
	Long: `Validate a PTSTMT statement file and write the full results to report
files in the configured report directory.

Formats:
  csv   One CSV file per result category (default)
  xlsx  One workbook with one sheet per category
  both  CSV files and the workbook`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runExport()
	},
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runExport() error {
	switch exportFormat {
	case "csv", "xlsx", "both":
	default:
		return fmt.Errorf("format must be csv, xlsx or both, got %q", exportFormat)
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	runner, err := newRunner(cfg, logger, exportFile, exportCardType, exportFrom, exportUntil)
	if err != nil {
		return err
	}

	result := collect(runner)
	if !result.Success {
		return fmt.Errorf("validation run failed: %s", result.Error)
	}

	if err := utils.EnsureReportDir(cfg.ReportDir); err != nil {
		return err
	}

	if cfg.ReportMaxAgeDays > 0 {
		maxAge := time.Duration(cfg.ReportMaxAgeDays) * 24 * time.Hour
		removed, err := utils.CleanOldReports(cfg.ReportDir, maxAge)
		if err != nil {
			return err
		}
		if removed > 0 {
			logger.Info("removed expired reports",
				zap.Int("removed", removed),
				zap.Int("max_age_days", cfg.ReportMaxAgeDays))
		}
	}

	exporter := export.NewExporter(cfg.ReportDir, cfg.ReportNameFormat)

	if exportFormat == "csv" || exportFormat == "both" {
		paths, err := exporter.WriteCSVReports(result.Data)
		if err != nil {
			return fmt.Errorf("failed to write CSV reports: %w", err)
		}
		for _, path := range paths {
			fmt.Println(path)
		}
	}

	if exportFormat == "xlsx" || exportFormat == "both" {
		path, err := exporter.WriteWorkbook(result.Data)
		if err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		fmt.Println(path)
	}

	return nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the export command and its flags.
func init() {
	exportCmd.Flags().StringVar(&exportFile, "file", "", "Path to the PTSTMT statement file (required)")
	exportCmd.Flags().StringVar(&exportCardType, "card-type", "", "Card type: REGULAR or CORPORATE")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Posting-date window start (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportUntil, "until", "", "Posting-date window end (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Report format: csv, xlsx or both")
	exportCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(exportCmd)
}
