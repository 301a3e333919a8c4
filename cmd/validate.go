// =============================================================================
// StatementGuard - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, the primary entry point for
// checking a PTSTMT statement file.
//
// COMMAND USAGE:
//   statementguard validate --file PTSTMT.TXT
//   statementguard validate --file PTSTMT.TXT --card-type CORPORATE
//   statementguard validate --file PTSTMT.TXT --from 2025-10-16 --until 2025-11-15
//   statementguard validate --file PTSTMT.TXT --stream
//
// OUTPUT MODES:
//   - Default: a human-readable summary of the seven result categories.
//   - --stream: the line-delimited event protocol on stdout (PROGRESS: and
//     DATA: lines followed by the bare final JSON result), for hosts that
//     want incremental output without the stdin handshake of 'bridge'.
//
// EXIT CODES:
//   0 - The run completed (rule violations are findings, not failures).
//   1 - The run itself failed (unreadable file, invalid parameters, broken
//       output pipe).
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ridhanshr/StatementGuard/internal/config"
	"github.com/ridhanshr/StatementGuard/internal/engine"
	"github.com/ridhanshr/StatementGuard/internal/rules"
	"github.com/ridhanshr/StatementGuard/internal/stream"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	validateFile     string
	validateCardType string
	validateFrom     string
	validateUntil    string
	validateStream   bool
)

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a PTSTMT statement file",
	Long: `Validate a PTSTMT statement file against the full rule set.

The file is scanned once. Field-level balance checks, record structure and
sequence checks, total-payment reconciliation, duplicate and zero-amount
detection, and the optional posting-date filter all run in the same pass.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runValidate()
	},
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runValidate() error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	runner, err := newRunner(cfg, logger, validateFile, validateCardType, validateFrom, validateUntil)
	if err != nil {
		return err
	}

	if validateStream {
		result, err := stream.Pump(runner.Run(), stream.NewWriter(os.Stdout))
		if err != nil {
			return err
		}
		if !result.Success {
			return fmt.Errorf("validation run failed: %s", result.Error)
		}
		return nil
	}

	result := collect(runner)
	if !result.Success {
		return fmt.Errorf("validation run failed: %s", result.Error)
	}

	printSummary(result)
	return nil
}

// newRunner builds an engine runner from command flags, falling back to the
// configured defaults for everything the flags leave empty.
func newRunner(cfg *config.MainConfig, logger *zap.Logger, file, cardType, from, until string) (*engine.Runner, error) {
	if cardType == "" {
		cardType = cfg.DefaultCardType
	}
	if from == "" {
		from = cfg.DefaultFromDate
	}
	if until == "" {
		until = cfg.DefaultUntilDate
	}

	params := engine.Params{
		FilePath:  file,
		CardType:  cardType,
		FromDate:  from,
		UntilDate: until,
	}

	return engine.NewRunner(params, engine.Options{
		BatchSize:        cfg.BatchSize,
		ProgressInterval: cfg.ProgressInterval,
		Logger:           logger,
	})
}

// collect drains a run to completion and returns the terminal result,
// discarding the incremental events.
func collect(runner *engine.Runner) *engine.ResultEvent {
	var result *engine.ResultEvent
	for ev := range runner.Run() {
		if r, ok := ev.(engine.ResultEvent); ok {
			result = &r
		}
	}
	return result
}

// printSummary writes the per-category finding counts to stdout.
func printSummary(result *engine.ResultEvent) {
	data := result.Data

	fmt.Println("StatementGuard - Validation Summary")
	fmt.Println("===================================")

	failedChecks := 0
	for _, chk := range data.Validations {
		if chk.Status == rules.StatusFail {
			failedChecks++
		}
	}
	invalidStructure := 0
	for _, sr := range data.Structure {
		if sr.Status == rules.StatusInvalid {
			invalidStructure++
		}
	}
	invalidSequence := 0
	for _, sr := range data.Sequence {
		if sr.Status == rules.StatusInvalid {
			invalidSequence++
		}
	}
	invalidTotPayment := 0
	for _, tr := range data.TotPayment {
		if tr.Status == rules.StatusInvalid {
			invalidTotPayment++
		}
	}

	fmt.Printf("Field checks:          %d (%d failed)\n", len(data.Validations), failedChecks)
	fmt.Printf("Structure results:     %d (%d invalid)\n", len(data.Structure), invalidStructure)
	fmt.Printf("Sequence results:      %d (%d invalid)\n", len(data.Sequence), invalidSequence)
	fmt.Printf("Tot payment results:   %d (%d invalid)\n", len(data.TotPayment), invalidTotPayment)
	fmt.Printf("Duplicate sets:        %d\n", len(data.Duplicates))
	fmt.Printf("Zero-amount rows:      %d\n", len(data.ZeroAmount))
	fmt.Printf("Filtered transactions: %d\n", len(data.Filtered))

	if len(result.Warnings) > 0 {
		fmt.Printf("\nWarnings (%d):\n", len(result.Warnings))
		for _, w := range result.Warnings {
			fmt.Printf("  line %d: %s\n", w.Line, w.Reason)
		}
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the validate command and its flags.
func init() {
	validateCmd.Flags().StringVar(&validateFile, "file", "", "Path to the PTSTMT statement file (required)")
	validateCmd.Flags().StringVar(&validateCardType, "card-type", "", "Card type: REGULAR or CORPORATE")
	validateCmd.Flags().StringVar(&validateFrom, "from", "", "Posting-date window start (YYYY-MM-DD)")
	validateCmd.Flags().StringVar(&validateUntil, "until", "", "Posting-date window end (YYYY-MM-DD)")
	validateCmd.Flags().BoolVar(&validateStream, "stream", false, "Emit the line-delimited event protocol on stdout")
	validateCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(validateCmd)
}
