// =============================================================================
// StatementGuard - Bridge Command
// =============================================================================
//
// This file defines the 'bridge' command, the machine interface for host
// applications that embed StatementGuard as a subprocess.
//
// COMMAND USAGE:
//   echo '{"file_path":"PTSTMT.TXT","card_type":"REGULAR"}' | statementguard bridge
//
// PROTOCOL:
//   Input:  a single JSON object on stdin with the run parameters
//           (file_path, card_type, from_date, until_date).
//   Output: line-delimited events on stdout:
//             PROGRESS:{...}   progress updates
//             DATA:{...}       incremental result batches
//             {...}            the bare final JSON result (last line)
//
// The final result line is always emitted, even when the run fails; the
// exit code mirrors its "success" field so shell callers do not need to
// parse JSON to detect failure.
//
// =============================================================================

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ridhanshr/StatementGuard/internal/engine"
	"github.com/ridhanshr/StatementGuard/internal/stream"
)

// =============================================================================
// BRIDGE COMMAND DEFINITION
// =============================================================================

// bridgeCmd represents the 'bridge' command.
var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Run a validation driven by JSON parameters on stdin",
	Long: `Read run parameters as a single JSON object from stdin, run the
validation, and stream events to stdout using the line-delimited protocol.

Intended for host applications; humans should prefer 'validate'.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runBridge(cmd.InOrStdin(), os.Stdout)
	},
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runBridge(in io.Reader, out io.Writer) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	w := stream.NewWriter(out)

	var params engine.Params
	if err := json.NewDecoder(in).Decode(&params); err != nil {
		return bridgeFail(w, fmt.Errorf("failed to decode run parameters: %w", err))
	}

	runner, err := engine.NewRunner(params, engine.Options{
		BatchSize:        cfg.BatchSize,
		ProgressInterval: cfg.ProgressInterval,
		Logger:           logger,
	})
	if err != nil {
		return bridgeFail(w, err)
	}

	result, err := stream.Pump(runner.Run(), w)
	if err != nil {
		return err
	}

	if !result.Success {
		// The final result line already carries the error detail; the
		// non-zero exit just mirrors it for shell callers.
		return fmt.Errorf("validation run failed: %s", result.Error)
	}
	return nil
}

// bridgeFail emits the terminal failure line before the command exits
// non-zero. A host reading the stream always sees a final result, even when
// the run never started.
func bridgeFail(w *stream.Writer, cause error) error {
	if err := w.Write(engine.ResultEvent{Success: false, Error: cause.Error()}); err != nil {
		return fmt.Errorf("%v (and writing the failure result failed: %v)", cause, err)
	}
	return cause
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the bridge command.
func init() {
	rootCmd.AddCommand(bridgeCmd)
}
