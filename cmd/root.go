// =============================================================================
// StatementGuard - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (statementguard)
//   ├── validateCmd (statementguard validate)
//   ├── bridgeCmd   (statementguard bridge)
//   ├── exportCmd   (statementguard export)
//   └── versionCmd  (statementguard version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading .env and the YAML configuration file
//   3. Setting up the stderr logger
//
// Diagnostics always go to stderr. Stdout is reserved for command output,
// which for 'bridge' and 'validate --stream' is the line-delimited event
// protocol consumed by host processes.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ridhanshr/StatementGuard/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose forces debug-level logging regardless of the configured level.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "statementguard",

	Short: "StatementGuard - Validate fixed-format PTSTMT card statement files",

	Long: `StatementGuard is a CLI tool that validates fixed-format PTSTMT card
statement files against a set of business rules: balance and credit-limit
recomputation, record structure and ordering, total-payment reconciliation,
duplicate and zero-amount transaction detection, and posting-date filtering.

Results stream incrementally as line-delimited events, so host applications
can render progress and partial findings while large files are still being
scanned.

Example Usage:
  statementguard validate --file PTSTMT.TXT            # Human-readable summary
  statementguard validate --file PTSTMT.TXT --stream   # Event protocol on stdout
  statementguard bridge                                # JSON params on stdin
  statementguard export --file PTSTMT.TXT --format xlsx`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// RUNTIME SETUP
// =============================================================================

// setup loads the configuration and builds the stderr logger. Called at the
// start of every subcommand's Run function.
func setup() (*config.MainConfig, *zap.Logger, error) {
	// A .env file is optional.
	_ = godotenv.Load()

	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logger, nil
}

// buildLogger creates a production zap logger writing to stderr only.
func buildLogger(level string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	return zc.Build()
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
