// =============================================================================
// StatementGuard - Version Command
// =============================================================================
//
// This file defines the 'version' command, which displays the application
// version and build information.
//
// COMMAND USAGE:
//   statementguard version
//
// OUTPUT:
//   statementguard 1.0.0 (commit unknown, built unknown, go1.24.0)
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// =============================================================================
// VERSION INFORMATION
// =============================================================================
// Set at build time using ldflags, e.g.:
//   go build -ldflags "-X 'cmd.Version=1.0.0' -X 'cmd.GitCommit=$(git rev-parse --short HEAD)' -X 'cmd.BuildDate=$(date -u +%Y-%m-%d)'"

var (
	// Version is the application version.
	Version = "1.0.0"

	// GitCommit is the short hash of the commit the binary was built from.
	GitCommit = "unknown"

	// BuildDate is the date the application was built.
	BuildDate = "unknown"
)

// =============================================================================
// VERSION COMMAND DEFINITION
// =============================================================================

// versionCmd represents the 'version' command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Long:  `Display the application version, source commit, build date, and Go runtime version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(versionString())
	},
}

// versionString renders the single-line version banner.
func versionString() string {
	return fmt.Sprintf("statementguard %s (commit %s, built %s, %s)",
		Version, GitCommit, BuildDate, runtime.Version())
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the version command with the root command.
func init() {
	rootCmd.AddCommand(versionCmd)
}
