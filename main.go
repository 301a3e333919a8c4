// =============================================================================
// StatementGuard - Main Entry Point
// =============================================================================
//
// This is the main entry point for the StatementGuard CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   statementguard validate  - Validate a PTSTMT statement file
//   statementguard bridge    - Run a validation driven by JSON params on stdin
//   statementguard export    - Validate and write CSV/XLSX report files
//   statementguard version   - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/ridhanshr/StatementGuard/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
