// =============================================================================
// StatementGuard - Report File Utilities
// =============================================================================
//
// This module provides file utilities for report output, including:
//   - Report directory management
//   - Report file naming with placeholder substitution
//   - Retention cleanup for old reports
//
// NAMING STRATEGY:
//   - Report names come from a configurable placeholder format, so operators
//     can align file names with their downstream ingestion jobs.
//   - Every generated name carries a UUID, so concurrent runs never collide.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureReportDir creates the report directory if it does not exist.
func EnsureReportDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// REPORT FILE NAMING
// =============================================================================

// ReportFileName generates a report file name from a placeholder format.
//
// PARAMETERS:
//   - format: The format string for the file name, without extension.
//     Placeholders:
//     {category}  - Result category name
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {date}      - Current date (YYYYMMDD)
//     {time}      - Current time (HHMMSS)
//   - category: The result category substituted for {category}.
//
// EXAMPLE:
//
//	format:   "{category}_{timestamp}_{uuid}"
//	category: "validations"
//	output:   "validations_20260115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890"
func ReportFileName(format, category string) string {
	now := time.Now()

	replacements := map[string]string{
		"{category}":  category,
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	return result
}

// =============================================================================
// RETENTION
// =============================================================================

// CleanOldReports removes report files older than the specified duration.
//
// RETURNS:
//   - The number of files removed.
//   - An error if cleaning fails.
func CleanOldReports(reportDir string, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	removed := 0

	err := filepath.Walk(reportDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				return err
			}
			removed++
		}

		return nil
	})

	if err != nil {
		return removed, fmt.Errorf("failed to clean report directory: %w", err)
	}

	return removed, nil
}
