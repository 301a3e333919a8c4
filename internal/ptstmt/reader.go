// =============================================================================
// StatementGuard - PTSTMT File Reader
// =============================================================================
//
// Streaming reader for PTSTMT files. Statement extracts can run to millions
// of lines, so the reader decodes one line at a time instead of loading the
// file into memory.
//
// PTSTMT extracts are produced on systems that write latin-1; the reader
// decodes ISO 8859-1 so byte values above 0x7F in transaction details survive
// as valid UTF-8 strings.
//
// USAGE:
//   r, err := ptstmt.Open(path)
//   if err != nil {
//       return err
//   }
//   defer r.Close()
//
//   for r.Next() {
//       rec := r.Record()
//       // Process the record...
//   }
//   if err := r.Err(); err != nil {
//       return err
//   }
//   warnings := r.Warnings()
//
// =============================================================================

package ptstmt

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/text/encoding/charmap"
)

// maxLineBytes bounds a single statement line. Print layouts top out around
// 1000 columns; anything past this is a corrupt file, not a wide record.
const maxLineBytes = 1 << 20

// Reader streams typed records from a PTSTMT file.
type Reader struct {
	file     *os.File
	scanner  *bufio.Scanner
	current  Record
	line     int
	warnings []Warning
	err      error
}

// Open opens a PTSTMT file for streaming. A missing or unreadable file is
// the one fatal parse-level failure; everything after a successful Open is
// recorded as warnings instead.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open statement file: %w", err)
	}

	decoded := charmap.ISO8859_1.NewDecoder().Reader(bufio.NewReader(file))
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	return &Reader{
		file:    file,
		scanner: scanner,
	}, nil
}

// Next advances to the next record. It returns false at end of file or on a
// read error; check Err afterwards.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			r.err = fmt.Errorf("error reading statement line %d: %w", r.line+1, err)
		}
		return false
	}

	r.line++
	rec, warning := ParseLine(r.line, r.scanner.Text())
	if warning != nil {
		r.warnings = append(r.warnings, *warning)
	}
	r.current = rec
	return true
}

// Record returns the record decoded by the last call to Next.
func (r *Reader) Record() Record {
	return r.current
}

// LineNumber returns the number of lines consumed so far.
func (r *Reader) LineNumber() int {
	return r.line
}

// Warnings returns the parse warnings accumulated so far.
func (r *Reader) Warnings() []Warning {
	return r.warnings
}

// Err returns the first read error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// CountLines counts the lines of a PTSTMT file. The engine uses the total to
// turn lines-consumed into a progress percentage before the real pass starts.
func CountLines(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open statement file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(bufio.NewReader(file))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	count := 0
	for scanner.Scan() {
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("error counting statement lines: %w", err)
	}
	return count, nil
}
