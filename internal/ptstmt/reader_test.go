// =============================================================================
// StatementGuard - File Reader Tests
// =============================================================================

package ptstmt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeStatement writes raw bytes to a temp statement file and returns its
// path.
func writeStatement(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "PTSTMT.TXT")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestReaderStreamsRecords(t *testing.T) {
	lines := []string{
		buildLine(minWidthHeader, map[int]string{1: "01", colCustomerStart: "CUST0001"}),
		buildLine(minWidthAccount, map[int]string{1: "02", colCardStart: "4111222233334444"}),
		buildLine(minWidthTransaction, map[int]string{1: "03", colPostingDateStart: "20251101", colAmountStart: "100", colDirectionStart: "DR"}),
		"04",
	}
	path := writeStatement(t, []byte(strings.Join(lines, "\n")+"\n"))

	r, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer r.Close()

	var types []RecordType
	for r.Next() {
		types = append(types, r.Record().Type)
	}
	if err := r.Err(); err != nil {
		t.Fatalf("read failed: %v", err)
	}

	want := []RecordType{TypeHeader, TypeAccount, TypeTransaction, TypeTrailer}
	if len(types) != len(want) {
		t.Fatalf("got %d records, want %d", len(types), len(want))
	}
	for i, typ := range want {
		if types[i] != typ {
			t.Errorf("record %d type = %q, want %q", i, types[i], typ)
		}
	}
	if r.LineNumber() != 4 {
		t.Errorf("line number = %d, want 4", r.LineNumber())
	}
	if len(r.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", r.Warnings())
	}
}

func TestReaderDecodesLatin1(t *testing.T) {
	// 0xC9 is 'É' in ISO 8859-1 and an invalid byte on its own in UTF-8.
	line := []byte(buildLine(minWidthTransaction, map[int]string{
		1:                   "03",
		colPostingDateStart: "20251101",
		colDetailStart:      "CAFX PARIS",
		colAmountStart:      "100",
		colDirectionStart:   "DR",
	}))
	line[colDetailStart+2] = 0xC9 // CAF\xc9 PARIS
	path := writeStatement(t, append(line, '\n'))

	r, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer r.Close()

	if !r.Next() {
		t.Fatalf("expected one record, err=%v", r.Err())
	}
	detail := r.Record().Transaction.Detail
	if !strings.Contains(detail, "É") {
		t.Errorf("detail = %q, want latin-1 byte decoded to É", detail)
	}
}

func TestReaderAccumulatesWarnings(t *testing.T) {
	content := "ZZ not a record\n01 TOO SHORT\n"
	path := writeStatement(t, []byte(content))

	r, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer r.Close()

	records := 0
	for r.Next() {
		records++
	}
	if records != 2 {
		t.Errorf("records = %d, want 2", records)
	}
	if len(r.Warnings()) != 2 {
		t.Errorf("warnings = %d, want 2: %v", len(r.Warnings()), r.Warnings())
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestCountLines(t *testing.T) {
	path := writeStatement(t, []byte("a\nb\nc\n"))
	n, err := CountLines(path)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}
