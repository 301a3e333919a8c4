// =============================================================================
// StatementGuard - Record Decoding Tests
// =============================================================================

package ptstmt

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

// buildLine constructs a fixed-width line of the given width, placing each
// field value at its 1-based start column.
func buildLine(width int, fields map[int]string) string {
	buf := []byte(strings.Repeat(" ", width))
	for start, value := range fields {
		copy(buf[start-1:], value)
	}
	return string(buf)
}

func TestRecordTypeDetection(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantType RecordType
	}{
		{"header", buildLine(minWidthHeader, map[int]string{1: "01"}), TypeHeader},
		{"account", buildLine(minWidthAccount, map[int]string{1: "02"}), TypeAccount},
		{"transaction", buildLine(minWidthTransaction, map[int]string{1: "03", colPostingDateStart: "20251101"}), TypeTransaction},
		{"trailer", "04", TypeTrailer},
		{"unknown code", "99 something", TypeUnknown},
		{"empty line", "", TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := ParseLine(1, tt.line)
			if rec.Type != tt.wantType {
				t.Errorf("type = %q, want %q", rec.Type, tt.wantType)
			}
		})
	}
}

func TestUnknownTypeWarns(t *testing.T) {
	rec, warning := ParseLine(7, "ZZ garbage")
	if rec.Type != TypeUnknown {
		t.Fatalf("type = %q, want %q", rec.Type, TypeUnknown)
	}
	if warning == nil {
		t.Fatal("expected a warning for an unrecognized type code")
	}
	if warning.Line != 7 {
		t.Errorf("warning line = %d, want 7", warning.Line)
	}
}

func TestParseHeader(t *testing.T) {
	line := buildLine(minWidthHeader, map[int]string{1: "01", colCustomerStart: "CUST0001"})
	rec, warning := ParseLine(1, line)
	if warning != nil {
		t.Fatalf("unexpected warning: %v", warning)
	}
	if rec.Malformed {
		t.Fatal("record unexpectedly malformed")
	}
	if rec.Header == nil || rec.Header.Customer != "CUST0001" {
		t.Errorf("header = %+v, want customer CUST0001", rec.Header)
	}
}

func TestParseHeaderShortLine(t *testing.T) {
	rec, warning := ParseLine(1, "01 CUST")
	if !rec.Malformed {
		t.Error("short header should be malformed")
	}
	if warning == nil {
		t.Error("short header should warn")
	}
	if rec.Header == nil {
		t.Error("short header should still decode as far as possible")
	}
}

func TestParseAccountFields(t *testing.T) {
	line := buildLine(minWidthAccount, map[int]string{
		1:                       "02",
		colCardStart:            "4111222233334444",
		colAmountDueStart:       "50000",
		colCreditLimitStart:     "500000",
		colAvailableCreditStart: "375000",
		colPrevBalanceStart:     "100000",
		colTotPaymentStart:      "10000",
		colInterestStart:        "5000",
		colNewBalanceStart:      "125000",
	})

	rec, warning := ParseLine(1, line)
	if warning != nil {
		t.Fatalf("unexpected warning: %v", warning)
	}
	acct := rec.Account
	if acct == nil {
		t.Fatal("account payload missing")
	}

	if acct.Card != "4111222233334444" {
		t.Errorf("card = %q", acct.Card)
	}
	wantAmounts := map[string]struct {
		got  decimal.Decimal
		want int64
	}{
		"amount due":       {acct.AmountDue, 50000},
		"credit limit":     {acct.CreditLimit, 500000},
		"available credit": {acct.AvailableCredit, 375000},
		"prev balance":     {acct.PrevBalance, 100000},
		"tot payment":      {acct.TotPayment, 10000},
		"interest":         {acct.Interest, 5000},
		"new balance":      {acct.NewBalance, 125000},
		"installment":      {acct.Installment, 0},
	}
	for name, a := range wantAmounts {
		if !a.got.Equal(decimal.NewFromInt(a.want)) {
			t.Errorf("%s = %s, want %d", name, a.got, a.want)
		}
	}
}

func TestParseAccountNegativeBalance(t *testing.T) {
	line := buildLine(minWidthAccount, map[int]string{
		1:                  "02",
		colCardStart:       "4111222233334444",
		colNewBalanceStart: "75000-",
	})
	rec, _ := ParseLine(1, line)
	if !rec.Account.NewBalance.Equal(decimal.NewFromInt(-75000)) {
		t.Errorf("new balance = %s, want -75000", rec.Account.NewBalance)
	}
}

func TestParseTransaction(t *testing.T) {
	line := buildLine(minWidthTransaction, map[int]string{
		1:                   "03",
		colCardStart:        "4111222233334444",
		colPostingDateStart: "20251101",
		colDetailStart:      "COFFEE SHOP PURCHASE",
		colAmountStart:      "2500",
		colDirectionStart:   "DR",
	})

	rec, warning := ParseLine(1, line)
	if warning != nil {
		t.Fatalf("unexpected warning: %v", warning)
	}
	tx := rec.Transaction
	if tx == nil {
		t.Fatal("transaction payload missing")
	}
	if tx.Detail != "COFFEE SHOP PURCHASE" {
		t.Errorf("detail = %q", tx.Detail)
	}
	if got := tx.PostingDate.Format("2006-01-02"); got != "2025-11-01" {
		t.Errorf("posting date = %s", got)
	}
	if !tx.Amount.Equal(decimal.NewFromInt(2500)) || tx.Direction != Debit {
		t.Errorf("amount/direction = %s %s, want 2500 DR", tx.Amount, tx.Direction)
	}
}

func TestNegativeAmountFlipsDirection(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		dir     string
		wantAmt int64
		wantDir Direction
	}{
		{"negative debit becomes credit", "2500-", "DR", 2500, Credit},
		{"negative credit becomes debit", "2500-", "CR", 2500, Debit},
		{"positive stays put", "2500", "CR", 2500, Credit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := buildLine(minWidthTransaction, map[int]string{
				1:                   "03",
				colPostingDateStart: "20251101",
				colAmountStart:      tt.amount,
				colDirectionStart:   tt.dir,
			})
			rec, _ := ParseLine(1, line)
			tx := rec.Transaction
			if !tx.Amount.Equal(decimal.NewFromInt(tt.wantAmt)) {
				t.Errorf("amount = %s, want %d", tx.Amount, tt.wantAmt)
			}
			if tx.Direction != tt.wantDir {
				t.Errorf("direction = %s, want %s", tx.Direction, tt.wantDir)
			}
		})
	}
}

func TestTransactionBadPostingDate(t *testing.T) {
	line := buildLine(minWidthTransaction, map[int]string{
		1:                   "03",
		colPostingDateStart: "2025ABCD",
		colAmountStart:      "100",
		colDirectionStart:   "DR",
	})
	rec, warning := ParseLine(3, line)
	if !rec.Malformed {
		t.Error("unparseable posting date should mark the record malformed")
	}
	if warning == nil {
		t.Error("unparseable posting date should warn")
	}
}

func TestSliceNum(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int64
	}{
		{"plain digits", "12345", 12345},
		{"padded digits", "  12345  ", 12345},
		{"empty", "", 0},
		{"blank", "     ", 0},
		{"trailing minus", "500-", -500},
		{"trailing minus with padding", " 500 - ", -500},
		{"non numeric", "12A45", 0},
		{"lone minus", "-", 0},
		{"decimal point rejected", "12.5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sliceNum(tt.raw, 1, len(tt.raw))
			if !got.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("sliceNum(%q) = %s, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSliceNumWholeLineBlank(t *testing.T) {
	// Columns entirely past the end of the line read as blank, not a panic.
	if got := sliceNum("02", 100, 110); !got.IsZero() {
		t.Errorf("out-of-range slice = %s, want 0", got)
	}
	if got := sliceStr("02", 100, 110); got != "" {
		t.Errorf("out-of-range slice = %q, want empty", got)
	}
}

func TestSliceStrPartialOverlap(t *testing.T) {
	// A line ending mid-field yields the available prefix.
	if got := sliceStr("01ABCDE", 3, 18); got != "ABCDE" {
		t.Errorf("partial slice = %q, want ABCDE", got)
	}
}
