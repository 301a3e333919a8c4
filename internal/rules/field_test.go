// =============================================================================
// StatementGuard - Field Validation Tests
// =============================================================================

package rules

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ridhanshr/StatementGuard/internal/ptstmt"
)

func dec(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func findCheck(t *testing.T, checks []FieldCheck, field string) FieldCheck {
	t.Helper()
	for _, chk := range checks {
		if chk.Field == field {
			return chk
		}
	}
	t.Fatalf("no check for field %s", field)
	return FieldCheck{}
}

func TestValidateAccountBlockAllPass(t *testing.T) {
	// expected NEW_BAL = 30000 + 100000 + 5000 - 10000 = 125000
	// expected AVL     = 500000 - 125000 - 0        = 375000
	// expected MIN     = max(round(125000 * 5%), 50000) = 50000
	acct := &ptstmt.AccountFields{
		Card:            "4111222233334444",
		PrevBalance:     dec(100000),
		Interest:        dec(5000),
		CreditLimit:     dec(500000),
		NewBalance:      dec(125000),
		AvailableCredit: dec(375000),
		AmountDue:       dec(50000),
	}
	stats := BlockStats{Debit: dec(30000), Credit: dec(10000)}

	checks := ValidateAccountBlock(acct, stats, CardRegular)
	if len(checks) != 3 {
		t.Fatalf("checks = %d, want 3", len(checks))
	}
	for _, chk := range checks {
		if chk.Status != StatusPass {
			t.Errorf("%s: status = %s (expected %s, actual %s)", chk.Field, chk.Status, chk.Expected, chk.Actual)
		}
		if chk.Card != acct.Card {
			t.Errorf("%s: card = %q", chk.Field, chk.Card)
		}
	}
}

func TestValidateAccountBlockMismatch(t *testing.T) {
	acct := &ptstmt.AccountFields{
		Card:       "4111222233334444",
		NewBalance: dec(999999), // stated, disagrees with computed
	}
	stats := BlockStats{Debit: dec(1000)}

	chk := findCheck(t, ValidateAccountBlock(acct, stats, CardRegular), FieldNewBalance)
	if chk.Status != StatusFail {
		t.Errorf("status = %s, want FAIL", chk.Status)
	}
	if !chk.Expected.Equal(dec(1000)) {
		t.Errorf("expected = %s, want 1000", chk.Expected)
	}
	if !chk.Actual.Equal(dec(999999)) {
		t.Errorf("actual = %s, want 999999", chk.Actual)
	}
}

func TestExpectedMinPayment(t *testing.T) {
	tests := []struct {
		name       string
		newBalance int64
		cardType   CardType
		want       int64
	}{
		{"regular above floor", 2000000, CardRegular, 100000},
		{"regular at floor", 1000000, CardRegular, 50000},
		{"regular below floor", 100000, CardRegular, 50000},
		{"corporate pays full balance", 2000000, CardCorporate, 2000000},
		{"zero balance regular", 0, CardRegular, 0},
		{"negative balance regular", -5000, CardRegular, 0},
		{"negative balance corporate", -5000, CardCorporate, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expectedMinPayment(dec(tt.newBalance), tt.cardType)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("expectedMinPayment(%d, %s) = %s, want %d", tt.newBalance, tt.cardType, got, tt.want)
			}
		})
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"2.4", 2},
		{"2.5", 3},
		{"2.6", 3},
		{"-2.4", -2},
		{"-2.5", -2}, // halves round towards positive infinity
		{"-2.6", -3},
		{"0", 0},
	}

	for _, tt := range tests {
		in, err := decimal.NewFromString(tt.in)
		if err != nil {
			t.Fatalf("bad fixture %q: %v", tt.in, err)
		}
		if got := roundHalfUp(in); !got.Equal(dec(tt.want)) {
			t.Errorf("roundHalfUp(%s) = %s, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBlockStatsObserve(t *testing.T) {
	var stats BlockStats
	stats.Observe(&ptstmt.TransactionFields{Amount: dec(100), Direction: ptstmt.Debit})
	stats.Observe(&ptstmt.TransactionFields{Amount: dec(40), Direction: ptstmt.Credit})
	stats.Observe(&ptstmt.TransactionFields{Amount: dec(60), Direction: ptstmt.Debit})

	if !stats.Debit.Equal(dec(160)) {
		t.Errorf("debit total = %s, want 160", stats.Debit)
	}
	if !stats.Credit.Equal(dec(40)) {
		t.Errorf("credit total = %s, want 40", stats.Credit)
	}
}
