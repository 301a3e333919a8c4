// =============================================================================
// StatementGuard - Field Validation (Check 1)
// =============================================================================
//
// Field validation recomputes three card-level figures from an account
// block's transactions and compares them against the stated values on the
// account record:
//
//   NEW_BAL           = round(DR total + previous balance + interest - CR total)
//   AVL_CR_LIMIT      = round(credit limit - NEW_BAL - installment)
//   PT_SH_MIN_PAYMENT = NEW_BAL                       (corporate cards)
//                       max(round(NEW_BAL * 5%), 50000) (regular cards)
//                       0 when NEW_BAL <= 0
//
// All comparison is exact decimal equality at a fixed scale; no floating
// point is involved anywhere in the computation.
//
// =============================================================================

package rules

import (
	"github.com/shopspring/decimal"

	"github.com/ridhanshr/StatementGuard/internal/ptstmt"
)

// CardType selects the minimum-payment formula.
type CardType string

const (
	CardRegular   CardType = "REGULAR"
	CardCorporate CardType = "CORPORATE"
)

// Field names reported by the field validation rows.
const (
	FieldNewBalance = "NEW_BAL"
	FieldAvailable  = "AVL_CR_LIMIT"
	FieldMinPayment = "PT_SH_MIN_PAYMENT"
)

var (
	// minPaymentRate and minPaymentFloor define the regular-card minimum
	// payment: 5% of the new balance, floored at 50000 minor units.
	minPaymentRate  = decimal.New(5, -2)
	minPaymentFloor = decimal.NewFromInt(50000)

	pointFive = decimal.New(5, -1)
)

// BlockStats accumulates the debit and credit totals of one account block's
// transactions.
type BlockStats struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Observe adds a transaction to the block totals.
func (s *BlockStats) Observe(tx *ptstmt.TransactionFields) {
	switch tx.Direction {
	case ptstmt.Credit:
		s.Credit = s.Credit.Add(tx.Amount)
	default:
		s.Debit = s.Debit.Add(tx.Amount)
	}
}

// ValidateAccountBlock produces the three field checks for a completed
// account block.
func ValidateAccountBlock(acct *ptstmt.AccountFields, stats BlockStats, cardType CardType) []FieldCheck {
	expectedNew := roundHalfUp(stats.Debit.Add(acct.PrevBalance).Add(acct.Interest).Sub(stats.Credit))
	expectedAvl := roundHalfUp(acct.CreditLimit.Sub(expectedNew).Sub(acct.Installment))
	expectedMin := expectedMinPayment(expectedNew, cardType)

	return []FieldCheck{
		check(acct.Card, FieldNewBalance, expectedNew, acct.NewBalance),
		check(acct.Card, FieldAvailable, expectedAvl, acct.AvailableCredit),
		check(acct.Card, FieldMinPayment, expectedMin, acct.AmountDue),
	}
}

func expectedMinPayment(newBalance decimal.Decimal, cardType CardType) decimal.Decimal {
	if newBalance.Sign() <= 0 {
		return decimal.Zero
	}
	if cardType == CardCorporate {
		return newBalance
	}
	min := roundHalfUp(newBalance.Mul(minPaymentRate))
	if min.LessThan(minPaymentFloor) {
		return minPaymentFloor
	}
	return min
}

func check(card, field string, expected, actual decimal.Decimal) FieldCheck {
	status := StatusFail
	if expected.Equal(actual) {
		status = StatusPass
	}
	return FieldCheck{
		Card:     card,
		Field:    field,
		Expected: expected,
		Actual:   actual,
		Status:   status,
	}
}

// roundHalfUp rounds to the nearest integer with halves rounding towards
// positive infinity (floor(x + 0.5)), matching the statement system's
// rounding of computed balances.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(pointFive).Floor()
}
