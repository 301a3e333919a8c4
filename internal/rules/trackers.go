// =============================================================================
// StatementGuard - Transaction-Level Checks (Checks 4-7)
// =============================================================================
//
// The remaining four checks operate on individual transactions as the scan
// encounters them. Zero-amount and posting-date results stream row by row;
// duplicate detection and total-payment reconciliation accumulate per-key
// state across the whole file and report once at end of run. The trackers
// keep aggregates only (counts and sums keyed by card), never the full
// transaction list, so memory stays bounded on large extracts.
//
// =============================================================================

package rules

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ridhanshr/StatementGuard/internal/ptstmt"
)

// rowDateLayout is the date format used in result rows.
const rowDateLayout = "2006-01-02"

// =============================================================================
// POSTING DATE FILTER
// =============================================================================

// DateWindow is the optional [From, Until] posting-date window. A nil bound
// is open; a window with both bounds nil disables the filter entirely.
type DateWindow struct {
	From  *time.Time
	Until *time.Time
}

// Empty reports whether no bounds were supplied.
func (w DateWindow) Empty() bool {
	return w.From == nil && w.Until == nil
}

// Outside reports whether t falls strictly outside the window.
func (w DateWindow) Outside(t time.Time) bool {
	if w.From != nil && t.Before(*w.From) {
		return true
	}
	if w.Until != nil && t.After(*w.Until) {
		return true
	}
	return false
}

// FilterPosting flags a transaction posted outside the window. With an empty
// window the check is a no-op and returns nil for every transaction.
func FilterPosting(w DateWindow, rec ptstmt.Record) *FilteredTransaction {
	tx := rec.Transaction
	if w.Empty() || tx == nil || !w.Outside(tx.PostingDate) {
		return nil
	}
	return &FilteredTransaction{
		PostingDate: tx.PostingDate.Format(rowDateLayout),
		Card:        tx.Card,
		Line:        rec.Raw,
	}
}

// =============================================================================
// ZERO AMOUNT CHECK
// =============================================================================

// CheckZeroAmount flags a transaction whose normalized amount is exactly
// zero, or returns nil.
func CheckZeroAmount(tx *ptstmt.TransactionFields) *ZeroAmountResult {
	if !tx.Amount.IsZero() {
		return nil
	}
	return &ZeroAmountResult{
		Card:        tx.Card,
		PostingDate: tx.PostingDate.Format(rowDateLayout),
		Detail:      tx.Detail,
		Amount:      tx.Amount,
		Direction:   string(tx.Direction),
	}
}

// =============================================================================
// DUPLICATE DETECTION
// =============================================================================

type duplicateKey struct {
	card      string
	posting   string
	detail    string
	amount    string
	direction ptstmt.Direction
}

// DuplicateTracker counts transactions by (card, posting date, detail,
// amount, direction) across the run.
type DuplicateTracker struct {
	counts map[duplicateKey]int
	order  []duplicateKey
}

// NewDuplicateTracker creates an empty tracker.
func NewDuplicateTracker() *DuplicateTracker {
	return &DuplicateTracker{counts: make(map[duplicateKey]int)}
}

// Observe adds one transaction.
func (t *DuplicateTracker) Observe(tx *ptstmt.TransactionFields) {
	key := duplicateKey{
		card:      tx.Card,
		posting:   tx.PostingDate.Format(rowDateLayout),
		detail:    tx.Detail,
		amount:    tx.Amount.String(),
		direction: tx.Direction,
	}
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// Results returns one row per duplicated key (count >= 2), in first-seen
// order. A set of three identical transactions yields a single row with
// count 3.
func (t *DuplicateTracker) Results() []DuplicateResult {
	var results []DuplicateResult
	for _, key := range t.order {
		count := t.counts[key]
		if count < 2 {
			continue
		}
		amount, _ := decimal.NewFromString(key.amount)
		results = append(results, DuplicateResult{
			Card:        key.card,
			PostingDate: key.posting,
			Detail:      key.detail,
			Amount:      amount,
			Direction:   string(key.direction),
			Count:       count,
		})
	}
	return results
}

// =============================================================================
// TOT PAYMENT CHECK
// =============================================================================

// TotPaymentTracker reconciles each card's stated total payment against the
// sum of its credit-direction transactions.
type TotPaymentTracker struct {
	stated  map[string]decimal.Decimal
	crTotal map[string]decimal.Decimal
	hasCR   map[string]bool
	order   []string
}

// NewTotPaymentTracker creates an empty tracker.
func NewTotPaymentTracker() *TotPaymentTracker {
	return &TotPaymentTracker{
		stated:  make(map[string]decimal.Decimal),
		crTotal: make(map[string]decimal.Decimal),
		hasCR:   make(map[string]bool),
	}
}

// ObserveAccount registers a card and its stated total payment.
func (t *TotPaymentTracker) ObserveAccount(acct *ptstmt.AccountFields) {
	if _, seen := t.stated[acct.Card]; !seen {
		t.order = append(t.order, acct.Card)
	}
	t.stated[acct.Card] = acct.TotPayment
}

// ObserveTransaction adds a transaction under the card of the account block
// it appeared in. Transactions outside any account block are not
// attributable to a card and are skipped.
func (t *TotPaymentTracker) ObserveTransaction(card string, tx *ptstmt.TransactionFields) {
	if card == "" || tx.Direction != ptstmt.Credit {
		return
	}
	if _, seen := t.stated[card]; !seen {
		return
	}
	t.crTotal[card] = t.crTotal[card].Add(tx.Amount)
	t.hasCR[card] = true
}

// Results returns one row per card in account order. VALID requires the
// stated total to equal the credit sum exactly.
func (t *TotPaymentTracker) Results() []TotPaymentResult {
	results := make([]TotPaymentResult, 0, len(t.order))
	for _, card := range t.order {
		stated := t.stated[card]
		crTotal := t.crTotal[card]

		status := StatusValid
		if !stated.Equal(crTotal) {
			status = StatusInvalid
		}
		results = append(results, TotPaymentResult{
			Card:       card,
			TotPayment: stated,
			HasCR:      t.hasCR[card],
			CRTotal:    crTotal,
			Status:     status,
		})
	}
	return results
}
