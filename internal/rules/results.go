// =============================================================================
// StatementGuard - Validation Result Rows
// =============================================================================
//
// Row types produced by the seven checks. Every row is a plain value struct
// tagged for both the JSON wire protocol and CSV report export; consumers
// append streamed rows per category and treat the final payload as a full
// overwrite.
//
// Rule violations are rows, never errors: an INVALID or FAIL status is an
// expected business outcome of a successful run.
//
// =============================================================================

package rules

import "github.com/shopspring/decimal"

// Statuses used across the result rows.
const (
	// StatusPass / StatusFail apply to per-field checks.
	StatusPass = "PASS"
	StatusFail = "FAIL"

	// StatusValid / StatusInvalid apply to per-customer and per-card checks.
	StatusValid   = "VALID"
	StatusInvalid = "INVALID"
)

// Category names for the seven result sets. These tag the streamed data
// batches and key the final payload.
const (
	CategoryValidations = "validations"
	CategoryFiltered    = "filtered_transactions"
	CategoryStructure   = "structure_results"
	CategoryDuplicates  = "duplicate_transactions"
	CategoryZeroAmount  = "zero_amount_transactions"
	CategoryTotPayment  = "tot_payment_results"
	CategorySequence    = "sequence_results"
)

// Categories lists all seven category names in report order.
var Categories = []string{
	CategoryValidations,
	CategoryFiltered,
	CategoryStructure,
	CategoryDuplicates,
	CategoryZeroAmount,
	CategoryTotPayment,
	CategorySequence,
}

// FieldCheck is one field-level comparison for a card: the expected value
// computed from the block's transactions against the stated value on the
// account record.
type FieldCheck struct {
	Card     string          `json:"card" csv:"card"`
	Field    string          `json:"field" csv:"field"`
	Expected decimal.Decimal `json:"expected" csv:"expected"`
	Actual   decimal.Decimal `json:"actual" csv:"actual"`
	Status   string          `json:"status" csv:"status"`
}

// StructureResult reports which record types a customer block contains.
type StructureResult struct {
	Customer string `json:"customer" csv:"customer"`
	Has01    bool   `json:"has_01" csv:"has_01"`
	Has02    bool   `json:"has_02" csv:"has_02"`
	Has03    bool   `json:"has_03" csv:"has_03"`
	Has04    bool   `json:"has_04" csv:"has_04"`
	Status   string `json:"status" csv:"status"`

	// Missing lists the absent record types, sorted, joined with ", ".
	// "-" when nothing is missing.
	Missing string `json:"missing" csv:"missing"`
}

// SequenceResult reports whether a customer block's record types appear in
// canonical order.
type SequenceResult struct {
	Customer string `json:"customer" csv:"customer"`

	// Sequence is the observed type signature, e.g. "01->02->03->04".
	Sequence string `json:"sequence" csv:"sequence"`
	Status   string `json:"status" csv:"status"`
}

// TotPaymentResult reconciles a card's stated total payment against the sum
// of its credit-direction transactions.
type TotPaymentResult struct {
	Card       string          `json:"card" csv:"card"`
	TotPayment decimal.Decimal `json:"tot_payment" csv:"tot_payment"`
	HasCR      bool            `json:"has_cr" csv:"has_cr"`
	CRTotal    decimal.Decimal `json:"cr_total" csv:"cr_total"`
	Status     string          `json:"status" csv:"status"`
}

// DuplicateResult reports one set of transactions identical on
// (card, posting date, detail, amount, direction). Count is the total number
// of occurrences; each duplicated set yields exactly one row.
type DuplicateResult struct {
	Card        string          `json:"card" csv:"card"`
	PostingDate string          `json:"posting_date" csv:"posting_date"`
	Detail      string          `json:"trx_detail" csv:"trx_detail"`
	Amount      decimal.Decimal `json:"amount" csv:"amount"`
	Direction   string          `json:"direction" csv:"direction"`
	Count       int             `json:"count" csv:"count"`
}

// ZeroAmountResult reports a transaction whose normalized amount is exactly
// zero.
type ZeroAmountResult struct {
	Card        string          `json:"card" csv:"card"`
	PostingDate string          `json:"posting_date" csv:"posting_date"`
	Detail      string          `json:"trx_detail" csv:"trx_detail"`
	Amount      decimal.Decimal `json:"amount" csv:"amount"`
	Direction   string          `json:"direction" csv:"direction"`
}

// FilteredTransaction reports a transaction whose posting date falls outside
// the caller-supplied date window. Line keeps the raw statement line for
// audit.
type FilteredTransaction struct {
	PostingDate string `json:"posting" csv:"posting"`
	Card        string `json:"card" csv:"card"`
	Line        string `json:"line" csv:"line"`
}
