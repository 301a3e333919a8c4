// =============================================================================
// StatementGuard - PTSTMT Record Model
// =============================================================================
//
// This module defines the typed record model for PTSTMT print-statement
// extracts. A PTSTMT file is a fixed-width text file in which the first two
// characters of every line carry the record type:
//
//   01 - customer header (opens a customer block)
//   02 - account record (card-level balances and limits)
//   03 - transaction record
//   04 - trailer (closes a block)
//
// Each line is decoded exactly once into a tagged Record; all downstream
// checks operate on the decoded fields and never slice the raw line again.
//
// DECODING RULES:
//   - Field positions are 1-based inclusive column ranges.
//   - Numeric fields are unscaled integer amounts in statement minor units;
//     an empty field decodes to zero, a trailing '-' marks a negative value,
//     and anything non-numeric decodes to zero.
//   - Transaction amounts are normalized to a non-negative magnitude plus an
//     explicit DR/CR direction before any rule sees them. A negative decoded
//     magnitude flips the direction.
//   - A line shorter than the minimum width for its declared type is marked
//     Malformed instead of producing an error; malformed records still count
//     against their customer's structure and sequence checks.
//
// =============================================================================

package ptstmt

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RECORD TYPE
// =============================================================================

// RecordType identifies the category of a PTSTMT line.
type RecordType string

const (
	// TypeHeader is the customer header record ("01").
	TypeHeader RecordType = "01"

	// TypeAccount is the card/account record ("02").
	TypeAccount RecordType = "02"

	// TypeTransaction is the transaction record ("03").
	TypeTransaction RecordType = "03"

	// TypeTrailer is the block trailer record ("04").
	TypeTrailer RecordType = "04"

	// TypeUnknown marks a line whose type code is not one of the above.
	TypeUnknown RecordType = "??"
)

// Known reports whether t is one of the four PTSTMT record types.
func (t RecordType) Known() bool {
	switch t {
	case TypeHeader, TypeAccount, TypeTransaction, TypeTrailer:
		return true
	}
	return false
}

// Direction of a transaction amount.
type Direction string

const (
	// Debit direction ("DR").
	Debit Direction = "DR"

	// Credit direction ("CR"). Credit transactions feed the total-payment
	// reconciliation.
	Credit Direction = "CR"
)

// =============================================================================
// FIELD LAYOUT
// =============================================================================
// Column ranges are 1-based inclusive, matching the statement print layout.

const (
	// Minimum line widths per record type. A shorter line of that type is
	// decoded as far as possible and flagged Malformed.
	minWidthHeader      = 18
	minWidthAccount     = 428
	minWidthTransaction = 164

	// Header (01) fields.
	colCustomerStart = 3
	colCustomerEnd   = 18

	// Account (02) fields.
	colCardStart            = 28
	colCardEnd              = 43
	colAmountDueStart       = 264
	colAmountDueEnd         = 277
	colCreditLimitStart     = 279
	colCreditLimitEnd       = 292
	colAvailableCreditStart = 294
	colAvailableCreditEnd   = 308
	colPrevBalanceStart     = 324
	colPrevBalanceEnd       = 338
	colTotPaymentStart      = 354
	colTotPaymentEnd        = 367
	colInterestStart        = 399
	colInterestEnd          = 413
	colNewBalanceStart      = 414
	colNewBalanceEnd        = 428

	// The installment column sits past the fixed balance block and is absent
	// on older extracts; when the line ends before it the field decodes to
	// zero without marking the record malformed.
	colInstallmentStart = 891
	colInstallmentEnd   = 900

	// Transaction (03) fields.
	colPostingDateStart = 82
	colPostingDateEnd   = 89
	colDetailStart      = 90
	colDetailEnd        = 129
	colAmountStart      = 149
	colAmountEnd        = 162
	colDirectionStart   = 163
	colDirectionEnd     = 164
)

// postingDateLayout is the wire format of transaction posting dates.
const postingDateLayout = "20060102"

// =============================================================================
// RECORD STRUCTURES
// =============================================================================

// Record is a single decoded PTSTMT line. Exactly one of the payload
// pointers matching Type is set; Unknown and Trailer records carry none.
type Record struct {
	// Type is the record category taken from the first two characters.
	Type RecordType

	// LineNumber is the 1-based position of the line in the input file,
	// kept for warnings and audit references.
	LineNumber int

	// Raw is the original line with the trailing newline removed.
	Raw string

	// Malformed is set when the line was too short for its declared type
	// or a mandatory field did not decode. Malformed records fail the
	// structure and sequence checks of their customer but never abort a run.
	Malformed bool

	Header      *HeaderFields
	Account     *AccountFields
	Transaction *TransactionFields
}

// HeaderFields is the payload of a customer header (01) record.
type HeaderFields struct {
	// Customer is the customer/card-holder key that owns the block.
	Customer string
}

// AccountFields is the payload of an account (02) record.
type AccountFields struct {
	// Card is the card number the balances belong to.
	Card string

	// Stated balance and limit fields, in statement minor units.
	PrevBalance     decimal.Decimal
	Interest        decimal.Decimal
	CreditLimit     decimal.Decimal
	Installment     decimal.Decimal
	NewBalance      decimal.Decimal
	AmountDue       decimal.Decimal
	AvailableCredit decimal.Decimal

	// TotPayment is the stated total payment, reconciled against the sum
	// of credit-direction transactions for the card.
	TotPayment decimal.Decimal
}

// TransactionFields is the payload of a transaction (03) record.
type TransactionFields struct {
	Card        string
	PostingDate time.Time

	// Detail is the trimmed transaction description.
	Detail string

	// Amount is a non-negative magnitude; Direction carries the sign.
	Amount    decimal.Decimal
	Direction Direction
}

// Warning records a line that could not be fully decoded. Warnings are
// accumulated per run and surfaced alongside the results; they never stop
// processing.
type Warning struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Reason)
}

// =============================================================================
// LINE DECODING
// =============================================================================

// ParseLine decodes one raw PTSTMT line into a Record. It never fails: lines
// that cannot be decoded come back with Malformed set or Type Unknown, plus
// a Warning describing the problem.
func ParseLine(lineNumber int, raw string) (Record, *Warning) {
	rec := Record{
		Type:       recordTypeOf(raw),
		LineNumber: lineNumber,
		Raw:        raw,
	}

	switch rec.Type {
	case TypeHeader:
		return parseHeader(rec)
	case TypeAccount:
		return parseAccount(rec)
	case TypeTransaction:
		return parseTransaction(rec)
	case TypeTrailer:
		return rec, nil
	default:
		w := &Warning{Line: lineNumber, Reason: fmt.Sprintf("unrecognized record type %q", typeCode(raw))}
		return rec, w
	}
}

// recordTypeOf reads the type code from the first two characters.
func recordTypeOf(raw string) RecordType {
	code := typeCode(raw)
	switch RecordType(code) {
	case TypeHeader, TypeAccount, TypeTransaction, TypeTrailer:
		return RecordType(code)
	}
	return TypeUnknown
}

func typeCode(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	return raw[:2]
}

func parseHeader(rec Record) (Record, *Warning) {
	rec.Header = &HeaderFields{
		Customer: sliceStr(rec.Raw, colCustomerStart, colCustomerEnd),
	}
	if len(rec.Raw) < minWidthHeader {
		rec.Malformed = true
		return rec, shortLineWarning(rec, minWidthHeader)
	}
	return rec, nil
}

func parseAccount(rec Record) (Record, *Warning) {
	rec.Account = &AccountFields{
		Card:            sliceStr(rec.Raw, colCardStart, colCardEnd),
		PrevBalance:     sliceNum(rec.Raw, colPrevBalanceStart, colPrevBalanceEnd),
		Interest:        sliceNum(rec.Raw, colInterestStart, colInterestEnd),
		CreditLimit:     sliceNum(rec.Raw, colCreditLimitStart, colCreditLimitEnd),
		Installment:     sliceNum(rec.Raw, colInstallmentStart, colInstallmentEnd),
		NewBalance:      sliceNum(rec.Raw, colNewBalanceStart, colNewBalanceEnd),
		AmountDue:       sliceNum(rec.Raw, colAmountDueStart, colAmountDueEnd),
		AvailableCredit: sliceNum(rec.Raw, colAvailableCreditStart, colAvailableCreditEnd),
		TotPayment:      sliceNum(rec.Raw, colTotPaymentStart, colTotPaymentEnd),
	}
	if len(rec.Raw) < minWidthAccount {
		rec.Malformed = true
		return rec, shortLineWarning(rec, minWidthAccount)
	}
	return rec, nil
}

func parseTransaction(rec Record) (Record, *Warning) {
	tx := &TransactionFields{
		Card:   sliceStr(rec.Raw, colCardStart, colCardEnd),
		Detail: sliceStr(rec.Raw, colDetailStart, colDetailEnd),
	}
	rec.Transaction = tx

	if len(rec.Raw) < minWidthTransaction {
		rec.Malformed = true
		return rec, shortLineWarning(rec, minWidthTransaction)
	}

	// Normalize amount and direction to one internal representation:
	// non-negative magnitude plus explicit direction.
	amount := sliceNum(rec.Raw, colAmountStart, colAmountEnd)
	direction := Direction(sliceStr(rec.Raw, colDirectionStart, colDirectionEnd))
	if amount.IsNegative() {
		amount = amount.Abs()
		direction = flip(direction)
	}
	tx.Amount = amount
	tx.Direction = direction

	rawDate := sliceStr(rec.Raw, colPostingDateStart, colPostingDateEnd)
	posting, err := time.Parse(postingDateLayout, rawDate)
	if err != nil {
		rec.Malformed = true
		w := &Warning{
			Line:   rec.LineNumber,
			Reason: fmt.Sprintf("transaction has unparseable posting date %q", rawDate),
		}
		return rec, w
	}
	tx.PostingDate = posting

	return rec, nil
}

func flip(d Direction) Direction {
	if d == Credit {
		return Debit
	}
	return Credit
}

func shortLineWarning(rec Record, want int) *Warning {
	return &Warning{
		Line: rec.LineNumber,
		Reason: fmt.Sprintf("record type %s is %d characters, expected at least %d",
			rec.Type, len(rec.Raw), want),
	}
}

// =============================================================================
// FIELD EXTRACTION
// =============================================================================

// sliceStr extracts the trimmed text between the 1-based inclusive columns
// start and end. Columns past the end of the line are treated as blank.
func sliceStr(line string, start, end int) string {
	if start < 1 || start > len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[start-1 : end])
}

// sliceNum extracts a numeric field between the 1-based inclusive columns
// start and end. An empty field is zero, a trailing '-' marks a negative
// value, and anything non-numeric decodes to zero.
func sliceNum(line string, start, end int) decimal.Decimal {
	field := sliceStr(line, start, end)
	if field == "" {
		return decimal.Zero
	}

	negative := false
	if strings.HasSuffix(field, "-") {
		negative = true
		field = strings.TrimSpace(strings.TrimSuffix(field, "-"))
	}

	if !isDigits(field) {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(field)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		d = d.Neg()
	}
	return d
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
