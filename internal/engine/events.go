// =============================================================================
// StatementGuard - Engine Events
// =============================================================================
//
// The engine reports through a stream of events rather than calling back
// into any presentation layer. A run emits, in order:
//
//   - ProgressEvent ticks while the scan advances (percent capped at 99),
//   - DataEvent batches carrying only the new rows for one category,
//   - a single ProgressEvent at 100 once the final payload is assembled,
//   - exactly one ResultEvent, always last.
//
// Consumers append DataEvent rows per category; the ResultEvent payload is
// authoritative and replaces everything streamed before it.
//
// =============================================================================

package engine

import (
	"github.com/ridhanshr/StatementGuard/internal/ptstmt"
	"github.com/ridhanshr/StatementGuard/internal/rules"
)

// Event is one engine emission: a ProgressEvent, DataEvent or ResultEvent.
type Event interface {
	event()
}

// ProgressEvent reports scan progress as an integer percentage 0-100,
// monotonically non-decreasing across a run.
type ProgressEvent struct {
	Processed int `json:"processed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// DataEvent carries an incremental batch of new rows for one result
// category. Batches for a category never overlap; concatenating them in
// emission order reproduces the category's final row list.
type DataEvent struct {
	Category string `json:"module"`
	Rows     any    `json:"rows"`
}

// ResultEvent is the terminal event of a run.
type ResultEvent struct {
	Success bool `json:"success"`

	// Data holds the complete row lists for all seven categories.
	// Nil when the run failed.
	Data *ResultData `json:"data,omitempty"`

	// Error is the human-readable failure message when Success is false.
	Error string `json:"error,omitempty"`

	// Warnings are the recoverable parse problems encountered during the
	// run. A run with warnings is still successful.
	Warnings []ptstmt.Warning `json:"warnings,omitempty"`
}

// ResultData is the aggregated result payload, keyed by category name on
// the wire.
type ResultData struct {
	Validations []rules.FieldCheck          `json:"validations"`
	Filtered    []rules.FilteredTransaction `json:"filtered_transactions"`
	Structure   []rules.StructureResult     `json:"structure_results"`
	Duplicates  []rules.DuplicateResult     `json:"duplicate_transactions"`
	ZeroAmount  []rules.ZeroAmountResult    `json:"zero_amount_transactions"`
	TotPayment  []rules.TotPaymentResult    `json:"tot_payment_results"`
	Sequence    []rules.SequenceResult      `json:"sequence_results"`
}

func (ProgressEvent) event() {}
func (DataEvent) event()     {}
func (ResultEvent) event()   {}
