// =============================================================================
// StatementGuard - Validation Engine
// =============================================================================
//
// The engine performs one sequential pass over a PTSTMT file, applies the
// seven checks, and emits progress and partial-result events as it goes.
//
// PIPELINE (single scan):
//   1. Count input lines for the progress denominator
//   2. Stream typed records from the file
//   3. Partition records into customer groups (one buffered at a time)
//   4. Per account block: accumulate DR/CR totals, validate on close
//   5. Per transaction: duplicate, zero-amount and posting-date checks
//   6. Per customer group: structure and sequence checks
//   7. After the scan: duplicate and total-payment results
//   8. Assemble and emit the authoritative final payload
//
// RUN SCOPE:
//   A Runner owns every buffer and counter of its run and is not reusable;
//   nothing survives the run and there is no package-level state. Only one
//   run is active per process invocation.
//
// FAILURE MODEL:
//   Rule violations are result rows. Malformed lines are warnings plus
//   structural INVALIDs. Only the inability to read the input aborts a run,
//   and even that is reported as a terminal event, never a panic.
//
// =============================================================================

package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ridhanshr/StatementGuard/internal/grouper"
	"github.com/ridhanshr/StatementGuard/internal/ptstmt"
	"github.com/ridhanshr/StatementGuard/internal/rules"
)

// ErrInput classifies failures to read the statement file (missing path,
// permission, truncated read). Transport failures on the event stream are a
// different class; see the stream package.
var ErrInput = errors.New("statement input error")

// =============================================================================
// OPTIONS
// =============================================================================

// Options tune the streaming behavior of a run.
type Options struct {
	// BatchSize is the number of buffered rows that triggers a streamed
	// batch for the scan-time categories. Default 5.
	BatchSize int

	// ProgressInterval is the number of input lines between progress
	// ticks. Default 1000.
	ProgressInterval int

	// Logger receives run diagnostics on stderr. Defaults to a no-op
	// logger; stdout is never written by the engine.
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = 5
	}
	if o.ProgressInterval <= 0 {
		o.ProgressInterval = 1000
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// =============================================================================
// RUNNER
// =============================================================================

// Runner executes a single validation run. Create one per run with
// NewRunner; a Runner must not be reused.
type Runner struct {
	params   Params
	cardType rules.CardType
	window   rules.DateWindow
	opts     Options
	runID    string
	log      *zap.Logger

	events chan Event
	data   ResultData

	total       int
	lastPercent int

	// Scan-time batch buffers. Set to nil after each flush so emitted
	// batches never alias a buffer that keeps growing.
	valBatch    []rules.FieldCheck
	filterBatch []rules.FilteredTransaction
	zeroBatch   []rules.ZeroAmountResult

	// Open account block state.
	acct  *ptstmt.AccountFields
	stats rules.BlockStats

	dups   *rules.DuplicateTracker
	totPay *rules.TotPaymentTracker
}

// NewRunner validates the request and prepares a run. The input file is not
// touched until Run.
func NewRunner(params Params, opts Options) (*Runner, error) {
	cardType, window, err := params.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid run parameters: %w", err)
	}

	o := opts.withDefaults()
	runID := uuid.New().String()
	return &Runner{
		params:   params,
		cardType: cardType,
		window:   window,
		opts:     o,
		runID:    runID,
		log:      o.Logger.With(zap.String("run_id", runID)),
		dups:     rules.NewDuplicateTracker(),
		totPay:   rules.NewTotPaymentTracker(),
	}, nil
}

// Run starts the pass and returns the event channel. The channel carries
// progress ticks and data batches, then exactly one ResultEvent, and is
// closed afterwards. The caller must drain it.
func (r *Runner) Run() <-chan Event {
	r.events = make(chan Event, 64)
	go r.run()
	return r.events
}

func (r *Runner) run() {
	defer close(r.events)

	r.log.Info("validation run started",
		zap.String("file", r.params.FilePath),
		zap.String("card_type", string(r.cardType)))

	total, err := ptstmt.CountLines(r.params.FilePath)
	if err != nil {
		r.fail(fmt.Errorf("%w: %v", ErrInput, err), nil)
		return
	}
	r.total = total

	reader, err := ptstmt.Open(r.params.FilePath)
	if err != nil {
		r.fail(fmt.Errorf("%w: %v", ErrInput, err), nil)
		return
	}
	defer reader.Close()

	groups := grouper.New()

	for reader.Next() {
		rec := reader.Record()
		r.tickProgress(reader.LineNumber())

		if done := groups.Add(rec); done != nil {
			r.finishGroup(done)
		}

		switch rec.Type {
		case ptstmt.TypeHeader:
			// Account blocks never span customers.
			r.closeBlock()

		case ptstmt.TypeAccount:
			r.closeBlock()
			if !rec.Malformed {
				r.openBlock(rec.Account)
			}

		case ptstmt.TypeTransaction:
			if !rec.Malformed {
				r.observeTransaction(rec)
			}
		}

		r.flushBatches(false)
	}

	if err := reader.Err(); err != nil {
		r.fail(fmt.Errorf("%w: %v", ErrInput, err), reader.Warnings())
		return
	}

	r.closeBlock()
	if done := groups.Flush(); done != nil {
		r.finishGroup(done)
	}
	r.flushBatches(true)

	if dups := r.dups.Results(); len(dups) > 0 {
		r.data.Duplicates = append(r.data.Duplicates, dups...)
		r.events <- DataEvent{Category: rules.CategoryDuplicates, Rows: dups}
	}
	if totPay := r.totPay.Results(); len(totPay) > 0 {
		r.data.TotPayment = append(r.data.TotPayment, totPay...)
		r.events <- DataEvent{Category: rules.CategoryTotPayment, Rows: totPay}
	}

	// The payload is assembled; only now may progress reach 100, exactly
	// once, before the terminal event.
	r.events <- ProgressEvent{Processed: r.total, Total: r.total, Percent: 100}
	r.events <- ResultEvent{Success: true, Data: &r.data, Warnings: reader.Warnings()}

	r.log.Info("validation run finished",
		zap.Int("lines", r.total),
		zap.Int("warnings", len(reader.Warnings())),
		zap.Int("customers", len(r.data.Structure)))
}

func (r *Runner) fail(err error, warnings []ptstmt.Warning) {
	r.log.Error("validation run failed", zap.Error(err))
	r.events <- ResultEvent{Success: false, Error: err.Error(), Warnings: warnings}
}

// =============================================================================
// SCAN STEPS
// =============================================================================

func (r *Runner) openBlock(acct *ptstmt.AccountFields) {
	r.acct = acct
	r.stats = rules.BlockStats{}
	r.totPay.ObserveAccount(acct)
}

// closeBlock validates the open account block, if any, and buffers its
// field-check rows.
func (r *Runner) closeBlock() {
	if r.acct == nil {
		return
	}
	checks := rules.ValidateAccountBlock(r.acct, r.stats, r.cardType)
	r.valBatch = append(r.valBatch, checks...)
	r.acct = nil
}

func (r *Runner) observeTransaction(rec ptstmt.Record) {
	tx := rec.Transaction

	if r.acct != nil {
		r.stats.Observe(tx)
		r.totPay.ObserveTransaction(r.acct.Card, tx)
	}
	r.dups.Observe(tx)

	if row := rules.CheckZeroAmount(tx); row != nil {
		r.zeroBatch = append(r.zeroBatch, *row)
	}
	if row := rules.FilterPosting(r.window, rec); row != nil {
		r.filterBatch = append(r.filterBatch, *row)
	}
}

// finishGroup runs the per-customer checks and streams their rows
// immediately; each completed group yields one structure row and one
// sequence row.
func (r *Runner) finishGroup(g *grouper.CustomerGroup) {
	structure := rules.CheckStructure(g)
	r.data.Structure = append(r.data.Structure, structure)
	r.events <- DataEvent{Category: rules.CategoryStructure, Rows: []rules.StructureResult{structure}}

	sequence := rules.CheckSequence(g)
	r.data.Sequence = append(r.data.Sequence, sequence)
	r.events <- DataEvent{Category: rules.CategorySequence, Rows: []rules.SequenceResult{sequence}}
}

// =============================================================================
// EMISSION
// =============================================================================

// flushBatches streams the scan-time buffers once they reach the batch
// size, or unconditionally when force is set at end of scan.
func (r *Runner) flushBatches(force bool) {
	if n := len(r.valBatch); n > 0 && (force || n >= r.opts.BatchSize) {
		r.data.Validations = append(r.data.Validations, r.valBatch...)
		r.events <- DataEvent{Category: rules.CategoryValidations, Rows: r.valBatch}
		r.valBatch = nil
	}
	if n := len(r.filterBatch); n > 0 && (force || n >= r.opts.BatchSize) {
		r.data.Filtered = append(r.data.Filtered, r.filterBatch...)
		r.events <- DataEvent{Category: rules.CategoryFiltered, Rows: r.filterBatch}
		r.filterBatch = nil
	}
	if n := len(r.zeroBatch); n > 0 && (force || n >= r.opts.BatchSize) {
		r.data.ZeroAmount = append(r.data.ZeroAmount, r.zeroBatch...)
		r.events <- DataEvent{Category: rules.CategoryZeroAmount, Rows: r.zeroBatch}
		r.zeroBatch = nil
	}
}

// tickProgress emits a progress event every ProgressInterval lines. The
// percentage is monotonic and capped at 99 until the final payload exists.
func (r *Runner) tickProgress(processed int) {
	if r.total <= 0 || processed%r.opts.ProgressInterval != 0 {
		return
	}
	percent := processed * 100 / r.total
	if percent > 99 {
		percent = 99
	}
	if percent <= r.lastPercent {
		return
	}
	r.lastPercent = percent
	r.events <- ProgressEvent{Processed: processed, Total: r.total, Percent: percent}
}
