// =============================================================================
// StatementGuard - Streaming Transport Writer
// =============================================================================
//
// Serializes engine events onto a line-delimited byte stream, one event per
// line:
//
//   PROGRESS:{"processed":12000,"total":54000,"percent":22}
//   DATA:{"module":"validations","rows":[...]}
//   {"success":true,"data":{...}}
//
// The bare JSON object is the terminal result and is always the last line.
// Every line is flushed as soon as it is written so a consumer on the other
// side of a pipe sees batches in real time.
//
// Failures here are transport errors, deliberately distinct from statement
// input errors: a consumer can tell "bad input file" from "broken pipe".
//
// =============================================================================

package stream

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ridhanshr/StatementGuard/internal/engine"
)

// ErrTransport classifies event encoding and write failures.
var ErrTransport = errors.New("event transport error")

// Line prefixes of the wire protocol.
const (
	progressPrefix = "PROGRESS:"
	dataPrefix     = "DATA:"
)

// Writer emits engine events in wire format.
type Writer struct {
	out *bufio.Writer
}

// NewWriter wraps w, typically os.Stdout.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: bufio.NewWriter(w)}
}

// Write serializes one event and flushes it.
func (w *Writer) Write(ev engine.Event) error {
	switch e := ev.(type) {
	case engine.ProgressEvent:
		return w.writeLine(progressPrefix, e)
	case engine.DataEvent:
		return w.writeLine(dataPrefix, e)
	case engine.ResultEvent:
		return w.writeLine("", e)
	default:
		return fmt.Errorf("%w: unknown event type %T", ErrTransport, ev)
	}
}

func (w *Writer) writeLine(prefix string, payload any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encoding event: %v", ErrTransport, err)
	}
	if _, err := w.out.WriteString(prefix); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if _, err := w.out.Write(encoded); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if err := w.out.WriteByte('\n'); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if err := w.out.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return nil
}

// Pump drains the event channel into the writer and returns the terminal
// result. On a transport error it keeps draining so the producing goroutine
// can finish, then reports the first error encountered.
func Pump(events <-chan engine.Event, w *Writer) (*engine.ResultEvent, error) {
	var final *engine.ResultEvent
	var firstErr error

	for ev := range events {
		if result, ok := ev.(engine.ResultEvent); ok {
			final = &result
		}
		if firstErr != nil {
			continue
		}
		if err := w.Write(ev); err != nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		return final, firstErr
	}
	if final == nil {
		return nil, fmt.Errorf("%w: event stream ended without a terminal result", ErrTransport)
	}
	return final, nil
}
