// =============================================================================
// StatementGuard - Run Parameters
// =============================================================================
//
// Params is the single structured request starting a validation run. The
// bridge command decodes it from stdin JSON; the validate and export
// commands assemble it from flags. Dates travel as YYYY-MM-DD strings and
// both bounds of the window are optional.
//
// =============================================================================

package engine

import (
	"fmt"
	"time"

	"github.com/ridhanshr/StatementGuard/internal/rules"
)

// paramDateLayout is the wire format of the optional window bounds.
const paramDateLayout = "2006-01-02"

// Params describes one validation run.
type Params struct {
	// FilePath is the PTSTMT file to validate.
	FilePath string `json:"file_path"`

	// CardType selects the minimum-payment formula: REGULAR or CORPORATE.
	// Defaults to REGULAR.
	CardType string `json:"card_type"`

	// FromDate / UntilDate bound the posting-date filter (YYYY-MM-DD).
	// Either may be empty; with both empty the filter is disabled.
	FromDate  string `json:"from_date"`
	UntilDate string `json:"until_date"`
}

// Validate checks the request and resolves the typed card type and date
// window. It does not touch the file; I/O failures surface when the run
// starts.
func (p Params) Validate() (rules.CardType, rules.DateWindow, error) {
	if p.FilePath == "" {
		return "", rules.DateWindow{}, fmt.Errorf("file_path is required")
	}

	cardType := rules.CardType(p.CardType)
	switch cardType {
	case "":
		cardType = rules.CardRegular
	case rules.CardRegular, rules.CardCorporate:
	default:
		return "", rules.DateWindow{}, fmt.Errorf("unknown card type %q", p.CardType)
	}

	var window rules.DateWindow
	if p.FromDate != "" {
		from, err := time.Parse(paramDateLayout, p.FromDate)
		if err != nil {
			return "", rules.DateWindow{}, fmt.Errorf("invalid from_date %q: %w", p.FromDate, err)
		}
		window.From = &from
	}
	if p.UntilDate != "" {
		until, err := time.Parse(paramDateLayout, p.UntilDate)
		if err != nil {
			return "", rules.DateWindow{}, fmt.Errorf("invalid until_date %q: %w", p.UntilDate, err)
		}
		window.Until = &until
	}
	if window.From != nil && window.Until != nil && window.Until.Before(*window.From) {
		return "", rules.DateWindow{}, fmt.Errorf("until_date %s precedes from_date %s", p.UntilDate, p.FromDate)
	}

	return cardType, window, nil
}
