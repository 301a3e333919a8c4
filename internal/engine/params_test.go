// =============================================================================
// StatementGuard - Run Parameter Tests
// =============================================================================

package engine

import (
	"testing"

	"github.com/ridhanshr/StatementGuard/internal/rules"
)

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
		want    rules.CardType
	}{
		{"minimal", Params{FilePath: "f.txt"}, false, rules.CardRegular},
		{"explicit regular", Params{FilePath: "f.txt", CardType: "REGULAR"}, false, rules.CardRegular},
		{"corporate", Params{FilePath: "f.txt", CardType: "CORPORATE"}, false, rules.CardCorporate},
		{"missing file path", Params{}, true, ""},
		{"unknown card type", Params{FilePath: "f.txt", CardType: "PLATINUM"}, true, ""},
		{"bad from date", Params{FilePath: "f.txt", FromDate: "16-10-2025"}, true, ""},
		{"bad until date", Params{FilePath: "f.txt", UntilDate: "never"}, true, ""},
		{"inverted window", Params{FilePath: "f.txt", FromDate: "2025-11-15", UntilDate: "2025-10-16"}, true, ""},
		{"from only", Params{FilePath: "f.txt", FromDate: "2025-10-16"}, false, rules.CardRegular},
		{"until only", Params{FilePath: "f.txt", UntilDate: "2025-11-15"}, false, rules.CardRegular},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cardType, _, err := tt.params.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cardType != tt.want {
				t.Errorf("card type = %s, want %s", cardType, tt.want)
			}
		})
	}
}

func TestParamsValidateWindowBounds(t *testing.T) {
	_, window, err := Params{FilePath: "f.txt", FromDate: "2025-10-16", UntilDate: "2025-11-15"}.Validate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window.From == nil || window.Until == nil {
		t.Fatal("window bounds missing")
	}
	if window.Empty() {
		t.Error("window with both bounds reported empty")
	}
	if got := window.From.Format("2006-01-02"); got != "2025-10-16" {
		t.Errorf("from = %s", got)
	}
	if got := window.Until.Format("2006-01-02"); got != "2025-11-15" {
		t.Errorf("until = %s", got)
	}
}

func TestParamsValidateEmptyWindow(t *testing.T) {
	_, window, err := Params{FilePath: "f.txt"}.Validate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !window.Empty() {
		t.Error("window without bounds should be empty")
	}
}
