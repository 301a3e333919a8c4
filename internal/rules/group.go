// =============================================================================
// StatementGuard - Structure and Sequence Checks (Checks 2 and 3)
// =============================================================================
//
// Both checks operate on a completed customer group.
//
// Structure: every customer block must contain all four record types.
//
// Sequence: the observed type order must match the canonical block pattern
//
//   ^01(02(03)*04)((02|03)(03)*04)*$
//
// i.e. the block opens with 01, the first account block is 02 (03s) 04, and
// any further blocks may open with 02 or 03 before closing with 04. A type
// out of place anywhere (for instance a 02 after a 03 in the same block)
// invalidates the whole group.
//
// A group containing malformed records fails both checks outright: a record
// that did not decode cannot attest to its customer's structure.
//
// =============================================================================

package rules

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ridhanshr/StatementGuard/internal/grouper"
	"github.com/ridhanshr/StatementGuard/internal/ptstmt"
)

// sequencePattern is the canonical record order within a customer block.
var sequencePattern = regexp.MustCompile(`^01(02(03)*04)((02|03)(03)*04)*$`)

// requiredTypes lists the record types every customer block must contain.
var requiredTypes = []ptstmt.RecordType{
	ptstmt.TypeHeader,
	ptstmt.TypeAccount,
	ptstmt.TypeTransaction,
	ptstmt.TypeTrailer,
}

// CheckStructure verifies that the group contains all four record types.
func CheckStructure(g *grouper.CustomerGroup) StructureResult {
	present := make(map[ptstmt.RecordType]bool, len(requiredTypes))
	for _, rec := range g.Records {
		if rec.Type.Known() {
			present[rec.Type] = true
		}
	}

	var missing []string
	for _, t := range requiredTypes {
		if !present[t] {
			missing = append(missing, string(t))
		}
	}
	sort.Strings(missing)

	result := StructureResult{
		Customer: g.Customer,
		Has01:    present[ptstmt.TypeHeader],
		Has02:    present[ptstmt.TypeAccount],
		Has03:    present[ptstmt.TypeTransaction],
		Has04:    present[ptstmt.TypeTrailer],
		Status:   StatusValid,
		Missing:  "-",
	}
	if len(missing) > 0 {
		result.Status = StatusInvalid
		result.Missing = strings.Join(missing, ", ")
	}
	if g.Malformed || g.Orphan {
		result.Status = StatusInvalid
	}
	return result
}

// CheckSequence verifies that the group's record types appear in canonical
// order.
func CheckSequence(g *grouper.CustomerGroup) SequenceResult {
	sig := g.Signature()

	result := SequenceResult{
		Customer: g.Customer,
		Sequence: strings.Join(sig, "->"),
		Status:   StatusValid,
	}
	if g.Malformed || g.Orphan || !sequencePattern.MatchString(strings.Join(sig, "")) {
		result.Status = StatusInvalid
	}
	return result
}
