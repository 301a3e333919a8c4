// =============================================================================
// StatementGuard - Customer Grouper
// =============================================================================
//
// The grouper partitions the ordered record stream into per-customer groups.
// A customer header (01) record opens a new group; every following record
// belongs to that group until the next header. Order inside a group is
// preserved exactly as read, which the sequence check depends on.
//
// Records that appear before any header are collected into a single orphan
// group with an empty customer key; the structure check reports that group
// as a violation.
//
// The grouper is a streaming component: the engine feeds it one record at a
// time and receives a completed group back at each customer boundary, so
// only one customer's records are buffered at any point.
//
// =============================================================================

package grouper

import "github.com/ridhanshr/StatementGuard/internal/ptstmt"

// CustomerGroup holds one customer's records in original file order.
type CustomerGroup struct {
	// Customer is the customer key from the opening header record.
	// Empty for the orphan group.
	Customer string

	// Orphan marks the group of records seen before any header.
	Orphan bool

	// Records are the group's records, original order preserved.
	Records []ptstmt.Record

	// Malformed is set when any record in the group failed to decode.
	// The structure and sequence checks treat such a group as invalid.
	Malformed bool
}

// Signature returns the group's record type codes in observed order,
// excluding unknown-type lines.
func (g *CustomerGroup) Signature() []string {
	sig := make([]string, 0, len(g.Records))
	for _, rec := range g.Records {
		if rec.Type.Known() {
			sig = append(sig, string(rec.Type))
		}
	}
	return sig
}

// Grouper accumulates records for the current customer and flushes the
// completed group at each boundary.
type Grouper struct {
	current *CustomerGroup
}

// New creates an empty Grouper.
func New() *Grouper {
	return &Grouper{}
}

// Add feeds the next record in file order. When rec is a header that closes
// a previous group, the completed group is returned; otherwise Add returns
// nil.
func (g *Grouper) Add(rec ptstmt.Record) *CustomerGroup {
	var completed *CustomerGroup

	if rec.Type == ptstmt.TypeHeader {
		completed = g.current
		customer := ""
		if rec.Header != nil {
			customer = rec.Header.Customer
		}
		g.current = &CustomerGroup{Customer: customer}
	} else if g.current == nil {
		// Record before any header: open the orphan group.
		g.current = &CustomerGroup{Orphan: true}
	}

	g.current.Records = append(g.current.Records, rec)
	if rec.Malformed {
		g.current.Malformed = true
	}

	return completed
}

// Flush returns the in-progress group at end of input, or nil when no
// records were seen.
func (g *Grouper) Flush() *CustomerGroup {
	completed := g.current
	g.current = nil
	return completed
}
