// =============================================================================
// StatementGuard - Customer Grouper Tests
// =============================================================================

package grouper

import (
	"testing"

	"github.com/ridhanshr/StatementGuard/internal/ptstmt"
)

func header(customer string) ptstmt.Record {
	return ptstmt.Record{Type: ptstmt.TypeHeader, Header: &ptstmt.HeaderFields{Customer: customer}}
}

func record(t ptstmt.RecordType) ptstmt.Record {
	return ptstmt.Record{Type: t}
}

func feed(g *Grouper, recs ...ptstmt.Record) []*CustomerGroup {
	var groups []*CustomerGroup
	for _, rec := range recs {
		if done := g.Add(rec); done != nil {
			groups = append(groups, done)
		}
	}
	if done := g.Flush(); done != nil {
		groups = append(groups, done)
	}
	return groups
}

func TestGrouperSplitsAtHeaders(t *testing.T) {
	groups := feed(New(),
		header("CUST0001"),
		record(ptstmt.TypeAccount),
		record(ptstmt.TypeTransaction),
		record(ptstmt.TypeTrailer),
		header("CUST0002"),
		record(ptstmt.TypeAccount),
		record(ptstmt.TypeTrailer),
	)

	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].Customer != "CUST0001" || len(groups[0].Records) != 4 {
		t.Errorf("first group = %q with %d records", groups[0].Customer, len(groups[0].Records))
	}
	if groups[1].Customer != "CUST0002" || len(groups[1].Records) != 3 {
		t.Errorf("second group = %q with %d records", groups[1].Customer, len(groups[1].Records))
	}
}

func TestGrouperOrphanRecords(t *testing.T) {
	groups := feed(New(),
		record(ptstmt.TypeTransaction),
		record(ptstmt.TypeTrailer),
		header("CUST0001"),
		record(ptstmt.TypeTrailer),
	)

	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if !groups[0].Orphan || groups[0].Customer != "" {
		t.Errorf("first group should be the orphan group, got %+v", groups[0])
	}
	if groups[1].Orphan {
		t.Error("second group should not be orphan")
	}
}

func TestGrouperMalformedPropagates(t *testing.T) {
	malformed := record(ptstmt.TypeTransaction)
	malformed.Malformed = true

	groups := feed(New(), header("CUST0001"), malformed, record(ptstmt.TypeTrailer))
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if !groups[0].Malformed {
		t.Error("group should inherit the malformed flag")
	}
}

func TestSignatureSkipsUnknownTypes(t *testing.T) {
	groups := feed(New(),
		header("CUST0001"),
		record(ptstmt.TypeAccount),
		record(ptstmt.TypeUnknown),
		record(ptstmt.TypeTrailer),
	)

	sig := groups[0].Signature()
	want := []string{"01", "02", "04"}
	if len(sig) != len(want) {
		t.Fatalf("signature = %v, want %v", sig, want)
	}
	for i := range want {
		if sig[i] != want[i] {
			t.Fatalf("signature = %v, want %v", sig, want)
		}
	}
}

func TestFlushEmpty(t *testing.T) {
	if g := New().Flush(); g != nil {
		t.Errorf("flush of empty grouper = %+v, want nil", g)
	}
}
