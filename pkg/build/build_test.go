package build

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestBuildJSONRootStableUnderReorder(t *testing.T) {
	a, err := Build([]byte(`{"a":1,"b":2}`), JSON)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, err := Build([]byte(`{"b":2,"a":1}`), JSON)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if a.Root != b.Root {
		t.Error("JSON member reorder changed the root")
	}
}

func TestBuildXMLRootStableUnderAttributeReorder(t *testing.T) {
	a, err := Build([]byte(`<r a="1" b="2"/>`), XML)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, err := Build([]byte(`<r b="2" a="1"/>`), XML)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if a.Root != b.Root {
		t.Error("XML attribute reorder changed the root")
	}
}

func TestBuildRejectsMalformedJSON(t *testing.T) {
	if _, err := Build([]byte(`{"a":`), JSON); err == nil {
		t.Error("expected an error for malformed JSON")
	}
}

func TestToPayloadEmptyBaseline(t *testing.T) {
	newResult, err := Build([]byte(`{"a":1}`), JSON)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p := ToPayload(BuildResult{}, newResult, false, JSON)
	if p.RootOld != emptyRootHex {
		t.Errorf("RootOld = %q, want %q", p.RootOld, emptyRootHex)
	}
	if len(p.Added) != 1 {
		t.Errorf("Added = %v, want one path", p.Added)
	}
}

func TestToPayloadDetectsSingleValueChange(t *testing.T) {
	oldResult, err := Build([]byte(`{"a":1,"b":2}`), JSON)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	newResult, err := Build([]byte(`{"a":1,"b":3}`), JSON)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p := ToPayload(oldResult, newResult, true, JSON)
	if len(p.Changed) != 1 || p.Changed[0].Path != "$.b" {
		t.Errorf("Changed = %+v, want one entry at $.b", p.Changed)
	}
	if p.RootOld == p.RootNew {
		t.Error("RootOld and RootNew should differ after a value change")
	}
}

func TestInstrumentedBuilderRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	ib := NewInstrumentedBuilder(reg)

	if _, err := ib.Build([]byte(`{"a":1}`), JSON); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := ib.Build([]byte(`{"a":`), JSON); err == nil {
		t.Fatal("expected malformed JSON to error")
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatal("expected at least one registered metric family")
	}
}
