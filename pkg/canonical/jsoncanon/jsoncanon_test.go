package jsoncanon

import (
	"sort"
	"testing"

	"github.com/certen/docmerkle/pkg/doctree"
	"github.com/certen/docmerkle/pkg/merkle"
)

func mustParse(t *testing.T, raw string) *doctree.JSONNode {
	t.Helper()
	n, err := doctree.ParseJSON([]byte(raw))
	if err != nil {
		t.Fatalf("ParseJSON(%q): %v", raw, err)
	}
	return n
}

func TestNormalizeNumber(t *testing.T) {
	cases := map[string]string{
		"1":        "1",
		"1.0":      "1.0",
		"1.50":     "1.50",
		"-0":       "0",
		"-0.0":     "-0.0",
		"+5":       "5",
		"007":      "7",
		"1E3":      "1e3",
		"1e+03":    "1e3",
		"1.20e-05": "1.20e-5",
		"0.0":      "0.0",
	}
	for in, want := range cases {
		if got := NormalizeNumber(in); got != want {
			t.Errorf("NormalizeNumber(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanonicalizeObjectMemberOrderInsensitive(t *testing.T) {
	a := Canonicalize(mustParse(t, `{"a":1,"b":2}`))
	b := Canonicalize(mustParse(t, `{"b":2,"a":1}`))
	if len(a) != len(b) {
		t.Fatalf("different leaf counts: %d vs %d", len(a), len(b))
	}
	for p, h := range a {
		if b[p] != h {
			t.Errorf("path %q hash mismatch between member orderings", p)
		}
	}
}

func TestCanonicalizeArrayOrderInsensitiveForDistinctElements(t *testing.T) {
	a := Canonicalize(mustParse(t, `[1,2,3]`))
	b := Canonicalize(mustParse(t, `[3,1,2]`))
	rootA := merkle.New(leavesOfMap(a)).Root()
	rootB := merkle.New(leavesOfMap(b)).Root()
	if rootA != rootB {
		t.Error("array element reorder changed the root for distinct elements")
	}
}

func TestCanonicalizeEmptyContainers(t *testing.T) {
	ph := Canonicalize(mustParse(t, `{"o":{},"a":[]}`))
	if _, ok := ph["$.o.__emptyObject"]; !ok {
		t.Error("missing __emptyObject marker for empty object field")
	}
	if _, ok := ph["$.a.__emptyArray"]; !ok {
		t.Error("missing __emptyArray marker for empty array field")
	}
}

func TestCanonicalizeNullAndBool(t *testing.T) {
	ph := Canonicalize(mustParse(t, `{"n":null,"t":true,"f":false}`))
	if ph["$.n"] != merkle.VHash("null") {
		t.Error("null value hash mismatch")
	}
	if ph["$.t"] != merkle.VHash("true") {
		t.Error("true value hash mismatch")
	}
	if ph["$.f"] != merkle.VHash("false") {
		t.Error("false value hash mismatch")
	}
}

func TestCanonicalizeDuplicateArrayElements(t *testing.T) {
	ph := Canonicalize(mustParse(t, `[1,1,2]`))
	if len(ph) != 3 {
		t.Fatalf("expected 3 distinct paths for 3 array elements, got %d", len(ph))
	}
}

func leavesOfMap(ph map[string][merkle.HashSize]byte) [][]byte {
	paths := make([]string, 0, len(ph))
	for p := range ph {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	out := make([][]byte, len(paths))
	for i, p := range paths {
		out[i] = merkle.EncodeLeaf(p, ph[p])
	}
	return out
}
