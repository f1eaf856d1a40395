// Package canonical holds the pieces shared by the JSON and XML
// canonicalizers: the path->hash map built during a walk, and the
// structural-fingerprint helpers used only to order siblings that have no
// other intrinsic ordering. Nothing in this package is itself a Merkle
// leaf; fingerprints exist to make sibling order deterministic without any
// schema knowledge.
package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/certen/docmerkle/pkg/merkle"
)

// PathHash is the path->value-hash map a canonicalizer fills in during its
// walk of a parsed document tree.
type PathHash map[string][merkle.HashSize]byte

// Set records the value hash for a canonical path. Canonicalizers call
// this once per leaf or empty-container marker; paths are unique by
// construction of the walk, so a collision would indicate a canonicalizer
// bug rather than document content.
func (ph PathHash) Set(path string, h [merkle.HashSize]byte) {
	ph[path] = h
}

// SortedPaths returns the map's keys in lexicographic order: path order
// determines leaf order, and hence the Merkle root.
func SortedPaths(ph PathHash) []string {
	paths := make([]string, 0, len(ph))
	for p := range ph {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Leaves builds the ordered leaf payload sequence fed to merkle.New from a
// completed path->hash map.
func Leaves(ph PathHash) [][]byte {
	paths := SortedPaths(ph)
	out := make([][]byte, len(paths))
	for i, p := range paths {
		out[i] = merkle.EncodeLeaf(p, ph[p])
	}
	return out
}

// Fingerprint kinds. These tag the first segment of a structural
// fingerprint so fingerprints of different shapes never collide.
const (
	fpScalar = "V"
	fpObject = "O"
	fpArray  = "A"
	fpElem   = "EL"
	fpText   = "TEXT"
)

// hashTagged is the SHA-256 hex digest of a fingerprint's tagged form: the
// actual fingerprint a sibling sort compares, so sort keys stay a fixed
// size regardless of how deeply the tagged form nests, and so a sort never
// leaks the tagged form's raw content.
func hashTagged(tagged string) string {
	h := sha256.Sum256([]byte(tagged))
	return hex.EncodeToString(h[:])
}

// ScalarFingerprint is the structural fingerprint of a leaf scalar value.
func ScalarFingerprint(norm string) string {
	return hashTagged("N|" + fpScalar + "|" + norm)
}

// ObjectFingerprint is the structural fingerprint of a JSON object, given
// its fields' (name, childFingerprint) pairs already sorted by name.
func ObjectFingerprint(sortedFields []FieldFP) string {
	var b strings.Builder
	b.WriteString("N|")
	b.WriteString(fpObject)
	b.WriteByte('|')
	for _, f := range sortedFields {
		fmt.Fprintf(&b, "%s=%s;", f.Name, f.Fingerprint)
	}
	return hashTagged(b.String())
}

// FieldFP pairs a JSON object field name with its child's fingerprint.
type FieldFP struct {
	Name        string
	Fingerprint string
}

// ArrayFingerprint is the structural fingerprint of a JSON array, given
// its elements' fingerprints already sorted.
func ArrayFingerprint(sortedChildren []string) string {
	var b strings.Builder
	b.WriteString("N|")
	b.WriteString(fpArray)
	b.WriteByte('|')
	for _, c := range sortedChildren {
		b.WriteString(c)
		b.WriteByte(';')
	}
	return hashTagged(b.String())
}

// ElementFingerprint is the structural fingerprint of an XML element,
// given its qname, its sorted "qname=value" attribute strings, and its
// sorted children's fingerprints.
func ElementFingerprint(qname string, sortedAttrs []string, sortedChildren []string) string {
	var b strings.Builder
	b.WriteString("N|")
	b.WriteString(fpElem)
	b.WriteByte('|')
	b.WriteString(qname)
	b.WriteByte('|')
	for _, a := range sortedAttrs {
		b.WriteString(a)
		b.WriteByte(';')
	}
	b.WriteByte('|')
	for _, c := range sortedChildren {
		b.WriteString(c)
		b.WriteByte(';')
	}
	return hashTagged(b.String())
}

// TextFingerprint is the structural fingerprint of an XML text node, given
// its trimmed content.
func TextFingerprint(trimmed string) string {
	return hashTagged("N|" + fpText + "|" + trimmed)
}

// SortFieldsByName sorts JSON object fields by field name: field order
// never affects the root since the map is keyed by name, but a stable sort
// order is still required for the recursion to be deterministic.
func SortFieldsByName(fields []FieldFP) {
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
}

// SortStrings sorts a slice of fingerprint (or attribute) strings in place.
func SortStrings(ss []string) {
	sort.Strings(ss)
}
