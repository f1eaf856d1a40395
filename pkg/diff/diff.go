// Package diff computes the change set between two canonical path->hash
// maps and derives human-facing summaries (collapsed paths, ancestor
// closure, key/tag summaries) from it. The raw added/removed/changed sets
// are authoritative; everything else in this package is a heuristic view
// over them.
package diff

import (
	"sort"
	"strings"

	"github.com/certen/docmerkle/pkg/canonical"
	"github.com/certen/docmerkle/pkg/merkle"
)

// DocKind tells the diff engine which path-normalization and value-leaf
// rules to apply: JSON paths and XML paths use different conventions.
type DocKind int

const (
	JSON DocKind = iota
	XML
)

// Entry is one changed value leaf, carrying both the old and new hash so
// a caller can decide whether the change matters without re-hashing.
type Entry struct {
	Path string
	Old  [merkle.HashSize]byte
	New  [merkle.HashSize]byte
}

// ChangeSet is the raw, order-insensitive result of comparing two
// path->hash maps: every path present only in new is Added, every path
// present only in old is Removed, and every path present in both with a
// different hash and that qualifies as a value leaf is Changed.
type ChangeSet struct {
	Added   []string
	Removed []string
	Changed []Entry
}

// Diff compares oldMap against newMap. A nil oldMap (the "empty baseline"
// case) reports every path in newMap as Added.
func Diff(oldMap, newMap canonical.PathHash, kind DocKind) ChangeSet {
	var cs ChangeSet

	paths := map[string]bool{}
	for p := range oldMap {
		paths[p] = true
	}
	for p := range newMap {
		paths[p] = true
	}
	ordered := make([]string, 0, len(paths))
	for p := range paths {
		ordered = append(ordered, p)
	}
	sort.Strings(ordered)

	for _, p := range ordered {
		oh, inOld := oldMap[p]
		nh, inNew := newMap[p]
		switch {
		case inNew && !inOld:
			cs.Added = append(cs.Added, p)
		case inOld && !inNew:
			cs.Removed = append(cs.Removed, p)
		case inOld && inNew && oh != nh && isValueLeaf(p, kind):
			cs.Changed = append(cs.Changed, Entry{Path: p, Old: oh, New: nh})
		}
	}
	return cs
}

// isValueLeaf reports whether path names an actual value (rather than an
// empty-container marker), per the document kind's convention.
func isValueLeaf(path string, kind DocKind) bool {
	switch kind {
	case JSON:
		return !strings.HasSuffix(path, ".__emptyObject") && !strings.HasSuffix(path, ".__emptyArray")
	case XML:
		return strings.Contains(path, ".@") || strings.Contains(path, ".#text[")
	default:
		return true
	}
}
