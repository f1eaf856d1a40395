// Package build orchestrates the pipeline parse -> canonicalize -> Merkle
// for both document kinds, and derives the Payload record external
// callers consume. Nothing here logs; see internal/doclog for the
// optional logging wrapper used by cmd/docdiff, and InstrumentedBuilder
// in metrics.go for the optional Prometheus wrapper.
package build

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/certen/docmerkle/pkg/canonical"
	"github.com/certen/docmerkle/pkg/canonical/jsoncanon"
	"github.com/certen/docmerkle/pkg/canonical/xmlcanon"
	"github.com/certen/docmerkle/pkg/diff"
	"github.com/certen/docmerkle/pkg/doctree"
	"github.com/certen/docmerkle/pkg/merkle"
)

// Kind selects which canonicalizer and parser a Build call uses.
type Kind = diff.DocKind

const (
	JSON = diff.JSON
	XML  = diff.XML
)

// BuildResult is the output of canonicalizing and hashing a single
// document: its root hash, the tree built over its leaves, and the
// path->hash map that produced it (kept so inclusion proofs and diffs
// don't need to re-canonicalize).
type BuildResult struct {
	BuildID  uuid.UUID
	Root     [merkle.HashSize]byte
	Tree     *merkle.MerkleTree
	PathHash canonical.PathHash
}

// Build parses data as the given Kind, canonicalizes it, and hashes the
// result into a MerkleTree.
func Build(data []byte, kind Kind) (BuildResult, error) {
	var ph canonical.PathHash
	switch kind {
	case JSON:
		root, err := doctree.ParseJSON(data)
		if err != nil {
			return BuildResult{}, err
		}
		ph = jsoncanon.Canonicalize(root)
	case XML:
		doc, err := doctree.ParseXML(data)
		if err != nil {
			return BuildResult{}, err
		}
		ph = xmlcanon.Canonicalize(doc)
	}

	tree := merkle.New(canonical.Leaves(ph))
	return BuildResult{
		BuildID:  uuid.New(),
		Root:     tree.Root(),
		Tree:     tree,
		PathHash: ph,
	}, nil
}

// Diff compares two BuildResults of the same Kind and returns their raw
// change set.
func Diff(oldResult, newResult BuildResult, kind Kind) diff.ChangeSet {
	return diff.Diff(oldResult.PathHash, newResult.PathHash, kind)
}

// Payload is the externally-facing record of a build+diff: every field
// required by a caller that wants the roots, the raw change set, and the
// derived summaries, with no internal types (hashes are lowercase hex,
// the tree and path->hash map are not exposed).
type Payload struct {
	BuildID              uuid.UUID
	GeneratedAt          time.Time
	RootOld              string
	RootNew              string
	Added                []string
	Removed              []string
	Changed              []ChangedEntry
	CollapsedPaths       []string
	KeySummary           map[string][]string // JSON only
	TagSummaryElements   map[string][]string // XML only
	TagSummaryAttributes map[string][]string // XML only
}

// ChangedEntry is the hex-encoded form of a diff.Entry.
type ChangedEntry struct {
	Path string
	Old  string
	New  string
}

// emptyRootHex is the sentinel the Payload record uses for an empty
// baseline (the "<empty>" root placeholder rather than a hash of nothing).
const emptyRootHex = "<empty>"

// ToPayload derives the Payload record for a diff between oldResult (may
// be the zero BuildResult, meaning "no baseline") and newResult.
func ToPayload(oldResult, newResult BuildResult, hasOld bool, kind Kind) Payload {
	var oldMap canonical.PathHash
	rootOld := emptyRootHex
	if hasOld {
		oldMap = oldResult.PathHash
		rootOld = hex.EncodeToString(oldResult.Root[:])
	}

	cs := diff.Diff(oldMap, newResult.PathHash, kind)
	collapsed := diff.WithAncestors(diff.CollapsedPaths(cs, kind), kind)

	p := Payload{
		BuildID:        newResult.BuildID,
		GeneratedAt:    time.Now(),
		RootOld:        rootOld,
		RootNew:        hex.EncodeToString(newResult.Root[:]),
		Added:          cs.Added,
		Removed:        cs.Removed,
		Changed:        make([]ChangedEntry, len(cs.Changed)),
		CollapsedPaths: collapsed,
	}
	for i, e := range cs.Changed {
		p.Changed[i] = ChangedEntry{
			Path: e.Path,
			Old:  hex.EncodeToString(e.Old[:]),
			New:  hex.EncodeToString(e.New[:]),
		}
	}

	if kind == JSON {
		p.KeySummary = diff.KeySummary(cs, kind)
	} else {
		tags := diff.KeySummary(cs, kind)
		p.TagSummaryElements = map[string][]string{}
		p.TagSummaryAttributes = map[string][]string{}
		for k, ops := range tags {
			if len(k) > 0 && k[0] == '@' {
				p.TagSummaryAttributes[k] = ops
			} else {
				p.TagSummaryElements[k] = ops
			}
		}
	}

	return p
}
