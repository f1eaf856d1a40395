package diff

import (
	"regexp"
	"sort"
	"strings"
)

// Operation names a change category, used as the label attached to a
// key/tag in the derived summaries.
type Operation string

const (
	OpAdded   Operation = "added"
	OpRemoved Operation = "removed"
	OpChanged Operation = "changed"
)

var indexSuffix = regexp.MustCompile(`\[#\d+\]`)

// NormalizePath collapses a canonical path into the form used only by the
// diff-summary derivations below — never by Merkle construction itself.
func NormalizePath(path string, kind DocKind) string {
	p := indexSuffix.ReplaceAllString(path, "")
	switch kind {
	case JSON:
		if p == "$" {
			return ""
		}
		p = strings.TrimPrefix(p, "$")
		return p
	case XML:
		p = strings.ReplaceAll(p, ".@", "/@")
		p = strings.TrimSuffix(p, ".#text")
		p = strings.ReplaceAll(p, ".#text", "")
		p = strings.TrimSuffix(p, ".__emptyElement")
		p = strings.TrimSuffix(p, ".__emptyArray")
		p = strings.TrimSuffix(p, ".__emptyObject")
		for strings.Contains(p, "//") {
			p = strings.ReplaceAll(p, "//", "/")
		}
		return p
	default:
		return p
	}
}

// CollapsedPaths returns the deduplicated, sorted set of normalized paths
// touched by any added, removed, or changed entry.
func CollapsedPaths(cs ChangeSet, kind DocKind) []string {
	set := map[string]bool{}
	for _, p := range cs.Added {
		if n := NormalizePath(p, kind); n != "" {
			set[n] = true
		}
	}
	for _, p := range cs.Removed {
		if n := NormalizePath(p, kind); n != "" {
			set[n] = true
		}
	}
	for _, e := range cs.Changed {
		if n := NormalizePath(e.Path, kind); n != "" {
			set[n] = true
		}
	}
	return sortedKeys(set)
}

// WithAncestors expands a set of collapsed paths to include every
// non-empty ancestor prefix of each path, plus (for XML) the bare root
// element path when the document is non-empty.
func WithAncestors(paths []string, kind DocKind) []string {
	sep := byte('.')
	if kind == XML {
		sep = '/'
	}

	set := map[string]bool{}
	for _, p := range paths {
		set[p] = true
		for i := len(p) - 1; i >= 0; i-- {
			if p[i] == sep && i > 0 {
				set[p[:i]] = true
			}
		}
		if kind == XML && p != "" {
			if i := strings.IndexByte(p[1:], '/'); i >= 0 {
				set[p[:i+1]] = true
			}
		}
	}
	return sortedKeys(set)
}

// KeySummary maps each leaf-level key/tag name touched by the change set
// to the sorted, deduplicated list of operations that touched it. For
// JSON, the key is the path's last dot-segment. For XML, it is the path's
// last slash-segment; an attribute segment ("@name") also marks its
// owning element's segment as CHANGED, matching an attribute value change
// being a structural change to its parent element.
func KeySummary(cs ChangeSet, kind DocKind) map[string][]string {
	summary := map[string]map[Operation]bool{}
	mark := func(path string, op Operation) {
		n := NormalizePath(path, kind)
		if n == "" {
			return
		}
		key, parent := lastSegment(n, kind)
		addOp(summary, key, op)
		if parent != "" {
			addOp(summary, parent, OpChanged)
		}
	}

	for _, p := range cs.Added {
		mark(p, OpAdded)
	}
	for _, p := range cs.Removed {
		mark(p, OpRemoved)
	}
	for _, e := range cs.Changed {
		mark(e.Path, OpChanged)
	}

	out := make(map[string][]string, len(summary))
	for key, ops := range summary {
		list := make([]string, 0, len(ops))
		for op := range ops {
			list = append(list, string(op))
		}
		sort.Strings(list)
		out[key] = list
	}
	return out
}

func addOp(summary map[string]map[Operation]bool, key string, op Operation) {
	if summary[key] == nil {
		summary[key] = map[Operation]bool{}
	}
	summary[key][op] = true
}

// lastSegment returns the final dot-or-slash segment of a normalized path
// and, for an XML attribute segment, the owning element's segment.
func lastSegment(n string, kind DocKind) (key, parent string) {
	sep := byte('.')
	if kind == XML {
		sep = '/'
	}
	i := strings.LastIndexByte(n, sep)
	if i < 0 {
		key = n
	} else {
		key = n[i+1:]
	}
	if kind == XML && strings.HasPrefix(key, "@") && i >= 0 {
		parent = n[:i]
		if j := strings.LastIndexByte(parent, sep); j >= 0 {
			parent = parent[j+1:]
		}
	}
	return key, parent
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
