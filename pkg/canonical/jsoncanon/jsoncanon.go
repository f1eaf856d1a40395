// Package jsoncanon canonicalizes a parsed JSON document (doctree.JSONNode)
// into a canonical.PathHash: every scalar leaf and empty-container marker
// gets a canonical path and a value hash, with array element order decided
// by structural fingerprint rather than document position.
package jsoncanon

import (
	"sort"
	"strconv"

	"github.com/certen/docmerkle/pkg/canonical"
	"github.com/certen/docmerkle/pkg/doctree"
	"github.com/certen/docmerkle/pkg/merkle"
)

// Canonicalize walks root and returns its path->hash map, rooted at "$".
func Canonicalize(root *doctree.JSONNode) canonical.PathHash {
	ph := canonical.PathHash{}
	walk(root, "$", ph)
	return ph
}

// walk canonicalizes node at path, recording leaves into ph, and returns
// node's structural fingerprint so a parent array can sort by it.
func walk(node *doctree.JSONNode, path string, ph canonical.PathHash) string {
	switch node.Kind {
	case doctree.JSONNull:
		norm := "null"
		ph.Set(path, merkle.VHash(norm))
		return canonical.ScalarFingerprint(norm)

	case doctree.JSONBool:
		norm := "false"
		if node.Bool {
			norm = "true"
		}
		ph.Set(path, merkle.VHash(norm))
		return canonical.ScalarFingerprint(norm)

	case doctree.JSONNumber:
		norm := NormalizeNumber(node.Number)
		ph.Set(path, merkle.VHash(norm))
		return canonical.ScalarFingerprint(norm)

	case doctree.JSONString:
		ph.Set(path, merkle.VHash(node.String))
		return canonical.ScalarFingerprint(node.String)

	case doctree.JSONObject:
		return walkObject(node, path, ph)

	case doctree.JSONArray:
		return walkArray(node, path, ph)

	default:
		panic("jsoncanon: unknown JSON node kind")
	}
}

func walkObject(node *doctree.JSONNode, path string, ph canonical.PathHash) string {
	if len(node.Object) == 0 {
		ph.Set(path+".__emptyObject", merkle.VHash("{}"))
		return canonical.ScalarFingerprint("{}")
	}

	names := make([]string, 0, len(node.Object))
	for name := range node.Object {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]canonical.FieldFP, 0, len(names))
	for _, name := range names {
		fp := walk(node.Object[name], path+"."+name, ph)
		fields = append(fields, canonical.FieldFP{Name: name, Fingerprint: fp})
	}
	return canonical.ObjectFingerprint(fields)
}

func walkArray(node *doctree.JSONNode, path string, ph canonical.PathHash) string {
	if len(node.Array) == 0 {
		ph.Set(path+".__emptyArray", merkle.VHash("[]"))
		return canonical.ScalarFingerprint("[]")
	}

	type elem struct {
		child *doctree.JSONNode
		fp    string
	}
	elems := make([]elem, len(node.Array))
	for i, child := range node.Array {
		// Fingerprints are computed against a scratch map: we need each
		// element's fingerprint before we know its canonical index (and
		// hence its real path), so walk it twice — once to fingerprint,
		// once (below, after sorting) to record real leaves.
		scratch := canonical.PathHash{}
		elems[i] = elem{child: child, fp: walk(child, path+"[#0]", scratch)}
	}
	sort.SliceStable(elems, func(i, j int) bool { return elems[i].fp < elems[j].fp })

	childFPs := make([]string, len(elems))
	for i, e := range elems {
		childPath := path + "[#" + strconv.Itoa(i) + "]"
		childFPs[i] = walk(e.child, childPath, ph)
	}
	return canonical.ArrayFingerprint(childFPs)
}
