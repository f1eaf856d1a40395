// Package xmlcanon canonicalizes a parsed XML document (doctree.XMLElement)
// into a canonical.PathHash, mirroring jsoncanon's contract but over
// element/attribute/text structure instead of object/array/scalar.
package xmlcanon

import (
	"sort"
	"strconv"
	"strings"

	"github.com/certen/docmerkle/pkg/canonical"
	"github.com/certen/docmerkle/pkg/doctree"
	"github.com/certen/docmerkle/pkg/merkle"
)

// Canonicalize walks doc's root element and returns its path->hash map,
// rooted at "/" + the root element's qname.
func Canonicalize(doc *doctree.XMLDocument) canonical.PathHash {
	ph := canonical.PathHash{}
	walkElement(doc.Root, "/"+doc.Root.QName(), ph)
	return ph
}

// xmlChild pairs one partitioned child (element or trimmed text) with the
// fingerprint used to sort it among its siblings.
type xmlChild struct {
	kind doctree.XMLChildKind
	elem *doctree.XMLElement
	text string
	fp   string
}

// walkElement canonicalizes the element at path and returns its
// structural fingerprint so a parent can sort by it among its siblings.
func walkElement(e *doctree.XMLElement, path string, ph canonical.PathHash) string {
	attrs := append([]doctree.XMLAttr(nil), e.Attrs...)
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].QName() < attrs[j].QName() })

	attrFPs := make([]string, len(attrs))
	for i, a := range attrs {
		ph.Set(path+".@"+a.QName(), merkle.VHash(strings.TrimSpace(a.Value)))
		attrFPs[i] = a.QName() + "=" + strings.TrimSpace(a.Value)
	}

	var children []xmlChild
	for _, c := range e.Children {
		switch c.Kind {
		case doctree.XMLElementChild:
			scratch := canonical.PathHash{}
			fp := walkElement(c.Elem, path+"/"+c.Elem.QName(), scratch)
			children = append(children, xmlChild{kind: c.Kind, elem: c.Elem, fp: fp})
		case doctree.XMLTextChild:
			trimmed := strings.TrimSpace(c.Text)
			if trimmed == "" {
				continue
			}
			children = append(children, xmlChild{kind: c.Kind, text: trimmed, fp: canonical.TextFingerprint(trimmed)})
		}
	}

	if len(attrs) == 0 && len(children) == 0 {
		ph.Set(path+".__emptyElement", merkle.VHash("<empty>"))
		return canonical.ElementFingerprint(e.QName(), attrFPs, nil)
	}

	sort.SliceStable(children, func(i, j int) bool {
		oi, oj := typeOrder(children[i].kind), typeOrder(children[j].kind)
		if oi != oj {
			return oi < oj
		}
		qi, qj := qnameOrEmpty(children[i]), qnameOrEmpty(children[j])
		if qi != qj {
			return qi < qj
		}
		return children[i].fp < children[j].fp
	})

	elemCounters := map[string]int{}
	textCounter := 0
	childFPs := make([]string, len(children))
	for i, c := range children {
		switch c.kind {
		case doctree.XMLElementChild:
			qn := c.elem.QName()
			idx := elemCounters[qn]
			elemCounters[qn] = idx + 1
			childFPs[i] = walkElement(c.elem, path+"/"+qn+"[#"+strconv.Itoa(idx)+"]", ph)
		case doctree.XMLTextChild:
			idx := textCounter
			textCounter++
			textPath := path + ".#text[#" + strconv.Itoa(idx) + "]"
			ph.Set(textPath, merkle.VHash(c.text))
			childFPs[i] = c.fp
		}
	}

	return canonical.ElementFingerprint(e.QName(), attrFPs, childFPs)
}

func typeOrder(k doctree.XMLChildKind) int {
	if k == doctree.XMLTextChild {
		return 0
	}
	return 1
}

func qnameOrEmpty(c xmlChild) string {
	if c.kind == doctree.XMLElementChild {
		return c.elem.QName()
	}
	return ""
}
