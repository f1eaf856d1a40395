package doctree

import (
	"bytes"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/certen/docmerkle/internal/docerr"
)

// ParseXML decodes raw XML text into an XMLDocument using xmlquery as the
// front-end parser. Comments and processing instructions are dropped;
// xmlquery already resolves namespace URIs onto each element and
// attribute, so the adapter only needs to walk the resulting node tree.
func ParseXML(data []byte) (*XMLDocument, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, docerr.Wrap(err, docerr.MalformedInput, "invalid XML document")
	}

	root := firstElementChild(doc)
	if root == nil {
		return nil, docerr.New(docerr.MalformedInput, "XML document has no root element")
	}
	return &XMLDocument{Root: convertElement(root)}, nil
}

func firstElementChild(n *xmlquery.Node) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

func convertElement(n *xmlquery.Node) *XMLElement {
	e := &XMLElement{
		LocalName: n.Data,
		NSURI:     n.NamespaceURI,
	}

	for _, a := range n.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		e.Attrs = append(e.Attrs, XMLAttr{
			LocalName: a.Name.Local,
			NSURI:     a.NamespaceURI,
			Value:     a.Value,
		})
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.ElementNode:
			e.Children = append(e.Children, XMLChild{Kind: XMLElementChild, Elem: convertElement(c)})
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			e.Children = append(e.Children, XMLChild{Kind: XMLTextChild, Text: c.Data})
		default:
			// comments, processing instructions, declarations: ignored
		}
	}

	return e
}
