// Package extract implements the extraction facade: given a document and a
// small YAML-configured set of locators, it returns the fixed record
// {Id, Types, Key} without touching the change set. JSON locators are
// dotted paths with no wildcards; XML locators are XPath expressions
// evaluated through antchfx/xpath and antchfx/xmlquery, optionally against
// a namespace prefix map.
package extract

import (
	"strings"

	"github.com/antchfx/xpath"
	"github.com/antchfx/xmlquery"

	"github.com/certen/docmerkle/internal/docerr"
	"github.com/certen/docmerkle/pkg/doctree"
)

// Locator is a path: a dotted JSON path ("invoice.number") or
// an XPath expression ("/invoice/number"). An empty Locator means the
// field is not configured.
type Locator string

// Config is the extraction facade's input, loaded from YAML (see
// LoadConfig). Id and Types are each a single locator; Id resolves to at
// most one scalar, Types may resolve to several (a JSON array, or an XML
// XPath matching multiple nodes). Key is a set of named locators, each
// resolving to at most one scalar.
type Config struct {
	ID    Locator            `yaml:"id"`
	Types Locator            `yaml:"types"`
	Key   map[string]Locator `yaml:"key"`
}

// Result is the extraction facade's fixed output record. ID is nil when
// unspecified or absent; Types and Key are always non-nil, empty when
// unspecified or absent.
type Result struct {
	ID    interface{}       `json:"id"`
	Types []string          `json:"types"`
	Key   map[string]string `json:"key"`
}

func newResult() Result {
	return Result{Types: []string{}, Key: map[string]string{}}
}

// ExtractJSON evaluates cfg's dotted-path locators against a parsed JSON
// document.
func ExtractJSON(root *doctree.JSONNode, cfg Config) (Result, error) {
	res := newResult()

	if cfg.ID != "" {
		if v, ok := lookupJSONPath(root, string(cfg.ID)); ok {
			if s, ok := scalarString(v); ok {
				res.ID = s
			}
		}
	}

	if cfg.Types != "" {
		if v, ok := lookupJSONPath(root, string(cfg.Types)); ok && v.Kind == doctree.JSONArray {
			for _, el := range v.Array {
				if s, ok := scalarString(el); ok {
					res.Types = append(res.Types, s)
				}
			}
		}
	}

	for name, loc := range cfg.Key {
		if loc == "" {
			continue
		}
		if v, ok := lookupJSONPath(root, string(loc)); ok {
			if s, ok := scalarString(v); ok {
				res.Key[name] = s
			}
		}
	}

	return res, nil
}

// ExtractXML evaluates cfg's XPath locators against raw XML bytes, with an
// optional namespace-prefix resolver (prefix -> URI) for prefixed XPath
// expressions. Types uses every matching node, not just the first.
func ExtractXML(data []byte, cfg Config, namespaces map[string]string) (Result, error) {
	doc, err := xmlquery.Parse(strings.NewReader(string(data)))
	if err != nil {
		return Result{}, docerr.Wrap(err, docerr.MalformedInput, "invalid XML document")
	}

	res := newResult()

	if cfg.ID != "" {
		node, err := queryOne(doc, string(cfg.ID), namespaces)
		if err != nil {
			return Result{}, docerr.Wrapf(err, docerr.ExtractionFailed, "id: invalid XPath %q", cfg.ID)
		}
		if node != nil {
			res.ID = strings.TrimSpace(node.InnerText())
		}
	}

	if cfg.Types != "" {
		expr, err := compileXPath(string(cfg.Types), namespaces)
		if err != nil {
			return Result{}, docerr.Wrapf(err, docerr.ExtractionFailed, "types: invalid XPath %q", cfg.Types)
		}
		for _, node := range xmlquery.QuerySelectorAll(doc, expr) {
			res.Types = append(res.Types, strings.TrimSpace(node.InnerText()))
		}
	}

	for name, loc := range cfg.Key {
		if loc == "" {
			continue
		}
		node, err := queryOne(doc, string(loc), namespaces)
		if err != nil {
			return Result{}, docerr.Wrapf(err, docerr.ExtractionFailed, "key %q: invalid XPath %q", name, loc)
		}
		if node != nil {
			res.Key[name] = strings.TrimSpace(node.InnerText())
		}
	}

	return res, nil
}

func queryOne(doc *xmlquery.Node, exprStr string, namespaces map[string]string) (*xmlquery.Node, error) {
	expr, err := compileXPath(exprStr, namespaces)
	if err != nil {
		return nil, err
	}
	return xmlquery.QuerySelector(doc, expr), nil
}

func compileXPath(exprStr string, namespaces map[string]string) (*xpath.Expr, error) {
	if len(namespaces) == 0 {
		return xpath.Compile(exprStr)
	}
	return xpath.CompileWithNS(exprStr, namespaces)
}

// lookupJSONPath resolves a dotted path like "a.b.c" against root, which
// must itself represent the "$" document root. No wildcards, no array
// indices: a missing segment at any depth is a miss.
func lookupJSONPath(root *doctree.JSONNode, dotted string) (*doctree.JSONNode, bool) {
	if dotted == "" {
		return root, true
	}
	cur := root
	for _, seg := range strings.Split(dotted, ".") {
		if cur.Kind != doctree.JSONObject {
			return nil, false
		}
		next, ok := cur.Object[seg]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// scalarString renders a JSON leaf node as a string. Objects and arrays
// have no scalar rendering and are reported as a miss.
func scalarString(n *doctree.JSONNode) (string, bool) {
	switch n.Kind {
	case doctree.JSONNull:
		return "null", true
	case doctree.JSONBool:
		if n.Bool {
			return "true", true
		}
		return "false", true
	case doctree.JSONNumber:
		return n.Number, true
	case doctree.JSONString:
		return n.String, true
	default:
		return "", false
	}
}
