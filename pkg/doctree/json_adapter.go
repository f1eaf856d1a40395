package doctree

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/certen/docmerkle/internal/docerr"
)

// ParseJSON decodes raw JSON text into a JSONNode tree. Numbers are kept
// as json.Number (their original decimal text) rather than float64, so the
// canonicalizer can normalize without losing precision encoding/json's
// default float64 decoding would silently round away.
func ParseJSON(data []byte) (*JSONNode, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, docerr.Wrap(err, docerr.MalformedInput, "invalid JSON document")
	}
	if dec.More() {
		return nil, docerr.New(docerr.MalformedInput, "trailing content after JSON document")
	}
	return fromInterface(raw), nil
}

func fromInterface(v interface{}) *JSONNode {
	switch t := v.(type) {
	case nil:
		return &JSONNode{Kind: JSONNull}
	case bool:
		return &JSONNode{Kind: JSONBool, Bool: t}
	case json.Number:
		return &JSONNode{Kind: JSONNumber, Number: string(t)}
	case string:
		return &JSONNode{Kind: JSONString, String: t}
	case map[string]interface{}:
		obj := make(map[string]*JSONNode, len(t))
		for k, v := range t {
			obj[k] = fromInterface(v)
		}
		return &JSONNode{Kind: JSONObject, Object: obj}
	case []interface{}:
		arr := make([]*JSONNode, len(t))
		for i, v := range t {
			arr[i] = fromInterface(v)
		}
		return &JSONNode{Kind: JSONArray, Array: arr}
	default:
		// encoding/json with UseNumber only ever produces the cases
		// above; reaching here means a decoder invariant changed.
		panic(fmt.Sprintf("doctree: unexpected JSON decode type %T", v))
	}
}
