package extract

import (
	"testing"

	"github.com/certen/docmerkle/pkg/doctree"
)

func TestExtractJSONKnownPaths(t *testing.T) {
	root, err := doctree.ParseJSON([]byte(`{
		"invoice": {
			"number": "INV-1",
			"itemTypes": ["widget", "gadget"],
			"customer": {"name": "Acme", "since": "2020"}
		}
	}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	cfg := Config{
		ID:    "invoice.number",
		Types: "invoice.itemTypes",
		Key: map[string]Locator{
			"customer": "invoice.customer.name",
			"since":    "invoice.customer.since",
		},
	}

	res, err := ExtractJSON(root, cfg)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if res.ID != "INV-1" {
		t.Errorf("ID = %v, want INV-1", res.ID)
	}
	if len(res.Types) != 2 || res.Types[0] != "widget" || res.Types[1] != "gadget" {
		t.Errorf("Types = %v, want [widget gadget]", res.Types)
	}
	if res.Key["customer"] != "Acme" || res.Key["since"] != "2020" {
		t.Errorf("Key = %v, want customer=Acme, since=2020", res.Key)
	}
}

func TestExtractJSONUnspecifiedFieldsAreEmpty(t *testing.T) {
	root, err := doctree.ParseJSON([]byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	res, err := ExtractJSON(root, Config{})
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if res.ID != nil {
		t.Errorf("ID = %v, want nil", res.ID)
	}
	if len(res.Types) != 0 {
		t.Errorf("Types = %v, want empty", res.Types)
	}
	if len(res.Key) != 0 {
		t.Errorf("Key = %v, want empty", res.Key)
	}
}

func TestExtractJSONMissingPathsAreAbsent(t *testing.T) {
	root, err := doctree.ParseJSON([]byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	cfg := Config{
		ID:    "missing.path",
		Types: "missing.types",
		Key:   map[string]Locator{"x": "missing.key"},
	}
	res, err := ExtractJSON(root, cfg)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if res.ID != nil {
		t.Errorf("ID = %v, want nil", res.ID)
	}
	if len(res.Types) != 0 {
		t.Errorf("Types = %v, want empty", res.Types)
	}
	if _, ok := res.Key["x"]; ok {
		t.Errorf("Key[x] = %v, want absent", res.Key["x"])
	}
}

func TestExtractXMLKnownXPaths(t *testing.T) {
	cfg := Config{
		ID:    "/invoice/number",
		Types: "/invoice/items/item",
		Key: map[string]Locator{
			"customer": "/invoice/customer",
		},
	}
	doc := `<invoice>
		<number>INV-2</number>
		<items><item>widget</item><item>gadget</item></items>
		<customer>Acme</customer>
	</invoice>`
	res, err := ExtractXML([]byte(doc), cfg, nil)
	if err != nil {
		t.Fatalf("ExtractXML: %v", err)
	}
	if res.ID != "INV-2" {
		t.Errorf("ID = %v, want INV-2", res.ID)
	}
	if len(res.Types) != 2 || res.Types[0] != "widget" || res.Types[1] != "gadget" {
		t.Errorf("Types = %v, want [widget gadget]", res.Types)
	}
	if res.Key["customer"] != "Acme" {
		t.Errorf("Key[customer] = %v, want Acme", res.Key["customer"])
	}
}

func TestExtractXMLMissingXPathsAreAbsent(t *testing.T) {
	cfg := Config{ID: "/invoice/customer"}
	res, err := ExtractXML([]byte(`<invoice><number>INV-2</number></invoice>`), cfg, nil)
	if err != nil {
		t.Fatalf("ExtractXML: %v", err)
	}
	if res.ID != nil {
		t.Errorf("ID = %v, want nil", res.ID)
	}
}

func TestLoadConfigYAML(t *testing.T) {
	cfg, err := LoadConfig([]byte("id: x.y\ntypes: x.types\nkey:\n  a: x.a\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ID != "x.y" || cfg.Types != "x.types" || cfg.Key["a"] != "x.a" {
		t.Errorf("LoadConfig parsed %+v unexpectedly", cfg)
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	if _, err := LoadConfig([]byte("id: [")); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}
