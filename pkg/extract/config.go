package extract

import (
	"gopkg.in/yaml.v3"

	"github.com/certen/docmerkle/internal/docerr"
)

// LoadConfig parses an extraction Config from YAML, e.g.:
//
//	id: invoice.number
//	types: invoice.lineItemTypes
//	key:
//	  customer: invoice.customer.name
//	  date: invoice.date
func LoadConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, docerr.Wrap(err, docerr.MalformedInput, "invalid extraction config")
	}
	return cfg, nil
}
