package rules

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Rule is a conjunction of field->pattern conditions. A record satisfies the
// rule iff every pattern matches the corresponding stringified record field.
// Patterns are regular expressions with substring-search semantics; authors
// anchor with ^ or $ explicitly.
type Rule map[string]string

// Category pairs a category name with its ordered rule list. Any rule in the
// list matching is sufficient for the category to claim a record.
type Category struct {
	Name  string
	Rules []Rule
}

// Config is the ordered category configuration. Category order is
// load-bearing: the first category (in declared order) whose rules match a
// record wins, so Config preserves the declaration order of the JSON object
// it was parsed from.
type Config struct {
	Categories []Category
}

// Category returns the rules declared for the named category and whether the
// category exists.
func (c Config) Category(name string) ([]Rule, bool) {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat.Rules, true
		}
	}

	return nil, false
}

// Parse decodes a raw JSON configuration of the shape
// {"Category": [{"field": "pattern"}, ...], ...} preserving category order.
// Malformed input yields a MalformedConfigError.
func Parse(raw []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, &MalformedConfigError{Err: err}
	}

	return cfg, nil
}

// UnmarshalJSON decodes the configuration object token by token so that
// category declaration order survives decoding. encoding/json map decoding
// would lose it.
func (c *Config) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("config must be a JSON object")
	}

	c.Categories = nil

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}

		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", keyTok)
		}

		var rs []Rule
		if err := dec.Decode(&rs); err != nil {
			return fmt.Errorf("category %q: %w", name, err)
		}

		c.Categories = append(c.Categories, Category{Name: name, Rules: rs})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	return nil
}

// MarshalJSON writes the configuration back as a single JSON object with
// categories in declared order, so a load/save round trip is lossless.
func (c Config) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, cat := range c.Categories {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')

		rs := cat.Rules
		if rs == nil {
			rs = []Rule{}
		}

		val, err := json.Marshal(rs)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", cat.Name, err)
		}

		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
