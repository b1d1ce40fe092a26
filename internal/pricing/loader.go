// internal/pricing/loader.go
package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Load reads, schema-validates and cross-checks a pricing document. Any
// failure here is fatal at startup: a table with a missing base combination
// must never make it into a running process (it would otherwise fail
// unpredictably mid-conversation).
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pricing document: %w", err)
	}
	return Parse(raw)
}

// Parse validates and decodes a raw pricing document.
func Parse(raw []byte) (*Table, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(documentSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("validate pricing document: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("pricing document schema violation: %s", strings.Join(msgs, "; "))
	}

	var t Table
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode pricing document: %w", err)
	}

	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// validate checks everything the schema cannot express: the full enum
// cross-product of base prices, and pad multiplier ordering.
func (t *Table) validate() error {
	for _, b := range Bundles {
		formats, ok := t.Base[string(b)]
		if !ok {
			return fmt.Errorf("pricing: base prices missing bundle %q", b)
		}
		for _, f := range Formats {
			platforms, ok := formats[string(f)]
			if !ok {
				return fmt.Errorf("pricing: base prices missing format %q under bundle %q", f, b)
			}
			for _, p := range Platforms {
				price, ok := platforms[string(p)]
				if !ok {
					return fmt.Errorf("pricing: base price missing for (%s, %s, %s)", b, f, p)
				}
				if price <= 0 {
					return fmt.Errorf("pricing: non-positive base price for (%s, %s, %s)", b, f, p)
				}
			}
		}
	}

	if t.RangePad.Low <= 0 || t.RangePad.High <= 0 {
		return fmt.Errorf("pricing: range pad multipliers must be positive, got low=%v high=%v",
			t.RangePad.Low, t.RangePad.High)
	}
	if t.RangePad.Low > t.RangePad.High {
		return fmt.Errorf("pricing: range pad low %v exceeds high %v", t.RangePad.Low, t.RangePad.High)
	}

	return nil
}
