// internal/transport/line/flex.go
package line

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ContactTemplate is the flex-message document shown when a user asks
// for direct contact. The file is a complete LINE message object with
// {{CONTACT_PHONE}} and {{CONTACT_EMAIL}} placeholders.
type ContactTemplate struct {
	raw string
}

func LoadContactTemplate(path string) (*ContactTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read flex template %s: %w", path, err)
	}

	tmpl, err := ParseContactTemplate(data)
	if err != nil {
		return nil, fmt.Errorf("flex template %s: %w", path, err)
	}
	return tmpl, nil
}

// ParseContactTemplate builds a template from raw JSON bytes.
func ParseContactTemplate(data []byte) (*ContactTemplate, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("flex template is not valid JSON")
	}
	return &ContactTemplate{raw: string(data)}, nil
}

// Render substitutes the contact placeholders and returns the message
// object ready to send.
func (t *ContactTemplate) Render(phone, email string) (json.RawMessage, error) {
	replaced := strings.ReplaceAll(t.raw, "{{CONTACT_PHONE}}", phone)
	replaced = strings.ReplaceAll(replaced, "{{CONTACT_EMAIL}}", email)

	if !json.Valid([]byte(replaced)) {
		return nil, fmt.Errorf("flex template invalid after substitution")
	}

	return json.RawMessage(replaced), nil
}
