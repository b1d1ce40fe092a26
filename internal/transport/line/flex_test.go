// internal/transport/line/flex_test.go
package line

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFlexTemplate = `{
  "type": "flex",
  "altText": "ช่องทางติดต่อ",
  "contents": {
    "type": "bubble",
    "body": {
      "type": "box",
      "layout": "vertical",
      "contents": [
        {"type": "text", "text": "{{CONTACT_PHONE}}"},
        {"type": "text", "text": "{{CONTACT_EMAIL}}"}
      ]
    }
  }
}`

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contact_flex.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadContactTemplate_Render(t *testing.T) {
	tmpl, err := LoadContactTemplate(writeTemplate(t, testFlexTemplate))
	require.NoError(t, err)

	rendered, err := tmpl.Render("+66812345678", "team@example.com")
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(rendered, &parsed))
	assert.Equal(t, "flex", parsed["type"])

	asText := string(rendered)
	assert.Contains(t, asText, "+66812345678")
	assert.Contains(t, asText, "team@example.com")
	assert.NotContains(t, asText, "{{CONTACT_PHONE}}")
	assert.NotContains(t, asText, "{{CONTACT_EMAIL}}")
}

func TestLoadContactTemplate_MissingFile(t *testing.T) {
	_, err := LoadContactTemplate(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadContactTemplate_InvalidJSON(t *testing.T) {
	_, err := LoadContactTemplate(writeTemplate(t, `{"type": "flex",`))
	assert.Error(t, err)
}
