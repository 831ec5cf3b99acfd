package tokenfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	// jsonSection is the top-level object holding the token.
	jsonSection = "dev"
	// jsonTokenPath is the gjson/sjson path of the token field.
	jsonTokenPath = jsonSection + ".panel_token"
)

// ErrInvalidJSON is returned when the JSON token file cannot be updated
// because its content is not a JSON object.
var ErrInvalidJSON = errors.New("invalid JSON token file")

// readJSONToken returns dev.panel_token, or "" when the file is missing,
// unreadable, malformed or the field is absent or not a string.
func readJSONToken(path string) string {
	data, err := os.ReadFile(path) // #nosec G304 -- configured path
	if err != nil {
		return ""
	}
	if !gjson.ValidBytes(data) {
		return ""
	}

	result := gjson.GetBytes(data, jsonTokenPath)
	if result.Type != gjson.String {
		return ""
	}
	return result.String()
}

// renderJSONToken returns data with dev.panel_token set to token. The "dev"
// object is created when absent. Key order is preserved, the output is
// indented with two spaces and non-ASCII characters are kept as-is.
func renderJSONToken(data []byte, token string) ([]byte, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidJSON)
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrInvalidJSON)
	}
	if section := gjson.GetBytes(data, jsonSection); section.Exists() && !section.IsObject() {
		return nil, fmt.Errorf("%w: %q is not an object", ErrInvalidJSON, jsonSection)
	}

	value, err := encodeJSONString(token)
	if err != nil {
		return nil, err
	}

	updated, err := sjson.SetRawBytes(data, jsonTokenPath, value)
	if err != nil {
		return nil, fmt.Errorf("failed to set %s: %w", jsonTokenPath, err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, updated, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to format JSON: %w", err)
	}
	return out.Bytes(), nil
}

// encodeJSONString encodes s without HTML escaping.
func encodeJSONString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode token: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
