package tokenfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, jsonContent, jsContent *string) (*Store, string, string) {
	t.Helper()
	tmpDir := t.TempDir()
	jsonPath := filepath.Join(tmpDir, "http-client.private.env.json")
	jsPath := filepath.Join(tmpDir, "config.js")

	if jsonContent != nil {
		require.NoError(t, os.WriteFile(jsonPath, []byte(*jsonContent), 0o600))
	}
	if jsContent != nil {
		require.NoError(t, os.WriteFile(jsPath, []byte(*jsContent), 0o600))
	}

	return NewStore(jsonPath, jsPath, nil), jsonPath, jsPath
}

func ptr(s string) *string { return &s }

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestStore_WriteToken_EndToEnd(t *testing.T) {
	store, jsonPath, jsPath := newTestStore(t,
		ptr(`{"dev":{"panel_token":"old"}}`),
		ptr(`const auth = "old";`))

	require.NoError(t, store.WriteToken("new123"))

	var doc map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(readFile(t, jsonPath)), &doc))
	assert.Equal(t, map[string]map[string]string{"dev": {"panel_token": "new123"}}, doc)
	assert.Equal(t, "{\n  \"dev\": {\n    \"panel_token\": \"new123\"\n  }\n}", readFile(t, jsonPath))

	assert.Equal(t, `const auth = "new123";`, readFile(t, jsPath))
	assert.Equal(t, "new123", store.ReadCurrentToken())
}

func TestStore_WriteToken_CRLFScript(t *testing.T) {
	store, jsonPath, jsPath := newTestStore(t,
		ptr(`{"dev":{"panel_token":"old"}}`),
		ptr("// cfg\r\nconst auth = \"old\";\r\nexport default auth;\r\n"))

	require.NoError(t, store.WriteToken("new123"))

	assert.Equal(t, "// cfg\r\nconst auth = \"new123\";\r\nexport default auth;\r\n", readFile(t, jsPath))
	assert.Equal(t, "new123", readJSToken(jsPath))
	assert.Contains(t, readFile(t, jsonPath), `"panel_token": "new123"`)

	require.NoError(t, store.WriteToken(`a"b`))
	assert.Equal(t, `a"b`, readJSToken(jsPath))
	assert.Equal(t, `a"b`, store.ReadCurrentToken())
}

func TestStore_RoundTrip_JSON(t *testing.T) {
	tokens := []string{
		"Bearer eyJhbGciOiJIUzI1NiJ9.e30.sig",
		"plain",
		`with "quotes" and \backslashes\`,
		"ünïcödé ✓",
		"<html>&amp;",
	}

	for _, token := range tokens {
		t.Run(token, func(t *testing.T) {
			store, _, _ := newTestStore(t,
				ptr(`{"dev":{"panel_token":"old"}}`),
				ptr(`const auth = "old";`))

			require.NoError(t, store.WriteToken(token))
			assert.Equal(t, token, store.ReadCurrentToken())
		})
	}
}

func TestStore_RoundTrip_JSOnly(t *testing.T) {
	tests := []struct {
		name        string
		jsonContent *string
	}{
		{name: "json file empty", jsonContent: ptr("")},
		{name: "json without dev", jsonContent: ptr(`{"other": 1}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _, jsPath := newTestStore(t, tt.jsonContent, ptr("const auth = \"old\";\n"))

			token := `tok"en\with"quotes`
			require.NoError(t, store.WriteToken(token))

			assert.Equal(t, token, readJSToken(jsPath))
			assert.Equal(t, token, store.ReadCurrentToken())
		})
	}
}

func TestStore_WriteToken_CreatesMissingJSONFile(t *testing.T) {
	store, jsonPath, _ := newTestStore(t, nil, ptr(`let auth = "old";`))

	require.NoError(t, store.WriteToken("fresh"))
	assert.Equal(t, "{\n  \"dev\": {\n    \"panel_token\": \"fresh\"\n  }\n}", readFile(t, jsonPath))
}

func TestStore_ReadCurrentToken_PrefersJSON(t *testing.T) {
	store, _, _ := newTestStore(t,
		ptr(`{"dev":{"panel_token":"from-json"}}`),
		ptr(`const auth = "from-js";`))

	assert.Equal(t, "from-json", store.ReadCurrentToken())
}

func TestStore_ReadCurrentToken_FallsBackToJS(t *testing.T) {
	tests := []struct {
		name        string
		jsonContent *string
	}{
		{name: "missing json file", jsonContent: nil},
		{name: "empty token", jsonContent: ptr(`{"dev":{"panel_token":""}}`)},
		{name: "missing dev", jsonContent: ptr(`{}`)},
		{name: "dev not an object", jsonContent: ptr(`{"dev": "x"}`)},
		{name: "token not a string", jsonContent: ptr(`{"dev":{"panel_token": 42}}`)},
		{name: "malformed json", jsonContent: ptr(`{"dev":`)},
		{name: "top-level array", jsonContent: ptr(`[1, 2]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _, _ := newTestStore(t, tt.jsonContent, ptr("const auth = \"from js\nwith newline\";"))
			assert.Equal(t, "from js\nwith newline", store.ReadCurrentToken())
		})
	}
}

func TestStore_ReadCurrentToken_NothingFound(t *testing.T) {
	store, _, _ := newTestStore(t, nil, nil)
	assert.Equal(t, "", store.ReadCurrentToken())

	store, _, _ = newTestStore(t, ptr(`{}`), ptr(`const other = "x";`))
	assert.Equal(t, "", store.ReadCurrentToken())
}

func TestStore_WriteToken_NoAssignmentLeavesFilesUntouched(t *testing.T) {
	jsonContent := `{"dev":{"panel_token":"old"}}`
	jsContent := "const token = \"old\";\nexport default token;\n"
	store, jsonPath, jsPath := newTestStore(t, ptr(jsonContent), ptr(jsContent))

	err := store.WriteToken("new")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)

	assert.Equal(t, jsonContent, readFile(t, jsonPath))
	assert.Equal(t, jsContent, readFile(t, jsPath))

	// No staging files left behind
	entries, err := os.ReadDir(filepath.Dir(jsonPath))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestStore_WriteToken_MissingJSFile(t *testing.T) {
	jsonContent := `{"dev":{"panel_token":"old"}}`
	store, jsonPath, _ := newTestStore(t, ptr(jsonContent), nil)

	err := store.WriteToken("new")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read JS file")
	assert.Equal(t, jsonContent, readFile(t, jsonPath))
}

func TestStore_WriteToken_InvalidJSONLeavesFilesUntouched(t *testing.T) {
	jsContent := `const auth = "old";`
	store, _, jsPath := newTestStore(t, ptr(`[1, 2]`), ptr(jsContent))

	err := store.WriteToken("new")
	assert.ErrorIs(t, err, ErrInvalidJSON)
	assert.Equal(t, jsContent, readFile(t, jsPath))
}

func TestStore_WriteToken_PreservesPermissions(t *testing.T) {
	store, jsonPath, jsPath := newTestStore(t, ptr(`{}`), ptr(`const auth = "";`))
	require.NoError(t, os.Chmod(jsPath, 0o640))

	require.NoError(t, store.WriteToken("x"))

	info, err := os.Stat(jsPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	info, err = os.Stat(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_ValidatePaths(t *testing.T) {
	store, _, _ := newTestStore(t, ptr(`{}`), nil)

	warnings := store.ValidatePaths()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "JS file does not exist")

	store, _, _ = newTestStore(t, ptr(`{}`), ptr(`const auth = "";`))
	assert.Empty(t, store.ValidatePaths())
}

func TestStore_Watch_ReportsChanges(t *testing.T) {
	store, _, jsPath := newTestStore(t, ptr(`{}`), ptr(`const auth = "a";`))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx, func(path string) {
			select {
			case changes <- path:
			default:
			}
		})
	}()

	absJS, err := filepath.Abs(jsPath)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_ = os.WriteFile(jsPath, []byte(`const auth = "b";`), 0o600)
		select {
		case got := <-changes:
			return got == absJS
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
