package application

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illumination-k/token-helper/pkg/config"
)

func TestNewApp(t *testing.T) {
	tmpDir := t.TempDir()
	jsonPath := filepath.Join(tmpDir, "env.json")
	jsPath := filepath.Join(tmpDir, "config.js")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"dev":{"panel_token":"Bearer abc"}}`), 0o600))
	require.NoError(t, os.WriteFile(jsPath, []byte(`const auth = "Bearer abc";`), 0o600))

	cfg := config.AppConfig{
		JSONPath:  jsonPath,
		JSPath:    jsPath,
		Port:      8000,
		LoginURL:  "https://panel.invalid/loginany",
		AutoDelay: time.Second,
		Database: config.DatabaseConfig{
			Host: "db.invalid",
			Port: 1433,
			Name: "ngcs",
		},
	}

	app := NewApp(cfg, nil)
	require.NotNil(t, app.TokenService)
	assert.Equal(t, cfg, app.Config)

	assert.Equal(t, jsonPath, app.TokenService.JSONPath())
	assert.Equal(t, jsPath, app.TokenService.JSPath())
	assert.Empty(t, app.TokenService.ValidatePaths())
	assert.Equal(t, "Bearer abc", app.TokenService.GetCurrentToken(context.Background()))

	require.NoError(t, app.TokenService.UpdateTokenManually(context.Background(), "Bearer xyz"))
	data, err := os.ReadFile(jsPath)
	require.NoError(t, err)
	assert.Equal(t, `const auth = "Bearer xyz";`, string(data))
}
