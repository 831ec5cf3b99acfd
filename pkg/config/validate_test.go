package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() AppConfig {
	return AppConfig{
		Port: DefaultPort,
		Database: DatabaseConfig{
			Host:     "db",
			Port:     1433,
			Name:     "ngcs",
			Domain:   "CORP",
			User:     "alice",
			Password: "pw",
		},
	}
}

func TestValidate_Clean(t *testing.T) {
	assert.Empty(t, validConfig().Validate())
}

func TestValidate_MissingPasswordIsWarning(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Password = ""

	problems := cfg.Validate()
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0].Message, "DB_PASSWORD")
	assert.False(t, problems[0].Fatal)
	assert.False(t, HasFatal(problems))
}

func TestValidate_MissingDriverIsFatal(t *testing.T) {
	cfg := validConfig()
	cfg.DriverPath = filepath.Join(t.TempDir(), "driver.jar")

	problems := cfg.Validate()
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0].String(), "driver artifact not found")
	assert.True(t, HasFatal(problems))
}

func TestValidate_PresentDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "driver.jar")
	require.NoError(t, os.WriteFile(path, []byte("jar"), 0o600))

	cfg := validConfig()
	cfg.DriverPath = path
	assert.Empty(t, cfg.Validate())
}

func TestValidate_PortRange(t *testing.T) {
	cfg := validConfig()
	cfg.Port = 70000
	assert.True(t, HasFatal(cfg.Validate()))
}

func TestDatabaseConfig_Derived(t *testing.T) {
	db := validConfig().Database

	assert.Equal(t, `CORP\alice`, db.Login())
	assert.Equal(t, "db:1433", db.Address())

	props := db.ConnectionProperties()
	assert.Equal(t, "alice", props["user"])
	assert.Equal(t, "pw", props["password"])
	assert.Equal(t, "CORP", props["domain"])
	assert.Equal(t, "true", props["useNTLMv2"])

	url := db.ConnectionURL()
	assert.True(t, strings.HasPrefix(url, "sqlserver://"))
	assert.Contains(t, url, "db:1433")
	assert.Contains(t, url, "database=ngcs")
	assert.Contains(t, url, "CORP%5Calice")

	redacted := db.RedactedURL()
	assert.NotContains(t, redacted, "pw@")
	assert.Contains(t, redacted, "db:1433")
}

func TestDatabaseConfig_LoginWithoutDomain(t *testing.T) {
	db := DatabaseConfig{User: "sa"}
	assert.Equal(t, "sa", db.Login())
}
