package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by Load.
const (
	EnvDBHost     = "DB_HOST"
	EnvDBPort     = "DB_PORT"
	EnvDBName     = "DB_NAME"
	EnvDBDomain   = "DB_DOMAIN"
	EnvDBUser     = "DB_USER"
	EnvDBPassword = "DB_PASSWORD"
	EnvTDSVersion = "TDS_VERSION"
	EnvJSONPath   = "JSON_PATH"
	EnvJSPath     = "JS_PATH"
	EnvPort       = "PORT"
	EnvLoginURL   = "LOGIN_URL"
	EnvDriverPath = "DRIVER_PATH"
	EnvAutoDelay  = "AUTO_DELAY"
	EnvLogLevel   = "LOG_LEVEL"
	EnvConfigFile = "CONFIG_FILE"
)

// Defaults applied when neither the environment nor the config file set a value.
const (
	DefaultDBHost     = "dev-ngcs-sqldb.dev-ngcs.lan"
	DefaultDBPort     = 1433
	DefaultDBName     = "ngcs"
	DefaultDBDomain   = "ARSYSLAN"
	DefaultDBUser     = "usuario"
	DefaultTDSVersion = "8.0"
	DefaultJSONPath   = "/ruta/al/http-client.private.env.json"
	DefaultJSPath     = "/ruta/al/config.js"
	DefaultPort       = 8000
	DefaultLoginURL   = "https://com-cloudpanel-arsys-dev.com.schlund.de/loginany"
	DefaultAutoDelay  = 2 * time.Second
	DefaultLogLevel   = "info"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadFromEnv loads the configuration from the process environment.
func LoadFromEnv() (AppConfig, error) {
	return Load(os.LookupEnv)
}

// Load builds an AppConfig. Precedence is defaults < CONFIG_FILE < environment.
func Load(lookup LookupFunc) (AppConfig, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if path, ok := lookup(EnvConfigFile); ok && strings.TrimSpace(path) != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return AppConfig{}, err
		}
		lookup = chain(lookup, fileCfg.Lookup)
	}

	r := resolver{lookup: lookup}

	cfg := AppConfig{
		JSONPath:   tokenFilePath(r.str(EnvJSONPath, DefaultJSONPath)),
		JSPath:     tokenFilePath(r.str(EnvJSPath, DefaultJSPath)),
		Port:       r.int(EnvPort, DefaultPort),
		LoginURL:   r.str(EnvLoginURL, DefaultLoginURL),
		DriverPath: r.str(EnvDriverPath, ""),
		AutoDelay:  r.duration(EnvAutoDelay, DefaultAutoDelay),
		LogLevel:   r.str(EnvLogLevel, DefaultLogLevel),
		Database: DatabaseConfig{
			Host:       r.str(EnvDBHost, DefaultDBHost),
			Port:       r.int(EnvDBPort, DefaultDBPort),
			Name:       r.str(EnvDBName, DefaultDBName),
			Domain:     r.str(EnvDBDomain, DefaultDBDomain),
			User:       r.str(EnvDBUser, DefaultDBUser),
			Password:   r.str(EnvDBPassword, ""),
			TDSVersion: r.str(EnvTDSVersion, DefaultTDSVersion),
		},
	}

	if r.err != nil {
		return AppConfig{}, r.err
	}
	return cfg, nil
}

// chain returns a lookup that consults each function in order. Empty values
// count as unset.
func chain(lookups ...LookupFunc) LookupFunc {
	return func(key string) (string, bool) {
		for _, l := range lookups {
			if v, ok := l(key); ok && v != "" {
				return v, true
			}
		}
		return "", false
	}
}

// resolver reads typed values and remembers the first parse error.
type resolver struct {
	lookup LookupFunc
	err    error
}

func (r *resolver) str(key, fallback string) string {
	if v, ok := r.lookup(key); ok && v != "" {
		return v
	}
	return fallback
}

func (r *resolver) int(key string, fallback int) int {
	v, ok := r.lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		r.fail(fmt.Errorf("invalid %s %q: must be an integer", key, v))
		return fallback
	}
	return n
}

func (r *resolver) duration(key string, fallback time.Duration) time.Duration {
	v, ok := r.lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		r.fail(fmt.Errorf("invalid %s format: %w", key, err))
		return fallback
	}
	if d < 0 {
		r.fail(fmt.Errorf("%s must not be negative", key))
		return fallback
	}
	return d
}

func (r *resolver) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}
