package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML configuration file named by CONFIG_FILE.
// Keys mirror the environment variables in lower snake case.
type FileConfig struct {
	DBHost     string `yaml:"db_host,omitempty"`
	DBPort     int    `yaml:"db_port,omitempty"`
	DBName     string `yaml:"db_name,omitempty"`
	DBDomain   string `yaml:"db_domain,omitempty"`
	DBUser     string `yaml:"db_user,omitempty"`
	DBPassword string `yaml:"db_password,omitempty"`
	TDSVersion string `yaml:"tds_version,omitempty"`
	JSONPath   string `yaml:"json_path,omitempty"`
	JSPath     string `yaml:"js_path,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	LoginURL   string `yaml:"login_url,omitempty"`
	DriverPath string `yaml:"driver_path,omitempty"`
	AutoDelay  string `yaml:"auto_delay,omitempty"`
	LogLevel   string `yaml:"log_level,omitempty"`
}

// LoadFile reads and parses a YAML configuration file.
func LoadFile(path string) (*FileConfig, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved) // #nosec G304 -- user-provided path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", resolved)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", resolved, err)
	}

	return &cfg, nil
}

// Lookup exposes the file values under their environment variable names.
func (f *FileConfig) Lookup(key string) (string, bool) {
	values := map[string]string{
		EnvDBHost:     f.DBHost,
		EnvDBPort:     itoa(f.DBPort),
		EnvDBName:     f.DBName,
		EnvDBDomain:   f.DBDomain,
		EnvDBUser:     f.DBUser,
		EnvDBPassword: f.DBPassword,
		EnvTDSVersion: f.TDSVersion,
		EnvJSONPath:   f.JSONPath,
		EnvJSPath:     f.JSPath,
		EnvPort:       itoa(f.Port),
		EnvLoginURL:   f.LoginURL,
		EnvDriverPath: f.DriverPath,
		EnvAutoDelay:  f.AutoDelay,
		EnvLogLevel:   f.LogLevel,
	}

	v, ok := values[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
