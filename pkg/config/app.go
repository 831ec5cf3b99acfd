package config

import (
	"net"
	"net/url"
	"strconv"
	"time"
)

// DatabaseConfig holds the SQL Server connection settings.
type DatabaseConfig struct {
	Host       string
	Port       int
	Name       string
	Domain     string
	User       string
	Password   string
	TDSVersion string
}

// Login returns the NTLM login in DOMAIN\user form. Without a domain the
// plain user name is returned.
func (d DatabaseConfig) Login() string {
	if d.Domain == "" {
		return d.User
	}
	return d.Domain + `\` + d.User
}

// Address returns host:port.
func (d DatabaseConfig) Address() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}

// ConnectionURL builds the sqlserver:// DSN understood by go-mssqldb.
// A DOMAIN\user login makes the driver authenticate with NTLM. TDSVersion is
// not part of the DSN; go-mssqldb negotiates the protocol version itself.
func (d DatabaseConfig) ConnectionURL() string {
	query := url.Values{}
	query.Set("database", d.Name)

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(d.Login(), d.Password),
		Host:     d.Address(),
		RawQuery: query.Encode(),
	}
	return u.String()
}

// RedactedURL is ConnectionURL with the password masked, safe for logs.
func (d DatabaseConfig) RedactedURL() string {
	u, err := url.Parse(d.ConnectionURL())
	if err != nil {
		return "sqlserver://" + d.Address()
	}
	return u.Redacted()
}

// ConnectionProperties returns the driver property set for the connection.
// The TDS entry is informational: go-mssqldb negotiates the protocol version itself.
func (d DatabaseConfig) ConnectionProperties() map[string]string {
	return map[string]string{
		"user":      d.User,
		"password":  d.Password,
		"domain":    d.Domain,
		"useNTLMv2": "true",
		"TDS":       d.TDSVersion,
	}
}

// AppConfig is the process-wide configuration. It is built once by Load and
// passed around by value.
type AppConfig struct {
	JSONPath   string
	JSPath     string
	Port       int
	LoginURL   string
	DriverPath string
	AutoDelay  time.Duration
	LogLevel   string
	Database   DatabaseConfig
}

// ListenAddress returns the address the web server binds to (all interfaces).
func (c AppConfig) ListenAddress() string {
	return ":" + strconv.Itoa(c.Port)
}
