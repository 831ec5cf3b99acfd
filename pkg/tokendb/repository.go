// Package tokendb looks up the most recent panel token of a provisioned
// product in SQL Server.
package tokendb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	// Registers the "sqlserver" driver.
	_ "github.com/microsoft/go-mssqldb"

	"github.com/illumination-k/token-helper/pkg/config"
	"github.com/illumination-k/token-helper/pkg/provisioning"
	"github.com/illumination-k/token-helper/pkg/redact"
)

// DriverName is the database/sql driver used by the default opener.
const DriverName = "sqlserver"

// BearerPrefix is prepended to tokens read from the database.
const BearerPrefix = "Bearer "

const tokenQueryTemplate = `
SELECT TOP 1 ACUS_USERNAME, ACUT_JWT_TOKEN
FROM %[1]s..CORE_PROVISIONED_PRODUCTS
    JOIN %[1]s..ACL_USERS ON CORE_PROVISIONED_PRODUCTS.CPPR_ID = ACL_USERS.ACUS_PROVISIONEDPRODUCTID
    LEFT JOIN %[1]s..ACL_USER_TOKENS ON ACL_USERS.ACUS_ID = ACL_USER_TOKENS.ACUT_USERID
WHERE CPPR_PROVISIONINGID = @p1
ORDER BY ACL_USER_TOKENS.ACUT_LAST_RESFRESH DESC`

// Opener returns a handle to the database. The repository closes it after
// every lookup.
type Opener func() (*sql.DB, error)

// Repository fetches tokens from the panel database.
type Repository struct {
	cfg      config.DatabaseConfig
	open     Opener
	redactor *redact.Redactor
	logger   *slog.Logger
}

// NewRepository creates a Repository that connects with go-mssqldb.
func NewRepository(cfg config.DatabaseConfig, logger *slog.Logger) *Repository {
	return NewRepositoryWithOpener(cfg, func() (*sql.DB, error) {
		return sql.Open(DriverName, cfg.ConnectionURL())
	}, logger)
}

// NewRepositoryWithOpener creates a Repository with a custom connection opener.
func NewRepositoryWithOpener(cfg config.DatabaseConfig, open Opener, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	// Drivers may echo the password raw or URL-encoded.
	redactor := redact.New(cfg.Password, url.QueryEscape(cfg.Password), url.PathEscape(cfg.Password))

	return &Repository{
		cfg:      cfg,
		open:     open,
		redactor: redactor,
		logger:   logger,
	}
}

// FetchLatestToken returns the username and bearer-normalized token of the
// most recently refreshed token row for id.
func (r *Repository) FetchLatestToken(ctx context.Context, id provisioning.ID) (username, token string, err error) {
	logger := r.logger.With(
		"host", r.cfg.Address(),
		"database", r.cfg.Name,
		"user", r.cfg.Login(),
		"provisioning_id", id.String())
	logger.Info("connecting to SQL Server")

	props := r.cfg.ConnectionProperties()
	logger.Debug("connection properties",
		"domain", props["domain"],
		"ntlmv2", props["useNTLMv2"],
		"tds_version", props["TDS"])

	db, err := r.open()
	if err != nil {
		return "", "", r.connectionError(err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, tokenQuery(r.cfg.Name), id.Value())
	if err != nil {
		return "", "", r.connectionError(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", "", r.connectionError(err)
		}
		return "", "", ErrNotFound
	}

	var user, jwt sql.NullString
	if err := rows.Scan(&user, &jwt); err != nil {
		return "", "", r.connectionError(err)
	}
	logger.Info("token row found", "username", user.String)

	if !jwt.Valid || jwt.String == "" {
		return "", "", &NoTokenError{Username: user.String}
	}

	return user.String, NormalizeBearer(jwt.String), nil
}

// NormalizeBearer prefixes token with "Bearer " unless it already has it.
func NormalizeBearer(token string) string {
	if strings.HasPrefix(token, BearerPrefix) {
		return token
	}
	return BearerPrefix + token
}

func (r *Repository) connectionError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ConnectionError{
		Address:  r.cfg.Address(),
		Database: r.cfg.Name,
		Login:    r.cfg.Login(),
		Err:      r.redactor.Error(err),
	}
}

func tokenQuery(database string) string {
	return fmt.Sprintf(tokenQueryTemplate, quoteIdentifier(database))
}

// quoteIdentifier brackets a SQL Server identifier.
func quoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}
