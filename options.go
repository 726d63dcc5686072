package iroha

import (
	"fmt"
	"strings"

	"github.com/ecsantana76/iroha/types"
)

// PostgresOptions carries the connection options for the storage backend as
// an ordered set of key=value tokens (host, port, user, password, dbname,
// ...). The core treats everything except dbname as opaque text assembled by
// an external collaborator and passed through unchanged to the driver.
//
// The dbname token is the one parameter this layer interprets: it names the
// ledger database, feeds the prepared-transaction identifier, and is
// stripped for maintenance connections that must not select a database.
type PostgresOptions struct {
	tokens []optionToken
	dbname string
}

type optionToken struct {
	key   string
	value string
}

// ParsePostgresOptions parses a space-separated key=value options string.
//
// When the string carries no dbname token, defaultDBName is adopted and a
// warning is logged, mirroring how a node falls back to its default ledger
// database.
//
// Parameters:
//   - options: Space-separated key=value connection options
//   - defaultDBName: Database name to adopt when options has no dbname
//   - logger: Destination for the fallback warning
//
// Returns:
//   - *PostgresOptions: The parsed options
//   - error: nil on success, an error for malformed tokens
func ParsePostgresOptions(options string, defaultDBName string, logger types.Logger) (*PostgresOptions, error) {
	po := &PostgresOptions{}

	for _, field := range strings.Fields(options) {
		key, value, found := strings.Cut(field, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("iroha: malformed connection option %q", field)
		}
		if key == "dbname" {
			po.dbname = value
			continue
		}
		po.tokens = append(po.tokens, optionToken{key: key, value: value})
	}

	if po.dbname == "" {
		po.dbname = defaultDBName
		logger.Warn("connection options do not contain dbname, using default",
			"dbname", defaultDBName,
		)
	}

	return po, nil
}

// DBName returns the name of the ledger database.
func (o *PostgresOptions) DBName() string {
	return o.dbname
}

// OptionsString returns the full options string including the dbname token.
func (o *PostgresOptions) OptionsString() string {
	return o.join(true)
}

// OptionsStringWithoutDBName returns the options string with the dbname
// token stripped, for maintenance connections made before the ledger
// database exists.
func (o *PostgresOptions) OptionsStringWithoutDBName() string {
	return o.join(false)
}

// PreparedBlockName returns the prepared-transaction identifier derived from
// the ledger database name.
func (o *PostgresOptions) PreparedBlockName() string {
	return types.PreparedBlockName(o.dbname)
}

func (o *PostgresOptions) join(withDBName bool) string {
	var sb strings.Builder
	for i, tok := range o.tokens {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.key)
		sb.WriteByte('=')
		sb.WriteString(tok.value)
	}
	if withDBName {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("dbname=")
		sb.WriteString(o.dbname)
	}
	return sb.String()
}
