package dialect

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxIdentifierLength is the longest table, column or database name MySQL accepts.
const MaxIdentifierLength = 64

// ErrInvalidIdentifier is returned for names that cannot be quoted.
var ErrInvalidIdentifier = errors.New("invalid identifier")

const quoteChar = "`"

type MysqlDialect struct{}

// QuoteIdentifier wraps name in backticks, doubling any backtick inside it.
// A name that already arrives wrapped is rejected: quoting happens exactly once.
func (d *MysqlDialect) QuoteIdentifier(name string) (string, error) {
	switch {
	case name == "":
		return "", fmt.Errorf("%w: empty name", ErrInvalidIdentifier)
	case utf8.RuneCountInString(name) > MaxIdentifierLength:
		return "", fmt.Errorf("%w: %q exceeds %d characters", ErrInvalidIdentifier, name, MaxIdentifierLength)
	case len(name) >= 2 && strings.HasPrefix(name, quoteChar) && strings.HasSuffix(name, quoteChar):
		return "", fmt.Errorf("%w: %s is already quoted", ErrInvalidIdentifier, name)
	}
	return quoteChar + strings.ReplaceAll(name, quoteChar, quoteChar+quoteChar) + quoteChar, nil
}

// QuoteTableName quotes each part of a possibly schema-qualified name ("db.table").
func (d *MysqlDialect) QuoteTableName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty table name", ErrInvalidIdentifier)
	}
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("%w: %q has too many parts", ErrInvalidIdentifier, name)
	}
	for i, p := range parts {
		q, err := d.QuoteIdentifier(p)
		if err != nil {
			return "", err
		}
		parts[i] = q
	}
	return strings.Join(parts, "."), nil
}

func (d *MysqlDialect) QuoteColumnName(name string) (string, error) {
	return d.QuoteIdentifier(name)
}

// QuoteDatabaseName uses the same quoting as tables and columns.
func (d *MysqlDialect) QuoteDatabaseName(name string) (string, error) {
	return d.QuoteIdentifier(name)
}

func (d *MysqlDialect) Placeholder(name string) string {
	return ":" + name
}

func (d *MysqlDialect) TablesQuery() string {
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

func (d *MysqlDialect) TablesLikeQuery(param string) string {
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_TYPE = 'BASE TABLE' AND TABLE_NAME LIKE ` + d.Placeholder(param) + ` ORDER BY TABLE_NAME`
}

func (d *MysqlDialect) ColumnsQuery() string {
	return `SELECT COLUMN_NAME, DATA_TYPE, COLUMN_TYPE, CHARACTER_MAXIMUM_LENGTH, IS_NULLABLE, COLUMN_KEY, EXTRA, COLUMN_COMMENT FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = COALESCE(?, DATABASE()) AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION`
}

func (d *MysqlDialect) DefaultEngine() string {
	return "InnoDB"
}

func (d *MysqlDialect) DefaultTypes() TypeMap {
	return DefaultTypeMap()
}
