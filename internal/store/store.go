package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

var (
	ErrNoSuchTable  = errors.New("no such table")
	ErrNoSuchColumn = errors.New("no such column")
	ErrTableExists  = errors.New("table already exists")
)

// MySQL server error numbers we classify.
const (
	erTableExists  = 1050
	erBadFieldName = 1054
	erNoSuchTable  = 1146
)

// Store executes built statements against a database handle.
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Open creates a lazily connected Store; nothing touches the network until the first query.
func Open(driver, dsn string) (*Store, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return New(db), nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to db: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Exec runs query and returns the number of affected rows.
// With params the query is bound by name (":row0_col1"); without, it is sent verbatim.
func (s *Store) Exec(ctx context.Context, query string, params map[string]any) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if len(params) > 0 {
		res, err = s.db.NamedExecContext(ctx, escapeColons(query), params)
	} else {
		res, err = s.db.ExecContext(ctx, query)
	}
	if err != nil {
		return 0, wrapMySQLError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

// QueryColumn returns the first column of every row produced by a named query.
func (s *Store) QueryColumn(ctx context.Context, query string, params map[string]any) ([]string, error) {
	var args []any
	if len(params) > 0 {
		bound, bargs, err := sqlx.Named(escapeColons(query), params)
		if err != nil {
			return nil, fmt.Errorf("failed to bind %q: %w", query, err)
		}
		query, args = s.db.Rebind(bound), bargs
	}

	var out []string
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, wrapMySQLError(err)
	}
	return out, nil
}

// Select scans a positional query into dest.
func (s *Store) Select(ctx context.Context, dest any, query string, args ...any) error {
	if err := s.db.SelectContext(ctx, dest, s.db.Rebind(query), args...); err != nil {
		return wrapMySQLError(err)
	}
	return nil
}

// escapeColons doubles every ':' inside a quoted identifier or string literal so
// named binding leaves it alone. "`ts:utc`" would otherwise bind ":utc".
func escapeColons(query string) string {
	if !strings.ContainsRune(query, ':') {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 8)
	var quote byte
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case quote == 0:
			if c == '`' || c == '\'' || c == '"' {
				quote = c
			}
		case c == '\\' && quote != '`' && i+1 < len(query):
			sb.WriteByte(c)
			i++
			if c = query[i]; c == ':' {
				sb.WriteByte(':')
			}
		case c == quote:
			quote = 0
		case c == ':':
			sb.WriteByte(':')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func wrapMySQLError(err error) error {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return err
	}

	switch myErr.Number {
	case erNoSuchTable:
		return fmt.Errorf("%w: %w", ErrNoSuchTable, err)
	case erBadFieldName:
		return fmt.Errorf("%w: %w", ErrNoSuchColumn, err)
	case erTableExists:
		return fmt.Errorf("%w: %w", ErrTableExists, err)
	}
	return err
}

// ParseDSN validates a MySQL DSN and returns the database it selects.
func ParseDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid dsn: %w", err)
	}
	if cfg.DBName == "" {
		return "", fmt.Errorf("no database selected in DSN")
	}
	return cfg.DBName, nil
}
