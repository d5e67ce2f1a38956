package schema

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"db-ddl/internal/dialect"
	"db-ddl/internal/store"
)

var ErrTableNotFound = errors.New("table not found")

// columnRow mirrors dialect.ColumnsQuery.
type columnRow struct {
	Name     string         `db:"COLUMN_NAME"`
	DataType sql.NullString `db:"DATA_TYPE"`
	Type     sql.NullString `db:"COLUMN_TYPE"`
	Length   sql.NullInt64  `db:"CHARACTER_MAXIMUM_LENGTH"`
	Nullable sql.NullString `db:"IS_NULLABLE"`
	Key      sql.NullString `db:"COLUMN_KEY"`
	Extra    sql.NullString `db:"EXTRA"`
	Comment  sql.NullString `db:"COLUMN_COMMENT"`
}

// Inspector answers table lookups from information_schema and caches descriptors by name.
type Inspector struct {
	st     *store.Store
	d      dialect.Dialect
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]*TableDescriptor
}

func NewInspector(st *store.Store, d dialect.Dialect, logger *slog.Logger) *Inspector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inspector{
		st:     st,
		d:      d,
		logger: logger,
		cache:  make(map[string]*TableDescriptor),
	}
}

// DescribeTable returns the table's columns in ordinal order. A "db.table" name
// is looked up in db; a bare name in the connection's current database.
func (i *Inspector) DescribeTable(ctx context.Context, table string) (*TableDescriptor, error) {
	i.mu.RLock()
	t, ok := i.cache[table]
	i.mu.RUnlock()
	if ok {
		i.logger.Debug("describe table (cached)", "table", table)
		return t, nil
	}

	var (
		rows   []columnRow
		dbName any
	)
	name := table
	if db, tbl, ok := strings.Cut(table, "."); ok {
		dbName, name = db, tbl
	}
	if err := i.st.Select(ctx, &rows, i.d.ColumnsQuery(), dbName, name); err != nil {
		return nil, fmt.Errorf("failed to query columns of %s: %w", table, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	t = &TableDescriptor{Name: table, Columns: make([]*Column, 0, len(rows))}
	for _, r := range rows {
		t.Columns = append(t.Columns, r.toColumn())
	}

	i.mu.Lock()
	i.cache[table] = t
	i.mu.Unlock()

	i.logger.Debug("describe table", "table", table, "columns", len(t.Columns))
	return t, nil
}

// Invalidate drops the cached descriptor of a table whose definition changed.
func (i *Inspector) Invalidate(table string) {
	i.mu.Lock()
	delete(i.cache, table)
	i.mu.Unlock()
}

// TableNames lists every base table of the current database.
func (i *Inspector) TableNames(ctx context.Context) ([]string, error) {
	names, err := i.st.QueryColumn(ctx, i.d.TablesQuery(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	return names, nil
}

func (i *Inspector) QueryColumn(ctx context.Context, query string, params map[string]any) ([]string, error) {
	return i.st.QueryColumn(ctx, query, params)
}

func (r columnRow) toColumn() *Column {
	extra := strings.ToLower(r.Extra.String)
	c := &Column{
		Name:       r.Name,
		DataType:   strings.ToLower(r.DataType.String),
		ColumnType: r.Type.String,
		IsNullable: r.Nullable.String == "YES",
		IsPK:       strings.Contains(r.Key.String, "PRI"),
		IsAutoInc:  strings.Contains(extra, "auto_increment"),
		Comment:    r.Comment.String,
	}
	if r.Length.Valid {
		c.Length = int(r.Length.Int64)
	}
	return c
}
