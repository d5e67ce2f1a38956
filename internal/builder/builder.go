// Package builder renders schema and bulk data operations as MySQL statements.
//
// A Builder is pure: apart from AddColumnBefore and FindTableNames, which consult
// the injected Catalog, every method only composes strings. Executing the result
// is the caller's job.
package builder

import (
	"context"
	"strings"

	"db-ddl/internal/dialect"
	"db-ddl/internal/schema"
)

// Catalog is the read-only view of the live database the builder consults.
type Catalog interface {
	DescribeTable(ctx context.Context, table string) (*schema.TableDescriptor, error)
	// TableNames lists every table; it backs FindTableNames when no prefix is given.
	TableNames(ctx context.Context) ([]string, error)
	QueryColumn(ctx context.Context, query string, params map[string]any) ([]string, error)
}

// BeforePolicy decides what AddColumnBefore does when the reference column is missing.
type BeforePolicy int

const (
	// BeforeFallback degrades to a plain ADD with no positional clause.
	BeforeFallback BeforePolicy = iota
	// BeforeStrict fails with ErrColumnNotFound.
	BeforeStrict
)

type Config struct {
	Engine      string // default engine for CreateTable; the dialect's when empty
	Charset     string
	Collation   string
	TablePrefix string // substituted for "%" in "{{%name}}" table names
	Types       dialect.TypeMap
	Before      BeforePolicy
}

type Builder struct {
	d       dialect.Dialect
	catalog Catalog
	cfg     Config
	types   dialect.TypeMap
}

// New returns a Builder. The type map is copied, so later changes to cfg.Types are not observed.
func New(d dialect.Dialect, catalog Catalog, cfg Config) *Builder {
	types := cfg.Types
	if types == nil {
		types = d.DefaultTypes()
	}
	if cfg.Engine == "" {
		cfg.Engine = d.DefaultEngine()
	}
	return &Builder{
		d:       d,
		catalog: catalog,
		cfg:     cfg,
		types:   types.Clone(),
	}
}

// ColumnType resolves a type token through the builder's type map.
func (b *Builder) ColumnType(typ string) string {
	return b.types.Resolve(typ)
}

// RawTableName expands the "{{%name}}" and "{{name}}" forms.
func (b *Builder) RawTableName(name string) string {
	if !strings.HasPrefix(name, "{{") || !strings.HasSuffix(name, "}}") {
		return name
	}
	name = name[2 : len(name)-2]
	if strings.HasPrefix(name, "%") {
		return b.cfg.TablePrefix + name[1:]
	}
	return name
}

func (b *Builder) quoteTable(op, table string) (string, error) {
	q, err := b.d.QuoteTableName(b.RawTableName(table))
	if err != nil {
		return "", &StatementError{Op: op, Table: table, Err: err}
	}
	return q, nil
}

func (b *Builder) quoteColumn(op, table, column string) (string, error) {
	q, err := b.d.QuoteColumnName(column)
	if err != nil {
		return "", &StatementError{Op: op, Table: table, Column: column, Err: err}
	}
	return q, nil
}

// QuoteDatabaseName quotes a database name the same way as tables and columns.
func (b *Builder) QuoteDatabaseName(name string) (string, error) {
	q, err := b.d.QuoteDatabaseName(name)
	if err != nil {
		return "", &StatementError{Op: "quote database", Err: err}
	}
	return q, nil
}
