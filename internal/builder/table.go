package builder

import (
	"fmt"
	"strings"
)

// ColumnDef is one line of a CREATE TABLE body. An entry without a Name is
// emitted verbatim, which is how constraints and keys are declared.
type ColumnDef struct {
	Name string
	Type string
}

// Col declares a named column.
func Col(name, typ string) ColumnDef {
	return ColumnDef{Name: name, Type: typ}
}

// Raw declares a literal line such as "PRIMARY KEY (`id`)".
func Raw(line string) ColumnDef {
	return ColumnDef{Type: line}
}

type tableOptions struct {
	engine string
	extra  string
	none   bool
}

type TableOption func(o *tableOptions)

// WithEngine overrides the storage engine ("InnoDB", "MyISAM", ...).
func WithEngine(engine string) TableOption {
	return func(o *tableOptions) {
		o.engine = engine
	}
}

// WithOptions appends extra SQL after the engine and charset clause.
func WithOptions(extra string) TableOption {
	return func(o *tableOptions) {
		o.extra = extra
	}
}

// WithoutTableOptions suppresses the whole trailing clause, engine and charset included.
func WithoutTableOptions() TableOption {
	return func(o *tableOptions) {
		o.none = true
	}
}

// CreateTable builds a CREATE TABLE statement with one line per column definition.
func (b *Builder) CreateTable(table string, columns []ColumnDef, opts ...TableOption) (string, error) {
	const op = "create table"

	opt := &tableOptions{engine: b.cfg.Engine}
	for _, o := range opts {
		o(opt)
	}

	qt, err := b.quoteTable(op, table)
	if err != nil {
		return "", err
	}
	if len(columns) == 0 {
		return "", &StatementError{Op: op, Table: table, Err: ErrNoColumns}
	}

	lines := make([]string, len(columns))
	for i, c := range columns {
		if c.Name == "" {
			if strings.TrimSpace(c.Type) == "" {
				return "", &StatementError{Op: op, Table: table, Err: fmt.Errorf("%w: blank raw line %d", ErrEmptyType, i)}
			}
			lines[i] = "\t" + c.Type
			continue
		}
		if c.Type == "" {
			return "", &StatementError{Op: op, Table: table, Column: c.Name, Err: ErrEmptyType}
		}
		qc, err := b.quoteColumn(op, table, c.Name)
		if err != nil {
			return "", err
		}
		lines[i] = "\t" + qc + " " + b.ColumnType(c.Type)
	}

	sql := "CREATE TABLE " + qt + " (\n" + strings.Join(lines, ",\n") + "\n)"
	if opt.none {
		return sql, nil
	}
	return sql + " " + b.tableOptions(opt), nil
}

func (b *Builder) tableOptions(opt *tableOptions) string {
	parts := []string{"ENGINE=" + opt.engine}
	if b.cfg.Charset != "" {
		parts = append(parts, "DEFAULT CHARSET="+b.cfg.Charset)
	}
	if b.cfg.Collation != "" {
		parts = append(parts, "COLLATE="+b.cfg.Collation)
	}
	if opt.extra != "" {
		parts = append(parts, opt.extra)
	}
	return strings.Join(parts, " ")
}

// DropTableIfExists builds DROP TABLE IF EXISTS, which succeeds for a missing table.
func (b *Builder) DropTableIfExists(table string) (string, error) {
	qt, err := b.quoteTable("drop table", table)
	if err != nil {
		return "", err
	}
	return "DROP TABLE IF EXISTS " + qt, nil
}
