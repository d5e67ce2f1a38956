package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// ReplaceInColumn builds an UPDATE that replaces every occurrence of find with
// replace in one column. Both values are bound as text.
func (b *Builder) ReplaceInColumn(table, column string, find, replace any) (*Statement, error) {
	const op = "replace"

	qt, err := b.quoteTable(op, table)
	if err != nil {
		return nil, err
	}
	qc, err := b.quoteColumn(op, table, column)
	if err != nil {
		return nil, err
	}

	f, err := cast.ToStringE(find)
	if err != nil {
		return nil, &StatementError{Op: op, Table: table, Column: column, Err: fmt.Errorf("%w: find: %w", ErrInvalidValue, err)}
	}
	r, err := cast.ToStringE(replace)
	if err != nil {
		return nil, &StatementError{Op: op, Table: table, Column: column, Err: fmt.Errorf("%w: replace: %w", ErrInvalidValue, err)}
	}

	sql := fmt.Sprintf("UPDATE %s SET %s = REPLACE(%s, %s, %s)",
		qt, qc, qc, b.d.Placeholder("find"), b.d.Placeholder("replace"))

	return &Statement{
		SQL:    sql,
		Params: map[string]any{"find": f, "replace": r},
	}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// TablesLikeStatement builds the listing of tables whose names start with prefix.
func (b *Builder) TablesLikeStatement(prefix string) *Statement {
	return &Statement{
		SQL:    b.d.TablesLikeQuery("pattern"),
		Params: map[string]any{"pattern": likeEscaper.Replace(prefix) + "%"},
	}
}

// ListTablesStatement is the statement FindTableNames runs for prefix.
func (b *Builder) ListTablesStatement(prefix string) *Statement {
	if prefix == "" {
		return &Statement{SQL: b.d.TablesQuery()}
	}
	return b.TablesLikeStatement(prefix)
}

// FindTableNames lists tables starting with prefix, or every table when prefix is empty.
func (b *Builder) FindTableNames(ctx context.Context, prefix string) ([]string, error) {
	if prefix == "" {
		return b.catalog.TableNames(ctx)
	}

	stmt := b.TablesLikeStatement(prefix)
	names, err := b.catalog.QueryColumn(ctx, stmt.SQL, stmt.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables like %q: %w", prefix, err)
	}
	return names, nil
}
