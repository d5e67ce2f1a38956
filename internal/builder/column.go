package builder

import (
	"context"
	"fmt"
)

const opAddColumn = "add column"

// AddColumn builds ALTER TABLE ... ADD with no positional clause; MySQL appends the column.
func (b *Builder) AddColumn(table, column, typ string) (string, error) {
	return b.addColumn(table, column, typ, "")
}

// AddColumnFirst builds ALTER TABLE ... ADD ... FIRST.
func (b *Builder) AddColumnFirst(table, column, typ string) (string, error) {
	sql, err := b.addColumn(table, column, typ, "")
	if err != nil {
		return "", err
	}
	return sql + " FIRST", nil
}

// AddColumnAfter builds ALTER TABLE ... ADD ... AFTER after.
// An empty after omits the clause.
func (b *Builder) AddColumnAfter(table, column, typ, after string) (string, error) {
	return b.addColumn(table, column, typ, after)
}

// AddColumnBefore places column immediately before the existing column before,
// resolved against the table's current column order.
func (b *Builder) AddColumnBefore(ctx context.Context, table, column, typ, before string) (string, error) {
	desc, err := b.catalog.DescribeTable(ctx, b.RawTableName(table))
	if err != nil {
		return "", &StatementError{Op: opAddColumn, Table: table, Column: column, Err: err}
	}

	columns := desc.ColumnNames()
	idx := -1
	for i, c := range columns {
		if c == before {
			idx = i
			break
		}
	}

	switch {
	case idx < 0:
		if b.cfg.Before == BeforeStrict {
			return "", &StatementError{
				Op: opAddColumn, Table: table, Column: column,
				Err: fmt.Errorf("%w: %s", ErrColumnNotFound, before),
			}
		}
		return b.AddColumn(table, column, typ)
	case idx == 0:
		return b.AddColumnFirst(table, column, typ)
	default:
		return b.AddColumnAfter(table, column, typ, columns[idx-1])
	}
}

// AlterColumn builds ALTER TABLE ... CHANGE, renaming column to newName (when set),
// retyping it, and moving it after the column after (when set).
func (b *Builder) AlterColumn(table, column, typ, newName, after string) (string, error) {
	const op = "alter column"

	if newName == "" {
		newName = column
	}
	if typ == "" {
		return "", &StatementError{Op: op, Table: table, Column: column, Err: ErrEmptyType}
	}

	qt, err := b.quoteTable(op, table)
	if err != nil {
		return "", err
	}
	qc, err := b.quoteColumn(op, table, column)
	if err != nil {
		return "", err
	}
	qn, err := b.quoteColumn(op, table, newName)
	if err != nil {
		return "", err
	}

	sql := "ALTER TABLE " + qt + " CHANGE " + qc + " " + qn + " " + b.ColumnType(typ)
	if after != "" {
		qa, err := b.quoteColumn(op, table, after)
		if err != nil {
			return "", err
		}
		sql += " AFTER " + qa
	}
	return sql, nil
}

func (b *Builder) addColumn(table, column, typ, after string) (string, error) {
	qt, err := b.quoteTable(opAddColumn, table)
	if err != nil {
		return "", err
	}
	qc, err := b.quoteColumn(opAddColumn, table, column)
	if err != nil {
		return "", err
	}
	if typ == "" {
		return "", &StatementError{Op: opAddColumn, Table: table, Column: column, Err: ErrEmptyType}
	}

	sql := "ALTER TABLE " + qt + " ADD " + qc + " " + b.ColumnType(typ)
	if after != "" {
		qa, err := b.quoteColumn(opAddColumn, table, after)
		if err != nil {
			return "", err
		}
		sql += " AFTER " + qa
	}
	return sql, nil
}
