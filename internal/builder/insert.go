package builder

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// InsertAll builds one multi-row INSERT.
//
// Cell (r, c) with a value is bound to the placeholder "row<r>_col<c>". A nil, a
// nil pointer, a driver.Valuer yielding nil, or a position past the end of a short
// row renders as an inline NULL and is never bound.
func (b *Builder) InsertAll(table string, columns []string, rows [][]any) (*Statement, error) {
	const op = "insert"

	qt, err := b.quoteTable(op, table)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, &StatementError{Op: op, Table: table, Err: ErrNoColumns}
	}
	if len(rows) == 0 {
		return nil, &StatementError{Op: op, Table: table, Err: ErrEmptyBatch}
	}

	seen := make(map[string]bool, len(columns))
	quoted := make([]string, len(columns))
	for i, c := range columns {
		if seen[c] {
			return nil, &StatementError{Op: op, Table: table, Column: c, Err: ErrDuplicateColumn}
		}
		seen[c] = true

		if quoted[i], err = b.quoteColumn(op, table, c); err != nil {
			return nil, err
		}
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(qt)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(quoted, ", "))
	sb.WriteString(") VALUES ")

	params := make(map[string]any)
	for r, row := range rows {
		if len(row) > len(columns) {
			return nil, &StatementError{
				Op: op, Table: table,
				Err: fmt.Errorf("%w: row %d has %d values for %d columns", ErrRowTooWide, r, len(row), len(columns)),
			}
		}
		if r > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for c := range columns {
			if c > 0 {
				sb.WriteString(", ")
			}

			var v any
			if c < len(row) {
				v = row[c]
			}
			null, err := isNull(v)
			if err != nil {
				return nil, &StatementError{Op: op, Table: table, Column: columns[c], Err: fmt.Errorf("%w: row %d: %w", ErrInvalidValue, r, err)}
			}
			if null {
				sb.WriteString("NULL")
				continue
			}

			name := placeholderName(r, c)
			params[name] = v
			sb.WriteString(b.d.Placeholder(name))
		}
		sb.WriteByte(')')
	}

	return &Statement{SQL: sb.String(), Params: params}, nil
}

func placeholderName(row, col int) string {
	return "row" + strconv.Itoa(row) + "_col" + strconv.Itoa(col)
}

// isNull reports whether v stands for SQL NULL. Nil pointers, maps, slices and
// interfaces count, as they do for database/sql.
func isNull(v any) (bool, error) {
	if v == nil {
		return true, nil
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return true, nil
		}
	}
	if valuer, ok := v.(driver.Valuer); ok {
		dv, err := valuer.Value()
		if err != nil {
			return false, err
		}
		return dv == nil, nil
	}
	return false, nil
}
