package builder

import (
	"errors"
	"fmt"
	"strings"

	"db-ddl/internal/dialect"
)

var (
	// ErrInvalidIdentifier is returned for empty, oversized or pre-quoted names.
	ErrInvalidIdentifier = dialect.ErrInvalidIdentifier

	// ErrColumnNotFound is returned by AddColumnBefore under BeforeStrict.
	ErrColumnNotFound = errors.New("column not found")

	// ErrEmptyBatch is returned by InsertAll for zero rows.
	ErrEmptyBatch = errors.New("empty batch")

	ErrEmptyType       = errors.New("empty column type")
	ErrNoColumns       = errors.New("no columns")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrRowTooWide      = errors.New("row has more values than columns")
	ErrInvalidValue    = errors.New("invalid value")
)

// StatementError reports which statement could not be built.
type StatementError struct {
	Op     string // "add column", "insert", ...
	Table  string
	Column string // empty if not column-specific
	Err    error
}

func (e *StatementError) Error() string {
	var parts []string

	parts = append(parts, e.Op)

	switch {
	case e.Table != "" && e.Column != "":
		parts = append(parts, fmt.Sprintf("%s.%s", e.Table, e.Column))
	case e.Table != "":
		parts = append(parts, e.Table)
	case e.Column != "":
		parts = append(parts, e.Column)
	}

	return strings.Join(parts, " ") + ": " + e.Err.Error()
}

func (e *StatementError) Unwrap() error {
	return e.Err
}
