package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"db-ddl/internal/builder"
	"db-ddl/internal/schema"
)

const (
	StatusOK      = "OK"
	StatusMissing = "MISSING DATA"
	StatusFailed  = "FAILED"
	StatusSkipped = "SKIPPED"
)

// Execer runs a built statement. *store.Store satisfies it.
type Execer interface {
	Exec(ctx context.Context, query string, params map[string]any) (int64, error)
}

// Result reports how many rows landed in one table.
type Result struct {
	Table  string
	Target int
	Actual int
	Status string
	Err    error
}

// Pumper fills tables with generated rows through multi-row inserts.
type Pumper struct {
	exec      Execer
	b         *builder.Builder
	gen       *Generator
	logger    *slog.Logger
	batchSize int
}

func NewPumper(exec Execer, b *builder.Builder, gen *Generator, batchSize int, logger *slog.Logger) *Pumper {
	if batchSize <= 0 {
		batchSize = 100
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pumper{exec: exec, b: b, gen: gen, logger: logger, batchSize: batchSize}
}

// Pump inserts count rows into each table in order. A failing table is reported
// in its Result and the remaining tables still run; only cancellation aborts.
// onProgress, when set, receives the number of rows each successful batch added.
func (p *Pumper) Pump(ctx context.Context, tables []*schema.TableDescriptor, count int, onProgress func(int)) ([]Result, error) {
	results := make([]Result, 0, len(tables))

	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := p.pumpTable(ctx, table, count, onProgress)
		if res.Err != nil && ctx.Err() != nil {
			return append(results, res), ctx.Err()
		}
		results = append(results, res)
	}
	return results, nil
}

func (p *Pumper) pumpTable(ctx context.Context, table *schema.TableDescriptor, count int, onProgress func(int)) Result {
	target := MaxInsertCount(table, count)
	res := Result{Table: table.Name, Target: target}

	var cols []*schema.Column
	var names []string
	for _, c := range table.Columns {
		if !c.IsAutoInc {
			cols = append(cols, c)
			names = append(names, c.Name)
		}
	}
	if len(cols) == 0 || target == 0 {
		res.Status = StatusSkipped
		return res
	}

	for res.Actual < target {
		n := min(p.batchSize, target-res.Actual)
		rows := make([][]any, n)
		for i := range rows {
			rows[i] = p.gen.Row(cols)
		}

		stmt, err := p.b.InsertAll(table.Name, names, rows)
		if err != nil {
			res.Status, res.Err = StatusFailed, err
			return res
		}

		affected, err := p.exec.Exec(ctx, stmt.SQL, stmt.Params)
		if err != nil {
			p.logger.Warn("batch insert failed", "table", table.Name, "rows", n, "error", err)
			res.Status, res.Err = StatusFailed, fmt.Errorf("failed to insert into %s: %w", table.Name, err)
			return res
		}
		p.logger.Debug("batch inserted", "table", table.Name, "rows", affected)

		res.Actual += int(affected)
		if onProgress != nil {
			onProgress(int(affected))
		}
		if int(affected) < n {
			break
		}
	}

	res.Status = StatusOK
	if res.Actual < target {
		res.Status = StatusMissing
	}
	return res
}

// MaxInsertCount caps count by what an auto-increment column can still number.
func MaxInsertCount(table *schema.TableDescriptor, count int) int {
	for _, c := range table.Columns {
		if !c.IsAutoInc {
			continue
		}
		if limit := autoIncLimit(c); limit < int64(count) {
			return int(limit)
		}
	}
	return count
}

func autoIncLimit(c *schema.Column) int64 {
	unsigned := strings.Contains(strings.ToLower(c.ColumnType), "unsigned")
	switch strings.ToLower(c.DataType) {
	case "tinyint":
		if unsigned {
			return 255
		}
		return 127
	case "smallint":
		if unsigned {
			return 65535
		}
		return 32767
	case "mediumint":
		if unsigned {
			return 16777215
		}
		return 8388607
	case "int", "integer":
		if unsigned {
			return 4294967295
		}
		return 2147483647
	}
	return math.MaxInt64
}
