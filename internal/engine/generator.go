package engine

import (
	"fmt"
	"strings"
	"time"

	"db-ddl/internal/schema"

	"github.com/brianvoe/gofakeit/v6"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05"
	datetimeLayout = "2006-01-02 15:04:05"
)

// Generator produces fake column values. Two generators with the same seed and
// reference time yield the same sequence. A Generator is not safe for concurrent use.
type Generator struct {
	faker *gofakeit.Faker

	// NullRatio is the share of nil values emitted for nullable columns, 0..1.
	NullRatio float64
	// Now bounds generated dates to the year before it.
	Now time.Time
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		faker:     gofakeit.New(seed),
		NullRatio: 0.1,
		Now:       time.Now(),
	}
}

// Row generates one value per column, in column order.
func (g *Generator) Row(cols []*schema.Column) []any {
	row := make([]any, len(cols))
	for i, c := range cols {
		row[i] = g.Value(c)
	}
	return row
}

// Value generates a value for col by data type, then by column-name hints.
func (g *Generator) Value(col *schema.Column) any {
	if col.IsNullable && g.NullRatio > 0 && g.faker.Float64Range(0, 1) < g.NullRatio {
		return nil
	}

	dataType := strings.ToLower(col.DataType)
	colName := strings.ToLower(col.Name)

	if dataType == "enum" || dataType == "set" {
		if vals := enumValues(col.ColumnType); len(vals) > 0 {
			return vals[g.faker.Number(0, len(vals)-1)]
		}
		return nil
	}

	switch {
	case strings.Contains(dataType, "char") || strings.Contains(dataType, "text"):
		return truncate(g.text(colName, col.Length), col.Length)

	case dataType == "year":
		return g.Now.Year() - g.faker.Number(0, 25)

	case dataType == "date":
		return g.date().Format(dateLayout)
	case dataType == "time":
		return g.date().Format(timeLayout)
	case strings.Contains(dataType, "date") || strings.Contains(dataType, "timestamp"):
		return g.date().Format(datetimeLayout)

	case strings.Contains(dataType, "int"):
		if dataType == "tinyint" && (strings.HasPrefix(colName, "is_") || strings.Contains(colName, "enabled") ||
			strings.Contains(colName, "active") || strings.HasPrefix(col.ColumnType, "tinyint(1)")) {
			return g.faker.Number(0, 1)
		}
		return g.faker.Number(1, intCeiling(dataType, col.Length))

	case dataType == "decimal" || dataType == "numeric" || dataType == "float" || dataType == "double":
		return g.faker.Price(0.99, 999.99)

	case dataType == "bit" || dataType == "bool" || dataType == "boolean":
		return g.faker.Bool()

	case strings.Contains(dataType, "binary") || strings.Contains(dataType, "blob"):
		return []byte(g.faker.LetterN(8))

	case dataType == "json":
		return fmt.Sprintf(`{"id":%d,"tag":%q}`, g.faker.Number(1, 1000), g.faker.Word())
	}

	return nil
}

func (g *Generator) text(colName string, length int) string {
	switch {
	case strings.Contains(colName, "email"):
		return g.faker.Email()
	case strings.Contains(colName, "phone"):
		return g.faker.Phone()
	case strings.Contains(colName, "url") || strings.Contains(colName, "uri") || strings.Contains(colName, "link"):
		return g.faker.URL()
	case strings.Contains(colName, "uid"):
		return g.faker.UUID()
	case strings.Contains(colName, "first"):
		return g.faker.FirstName()
	case strings.Contains(colName, "last"):
		return g.faker.LastName()
	case strings.Contains(colName, "user"):
		return g.faker.Username()
	case strings.Contains(colName, "name"):
		return g.faker.Name()
	case strings.Contains(colName, "city"):
		return g.faker.City()
	case strings.Contains(colName, "country"):
		return g.faker.Country()
	case strings.Contains(colName, "zip") || strings.Contains(colName, "postal"):
		return g.faker.Zip()
	case strings.Contains(colName, "address") || strings.Contains(colName, "street"):
		return g.faker.Street()
	case strings.Contains(colName, "company"):
		return g.faker.Company()
	case strings.Contains(colName, "title") || strings.Contains(colName, "slug"):
		return g.faker.Sentence(3)
	}

	if length > 0 && length < 20 {
		return g.faker.Word()
	}
	return g.faker.Sentence(8)
}

func (g *Generator) date() time.Time {
	return g.faker.DateRange(g.Now.AddDate(-1, 0, 0), g.Now)
}

// intCeiling keeps generated integers inside the signed range of the type and,
// when a display width is known, inside that many digits.
func intCeiling(dataType string, width int) int {
	ceiling := 50000
	switch dataType {
	case "tinyint":
		ceiling = 127
	case "smallint":
		ceiling = 32767
	}

	if width > 0 && width < 5 {
		limit := 1
		for i := 0; i < width; i++ {
			limit *= 10
		}
		if limit-1 < ceiling {
			ceiling = limit - 1
		}
	}
	return ceiling
}

// enumValues extracts the members of "enum('a','b')" or "set('a','b')".
func enumValues(columnType string) []string {
	open := strings.IndexByte(columnType, '(')
	end := strings.LastIndexByte(columnType, ')')
	if open < 0 || end <= open {
		return nil
	}

	var vals []string
	for _, part := range strings.Split(columnType[open+1:end], ",") {
		part = strings.TrimSpace(part)
		part = strings.TrimSuffix(strings.TrimPrefix(part, "'"), "'")
		vals = append(vals, strings.ReplaceAll(part, "''", "'"))
	}
	return vals
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}
