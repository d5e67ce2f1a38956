package builder_test

import (
	"errors"
	"strings"
	"testing"

	"db-ddl/internal/builder"
)

func TestCreateTable(t *testing.T) {
	b := newBuilder(nil)

	tests := []struct {
		name    string
		columns []builder.ColumnDef
		opts    []builder.TableOption
		want    string
	}{
		{
			name:    "default_options",
			columns: []builder.ColumnDef{builder.Col("id", "int")},
			want:    "CREATE TABLE `t` (\n\t`id` int\n) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci",
		},
		{
			name:    "empty_extra_equals_default",
			columns: []builder.ColumnDef{builder.Col("id", "int")},
			opts:    []builder.TableOption{builder.WithOptions("")},
			want:    "CREATE TABLE `t` (\n\t`id` int\n) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci",
		},
		{
			name:    "suppressed_options",
			columns: []builder.ColumnDef{builder.Col("id", "int")},
			opts:    []builder.TableOption{builder.WithoutTableOptions()},
			want:    "CREATE TABLE `t` (\n\t`id` int\n)",
		},
		{
			name: "engine_and_extra",
			columns: []builder.ColumnDef{
				builder.Col("id", "pk"),
				builder.Col("title", "string(64)"),
				builder.Raw("KEY `idx_title` (`title`)"),
			},
			opts: []builder.TableOption{builder.WithEngine("MyISAM"), builder.WithOptions("COMMENT='x'")},
			want: "CREATE TABLE `t` (\n" +
				"\t`id` int(11) NOT NULL AUTO_INCREMENT PRIMARY KEY,\n" +
				"\t`title` varchar(64),\n" +
				"\tKEY `idx_title` (`title`)\n" +
				") ENGINE=MyISAM DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci COMMENT='x'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.CreateTable("t", tt.columns, tt.opts...)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestCreateTable_EmptyCharsetPiecesAreOmitted(t *testing.T) {
	b := newBuilder(nil, func(c *builder.Config) {
		c.Charset = ""
		c.Collation = ""
	})

	got, err := b.CreateTable("{{%t}}", []builder.ColumnDef{builder.Col("id", "bigint")})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, ") ENGINE=InnoDB") || !strings.HasPrefix(got, "CREATE TABLE `craft_t`") {
		t.Errorf("got %s", got)
	}
}

func TestCreateTable_Rejects(t *testing.T) {
	b := newBuilder(nil)

	if _, err := b.CreateTable("t", nil); !errors.Is(err, builder.ErrNoColumns) {
		t.Errorf("no columns: %v", err)
	}
	if _, err := b.CreateTable("t", []builder.ColumnDef{builder.Col("id", "")}); !errors.Is(err, builder.ErrEmptyType) {
		t.Errorf("empty type: %v", err)
	}
	if _, err := b.CreateTable("`t`", []builder.ColumnDef{builder.Col("id", "int")}); !errors.Is(err, builder.ErrInvalidIdentifier) {
		t.Errorf("pre-quoted table: %v", err)
	}
	for _, blank := range []string{"", "  \t "} {
		got, err := b.CreateTable("t", []builder.ColumnDef{builder.Col("id", "int"), builder.Raw(blank)})
		if !errors.Is(err, builder.ErrEmptyType) || got != "" {
			t.Errorf("blank raw line %q: got %q, %v", blank, got, err)
		}
	}
}

func TestDropTableIfExists(t *testing.T) {
	b := newBuilder(nil)

	first, err := b.DropTableIfExists("{{%entries}}")
	if err != nil {
		t.Fatal(err)
	}
	second, _ := b.DropTableIfExists("{{%entries}}")

	if first != "DROP TABLE IF EXISTS `craft_entries`" || first != second {
		t.Errorf("got %q and %q", first, second)
	}

	if _, err := b.DropTableIfExists(strings.Repeat("x", 65)); !errors.Is(err, builder.ErrInvalidIdentifier) {
		t.Errorf("overlong name: %v", err)
	}
}
