package builder_test

import (
	"context"
	"errors"
	"testing"

	"db-ddl/internal/builder"
	"db-ddl/internal/dialect"
)

func TestReplaceInColumn(t *testing.T) {
	b := newBuilder(nil)

	stmt, err := b.ReplaceInColumn("{{%content}}", "body", "http://old", "https://new")
	if err != nil {
		t.Fatal(err)
	}

	want := "UPDATE `craft_content` SET `body` = REPLACE(`body`, :find, :replace)"
	if stmt.SQL != want {
		t.Errorf("got  %s\nwant %s", stmt.SQL, want)
	}
	if stmt.Params["find"] != "http://old" || stmt.Params["replace"] != "https://new" {
		t.Errorf("params = %v", stmt.Params)
	}
}

func TestReplaceInColumn_CoercesScalarsToText(t *testing.T) {
	b := newBuilder(nil)

	stmt, err := b.ReplaceInColumn("t", "c", 42, true)
	if err != nil {
		t.Fatal(err)
	}
	if stmt.Params["find"] != "42" || stmt.Params["replace"] != "true" {
		t.Errorf("params = %#v", stmt.Params)
	}
}

func TestReplaceInColumn_Rejects(t *testing.T) {
	b := newBuilder(nil)

	if _, err := b.ReplaceInColumn("t", "c", struct{ X int }{1}, "x"); !errors.Is(err, builder.ErrInvalidValue) {
		t.Errorf("struct find: %v", err)
	}
	if _, err := b.ReplaceInColumn("t", "", "a", "b"); !errors.Is(err, builder.ErrInvalidIdentifier) {
		t.Errorf("empty column: %v", err)
	}
}

func TestTablesLikeStatement_EscapesWildcards(t *testing.T) {
	b := newBuilder(nil)

	tests := map[string]string{
		"craft": "craft%",
		"wp_":   `wp\_%`,
		"100%":  `100\%%`,
		`a\b`:   `a\\b%`,
	}
	for prefix, want := range tests {
		stmt := b.TablesLikeStatement(prefix)
		if got := stmt.Params["pattern"]; got != want {
			t.Errorf("pattern for %q = %v, want %q", prefix, got, want)
		}
	}
}

func TestFindTableNames(t *testing.T) {
	ctx := context.Background()

	t.Run("prefix_queries_like", func(t *testing.T) {
		cat := &fakeCatalog{}
		b := newBuilder(cat)

		names, err := b.FindTableNames(ctx, "craft_")
		if err != nil {
			t.Fatal(err)
		}
		if len(names) != 1 || names[0] != "craft_entries" {
			t.Errorf("names = %v", names)
		}
		if cat.lastQuery != b.TablesLikeStatement("craft_").SQL {
			t.Errorf("query = %s", cat.lastQuery)
		}
		if cat.lastParams["pattern"] != `craft\_%` {
			t.Errorf("params = %v", cat.lastParams)
		}
	})

	t.Run("empty_prefix_lists_all", func(t *testing.T) {
		cat := &fakeCatalog{tables: map[string][]string{"a": nil}}
		b := newBuilder(cat)

		names, err := b.FindTableNames(ctx, "")
		if err != nil {
			t.Fatal(err)
		}
		if len(names) != 1 || names[0] != "a" || cat.lastQuery != "" {
			t.Errorf("names = %v, query = %q", names, cat.lastQuery)
		}
	})

	t.Run("lookup_error", func(t *testing.T) {
		boom := errors.New("boom")
		b := newBuilder(&fakeCatalog{err: boom})

		if _, err := b.FindTableNames(ctx, "x"); !errors.Is(err, boom) {
			t.Errorf("expected wrapped boom, got %v", err)
		}
	})
}

func TestListTablesStatement(t *testing.T) {
	b := newBuilder(nil)
	d := &dialect.MysqlDialect{}

	all := b.ListTablesStatement("")
	if all.SQL != d.TablesQuery() || len(all.Params) != 0 {
		t.Errorf("empty prefix: %s", all)
	}

	like := b.ListTablesStatement("craft_")
	if like.SQL != d.TablesLikeQuery("pattern") || like.Params["pattern"] != `craft\_%` {
		t.Errorf("prefix: %s", like)
	}
}
