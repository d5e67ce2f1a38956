package dialect_test

import (
	"errors"
	"strings"
	"testing"

	"db-ddl/internal/dialect"
)

func TestQuoteIdentifier(t *testing.T) {
	d := &dialect.MysqlDialect{}

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "users", "`users`", false},
		{"with_space", "order items", "`order items`", false},
		{"embedded_backtick", "we`ird", "`we``ird`", false},
		{"single_backtick", "`", "````", false},
		{"empty", "", "", true},
		{"already_quoted", "`users`", "", true},
		{"too_long", strings.Repeat("a", dialect.MaxIdentifierLength+1), "", true},
		{"max_length", strings.Repeat("a", dialect.MaxIdentifierLength), "`" + strings.Repeat("a", dialect.MaxIdentifierLength) + "`", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.QuoteIdentifier(tt.in)
			if tt.wantErr {
				if !errors.Is(err, dialect.ErrInvalidIdentifier) {
					t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got != tt.want {
				t.Errorf("QuoteIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuoteIdentifier_RequotingIsRejected(t *testing.T) {
	d := &dialect.MysqlDialect{}

	once, err := d.QuoteIdentifier("users")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := d.QuoteIdentifier(once); !errors.Is(err, dialect.ErrInvalidIdentifier) {
		t.Errorf("quoting %s again should fail, got %v", once, err)
	}
}

func TestQuoteTableName(t *testing.T) {
	d := &dialect.MysqlDialect{}

	got, err := d.QuoteTableName("shop.orders")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "`shop`.`orders`" {
		t.Errorf("got %s", got)
	}

	for _, bad := range []string{"", "a.b.c", "shop.", ".orders"} {
		if _, err := d.QuoteTableName(bad); !errors.Is(err, dialect.ErrInvalidIdentifier) {
			t.Errorf("QuoteTableName(%q): expected ErrInvalidIdentifier, got %v", bad, err)
		}
	}
}

func TestQuoteDatabaseName_MatchesIdentifierQuoting(t *testing.T) {
	d := &dialect.MysqlDialect{}

	db, err := d.QuoteDatabaseName("craft")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	col, _ := d.QuoteColumnName("craft")
	if db != col || db != "`craft`" {
		t.Errorf("database %s, column %s", db, col)
	}
}

func TestTablesLikeQuery_UsesNamedPlaceholder(t *testing.T) {
	d := &dialect.MysqlDialect{}
	q := d.TablesLikeQuery("pattern")
	if !strings.Contains(q, "LIKE :pattern") {
		t.Errorf("query %q does not bind :pattern", q)
	}
}

func TestGetDialect(t *testing.T) {
	for _, drv := range []string{"mysql", "MariaDB", "tidb", ""} {
		d, err := dialect.GetDialect(drv)
		if err != nil {
			t.Fatalf("GetDialect(%q): %v", drv, err)
		}
		if _, ok := d.(*dialect.MysqlDialect); !ok {
			t.Errorf("GetDialect(%q) = %T", drv, d)
		}
	}

	if _, err := dialect.GetDialect("postgres"); !errors.Is(err, dialect.ErrUnsupportedDriver) {
		t.Errorf("expected ErrUnsupportedDriver, got %v", err)
	}
}
