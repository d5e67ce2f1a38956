package schema_test

import (
	"context"
	"errors"
	"testing"

	"db-ddl/internal/dialect"
	"db-ddl/internal/schema"
	"db-ddl/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

var columnHeaders = []string{
	"COLUMN_NAME", "DATA_TYPE", "COLUMN_TYPE", "CHARACTER_MAXIMUM_LENGTH",
	"IS_NULLABLE", "COLUMN_KEY", "EXTRA", "COLUMN_COMMENT",
}

func newInspector(t *testing.T) (*schema.Inspector, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	st := store.New(sqlx.NewDb(db, "mysql"))
	return schema.NewInspector(st, &dialect.MysqlDialect{}, nil), mock
}

func TestDescribeTable_PreservesOrdinalOrder(t *testing.T) {
	in, mock := newInspector(t)
	d := &dialect.MysqlDialect{}

	mock.ExpectQuery(d.ColumnsQuery()).
		WithArgs(nil, "users").
		WillReturnRows(sqlmock.NewRows(columnHeaders).
			AddRow("id", "int", "int unsigned", nil, "NO", "PRI", "auto_increment", "").
			AddRow("email", "varchar", "varchar(120)", 120, "NO", "UNI", "", "login").
			AddRow("bio", "mediumtext", "mediumtext", 16777215, "YES", "", "", ""))

	tbl, err := in.DescribeTable(context.Background(), "users")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	names := tbl.ColumnNames()
	if len(names) != 3 || names[0] != "id" || names[1] != "email" || names[2] != "bio" {
		t.Fatalf("column order = %v", names)
	}

	id := tbl.Column("id")
	if !id.IsPK || !id.IsAutoInc || id.IsNullable {
		t.Errorf("id flags = %+v", id)
	}
	email := tbl.Column("email")
	if email.Length != 120 || email.ColumnType != "varchar(120)" || email.Comment != "login" {
		t.Errorf("email = %+v", email)
	}
	if !tbl.Column("bio").IsNullable {
		t.Errorf("bio should be nullable")
	}
}

func TestDescribeTable_CachesUntilInvalidated(t *testing.T) {
	in, mock := newInspector(t)
	d := &dialect.MysqlDialect{}

	for i := 0; i < 2; i++ {
		mock.ExpectQuery(d.ColumnsQuery()).
			WithArgs(nil, "users").
			WillReturnRows(sqlmock.NewRows(columnHeaders).
				AddRow("id", "int", "int", nil, "NO", "PRI", "", ""))
	}

	ctx := context.Background()
	if _, err := in.DescribeTable(ctx, "users"); err != nil {
		t.Fatal(err)
	}
	if _, err := in.DescribeTable(ctx, "users"); err != nil {
		t.Fatal(err)
	}
	// second call was served from cache; one expectation left
	if err := mock.ExpectationsWereMet(); err == nil {
		t.Fatal("expected the second query to remain unconsumed")
	}

	in.Invalidate("users")
	if _, err := in.DescribeTable(ctx, "users"); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDescribeTable_NotFound(t *testing.T) {
	in, mock := newInspector(t)
	d := &dialect.MysqlDialect{}

	mock.ExpectQuery(d.ColumnsQuery()).
		WithArgs(nil, "ghost").
		WillReturnRows(sqlmock.NewRows(columnHeaders))

	_, err := in.DescribeTable(context.Background(), "ghost")
	if !errors.Is(err, schema.ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
}

func TestDescribeTable_QualifiedName(t *testing.T) {
	in, mock := newInspector(t)
	d := &dialect.MysqlDialect{}

	mock.ExpectQuery(d.ColumnsQuery()).
		WithArgs("shop", "orders").
		WillReturnRows(sqlmock.NewRows(columnHeaders).
			AddRow("id", "bigint", "bigint", nil, "NO", "PRI", "auto_increment", ""))

	tbl, err := in.DescribeTable(context.Background(), "shop.orders")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if tbl.Name != "shop.orders" || tbl.Column("id") == nil {
		t.Errorf("descriptor = %+v", tbl)
	}

	// served from cache under the qualified name
	if _, err := in.DescribeTable(context.Background(), "shop.orders"); err != nil {
		t.Fatalf("cached lookup: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestTableNames(t *testing.T) {
	in, mock := newInspector(t)
	d := &dialect.MysqlDialect{}

	mock.ExpectQuery(d.TablesQuery()).
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME"}).AddRow("orders").AddRow("users"))

	names, err := in.TableNames(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(names) != 2 || names[0] != "orders" {
		t.Errorf("got %v", names)
	}
}
