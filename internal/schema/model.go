package schema

// TableDescriptor is a read-only snapshot of a table's columns in their defined order.
type TableDescriptor struct {
	Name    string
	Columns []*Column
}

type Column struct {
	Name       string
	DataType   string // e.g. "varchar"
	ColumnType string // e.g. "varchar(64)", "int unsigned"
	Length     int
	IsNullable bool
	IsPK       bool
	IsAutoInc  bool
	Comment    string
}

// ColumnNames returns the column names, left to right.
func (t *TableDescriptor) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column, or nil.
func (t *TableDescriptor) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}
