package dialect

// Dialect abstracts the engine-specific parts of statement generation.
type Dialect interface {
	// Identifier quoting
	QuoteIdentifier(name string) (string, error)
	QuoteTableName(name string) (string, error)
	QuoteColumnName(name string) (string, error)
	QuoteDatabaseName(name string) (string, error)

	// Placeholder returns the named parameter marker for name (":name").
	Placeholder(name string) string

	// Metadata Queries (Schema Introspection)
	TablesQuery() string
	TablesLikeQuery(param string) string
	ColumnsQuery() string

	// Helpers
	DefaultEngine() string
	DefaultTypes() TypeMap
}
