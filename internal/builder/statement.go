package builder

import (
	"fmt"
	"sort"
	"strings"
)

// Statement is SQL text plus the values for its named placeholders.
// Params keys are bare names: the SQL marker ":row0_col1" is bound from Params["row0_col1"].
type Statement struct {
	SQL    string
	Params map[string]any
}

// String renders the statement for logs and dry runs, params sorted by name.
func (s *Statement) String() string {
	if len(s.Params) == 0 {
		return s.SQL
	}

	names := make([]string, 0, len(s.Params))
	for k := range s.Params {
		names = append(names, k)
	}
	sort.Strings(names)

	pairs := make([]string, len(names))
	for i, k := range names {
		pairs[i] = fmt.Sprintf("%s=%#v", k, s.Params[k])
	}
	return s.SQL + " -- " + strings.Join(pairs, ", ")
}
