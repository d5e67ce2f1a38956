package dialect

import (
	"regexp"
	"strings"
)

// TypeMap maps abstract column type names to the dialect's literal type keywords.
type TypeMap map[string]string

var (
	sizedType  = regexp.MustCompile(`^(\w+)\((.+?)\)(.*)$`)
	qualified  = regexp.MustCompile(`^(\w+)\s+`)
	sizeSuffix = regexp.MustCompile(`\(.+\)`)
)

// DefaultTypeMap returns a fresh copy of the MySQL abstract type table.
func DefaultTypeMap() TypeMap {
	return TypeMap{
		"pk":         "int(11) NOT NULL AUTO_INCREMENT PRIMARY KEY",
		"bigpk":      "bigint(20) NOT NULL AUTO_INCREMENT PRIMARY KEY",
		"string":     "varchar(255)",
		"text":       "text",
		"mediumtext": "mediumtext",
		"smallint":   "smallint(6)",
		"integer":    "int(11)",
		"bigint":     "bigint(20)",
		"float":      "float",
		"double":     "double",
		"decimal":    "decimal(10,0)",
		"datetime":   "datetime",
		"timestamp":  "timestamp",
		"time":       "time",
		"date":       "date",
		"binary":     "blob",
		"boolean":    "tinyint(1)",
		"money":      "decimal(19,4)",
	}
}

// Clone returns an independent copy so later writes to m do not leak into it.
func (m TypeMap) Clone() TypeMap {
	out := make(TypeMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Resolve translates a type token into its literal form.
//
//	"string"          -> "varchar(255)"
//	"string(64)"      -> "varchar(64)"
//	"bigint unsigned" -> "bigint(20) unsigned"
//
// Tokens whose leading word is not mapped pass through unchanged.
func (m TypeMap) Resolve(token string) string {
	if t, ok := m[token]; ok {
		return t
	}

	if sub := sizedType.FindStringSubmatch(token); sub != nil {
		if t, ok := m[sub[1]]; ok {
			args := "(" + sub[2] + ")"
			if sizeSuffix.MatchString(t) {
				t = sizeSuffix.ReplaceAllLiteralString(t, args)
			} else {
				t += args
			}
			return t + sub[3]
		}
		return token
	}

	if sub := qualified.FindStringSubmatch(token); sub != nil {
		if t, ok := m[sub[1]]; ok {
			return t + " " + strings.TrimLeft(token[len(sub[1]):], " \t")
		}
	}

	return token
}
