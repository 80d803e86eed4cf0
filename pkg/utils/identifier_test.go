package utils_test

import (
	"testing"

	"github.com/pseudomuto/dalsql/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		open, close string
		expected    string
	}{
		{name: "simple identifier", input: "table", open: "`", close: "`", expected: "`table`"},
		{name: "qualified identifier with two parts", input: "database.table", open: "`", close: "`", expected: "`database`.`table`"},
		{name: "qualified identifier with three parts", input: "db.schema.table", open: "[", close: "]", expected: "[db].[schema].[table]"},
		{name: "already quoted simple identifier", input: "[table]", open: "[", close: "]", expected: "[table]"},
		{name: "partially quoted qualified identifier", input: "[database].table", open: "[", close: "]", expected: "[database].[table]"},
		{name: "empty string", input: "", open: "[", close: "]", expected: ""},
		{name: "identifier with spaces", input: "my table", open: `"`, close: `"`, expected: `"my table"`},
		{name: "identifier with dots in quotes", input: "`db.table`", open: "`", close: "`", expected: "`db.table`"},
		{name: "numeric identifier", input: "123", open: "[", close: "]", expected: "[123]"},
		{name: "embedded backtick", input: "a`b", open: "`", close: "`", expected: "`a``b`"},
		{name: "embedded closing bracket", input: "a]b", open: "[", close: "]", expected: "[a]]b]"},
		{name: "embedded double quote in qualified name", input: `db.my"table`, open: `"`, close: `"`, expected: `"db"."my""table"`},
		{name: "already escaped identifier", input: "`a``b`", open: "`", close: "`", expected: "`a``b`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, utils.QuoteIdentifier(tt.input, tt.open, tt.close))
		})
	}
}

func TestIsQuoted(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "quoted identifier", input: "[table]", expected: true},
		{name: "not quoted", input: "table", expected: false},
		{name: "qualified quoted identifier", input: "[database].[table]", expected: false},
		{name: "empty string", input: "", expected: false},
		{name: "single bracket", input: "[", expected: false},
		{name: "mismatched brackets", input: "[table", expected: false},
		{name: "just the pair", input: "[]", expected: true},
		{name: "escaped closing bracket", input: "[a]]b]", expected: true},
		{name: "stray closing bracket", input: "[a]b]", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, utils.IsQuoted(tt.input, "[", "]"))
		})
	}
}
