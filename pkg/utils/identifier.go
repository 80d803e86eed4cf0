package utils

import "strings"

// QuoteIdentifier wraps an identifier in the given quote pair, handling qualified names.
// It properly handles database.table.column style identifiers by quoting each part.
//
// Examples (open "[", close "]"):
//   - "table" -> "[table]"
//   - "database.table" -> "[database].[table]"
//   - "db.schema.table" -> "[db].[schema].[table]"
//   - "[table]" -> "[table]" (already quoted, not double-quoted)
//   - "a]b" -> "[a]]b]" (closing quote doubled)
//   - "" -> ""
//
// This function backs every dialect's identifier quoting, so rendered column and table
// names are formatted the same way regardless of where they were appended.
func QuoteIdentifier(name, open, close string) string {
	if name == "" {
		return ""
	}

	// A single quoted identifier may legitimately contain dots
	if IsQuoted(name, open, close) {
		return name
	}

	parts := strings.Split(name, ".")
	for i, part := range parts {
		if IsQuoted(part, open, close) {
			continue
		}
		parts[i] = open + strings.ReplaceAll(part, close, close+close) + close
	}
	return strings.Join(parts, ".")
}

// IsQuoted checks if a string is a single identifier wrapped in the given quote pair.
// Inside the quotes the closing character may only appear doubled.
//
// Examples (backticks):
//   - "`table`" -> true
//   - "`a``b`" -> true
//   - "table" -> false
//   - "`db`.`table`" -> false (qualified name, not a single quoted identifier)
//   - "" -> false
func IsQuoted(s, open, close string) bool {
	if len(s) < len(open)+len(close) || !strings.HasPrefix(s, open) || !strings.HasSuffix(s, close) {
		return false
	}

	inner := s[len(open) : len(s)-len(close)]
	return !strings.Contains(strings.ReplaceAll(inner, close+close, ""), close)
}
