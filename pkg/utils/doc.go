// Package utils provides small helpers shared by the dalsql packages.
//
// # Identifier Utilities (identifier.go)
//
// Dialects quote identifiers with different pairs: backticks for MySQL and ClickHouse,
// brackets for SQL Server, double quotes for Postgres and SQLite. QuoteIdentifier takes
// the pair explicitly and handles qualified names part by part:
//
//	utils.QuoteIdentifier("sales.orders", "[", "]")
//	// Result: [sales].[orders]
//
//	utils.QuoteIdentifier("`orders`", "`", "`")
//	// Result: `orders` (already quoted, not double-quoted)
//
// # Value Utilities (validation.go)
//
// IsNil detects typed nils hidden in an interface, which is what "the value is null"
// means for nullable expressions. ToSlice flattens list values bound to IN expressions.
// IsIntegerValue recognises routing values written as text, so "42" and 42 select the
// same shard:
//
//	if utils.IsIntegerValue(text) {
//		n, _ := strconv.ParseInt(text, 10, 64)
//		// route by n
//	}
package utils
