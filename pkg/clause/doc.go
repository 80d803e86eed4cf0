// Package clause defines the fragments a statement is assembled from.
//
// A Clause is one of a closed set of variants:
//
//   - Text and Keyword, rendered verbatim (keywords also open a section for pruning)
//   - Separator, the comma between select columns
//   - Column and Table, logical names resolved and quoted at render time
//   - Operator (AND, OR, NOT) and Bracket
//   - Expression, a free-form condition with a validity flag
//   - ColumnExpression, a comparison on a column that owns bound parameters
//   - the immutable True and False and the always pruned Null
//
// Clauses never render themselves at append time. The Context supplies the dialect,
// the logical database, routing hints, the sharding catalog and the parameter store
// when the statement is finally built, so the order in which a builder is configured
// does not matter.
//
// Expressions move through a small state machine: pending, then valid or invalid
// through When or Nullable. Binding validity twice is a usage error. Pending
// expressions render as valid.
//
//	e := clause.Equal("user_id")
//	_ = e.Set(params.TypeInteger, nil)
//	_ = e.Nullable() // invalid, pruned before rendering
package clause
