// Package params holds the ordered parameter store that backs statement assembly.
//
// Every column expression appended to a builder records exactly one entry (two for
// BETWEEN) at append time. Entries keep their original 1-based index even when the
// owning expression is later pruned; Build returns only the valid ones, re-indexed
// contiguously from 1, so the placeholders left in the rendered SQL and the bound
// values always line up.
//
// Example:
//
//	store := params.New()
//	store.Add("name", params.TypeVarchar, nil).SetValid(false)
//	store.Add("id", params.TypeInteger, 5)
//
//	built := store.Build() // [{Index: 1, Name: "id", Value: 5}]
//
// IN expressions own a single list-valued entry. How that entry reaches the driver is
// governed by InMode: InList keeps one placeholder bound to the list, while InExpanded
// renders one placeholder per element and Expand flattens the list into individual
// entries.
package params
