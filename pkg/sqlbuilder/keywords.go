package sqlbuilder

import (
	"github.com/pseudomuto/dalsql/pkg/clause"
)

// IncludeAll starts a condition list that matches every row when all of its
// expressions are pruned: TRUE AND ...
//
// Example:
//
//	b.Where(sqlbuilder.IncludeAll()...).EqualNullable("id", params.TypeInteger, nil)
//	// WHERE TRUE
func IncludeAll() []clause.Clause {
	return []clause.Clause{clause.True, clause.And}
}

// ExcludeAll starts a condition list that matches no row when all of its
// expressions are pruned: FALSE OR ...
func ExcludeAll() []clause.Clause {
	return []clause.Clause{clause.False, clause.Or}
}

// Select appends SELECT followed by the comma separated columns.
//
// Example:
//
//	b.Select("id", "name") // SELECT `id`, `name`
func (b *Builder) Select(columns ...string) *Builder {
	cs := make([]clause.Clause, len(columns))
	for i, col := range columns {
		cs[i] = clause.Col(col)
	}

	return b.SelectClauses(cs...)
}

// SelectClauses appends SELECT followed by the comma separated clauses.
//
// Example:
//
//	b.SelectClauses(clause.Col("id"), clause.Text("count(*)"), clause.Col("name").As("n"))
//	// SELECT `id`, count(*), `name` AS n
func (b *Builder) SelectClauses(columns ...clause.Clause) *Builder {
	b.Append(clause.Select)
	for i, c := range columns {
		if i > 0 {
			b.Append(clause.Comma)
		}
		b.Append(c)
	}

	return b
}

// SelectAll appends SELECT *.
func (b *Builder) SelectAll() *Builder {
	return b.Append(clause.Select, clause.Text("*"))
}

// From appends FROM, the logical table and the dialect's post-table hint.
//
// Example:
//
//	b.From("noShard") // FROM [noShard] WITH (NOLOCK) on SQL Server
func (b *Builder) From(table string) *Builder {
	return b.FromTable(clause.Tbl(table))
}

// FromTable appends FROM, the table and the dialect's post-table hint.
//
// Example:
//
//	b.FromTable(clause.Tbl("Orders").InShard("1").As("o")) // FROM [Orders_1] AS o WITH (NOLOCK)
func (b *Builder) FromTable(t *clause.Table) *Builder {
	return b.Append(clause.From, t, clause.PostTableHint)
}

// Where appends WHERE followed by the given clauses.
func (b *Builder) Where(clauses ...clause.Clause) *Builder {
	return b.Append(clause.Where).Append(clauses...)
}

// OrderBy appends ORDER BY column ASC|DESC.
func (b *Builder) OrderBy(column string, ascending bool) *Builder {
	return b.Append(clause.OrderBy, clause.Col(column)).
		AppendWhenElse(ascending, clause.Asc, clause.Desc)
}

// GroupBy appends GROUP BY column.
func (b *Builder) GroupBy(column string) *Builder {
	return b.GroupByClause(clause.Col(column))
}

// GroupByClause appends GROUP BY followed by c.
func (b *Builder) GroupByClause(c clause.Clause) *Builder {
	return b.Append(clause.GroupBy, c)
}

// Having appends HAVING followed by the condition text.
func (b *Builder) Having(condition string) *Builder {
	return b.Append(clause.Having, clause.Text(condition))
}

// LeftBracket appends "(".
func (b *Builder) LeftBracket() *Builder { return b.Append(clause.LeftBracket) }

// RightBracket appends ")".
func (b *Builder) RightBracket() *Builder { return b.Append(clause.RightBracket) }

// Bracket appends the clauses wrapped in brackets.
func (b *Builder) Bracket(clauses ...clause.Clause) *Builder {
	return b.Append(clause.Group(clauses...)...)
}

// And appends AND.
func (b *Builder) And() *Builder { return b.Append(clause.And) }

// Or appends OR.
func (b *Builder) Or() *Builder { return b.Append(clause.Or) }

// Not appends NOT.
func (b *Builder) Not() *Builder { return b.Append(clause.Not) }

// AndAll appends the clauses joined by AND.
func (b *Builder) AndAll(clauses ...clause.Clause) *Builder {
	return b.join(clause.And, clauses)
}

// OrAll appends the clauses joined by OR.
func (b *Builder) OrAll(clauses ...clause.Clause) *Builder {
	return b.join(clause.Or, clauses)
}

func (b *Builder) join(op clause.Operator, clauses []clause.Clause) *Builder {
	for i, c := range clauses {
		if i > 0 {
			b.Append(op)
		}
		b.Append(c)
	}

	return b
}
