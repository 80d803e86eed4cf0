package clause

import (
	"github.com/pseudomuto/dalsql/pkg/meltdown"
)

// Clause is a single fragment of a statement.
type Clause interface {
	// Render returns the SQL text for the clause. It is only called on clauses that
	// survived pruning.
	Render(ctx *Context) (string, error)

	clause()
}

// Conditional is a clause whose inclusion depends on a runtime condition.
type Conditional interface {
	Clause

	// When binds validity to cond. Binding twice is a usage error.
	When(cond bool) error

	// Valid reports whether the clause takes part in the statement.
	Valid() bool
}

// Text is rendered verbatim.
type Text string

// Keyword is rendered verbatim and opens a section: a connective directly after it
// is pruned.
type Keyword string

const (
	Select  Keyword = "SELECT"
	From    Keyword = "FROM"
	Where   Keyword = "WHERE"
	OrderBy Keyword = "ORDER BY"
	GroupBy Keyword = "GROUP BY"
	Having  Keyword = "HAVING"
	On      Keyword = "ON"
	Asc     Keyword = "ASC"
	Desc    Keyword = "DESC"
)

// Separator is a list separator.
type Separator string

// Comma separates columns.
const Comma Separator = ","

// Operator is a logical connective.
type Operator string

const (
	And Operator = "AND"
	Or  Operator = "OR"
	Not Operator = "NOT"
)

// Bracket opens or closes a group.
type Bracket string

const (
	LeftBracket  Bracket = "("
	RightBracket Bracket = ")"
)

func (t Text) Render(*Context) (string, error)      { return string(t), nil }
func (k Keyword) Render(*Context) (string, error)   { return string(k), nil }
func (s Separator) Render(*Context) (string, error) { return string(s), nil }
func (o Operator) Render(*Context) (string, error)  { return string(o), nil }
func (b Bracket) Render(*Context) (string, error)   { return string(b), nil }

func (Text) clause()      {}
func (Keyword) clause()   {}
func (Separator) clause() {}
func (Operator) clause()  {}
func (Bracket) clause()   {}

// Group wraps clauses in a pair of brackets.
func Group(clauses ...Clause) []Clause {
	out := make([]Clause, 0, len(clauses)+2)
	out = append(out, LeftBracket)
	out = append(out, clauses...)
	return append(out, RightBracket)
}

// Classify returns the pruning class of c.
func Classify(c Clause) meltdown.Class {
	switch v := c.(type) {
	case Keyword:
		return meltdown.Keyword
	case Operator:
		if v == Not {
			return meltdown.Not
		}
		return meltdown.Connective
	case Bracket:
		if v == LeftBracket {
			return meltdown.LeftBracket
		}
		return meltdown.RightBracket
	case Conditional:
		if !v.Valid() {
			return meltdown.Invalid
		}
		return meltdown.Operand
	default:
		return meltdown.Operand
	}
}

// IsOperator reports whether c is AND, OR or NOT.
func IsOperator(c Clause) bool {
	_, ok := c.(Operator)
	return ok
}
