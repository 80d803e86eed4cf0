package sqlbuilder

import (
	"github.com/pseudomuto/dalsql/pkg/clause"
	"github.com/pseudomuto/dalsql/pkg/sqlerr"
	"github.com/pseudomuto/dalsql/pkg/utils"
)

// Expr is a handle on one appended expression. It keeps pointing at that expression
// while more clauses are appended, so its validity can be bound later:
//
//	b := sqlbuilder.New().Select("id").From("users").Where()
//	deleted := b.AppendExpression("deleted_at IS NULL").Last()
//	b.And().Equal("org_id", params.TypeInteger, orgID)
//	deleted.When(onlyActive)
//
// Every method returns the owning Builder. Failures are recorded on it.
type Expr struct {
	b *Builder
	c clause.Conditional
}

// Last returns a handle on the last appended clause. When that clause is not an
// expression the builder records a usage error and the handle does nothing.
func (b *Builder) Last() *Expr {
	return b.expr("Last")
}

// Nullable binds the expression's validity to v being non-nil.
func (e *Expr) Nullable(v any) *Builder {
	return e.when("Nullable", !utils.IsNil(v))
}

// When binds the expression's validity to cond.
func (e *Expr) When(cond bool) *Builder {
	return e.when("When", cond)
}

// NullableBound makes a column expression valid only when its bound value is
// present. See clause.ColumnExpression.Nullable.
func (e *Expr) NullableBound() *Builder {
	c, ok := e.column("NullableBound")
	if !ok {
		return e.b
	}

	if err := c.Nullable(); err != nil {
		return e.b.fail(err)
	}
	return e.b
}

// Sensitive marks the values bound by a column expression as sensitive.
func (e *Expr) Sensitive() *Builder {
	if c, ok := e.column("Sensitive"); ok {
		c.Sensitive()
	}

	return e.b
}

// Valid reports whether the expression takes part in the statement. An empty handle
// is never valid.
func (e *Expr) Valid() bool {
	return e.c != nil && e.c.Valid()
}

// Clause returns the underlying clause, or nil for an empty handle.
func (e *Expr) Clause() clause.Clause {
	if e.c == nil {
		return nil
	}

	return e.c
}

func (e *Expr) when(op string, cond bool) *Builder {
	if e.c == nil || e.b.err != nil {
		return e.b
	}

	if err := e.c.When(cond); err != nil {
		return e.b.fail(sqlerr.WithOp(err, op))
	}
	return e.b
}

func (e *Expr) column(op string) (*clause.ColumnExpression, bool) {
	if e.c == nil || e.b.err != nil {
		return nil, false
	}

	c, ok := e.c.(*clause.ColumnExpression)
	if !ok {
		e.b.fail(sqlerr.Usage(op, "", "expression is not a column expression"))
		return nil, false
	}

	return c, true
}

func (b *Builder) expr(op string) *Expr {
	h := &Expr{b: b}
	if b.err != nil {
		return h
	}

	c, ok := b.last().(clause.Conditional)
	if !ok {
		b.fail(sqlerr.Usage(op, "", "no trailing expression to modify"))
		return h
	}

	h.c = c
	return h
}
