package clause

import (
	"github.com/pseudomuto/dalsql/pkg/sqlerr"
	"github.com/pseudomuto/dalsql/pkg/utils"
)

type validity int8

const (
	pending validity = iota
	valid
	invalid
)

type condition struct {
	state validity
}

func (c *condition) bind(op, field string, ok bool) error {
	if c.state != pending {
		return sqlerr.Usage(op, field, "expression validity already bound")
	}

	c.state = invalid
	if ok {
		c.state = valid
	}
	return nil
}

func (c *condition) Valid() bool   { return c.state != invalid }
func (c *condition) Pending() bool { return c.state == pending }

// Expression is a free-form condition such as "count(*) > 1".
type Expression struct {
	condition
	template string
}

// Expr returns a pending expression rendering template.
func Expr(template string) *Expression {
	return &Expression{template: template}
}

// ExprWhen returns an expression for template when cond holds and Null otherwise.
func ExprWhen(cond bool, template string) Clause {
	if cond {
		return Expr(template)
	}

	return Null
}

// ExprElse returns an expression for template when cond holds and for elseTemplate
// otherwise.
func ExprElse(cond bool, template, elseTemplate string) Clause {
	if cond {
		return Expr(template)
	}

	return Expr(elseTemplate)
}

// When binds validity to cond.
func (e *Expression) When(cond bool) error {
	return e.bind("When", e.template, cond)
}

// Nullable makes the expression valid only when v is not nil.
func (e *Expression) Nullable(v any) error {
	return e.bind("Nullable", e.template, !utils.IsNil(v))
}

// Render implements Clause.
func (e *Expression) Render(*Context) (string, error) {
	if !e.Valid() {
		return "", sqlerr.Internal("Render", e.template, "invalid expression must be pruned before rendering")
	}

	return e.template, nil
}

func (*Expression) clause() {}

// immutable expressions ignore validity changes and are never pruned.
type immutable string

var (
	// True always holds. IncludeAll uses it to start a WHERE clause.
	True Conditional = immutable("TRUE")

	// False never holds. ExcludeAll uses it to start a WHERE clause.
	False Conditional = immutable("FALSE")
)

func (i immutable) Render(*Context) (string, error) { return string(i), nil }
func (immutable) When(bool) error                   { return nil }
func (immutable) Valid() bool                       { return true }
func (immutable) clause()                           {}

// null is a placeholder that is always pruned.
type null struct{}

// Null is always pruned together with the operators in front of it.
var Null Conditional = null{}

func (null) Render(*Context) (string, error) { return "", nil }
func (null) When(bool) error                 { return nil }
func (null) Valid() bool                     { return false }
func (null) clause()                         {}
