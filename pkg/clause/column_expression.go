package clause

import (
	"strings"

	"github.com/pseudomuto/dalsql/pkg/consts"
	"github.com/pseudomuto/dalsql/pkg/params"
	"github.com/pseudomuto/dalsql/pkg/sqlerr"
	"github.com/pseudomuto/dalsql/pkg/utils"
)

type columnKind int8

const (
	scalarKind columnKind = iota
	betweenKind
	inKind
	unaryKind
)

// ColumnExpression is a comparison on a column. Once bound with Set (or SetRange for
// BETWEEN) it owns one parameter store entry, two for BETWEEN, recorded when the
// expression is attached to a Context.
type ColumnExpression struct {
	condition

	column    string
	op        string
	kind      columnKind
	typ       params.Type
	value     any
	upper     any
	bound     bool
	sensitive bool

	ctx     *Context
	entries []*params.Parameter
}

func newColumnExpression(column, op string, kind columnKind) *ColumnExpression {
	return &ColumnExpression{column: column, op: op, kind: kind}
}

// Equal returns `column = ?`.
func Equal(column string) *ColumnExpression { return newColumnExpression(column, "=", scalarKind) }

// NotEqual returns `column <> ?`.
func NotEqual(column string) *ColumnExpression { return newColumnExpression(column, "<>", scalarKind) }

// GreaterThan returns `column > ?`.
func GreaterThan(column string) *ColumnExpression {
	return newColumnExpression(column, ">", scalarKind)
}

// GreaterThanEquals returns `column >= ?`.
func GreaterThanEquals(column string) *ColumnExpression {
	return newColumnExpression(column, ">=", scalarKind)
}

// LessThan returns `column < ?`.
func LessThan(column string) *ColumnExpression { return newColumnExpression(column, "<", scalarKind) }

// LessThanEquals returns `column <= ?`.
func LessThanEquals(column string) *ColumnExpression {
	return newColumnExpression(column, "<=", scalarKind)
}

// Like returns `column LIKE ?`.
func Like(column string) *ColumnExpression { return newColumnExpression(column, "LIKE", scalarKind) }

// NotLike returns `column NOT LIKE ?`.
func NotLike(column string) *ColumnExpression {
	return newColumnExpression(column, "NOT LIKE", scalarKind)
}

// Between returns `column BETWEEN ? AND ?`.
func Between(column string) *ColumnExpression {
	return newColumnExpression(column, "BETWEEN", betweenKind)
}

// NotBetween returns `column NOT BETWEEN ? AND ?`.
func NotBetween(column string) *ColumnExpression {
	return newColumnExpression(column, "NOT BETWEEN", betweenKind)
}

// In returns `column IN ( ? )`.
func In(column string) *ColumnExpression { return newColumnExpression(column, "IN", inKind) }

// NotIn returns `column NOT IN ( ? )`.
func NotIn(column string) *ColumnExpression { return newColumnExpression(column, "NOT IN", inKind) }

// IsNull returns `column IS NULL`. It takes no value.
func IsNull(column string) *ColumnExpression {
	return newColumnExpression(column, "IS NULL", unaryKind)
}

// IsNotNull returns `column IS NOT NULL`. It takes no value.
func IsNotNull(column string) *ColumnExpression {
	return newColumnExpression(column, "IS NOT NULL", unaryKind)
}

// Column returns the column the expression compares.
func (e *ColumnExpression) Column() string { return e.column }

// Value returns the bound value. For IN expressions it is the []any list.
func (e *ColumnExpression) Value() any { return e.value }

// Upper returns the upper bound of a BETWEEN expression.
func (e *ColumnExpression) Upper() any { return e.upper }

// Bound reports whether a value has been set.
func (e *ColumnExpression) Bound() bool { return e.bound }

// IsIn reports whether the expression is an IN or NOT IN list.
func (e *ColumnExpression) IsIn() bool { return e.kind == inKind }

// IsRange reports whether the expression is a BETWEEN or NOT BETWEEN range.
func (e *ColumnExpression) IsRange() bool { return e.kind == betweenKind }

// Entries returns the parameter store entries owned by the expression.
func (e *ColumnExpression) Entries() []*params.Parameter { return e.entries }

// Set binds a value. For IN expressions v must be a slice (or nil).
func (e *ColumnExpression) Set(typ params.Type, v any) error {
	switch e.kind {
	case betweenKind:
		return sqlerr.Usage("Set", e.column, "%s takes a lower and upper value", e.op)
	case unaryKind:
		return sqlerr.Usage("Set", e.column, "%s takes no value", e.op)
	case inKind:
		if !utils.IsNil(v) {
			list, ok := utils.ToSlice(v)
			if !ok {
				return sqlerr.Usage("Set", e.column, "%s requires a list value, got %T", e.op, v)
			}
			v = list
		} else {
			v = []any(nil)
		}
	}

	return e.set(typ, v, nil)
}

// SetRange binds the bounds of a BETWEEN expression.
func (e *ColumnExpression) SetRange(typ params.Type, lower, upper any) error {
	if e.kind != betweenKind {
		return sqlerr.Usage("SetRange", e.column, "%s does not take a range", e.op)
	}

	return e.set(typ, lower, upper)
}

func (e *ColumnExpression) set(typ params.Type, v, upper any) error {
	if e.bound {
		return sqlerr.Usage("Set", e.column, "value already bound")
	}

	e.typ, e.value, e.upper, e.bound = typ, v, upper, true
	if e.ctx != nil {
		e.record()
	}
	return nil
}

// Sensitive marks the bound values as sensitive so they are redacted in logs.
func (e *ColumnExpression) Sensitive() *ColumnExpression {
	e.sensitive = true
	for _, p := range e.entries {
		p.Sensitive = true
	}
	return e
}

// When binds validity to cond and mirrors it onto the owned parameters.
func (e *ColumnExpression) When(cond bool) error {
	if err := e.bind("When", e.column, cond); err != nil {
		return err
	}

	e.syncEntries()
	return nil
}

// Nullable makes the expression valid only when its bound value is present.
//
//   - scalars are invalid when the value is nil
//   - BETWEEN is invalid when either bound is nil
//   - IN drops nil elements and is invalid when nothing remains
//
// Calling it before a value is bound is a usage error.
func (e *ColumnExpression) Nullable() error {
	switch {
	case e.kind == unaryKind:
		return sqlerr.Usage("Nullable", e.column, "%s has no value to check", e.op)
	case !e.bound:
		return sqlerr.Usage("Nullable", e.column, "no value bound")
	}

	var (
		ok   bool
		kept []any
	)
	switch e.kind {
	case betweenKind:
		ok = !utils.IsNil(e.value) && !utils.IsNil(e.upper)
	case inKind:
		list, _ := e.value.([]any)
		kept = make([]any, 0, len(list))
		for _, v := range list {
			if !utils.IsNil(v) {
				kept = append(kept, v)
			}
		}
		ok = len(kept) > 0
	default:
		ok = !utils.IsNil(e.value)
	}

	if err := e.bind("Nullable", e.column, ok); err != nil {
		return err
	}

	if ok && e.kind == inKind {
		e.value = kept
		for _, p := range e.entries {
			p.Value = kept
		}
	}

	e.syncEntries()
	return nil
}

// Render implements Clause.
func (e *ColumnExpression) Render(ctx *Context) (string, error) {
	if !e.Valid() {
		return "", sqlerr.Internal("Render", e.column, "invalid expression must be pruned before rendering")
	}

	col := wrapField(ctx.Dialect, e.column)
	switch e.kind {
	case betweenKind:
		return col + " " + e.op + " " + consts.PlaceHolder + " AND " + consts.PlaceHolder, nil
	case inKind:
		if ctx.InMode == params.InExpanded && e.bound {
			n, _ := e.value.([]any)
			marks := make([]string, len(n))
			for i := range marks {
				marks[i] = consts.PlaceHolder
			}
			return col + " " + e.op + " (" + strings.Join(marks, ", ") + ")", nil
		}
		return col + " " + e.op + " ( " + consts.PlaceHolder + " )", nil
	case unaryKind:
		return col + " " + e.op, nil
	default:
		return col + " " + e.op + " " + consts.PlaceHolder, nil
	}
}

func (*ColumnExpression) clause() {}

func (e *ColumnExpression) attach(ctx *Context) error {
	if e.ctx != nil {
		return sqlerr.Usage("Append", e.column, "expression already appended")
	}

	e.ctx = ctx
	if e.bound {
		e.record()
	}
	return nil
}

func (e *ColumnExpression) record() {
	store := e.ctx.Params
	switch e.kind {
	case betweenKind:
		e.entries = append(e.entries, store.Add(e.column, e.typ, e.value), store.Add(e.column, e.typ, e.upper))
	case inKind:
		list, _ := e.value.([]any)
		e.entries = append(e.entries, store.AddColumnIn(e.column, e.typ, list))
	default:
		e.entries = append(e.entries, store.Add(e.column, e.typ, e.value))
	}

	for _, p := range e.entries {
		p.Sensitive = e.sensitive
	}
	e.syncEntries()
}

func (e *ColumnExpression) syncEntries() {
	for _, p := range e.entries {
		p.SetValid(e.Valid())
	}
}
