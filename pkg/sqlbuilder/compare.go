package sqlbuilder

import (
	"github.com/pseudomuto/dalsql/pkg/clause"
	"github.com/pseudomuto/dalsql/pkg/params"
	"github.com/pseudomuto/dalsql/pkg/sqlerr"
	"github.com/pseudomuto/dalsql/pkg/utils"
)

// Comparisons come in three forms:
//
//   - Equal binds the value unconditionally, nil included
//   - EqualRequired fails with a usage error naming the column when the value is nil
//   - EqualNullable is pruned, together with its connective, when the value is nil
//
// IN lists treat a nil element like a nil value: Required rejects it and Nullable
// drops it, pruning the expression when nothing remains. BETWEEN needs both bounds.

type binding int8

const (
	bindAlways binding = iota
	bindRequired
	bindNullable
)

func (b *Builder) compare(op string, e *clause.ColumnExpression, typ params.Type, v any, mode binding) *Builder {
	if b.err != nil {
		return b
	}

	if mode == bindRequired {
		if err := requireValue(op, e, v); err != nil {
			return b.fail(err)
		}
	}

	if err := e.Set(typ, v); err != nil {
		return b.fail(err)
	}

	return b.attach(e, mode)
}

func (b *Builder) compareRange(op string, e *clause.ColumnExpression, typ params.Type, lower, upper any, mode binding) *Builder {
	if b.err != nil {
		return b
	}

	if mode == bindRequired && (utils.IsNil(lower) || utils.IsNil(upper)) {
		return b.fail(sqlerr.Usage(op, e.Column(), "lower and upper values can not be nil"))
	}

	if err := e.SetRange(typ, lower, upper); err != nil {
		return b.fail(err)
	}

	return b.attach(e, mode)
}

func (b *Builder) attach(e *clause.ColumnExpression, mode binding) *Builder {
	b.Append(e)
	if b.err == nil && mode == bindNullable {
		if err := e.Nullable(); err != nil {
			return b.fail(err)
		}
	}

	return b
}

func requireValue(op string, e *clause.ColumnExpression, v any) error {
	if utils.IsNil(v) {
		return sqlerr.Usage(op, e.Column(), "value can not be nil")
	}

	if !e.IsIn() {
		return nil
	}

	list, ok := utils.ToSlice(v)
	if !ok {
		return sqlerr.Usage(op, e.Column(), "value must be a list, got %T", v)
	}
	if len(list) == 0 {
		return sqlerr.Usage(op, e.Column(), "value can not be an empty list")
	}
	for i, item := range list {
		if utils.IsNil(item) {
			return sqlerr.Usage(op, e.Column(), "list element %d can not be nil", i)
		}
	}

	return nil
}

// Equal appends `column = ?` bound to v.
func (b *Builder) Equal(column string, typ params.Type, v any) *Builder {
	return b.compare("Equal", clause.Equal(column), typ, v, bindAlways)
}

// EqualRequired appends `column = ?` and fails when v is nil.
func (b *Builder) EqualRequired(column string, typ params.Type, v any) *Builder {
	return b.compare("EqualRequired", clause.Equal(column), typ, v, bindRequired)
}

// EqualNullable appends `column = ?`, pruned when v is nil.
func (b *Builder) EqualNullable(column string, typ params.Type, v any) *Builder {
	return b.compare("EqualNullable", clause.Equal(column), typ, v, bindNullable)
}

// NotEqual appends `column <> ?` bound to v.
func (b *Builder) NotEqual(column string, typ params.Type, v any) *Builder {
	return b.compare("NotEqual", clause.NotEqual(column), typ, v, bindAlways)
}

// NotEqualRequired appends `column <> ?` and fails when v is nil.
func (b *Builder) NotEqualRequired(column string, typ params.Type, v any) *Builder {
	return b.compare("NotEqualRequired", clause.NotEqual(column), typ, v, bindRequired)
}

// NotEqualNullable appends `column <> ?`, pruned when v is nil.
func (b *Builder) NotEqualNullable(column string, typ params.Type, v any) *Builder {
	return b.compare("NotEqualNullable", clause.NotEqual(column), typ, v, bindNullable)
}

// GreaterThan appends `column > ?` bound to v.
func (b *Builder) GreaterThan(column string, typ params.Type, v any) *Builder {
	return b.compare("GreaterThan", clause.GreaterThan(column), typ, v, bindAlways)
}

// GreaterThanRequired appends `column > ?` and fails when v is nil.
func (b *Builder) GreaterThanRequired(column string, typ params.Type, v any) *Builder {
	return b.compare("GreaterThanRequired", clause.GreaterThan(column), typ, v, bindRequired)
}

// GreaterThanNullable appends `column > ?`, pruned when v is nil.
func (b *Builder) GreaterThanNullable(column string, typ params.Type, v any) *Builder {
	return b.compare("GreaterThanNullable", clause.GreaterThan(column), typ, v, bindNullable)
}

// GreaterThanEquals appends `column >= ?` bound to v.
func (b *Builder) GreaterThanEquals(column string, typ params.Type, v any) *Builder {
	return b.compare("GreaterThanEquals", clause.GreaterThanEquals(column), typ, v, bindAlways)
}

// GreaterThanEqualsRequired appends `column >= ?` and fails when v is nil.
func (b *Builder) GreaterThanEqualsRequired(column string, typ params.Type, v any) *Builder {
	return b.compare("GreaterThanEqualsRequired", clause.GreaterThanEquals(column), typ, v, bindRequired)
}

// GreaterThanEqualsNullable appends `column >= ?`, pruned when v is nil.
func (b *Builder) GreaterThanEqualsNullable(column string, typ params.Type, v any) *Builder {
	return b.compare("GreaterThanEqualsNullable", clause.GreaterThanEquals(column), typ, v, bindNullable)
}

// LessThan appends `column < ?` bound to v.
func (b *Builder) LessThan(column string, typ params.Type, v any) *Builder {
	return b.compare("LessThan", clause.LessThan(column), typ, v, bindAlways)
}

// LessThanRequired appends `column < ?` and fails when v is nil.
func (b *Builder) LessThanRequired(column string, typ params.Type, v any) *Builder {
	return b.compare("LessThanRequired", clause.LessThan(column), typ, v, bindRequired)
}

// LessThanNullable appends `column < ?`, pruned when v is nil.
func (b *Builder) LessThanNullable(column string, typ params.Type, v any) *Builder {
	return b.compare("LessThanNullable", clause.LessThan(column), typ, v, bindNullable)
}

// LessThanEquals appends `column <= ?` bound to v.
func (b *Builder) LessThanEquals(column string, typ params.Type, v any) *Builder {
	return b.compare("LessThanEquals", clause.LessThanEquals(column), typ, v, bindAlways)
}

// LessThanEqualsRequired appends `column <= ?` and fails when v is nil.
func (b *Builder) LessThanEqualsRequired(column string, typ params.Type, v any) *Builder {
	return b.compare("LessThanEqualsRequired", clause.LessThanEquals(column), typ, v, bindRequired)
}

// LessThanEqualsNullable appends `column <= ?`, pruned when v is nil.
func (b *Builder) LessThanEqualsNullable(column string, typ params.Type, v any) *Builder {
	return b.compare("LessThanEqualsNullable", clause.LessThanEquals(column), typ, v, bindNullable)
}

// Like appends `column LIKE ?` bound to v.
func (b *Builder) Like(column string, typ params.Type, v any) *Builder {
	return b.compare("Like", clause.Like(column), typ, v, bindAlways)
}

// LikeRequired appends `column LIKE ?` and fails when v is nil.
func (b *Builder) LikeRequired(column string, typ params.Type, v any) *Builder {
	return b.compare("LikeRequired", clause.Like(column), typ, v, bindRequired)
}

// LikeNullable appends `column LIKE ?`, pruned when v is nil.
func (b *Builder) LikeNullable(column string, typ params.Type, v any) *Builder {
	return b.compare("LikeNullable", clause.Like(column), typ, v, bindNullable)
}

// NotLike appends `column NOT LIKE ?` bound to v.
func (b *Builder) NotLike(column string, typ params.Type, v any) *Builder {
	return b.compare("NotLike", clause.NotLike(column), typ, v, bindAlways)
}

// NotLikeRequired appends `column NOT LIKE ?` and fails when v is nil.
func (b *Builder) NotLikeRequired(column string, typ params.Type, v any) *Builder {
	return b.compare("NotLikeRequired", clause.NotLike(column), typ, v, bindRequired)
}

// NotLikeNullable appends `column NOT LIKE ?`, pruned when v is nil.
func (b *Builder) NotLikeNullable(column string, typ params.Type, v any) *Builder {
	return b.compare("NotLikeNullable", clause.NotLike(column), typ, v, bindNullable)
}

// In appends `column IN ( ? )` bound to the list vs.
func (b *Builder) In(column string, typ params.Type, vs any) *Builder {
	return b.compare("In", clause.In(column), typ, vs, bindAlways)
}

// InRequired appends `column IN ( ? )` and fails when the list is nil, empty or holds
// a nil element.
func (b *Builder) InRequired(column string, typ params.Type, vs any) *Builder {
	return b.compare("InRequired", clause.In(column), typ, vs, bindRequired)
}

// InNullable appends `column IN ( ? )` without the list's nil elements, pruned when
// nothing remains.
func (b *Builder) InNullable(column string, typ params.Type, vs any) *Builder {
	return b.compare("InNullable", clause.In(column), typ, vs, bindNullable)
}

// NotIn appends `column NOT IN ( ? )` bound to the list vs.
func (b *Builder) NotIn(column string, typ params.Type, vs any) *Builder {
	return b.compare("NotIn", clause.NotIn(column), typ, vs, bindAlways)
}

// NotInRequired appends `column NOT IN ( ? )` and fails when the list is nil, empty
// or holds a nil element.
func (b *Builder) NotInRequired(column string, typ params.Type, vs any) *Builder {
	return b.compare("NotInRequired", clause.NotIn(column), typ, vs, bindRequired)
}

// NotInNullable appends `column NOT IN ( ? )` without the list's nil elements, pruned
// when nothing remains.
func (b *Builder) NotInNullable(column string, typ params.Type, vs any) *Builder {
	return b.compare("NotInNullable", clause.NotIn(column), typ, vs, bindNullable)
}

// Between appends `column BETWEEN ? AND ?` bound to lower and upper.
func (b *Builder) Between(column string, typ params.Type, lower, upper any) *Builder {
	return b.compareRange("Between", clause.Between(column), typ, lower, upper, bindAlways)
}

// BetweenRequired appends `column BETWEEN ? AND ?` and fails when either bound is nil.
func (b *Builder) BetweenRequired(column string, typ params.Type, lower, upper any) *Builder {
	return b.compareRange("BetweenRequired", clause.Between(column), typ, lower, upper, bindRequired)
}

// BetweenNullable appends `column BETWEEN ? AND ?`, pruned when either bound is nil.
func (b *Builder) BetweenNullable(column string, typ params.Type, lower, upper any) *Builder {
	return b.compareRange("BetweenNullable", clause.Between(column), typ, lower, upper, bindNullable)
}

// NotBetween appends `column NOT BETWEEN ? AND ?` bound to lower and upper.
func (b *Builder) NotBetween(column string, typ params.Type, lower, upper any) *Builder {
	return b.compareRange("NotBetween", clause.NotBetween(column), typ, lower, upper, bindAlways)
}

// NotBetweenRequired appends `column NOT BETWEEN ? AND ?` and fails when either bound
// is nil.
func (b *Builder) NotBetweenRequired(column string, typ params.Type, lower, upper any) *Builder {
	return b.compareRange("NotBetweenRequired", clause.NotBetween(column), typ, lower, upper, bindRequired)
}

// NotBetweenNullable appends `column NOT BETWEEN ? AND ?`, pruned when either bound is
// nil.
func (b *Builder) NotBetweenNullable(column string, typ params.Type, lower, upper any) *Builder {
	return b.compareRange("NotBetweenNullable", clause.NotBetween(column), typ, lower, upper, bindNullable)
}

// IsNull appends `column IS NULL`.
func (b *Builder) IsNull(column string) *Builder {
	return b.Append(clause.IsNull(column))
}

// IsNotNull appends `column IS NOT NULL`.
func (b *Builder) IsNotNull(column string) *Builder {
	return b.Append(clause.IsNotNull(column))
}
