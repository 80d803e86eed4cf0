package sqlbuilder

import (
	"github.com/pseudomuto/dalsql/pkg/clause"
	"github.com/pseudomuto/dalsql/pkg/params"
	"github.com/pseudomuto/dalsql/pkg/sqlerr"
	"github.com/pseudomuto/dalsql/pkg/utils"
)

// MatchPattern places the % wildcards of a LIKE value.
type MatchPattern int8

const (
	// MatchNone uses the value as is.
	MatchNone MatchPattern = iota

	// MatchHead puts the wildcard at the head: %value.
	MatchHead

	// MatchTail puts the wildcard at the tail: value%.
	MatchTail

	// MatchBoth wraps the value: %value%.
	MatchBoth
)

// Apply wraps s according to the pattern.
func (p MatchPattern) Apply(s string) string {
	switch p {
	case MatchHead:
		return "%" + s
	case MatchTail:
		return s + "%"
	case MatchBoth:
		return "%" + s + "%"
	default:
		return s
	}
}

// LikeMatch appends `column LIKE ?` bound to v wrapped by the pattern. v must be a
// string or *string; a nil value prunes the expression.
//
// Example:
//
//	b.LikeMatch("name", "jo", sqlbuilder.MatchTail) // `name` LIKE ? bound to "jo%"
func (b *Builder) LikeMatch(column string, v any, pattern MatchPattern) *Builder {
	if b.err != nil {
		return b
	}

	var value any
	switch s := v.(type) {
	case nil:
	case string:
		value = pattern.Apply(s)
	case *string:
		if s != nil {
			value = pattern.Apply(*s)
		}
	default:
		return b.fail(sqlerr.Usage("LikeMatch", column, "value must be a string, got %T", v))
	}

	return b.compare("LikeMatch", clause.Like(column), params.TypeVarchar, value, bindNullable)
}

// Set records a parameter for a placeholder written into free-form text.
//
// Example:
//
//	b.AppendText("WHERE code = ?").Set("code", params.TypeVarchar, code)
func (b *Builder) Set(name string, typ params.Type, v any) *Builder {
	return b.SetWhen(true, name, typ, v)
}

// SetNullable records a parameter that is left out when v is nil.
func (b *Builder) SetNullable(name string, typ params.Type, v any) *Builder {
	return b.SetWhen(!utils.IsNil(v), name, typ, v)
}

// SetWhen records a parameter that is left out unless cond holds.
func (b *Builder) SetWhen(cond bool, name string, typ params.Type, v any) *Builder {
	if b.err != nil {
		return b
	}

	b.ctx.Params.Add(name, typ, v).SetValid(cond)
	return b
}

// SetIn records a list parameter for an `IN ( ? )` written into free-form text.
func (b *Builder) SetIn(name string, typ params.Type, vs any) *Builder {
	return b.setIn("SetIn", name, typ, vs, false)
}

// SetInNullable records a list parameter without its nil elements, left out when
// nothing remains.
func (b *Builder) SetInNullable(name string, typ params.Type, vs any) *Builder {
	return b.setIn("SetInNullable", name, typ, vs, true)
}

func (b *Builder) setIn(op, name string, typ params.Type, vs any, nullable bool) *Builder {
	if b.err != nil {
		return b
	}

	list, ok := utils.ToSlice(vs)
	if !ok && vs != nil {
		return b.fail(sqlerr.Usage(op, name, "value must be a list, got %T", vs))
	}

	if nullable {
		kept := make([]any, 0, len(list))
		for _, v := range list {
			if !utils.IsNil(v) {
				kept = append(kept, v)
			}
		}
		list = kept
	}

	b.ctx.Params.AddIn(name, typ, list).SetValid(!nullable || len(list) > 0)
	return b
}
