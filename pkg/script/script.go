package script

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/dalsql/pkg/clause"
	"github.com/pseudomuto/dalsql/pkg/dialect"
	"github.com/pseudomuto/dalsql/pkg/params"
	"github.com/pseudomuto/dalsql/pkg/shard"
	"github.com/pseudomuto/dalsql/pkg/sqlbuilder"
	"github.com/pseudomuto/dalsql/pkg/sqlerr"
)

type (
	compareFunc func(b *sqlbuilder.Builder, column string, typ params.Type, v any) *sqlbuilder.Builder
	rangeFunc   func(b *sqlbuilder.Builder, column string, typ params.Type, lower, upper any) *sqlbuilder.Builder

	// comparison holds the always, required and nullable forms of an operator.
	comparison struct {
		forms  [3]compareFunc
		ranges [3]rangeFunc
	}
)

var comparisons = map[string]comparison{
	"equal":      scalar((*sqlbuilder.Builder).Equal, (*sqlbuilder.Builder).EqualRequired, (*sqlbuilder.Builder).EqualNullable),
	"notequal":   scalar((*sqlbuilder.Builder).NotEqual, (*sqlbuilder.Builder).NotEqualRequired, (*sqlbuilder.Builder).NotEqualNullable),
	"gt":         scalar((*sqlbuilder.Builder).GreaterThan, (*sqlbuilder.Builder).GreaterThanRequired, (*sqlbuilder.Builder).GreaterThanNullable),
	"gte":        scalar((*sqlbuilder.Builder).GreaterThanEquals, (*sqlbuilder.Builder).GreaterThanEqualsRequired, (*sqlbuilder.Builder).GreaterThanEqualsNullable),
	"lt":         scalar((*sqlbuilder.Builder).LessThan, (*sqlbuilder.Builder).LessThanRequired, (*sqlbuilder.Builder).LessThanNullable),
	"lte":        scalar((*sqlbuilder.Builder).LessThanEquals, (*sqlbuilder.Builder).LessThanEqualsRequired, (*sqlbuilder.Builder).LessThanEqualsNullable),
	"like":       scalar((*sqlbuilder.Builder).Like, (*sqlbuilder.Builder).LikeRequired, (*sqlbuilder.Builder).LikeNullable),
	"notlike":    scalar((*sqlbuilder.Builder).NotLike, (*sqlbuilder.Builder).NotLikeRequired, (*sqlbuilder.Builder).NotLikeNullable),
	"in":         scalar((*sqlbuilder.Builder).In, (*sqlbuilder.Builder).InRequired, (*sqlbuilder.Builder).InNullable),
	"notin":      scalar((*sqlbuilder.Builder).NotIn, (*sqlbuilder.Builder).NotInRequired, (*sqlbuilder.Builder).NotInNullable),
	"between":    ranged((*sqlbuilder.Builder).Between, (*sqlbuilder.Builder).BetweenRequired, (*sqlbuilder.Builder).BetweenNullable),
	"notbetween": ranged((*sqlbuilder.Builder).NotBetween, (*sqlbuilder.Builder).NotBetweenRequired, (*sqlbuilder.Builder).NotBetweenNullable),
}

func scalar(always, required, nullable compareFunc) comparison {
	return comparison{forms: [3]compareFunc{always, required, nullable}}
}

func ranged(always, required, nullable rangeFunc) comparison {
	return comparison{ranges: [3]rangeFunc{always, required, nullable}}
}

// Build parses the script read from r, replays it against b and builds the statement.
func Build(b *sqlbuilder.Builder, r io.Reader) (*sqlbuilder.Statement, error) {
	s, err := Parse(r)
	if err != nil {
		return nil, err
	}

	if err := s.Apply(b); err != nil {
		return nil, err
	}

	return b.Build()
}

// Apply replays the commands against b. It stops at the first failing command and
// returns its error annotated with the command's position.
func (s *Script) Apply(b *sqlbuilder.Builder) error {
	for _, cmd := range s.Commands {
		if err := cmd.apply(b); err != nil {
			return errors.Wrapf(err, "line %d", cmd.Pos.Line)
		}

		if err := b.Err(); err != nil {
			return errors.Wrapf(err, "line %d", cmd.Pos.Line)
		}
	}

	return nil
}

func (c *Command) apply(b *sqlbuilder.Builder) error {
	switch {
	case c.DB != nil:
		b.SetLogicDB(*c.DB)
	case c.Dialect != nil:
		d, err := dialect.Lookup(*c.Dialect)
		if err != nil {
			return err
		}
		b.SetDialect(d)
	case c.InMode != nil:
		b.SetInMode(params.InMode(strings.ToLower(*c.InMode)))
	case c.Hint != nil:
		b.SetHints(c.Hint.merge(b.Context().Hints))
	case c.Disable != nil:
		if strings.EqualFold(*c.Disable, "meltdown") {
			b.DisableAutoMeltdown()
		} else {
			b.DisableSpaceSkipping()
		}
	case c.Select != nil:
		cols := make([]clause.Clause, len(c.Select.Columns))
		for i, col := range c.Select.Columns {
			cols[i] = col.clause()
		}
		b.SelectClauses(cols...)
	case c.From != nil:
		b.FromTable(c.From.clause())
	case c.Table != nil:
		b.Append(c.Table.clause())
	case c.Column != nil:
		b.Append(c.Column.clause())
	case c.Where:
		b.Where()
	case c.OrderBy != nil:
		b.OrderBy(c.OrderBy.Column, c.OrderBy.Direction == nil || strings.EqualFold(*c.OrderBy.Direction, "asc"))
	case c.GroupBy != nil:
		b.GroupBy(*c.GroupBy)
	case c.Having != nil:
		b.Having(*c.Having)
	case c.Text != nil:
		b.AppendText(*c.Text)
	case c.Expr != nil:
		c.Expr.apply(b)
	case c.IncludeAll:
		b.Append(sqlbuilder.IncludeAll()...)
	case c.ExcludeAll:
		b.Append(sqlbuilder.ExcludeAll()...)
	case c.Operator != nil:
		applyOperator(b, *c.Operator)
	case c.Unary != nil:
		c.Unary.apply(b)
	case c.Compare != nil:
		return c.Compare.apply(b)
	case c.Set != nil:
		return c.Set.apply(b, false)
	case c.SetIn != nil:
		return c.SetIn.apply(b, true)
	}

	return nil
}

func applyOperator(b *sqlbuilder.Builder, op string) {
	switch strings.ToLower(op) {
	case "and":
		b.And()
	case "or":
		b.Or()
	case "not":
		b.Not()
	case "(":
		b.LeftBracket()
	case ")":
		b.RightBracket()
	}
}

func (h *Hint) merge(hints shard.Hints) shard.Hints {
	switch {
	case h.Shard != nil:
		hints.ShardID = *h.Shard
	case h.Value != nil:
		hints.ShardValue = h.Value.Go()
	case h.Column != nil:
		values := make(map[string]any, len(hints.ColumnValues)+1)
		for k, v := range hints.ColumnValues {
			values[k] = v
		}
		values[h.Column.Name] = h.Column.Value.Go()
		hints.ColumnValues = values
	}

	return hints
}

func (c *ColumnRef) clause() clause.Clause {
	col := clause.Col(c.Name)
	if c.Alias != nil {
		col.As(*c.Alias)
	}

	return col
}

func (t *TableRef) clause() *clause.Table {
	tbl := clause.Tbl(t.Name)
	if t.Shard != nil {
		tbl.InShard(*t.Shard)
	}
	if t.ShardValue != nil {
		tbl.ShardValue(t.ShardValue.Go())
	}
	if t.Alias != nil {
		tbl.As(*t.Alias)
	}

	return tbl
}

func (e *Expr) apply(b *sqlbuilder.Builder) {
	b.AppendExpression(e.Template)
	if e.When != nil {
		b.When(parseBool(*e.When))
	}
	if e.Nullable != nil {
		b.Nullable(e.Nullable.Go())
	}
}

func (u *Unary) apply(b *sqlbuilder.Builder) {
	if strings.EqualFold(u.Op, "isnull") {
		b.IsNull(u.Column)
	} else {
		b.IsNotNull(u.Column)
	}

	if u.When != nil {
		b.When(parseBool(*u.When))
	}
}

func (c *Compare) apply(b *sqlbuilder.Builder) error {
	op := strings.ToLower(c.Op)
	typ, err := params.ParseType(c.Type)
	if err != nil {
		return sqlerr.Usage(op, c.Column, "%s", err)
	}

	mode := 0
	if c.Mode != nil {
		mode = 1
		if strings.EqualFold(*c.Mode, "nullable") {
			mode = 2
		}
	}

	cmp := comparisons[op]
	if cmp.ranges[mode] != nil {
		if len(c.Values) != 2 {
			return sqlerr.Usage(op, c.Column, "takes a lower and upper value")
		}
		cmp.ranges[mode](b, c.Column, typ, c.Values[0].Go(), c.Values[1].Go())
	} else {
		if len(c.Values) != 1 {
			return sqlerr.Usage(op, c.Column, "takes a single value")
		}
		cmp.forms[mode](b, c.Column, typ, c.Values[0].Go())
	}

	if c.Sensitive {
		b.Sensitive()
	}
	if c.When != nil {
		b.When(parseBool(*c.When))
	}

	return nil
}

func (s *Set) apply(b *sqlbuilder.Builder, in bool) error {
	typ, err := params.ParseType(s.Type)
	if err != nil {
		return sqlerr.Usage("Set", s.Name, "%s", err)
	}

	v := s.Value.Go()
	switch {
	case in && s.Nullable:
		b.SetInNullable(s.Name, typ, v)
	case in:
		b.SetIn(s.Name, typ, v)
	case s.Nullable:
		b.SetNullable(s.Name, typ, v)
	default:
		b.Set(s.Name, typ, v)
	}

	return nil
}

func parseBool(s string) bool { return strings.EqualFold(s, "true") }
