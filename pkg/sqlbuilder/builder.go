package sqlbuilder

import (
	"github.com/pseudomuto/dalsql/pkg/clause"
	"github.com/pseudomuto/dalsql/pkg/dialect"
	"github.com/pseudomuto/dalsql/pkg/params"
	"github.com/pseudomuto/dalsql/pkg/shard"
	"github.com/pseudomuto/dalsql/pkg/sqlerr"
	"github.com/pseudomuto/dalsql/pkg/utils"
)

type (
	// Builder is an append-only sequence of clauses rendered into a Statement.
	// A Builder is not safe for concurrent use.
	Builder struct {
		ctx     *clause.Context
		clauses []clause.Clause
		err     error

		dialectSet      bool
		inModeSet       bool
		noMeltdown      bool
		noSpaceSkipping bool
	}

	// Option configures a Builder.
	Option func(*Builder)
)

// WithCatalog sets the catalog used to look up dialects and resolve sharded tables.
func WithCatalog(c shard.Catalog) Option {
	return func(b *Builder) { b.ctx.Catalog = c }
}

// WithDialect fixes the dialect regardless of the logical database.
func WithDialect(d dialect.Dialect) Option {
	return func(b *Builder) { b.SetDialect(d) }
}

// WithInMode fixes how IN lists are bound regardless of the logical database.
func WithInMode(m params.InMode) Option {
	return func(b *Builder) { b.SetInMode(m) }
}

// New returns an empty Builder. Without options it renders MySQL and binds IN lists
// to a single placeholder.
func New(opts ...Option) *Builder {
	b := &Builder{ctx: clause.NewContext()}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Err returns the first error recorded by the builder.
func (b *Builder) Err() error { return b.err }

// Context returns the assembly context. It is exposed for callers that render
// individual clauses.
func (b *Builder) Context() *clause.Context { return b.ctx }

// Params returns the statement's parameter store, including entries of pruned
// expressions.
func (b *Builder) Params() *params.Parameters { return b.ctx.Params }

// Clauses returns a copy of the appended clauses.
func (b *Builder) Clauses() []clause.Clause {
	out := make([]clause.Clause, len(b.clauses))
	copy(out, b.clauses)
	return out
}

// SetLogicDB names the logical database. With a catalog configured the dialect and
// IN mode are taken from it, unless they were set explicitly before or after this call.
func (b *Builder) SetLogicDB(name string) *Builder {
	if b.err != nil {
		return b
	}

	b.ctx.LogicDB = name
	if b.ctx.Catalog == nil {
		return b
	}

	if !b.dialectSet {
		d, err := b.ctx.Catalog.Dialect(name)
		if err != nil {
			return b.fail(err)
		}
		b.ctx.Dialect = d
	}

	if !b.inModeSet {
		mode, err := b.ctx.Catalog.InMode(name)
		if err != nil {
			return b.fail(err)
		}
		b.ctx.InMode = mode
	}

	return b
}

// SetDialect fixes the dialect.
func (b *Builder) SetDialect(d dialect.Dialect) *Builder {
	if b.err != nil {
		return b
	}
	if d == nil {
		return b.fail(sqlerr.Usage("SetDialect", "", "dialect can not be nil"))
	}

	b.ctx.Dialect = d
	b.dialectSet = true
	return b
}

// SetInMode fixes how IN lists are bound.
func (b *Builder) SetInMode(m params.InMode) *Builder {
	if b.err != nil {
		return b
	}

	mode, err := params.ParseInMode(string(m))
	if err != nil {
		return b.fail(sqlerr.Usage("SetInMode", "", "%s", err))
	}

	b.ctx.InMode = mode
	b.inModeSet = true
	return b
}

// SetHints sets the routing hints consulted when resolving sharded tables.
func (b *Builder) SetHints(h shard.Hints) *Builder {
	b.ctx.Hints = h
	return b
}

// With attaches a caller owned parameter store. The builder must not have recorded
// any parameters yet. The store may already hold complete entries, for example those
// of another builder sharing it; new entries continue its numbering and Build returns
// every valid entry in the store.
func (b *Builder) With(ps *params.Parameters) *Builder {
	if b.err != nil || ps == b.ctx.Params {
		return b
	}

	if ps == nil {
		return b.fail(sqlerr.Usage("With", "", "parameters can not be nil"))
	}
	if n := b.ctx.Params.Len(); n > 0 {
		return b.fail(sqlerr.Usage("With", "", "builder already recorded %d parameters", n))
	}
	if p := ps.Incomplete(); p != nil {
		return b.fail(sqlerr.Usage("With", p.Name, "parameter %d is incomplete", p.Index))
	}

	b.ctx.Params = ps
	return b
}

// DisableAutoMeltdown renders every clause as appended.
func (b *Builder) DisableAutoMeltdown() *Builder {
	b.noMeltdown = true
	return b
}

// DisableSpaceSkipping joins every clause with a single space, including around
// brackets and before commas.
func (b *Builder) DisableSpaceSkipping() *Builder {
	b.noSpaceSkipping = true
	return b
}

// EnableSpaceSkipping restores the default spacing heuristic.
func (b *Builder) EnableSpaceSkipping() *Builder {
	b.noSpaceSkipping = false
	return b
}

// Append adds clauses to the end of the sequence.
func (b *Builder) Append(clauses ...clause.Clause) *Builder {
	for _, c := range clauses {
		if b.err != nil {
			return b
		}
		if c == nil {
			return b.fail(sqlerr.Usage("Append", "", "clause can not be nil"))
		}
		if err := b.ctx.Attach(c); err != nil {
			return b.fail(err)
		}

		b.clauses = append(b.clauses, c)
	}

	return b
}

// AppendWhen appends c only when cond holds.
func (b *Builder) AppendWhen(cond bool, c clause.Clause) *Builder {
	if !cond {
		return b
	}

	return b.Append(c)
}

// AppendWhenElse appends c when cond holds and e otherwise.
func (b *Builder) AppendWhenElse(cond bool, c, e clause.Clause) *Builder {
	if cond {
		return b.Append(c)
	}

	return b.Append(e)
}

// AppendText appends text rendered verbatim.
func (b *Builder) AppendText(text string) *Builder {
	return b.Append(clause.Text(text))
}

// AppendColumn appends a column quoted for the dialect.
func (b *Builder) AppendColumn(name string) *Builder {
	return b.Append(clause.Col(name))
}

// AppendColumnAs appends an aliased column.
func (b *Builder) AppendColumnAs(name, alias string) *Builder {
	return b.Append(clause.Col(name).As(alias))
}

// AppendTable appends a logical table resolved to its shard at build time.
func (b *Builder) AppendTable(name string) *Builder {
	return b.Append(clause.Tbl(name))
}

// AppendTableAs appends an aliased logical table.
func (b *Builder) AppendTableAs(name, alias string) *Builder {
	return b.Append(clause.Tbl(name).As(alias))
}

// AppendExpression appends a free-form expression. Its validity can be bound with
// Nullable or When right after.
func (b *Builder) AppendExpression(template string) *Builder {
	return b.Append(clause.Expr(template))
}

// Nullable binds the validity of the last expression to v being non-nil.
//
// Example:
//
//	b.AppendExpression("deleted_at IS NULL").Nullable(onlyActive)
func (b *Builder) Nullable(v any) *Builder {
	return b.when("Nullable", !utils.IsNil(v))
}

// NullableBound makes the last column expression valid only when its bound value is
// present. See clause.ColumnExpression.Nullable.
func (b *Builder) NullableBound() *Builder {
	e, ok := b.lastColumnExpression("NullableBound")
	if !ok {
		return b
	}

	if err := e.Nullable(); err != nil {
		return b.fail(err)
	}
	return b
}

// When binds the validity of the last expression to cond.
func (b *Builder) When(cond bool) *Builder {
	return b.when("When", cond)
}

// Sensitive marks the values bound by the last column expression as sensitive.
func (b *Builder) Sensitive() *Builder {
	if e, ok := b.lastColumnExpression("Sensitive"); ok {
		e.Sensitive()
	}

	return b
}

func (b *Builder) when(op string, cond bool) *Builder {
	return b.expr(op).when(op, cond)
}

func (b *Builder) lastColumnExpression(op string) (*clause.ColumnExpression, bool) {
	if b.err != nil {
		return nil, false
	}

	e, ok := b.last().(*clause.ColumnExpression)
	if !ok {
		b.fail(sqlerr.Usage(op, "", "no trailing column expression to modify"))
		return nil, false
	}

	return e, true
}

func (b *Builder) last() clause.Clause {
	if len(b.clauses) == 0 {
		return nil
	}

	return b.clauses[len(b.clauses)-1]
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}

	return b
}
