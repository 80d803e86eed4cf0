package clause_test

import (
	"strings"
	"testing"

	. "github.com/pseudomuto/dalsql/pkg/clause"
	"github.com/pseudomuto/dalsql/pkg/config"
	"github.com/pseudomuto/dalsql/pkg/dialect"
	"github.com/pseudomuto/dalsql/pkg/meltdown"
	"github.com/pseudomuto/dalsql/pkg/params"
	"github.com/pseudomuto/dalsql/pkg/shard"
	"github.com/pseudomuto/dalsql/pkg/sqlerr"
	"github.com/stretchr/testify/require"
)

const testConfig = `
databases:
  dao_test:
    dialect: sqlserver
    tables:
      T:
        shards: 4
        column: user_id
`

func sqlServerContext(t *testing.T) *Context {
	t.Helper()

	cfg, err := config.LoadConfig(strings.NewReader(testConfig))
	require.NoError(t, err)

	ctx := NewContext()
	ctx.Dialect = dialect.SQLServer
	ctx.LogicDB = "dao_test"
	ctx.Catalog = shard.NewStatic(cfg)
	return ctx
}

func render(t *testing.T, ctx *Context, c Clause) string {
	t.Helper()

	s, err := c.Render(ctx)
	require.NoError(t, err)
	return s
}

func TestClassify(t *testing.T) {
	invalid := Expr("x")
	require.NoError(t, invalid.When(false))

	tests := []struct {
		name     string
		clause   Clause
		expected meltdown.Class
	}{
		{"text", Text("x"), meltdown.Operand},
		{"keyword", Where, meltdown.Keyword},
		{"comma", Comma, meltdown.Operand},
		{"column", Col("a"), meltdown.Operand},
		{"table", Tbl("T"), meltdown.Operand},
		{"and", And, meltdown.Connective},
		{"or", Or, meltdown.Connective},
		{"not", Not, meltdown.Not},
		{"left", LeftBracket, meltdown.LeftBracket},
		{"right", RightBracket, meltdown.RightBracket},
		{"pending expression", Expr("x"), meltdown.Operand},
		{"invalid expression", invalid, meltdown.Invalid},
		{"column expression", Equal("a"), meltdown.Operand},
		{"true", True, meltdown.Operand},
		{"false", False, meltdown.Operand},
		{"null", Null, meltdown.Invalid},
		{"hint", PostTableHint, meltdown.Operand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Classify(tt.clause))
		})
	}
}

func TestStatelessClauses(t *testing.T) {
	ctx := NewContext()

	require.Equal(t, "AND", render(t, ctx, And))
	require.Equal(t, "NOT", render(t, ctx, Not))
	require.Equal(t, "(", render(t, ctx, LeftBracket))
	require.Equal(t, ",", render(t, ctx, Comma))
	require.Equal(t, "ORDER BY", render(t, ctx, OrderBy))
	require.Equal(t, "count() template", render(t, ctx, Text("count() template")))
	require.True(t, IsOperator(Or))
	require.False(t, IsOperator(Where))
	require.Equal(t, []Clause{LeftBracket, Text("a"), RightBracket}, Group(Text("a")))
}

func TestExpressionValidity(t *testing.T) {
	t.Run("pending renders as valid", func(t *testing.T) {
		e := Expr("a = 1")
		require.True(t, e.Pending())
		require.True(t, e.Valid())
		require.Equal(t, "a = 1", render(t, NewContext(), e))
	})

	t.Run("when false", func(t *testing.T) {
		e := Expr("a = 1")
		require.NoError(t, e.When(false))
		require.False(t, e.Valid())

		_, err := e.Render(NewContext())
		require.True(t, sqlerr.IsInternal(err))
	})

	t.Run("nullable", func(t *testing.T) {
		var p *int
		e := Expr("a = 1")
		require.NoError(t, e.Nullable(p))
		require.False(t, e.Valid())

		e = Expr("a = 1")
		require.NoError(t, e.Nullable(0))
		require.True(t, e.Valid())
	})

	t.Run("second binding is a usage error", func(t *testing.T) {
		e := Expr("a = 1")
		require.NoError(t, e.When(true))

		err := e.Nullable(nil)
		require.True(t, sqlerr.IsUsage(err))
		require.EqualError(t, err, "usage error in Nullable (a = 1): expression validity already bound")
		require.True(t, e.Valid())
	})

	t.Run("conditional constructors", func(t *testing.T) {
		require.Equal(t, Null, ExprWhen(false, "x"))
		require.Equal(t, "x", render(t, NewContext(), ExprWhen(true, "x")))
		require.Equal(t, "y", render(t, NewContext(), ExprElse(false, "x", "y")))
	})
}

func TestImmutableExpressions(t *testing.T) {
	require.NoError(t, True.When(false))
	require.True(t, True.Valid())
	require.NoError(t, False.When(false))
	require.True(t, False.Valid())
	require.Equal(t, "TRUE", render(t, NewContext(), True))
	require.Equal(t, "FALSE", render(t, NewContext(), False))

	require.False(t, Null.Valid())
	require.Empty(t, render(t, NewContext(), Null))
}

func TestColumnExpressionRender(t *testing.T) {
	ctx := sqlServerContext(t)

	tests := []struct {
		name     string
		expr     *ColumnExpression
		expected string
	}{
		{"equal", Equal("a"), "[a] = ?"},
		{"not equal", NotEqual("a"), "[a] <> ?"},
		{"greater than", GreaterThan("a"), "[a] > ?"},
		{"greater than equals", GreaterThanEquals("a"), "[a] >= ?"},
		{"less than", LessThan("a"), "[a] < ?"},
		{"less than equals", LessThanEquals("a"), "[a] <= ?"},
		{"like", Like("a"), "[a] LIKE ?"},
		{"not like", NotLike("a"), "[a] NOT LIKE ?"},
		{"between", Between("a"), "[a] BETWEEN ? AND ?"},
		{"not between", NotBetween("a"), "[a] NOT BETWEEN ? AND ?"},
		{"in", In("a"), "[a] IN ( ? )"},
		{"not in", NotIn("a"), "[a] NOT IN ( ? )"},
		{"is null", IsNull("a"), "[a] IS NULL"},
		{"is not null", IsNotNull("a"), "[a] IS NOT NULL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, render(t, ctx, tt.expr))
		})
	}

	t.Run("mysql quoting", func(t *testing.T) {
		require.Equal(t, "`a` = ?", render(t, NewContext(), Equal("a")))
	})
}

func TestColumnExpressionBinding(t *testing.T) {
	t.Run("records on attach", func(t *testing.T) {
		ctx := NewContext()
		e := Equal("a")
		require.NoError(t, e.Set(params.TypeInteger, 1))
		require.Zero(t, ctx.Params.Len())

		require.NoError(t, ctx.Attach(e))
		require.Equal(t, 1, ctx.Params.Len())
		require.Equal(t, "a", ctx.Params.Get(1).Name)
		require.Equal(t, 1, ctx.Params.Get(1).Value)
	})

	t.Run("records on set after attach", func(t *testing.T) {
		ctx := NewContext()
		e := Equal("a")
		require.NoError(t, ctx.Attach(e))
		require.Zero(t, ctx.Params.Len())

		require.NoError(t, e.Set(params.TypeVarchar, "x"))
		require.Equal(t, 1, ctx.Params.Len())
	})

	t.Run("template only records nothing", func(t *testing.T) {
		ctx := NewContext()
		require.NoError(t, ctx.Attach(IsNull("a")))
		require.NoError(t, ctx.Attach(Equal("b")))
		require.Zero(t, ctx.Params.Len())
	})

	t.Run("between records two entries", func(t *testing.T) {
		ctx := NewContext()
		e := Between("a")
		require.NoError(t, e.SetRange(params.TypeInteger, 1, 9))
		require.NoError(t, ctx.Attach(e))

		built := ctx.Params.Build()
		require.Len(t, built, 2)
		require.Equal(t, 1, built[0].Value)
		require.Equal(t, 9, built[1].Value)
	})

	t.Run("in records one list entry", func(t *testing.T) {
		ctx := NewContext()
		e := In("a")
		require.NoError(t, e.Set(params.TypeInteger, []int{1, 2, 3}))
		require.NoError(t, ctx.Attach(e))

		built := ctx.Params.Build()
		require.Len(t, built, 1)
		require.True(t, built[0].InParam)
		require.Equal(t, []any{1, 2, 3}, built[0].Value)
	})

	t.Run("usage errors", func(t *testing.T) {
		e := Equal("a")
		require.NoError(t, e.Set(params.TypeInteger, 1))
		require.True(t, sqlerr.IsUsage(e.Set(params.TypeInteger, 2)))

		require.True(t, sqlerr.IsUsage(Between("a").Set(params.TypeInteger, 1)))
		require.True(t, sqlerr.IsUsage(Equal("a").SetRange(params.TypeInteger, 1, 2)))
		require.True(t, sqlerr.IsUsage(IsNull("a").Set(params.TypeInteger, 1)))
		require.True(t, sqlerr.IsUsage(In("a").Set(params.TypeInteger, 1)))
		require.True(t, sqlerr.IsUsage(IsNull("a").Nullable()))
		require.True(t, sqlerr.IsUsage(Equal("a").Nullable()))

		ctx := NewContext()
		require.NoError(t, ctx.Attach(e))
		err := ctx.Attach(e)
		require.True(t, sqlerr.IsUsage(err))
		require.Contains(t, err.Error(), "already appended")
	})
}

func TestColumnExpressionNullable(t *testing.T) {
	bind := func(t *testing.T, e *ColumnExpression, v any) (*Context, *ColumnExpression) {
		t.Helper()

		ctx := NewContext()
		require.NoError(t, e.Set(params.TypeInteger, v))
		require.NoError(t, ctx.Attach(e))
		require.NoError(t, e.Nullable())
		return ctx, e
	}

	t.Run("nil scalar", func(t *testing.T) {
		ctx, e := bind(t, Equal("a"), nil)
		require.False(t, e.Valid())
		require.Empty(t, ctx.Params.Build())
		require.Equal(t, 1, ctx.Params.Len())
	})

	t.Run("present scalar", func(t *testing.T) {
		ctx, e := bind(t, Equal("a"), 0)
		require.True(t, e.Valid())
		require.Len(t, ctx.Params.Build(), 1)
	})

	t.Run("in strips nil elements", func(t *testing.T) {
		ctx, e := bind(t, In("a"), []any{1, nil, 3})
		require.True(t, e.Valid())
		require.Equal(t, []any{1, 3}, ctx.Params.Build()[0].Value)
	})

	t.Run("in with only nils", func(t *testing.T) {
		ctx, e := bind(t, In("a"), []any{nil, nil})
		require.False(t, e.Valid())
		require.Empty(t, ctx.Params.Build())
	})

	t.Run("in with nil list", func(t *testing.T) {
		_, e := bind(t, In("a"), nil)
		require.False(t, e.Valid())
	})

	t.Run("between needs both bounds", func(t *testing.T) {
		for _, bounds := range [][2]any{{nil, 1}, {1, nil}, {nil, nil}} {
			ctx := NewContext()
			e := Between("a")
			require.NoError(t, e.SetRange(params.TypeInteger, bounds[0], bounds[1]))
			require.NoError(t, ctx.Attach(e))
			require.NoError(t, e.Nullable())
			require.False(t, e.Valid())
			require.Empty(t, ctx.Params.Build())
		}
	})

	t.Run("when mirrors onto parameters", func(t *testing.T) {
		ctx := NewContext()
		e := Equal("a")
		require.NoError(t, e.Set(params.TypeInteger, 1))
		require.NoError(t, ctx.Attach(e))
		require.NoError(t, e.When(false))
		require.Empty(t, ctx.Params.Build())

		err := e.When(true)
		require.True(t, sqlerr.IsUsage(err))
		require.EqualError(t, err, "usage error in When (a): expression validity already bound")
	})

	t.Run("when before attach", func(t *testing.T) {
		ctx := NewContext()
		e := Equal("a")
		require.NoError(t, e.Set(params.TypeInteger, 1))
		require.NoError(t, e.When(false))
		require.NoError(t, ctx.Attach(e))
		require.Empty(t, ctx.Params.Build())
	})
}

func TestColumnExpressionExpandedIn(t *testing.T) {
	ctx := NewContext()
	ctx.InMode = params.InExpanded

	e := NotIn("status")
	require.NoError(t, e.Set(params.TypeVarchar, []string{"a", "b", "c"}))
	require.NoError(t, ctx.Attach(e))
	require.Equal(t, "`status` NOT IN (?, ?, ?)", render(t, ctx, e))
}

func TestSensitive(t *testing.T) {
	ctx := NewContext()

	before := Equal("password").Sensitive()
	require.NoError(t, before.Set(params.TypeVarchar, "x"))
	require.NoError(t, ctx.Attach(before))

	after := Equal("token")
	require.NoError(t, after.Set(params.TypeVarchar, "y"))
	require.NoError(t, ctx.Attach(after))
	after.Sensitive()

	for _, p := range ctx.Params.Build() {
		require.True(t, p.Sensitive, p.Name)
	}
}

func TestColumn(t *testing.T) {
	ctx := sqlServerContext(t)

	tests := []struct {
		name     string
		column   *Column
		expected string
	}{
		{"plain", Col("template"), "[template]"},
		{"alias", Col("template").As("template"), "[template] AS template"},
		{"star", Col("*"), "*"},
		{"row number", Col("ROW_NUMBER() OVER (ORDER BY id)"), "ROW_NUMBER() OVER (ORDER BY id)"},
		{"list", Col("a, b"), "a, b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, render(t, ctx, tt.column))
		})
	}
}

func TestTable(t *testing.T) {
	tests := []struct {
		name     string
		table    func(ctx *Context) *Table
		expected string
	}{
		{
			name:     "not sharded",
			table:    func(*Context) *Table { return Tbl("noShard") },
			expected: "[noShard]",
		},
		{
			name:     "explicit shard",
			table:    func(*Context) *Table { return Tbl("T").InShard("1") },
			expected: "[T_1]",
		},
		{
			name:     "explicit shard with alias",
			table:    func(*Context) *Table { return Tbl("T").InShard("1").As("alias") },
			expected: "[T_1] AS alias",
		},
		{
			name:     "shard value",
			table:    func(*Context) *Table { return Tbl("T").ShardValue(5) },
			expected: "[T_1]",
		},
		{
			name: "hints",
			table: func(ctx *Context) *Table {
				ctx.Hints.ColumnValues = map[string]any{"user_id": 2}
				return Tbl("T")
			},
			expected: "[T_2]",
		},
		{
			name: "parameters",
			table: func(ctx *Context) *Table {
				e := Equal("user_id")
				require.NoError(t, e.Set(params.TypeInteger, 7))
				require.NoError(t, ctx.Attach(e))
				return Tbl("T")
			},
			expected: "[T_3]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := sqlServerContext(t)
			require.Equal(t, tt.expected, render(t, ctx, tt.table(ctx)))
		})
	}

	t.Run("requires a logical database", func(t *testing.T) {
		_, err := Tbl("T").Render(NewContext())
		require.True(t, sqlerr.IsUsage(err))

		err = NewContext().Attach(Tbl("T"))
		require.True(t, sqlerr.IsUsage(err))
		require.Contains(t, err.Error(), "(T)")
	})

	t.Run("unknown logical database", func(t *testing.T) {
		ctx := sqlServerContext(t)
		ctx.LogicDB = "nope"

		_, err := Tbl("T").Render(ctx)
		require.True(t, sqlerr.IsConfiguration(err))
	})

	t.Run("no routing value", func(t *testing.T) {
		_, err := Tbl("T").Render(sqlServerContext(t))
		require.True(t, sqlerr.IsConfiguration(err))
	})

	t.Run("no catalog", func(t *testing.T) {
		ctx := NewContext()
		ctx.LogicDB = "anything"
		require.Equal(t, "`T`", render(t, ctx, Tbl("T")))
	})
}

func TestPostTableHint(t *testing.T) {
	require.Equal(t, "WITH (NOLOCK)", render(t, sqlServerContext(t), PostTableHint))
	require.Empty(t, render(t, NewContext(), PostTableHint))
}
