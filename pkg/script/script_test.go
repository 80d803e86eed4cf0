package script_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pseudomuto/dalsql/pkg/config"
	"github.com/pseudomuto/dalsql/pkg/params"
	. "github.com/pseudomuto/dalsql/pkg/script"
	"github.com/pseudomuto/dalsql/pkg/shard"
	"github.com/pseudomuto/dalsql/pkg/sqlbuilder"
	"github.com/pseudomuto/dalsql/pkg/sqlerr"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

const testConfig = `
databases:
  dao_test:
    dialect: sqlserver
    tables:
      dal_client_test:
        shards: 4
        column: user_id
  dao_test_mysql:
    dialect: mysql
    in_mode: expanded
`

func newBuilder(t *testing.T) *sqlbuilder.Builder {
	t.Helper()

	cfg, err := config.LoadConfig(strings.NewReader(testConfig))
	require.NoError(t, err)
	return sqlbuilder.New(sqlbuilder.WithCatalog(shard.NewStatic(cfg)))
}

func TestGoldenFiles(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("testdata", "*.dal"))
	require.NoError(t, err)
	require.NotEmpty(t, matches)

	for _, path := range matches {
		name := strings.TrimSuffix(filepath.Base(path), ".dal")

		t.Run(name, func(t *testing.T) {
			f, err := os.Open(path)
			require.NoError(t, err)
			defer func() { _ = f.Close() }()

			stmt, err := Build(newBuilder(t), f)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, Format(&buf, stmt))
			golden.Assert(t, buf.String(), name+".golden")
		})
	}
}

func TestParse(t *testing.T) {
	s, err := ParseString(`
		DB orders   # case does not matter
		hint user_id = 42
		select a, b as c
		from T shard 1 as t
		where between x int 1 5 nullable
	`)
	require.NoError(t, err)
	require.Len(t, s.Commands, 6)

	require.Equal(t, "orders", *s.Commands[0].DB)
	require.Equal(t, 2, s.Commands[0].Pos.Line)

	hint := s.Commands[1].Hint.Column
	require.Equal(t, "user_id", hint.Name)
	require.Equal(t, int64(42), hint.Value.Go())

	cols := s.Commands[2].Select.Columns
	require.Len(t, cols, 2)
	require.Equal(t, "c", *cols[1].Alias)

	from := s.Commands[3].From
	require.Equal(t, "T", from.Name)
	require.Equal(t, "1", *from.Shard)
	require.Equal(t, "t", *from.Alias)

	require.True(t, s.Commands[4].Where)

	cmp := s.Commands[5].Compare
	require.Equal(t, "between", cmp.Op)
	require.Len(t, cmp.Values, 2)
	require.Equal(t, "nullable", *cmp.Mode)
}

func TestValues(t *testing.T) {
	s, err := ParseString(`equal a text ["x", 1, 2.5, true, null, []]`)
	require.NoError(t, err)
	require.Equal(t, []any{"x", int64(1), 2.5, true, nil, []any{}}, s.Commands[0].Compare.Values[0].Go())
}

func TestParseErrors(t *testing.T) {
	_, err := ParseString(`select`)
	require.ErrorContains(t, err, "failed to parse script")

	_, err = Parse(strings.NewReader(`equal a`))
	require.ErrorContains(t, err, "failed to parse script")
}

func TestApply(t *testing.T) {
	t.Run("hints route tables", func(t *testing.T) {
		stmt, err := Build(newBuilder(t), strings.NewReader(`
			db dao_test
			hint user_id = 7
			select id from dal_client_test
		`))
		require.NoError(t, err)
		require.Equal(t, "SELECT [id] FROM [dal_client_test_3] WITH (NOLOCK)", stmt.SQL)
	})

	t.Run("explicit shard hint", func(t *testing.T) {
		stmt, err := Build(newBuilder(t), strings.NewReader(`db dao_test hint shard 0 table dal_client_test`))
		require.NoError(t, err)
		require.Equal(t, "[dal_client_test_0]", stmt.SQL)
	})

	t.Run("options", func(t *testing.T) {
		stmt, err := Build(newBuilder(t), strings.NewReader(`
			db dao_test
			inmode expanded
			disable spacing
			( in a int [1, 2] )
		`))
		require.NoError(t, err)
		require.Equal(t, "( [a] IN (?, ?) )", stmt.SQL)
		require.Equal(t, params.InExpanded, stmt.InMode)
		require.Len(t, stmt.Params, 2)
	})

	t.Run("disable meltdown", func(t *testing.T) {
		_, err := Build(newBuilder(t), strings.NewReader(`db dao_test disable meltdown equal a int null nullable`))
		require.True(t, sqlerr.IsInternal(err))
	})

	t.Run("expressions", func(t *testing.T) {
		stmt, err := Build(newBuilder(t), strings.NewReader(`
			db dao_test
			group by kind
			having "count(*) > 1"
			and expr "sum(total) > 10" nullable null
			column total
		`))
		require.NoError(t, err)
		require.Equal(t, "GROUP BY [kind] HAVING count(*) > 1 [total]", stmt.SQL)
	})

	t.Run("errors carry the line", func(t *testing.T) {
		_, err := Build(newBuilder(t), strings.NewReader("db dao_test\nequal a int null required"))
		require.True(t, sqlerr.IsUsage(err))
		require.ErrorContains(t, err, "line 2")
	})

	tests := []struct {
		name   string
		script string
		check  func(error) bool
	}{
		{"unknown dialect", `dialect oracle`, func(err error) bool { return err != nil }},
		{"unknown type", `equal a money 1`, sqlerr.IsUsage},
		{"between with one value", `between a int 1`, sqlerr.IsUsage},
		{"equal with two values", `equal a int 1 2`, sqlerr.IsUsage},
		{"unknown database", `db nope`, sqlerr.IsConfiguration},
		{"unknown in mode", `inmode spread`, sqlerr.IsUsage},
		{"set with unknown type", `set a money 1`, sqlerr.IsUsage},
		{"setin with scalar", `setin a int 1`, sqlerr.IsUsage},
		{"when twice", `expr "x" when true nullable 1`, sqlerr.IsUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(newBuilder(t), strings.NewReader(tt.script))
			require.Error(t, err)
			require.True(t, tt.check(err), err.Error())
		})
	}
}
