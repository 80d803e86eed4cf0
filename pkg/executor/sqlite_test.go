package executor_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pseudomuto/dalsql/pkg/dialect"
	. "github.com/pseudomuto/dalsql/pkg/executor"
	"github.com/pseudomuto/dalsql/pkg/params"
	"github.com/pseudomuto/dalsql/pkg/sqlbuilder"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestSQLite(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	exec := New(Config{Conn: db})

	text := func(sql string) *sqlbuilder.Statement {
		return statement(t, dialect.SQLite, params.InList, func(b *sqlbuilder.Builder) { b.AppendText(sql) })
	}

	results, err := exec.Execute(ctx, []*sqlbuilder.Statement{
		text(`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, kind TEXT)`),
		text(`INSERT INTO users (id, name, kind) VALUES (1, 'ann', 'admin'), (2, 'bob', 'user'), (3, 'cat', 'user')`),
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, results[1].RowsAffected)

	query := func(t *testing.T, mode params.InMode, kind any, ids any) []string {
		t.Helper()

		stmt := statement(t, dialect.SQLite, mode, func(b *sqlbuilder.Builder) {
			b.Select("name").
				From("users").
				Where(sqlbuilder.IncludeAll()...).
				EqualNullable("kind", params.TypeVarchar, kind).
				And().
				InNullable("id", params.TypeInteger, ids).
				OrderBy("id", true)
		})

		rows, err := exec.Query(ctx, stmt)
		require.NoError(t, err)
		defer func() { _ = rows.Close() }()

		var names []string
		for rows.Next() {
			var name string
			require.NoError(t, rows.Scan(&name))
			names = append(names, name)
		}
		require.NoError(t, rows.Err())
		return names
	}

	for _, mode := range []params.InMode{params.InList, params.InExpanded} {
		t.Run(string(mode), func(t *testing.T) {
			require.Equal(t, []string{"ann", "bob", "cat"}, query(t, mode, nil, nil))
			require.Equal(t, []string{"bob", "cat"}, query(t, mode, "user", nil))
			require.Equal(t, []string{"ann", "cat"}, query(t, mode, nil, []any{1, nil, 3}))
			require.Equal(t, []string{"cat"}, query(t, mode, "user", []int{1, 3}))
		})
	}
}
