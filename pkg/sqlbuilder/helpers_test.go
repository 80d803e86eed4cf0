package sqlbuilder_test

import (
	"strings"
	"testing"

	"github.com/pseudomuto/dalsql/pkg/config"
	"github.com/pseudomuto/dalsql/pkg/params"
	"github.com/pseudomuto/dalsql/pkg/shard"
	. "github.com/pseudomuto/dalsql/pkg/sqlbuilder"
	"github.com/stretchr/testify/require"
)

const (
	template        = "template"
	wrappedTemplate = "[template]"
	expression      = "count()"
	logicDBName     = "dao_test"
	tableName       = "dal_client_test"
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

func catalog(t *testing.T) shard.Catalog {
	t.Helper()

	cfg, err := config.LoadConfig(strings.NewReader(testConfig))
	require.NoError(t, err)
	return shard.NewStatic(cfg)
}

// create returns a SQL Server builder for the sharded test database.
func create(t *testing.T) *Builder {
	t.Helper()

	b := New(WithCatalog(catalog(t))).SetLogicDB(logicDBName)
	require.NoError(t, b.Err())
	return b
}

func build(t *testing.T, b *Builder) *Statement {
	t.Helper()

	stmt, err := b.Build()
	require.NoError(t, err)
	return stmt
}

func requireSQL(t *testing.T, expected string, b *Builder) {
	t.Helper()
	require.Equal(t, expected, build(t, b).SQL)
}

func requireStatement(t *testing.T, expected string, count int, b *Builder) {
	t.Helper()

	stmt := build(t, b)
	require.Equal(t, expected, stmt.SQL)
	require.Len(t, stmt.Params, count)
}

func values(ps []*params.Parameter) []any {
	out := make([]any, len(ps))
	for i, p := range ps {
		out[i] = p.Value
	}
	return out
}
