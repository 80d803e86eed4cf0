// Package dialect describes how identifiers, table hints and placeholders are written
// for each supported database.
//
// A Dialect is a stateless policy value. The assembly engine consults it at render time
// to quote column and table names, to append post-table hints and, in the executor, to
// rebind placeholders.
//
// Examples:
//
//	d, err := dialect.Lookup("sqlserver")
//	d.Quote("user_id")  // [user_id]
//	d.PostTableHint()   // WITH (NOLOCK)
//
//	dialect.MySQL.Quote("orders")   // `orders`
//	dialect.Postgres.Placeholder(2) // $2
package dialect

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/dalsql/pkg/consts"
	"github.com/pseudomuto/dalsql/pkg/utils"
)

// Name identifies a dialect.
type Name string

const (
	NameMySQL      Name = "mysql"
	NameSQLServer  Name = "sqlserver"
	NamePostgres   Name = "postgres"
	NameSQLite     Name = "sqlite"
	NameClickHouse Name = "clickhouse"
)

// Dialect is the per-database quoting and placeholder policy.
type Dialect interface {
	// Name returns the dialect's name.
	Name() Name

	// Quote wraps an identifier in the dialect's delimiters. Dotted names are quoted
	// part by part and parts that are already quoted are left alone.
	Quote(id string) string

	// PostTableHint returns the text appended after a table in a FROM clause, or the
	// empty string when the dialect has none.
	PostTableHint() string

	// Placeholder returns the n-th (1-based) parameter placeholder as the driver expects it.
	Placeholder(n int) string
}

var (
	MySQL      Dialect = &quoted{name: NameMySQL, open: "`", close: "`"}
	SQLServer  Dialect = &quoted{name: NameSQLServer, open: "[", close: "]", hint: "WITH (NOLOCK)"}
	Postgres   Dialect = &quoted{name: NamePostgres, open: `"`, close: `"`, numbered: true}
	SQLite     Dialect = &quoted{name: NameSQLite, open: `"`, close: `"`}
	ClickHouse Dialect = &quoted{name: NameClickHouse, open: "`", close: "`"}

	registry = map[Name]Dialect{
		NameMySQL:      MySQL,
		NameSQLServer:  SQLServer,
		NamePostgres:   Postgres,
		NameSQLite:     SQLite,
		NameClickHouse: ClickHouse,
	}

	aliases = map[string]Name{
		"mssql":      NameSQLServer,
		"postgresql": NamePostgres,
		"pg":         NamePostgres,
		"sqlite3":    NameSQLite,
		"mariadb":    NameMySQL,
	}
)

// Lookup returns the dialect registered under name (case-insensitive). A handful of
// common aliases such as "mssql", "pg" and "sqlite3" are accepted too.
func Lookup(name string) (Dialect, error) {
	n := Name(strings.ToLower(strings.TrimSpace(name)))
	if alias, ok := aliases[string(n)]; ok {
		n = alias
	}

	d, ok := registry[n]
	if !ok {
		return nil, errors.Errorf("unknown dialect: %q", name)
	}

	return d, nil
}

// Names returns the canonical names of all registered dialects.
func Names() []Name {
	return []Name{NameMySQL, NameSQLServer, NamePostgres, NameSQLite, NameClickHouse}
}

type quoted struct {
	name     Name
	open     string
	close    string
	hint     string
	numbered bool
}

func (q *quoted) Name() Name { return q.name }

func (q *quoted) Quote(id string) string {
	return utils.QuoteIdentifier(id, q.open, q.close)
}

func (q *quoted) PostTableHint() string { return q.hint }

func (q *quoted) Placeholder(n int) string {
	if q.numbered {
		return fmt.Sprintf("$%d", n)
	}

	return consts.PlaceHolder
}

func (q *quoted) String() string { return string(q.name) }
