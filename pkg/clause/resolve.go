package clause

import (
	"strings"

	"github.com/pseudomuto/dalsql/pkg/dialect"
	"github.com/pseudomuto/dalsql/pkg/shard"
	"github.com/pseudomuto/dalsql/pkg/sqlerr"
)

// Column is a column reference quoted for the dialect at render time.
type Column struct {
	name  string
	alias string
}

// Col returns a column reference.
func Col(name string) *Column {
	return &Column{name: name}
}

// As sets the column alias.
func (c *Column) As(alias string) *Column {
	c.alias = alias
	return c
}

// Render implements Clause.
func (c *Column) Render(ctx *Context) (string, error) {
	return withAlias(wrapField(ctx.Dialect, c.name), c.alias), nil
}

func (*Column) clause() {}

// Table is a logical table resolved to its physical shard at render time.
//
// Resolution order:
//
//  1. sharding disabled for the table: the logical name
//  2. an explicit shard id (InShard): name + suffix
//  3. a shard value (ShardValue): the policy locates the shard for the value
//  4. otherwise the policy locates the shard from the context hints and the valid
//     bound parameters
type Table struct {
	name       string
	alias      string
	shardID    string
	shardValue any
}

// Tbl returns a logical table reference.
func Tbl(name string) *Table {
	return &Table{name: name}
}

// As sets the table alias.
func (t *Table) As(alias string) *Table {
	t.alias = alias
	return t
}

// InShard targets the given shard id directly.
func (t *Table) InShard(id string) *Table {
	t.shardID = id
	return t
}

// ShardValue routes the table as if v were the value of its routing column.
func (t *Table) ShardValue(v any) *Table {
	t.shardValue = v
	return t
}

// Name returns the logical table name.
func (t *Table) Name() string { return t.name }

// Render implements Clause.
func (t *Table) Render(ctx *Context) (string, error) {
	if ctx.LogicDB == "" {
		return "", sqlerr.Usage("Table", t.name, "a logical database name is required to resolve tables")
	}

	name, err := t.physicalName(ctx)
	if err != nil {
		return "", err
	}

	return withAlias(wrapField(ctx.Dialect, name), t.alias), nil
}

func (*Table) clause() {}

func (t *Table) physicalName(ctx *Context) (string, error) {
	if ctx.Catalog == nil {
		return t.name, nil
	}

	enabled, err := ctx.Catalog.ShardingEnabled(ctx.LogicDB, t.name)
	if err != nil || !enabled {
		return t.name, err
	}

	id := t.shardID
	if id == "" {
		route := ctx.Route()
		if t.shardValue != nil {
			route = shard.ValueRoute(t.shardValue)
		}

		if id, err = ctx.Catalog.ShardID(ctx.LogicDB, t.name, route); err != nil {
			return "", err
		}
	}

	suffix, err := ctx.Catalog.ShardSuffix(ctx.LogicDB, id)
	if err != nil {
		return "", err
	}

	return t.name + suffix, nil
}

// hint renders the dialect's post-table hint.
type hint struct{}

// PostTableHint renders the dialect's post-table hint, WITH (NOLOCK) on SQL Server
// and nothing elsewhere.
var PostTableHint Clause = hint{}

func (hint) Render(ctx *Context) (string, error) { return ctx.Dialect.PostTableHint(), nil }
func (hint) clause()                             {}

// wrapField quotes name unless it is *, a ROW_NUMBER expression or a list.
func wrapField(d dialect.Dialect, name string) string {
	if name == "*" || strings.Contains(strings.ToUpper(name), "ROW_NUMBER") || strings.Contains(name, ",") {
		return name
	}

	return d.Quote(name)
}

func withAlias(s, alias string) string {
	if alias == "" {
		return s
	}

	return s + " AS " + alias
}
