package clause

import (
	"github.com/pseudomuto/dalsql/pkg/dialect"
	"github.com/pseudomuto/dalsql/pkg/params"
	"github.com/pseudomuto/dalsql/pkg/shard"
	"github.com/pseudomuto/dalsql/pkg/sqlerr"
)

// Context is the assembly state shared by every clause of one statement.
type Context struct {
	Dialect dialect.Dialect
	LogicDB string
	Hints   shard.Hints
	Catalog shard.Catalog
	Params  *params.Parameters
	InMode  params.InMode
}

// NewContext returns a MySQL context with an empty parameter store and list IN binding.
func NewContext() *Context {
	return &Context{
		Dialect: dialect.MySQL,
		Params:  params.New(),
		InMode:  params.InList,
	}
}

// Attach prepares c for the statement. Column expressions record their bound values
// in the parameter store here and appending the same expression twice is a usage
// error. Tables require the logical database to be known.
func (ctx *Context) Attach(c Clause) error {
	switch v := c.(type) {
	case *ColumnExpression:
		return v.attach(ctx)
	case *Table:
		if ctx.LogicDB == "" {
			return sqlerr.Usage("Append", v.name, "a logical database name is required to append tables")
		}
	}

	return nil
}

// Route returns the routing information the sharding policy consults when no shard
// was chosen explicitly.
func (ctx *Context) Route() shard.Route {
	return shard.Route{
		Hints:  ctx.Hints,
		Params: ctx.Params.Build(),
	}
}
