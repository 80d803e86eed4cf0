package shard

import (
	"github.com/pseudomuto/dalsql/pkg/dialect"
	"github.com/pseudomuto/dalsql/pkg/params"
)

type (
	// Hints carries caller supplied routing information for a statement.
	Hints struct {
		// ShardID targets a shard directly
		ShardID string

		// ShardValue is routed as if it were the value of the routing column
		ShardValue any

		// ColumnValues maps column names to routing values
		ColumnValues map[string]any
	}

	// Route is everything a Policy may consult to locate a shard.
	Route struct {
		Hints  Hints
		Params []*params.Parameter
	}

	// Policy decides table sharding for a logical database.
	Policy interface {
		// ShardingEnabled reports whether the logical table is split into shards.
		ShardingEnabled(db, table string) (bool, error)

		// ShardID locates the shard a statement targets.
		ShardID(db, table string, route Route) (string, error)

		// ShardSuffix returns the text appended to the logical table name for id.
		ShardSuffix(db, id string) (string, error)
	}

	// Catalog is a Policy that also knows each logical database's dialect and IN
	// binding mode.
	Catalog interface {
		Policy

		Dialect(db string) (dialect.Dialect, error)
		InMode(db string) (params.InMode, error)
	}
)

// ValueRoute is a Route targeting the shard selected by v.
func ValueRoute(v any) Route {
	return Route{Hints: Hints{ShardValue: v}}
}
