// Package shard resolves logical tables to physical shards.
//
// The Policy interface answers three questions for the renderer: is a table sharded,
// which shard does a statement target and what suffix does a shard id translate to.
// Catalog extends it with the per-database dialect and IN binding mode so a builder can
// be configured from a logical database name alone.
//
// Static is the configuration-driven implementation. A sharded table names a routing
// column and a shard count; the routing value picks the shard:
//
//	databases:
//	  orders:
//	    dialect: sqlserver
//	    tables:
//	      Orders:
//	        shards: 4
//	        column: user_id
//
// With this configuration a statement carrying user_id = 6 targets Orders_2. Integer
// values (and strings holding integers) are taken modulo the shard count, any other
// value is hashed with xxhash first.
//
// A Route is checked in order: an explicit hint shard id, a hint shard value, a hint
// value for the routing column, and finally the first valid bound parameter named
// like the routing column.
package shard
