package shard

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pseudomuto/dalsql/pkg/config"
	"github.com/pseudomuto/dalsql/pkg/dialect"
	"github.com/pseudomuto/dalsql/pkg/params"
	"github.com/pseudomuto/dalsql/pkg/sqlerr"
	"github.com/pseudomuto/dalsql/pkg/utils"
)

// Static is a Catalog backed by a config.Config.
type Static struct {
	cfg *config.Config
}

// NewStatic returns a Catalog for the given configuration. A nil configuration knows
// no databases.
func NewStatic(cfg *config.Config) *Static {
	if cfg == nil {
		cfg = &config.Config{}
	}

	return &Static{cfg: cfg}
}

// Dialect implements Catalog.
func (s *Static) Dialect(db string) (dialect.Dialect, error) {
	d, err := s.database("Dialect", db)
	if err != nil {
		return nil, err
	}

	out, err := dialect.Lookup(d.Dialect)
	return out, sqlerr.WrapConfiguration(err, "Dialect", db)
}

// InMode implements Catalog.
func (s *Static) InMode(db string) (params.InMode, error) {
	d, err := s.database("InMode", db)
	if err != nil {
		return "", err
	}

	mode, err := params.ParseInMode(d.InMode)
	return mode, sqlerr.WrapConfiguration(err, "InMode", db)
}

// ShardingEnabled implements Policy.
func (s *Static) ShardingEnabled(db, table string) (bool, error) {
	d, err := s.database("ShardingEnabled", db)
	if err != nil {
		return false, err
	}

	return d.Tables[table].Sharded(), nil
}

// ShardID implements Policy.
func (s *Static) ShardID(db, table string, route Route) (string, error) {
	d, err := s.database("ShardID", db)
	if err != nil {
		return "", err
	}

	t := d.Tables[table]
	if !t.Sharded() {
		return "", sqlerr.Configuration("ShardID", table, "table is not sharded in %s", db)
	}

	if route.Hints.ShardID != "" {
		return route.Hints.ShardID, nil
	}

	if route.Hints.ShardValue != nil {
		return locate(route.Hints.ShardValue, t.Shards), nil
	}

	if t.Column == "" {
		return "", sqlerr.Configuration("ShardID", table, "no routing column configured and no shard hint given")
	}

	if v, ok := route.Hints.ColumnValues[t.Column]; ok && !utils.IsNil(v) {
		return locate(v, t.Shards), nil
	}

	for _, p := range route.Params {
		if p.Valid() && !p.InParam && strings.EqualFold(p.Name, t.Column) && !utils.IsNil(p.Value) {
			return locate(p.Value, t.Shards), nil
		}
	}

	return "", sqlerr.Configuration("ShardID", table, "can not locate shard: no value for routing column %s", t.Column)
}

// ShardSuffix implements Policy.
func (s *Static) ShardSuffix(db, id string) (string, error) {
	d, err := s.database("ShardSuffix", db)
	if err != nil {
		return "", err
	}

	return d.ShardSeparator + id, nil
}

func (s *Static) database(op, db string) (*config.Database, error) {
	if d, ok := s.cfg.Databases[db]; ok && d != nil {
		return d, nil
	}

	return nil, sqlerr.Configuration(op, db, "unknown logical database")
}

// locate maps a routing value onto [0, shards).
func locate(v any, shards int) string {
	v = deref(v)
	if n, ok := asInt(v); ok {
		return strconv.FormatUint(n%uint64(shards), 10)
	}

	return strconv.FormatUint(xxhash.Sum64String(fmt.Sprint(v))%uint64(shards), 10)
}

func asInt(v any) (uint64, bool) {
	switch n := v.(type) {
	case int:
		return uint64(abs(int64(n))), true
	case int8:
		return uint64(abs(int64(n))), true
	case int16:
		return uint64(abs(int64(n))), true
	case int32:
		return uint64(abs(int64(n))), true
	case int64:
		return uint64(abs(n)), true
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case string:
		if utils.IsIntegerValue(n) {
			i, _ := strconv.ParseInt(n, 10, 64)
			return uint64(abs(i)), true
		}
	}

	return 0, false
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return v
	}

	for rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}

	return rv.Interface()
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
