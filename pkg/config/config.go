package config

import (
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/pseudomuto/dalsql/pkg/consts"
	"github.com/pseudomuto/dalsql/pkg/dialect"
	"github.com/pseudomuto/dalsql/pkg/params"
	"gopkg.in/yaml.v3"
)

type (
	// Table describes how a logical table is split into physical shards.
	Table struct {
		// Shards is the number of physical tables. Zero or one disables sharding.
		Shards int `yaml:"shards"`

		// Column names the routing column whose value selects the shard
		Column string `yaml:"column,omitempty"`
	}

	// Database describes a logical database: the dialect its statements are rendered
	// in and the tables that are sharded.
	Database struct {
		// Dialect is one of mysql, sqlserver, postgres, sqlite or clickhouse
		Dialect string `yaml:"dialect"`

		// ShardSeparator joins a table name and a shard id, T + "_" + 1 = T_1
		ShardSeparator string `yaml:"shard_separator,omitempty"`

		// InMode selects how IN lists are bound: list or expanded
		InMode string `yaml:"in_mode,omitempty"`

		// Tables holds the sharded tables keyed by logical name. Tables that are not
		// listed are never sharded.
		Tables map[string]*Table `yaml:"tables,omitempty"`
	}

	// Config represents the dalsql configuration: the logical databases statements
	// can be assembled against.
	Config struct {
		// DefaultDatabase is used when a statement does not name a logical database
		DefaultDatabase string `yaml:"default_database,omitempty"`

		// Databases holds every logical database keyed by name
		Databases map[string]*Database `yaml:"databases"`
	}
)

// LoadConfig parses a configuration from the provided io.Reader.
//
// The function expects YAML-formatted data describing logical databases. Missing
// dialects default to consts.DefaultDialect, missing shard separators to
// consts.DefaultShardSeparator and missing IN modes to consts.DefaultInMode. Every
// database is validated after defaults are applied.
//
// Example:
//
//	yamlData := `
//	default_database: orders
//	databases:
//	  orders:
//	    dialect: sqlserver
//	    tables:
//	      Orders:
//	        shards: 4
//	        column: user_id
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Println(cfg.Databases["orders"].Tables["Orders"].Shards) // 4
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if cfg.Databases == nil {
		cfg.Databases = make(map[string]*Database)
	}

	for name, db := range cfg.Databases {
		if db == nil {
			db = &Database{}
			cfg.Databases[name] = db
		}

		if db.Dialect == "" {
			db.Dialect = consts.DefaultDialect
		}
		if db.ShardSeparator == "" {
			db.ShardSeparator = consts.DefaultShardSeparator
		}
		if db.InMode == "" {
			db.InMode = consts.DefaultInMode
		}

		if err := db.validate(); err != nil {
			return nil, errors.Wrapf(err, "invalid database: %s", name)
		}
	}

	if cfg.DefaultDatabase != "" {
		if _, ok := cfg.Databases[cfg.DefaultDatabase]; !ok {
			return nil, errors.Errorf("default database is not configured: %s", cfg.DefaultDatabase)
		}
	}

	return &cfg, nil
}

// LoadConfigFile loads a configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
//
// Example:
//
//	cfg, err := config.LoadConfigFile("dalsql.yaml")
//	if err != nil {
//		log.Fatal("Failed to load config:", err)
//	}
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// DatabaseNames returns the configured logical database names in sorted order.
func (c *Config) DatabaseNames() []string {
	names := make([]string, 0, len(c.Databases))
	for name := range c.Databases {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Sharded reports whether the table is split into more than one shard.
func (t *Table) Sharded() bool {
	return t != nil && t.Shards > 1
}

func (db *Database) validate() error {
	if _, err := dialect.Lookup(db.Dialect); err != nil {
		return err
	}

	if _, err := params.ParseInMode(db.InMode); err != nil {
		return err
	}

	for name, t := range db.Tables {
		if t == nil {
			return errors.Errorf("table %s has no settings", name)
		}
		if t.Shards < 0 {
			return errors.Errorf("table %s: shards can not be negative", name)
		}
	}

	return nil
}
