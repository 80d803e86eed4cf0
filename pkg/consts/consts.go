package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// PlaceHolder is the positional parameter marker emitted for bound values
	PlaceHolder = "?"

	// DefaultShardSeparator joins a logical table name and its shard id (orders + _ + 3)
	DefaultShardSeparator = "_"

	// DefaultDialect is used when a logical database does not name one
	DefaultDialect = "mysql"

	// DefaultInMode is used when a logical database does not name an IN rendering mode
	DefaultInMode = "list"

	// DefaultConfigFile is the configuration file looked up by the CLI
	DefaultConfigFile = "dalsql.yaml"

	// ConfigEnvVar overrides the configuration file location
	ConfigEnvVar = "DALSQL_CONFIG"
)
