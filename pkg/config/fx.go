package config

import (
	"os"

	"github.com/pseudomuto/dalsql/pkg/consts"
	"go.uber.org/fx"
)

// Path is the configuration file location supplied to the fx graph.
type Path string

var Module = fx.Module("config", fx.Provide(
	// Loads the configuration from the supplied path, falling back to an empty config
	// when the default file doesn't exist. Commands like `render` work without a
	// config as long as the script doesn't shard.
	func(p Path) (*Config, error) {
		path := string(p)
		if path == "" {
			path = consts.DefaultConfigFile
		}

		if _, err := os.Stat(path); os.IsNotExist(err) && path == consts.DefaultConfigFile {
			return &Config{Databases: make(map[string]*Database)}, nil
		}

		return LoadConfigFile(path)
	},
))
