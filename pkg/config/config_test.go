package config_test

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/pseudomuto/dalsql/pkg/config"
	"github.com/pseudomuto/dalsql/pkg/consts"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

//go:embed testdata/dalsql.yaml
var testConfigYAML string

func TestLoadConfig(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		config, err := LoadConfig(strings.NewReader(testConfigYAML))
		require.NoError(t, err)
		validateTestConfig(t, config)
	})

	t.Run("error", func(t *testing.T) {
		// Invalid YAML
		config, err := LoadConfig(strings.NewReader("invalid: yaml: ["))
		require.Error(t, err)
		require.Nil(t, config)
		require.Contains(t, err.Error(), "failed to unmarshal config")

		// Empty input
		config, err = LoadConfig(strings.NewReader(""))
		require.Error(t, err)
		require.Nil(t, config)
		require.Contains(t, err.Error(), "failed to unmarshal config")

		// Valid YAML with no databases
		config, err = LoadConfig(strings.NewReader("other_key: value"))
		require.NoError(t, err)
		require.NotNil(t, config)
		require.Empty(t, config.Databases)
	})
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		err  string
	}{
		{
			name: "unknown dialect",
			yaml: "databases:\n  a:\n    dialect: oracle\n",
			err:  `invalid database: a: unknown dialect: "oracle"`,
		},
		{
			name: "unknown in mode",
			yaml: "databases:\n  a:\n    in_mode: spread\n",
			err:  `invalid database: a: unknown IN mode: "spread"`,
		},
		{
			name: "negative shards",
			yaml: "databases:\n  a:\n    tables:\n      T:\n        shards: -1\n",
			err:  "invalid database: a: table T: shards can not be negative",
		},
		{
			name: "empty table",
			yaml: "databases:\n  a:\n    tables:\n      T:\n",
			err:  "invalid database: a: table T has no settings",
		},
		{
			name: "unknown default database",
			yaml: "default_database: b\ndatabases:\n  a:\n    dialect: mysql\n",
			err:  "default database is not configured: b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfig(strings.NewReader(tt.yaml))
			require.EqualError(t, err, tt.err)
			require.Nil(t, config)
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dalsql.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), consts.ModeFile))

		config, err := LoadConfigFile(path)
		require.NoError(t, err)
		validateTestConfig(t, config)
	})

	t.Run("error", func(t *testing.T) {
		config, err := LoadConfigFile("nonexistent.yaml")
		require.Error(t, err)
		require.Nil(t, config)
		require.Contains(t, err.Error(), "failed to open file")

		// Directory instead of file
		config, err = LoadConfigFile(t.TempDir())
		require.Error(t, err)
		require.Nil(t, config)
		require.True(t, strings.Contains(err.Error(), "failed to open file") ||
			strings.Contains(err.Error(), "failed to unmarshal config"))
	})
}

func TestModule(t *testing.T) {
	t.Run("loads the supplied path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), consts.ModeFile))

		var config *Config
		app := fx.New(
			fx.NopLogger,
			fx.Supply(Path(path)),
			Module,
			fx.Populate(&config),
		)
		require.NoError(t, app.Err())
		validateTestConfig(t, config)
	})

	t.Run("missing default file yields an empty config", func(t *testing.T) {
		t.Chdir(t.TempDir())

		var config *Config
		app := fx.New(fx.NopLogger, fx.Supply(Path("")), Module, fx.Populate(&config))
		require.NoError(t, app.Err())
		require.NotNil(t, config)
		require.Empty(t, config.Databases)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		app := fx.New(fx.NopLogger, fx.Supply(Path("does-not-exist.yaml")), Module, fx.Invoke(func(*Config) {}))
		require.Error(t, app.Err())
		require.Contains(t, app.Err().Error(), "failed to open file")
	})
}

// validateTestConfig validates that a config contains the expected test data
func validateTestConfig(t *testing.T, config *Config) {
	t.Helper()
	require.NotNil(t, config)
	require.Equal(t, "orders", config.DefaultDatabase)
	require.Equal(t, []string{"local", "orders", "reporting"}, config.DatabaseNames())

	orders := config.Databases["orders"]
	require.Equal(t, "sqlserver", orders.Dialect)
	require.Equal(t, consts.DefaultShardSeparator, orders.ShardSeparator)
	require.Equal(t, consts.DefaultInMode, orders.InMode)
	require.Equal(t, &Table{Shards: 4, Column: "user_id"}, orders.Tables["Orders"])
	require.True(t, orders.Tables["Orders"].Sharded())
	require.False(t, orders.Tables["Audit"].Sharded())
	require.False(t, orders.Tables["Missing"].Sharded())

	reporting := config.Databases["reporting"]
	require.Equal(t, "mysql", reporting.Dialect)
	require.Equal(t, "__", reporting.ShardSeparator)
	require.Equal(t, "expanded", reporting.InMode)

	local := config.Databases["local"]
	require.Equal(t, consts.DefaultDialect, local.Dialect)
	require.Empty(t, local.Tables)
}
