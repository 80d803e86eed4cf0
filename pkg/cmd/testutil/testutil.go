// Package testutil holds helpers for testing CLI commands.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pseudomuto/dalsql/pkg/config"
	"github.com/pseudomuto/dalsql/pkg/consts"
	"github.com/stretchr/testify/require"
)

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), consts.ModeDir))
	require.NoError(t, os.WriteFile(path, []byte(content), consts.ModeFile))
	return path
}

// LoadConfig parses a YAML configuration.
func LoadConfig(t *testing.T, yaml string) *config.Config {
	t.Helper()

	cfg, err := config.LoadConfig(strings.NewReader(yaml))
	require.NoError(t, err)
	return cfg
}
