package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aksdeck/aksdeck/internal/config"
)

func TestInit_WritesStarterConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aksdeck.yaml")

	require.NoError(t, Init(context.Background(), path, false))

	data, err := os.ReadFile(path) //nolint:gosec // G304: test file path is safe
	require.NoError(t, err)
	assert.Contains(t, string(data), "group:")
	assert.Contains(t, string(data), "registry:")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestInit_StarterConfigLoads(t *testing.T) {
	t.Setenv("AZURE_SUBSCRIPTION_ID", "00000000-0000-0000-0000-000000000000")

	path := filepath.Join(t.TempDir(), "aksdeck.yaml")
	require.NoError(t, Init(context.Background(), path, false))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err, "the generated scaffold must be loadable as-is")
	assert.Equal(t, "my-deployment-rg", cfg.Group.Name)
	assert.Equal(t, "eastus", cfg.Group.Location)
	assert.Equal(t, "mydeploymentacr", cfg.Registry.Name)
	assert.Equal(t, config.DefaultRole, cfg.Registry.Role)
}

func TestInit_RefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aksdeck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("existing"), 0o600))

	err := Init(context.Background(), path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(path) //nolint:gosec // G304: test file path is safe
	require.NoError(t, err)
	assert.Equal(t, "existing", string(data))
}

func TestInit_ForceOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aksdeck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("existing"), 0o600))

	require.NoError(t, Init(context.Background(), path, true))

	data, err := os.ReadFile(path) //nolint:gosec // G304: test file path is safe
	require.NoError(t, err)
	assert.Contains(t, string(data), "group:")
}

func TestInit_WriteError(t *testing.T) {
	saveAndRestoreFactories(t)
	writeFile = func(_ string, _ []byte, _ os.FileMode) error {
		return errors.New("disk full")
	}

	err := Init(context.Background(), filepath.Join(t.TempDir(), "aksdeck.yaml"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config file")
}
