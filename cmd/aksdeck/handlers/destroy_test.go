package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aksdeck/aksdeck/internal/config"
	"github.com/aksdeck/aksdeck/internal/platform/azure"
	"github.com/aksdeck/aksdeck/internal/provisioning/group"
)

func TestDestroy_DeletesGroupAndClearsState(t *testing.T) {
	mock, store := injectTestStack(t)

	// Converge first so there is something to tear down.
	require.NoError(t, Apply(context.Background(), "aksdeck.yaml"))
	mock.Calls = nil

	require.NoError(t, Destroy(context.Background(), "aksdeck.yaml"))
	assert.Equal(t, []string{"GetGroup", "DeleteGroup"}, mock.Calls)

	rec, err := store.Get(group.UnitID)
	require.NoError(t, err)
	assert.Nil(t, rec)

	// The lock is released after the run.
	require.NoError(t, store.Lock(context.Background()))
	require.NoError(t, store.Unlock())
}

func TestDestroy_MissingGroupOnlyClearsState(t *testing.T) {
	mock, _ := injectTestStack(t)

	require.NoError(t, Destroy(context.Background(), "aksdeck.yaml"))
	assert.Equal(t, []string{"GetGroup"}, mock.Calls)
}

func TestDestroy_LookupError(t *testing.T) {
	mock, _ := injectTestStack(t)
	mock.GetGroupErr = errors.New("throttled")

	err := Destroy(context.Background(), "aksdeck.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to look up resource group")
}

func TestDestroy_LockHeld(t *testing.T) {
	_, store := injectTestStack(t)
	require.NoError(t, store.Lock(context.Background()))
	defer func() { _ = store.Unlock() }()

	err := Destroy(context.Background(), "aksdeck.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to lock state")
}

func TestDestroy_ConfigLoadError(t *testing.T) {
	saveAndRestoreFactories(t)
	loadConfigFile = func(_ string) (*config.Config, error) {
		return nil, errors.New("file not found")
	}

	err := Destroy(context.Background(), "missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestDestroy_CloudClientError(t *testing.T) {
	saveAndRestoreFactories(t)
	loadConfigFile = func(_ string) (*config.Config, error) { return testConfig(t.TempDir()), nil }
	newCloudClient = func(_ string) (azure.ResourceManager, error) {
		return nil, errors.New("no credentials available")
	}

	err := Destroy(context.Background(), "aksdeck.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize Azure client")
}
