package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aksdeck/aksdeck/internal/provisioning"
	"github.com/aksdeck/aksdeck/internal/provisioning/cluster"
	"github.com/aksdeck/aksdeck/internal/provisioning/group"
	"github.com/aksdeck/aksdeck/internal/provisioning/registry"
	"github.com/aksdeck/aksdeck/internal/statestore"
)

// Outputs prints the outputs of the last successful apply.
//
// It re-projects the outputs from the stored unit records without any
// remote calls. A deployment that has not fully converged has no outputs;
// the command fails rather than print a partial set.
func Outputs(_ context.Context, configPath string, asJSON bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	store, err := newStateStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize state backend: %w", err)
	}

	state, err := restoreState(store)
	if err != nil {
		return err
	}

	outputs, err := provisioning.ProjectOutputs(state)
	if err != nil {
		return fmt.Errorf("%w (run 'aksdeck apply' first)", err)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(outputs)
	}

	printOutputs(outputs)
	return nil
}

// restoreState rebuilds the provisioning state from stored unit records.
func restoreState(store statestore.Store) (*provisioning.State, error) {
	state := provisioning.NewState()

	if rec, err := store.Get(group.UnitID); err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	} else if rec != nil {
		var result provisioning.GroupResult
		if err := json.Unmarshal(rec.Result, &result); err != nil {
			return nil, fmt.Errorf("failed to decode stored group result: %w", err)
		}
		state.Group = &result
	}

	if rec, err := store.Get(cluster.UnitID); err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	} else if rec != nil {
		var result provisioning.ClusterResult
		if err := json.Unmarshal(rec.Result, &result); err != nil {
			return nil, fmt.Errorf("failed to decode stored cluster result: %w", err)
		}
		state.Cluster = &result
	}

	if rec, err := store.Get(registry.UnitID); err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	} else if rec != nil {
		var result provisioning.RegistryResult
		if err := json.Unmarshal(rec.Result, &result); err != nil {
			return nil, fmt.Errorf("failed to decode stored registry result: %w", err)
		}
		state.Registry = &result
	}

	return state, nil
}
