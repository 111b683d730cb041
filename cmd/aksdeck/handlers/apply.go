// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aksdeck/aksdeck/internal/config"
	"github.com/aksdeck/aksdeck/internal/platform/azure"
	"github.com/aksdeck/aksdeck/internal/provisioning"
	"github.com/aksdeck/aksdeck/internal/provisioning/cluster"
	"github.com/aksdeck/aksdeck/internal/provisioning/group"
	"github.com/aksdeck/aksdeck/internal/provisioning/registry"
	"github.com/aksdeck/aksdeck/internal/statestore"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newCloudClient creates the Azure resource manager client.
	newCloudClient = func(subscriptionID string) (azure.ResourceManager, error) {
		return azure.NewRealClient(subscriptionID)
	}

	// newStateStore creates the state backend selected by the config.
	newStateStore = func(cfg *config.Config) (statestore.Store, error) {
		switch cfg.State.Backend {
		case config.StateBackendS3:
			return statestore.NewS3Store(
				cfg.State.S3.Endpoint,
				cfg.State.S3.Region,
				cfg.State.S3.Bucket,
				cfg.State.S3.Prefix,
				cfg.State.S3.AccessKey,
				cfg.State.S3.SecretKey,
			)
		default:
			return statestore.NewFileStore(cfg.State.Path), nil
		}
	}

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.LoadFile

	// findConfigFile finds the default config file (for testing injection).
	findConfigFile = config.FindConfigFile

	// writeFile writes data to a file (for testing injection).
	writeFile = os.WriteFile
)

// Apply converges the declared deployment.
//
// The workflow:
//  1. Loads and validates the configuration
//  2. Initializes the Azure client using the ambient credential chain
//  3. Builds the unit graph: resource group, cluster, registry
//  4. Runs the graph under the state store's exclusive lock
//  5. Prints the projected outputs on success
//
// Units whose stored result is up to date are restored instead of
// re-submitted, so apply is safe to re-run after a partial failure.
func Apply(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Applying deployment: group=%s cluster=%s registry=%s",
		cfg.Group.Name, cfg.Cluster.Name, cfg.Registry.Name)

	cloud, err := newCloudClient(cfg.SubscriptionID)
	if err != nil {
		return fmt.Errorf("failed to initialize Azure client: %w", err)
	}

	store, err := newStateStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize state backend: %w", err)
	}

	engine, err := provisioning.NewEngine(store,
		group.New(group.FromConfig(cfg)),
		cluster.New(cluster.FromConfig(cfg)),
		registry.New(registry.FromConfig(cfg)),
	)
	if err != nil {
		return err
	}

	pctx := provisioning.NewContext(ctx, cfg, cloud)
	if err := engine.Run(pctx); err != nil {
		return err
	}

	outputs, err := provisioning.ProjectOutputs(pctx.State)
	if err != nil {
		return err
	}

	fmt.Printf("\nDeployment converged.\n\n")
	printOutputs(outputs)
	return nil
}

// loadConfig loads and validates the configuration. If configPath is empty,
// it looks for aksdeck.yaml in the current directory.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w", err)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// printOutputs writes the outputs as key=value lines in display order.
func printOutputs(outputs *provisioning.Outputs) {
	m := outputs.Map()
	for _, key := range provisioning.OutputKeys {
		fmt.Printf("%s=%s\n", key, m[key])
	}
}
