package handlers

import (
	"context"
	"fmt"
	"log"
)

// Destroy deletes the deployment's resource group and clears the run state.
//
// Deleting the group removes everything inside it, including the cluster's
// node resource group and the registry's role assignments, so no per-resource
// teardown order is needed. The state lock is held for the duration so a
// concurrent apply cannot race the deletion.
func Destroy(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log.Printf("Destroying deployment: group=%s", cfg.Group.Name)

	cloud, err := newCloudClient(cfg.SubscriptionID)
	if err != nil {
		return fmt.Errorf("failed to initialize Azure client: %w", err)
	}

	store, err := newStateStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize state backend: %w", err)
	}

	if err := store.Lock(ctx); err != nil {
		return fmt.Errorf("failed to lock state: %w", err)
	}
	defer func() {
		if err := store.Unlock(); err != nil {
			log.Printf("warning: failed to release state lock: %v", err)
		}
	}()

	existing, err := cloud.GetGroup(ctx, cfg.Group.Name)
	if err != nil {
		return fmt.Errorf("failed to look up resource group: %w", err)
	}
	if existing == nil {
		log.Printf("Resource group %s does not exist, clearing state only", cfg.Group.Name)
	} else {
		if err := cloud.DeleteGroup(ctx, cfg.Group.Name); err != nil {
			return fmt.Errorf("failed to delete resource group: %w", err)
		}
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}

	log.Printf("Deployment %s destroyed", cfg.Group.Name)
	return nil
}
