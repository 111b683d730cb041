package provisioning

import (
	"context"

	"github.com/aksdeck/aksdeck/internal/config"
	"github.com/aksdeck/aksdeck/internal/platform/azure"
)

// Context wraps all dependencies and state needed by a provisioning unit.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Cloud    azure.ResourceManager
	Observer Observer
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config, cloud azure.ResourceManager) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Cloud:    cloud,
		Observer: NewConsoleObserver(),
	}
}
