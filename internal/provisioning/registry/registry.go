// Package registry implements the container registry unit.
//
// The unit has two sub-steps with different inputs: ensuring the registry
// needs only the resource group result, while the pull role grant also needs
// the cluster's kubelet identity. Both dependencies are declared at the
// graph level; inside the unit the grant re-checks its own finer-grained
// precondition so a cluster without a managed identity fails loudly before
// any grant call is attempted.
package registry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/aksdeck/aksdeck/internal/config"
	"github.com/aksdeck/aksdeck/internal/platform/azure"
	"github.com/aksdeck/aksdeck/internal/provisioning"
	"github.com/aksdeck/aksdeck/internal/provisioning/cluster"
	"github.com/aksdeck/aksdeck/internal/provisioning/group"
	"github.com/aksdeck/aksdeck/internal/retry"
)

// UnitID identifies the registry unit in the graph and state store.
const UnitID = "registry"

// Grant retry tuning. A freshly created kubelet identity takes a while to
// replicate to the authorization service.
const (
	grantMaxRetries   = 6
	grantInitialDelay = 5 * time.Second
	grantMaxDelay     = 60 * time.Second
)

// Descriptor holds the registry and role grant parameters. Immutable once
// submitted.
type Descriptor struct {
	Name          string `json:"name"`
	ResourceGroup string `json:"resource_group"`
	Location      string `json:"location"`
	SKU           string `json:"sku"`
	AdminEnabled  bool   `json:"admin_enabled"`
	Role          string `json:"role"`
	SkipAADCheck  bool   `json:"skip_aad_check"`
}

// FromConfig builds the descriptor from the loaded configuration.
func FromConfig(cfg *config.Config) Descriptor {
	return Descriptor{
		Name:          cfg.Registry.Name,
		ResourceGroup: cfg.Group.Name,
		Location:      cfg.Registry.Location,
		SKU:           cfg.Registry.SKU,
		AdminEnabled:  cfg.Registry.AdminEnabled,
		Role:          cfg.Registry.Role,
		SkipAADCheck:  cfg.Registry.SkipAADCheck,
	}
}

// Unit ensures the registry exists and the cluster's kubelet identity can
// pull from it.
type Unit struct {
	desc Descriptor
}

var _ provisioning.Unit = (*Unit)(nil)

// New creates the registry unit.
func New(desc Descriptor) *Unit {
	return &Unit{desc: desc}
}

// ID implements provisioning.Unit.
func (u *Unit) ID() string { return UnitID }

// DependsOn implements provisioning.Unit.
func (u *Unit) DependsOn() []string { return []string{group.UnitID, cluster.UnitID} }

// Checksum implements provisioning.Unit.
func (u *Unit) Checksum() string { return provisioning.ChecksumOf(u.desc) }

// Provision runs both sub-steps in order: registry, then role grant.
func (u *Unit) Provision(ctx *provisioning.Context) (json.RawMessage, error) {
	groupResult := ctx.State.Group
	if groupResult == nil {
		return nil, &provisioning.DependencyNotReadyError{Unit: UnitID, Missing: "resource group result"}
	}
	if groupResult.Name != u.desc.ResourceGroup {
		return nil, &provisioning.ConfigurationError{
			Parameter: "registry.resource_group",
			Reason:    fmt.Sprintf("declared group %q does not match provisioned group %q", u.desc.ResourceGroup, groupResult.Name),
		}
	}

	result, err := u.ensureRegistry(ctx)
	if err != nil {
		return nil, err
	}

	if err := u.ensureGrant(ctx, result); err != nil {
		return nil, err
	}

	ctx.State.Registry = result
	return json.Marshal(result)
}

// ensureRegistry is sub-step (a). It consumes only the resource group
// result.
func (u *Unit) ensureRegistry(ctx *provisioning.Context) (*provisioning.RegistryResult, error) {
	provisioning.LogResourceCreating(ctx.Observer, UnitID, "container registry", u.desc.Name)

	created, err := ctx.Cloud.EnsureRegistry(ctx, azure.RegistrySpec{
		Name:          u.desc.Name,
		ResourceGroup: u.desc.ResourceGroup,
		Location:      u.desc.Location,
		SKU:           u.desc.SKU,
		AdminEnabled:  u.desc.AdminEnabled,
	})
	if err != nil {
		return nil, &provisioning.RemoteConvergenceError{Resource: "container registry", Err: err}
	}

	provisioning.LogResourceCreated(ctx.Observer, UnitID, "container registry", u.desc.Name, created.ID)

	return &provisioning.RegistryResult{
		ID:          created.ID,
		LoginServer: created.LoginServer,
	}, nil
}

// ensureGrant is sub-step (b). It additionally consumes the cluster's
// kubelet identity; an absent identity is a dependency failure checked
// before any remote call.
func (u *Unit) ensureGrant(ctx *provisioning.Context, registry *provisioning.RegistryResult) error {
	clusterResult := ctx.State.Cluster
	if clusterResult == nil {
		return &provisioning.DependencyNotReadyError{Unit: UnitID, Missing: "cluster result"}
	}
	if clusterResult.KubeletIdentityObjectID == "" {
		return &provisioning.DependencyNotReadyError{Unit: UnitID, Missing: "cluster kubelet identity object id"}
	}

	grant := azure.RoleGrant{
		Scope:        registry.ID,
		RoleName:     u.desc.Role,
		PrincipalID:  clusterResult.KubeletIdentityObjectID,
		SkipAADCheck: u.desc.SkipAADCheck,
	}

	err := retry.WithExponentialBackoff(ctx, func() error {
		return ctx.Cloud.EnsureRoleGrant(ctx, grant)
	},
		retry.WithMaxRetries(grantMaxRetries),
		retry.WithInitialDelay(grantInitialDelay),
		retry.WithMaxDelay(grantMaxDelay),
		retry.WithRetryableCheck(azure.IsPrincipalNotFound),
	)
	if err != nil {
		return &provisioning.RemoteConvergenceError{Resource: "registry role grant", Err: err}
	}

	provisioning.LogGrantEnsured(ctx.Observer, UnitID, u.desc.Role, grant.PrincipalID)
	return nil
}

// Restore implements provisioning.Unit.
func (u *Unit) Restore(ctx *provisioning.Context, data json.RawMessage) error {
	var result provisioning.RegistryResult
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("failed to decode stored registry result: %w", err)
	}
	ctx.State.Registry = &result
	return nil
}
