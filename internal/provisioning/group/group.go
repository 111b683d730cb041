// Package group implements the resource group unit: the spatial-grouping
// resource every other unit lives in.
package group

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aksdeck/aksdeck/internal/config"
	"github.com/aksdeck/aksdeck/internal/provisioning"
)

// UnitID identifies the resource group unit in the graph and state store.
const UnitID = "resource-group"

// Descriptor holds the resource group parameters. Immutable once submitted.
type Descriptor struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// FromConfig builds the descriptor from the loaded configuration.
func FromConfig(cfg *config.Config) Descriptor {
	return Descriptor{
		Name:     cfg.Group.Name,
		Location: cfg.Group.Location,
	}
}

// Unit ensures the resource group exists. It has no dependencies and runs in
// the first wave.
type Unit struct {
	desc Descriptor
}

var _ provisioning.Unit = (*Unit)(nil)

// New creates the resource group unit.
func New(desc Descriptor) *Unit {
	return &Unit{desc: desc}
}

// ID implements provisioning.Unit.
func (u *Unit) ID() string { return UnitID }

// DependsOn implements provisioning.Unit.
func (u *Unit) DependsOn() []string { return nil }

// Checksum implements provisioning.Unit.
func (u *Unit) Checksum() string { return provisioning.ChecksumOf(u.desc) }

// Provision ensures the group exists at the declared location. Re-submitting
// an identical descriptor converges on the same group. A name collision with
// a group at a different location is fatal; nothing is auto-resolved.
func (u *Unit) Provision(ctx *provisioning.Context) (json.RawMessage, error) {
	if u.desc.Name == "" {
		return nil, &provisioning.ConfigurationError{Parameter: "group.name", Reason: "must not be empty"}
	}
	if !config.ValidLocations[u.desc.Location] {
		return nil, &provisioning.ConfigurationError{
			Parameter: "group.location",
			Reason:    fmt.Sprintf("%q is not a known location", u.desc.Location),
		}
	}

	existing, err := ctx.Cloud.GetGroup(ctx, u.desc.Name)
	if err != nil {
		return nil, &provisioning.RemoteConvergenceError{Resource: "resource group", Err: err}
	}

	var result *provisioning.GroupResult
	switch {
	case existing != nil && !strings.EqualFold(existing.Location, u.desc.Location):
		return nil, &provisioning.NameCollisionError{
			Resource: "resource group",
			Name:     u.desc.Name,
			Reason:   fmt.Sprintf("exists in %s, declared location is %s", existing.Location, u.desc.Location),
		}
	case existing != nil:
		provisioning.LogResourceExists(ctx.Observer, UnitID, "resource group", existing.Name, existing.ID)
		result = &provisioning.GroupResult{Name: existing.Name, ID: existing.ID}
	default:
		provisioning.LogResourceCreating(ctx.Observer, UnitID, "resource group", u.desc.Name)
		created, err := ctx.Cloud.EnsureGroup(ctx, u.desc.Name, u.desc.Location)
		if err != nil {
			return nil, &provisioning.RemoteConvergenceError{Resource: "resource group", Err: err}
		}
		provisioning.LogResourceCreated(ctx.Observer, UnitID, "resource group", created.Name, created.ID)
		result = &provisioning.GroupResult{Name: created.Name, ID: created.ID}
	}

	ctx.State.Group = result
	return json.Marshal(result)
}

// Restore implements provisioning.Unit.
func (u *Unit) Restore(ctx *provisioning.Context, data json.RawMessage) error {
	var result provisioning.GroupResult
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("failed to decode stored group result: %w", err)
	}
	ctx.State.Group = &result
	return nil
}
