// Package cluster implements the managed cluster unit.
package cluster

import (
	"encoding/json"
	"fmt"

	"github.com/aksdeck/aksdeck/internal/config"
	"github.com/aksdeck/aksdeck/internal/platform/azure"
	"github.com/aksdeck/aksdeck/internal/provisioning"
	"github.com/aksdeck/aksdeck/internal/provisioning/group"
)

// UnitID identifies the cluster unit in the graph and state store.
const UnitID = "cluster"

// NodePool describes the default node pool. VM size and zones are forwarded
// untouched; an invalid combination is rejected by the control plane.
type NodePool struct {
	Name   string   `json:"name"`
	Count  int      `json:"count"`
	VMSize string   `json:"vm_size"`
	Zones  []string `json:"zones,omitempty"`
	Mode   string   `json:"mode"`
}

// Descriptor holds the cluster parameters. Immutable once submitted.
type Descriptor struct {
	Name              string   `json:"name"`
	ResourceGroup     string   `json:"resource_group"`
	Location          string   `json:"location"`
	KubernetesVersion string   `json:"kubernetes_version,omitempty"`
	DNSPrefix         string   `json:"dns_prefix"`
	NodePool          NodePool `json:"node_pool"`
	Identity          string   `json:"identity"`
	LoadBalancerSKU   string   `json:"load_balancer_sku"`
	NetworkPlugin     string   `json:"network_plugin"`
}

// FromConfig builds the descriptor from the loaded configuration.
func FromConfig(cfg *config.Config) Descriptor {
	return Descriptor{
		Name:              cfg.Cluster.Name,
		ResourceGroup:     cfg.Group.Name,
		Location:          cfg.Group.Location,
		KubernetesVersion: cfg.Cluster.KubernetesVersion,
		DNSPrefix:         cfg.Cluster.DNSPrefix,
		NodePool: NodePool{
			Name:   cfg.Cluster.NodePool.Name,
			Count:  cfg.Cluster.NodePool.Count,
			VMSize: cfg.Cluster.NodePool.VMSize,
			Zones:  cfg.Cluster.NodePool.Zones,
			Mode:   cfg.Cluster.NodePool.Mode,
		},
		Identity:        cfg.Cluster.Identity,
		LoadBalancerSKU: cfg.Cluster.LoadBalancerSKU,
		NetworkPlugin:   cfg.Cluster.NetworkPlugin,
	}
}

// Unit ensures the managed cluster exists inside the resource group.
type Unit struct {
	desc Descriptor
}

var _ provisioning.Unit = (*Unit)(nil)

// New creates the cluster unit.
func New(desc Descriptor) *Unit {
	return &Unit{desc: desc}
}

// ID implements provisioning.Unit.
func (u *Unit) ID() string { return UnitID }

// DependsOn implements provisioning.Unit.
func (u *Unit) DependsOn() []string { return []string{group.UnitID} }

// Checksum implements provisioning.Unit.
func (u *Unit) Checksum() string { return provisioning.ChecksumOf(u.desc) }

// Provision ensures the cluster and records its result, including the
// kubelet managed identity when the identity kind produces one.
func (u *Unit) Provision(ctx *provisioning.Context) (json.RawMessage, error) {
	groupResult := ctx.State.Group
	if groupResult == nil {
		return nil, &provisioning.DependencyNotReadyError{Unit: UnitID, Missing: "resource group result"}
	}
	if groupResult.Name != u.desc.ResourceGroup {
		return nil, &provisioning.ConfigurationError{
			Parameter: "cluster.resource_group",
			Reason:    fmt.Sprintf("declared group %q does not match provisioned group %q", u.desc.ResourceGroup, groupResult.Name),
		}
	}

	provisioning.LogResourceCreating(ctx.Observer, UnitID, "managed cluster", u.desc.Name)

	created, err := ctx.Cloud.EnsureCluster(ctx, azure.ClusterSpec{
		Name:              u.desc.Name,
		ResourceGroup:     u.desc.ResourceGroup,
		Location:          u.desc.Location,
		KubernetesVersion: u.desc.KubernetesVersion,
		DNSPrefix:         u.desc.DNSPrefix,
		NodePool: azure.NodePoolSpec{
			Name:   u.desc.NodePool.Name,
			Count:  int32(u.desc.NodePool.Count), // #nosec G115 -- validated >= 1 at load time
			VMSize: u.desc.NodePool.VMSize,
			Zones:  u.desc.NodePool.Zones,
			Mode:   u.desc.NodePool.Mode,
		},
		Identity:        u.desc.Identity,
		LoadBalancerSKU: u.desc.LoadBalancerSKU,
		NetworkPlugin:   u.desc.NetworkPlugin,
	})
	if err != nil {
		return nil, &provisioning.RemoteConvergenceError{Resource: "managed cluster", Err: err}
	}

	provisioning.LogResourceCreated(ctx.Observer, UnitID, "managed cluster", u.desc.Name, created.ID)

	result := &provisioning.ClusterResult{
		ID:                      created.ID,
		FQDN:                    created.FQDN,
		NodeResourceGroup:       created.NodeResourceGroup,
		KubeletIdentityObjectID: created.KubeletIdentityObjectID,
	}
	ctx.State.Cluster = result
	return json.Marshal(result)
}

// Restore implements provisioning.Unit.
func (u *Unit) Restore(ctx *provisioning.Context, data json.RawMessage) error {
	var result provisioning.ClusterResult
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("failed to decode stored cluster result: %w", err)
	}
	ctx.State.Cluster = &result
	return nil
}
