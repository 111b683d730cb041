package azure

import "context"

// Group is a provisioned resource group.
type Group struct {
	Name     string
	ID       string
	Location string
}

// NodePoolSpec describes the default node pool of a managed cluster.
// VMSize and Zones are forwarded untouched; the control plane validates them.
type NodePoolSpec struct {
	Name   string
	Count  int32
	VMSize string
	Zones  []string
	Mode   string
}

// ClusterSpec holds all parameters for creating a managed cluster.
type ClusterSpec struct {
	Name              string
	ResourceGroup     string
	Location          string
	KubernetesVersion string
	DNSPrefix         string
	NodePool          NodePoolSpec
	Identity          string
	LoadBalancerSKU   string
	NetworkPlugin     string
}

// Cluster is a provisioned managed cluster.
//
// KubeletIdentityObjectID is empty when the identity kind does not produce a
// managed kubelet identity; callers must treat that as a missing dependency,
// not a default.
type Cluster struct {
	ID                      string
	FQDN                    string
	NodeResourceGroup       string
	KubeletIdentityObjectID string
}

// RegistrySpec holds all parameters for creating a container registry.
type RegistrySpec struct {
	Name          string
	ResourceGroup string
	Location      string
	SKU           string
	AdminEnabled  bool
}

// Registry is a provisioned container registry.
type Registry struct {
	ID          string
	LoginServer string
}

// RoleGrant binds a role to a principal over a resource scope.
type RoleGrant struct {
	Scope        string
	RoleName     string
	PrincipalID  string
	SkipAADCheck bool
}

// GroupManager defines the interface for managing resource groups.
type GroupManager interface {
	// GetGroup returns the group by name, or nil if it does not exist.
	GetGroup(ctx context.Context, name string) (*Group, error)
	// EnsureGroup creates the group if absent and returns it.
	EnsureGroup(ctx context.Context, name, location string) (*Group, error)
	// DeleteGroup deletes the group and everything in it.
	DeleteGroup(ctx context.Context, name string) error
}

// ClusterManager defines the interface for managing clusters.
type ClusterManager interface {
	// EnsureCluster creates or updates the cluster and blocks until the
	// control plane reports it converged.
	EnsureCluster(ctx context.Context, spec ClusterSpec) (*Cluster, error)
}

// RegistryManager defines the interface for managing container registries.
type RegistryManager interface {
	// EnsureRegistry creates the registry if absent and returns it.
	EnsureRegistry(ctx context.Context, spec RegistrySpec) (*Registry, error)
}

// RoleAssigner defines the interface for managing role grants.
type RoleAssigner interface {
	// EnsureRoleGrant creates the role assignment if absent. An assignment
	// that already exists for the same (scope, role, principal) triple is
	// not an error.
	EnsureRoleGrant(ctx context.Context, grant RoleGrant) error
}

// ResourceManager composes all resource concerns consumed by the
// provisioning units.
type ResourceManager interface {
	GroupManager
	ClusterManager
	RegistryManager
	RoleAssigner
}
