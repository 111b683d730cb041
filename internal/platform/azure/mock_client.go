package azure

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockClient is an in-memory ResourceManager for tests. It fabricates
// plausible resource IDs and records every call so tests can assert on
// ordering and payloads. Error fields, when set, are returned by the
// corresponding operation.
type MockClient struct {
	mu sync.Mutex

	SubscriptionID string

	// Error injection.
	GetGroupErr error
	GroupErr    error
	ClusterErr  error
	RegistryErr error
	GrantErr    error

	// OmitKubeletIdentity fabricates a cluster without a kubelet managed
	// identity, as happens for identity kind "None".
	OmitKubeletIdentity bool

	// ExistingGroup, when set, is returned by GetGroup before any
	// EnsureGroup call.
	ExistingGroup *Group

	// Calls records operation names in invocation order.
	Calls []string

	// Grants records every role grant ensured.
	Grants []RoleGrant

	groups     map[string]*Group
	clusters   map[string]*Cluster
	registries map[string]*Registry
}

var _ ResourceManager = (*MockClient)(nil)

// NewMockClient creates an empty mock with a fixed test subscription.
func NewMockClient() *MockClient {
	return &MockClient{
		SubscriptionID: "00000000-0000-0000-0000-000000000000",
		groups:         make(map[string]*Group),
		clusters:       make(map[string]*Cluster),
		registries:     make(map[string]*Registry),
	}
}

func (m *MockClient) record(call string) {
	m.Calls = append(m.Calls, call)
}

// GetGroup implements GroupManager.
func (m *MockClient) GetGroup(_ context.Context, name string) (*Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("GetGroup")

	if m.GetGroupErr != nil {
		return nil, m.GetGroupErr
	}
	if g, ok := m.groups[name]; ok {
		return g, nil
	}
	if m.ExistingGroup != nil && m.ExistingGroup.Name == name {
		return m.ExistingGroup, nil
	}
	return nil, nil
}

// EnsureGroup implements GroupManager.
func (m *MockClient) EnsureGroup(_ context.Context, name, location string) (*Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("EnsureGroup")

	if m.GroupErr != nil {
		return nil, m.GroupErr
	}
	if g, ok := m.groups[name]; ok {
		return g, nil
	}
	g := &Group{
		Name:     name,
		ID:       fmt.Sprintf("/subscriptions/%s/resourceGroups/%s", m.SubscriptionID, name),
		Location: location,
	}
	m.groups[name] = g
	return g, nil
}

// DeleteGroup implements GroupManager.
func (m *MockClient) DeleteGroup(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("DeleteGroup")

	delete(m.groups, name)
	return nil
}

// EnsureCluster implements ClusterManager.
func (m *MockClient) EnsureCluster(_ context.Context, spec ClusterSpec) (*Cluster, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("EnsureCluster")

	if m.ClusterErr != nil {
		return nil, m.ClusterErr
	}
	if c, ok := m.clusters[spec.Name]; ok {
		return c, nil
	}
	c := &Cluster{
		ID: fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.ContainerService/managedClusters/%s",
			m.SubscriptionID, spec.ResourceGroup, spec.Name),
		FQDN:              fmt.Sprintf("%s.hcp.%s.azmk8s.io", spec.DNSPrefix, spec.Location),
		NodeResourceGroup: fmt.Sprintf("MC_%s_%s_%s", spec.ResourceGroup, spec.Name, spec.Location),
	}
	if !m.OmitKubeletIdentity && spec.Identity != "None" {
		c.KubeletIdentityObjectID = fmt.Sprintf("kubelet-%s", spec.Name)
	}
	m.clusters[spec.Name] = c
	return c, nil
}

// EnsureRegistry implements RegistryManager.
func (m *MockClient) EnsureRegistry(_ context.Context, spec RegistrySpec) (*Registry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("EnsureRegistry")

	if m.RegistryErr != nil {
		return nil, m.RegistryErr
	}
	if r, ok := m.registries[spec.Name]; ok {
		return r, nil
	}
	r := &Registry{
		ID: fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.ContainerRegistry/registries/%s",
			m.SubscriptionID, spec.ResourceGroup, spec.Name),
		LoginServer: strings.ToLower(spec.Name) + ".azurecr.io",
	}
	m.registries[spec.Name] = r
	return r, nil
}

// EnsureRoleGrant implements RoleAssigner.
func (m *MockClient) EnsureRoleGrant(_ context.Context, grant RoleGrant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("EnsureRoleGrant")

	if m.GrantErr != nil {
		return m.GrantErr
	}
	for _, g := range m.Grants {
		if g == grant {
			return nil
		}
	}
	m.Grants = append(m.Grants, grant)
	return nil
}
