package cluster

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aksdeck/aksdeck/internal/config"
	"github.com/aksdeck/aksdeck/internal/platform/azure"
	"github.com/aksdeck/aksdeck/internal/provisioning"
	"github.com/aksdeck/aksdeck/internal/provisioning/group"
)

func testDescriptor() Descriptor {
	return Descriptor{
		Name:          "c1",
		ResourceGroup: "rg-test",
		Location:      "eastus",
		DNSPrefix:     "c1",
		NodePool: NodePool{
			Name:   "system",
			Count:  3,
			VMSize: "Standard_DS2_v2",
			Mode:   "System",
		},
		Identity:        "SystemAssigned",
		LoadBalancerSKU: "standard",
		NetworkPlugin:   "azure",
	}
}

func contextWithGroup(mock *azure.MockClient) *provisioning.Context {
	ctx := provisioning.NewContext(context.Background(), nil, mock)
	ctx.State.Group = &provisioning.GroupResult{
		Name: "rg-test",
		ID:   "/subscriptions/sub-1/resourceGroups/rg-test",
	}
	return ctx
}

func TestProvision_CreatesCluster(t *testing.T) {
	mock := azure.NewMockClient()
	ctx := contextWithGroup(mock)

	raw, err := New(testDescriptor()).Provision(ctx)
	require.NoError(t, err)

	require.NotNil(t, ctx.State.Cluster)
	assert.Contains(t, ctx.State.Cluster.ID, "/managedClusters/c1")
	assert.Equal(t, "c1.hcp.eastus.azmk8s.io", ctx.State.Cluster.FQDN)
	assert.Equal(t, "MC_rg-test_c1_eastus", ctx.State.Cluster.NodeResourceGroup)
	assert.Equal(t, "kubelet-c1", ctx.State.Cluster.KubeletIdentityObjectID)
	assert.Equal(t, []string{"EnsureCluster"}, mock.Calls)

	var result provisioning.ClusterResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, *ctx.State.Cluster, result)
}

func TestProvision_NoKubeletIdentityForIdentityNone(t *testing.T) {
	mock := azure.NewMockClient()
	ctx := contextWithGroup(mock)

	desc := testDescriptor()
	desc.Identity = "None"
	_, err := New(desc).Provision(ctx)
	require.NoError(t, err)

	assert.Empty(t, ctx.State.Cluster.KubeletIdentityObjectID)
}

func TestProvision_RequiresGroupResult(t *testing.T) {
	mock := azure.NewMockClient()
	ctx := provisioning.NewContext(context.Background(), nil, mock)

	_, err := New(testDescriptor()).Provision(ctx)

	var notReady *provisioning.DependencyNotReadyError
	require.ErrorAs(t, err, &notReady)
	assert.Equal(t, UnitID, notReady.Unit)
	assert.Empty(t, mock.Calls)
}

func TestProvision_GroupNameMismatch(t *testing.T) {
	mock := azure.NewMockClient()
	ctx := provisioning.NewContext(context.Background(), nil, mock)
	ctx.State.Group = &provisioning.GroupResult{Name: "rg-other", ID: "id-1"}

	_, err := New(testDescriptor()).Provision(ctx)

	var cfgErr *provisioning.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "cluster.resource_group", cfgErr.Parameter)
	assert.Empty(t, mock.Calls)
}

func TestProvision_RemoteError(t *testing.T) {
	boom := errors.New("quota exceeded")
	mock := azure.NewMockClient()
	mock.ClusterErr = boom
	ctx := contextWithGroup(mock)

	_, err := New(testDescriptor()).Provision(ctx)

	var remote *provisioning.RemoteConvergenceError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "managed cluster", remote.Resource)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, ctx.State.Cluster)
}

func TestRestore(t *testing.T) {
	ctx := provisioning.NewContext(context.Background(), nil, azure.NewMockClient())
	data := []byte(`{"id":"cluster-id","fqdn":"c1.hcp.eastus.azmk8s.io","node_resource_group":"MC_rg-test_c1_eastus","kubelet_identity_object_id":"kubelet-c1"}`)

	unit := New(testDescriptor())
	require.NoError(t, unit.Restore(ctx, data))
	require.NotNil(t, ctx.State.Cluster)
	assert.Equal(t, "kubelet-c1", ctx.State.Cluster.KubeletIdentityObjectID)

	assert.Error(t, unit.Restore(ctx, []byte(`{broken`)))
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Group.Name = "rg-test"
	cfg.Group.Location = "eastus"
	cfg.Cluster.Name = "c1"
	cfg.Cluster.DNSPrefix = "c1"
	cfg.Cluster.KubernetesVersion = "1.30.3"
	cfg.Cluster.NodePool = config.NodePoolConfig{
		Name: "system", Count: 3, VMSize: "Standard_DS2_v2", Zones: []string{"1", "2"}, Mode: "System",
	}
	cfg.Cluster.Identity = "SystemAssigned"
	cfg.Cluster.LoadBalancerSKU = "standard"
	cfg.Cluster.NetworkPlugin = "azure"

	desc := FromConfig(cfg)
	assert.Equal(t, "c1", desc.Name)
	assert.Equal(t, "rg-test", desc.ResourceGroup)
	assert.Equal(t, "eastus", desc.Location)
	assert.Equal(t, "1.30.3", desc.KubernetesVersion)
	assert.Equal(t, []string{"1", "2"}, desc.NodePool.Zones)
	assert.Equal(t, 3, desc.NodePool.Count)
}

func TestUnitIdentity(t *testing.T) {
	unit := New(testDescriptor())
	assert.Equal(t, UnitID, unit.ID())
	assert.Equal(t, []string{group.UnitID}, unit.DependsOn())
}

func TestChecksum_SensitiveToNodePool(t *testing.T) {
	a := New(testDescriptor())

	changed := testDescriptor()
	changed.NodePool.Count = 5
	b := New(changed)

	assert.NotEqual(t, a.Checksum(), b.Checksum())
}
