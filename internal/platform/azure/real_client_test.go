package azure

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerregistry/armcontainerregistry"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/stretchr/testify/assert"
)

func TestIdentityType(t *testing.T) {
	assert.Equal(t, armcontainerservice.ResourceIdentityTypeSystemAssigned, identityType("SystemAssigned"))
	assert.Equal(t, armcontainerservice.ResourceIdentityTypeUserAssigned, identityType("UserAssigned"))
	assert.Equal(t, armcontainerservice.ResourceIdentityTypeNone, identityType("None"))
	assert.Equal(t, armcontainerservice.ResourceIdentityTypeSystemAssigned, identityType(""))
}

func TestNetworkPlugin(t *testing.T) {
	assert.Equal(t, armcontainerservice.NetworkPluginAzure, networkPlugin("azure"))
	assert.Equal(t, armcontainerservice.NetworkPluginKubenet, networkPlugin("kubenet"))
	assert.Equal(t, armcontainerservice.NetworkPluginNone, networkPlugin("none"))
}

func TestLoadBalancerSKU(t *testing.T) {
	assert.Equal(t, armcontainerservice.LoadBalancerSKUBasic, loadBalancerSKU("basic"))
	assert.Equal(t, armcontainerservice.LoadBalancerSKUStandard, loadBalancerSKU("standard"))
}

func TestVersionOrNil(t *testing.T) {
	assert.Nil(t, versionOrNil(""))
	assert.Equal(t, "1.29.7", *versionOrNil("1.29.7"))
}

func TestGroupFromARM(t *testing.T) {
	g := groupFromARM(armresources.ResourceGroup{
		ID:       to.Ptr("/subscriptions/s/resourceGroups/rg-test"),
		Name:     to.Ptr("rg-test"),
		Location: to.Ptr("eastus"),
	})
	assert.Equal(t, "rg-test", g.Name)
	assert.Equal(t, "eastus", g.Location)
	assert.Contains(t, g.ID, "rg-test")

	empty := groupFromARM(armresources.ResourceGroup{})
	assert.Empty(t, empty.Name)
}

func TestClusterFromARM(t *testing.T) {
	c := clusterFromARM(armcontainerservice.ManagedCluster{
		ID: to.Ptr("/subscriptions/s/.../managedClusters/c1"),
		Properties: &armcontainerservice.ManagedClusterProperties{
			Fqdn:              to.Ptr("c1.hcp.eastus.azmk8s.io"),
			NodeResourceGroup: to.Ptr("MC_rg_c1_eastus"),
			IdentityProfile: map[string]*armcontainerservice.UserAssignedIdentity{
				"kubeletidentity": {ObjectID: to.Ptr("object-id")},
			},
		},
	})
	assert.Equal(t, "c1.hcp.eastus.azmk8s.io", c.FQDN)
	assert.Equal(t, "MC_rg_c1_eastus", c.NodeResourceGroup)
	assert.Equal(t, "object-id", c.KubeletIdentityObjectID)
}

func TestClusterFromARM_NoKubeletIdentity(t *testing.T) {
	c := clusterFromARM(armcontainerservice.ManagedCluster{
		Properties: &armcontainerservice.ManagedClusterProperties{},
	})
	assert.Empty(t, c.KubeletIdentityObjectID)
}

func TestRegistryFromARM(t *testing.T) {
	r := registryFromARM(armcontainerregistry.Registry{
		ID: to.Ptr("/subscriptions/s/.../registries/acrtest"),
		Properties: &armcontainerregistry.RegistryProperties{
			LoginServer: to.Ptr("acrtest.azurecr.io"),
		},
	})
	assert.Equal(t, "acrtest.azurecr.io", r.LoginServer)
}

func TestRoleDefinitionID(t *testing.T) {
	c := &RealClient{subscriptionID: "sub-1"}

	id, err := c.roleDefinitionID("AcrPull")
	assert.NoError(t, err)
	assert.Equal(t, "/subscriptions/sub-1/providers/Microsoft.Authorization/roleDefinitions/7f951dda-4ed3-4680-a7ca-43fe172d538d", id)

	id, err = c.roleDefinitionID("b24988ac-6180-42a0-ab88-20f7382dd24c")
	assert.NoError(t, err)
	assert.Contains(t, id, "b24988ac-6180-42a0-ab88-20f7382dd24c")

	_, err = c.roleDefinitionID("NotARole")
	assert.Error(t, err)
}
