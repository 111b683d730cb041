package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerregistry/armcontainerregistry"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/google/uuid"
)

// builtinRoles maps well-known role names to their built-in role definition
// GUIDs. Unknown names are treated as raw definition GUIDs.
var builtinRoles = map[string]string{
	"AcrPull":     "7f951dda-4ed3-4680-a7ca-43fe172d538d",
	"AcrPush":     "8311e382-0749-4cb8-b61a-304f252e45ec",
	"Reader":      "acdd72a7-3385-48ef-bd42-f606fba81ae7",
	"Contributor": "b24988ac-6180-42a0-ab88-20f7382dd24c",
}

// RealClient implements ResourceManager against the Azure Resource Manager
// API.
type RealClient struct {
	subscriptionID string
	groups         *armresources.ResourceGroupsClient
	clusters       *armcontainerservice.ManagedClustersClient
	registries     *armcontainerregistry.RegistriesClient
	roles          *armauthorization.RoleAssignmentsClient
}

var _ ResourceManager = (*RealClient)(nil)

// NewRealClient creates a ResourceManager using the default credential chain
// (environment, workload identity, managed identity, CLI).
func NewRealClient(subscriptionID string) (*RealClient, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build credential chain: %w", err)
	}
	return NewRealClientWithCredential(subscriptionID, cred)
}

// NewRealClientWithCredential creates a ResourceManager with an explicit
// credential.
func NewRealClientWithCredential(subscriptionID string, cred azcore.TokenCredential) (*RealClient, error) {
	groups, err := armresources.NewResourceGroupsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}
	clusters, err := armcontainerservice.NewManagedClustersClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create managed clusters client: %w", err)
	}
	registries, err := armcontainerregistry.NewRegistriesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create registries client: %w", err)
	}
	roles, err := armauthorization.NewRoleAssignmentsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create role assignments client: %w", err)
	}

	return &RealClient{
		subscriptionID: subscriptionID,
		groups:         groups,
		clusters:       clusters,
		registries:     registries,
		roles:          roles,
	}, nil
}

// GetGroup returns the resource group by name, or nil if it does not exist.
func (c *RealClient) GetGroup(ctx context.Context, name string) (*Group, error) {
	resp, err := c.groups.Get(ctx, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resource group %s: %w", name, err)
	}
	return groupFromARM(resp.ResourceGroup), nil
}

// EnsureGroup creates the resource group if absent and returns it.
func (c *RealClient) EnsureGroup(ctx context.Context, name, location string) (*Group, error) {
	resp, err := c.groups.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
		Location: to.Ptr(location),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure resource group %s: %w", name, err)
	}
	return groupFromARM(resp.ResourceGroup), nil
}

// DeleteGroup deletes the resource group and everything in it.
func (c *RealClient) DeleteGroup(ctx context.Context, name string) error {
	poller, err := c.groups.BeginDelete(ctx, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete resource group %s: %w", name, err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("failed waiting for deletion of resource group %s: %w", name, err)
	}
	return nil
}

// EnsureCluster creates or updates the managed cluster and blocks until the
// control plane reports it converged.
func (c *RealClient) EnsureCluster(ctx context.Context, spec ClusterSpec) (*Cluster, error) {
	zones := make([]*string, 0, len(spec.NodePool.Zones))
	for _, z := range spec.NodePool.Zones {
		zones = append(zones, to.Ptr(z))
	}

	parameters := armcontainerservice.ManagedCluster{
		Location: to.Ptr(spec.Location),
		Identity: &armcontainerservice.ManagedClusterIdentity{
			Type: to.Ptr(identityType(spec.Identity)),
		},
		Properties: &armcontainerservice.ManagedClusterProperties{
			DNSPrefix:         to.Ptr(spec.DNSPrefix),
			KubernetesVersion: versionOrNil(spec.KubernetesVersion),
			AgentPoolProfiles: []*armcontainerservice.ManagedClusterAgentPoolProfile{
				{
					Name:              to.Ptr(spec.NodePool.Name),
					Count:             to.Ptr(spec.NodePool.Count),
					VMSize:            to.Ptr(spec.NodePool.VMSize),
					AvailabilityZones: zones,
					Mode:              to.Ptr(agentPoolMode(spec.NodePool.Mode)),
					Type:              to.Ptr(armcontainerservice.AgentPoolTypeVirtualMachineScaleSets),
				},
			},
			NetworkProfile: &armcontainerservice.NetworkProfile{
				NetworkPlugin:   to.Ptr(networkPlugin(spec.NetworkPlugin)),
				LoadBalancerSKU: to.Ptr(loadBalancerSKU(spec.LoadBalancerSKU)),
			},
		},
	}

	poller, err := c.clusters.BeginCreateOrUpdate(ctx, spec.ResourceGroup, spec.Name, parameters, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure cluster %s: %w", spec.Name, err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for cluster %s: %w", spec.Name, err)
	}

	return clusterFromARM(resp.ManagedCluster), nil
}

// EnsureRegistry creates the container registry if absent and returns it.
func (c *RealClient) EnsureRegistry(ctx context.Context, spec RegistrySpec) (*Registry, error) {
	existing, err := c.registries.Get(ctx, spec.ResourceGroup, spec.Name, nil)
	if err == nil {
		return registryFromARM(existing.Registry), nil
	}
	if !IsNotFound(err) {
		return nil, fmt.Errorf("failed to get registry %s: %w", spec.Name, err)
	}

	poller, err := c.registries.BeginCreate(ctx, spec.ResourceGroup, spec.Name, armcontainerregistry.Registry{
		Location: to.Ptr(spec.Location),
		SKU: &armcontainerregistry.SKU{
			Name: to.Ptr(armcontainerregistry.SKUName(spec.SKU)),
		},
		Properties: &armcontainerregistry.RegistryProperties{
			AdminUserEnabled: to.Ptr(spec.AdminEnabled),
		},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry %s: %w", spec.Name, err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for registry %s: %w", spec.Name, err)
	}

	return registryFromARM(resp.Registry), nil
}

// EnsureRoleGrant creates the role assignment if absent.
//
// The assignment name is a deterministic UUID derived from (scope, role,
// principal), so re-running the same grant converges on the same assignment
// instead of accumulating duplicates.
func (c *RealClient) EnsureRoleGrant(ctx context.Context, grant RoleGrant) error {
	definitionID, err := c.roleDefinitionID(grant.RoleName)
	if err != nil {
		return err
	}

	properties := &armauthorization.RoleAssignmentProperties{
		PrincipalID:      to.Ptr(grant.PrincipalID),
		RoleDefinitionID: to.Ptr(definitionID),
	}
	if grant.SkipAADCheck {
		// Declaring the principal type skips the AAD existence check,
		// which otherwise rejects freshly created identities that have
		// not replicated yet.
		properties.PrincipalType = to.Ptr(armauthorization.PrincipalTypeServicePrincipal)
	}

	name := uuid.NewSHA1(uuid.NameSpaceURL, []byte(grant.Scope+"|"+definitionID+"|"+grant.PrincipalID)).String()

	_, err = c.roles.Create(ctx, grant.Scope, name, armauthorization.RoleAssignmentCreateParameters{
		Properties: properties,
	}, nil)
	if err != nil {
		if IsRoleAssignmentExists(err) {
			return nil
		}
		return fmt.Errorf("failed to create role assignment for %s: %w", grant.PrincipalID, err)
	}
	return nil
}

// roleDefinitionID resolves a role name to a fully qualified role definition
// resource ID. Names not in the built-in table are assumed to be raw GUIDs.
func (c *RealClient) roleDefinitionID(roleName string) (string, error) {
	guid, ok := builtinRoles[roleName]
	if !ok {
		if _, err := uuid.Parse(roleName); err != nil {
			return "", fmt.Errorf("unknown role %q: not a built-in role or definition GUID", roleName)
		}
		guid = roleName
	}
	return fmt.Sprintf("/subscriptions/%s/providers/Microsoft.Authorization/roleDefinitions/%s", c.subscriptionID, guid), nil
}

func groupFromARM(rg armresources.ResourceGroup) *Group {
	g := &Group{}
	if rg.Name != nil {
		g.Name = *rg.Name
	}
	if rg.ID != nil {
		g.ID = *rg.ID
	}
	if rg.Location != nil {
		g.Location = *rg.Location
	}
	return g
}

func clusterFromARM(mc armcontainerservice.ManagedCluster) *Cluster {
	cluster := &Cluster{}
	if mc.ID != nil {
		cluster.ID = *mc.ID
	}
	if mc.Properties != nil {
		if mc.Properties.Fqdn != nil {
			cluster.FQDN = *mc.Properties.Fqdn
		}
		if mc.Properties.NodeResourceGroup != nil {
			cluster.NodeResourceGroup = *mc.Properties.NodeResourceGroup
		}
		if kubelet, ok := mc.Properties.IdentityProfile["kubeletidentity"]; ok && kubelet != nil && kubelet.ObjectID != nil {
			cluster.KubeletIdentityObjectID = *kubelet.ObjectID
		}
	}
	return cluster
}

func registryFromARM(r armcontainerregistry.Registry) *Registry {
	registry := &Registry{}
	if r.ID != nil {
		registry.ID = *r.ID
	}
	if r.Properties != nil && r.Properties.LoginServer != nil {
		registry.LoginServer = *r.Properties.LoginServer
	}
	return registry
}

func identityType(kind string) armcontainerservice.ResourceIdentityType {
	switch kind {
	case "UserAssigned":
		return armcontainerservice.ResourceIdentityTypeUserAssigned
	case "None":
		return armcontainerservice.ResourceIdentityTypeNone
	default:
		return armcontainerservice.ResourceIdentityTypeSystemAssigned
	}
}

func agentPoolMode(mode string) armcontainerservice.AgentPoolMode {
	if mode == "User" {
		return armcontainerservice.AgentPoolModeUser
	}
	return armcontainerservice.AgentPoolModeSystem
}

func networkPlugin(plugin string) armcontainerservice.NetworkPlugin {
	switch plugin {
	case "kubenet":
		return armcontainerservice.NetworkPluginKubenet
	case "none":
		return armcontainerservice.NetworkPluginNone
	default:
		return armcontainerservice.NetworkPluginAzure
	}
}

func loadBalancerSKU(sku string) armcontainerservice.LoadBalancerSKU {
	if sku == "basic" {
		return armcontainerservice.LoadBalancerSKUBasic
	}
	return armcontainerservice.LoadBalancerSKUStandard
}

func versionOrNil(v string) *string {
	if v == "" {
		return nil
	}
	return to.Ptr(v)
}
