package provisioning

import "fmt"

// Output key names, in projection order.
const (
	OutputGroupName                = "group_name"
	OutputGroupID                  = "group_id"
	OutputRegistryID               = "registry_id"
	OutputRegistryLoginServer      = "registry_login_server"
	OutputClusterID                = "cluster_id"
	OutputClusterFQDN              = "cluster_fqdn"
	OutputClusterNodeResourceGroup = "cluster_node_resource_group"
)

// OutputKeys lists every projected output, in display order.
var OutputKeys = []string{
	OutputGroupName,
	OutputGroupID,
	OutputRegistryID,
	OutputRegistryLoginServer,
	OutputClusterID,
	OutputClusterFQDN,
	OutputClusterNodeResourceGroup,
}

// Outputs is the read-only projection of the three unit results exposed to
// operators and downstream pipelines.
type Outputs struct {
	GroupName                string `json:"group_name"`
	GroupID                  string `json:"group_id"`
	RegistryID               string `json:"registry_id"`
	RegistryLoginServer      string `json:"registry_login_server"`
	ClusterID                string `json:"cluster_id"`
	ClusterFQDN              string `json:"cluster_fqdn"`
	ClusterNodeResourceGroup string `json:"cluster_node_resource_group"`
}

// ProjectOutputs derives the outputs from a fully populated state. It fails
// if any unit result is missing.
func ProjectOutputs(state *State) (*Outputs, error) {
	if state.Group == nil {
		return nil, fmt.Errorf("cannot project outputs: resource group result is missing")
	}
	if state.Cluster == nil {
		return nil, fmt.Errorf("cannot project outputs: cluster result is missing")
	}
	if state.Registry == nil {
		return nil, fmt.Errorf("cannot project outputs: registry result is missing")
	}

	return &Outputs{
		GroupName:                state.Group.Name,
		GroupID:                  state.Group.ID,
		RegistryID:               state.Registry.ID,
		RegistryLoginServer:      state.Registry.LoginServer,
		ClusterID:                state.Cluster.ID,
		ClusterFQDN:              state.Cluster.FQDN,
		ClusterNodeResourceGroup: state.Cluster.NodeResourceGroup,
	}, nil
}

// Map returns the outputs as plain key/value pairs, one entry per key in
// OutputKeys, no extras and no omissions.
func (o *Outputs) Map() map[string]string {
	return map[string]string{
		OutputGroupName:                o.GroupName,
		OutputGroupID:                  o.GroupID,
		OutputRegistryID:               o.RegistryID,
		OutputRegistryLoginServer:      o.RegistryLoginServer,
		OutputClusterID:                o.ClusterID,
		OutputClusterFQDN:              o.ClusterFQDN,
		OutputClusterNodeResourceGroup: o.ClusterNodeResourceGroup,
	}
}
