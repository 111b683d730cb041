package provisioning

// GroupResult is the outcome of the resource group unit.
type GroupResult struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// ClusterResult is the outcome of the cluster unit.
//
// KubeletIdentityObjectID is only populated when the identity kind produces
// a managed kubelet identity. Consumers must treat an empty value as a hard
// dependency failure, never as a default.
type ClusterResult struct {
	ID                      string `json:"id"`
	FQDN                    string `json:"fqdn"`
	NodeResourceGroup       string `json:"node_resource_group"`
	KubeletIdentityObjectID string `json:"kubelet_identity_object_id,omitempty"`
}

// RegistryResult is the outcome of the registry unit.
type RegistryResult struct {
	ID          string `json:"id"`
	LoginServer string `json:"login_server"`
}

// State holds the shared results of provisioning units. It is progressively
// populated as each unit completes and is read by units that depend on
// earlier results.
type State struct {
	Group    *GroupResult
	Cluster  *ClusterResult
	Registry *RegistryResult
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}
