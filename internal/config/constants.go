package config

// Default values applied by LoadFile when the corresponding field is unset.
const (
	DefaultConfigFile = "aksdeck.yaml"

	DefaultNodePoolName    = "system"
	DefaultNodeCount       = 3
	DefaultNodePoolMode    = "System"
	DefaultIdentity        = "SystemAssigned"
	DefaultLoadBalancerSKU = "standard"
	DefaultNetworkPlugin   = "azure"

	DefaultRegistrySKU = "Basic"
	DefaultRole        = "AcrPull"

	DefaultStateBackend = "file"
	DefaultStatePath    = ".aksdeck/state.json"
)

// StateBackendFile and StateBackendS3 are the supported state backends.
const (
	StateBackendFile = "file"
	StateBackendS3   = "s3"
)
