package config

import (
	"fmt"
	"regexp"
	"sort"
)

// ValidLocations contains the Azure regions accepted without a remote call.
// https://azure.microsoft.com/en-us/explore/global-infrastructure/geographies/
var ValidLocations = map[string]bool{
	"australiaeast":      true,
	"australiasoutheast": true,
	"brazilsouth":        true,
	"canadacentral":      true,
	"canadaeast":         true,
	"centralindia":       true,
	"centralus":          true,
	"eastasia":           true,
	"eastus":             true,
	"eastus2":            true,
	"francecentral":      true,
	"germanywestcentral": true,
	"japaneast":          true,
	"japanwest":          true,
	"koreacentral":       true,
	"northcentralus":     true,
	"northeurope":        true,
	"norwayeast":         true,
	"southafricanorth":   true,
	"southcentralus":     true,
	"southeastasia":      true,
	"southindia":         true,
	"swedencentral":      true,
	"switzerlandnorth":   true,
	"uaenorth":           true,
	"uksouth":            true,
	"ukwest":             true,
	"westeurope":         true,
	"westus":             true,
	"westus2":            true,
	"westus3":            true,
}

// ValidIdentities contains the accepted cluster identity kinds.
var ValidIdentities = map[string]bool{
	"SystemAssigned": true,
	"UserAssigned":   true,
	"None":           true,
}

// ValidRegistrySKUs contains the accepted registry pricing tiers.
var ValidRegistrySKUs = map[string]bool{
	"Basic":    true,
	"Standard": true,
	"Premium":  true,
}

// ValidLoadBalancerSKUs contains the accepted load balancer SKUs.
var ValidLoadBalancerSKUs = map[string]bool{
	"basic":    true,
	"standard": true,
}

// ValidNetworkPlugins contains the accepted network plugins.
var ValidNetworkPlugins = map[string]bool{
	"azure":   true,
	"kubenet": true,
	"none":    true,
}

// registryNameRe matches valid registry names: alphanumeric, 5-50 characters.
var registryNameRe = regexp.MustCompile(`^[a-zA-Z0-9]{5,50}$`)

// Validate checks the configuration for errors detectable without a remote
// call. VM sizes and availability zones are deliberately not checked; the
// control plane owns their validation.
func (c *Config) Validate() error {
	if c.SubscriptionID == "" {
		return fmt.Errorf("subscription_id is required (or set AZURE_SUBSCRIPTION_ID)")
	}

	if err := c.validateGroup(); err != nil {
		return fmt.Errorf("group validation failed: %w", err)
	}
	if err := c.validateCluster(); err != nil {
		return fmt.Errorf("cluster validation failed: %w", err)
	}
	if err := c.validateRegistry(); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}
	if err := c.validateState(); err != nil {
		return fmt.Errorf("state validation failed: %w", err)
	}

	return nil
}

func (c *Config) validateGroup() error {
	if c.Group.Name == "" {
		return fmt.Errorf("group.name is required")
	}
	if c.Group.Location == "" {
		return fmt.Errorf("group.location is required")
	}
	if !ValidLocations[c.Group.Location] {
		return fmt.Errorf("invalid location %q: must be one of %v", c.Group.Location, sortedKeys(ValidLocations))
	}
	return nil
}

func (c *Config) validateCluster() error {
	if c.Cluster.Name == "" {
		return fmt.Errorf("cluster.name is required")
	}
	if !ValidIdentities[c.Cluster.Identity] {
		return fmt.Errorf("invalid identity %q: must be one of %v", c.Cluster.Identity, sortedKeys(ValidIdentities))
	}
	if !ValidLoadBalancerSKUs[c.Cluster.LoadBalancerSKU] {
		return fmt.Errorf("invalid load_balancer_sku %q: must be one of %v", c.Cluster.LoadBalancerSKU, sortedKeys(ValidLoadBalancerSKUs))
	}
	if !ValidNetworkPlugins[c.Cluster.NetworkPlugin] {
		return fmt.Errorf("invalid network_plugin %q: must be one of %v", c.Cluster.NetworkPlugin, sortedKeys(ValidNetworkPlugins))
	}
	if c.Cluster.NodePool.Count < 1 {
		return fmt.Errorf("node_pool.count must be at least 1, got %d", c.Cluster.NodePool.Count)
	}
	if c.Cluster.NodePool.VMSize == "" {
		return fmt.Errorf("node_pool.vm_size is required")
	}
	return nil
}

func (c *Config) validateRegistry() error {
	if c.Registry.Name == "" {
		return fmt.Errorf("registry.name is required")
	}
	if !registryNameRe.MatchString(c.Registry.Name) {
		return fmt.Errorf("invalid registry name %q: must be 5-50 alphanumeric characters", c.Registry.Name)
	}
	if !ValidLocations[c.Registry.Location] {
		return fmt.Errorf("invalid registry location %q: must be one of %v", c.Registry.Location, sortedKeys(ValidLocations))
	}
	if !ValidRegistrySKUs[c.Registry.SKU] {
		return fmt.Errorf("invalid registry sku %q: must be one of %v", c.Registry.SKU, sortedKeys(ValidRegistrySKUs))
	}
	return nil
}

func (c *Config) validateState() error {
	switch c.State.Backend {
	case StateBackendFile:
		if c.State.Path == "" {
			return fmt.Errorf("state.path is required for the file backend")
		}
	case StateBackendS3:
		if c.State.S3.Bucket == "" {
			return fmt.Errorf("state.s3.bucket is required for the s3 backend")
		}
		if c.State.S3.Endpoint == "" {
			return fmt.Errorf("state.s3.endpoint is required for the s3 backend")
		}
		if c.State.S3.Region == "" {
			return fmt.Errorf("state.s3.region is required for the s3 backend")
		}
	default:
		return fmt.Errorf("invalid state backend %q: must be %q or %q", c.State.Backend, StateBackendFile, StateBackendS3)
	}
	return nil
}

// sortedKeys returns the keys of a map as a sorted slice for error messages.
func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
