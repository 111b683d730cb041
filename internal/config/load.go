package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	if err := mapstructure.Decode(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// ApplyDefaults fills unset fields with their defaults. The registry location
// defaults to the group location so both resources share a region unless the
// registry explicitly deviates.
func (c *Config) ApplyDefaults() {
	if c.SubscriptionID == "" {
		c.SubscriptionID = os.Getenv("AZURE_SUBSCRIPTION_ID")
	}

	if c.Cluster.NodePool.Name == "" {
		c.Cluster.NodePool.Name = DefaultNodePoolName
	}
	if c.Cluster.NodePool.Count == 0 {
		c.Cluster.NodePool.Count = DefaultNodeCount
	}
	if c.Cluster.NodePool.Mode == "" {
		c.Cluster.NodePool.Mode = DefaultNodePoolMode
	}
	if c.Cluster.Identity == "" {
		c.Cluster.Identity = DefaultIdentity
	}
	if c.Cluster.LoadBalancerSKU == "" {
		c.Cluster.LoadBalancerSKU = DefaultLoadBalancerSKU
	}
	if c.Cluster.NetworkPlugin == "" {
		c.Cluster.NetworkPlugin = DefaultNetworkPlugin
	}
	if c.Cluster.DNSPrefix == "" {
		c.Cluster.DNSPrefix = c.Cluster.Name
	}

	if c.Registry.Location == "" {
		c.Registry.Location = c.Group.Location
	}
	if c.Registry.SKU == "" {
		c.Registry.SKU = DefaultRegistrySKU
	}
	if c.Registry.Role == "" {
		c.Registry.Role = DefaultRole
	}

	if c.State.Backend == "" {
		c.State.Backend = DefaultStateBackend
	}
	if c.State.Path == "" {
		c.State.Path = DefaultStatePath
	}
}

// FindConfigFile returns the default config file path if it exists in the
// current directory.
func FindConfigFile() (string, error) {
	for _, name := range []string{DefaultConfigFile, "aksdeck.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no %s found in current directory (use --config or run 'aksdeck init')", DefaultConfigFile)
}
