package config

// Config holds the full deployment configuration.
type Config struct {
	// SubscriptionID is the Azure subscription to deploy into.
	// Falls back to the AZURE_SUBSCRIPTION_ID environment variable.
	SubscriptionID string `mapstructure:"subscription_id" yaml:"subscription_id"`

	Group    GroupConfig    `mapstructure:"group" yaml:"group"`
	Cluster  ClusterConfig  `mapstructure:"cluster" yaml:"cluster"`
	Registry RegistryConfig `mapstructure:"registry" yaml:"registry"`
	State    StateConfig    `mapstructure:"state" yaml:"state"`
}

// GroupConfig describes the resource group everything else lives in.
type GroupConfig struct {
	Name     string `mapstructure:"name" yaml:"name"`
	Location string `mapstructure:"location" yaml:"location"`
}

// ClusterConfig describes the managed Kubernetes cluster.
type ClusterConfig struct {
	Name              string         `mapstructure:"name" yaml:"name"`
	KubernetesVersion string         `mapstructure:"kubernetes_version" yaml:"kubernetes_version"`
	NodePool          NodePoolConfig `mapstructure:"node_pool" yaml:"node_pool"`
	Identity          string         `mapstructure:"identity" yaml:"identity"`
	LoadBalancerSKU   string         `mapstructure:"load_balancer_sku" yaml:"load_balancer_sku"`
	NetworkPlugin     string         `mapstructure:"network_plugin" yaml:"network_plugin"`
	DNSPrefix         string         `mapstructure:"dns_prefix" yaml:"dns_prefix"`
}

// NodePoolConfig describes the default node pool.
//
// VMSize and Zones are opaque to local validation; an invalid combination is
// rejected by the control plane, not here.
type NodePoolConfig struct {
	Name   string   `mapstructure:"name" yaml:"name"`
	Count  int      `mapstructure:"count" yaml:"count"`
	VMSize string   `mapstructure:"vm_size" yaml:"vm_size"`
	Zones  []string `mapstructure:"zones" yaml:"zones"`
	Mode   string   `mapstructure:"mode" yaml:"mode"`
}

// RegistryConfig describes the container registry and the pull role grant.
type RegistryConfig struct {
	Name         string `mapstructure:"name" yaml:"name"`
	Location     string `mapstructure:"location" yaml:"location"`
	SKU          string `mapstructure:"sku" yaml:"sku"`
	AdminEnabled bool   `mapstructure:"admin_enabled" yaml:"admin_enabled"`
	Role         string `mapstructure:"role" yaml:"role"`
	SkipAADCheck bool   `mapstructure:"skip_aad_check" yaml:"skip_aad_check"`
}

// StateConfig selects and configures the run-state backend.
type StateConfig struct {
	Backend string   `mapstructure:"backend" yaml:"backend"`
	Path    string   `mapstructure:"path" yaml:"path"`
	S3      S3Config `mapstructure:"s3" yaml:"s3"`
}

// S3Config configures the S3-compatible remote state backend.
type S3Config struct {
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint"`
	Region    string `mapstructure:"region" yaml:"region"`
	Bucket    string `mapstructure:"bucket" yaml:"bucket"`
	Prefix    string `mapstructure:"prefix" yaml:"prefix"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`
}
