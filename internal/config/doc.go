// Package config defines the configuration model for a provisioning run.
//
// The [Config] struct is the canonical representation of the desired
// deployment: the resource group, the managed cluster inside it, the
// container registry, and the state backend. Configuration is loaded from a
// YAML file, defaults are applied, and local pre-flight validation runs
// before any remote call is made. Values the remote control plane validates
// itself (VM sizes, availability zones) are passed through untouched.
package config
