// Package provisioning provides the unit model and execution engine for
// dependency-ordered resource provisioning.
//
// # Subpackages
//
//   - group/: the resource group unit
//   - cluster/: the managed cluster unit
//   - registry/: the container registry unit with its pull role grant
//
// # Core types
//
// Unit is a provisioning step with an ID, declared dependencies, and a
// descriptor checksum for idempotence. Engine validates the unit graph at
// construction (cycles are rejected statically, never discovered at run
// time), walks it in a deterministic topological order, and enforces the
// fail-fast contract: a unit whose dependency failed transitions to FAILED
// without executing, and nothing runs after the first failure. State carries
// the typed results units pass to one another; Outputs is the read-only
// projection of those results.
package provisioning
