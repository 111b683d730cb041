// Package azure wraps the Azure Resource Manager API behind small,
// concern-scoped interfaces.
//
// # Interfaces
//
// GroupManager, ClusterManager, RegistryManager, and RoleAssigner each cover
// one resource concern. ResourceManager composes all four and is what the
// provisioning units consume. RealClient implements ResourceManager against
// the ARM SDK; MockClient implements it in memory for tests.
//
// All Ensure* operations are idempotent: re-submitting an identical spec
// converges on the same remote resource without error.
package azure
