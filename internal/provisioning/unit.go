package provisioning

import "encoding/json"

// Status is the lifecycle state of a unit within a run.
type Status string

const (
	// StatusUnstarted means the run has not begun.
	StatusUnstarted Status = "UNSTARTED"
	// StatusWaiting means the unit is waiting on its dependencies.
	StatusWaiting Status = "WAITING_ON_DEPENDENCIES"
	// StatusExecuting means the unit is provisioning its resource.
	StatusExecuting Status = "EXECUTING"
	// StatusSucceeded means the unit produced its result. Terminal.
	StatusSucceeded Status = "SUCCEEDED"
	// StatusFailed means the unit failed, or a dependency of it failed.
	// Terminal; propagates to all dependents.
	StatusFailed Status = "FAILED"
)

// Unit is a single provisioning step in the dependency graph.
type Unit interface {
	// ID identifies the unit within the graph and the state store.
	ID() string

	// DependsOn lists the IDs of units whose results this unit consumes.
	DependsOn() []string

	// Checksum fingerprints the unit's descriptor. A stored SUCCEEDED
	// record with a matching checksum lets the engine skip execution.
	Checksum() string

	// Provision ensures the unit's resource exists, writes the typed
	// result into ctx.State, and returns the result serialized for the
	// state store.
	Provision(ctx *Context) (json.RawMessage, error)

	// Restore rehydrates ctx.State from a previously stored result.
	Restore(ctx *Context, result json.RawMessage) error
}
