package provisioning

import "fmt"

// ConfigurationError reports a missing or invalid parameter. It is detected
// before any remote call and fails the run immediately.
type ConfigurationError struct {
	Parameter string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Parameter, e.Reason)
}

// DependencyNotReadyError reports that a unit's required input result is
// absent. It is fatal to the dependent unit and propagates as FAILED.
type DependencyNotReadyError struct {
	Unit    string
	Missing string
}

func (e *DependencyNotReadyError) Error() string {
	return fmt.Sprintf("unit %s: required input %s is not available", e.Unit, e.Missing)
}

// RemoteConvergenceError reports that the provider could not create, update,
// or grant the underlying resource after the bounded retry budget.
type RemoteConvergenceError struct {
	Resource string
	Err      error
}

func (e *RemoteConvergenceError) Error() string {
	return fmt.Sprintf("%s did not converge: %v", e.Resource, e.Err)
}

func (e *RemoteConvergenceError) Unwrap() error { return e.Err }

// NameCollisionError reports that a declared name collides with an
// incompatible existing resource. It is fatal and never auto-resolved.
type NameCollisionError struct {
	Resource string
	Name     string
	Reason   string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("%s %q collides with an existing resource: %s", e.Resource, e.Name, e.Reason)
}
