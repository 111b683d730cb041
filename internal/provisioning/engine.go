package provisioning

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aksdeck/aksdeck/internal/statestore"
)

// Engine executes units in dependency order against a locked state store.
type Engine struct {
	units  []Unit
	byID   map[string]Unit
	order  []string
	status map[string]Status
	store  statestore.Store
}

// NewEngine validates the unit graph and computes its execution order.
// Duplicate IDs, references to unknown units, and cycles are construction
// errors; a cyclic graph is never accepted for execution.
func NewEngine(store statestore.Store, units ...Unit) (*Engine, error) {
	byID := make(map[string]Unit, len(units))
	for _, u := range units {
		if _, exists := byID[u.ID()]; exists {
			return nil, fmt.Errorf("duplicate unit %q", u.ID())
		}
		byID[u.ID()] = u
	}
	for _, u := range units {
		for _, dep := range u.DependsOn() {
			if _, ok := byID[dep]; !ok {
				return nil, fmt.Errorf("unit %q depends on unknown unit %q", u.ID(), dep)
			}
		}
	}

	order, err := topologicalOrder(units)
	if err != nil {
		return nil, err
	}

	status := make(map[string]Status, len(units))
	for _, u := range units {
		status[u.ID()] = StatusUnstarted
	}

	return &Engine{
		units:  units,
		byID:   byID,
		order:  order,
		status: status,
		store:  store,
	}, nil
}

// topologicalOrder returns a deterministic topological order: among ready
// units, registration order wins. A remainder with no ready unit is a cycle.
func topologicalOrder(units []Unit) ([]string, error) {
	placed := make(map[string]bool, len(units))
	order := make([]string, 0, len(units))

	for len(order) < len(units) {
		progressed := false
		for _, u := range units {
			if placed[u.ID()] {
				continue
			}
			ready := true
			for _, dep := range u.DependsOn() {
				if !placed[dep] {
					ready = false
					break
				}
			}
			if ready {
				placed[u.ID()] = true
				order = append(order, u.ID())
				progressed = true
			}
		}
		if !progressed {
			var remaining []string
			for _, u := range units {
				if !placed[u.ID()] {
					remaining = append(remaining, u.ID())
				}
			}
			sort.Strings(remaining)
			return nil, fmt.Errorf("dependency cycle among units: %s", strings.Join(remaining, ", "))
		}
	}

	return order, nil
}

// Order returns the computed execution order.
func (e *Engine) Order() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Status returns the current status of a unit.
func (e *Engine) Status(id string) Status {
	return e.status[id]
}

// Run walks the units in topological order under the state store's
// exclusive lock.
//
// A unit with a stored SUCCEEDED record and an unchanged descriptor checksum
// is restored instead of executed. After the first failure nothing else
// executes: transitive dependents of the failed unit transition to FAILED,
// remaining units stay WAITING_ON_DEPENDENCIES, and resources already
// provisioned are left intact.
func (e *Engine) Run(ctx *Context) error {
	start := time.Now()

	if err := e.store.Lock(ctx); err != nil {
		return fmt.Errorf("failed to lock state: %w", err)
	}
	defer func() {
		if err := e.store.Unlock(); err != nil {
			ctx.Observer.Printf("warning: failed to release state lock: %v", err)
		}
	}()

	for _, id := range e.order {
		e.status[id] = StatusWaiting
	}

	var firstErr error
	for _, id := range e.order {
		unit := e.byID[id]

		if firstErr != nil {
			if e.anyDependencyFailed(unit) {
				e.status[id] = StatusFailed
				LogUnitFailed(ctx.Observer, id, fmt.Errorf("dependency failed"))
			}
			continue
		}

		if err := e.runUnit(ctx, unit); err != nil {
			e.status[id] = StatusFailed
			LogUnitFailed(ctx.Observer, id, err)
			firstErr = fmt.Errorf("unit %s failed: %w", id, err)
			continue
		}
		e.status[id] = StatusSucceeded
	}

	if firstErr != nil {
		return firstErr
	}

	ctx.Observer.Printf("provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

func (e *Engine) runUnit(ctx *Context, unit Unit) error {
	id := unit.ID()

	record, err := e.store.Get(id)
	if err != nil {
		return fmt.Errorf("failed to read state: %w", err)
	}
	if record != nil && record.Status == string(StatusSucceeded) && record.Checksum == unit.Checksum() {
		if err := unit.Restore(ctx, record.Result); err != nil {
			return fmt.Errorf("failed to restore stored result: %w", err)
		}
		LogUnitSkipped(ctx.Observer, id)
		return nil
	}

	e.status[id] = StatusExecuting
	LogUnitStarted(ctx.Observer, id)
	unitStart := time.Now()

	result, err := unit.Provision(ctx)
	if err != nil {
		return err
	}

	if err := e.store.Put(&statestore.Record{
		Unit:      id,
		Checksum:  unit.Checksum(),
		Status:    string(StatusSucceeded),
		Result:    result,
		UpdatedAt: time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("failed to persist result: %w", err)
	}

	LogUnitSucceeded(ctx.Observer, id, time.Since(unitStart))
	return nil
}

// anyDependencyFailed reports whether any direct dependency is FAILED.
// Processing order guarantees transitive failures propagate one hop at a
// time as the walk advances.
func (e *Engine) anyDependencyFailed(unit Unit) bool {
	for _, dep := range unit.DependsOn() {
		if e.status[dep] == StatusFailed {
			return true
		}
	}
	return false
}

// ChecksumOf fingerprints a descriptor by hashing its JSON form.
func ChecksumOf(descriptor any) string {
	data, err := json.Marshal(descriptor)
	if err != nil {
		// Descriptors are plain structs; marshaling cannot fail for them.
		return fmt.Sprintf("unmarshalable:%v", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
