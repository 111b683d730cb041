package provisioning

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// Logger is the minimal printf-style logging interface.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during a run.
type Observer interface {
	Logger

	// Event emits a structured event.
	Event(event Event)

	// WithFields returns a new Observer with additional context fields.
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Unit      string            // Unit ID (e.g. "resource-group", "cluster")
	Message   string            // Human-readable message
	Resource  string            // Resource name/ID if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventUnitStarted indicates a unit began executing.
	EventUnitStarted EventType = "unit.started"
	// EventUnitSucceeded indicates a unit produced its result.
	EventUnitSucceeded EventType = "unit.succeeded"
	// EventUnitFailed indicates a unit failed, directly or via a dependency.
	EventUnitFailed EventType = "unit.failed"
	// EventUnitSkipped indicates a unit was restored from stored state.
	EventUnitSkipped EventType = "unit.skipped"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already exists.
	EventResourceExists EventType = "resource.exists"
	// EventGrantEnsured indicates a role grant is in place.
	EventGrantEnsured EventType = "grant.ensured"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct {
	contextFields map[string]string
}

var _ Observer = (*ConsoleObserver)(nil)

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		contextFields: make(map[string]string),
	}
}

// Printf implements the Logger interface.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements the Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}

	log.Print(o.formatEvent(event))
}

// WithFields implements the Observer interface.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &ConsoleObserver{contextFields: newFields}
}

// formatEvent formats an event for console output.
func (o *ConsoleObserver) formatEvent(event Event) string {
	var parts []string

	parts = append(parts, string(event.Type))

	if event.Unit != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Unit))
	}
	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}

	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		var fieldParts []string
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}

// LogrObserver implements Observer on top of a logr.Logger, for embedding
// the engine in hosts that already carry a structured logger.
type LogrObserver struct {
	logger logr.Logger
}

var _ Observer = (*LogrObserver)(nil)

// NewLogrObserver creates an observer backed by the given logger.
func NewLogrObserver(logger logr.Logger) *LogrObserver {
	return &LogrObserver{logger: logger}
}

// Printf implements the Logger interface.
func (o *LogrObserver) Printf(format string, v ...interface{}) {
	o.logger.Info(fmt.Sprintf(format, v...))
}

// Event implements the Observer interface.
func (o *LogrObserver) Event(event Event) {
	kv := []interface{}{"type", string(event.Type)}
	if event.Unit != "" {
		kv = append(kv, "unit", event.Unit)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	for k, v := range event.Fields {
		kv = append(kv, k, v)
	}
	o.logger.Info(event.Message, kv...)
}

// WithFields implements the Observer interface.
func (o *LogrObserver) WithFields(fields map[string]string) Observer {
	logger := o.logger
	for k, v := range fields {
		logger = logger.WithValues(k, v)
	}
	return &LogrObserver{logger: logger}
}

// LogUnitStarted logs a unit start event.
func LogUnitStarted(observer Observer, unit string) {
	observer.Event(Event{
		Type:    EventUnitStarted,
		Unit:    unit,
		Message: "starting",
	})
}

// LogUnitSucceeded logs a unit completion event.
func LogUnitSucceeded(observer Observer, unit string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventUnitSucceeded,
		Unit:    unit,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogUnitFailed logs a unit failure event.
func LogUnitFailed(observer Observer, unit string, err error) {
	observer.Event(Event{
		Type:    EventUnitFailed,
		Unit:    unit,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogUnitSkipped logs that a unit was restored from stored state.
func LogUnitSkipped(observer Observer, unit string) {
	observer.Event(Event{
		Type:    EventUnitSkipped,
		Unit:    unit,
		Message: "up to date, restored from state",
	})
}

// LogResourceCreating logs a resource creation start event.
func LogResourceCreating(observer Observer, unit, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceCreating,
		Unit:     unit,
		Resource: resourceName,
		Message:  fmt.Sprintf("creating %s", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceCreated logs a successful resource creation event.
func LogResourceCreated(observer Observer, unit, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Unit:     unit,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s created", resourceType),
		Fields:   map[string]string{"type": resourceType, "id": resourceID},
	})
}

// LogResourceExists logs when a resource already exists.
func LogResourceExists(observer Observer, unit, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Unit:     unit,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s already exists", resourceType),
		Fields:   map[string]string{"type": resourceType, "id": resourceID},
	})
}

// LogGrantEnsured logs that a role grant is in place.
func LogGrantEnsured(observer Observer, unit, role, principal string) {
	observer.Event(Event{
		Type:    EventGrantEnsured,
		Unit:    unit,
		Message: fmt.Sprintf("role %s granted", role),
		Fields:  map[string]string{"role": role, "principal": principal},
	})
}
