package provisioning

import (
	"bytes"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLog redirects the standard logger for the duration of fn.
func captureLog(fn func()) string {
	var buf bytes.Buffer
	prev := log.Writer()
	prevFlags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(prev)
		log.SetFlags(prevFlags)
	}()
	fn()
	return buf.String()
}

func TestConsoleObserver_Event(t *testing.T) {
	out := captureLog(func() {
		NewConsoleObserver().Event(Event{
			Type:     EventResourceCreated,
			Unit:     "cluster",
			Resource: "c1",
			Message:  "managed cluster created",
		})
	})

	assert.Contains(t, out, "resource.created")
	assert.Contains(t, out, "[cluster]")
	assert.Contains(t, out, "resource=c1")
	assert.Contains(t, out, "managed cluster created")
}

func TestConsoleObserver_WithFields(t *testing.T) {
	observer := NewConsoleObserver().WithFields(map[string]string{"run": "r-42"})

	out := captureLog(func() {
		observer.Event(Event{Type: EventUnitStarted, Unit: "resource-group", Message: "starting"})
	})

	assert.Contains(t, out, "run=r-42")
}

func TestConsoleObserver_EventFieldsWinOverContext(t *testing.T) {
	observer := NewConsoleObserver().WithFields(map[string]string{"role": "from-context"})

	out := captureLog(func() {
		observer.Event(Event{
			Type:    EventGrantEnsured,
			Unit:    "registry",
			Message: "role AcrPull granted",
			Fields:  map[string]string{"role": "AcrPull"},
		})
	})

	assert.Contains(t, out, "role=AcrPull")
	assert.NotContains(t, out, "from-context")
}

func TestLogrObserver_Event(t *testing.T) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, prefix+args)
	}, funcr.Options{})

	observer := NewLogrObserver(logger).WithFields(map[string]string{"run": "r-42"})
	observer.Event(Event{
		Type:     EventResourceExists,
		Unit:     "resource-group",
		Resource: "rg-test",
		Message:  "resource group already exists",
	})

	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "resource group already exists")
	assert.Contains(t, lines[0], `"type"="resource.exists"`)
	assert.Contains(t, lines[0], `"unit"="resource-group"`)
	assert.Contains(t, lines[0], `"run"="r-42"`)
}

func TestLogrObserver_Printf(t *testing.T) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, prefix+args)
	}, funcr.Options{})

	NewLogrObserver(logger).Printf("provisioning completed in %v", 2*time.Second)

	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "provisioning completed in 2s")
}

func TestLogHelpers(t *testing.T) {
	out := captureLog(func() {
		observer := NewConsoleObserver()
		LogUnitStarted(observer, "cluster")
		LogUnitSucceeded(observer, "cluster", 1500*time.Millisecond)
		LogUnitFailed(observer, "registry", errors.New("quota exceeded"))
		LogUnitSkipped(observer, "resource-group")
		LogGrantEnsured(observer, "registry", "AcrPull", "kubelet-c1")
	})

	assert.Contains(t, out, "unit.started [cluster] starting")
	assert.Contains(t, out, "completed in 1.5s")
	assert.Contains(t, out, "failed: quota exceeded")
	assert.Contains(t, out, "up to date, restored from state")
	assert.Contains(t, out, "role AcrPull granted")
	assert.Contains(t, out, "principal=kubelet-c1")
}
