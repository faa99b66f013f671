package provisioning

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleObserverFormatEvent(t *testing.T) {
	t.Parallel()
	o := NewConsoleObserver()

	msg := o.formatEvent(Event{
		Type:     EventResourceCreated,
		Phase:    "infrastructure",
		Resource: "akslabstore",
		Message:  "storage account created",
	})

	assert.Contains(t, msg, "resource.created")
	assert.Contains(t, msg, "[infrastructure]")
	assert.Contains(t, msg, "resource=akslabstore")
	assert.Contains(t, msg, "storage account created")
}

func TestConsoleObserverWithFields(t *testing.T) {
	t.Parallel()
	o := NewConsoleObserver().WithFields(map[string]string{"cluster": "akslab-aks"})

	co, ok := o.(*ConsoleObserver)
	require.True(t, ok)

	msg := co.formatEvent(Event{
		Type:    EventPhaseStarted,
		Phase:   "identity",
		Message: "starting",
		Fields:  map[string]string{"cluster": "akslab-aks"},
	})
	assert.Contains(t, msg, "cluster=akslab-aks")
}

func TestLogHelpersEmitTypedEvents(t *testing.T) {
	t.Parallel()
	m := NewMockObserver()

	LogResourceCreating(m, "infrastructure", "storage account", "akslabstore")
	LogResourceCreated(m, "infrastructure", "storage account", "akslabstore", "/subscriptions/s/rg/r")
	LogResourceDeleting(m, "cleanup", "resource group", "akslab-rg")
	LogRetrying(m, "identity", "role assignment", 3, errors.New("PrincipalNotFound"))
	LogWarning(m, "deploy", "no external address yet")

	require.Len(t, m.Events, 5)
	assert.Len(t, m.EventsOfType(EventResourceCreating), 1)
	assert.Len(t, m.EventsOfType(EventResourceCreated), 1)
	assert.Len(t, m.EventsOfType(EventResourceDeleting), 1)
	assert.Len(t, m.EventsOfType(EventRetrying), 1)
	assert.Len(t, m.EventsOfType(EventWarning), 1)

	retry := m.EventsOfType(EventRetrying)[0]
	assert.Equal(t, "identity", retry.Phase)
	assert.Contains(t, retry.Message, "attempt 3")
}
