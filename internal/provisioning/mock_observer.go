package provisioning

import "fmt"

// MockObserver records messages and events for test assertions.
type MockObserver struct {
	Events   []Event
	Messages []string
	fields   map[string]string
}

// NewMockObserver creates an empty mock observer.
func NewMockObserver() *MockObserver {
	return &MockObserver{fields: make(map[string]string)}
}

func (m *MockObserver) Printf(format string, v ...interface{}) {
	m.Messages = append(m.Messages, fmt.Sprintf(format, v...))
}

func (m *MockObserver) Event(event Event) {
	m.Events = append(m.Events, event)
}

func (m *MockObserver) WithFields(fields map[string]string) Observer {
	merged := make(map[string]string)
	for k, v := range m.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &MockObserver{fields: merged}
}

// EventsOfType returns recorded events matching the given type.
func (m *MockObserver) EventsOfType(et EventType) []Event {
	var out []Event
	for _, e := range m.Events {
		if e.Type == et {
			out = append(out, e)
		}
	}
	return out
}
