package plugin

// EventType classifies lifecycle events emitted by the manager.
type EventType string

const (
	EventRegistered  EventType = "registered"
	EventInitialized EventType = "initialized"
	EventExecuted    EventType = "executed"
	EventShutdown    EventType = "shutdown"
	EventFailed      EventType = "failed"
)

// Event describes a single lifecycle transition or invocation observed by
// the manager.
type Event struct {
	Type         EventType
	PluginID     string
	State        State
	InvocationID string
	Timestamp    string
	Err          error
}
