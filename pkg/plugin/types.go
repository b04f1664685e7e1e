package plugin

// Capability expresses optional features a plugin may advertise.
type Capability string

const (
	CapabilityTransform   Capability = "transform"
	CapabilityComputation Capability = "computation"
	CapabilityDiagnostics Capability = "diagnostics"
)

// Info contains descriptive metadata for a plugin implementation.
type Info struct {
	ID           string
	Name         string
	Description  string
	Author       string
	Version      string
	Capabilities []Capability
}

// State represents the lifecycle position of a plugin instance.
type State string

const (
	// StateUninitialized is the state of a freshly registered plugin.
	StateUninitialized State = "uninitialized"
	// StateReady means Initialize succeeded and Execute may be called.
	StateReady State = "ready"
	// StateTerminated means Shutdown completed; the instance is spent.
	StateTerminated State = "terminated"
	// StateFailed marks an instance whose lifecycle transition errored.
	StateFailed State = "failed"
)

// Status tokens returned by the lifecycle operations.
const (
	StatusInitialized = "initialized"
	StatusShutdown    = "shutdown"
	StatusSuccess     = "success"
)
