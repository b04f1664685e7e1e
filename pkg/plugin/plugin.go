// Package plugin defines the lifecycle contract between the DevKit host and
// its plugins, together with the manager that orchestrates registered
// instances.
package plugin

import "context"

// Plugin is the three-method lifecycle every plugin implementation must
// satisfy. Initialize and Shutdown return their literal status tokens
// ("initialized" and "shutdown"); Execute transforms an input payload into a
// serialized response document.
type Plugin interface {
	// Info returns the static metadata for the plugin.
	Info() Info
	// Configure lets the plugin inspect its configuration block before it is
	// initialised. Implementations may mutate the map to inject defaults.
	Configure(cfg map[string]any) error
	// Initialize prepares the plugin for use and returns the status token.
	Initialize(ctx *ExecutionContext) (string, error)
	// Execute runs the plugin against the given input payload.
	Execute(ctx *ExecutionContext, input string) (string, error)
	// Shutdown releases the plugin and returns the status token.
	Shutdown(ctx *ExecutionContext) (string, error)
}

// ExecutionContext is passed to plugins for every lifecycle stage.
type ExecutionContext struct {
	// C is the underlying context for cancellation and deadlines.
	C context.Context
	// Config is the plugin specific configuration block merged with manager
	// overrides.
	Config map[string]any
	// Resources exposes shared services supplied by the host application.
	Resources map[string]any
}

// Clone duplicates the context maps so the recipient can mutate Config and
// Resources without the changes leaking back to the caller.
func (c *ExecutionContext) Clone() *ExecutionContext {
	if c == nil {
		return nil
	}
	return &ExecutionContext{
		C:         c.C,
		Config:    copyMap(c.Config),
		Resources: copyMap(c.Resources),
	}
}

func copyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Option modifies the behaviour of a plugin manager instance.
type Option func(*Manager)

// WithResource registers a shared resource that will be exposed to all
// plugins.
func WithResource(key string, value any) Option {
	return func(m *Manager) {
		if key == "" || value == nil {
			return
		}
		if m.resources == nil {
			m.resources = make(map[string]any)
		}
		m.resources[key] = value
	}
}

// WithEventSink subscribes a callback to lifecycle events emitted by the
// manager. The callback runs synchronously on the invoking goroutine.
func WithEventSink(sink func(Event)) Option {
	return func(m *Manager) {
		if sink != nil {
			m.events = sink
		}
	}
}

// WithClock overrides the timestamp provider handed to plugins through the
// shared resources.
func WithClock(clock Clock) Option {
	return func(m *Manager) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithMetrics overrides the invocation metrics recorder.
func WithMetrics(observe func(plugin, method, outcome string, seconds float64)) Option {
	return func(m *Manager) {
		if observe != nil {
			m.observe = observe
		}
	}
}
