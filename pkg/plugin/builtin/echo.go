// Package builtin contains the plugins compiled into the devkit binary.
package builtin

import (
	"log/slog"

	"DevKit/pkg/logger"
	"DevKit/pkg/plugin"
)

// DefaultEchoID is the plugin identifier stamped into echo responses.
const DefaultEchoID = "test-plugin"

// Echo is the reference plugin: Execute annotates its input into a response
// document, parsing the payload as JSON when possible and falling back to
// the raw text otherwise.
type Echo struct {
	id     string
	clock  plugin.Clock
	pinned bool
	log    *slog.Logger
}

// EchoOption customises an Echo instance.
type EchoOption func(*Echo)

// WithEchoClock injects the timestamp provider used for responses.
func WithEchoClock(clock plugin.Clock) EchoOption {
	return func(e *Echo) {
		if clock != nil {
			e.clock = clock
			e.pinned = true
		}
	}
}

// WithEchoID overrides the plugin identifier.
func WithEchoID(id string) EchoOption {
	return func(e *Echo) {
		if id != "" {
			e.id = id
		}
	}
}

// NewEcho returns an echo plugin with the default identity and the fixed
// placeholder timestamp.
func NewEcho(opts ...EchoOption) *Echo {
	e := &Echo{
		id:    DefaultEchoID,
		clock: plugin.DefaultClock(),
		log:   logger.Named(DefaultEchoID),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Info implements plugin.Plugin.
func (e *Echo) Info() plugin.Info {
	return plugin.Info{
		ID:           e.id,
		Name:         "Echo test plugin",
		Description:  "Annotates the input payload into a JSON response document.",
		Author:       "DevKit",
		Version:      "1.0.0",
		Capabilities: []plugin.Capability{plugin.CapabilityTransform, plugin.CapabilityDiagnostics},
	}
}

// Configure implements plugin.Plugin. Recognised keys: "timestamp" pins the
// response timestamp, "use_system_clock" switches to wall-clock time.
func (e *Echo) Configure(cfg map[string]any) error {
	if ts, ok := cfg["timestamp"].(string); ok && ts != "" {
		e.clock = plugin.FixedClock(ts)
		e.pinned = true
	}
	if sys, ok := cfg["use_system_clock"].(bool); ok && sys {
		e.clock = plugin.SystemClock{}
		e.pinned = true
	}
	return nil
}

// Initialize implements plugin.Plugin.
func (e *Echo) Initialize(*plugin.ExecutionContext) (string, error) {
	e.log.Info("test plugin initializing")
	return plugin.StatusInitialized, nil
}

// Execute implements plugin.Plugin. A payload that fails to parse as JSON is
// embedded verbatim; the fallback is deliberate, not an error path.
func (e *Echo) Execute(ctx *plugin.ExecutionContext, input string) (string, error) {
	e.log.Info("test plugin executing", "input", input)
	var processed any = input
	if decoded, ok := plugin.DecodeInput(input); ok {
		processed = decoded
	}
	resp := plugin.Response{
		Plugin:         e.id,
		ProcessedInput: processed,
		Timestamp:      e.timestamp(ctx),
		Status:         plugin.StatusSuccess,
	}
	return resp.Encode()
}

// Shutdown implements plugin.Plugin.
func (e *Echo) Shutdown(*plugin.ExecutionContext) (string, error) {
	e.log.Info("test plugin shutting down")
	return plugin.StatusShutdown, nil
}

// timestamp uses the host-injected clock unless the plugin was explicitly
// configured with its own.
func (e *Echo) timestamp(ctx *plugin.ExecutionContext) string {
	if !e.pinned && ctx != nil {
		if clock, ok := ctx.Resources[plugin.ResourceClock].(plugin.Clock); ok && clock != nil {
			return clock.Now()
		}
	}
	return e.clock.Now()
}
