package builtin

import (
	"log/slog"

	"DevKit/internal/errors"
	"DevKit/pkg/factorial"
	"DevKit/pkg/logger"
	"DevKit/pkg/plugin"
)

// DefaultFactorialID identifies the factorial plugin.
const DefaultFactorialID = "factorial"

// computationMethod names how the result was produced: both variants run
// and must agree before the value is reported.
const computationMethod = "delegated+manual"

// Factorial computes n! for a JSON payload that is either a bare integer or
// an object of the form {"n": <integer>}. Both computation variants run and
// are cross-checked before the result is returned.
type Factorial struct {
	id    string
	clock plugin.Clock
	log   *slog.Logger
}

// NewFactorial returns the factorial plugin with its default identity.
func NewFactorial() *Factorial {
	return &Factorial{
		id:    DefaultFactorialID,
		clock: plugin.DefaultClock(),
		log:   logger.Named(DefaultFactorialID),
	}
}

// Info implements plugin.Plugin.
func (f *Factorial) Info() plugin.Info {
	return plugin.Info{
		ID:           f.id,
		Name:         "Factorial plugin",
		Description:  "Computes n! with arbitrary precision for integer payloads.",
		Author:       "DevKit",
		Version:      "1.0.0",
		Capabilities: []plugin.Capability{plugin.CapabilityComputation},
	}
}

// Configure implements plugin.Plugin.
func (f *Factorial) Configure(cfg map[string]any) error {
	if ts, ok := cfg["timestamp"].(string); ok && ts != "" {
		f.clock = plugin.FixedClock(ts)
	}
	return nil
}

// Initialize implements plugin.Plugin.
func (f *Factorial) Initialize(*plugin.ExecutionContext) (string, error) {
	f.log.Info("factorial plugin initializing")
	return plugin.StatusInitialized, nil
}

// Execute implements plugin.Plugin. Unlike the echo plugin, a payload that
// is not valid JSON or does not carry an integer is a real error.
func (f *Factorial) Execute(_ *plugin.ExecutionContext, input string) (string, error) {
	value, ok := plugin.DecodeInput(input)
	if !ok {
		return "", errors.Newf(errors.CodeInvalidArgument, "payload is not valid JSON: %q", input)
	}
	if obj, isObj := value.(map[string]any); isObj {
		inner, present := obj["n"]
		if !present {
			return "", errors.New(errors.CodeMissingArgument, `payload object must carry an "n" field`)
		}
		value = inner
	}
	n, err := factorial.CoerceInt(value)
	if err != nil {
		return "", err
	}
	delegated, err := factorial.Compute(n)
	if err != nil {
		return "", err
	}
	manual, err := factorial.ComputeManual(n)
	if err != nil {
		return "", err
	}
	if delegated.Cmp(manual) != 0 {
		return "", errors.Newf(errors.CodeExecutionFailure,
			"computation variants disagree for n=%d", n)
	}
	resp := plugin.Response{
		Plugin: f.id,
		ProcessedInput: map[string]any{
			"n":         n,
			"factorial": delegated.String(),
			"method":    computationMethod,
		},
		Timestamp: f.clock.Now(),
		Status:    plugin.StatusSuccess,
	}
	return resp.Encode()
}

// Shutdown implements plugin.Plugin.
func (f *Factorial) Shutdown(*plugin.ExecutionContext) (string, error) {
	f.log.Info("factorial plugin shutting down")
	return plugin.StatusShutdown, nil
}
