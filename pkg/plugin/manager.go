package plugin

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"DevKit/internal/errors"
	"DevKit/internal/observability/metrics"
	"DevKit/pkg/logger"
)

// Manager keeps track of registered plugins and orchestrates their
// lifecycle. Unlike the raw command-line shim, the manager enforces the
// lifecycle ordering: Execute is only legal between a successful Initialize
// and Shutdown, and transitions cannot repeat.
type Manager struct {
	mu        sync.RWMutex
	registry  map[string]*instance
	resources map[string]any
	config    ManagerConfig
	clock     Clock
	events    func(Event)
	observe   func(plugin, method, outcome string, seconds float64)
	log       *slog.Logger
	audit     *slog.Logger
}

type instance struct {
	mu     sync.Mutex
	Plugin Plugin
	Info   Info
	State  State
	Config map[string]any
}

// NewManager constructs a manager using the supplied configuration and
// options.
func NewManager(cfg ManagerConfig, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Manager{
		registry:  make(map[string]*instance),
		resources: make(map[string]any),
		config:    cfg,
		clock:     DefaultClock(),
		observe:   metrics.ObserveInvocation,
		log:       logger.Named("plugin-manager"),
		audit:     logger.Audit(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Register adds a plugin instance to the manager registry. The configuration
// block declared for the id in the manager configuration is merged over the
// supplied one, and the plugin's Configure hook runs before registration
// completes.
func (m *Manager) Register(id string, p Plugin, cfg map[string]any) error {
	if id == "" {
		return errors.New(errors.CodeInvalidArgument, "plugin id cannot be empty")
	}
	if p == nil {
		return errors.New(errors.CodeInvalidArgument, "plugin implementation cannot be nil")
	}
	info := p.Info()
	if info.ID != "" && info.ID != id {
		return errors.Newf(errors.CodeInvalidArgument, "plugin id mismatch: %s != %s", info.ID, id)
	}
	merged, err := m.config.blockFor(id, cfg)
	if err != nil {
		return err
	}
	if err := p.Configure(merged); err != nil {
		return errors.Wrap(errors.CodeExecutionFailure, err, "configure plugin "+id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.registry[id]; exists {
		return errors.Newf(errors.CodeConflict, "plugin %s already registered", id)
	}
	if info.ID == "" {
		info.ID = id
	}
	m.registry[id] = &instance{Plugin: p, Info: info, State: StateUninitialized, Config: merged}
	m.emit(Event{Type: EventRegistered, PluginID: id, State: StateUninitialized, Timestamp: m.clock.Now()})
	return nil
}

// Initialize transitions a plugin from uninitialized to ready and returns
// the plugin's status token.
func (m *Manager) Initialize(ctx context.Context, id string) (string, error) {
	return m.transition(ctx, id, "initialize", StateUninitialized, StateReady, EventInitialized,
		func(p Plugin, ec *ExecutionContext) (string, error) { return p.Initialize(ec) })
}

// Execute invokes a ready plugin with the given input payload.
func (m *Manager) Execute(ctx context.Context, id, input string) (string, error) {
	inst, err := m.get(id)
	if err != nil {
		return "", err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	if inst.State != StateReady {
		return "", errors.Newf(errors.CodeLifecycleViolation,
			"cannot execute plugin %s in state %s: initialize it first", id, inst.State)
	}
	invocation := uuid.NewString()
	start := time.Now()
	out, err := inst.Plugin.Execute(m.execContext(ctx, inst), input)
	m.record(id, "execute", invocation, start, err)
	if err != nil {
		return "", errors.Wrap(errors.CodeExecutionFailure, err, "execute plugin "+id)
	}
	m.emit(Event{Type: EventExecuted, PluginID: id, State: inst.State, InvocationID: invocation, Timestamp: m.clock.Now()})
	return out, nil
}

// Shutdown transitions a plugin from ready to terminated and returns the
// plugin's status token. A terminated plugin cannot be revived.
func (m *Manager) Shutdown(ctx context.Context, id string) (string, error) {
	return m.transition(ctx, id, "shutdown", StateReady, StateTerminated, EventShutdown,
		func(p Plugin, ec *ExecutionContext) (string, error) { return p.Shutdown(ec) })
}

// InitializeAll initializes every registered plugin in deterministic order.
func (m *Manager) InitializeAll(ctx context.Context) error {
	for _, id := range m.IDs() {
		if _, err := m.Initialize(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// ShutdownAll shuts down every plugin that is currently ready.
func (m *Manager) ShutdownAll(ctx context.Context) error {
	for _, id := range m.IDs() {
		if state, err := m.State(id); err != nil || state != StateReady {
			continue
		}
		if _, err := m.Shutdown(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// State returns the lifecycle state of a plugin.
func (m *Manager) State(id string) (State, error) {
	inst, err := m.get(id)
	if err != nil {
		return "", err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.State, nil
}

// Info returns the metadata of a registered plugin.
func (m *Manager) Info(id string) (Info, error) {
	inst, err := m.get(id)
	if err != nil {
		return Info{}, err
	}
	return inst.Info, nil
}

// IDs returns the registered plugin ids in sorted order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.registry))
	for id := range m.registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (m *Manager) transition(ctx context.Context, id, method string, from, to State, event EventType,
	call func(Plugin, *ExecutionContext) (string, error)) (string, error) {
	inst, err := m.get(id)
	if err != nil {
		return "", err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	if inst.State != from {
		return "", errors.Newf(errors.CodeLifecycleViolation,
			"cannot %s plugin %s in state %s", method, id, inst.State)
	}
	invocation := uuid.NewString()
	start := time.Now()
	token, err := call(inst.Plugin, m.execContext(ctx, inst))
	m.record(id, method, invocation, start, err)
	if err != nil {
		inst.State = StateFailed
		m.emit(Event{Type: EventFailed, PluginID: id, State: StateFailed, InvocationID: invocation, Timestamp: m.clock.Now(), Err: err})
		return "", errors.Wrap(errors.CodeExecutionFailure, err, method+" plugin "+id)
	}
	inst.State = to
	m.emit(Event{Type: event, PluginID: id, State: to, InvocationID: invocation, Timestamp: m.clock.Now()})
	return token, nil
}

// execContext builds a per-invocation context. The maps are cloned so a
// plugin mutating its Config or Resources cannot corrupt the registered
// block or the shared resource table.
func (m *Manager) execContext(ctx context.Context, inst *instance) *ExecutionContext {
	ec := (&ExecutionContext{C: ctx, Config: inst.Config, Resources: m.resources}).Clone()
	if ec.Resources == nil {
		ec.Resources = make(map[string]any, 1)
	}
	ec.Resources[ResourceClock] = m.clock
	return ec
}

func (m *Manager) record(id, method, invocation string, start time.Time, err error) {
	elapsed := time.Since(start)
	outcome := StatusSuccess
	if err != nil {
		outcome = "error"
		m.log.Error("plugin invocation failed",
			"plugin", id, "method", method, "invocation", invocation,
			"severity", errors.SeverityOf(err), "alert", errors.ShouldAlert(err), "error", err)
	} else {
		m.log.Info("plugin invocation completed",
			"plugin", id, "method", method, "invocation", invocation, "elapsed", elapsed)
	}
	if m.audit != nil {
		m.audit.Info("invocation",
			"plugin", id, "method", method, "invocation", invocation,
			"outcome", outcome, "elapsed_ms", elapsed.Milliseconds())
	}
	if m.observe != nil {
		m.observe(id, method, outcome, elapsed.Seconds())
	}
}

func (m *Manager) emit(event Event) {
	if m.events != nil {
		m.events(event)
	}
}

func (m *Manager) get(id string) (*instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.registry[id]
	if !ok {
		return nil, errors.Newf(errors.CodeNotFound, "plugin %s not registered", id)
	}
	return inst, nil
}

// ResourceClock is the key under which the manager exposes its clock to
// plugins.
const ResourceClock = "host:clock"
