package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"DevKit/internal/config"
	"DevKit/internal/errors"
	"DevKit/pkg/logger"
	"DevKit/pkg/plugin"
	"DevKit/pkg/plugin/builtin"
)

const usage = "Usage: devkit <method> [args...]"

// main is the command-line shim an external plugin manager drives: one
// method name, an optional payload, the result on stdout.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// The usage line must not depend on environment state: a broken config
	// file cannot mask the simplest contract of the shim.
	if len(args) == 0 {
		fmt.Fprintln(stdout, usage)
		return 1
	}

	// A .env file in the working directory supplies DEVKIT_* variables in
	// development; its absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("DEVKIT_CONFIG"))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if level := os.Getenv("DEVKIT_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if err := logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: cfg.Logging.Outputs,
		Audit: logger.AuditConfig{
			Enabled:    cfg.Logging.Audit.Enabled,
			Path:       cfg.Logging.Audit.Path,
			MaxSizeMB:  cfg.Logging.Audit.MaxSizeMB,
			MaxBackups: cfg.Logging.Audit.MaxBackups,
			MaxAgeDays: cfg.Logging.Audit.MaxAgeDays,
		},
	}); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	p, err := selectPlugin(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	// Methods dispatch straight to the plugin: the shim deliberately
	// enforces no call ordering, that is the embedding manager's job.
	execCtx := &plugin.ExecutionContext{C: ctx}
	method := args[0]
	var result string
	switch method {
	case "initialize":
		result, err = p.Initialize(execCtx)
	case "execute":
		if len(args) < 2 {
			err = errors.New(errors.CodeMissingArgument, "Execute method requires input data")
		} else {
			result, err = p.Execute(execCtx, args[1])
		}
	case "shutdown":
		result, err = p.Shutdown(execCtx)
	default:
		err = errors.Newf(errors.CodeUnknownCommand, "Unknown method: %s", method)
	}
	if err != nil {
		// Dispatcher-level errors print their bare message like the
		// historic shim did; plugin failures keep their error code.
		switch errors.CodeOf(err) {
		case errors.CodeMissingArgument, errors.CodeUnknownCommand:
			if e, ok := errors.From(err); ok {
				fmt.Fprintln(stdout, e.Message())
				return 1
			}
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, result)
	return 0
}

// selectPlugin builds the built-in plugin the dispatcher drives, honouring
// DEVKIT_PLUGIN over the configured default, and hands it the timestamp
// configuration.
func selectPlugin(cfg *config.Config) (plugin.Plugin, error) {
	id := cfg.Plugin.Default
	if env := os.Getenv("DEVKIT_PLUGIN"); env != "" {
		id = env
	}

	var p plugin.Plugin
	switch id {
	case builtin.DefaultEchoID:
		p = builtin.NewEcho()
	case builtin.DefaultFactorialID:
		p = builtin.NewFactorial()
	default:
		return nil, fmt.Errorf("unknown plugin: %s", id)
	}

	block := map[string]any{}
	if cfg.Plugin.Timestamp != "" {
		block["timestamp"] = cfg.Plugin.Timestamp
	}
	if cfg.Plugin.UseSystemClock {
		block["use_system_clock"] = true
	}
	if err := p.Configure(block); err != nil {
		return nil, fmt.Errorf("configure plugin %s: %w", id, err)
	}
	return p, nil
}
