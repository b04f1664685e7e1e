package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatsCode(t *testing.T) {
	err := New(CodeInvalidArgument, "n must be an integer")
	if got := err.Error(); got != "[INVALID_ARGUMENT] n must be an integer" {
		t.Fatalf("unexpected error string: %q", got)
	}
}

func TestEmptyMessageFallsBackToRegistry(t *testing.T) {
	err := New(CodeUnknownCommand, "")
	if err.Message() != "unknown command" {
		t.Fatalf("expected registry default, got %q", err.Message())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("boom")
	err := Wrap(CodeExecutionFailure, cause, "plugin crashed")
	if !stdErrors.Is(err, cause) {
		t.Fatalf("wrapped cause not reachable via errors.Is")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("cause missing from message: %q", err.Error())
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeLifecycleViolation, "execute before initialize"))
	if !stdErrors.Is(err, New(CodeLifecycleViolation, "")) {
		t.Fatalf("expected code match through wrapping")
	}
	if stdErrors.Is(err, New(CodeNotFound, "")) {
		t.Fatalf("unexpected match against different code")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(CodeMissingArgument, "")); got != CodeMissingArgument {
		t.Fatalf("unexpected code: %s", got)
	}
	if got := CodeOf(stdErrors.New("plain")); got != CodeUnknown {
		t.Fatalf("plain errors should map to UNKNOWN, got %s", got)
	}
}

func TestMetadataIsCopied(t *testing.T) {
	err := New(CodeConflict, "already registered", WithMetadata("plugin", "test-plugin"))
	meta := err.Metadata()
	meta["plugin"] = "mutated"
	if err.Metadata()["plugin"] != "test-plugin" {
		t.Fatalf("metadata should not be mutable from outside")
	}
}

func TestRegisterNewCode(t *testing.T) {
	const code Code = "QUOTA_EXCEEDED"
	Register(code, Attributes{Message: "quota exceeded", Severity: SeverityWarning, Alert: true})

	err := New(code, "")
	if err.Message() != "quota exceeded" {
		t.Fatalf("registered default not applied: %q", err.Message())
	}
	if err.Severity() != SeverityWarning {
		t.Fatalf("registered severity not applied: %s", err.Severity())
	}
	if !ShouldAlert(err) {
		t.Fatalf("registered alert flag not applied")
	}
}

func TestSeverityOfAndShouldAlert(t *testing.T) {
	if SeverityOf(New(CodeExecutionFailure, "")) != SeverityWarning {
		t.Fatalf("unexpected severity for execution failure")
	}
	if SeverityOf(stdErrors.New("plain")) != SeverityCritical {
		t.Fatalf("plain errors should map to the UNKNOWN severity")
	}
	if !ShouldAlert(New(CodeExecutionFailure, "")) {
		t.Fatalf("execution failures should alert")
	}
	if ShouldAlert(stdErrors.New("plain")) {
		t.Fatalf("plain errors should not alert")
	}
}

func TestSeverityOverride(t *testing.T) {
	err := New(CodeInvalidArgument, "", WithSeverity(SeverityCritical))
	if err.Severity() != SeverityCritical {
		t.Fatalf("expected overridden severity, got %s", err.Severity())
	}
	if New(CodeInvalidArgument, "").Severity() != SeverityInfo {
		t.Fatalf("expected default severity info")
	}
}
