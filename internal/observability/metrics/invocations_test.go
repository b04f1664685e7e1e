package metrics

import (
	"strings"
	"testing"
	"time"
)

func TestRenderCountsByOutcome(t *testing.T) {
	Reset()
	ObserveInvocation("test-plugin", "execute", "success", 0.002)
	ObserveInvocation("test-plugin", "execute", "success", 0.004)
	ObserveInvocation("test-plugin", "execute", "error", 0.001)

	out := Render()
	if !strings.Contains(out, `devkit_plugin_invocations_total{plugin="test-plugin",method="execute",outcome="success"} 2`) {
		t.Fatalf("success counter missing:\n%s", out)
	}
	if !strings.Contains(out, `devkit_plugin_invocations_total{plugin="test-plugin",method="execute",outcome="error"} 1`) {
		t.Fatalf("error counter missing:\n%s", out)
	}
}

func TestRenderHistogram(t *testing.T) {
	Reset()
	ObserveInvocationDuration("factorial", "execute", "success", 3*time.Millisecond)

	out := Render()
	if !strings.Contains(out, `devkit_plugin_invocation_seconds_bucket{plugin="factorial",method="execute",le="0.005"} 1`) {
		t.Fatalf("bucket missing:\n%s", out)
	}
	if !strings.Contains(out, `devkit_plugin_invocation_seconds_bucket{plugin="factorial",method="execute",le="0.001"} 0`) {
		t.Fatalf("lower bucket should be empty:\n%s", out)
	}
	if !strings.Contains(out, `devkit_plugin_invocation_seconds_count{plugin="factorial",method="execute"} 1`) {
		t.Fatalf("count missing:\n%s", out)
	}
}

func TestRenderIsStable(t *testing.T) {
	Reset()
	ObserveInvocation("b", "execute", "success", 0.01)
	ObserveInvocation("a", "initialize", "success", 0.01)

	first := Render()
	second := Render()
	if first != second {
		t.Fatalf("render output not stable")
	}
	if strings.Index(first, `plugin="a"`) > strings.Index(first, `plugin="b"`) {
		t.Fatalf("series not sorted by plugin:\n%s", first)
	}
}
