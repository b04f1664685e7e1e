// Package metrics maintains in-process counters for plugin invocations and
// renders them in Prometheus text exposition format.
package metrics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"
)

type invocationKey struct {
	plugin  string
	method  string
	outcome string
}

type latencyKey struct {
	plugin string
	method string
}

type histogram struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

var defaultBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

func newHistogram() *histogram {
	return &histogram{
		buckets: defaultBuckets,
		counts:  make([]uint64, len(defaultBuckets)),
	}
}

func (h *histogram) observe(seconds float64) {
	for i, upper := range h.buckets {
		if seconds <= upper {
			h.counts[i]++
		}
	}
	h.sum += seconds
	h.count++
}

type collector struct {
	mu          sync.Mutex
	invocations map[invocationKey]uint64
	latency     map[latencyKey]*histogram
}

var invocationCollector = &collector{
	invocations: make(map[invocationKey]uint64),
	latency:     make(map[latencyKey]*histogram),
}

// ObserveInvocation records one plugin lifecycle invocation.
func ObserveInvocation(plugin, method, outcome string, seconds float64) {
	invocationCollector.observe(plugin, method, outcome, seconds)
}

// ObserveInvocationDuration is a convenience wrapper over ObserveInvocation.
func ObserveInvocationDuration(plugin, method, outcome string, d time.Duration) {
	ObserveInvocation(plugin, method, outcome, d.Seconds())
}

func (c *collector) observe(plugin, method, outcome string, seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.invocations[invocationKey{plugin: plugin, method: method, outcome: outcome}]++

	lk := latencyKey{plugin: plugin, method: method}
	h, ok := c.latency[lk]
	if !ok {
		h = newHistogram()
		c.latency[lk] = h
	}
	h.observe(seconds)
}

// Render emits the collected metrics in Prometheus text format. Series are
// sorted so the output is stable.
func Render() string {
	return invocationCollector.render()
}

// Reset clears all collected series. Intended for tests.
func Reset() {
	invocationCollector.mu.Lock()
	defer invocationCollector.mu.Unlock()
	invocationCollector.invocations = make(map[invocationKey]uint64)
	invocationCollector.latency = make(map[latencyKey]*histogram)
}

func (c *collector) render() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var b strings.Builder

	b.WriteString("# HELP devkit_plugin_invocations_total Total plugin lifecycle invocations.\n")
	b.WriteString("# TYPE devkit_plugin_invocations_total counter\n")
	invKeys := make([]invocationKey, 0, len(c.invocations))
	for k := range c.invocations {
		invKeys = append(invKeys, k)
	}
	sort.Slice(invKeys, func(i, j int) bool {
		if invKeys[i].plugin != invKeys[j].plugin {
			return invKeys[i].plugin < invKeys[j].plugin
		}
		if invKeys[i].method != invKeys[j].method {
			return invKeys[i].method < invKeys[j].method
		}
		return invKeys[i].outcome < invKeys[j].outcome
	})
	for _, k := range invKeys {
		fmt.Fprintf(&b, "devkit_plugin_invocations_total{plugin=%q,method=%q,outcome=%q} %d\n",
			k.plugin, k.method, k.outcome, c.invocations[k])
	}

	b.WriteString("# HELP devkit_plugin_invocation_seconds Plugin invocation latency.\n")
	b.WriteString("# TYPE devkit_plugin_invocation_seconds histogram\n")
	latKeys := make([]latencyKey, 0, len(c.latency))
	for k := range c.latency {
		latKeys = append(latKeys, k)
	}
	sort.Slice(latKeys, func(i, j int) bool {
		if latKeys[i].plugin != latKeys[j].plugin {
			return latKeys[i].plugin < latKeys[j].plugin
		}
		return latKeys[i].method < latKeys[j].method
	})
	for _, k := range latKeys {
		h := c.latency[k]
		for i, upper := range h.buckets {
			fmt.Fprintf(&b, "devkit_plugin_invocation_seconds_bucket{plugin=%q,method=%q,le=%q} %d\n",
				k.plugin, k.method, formatBucket(upper), h.counts[i])
		}
		fmt.Fprintf(&b, "devkit_plugin_invocation_seconds_bucket{plugin=%q,method=%q,le=\"+Inf\"} %d\n",
			k.plugin, k.method, h.count)
		fmt.Fprintf(&b, "devkit_plugin_invocation_seconds_sum{plugin=%q,method=%q} %g\n",
			k.plugin, k.method, h.sum)
		fmt.Fprintf(&b, "devkit_plugin_invocation_seconds_count{plugin=%q,method=%q} %d\n",
			k.plugin, k.method, h.count)
	}

	return b.String()
}

func formatBucket(upper float64) string {
	if math.IsInf(upper, 1) {
		return "+Inf"
	}
	return fmt.Sprintf("%g", upper)
}
