// Package metrics exposes Prometheus instrumentation for the tool gateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ToolCalls counts tool invocations by tool name.
var ToolCalls = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "alpaca_mcp",
		Subsystem: "tools",
		Name:      "calls_total",
		Help:      "Total tool invocations by tool name.",
	},
	[]string{"tool"},
)

// ToolErrors counts tool invocations whose result was a normalized error or
// a validation rejection.
var ToolErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "alpaca_mcp",
		Subsystem: "tools",
		Name:      "errors_total",
		Help:      "Tool invocations that returned an error or validation message.",
	},
	[]string{"tool"},
)

// ToolDuration observes tool invocation latency, dominated by the single
// backend round trip each tool performs.
var ToolDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "alpaca_mcp",
		Subsystem: "tools",
		Name:      "duration_seconds",
		Help:      "Tool invocation duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"tool"},
)
