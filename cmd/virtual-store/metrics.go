package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// storeMetrics owns a private registry and every instrument the store exports.
type storeMetrics struct {
	registry       *prometheus.Registry
	requestLatency *prometheus.SummaryVec
	requestTotal   *prometheus.CounterVec
	cpuUsage       *prometheus.GaugeVec
	memoryUsage    *prometheus.GaugeVec
	rejected       *prometheus.CounterVec
}

func newStoreMetrics(runtimeCollectors bool) *storeMetrics {
	m := &storeMetrics{
		registry: prometheus.NewRegistry(),
		requestLatency: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "request_latency_seconds",
				Help: "Request latency in seconds",
			},
			[]string{"status_code", "endpoint"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "request_count_total",
				Help: "Total number of requests processed",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		cpuUsage: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "system_cpu_usage_percent",
				Help: "Synthetic CPU usage sampled on each scrape",
			},
			[]string{"container"},
		),
		memoryUsage: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "system_memory_usage_bytes",
				Help: "Memory in use by the container, or the host when no cgroup is visible",
			},
			[]string{"container"},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "request_rejected_total",
				Help: "Requests rejected before reaching a handler",
			},
			[]string{"reason"},
		),
	}
	m.registry.MustRegister(m.requestLatency, m.requestTotal, m.cpuUsage, m.memoryUsage, m.rejected)
	if runtimeCollectors {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

func (m *storeMetrics) observeLatency(method string, status int, path string, d time.Duration) {
	code := strconv.Itoa(status)
	m.requestLatency.WithLabelValues(code, path).Observe(d.Seconds())
	m.requestTotal.WithLabelValues(method, path, code).Inc()
}

func (m *storeMetrics) setCPU(container string, v float64) {
	m.cpuUsage.WithLabelValues(container).Set(v)
}

func (m *storeMetrics) setMemory(container string, v float64) {
	m.memoryUsage.WithLabelValues(container).Set(v)
}

func (m *storeMetrics) reject(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}

// handler renders the registry in the text exposition format.
func (m *storeMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
