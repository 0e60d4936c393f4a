package main

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveLatencyConcurrent(t *testing.T) {
	m := newStoreMetrics(false)

	const workers, perWorker = 16, 250
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				m.observeLatency("POST", 200, "/buy/1", time.Millisecond)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(workers*perWorker), latencyCount(t, m, "200", "/buy/1"))
	assert.Equal(t, float64(workers*perWorker),
		testutil.ToFloat64(m.requestTotal.WithLabelValues("POST", "/buy/1", "200")))
}

func TestObserveLatencyKeysByStatusAndPath(t *testing.T) {
	m := newStoreMetrics(false)
	m.observeLatency("GET", 200, "/products", 2*time.Millisecond)
	m.observeLatency("GET", 200, "/products", 4*time.Millisecond)
	m.observeLatency("POST", 404, "/buy/9", time.Millisecond)

	assert.Equal(t, uint64(2), latencyCount(t, m, "200", "/products"))
	assert.Equal(t, uint64(1), latencyCount(t, m, "404", "/buy/9"))
	assert.Equal(t, uint64(0), latencyCount(t, m, "404", "/products"))

	families, err := m.registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "request_latency_seconds" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if labelValue(metric, "endpoint") == "/products" {
				assert.InDelta(t, 0.006, metric.GetSummary().GetSampleSum(), 1e-9)
			}
		}
	}
}

func TestGaugesAreLastWriteWins(t *testing.T) {
	m := newStoreMetrics(false)
	m.setCPU("c1", 0.2)
	m.setCPU("c1", 0.35)
	m.setMemory("c1", 1024)
	m.setMemory("c1", 2048)

	assert.Equal(t, 0.35, testutil.ToFloat64(m.cpuUsage.WithLabelValues("c1")))
	assert.Equal(t, 2048.0, testutil.ToFloat64(m.memoryUsage.WithLabelValues("c1")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.cpuUsage))
}

func TestRegistryRendersExpositionText(t *testing.T) {
	m := newStoreMetrics(false)
	m.setCPU("c1", 0.25)
	m.reject("rate_limit")

	expected := `
# HELP system_cpu_usage_percent Synthetic CPU usage sampled on each scrape
# TYPE system_cpu_usage_percent gauge
system_cpu_usage_percent{container="c1"} 0.25
`
	require.NoError(t, testutil.GatherAndCompare(m.registry, strings.NewReader(expected), "system_cpu_usage_percent"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected.WithLabelValues("rate_limit")))
}

func TestRuntimeCollectorsRegistered(t *testing.T) {
	m := newStoreMetrics(true)
	families, err := m.registry.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if strings.HasPrefix(mf.GetName(), "go_") {
			found = true
			break
		}
	}
	assert.True(t, found, "expected go runtime metrics")
}
