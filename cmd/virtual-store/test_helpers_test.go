package main

import (
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testContainer = "test-host"

type testServer struct {
	*server
	logs    *observer.ObservedLogs
	handler http.Handler
}

// newTestServer builds an isolated server: private registry, observed logger,
// seeded randomness and a system probe rooted in a temp dir.
func newTestServer(t *testing.T, mutate ...func(*Config)) *testServer {
	t.Helper()

	cfg := defaultConfig()
	cfg.RuntimeMetrics = false
	for _, m := range mutate {
		m(&cfg)
	}

	core, logs := observer.New(zap.InfoLevel)
	s, err := newServer(cfg, zap.New(core))
	require.NoError(t, err)

	dir := t.TempDir()
	memFile := filepath.Join(dir, "memory.current")
	hostFile := filepath.Join(dir, "hostname")
	require.NoError(t, os.WriteFile(memFile, []byte("123456\n"), 0o644))
	require.NoError(t, os.WriteFile(hostFile, []byte(testContainer+"\n"), 0o644))
	s.probe = &systemProbe{
		memoryFiles:  []string{memFile},
		hostnameFile: hostFile,
		procRoot:     dir,
	}
	s.rnd = rand.New(rand.NewPCG(1, 2))
	s.startTime = time.Now()

	return &testServer{server: s, logs: logs, handler: s.handler()}
}

func (ts *testServer) do(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// latencyCount reads the summary sample count for a (status, path) pair.
func latencyCount(t *testing.T, m *storeMetrics, status, path string) uint64 {
	t.Helper()
	families, err := m.registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "request_latency_seconds" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if labelValue(metric, "status_code") == status && labelValue(metric, "endpoint") == path {
				return metric.GetSummary().GetSampleCount()
			}
		}
	}
	return 0
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

// fixedRand returns the same values on every call.
type fixedRand struct {
	n int
	f float64
}

func (r fixedRand) IntN(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

func (r fixedRand) Float64() float64 { return r.f }
