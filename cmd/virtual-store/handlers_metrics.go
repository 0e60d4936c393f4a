package main

import "net/http"

// Synthetic CPU gauge bounds, in percent.
const (
	cpuMin  = 0.1
	cpuSpan = 0.3
)

// metricsHandler samples the gauges and renders the registry.
func (s *server) metricsHandler() http.Handler {
	render := s.metrics.handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		container := s.probe.containerName()
		s.metrics.setCPU(container, cpuMin+s.rnd.Float64()*cpuSpan)
		s.metrics.setMemory(container, float64(s.probe.memoryUsage()))
		render.ServeHTTP(w, r)
	})
}
