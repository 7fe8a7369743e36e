package server

import (
	"sync/atomic"
	"time"

	"github.com/Brownie44l1/webserver/internal/response"
)

// Metrics holds server runtime counters. Workers only ever add to them.
type Metrics struct {
	ConnectionsTotal  atomic.Int64
	ActiveConnections atomic.Int64
	Responses2xx      atomic.Int64
	Responses4xx      atomic.Int64
	InvalidRequests   atomic.Int64
	ErrorsTotal       atomic.Int64 // connection errors and recovered panics
	BodyBytes         atomic.Int64

	// Latency tracking (simplified - use histogram in production)
	TotalLatencyNs atomic.Int64
}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) connOpened() {
	m.ConnectionsTotal.Add(1)
	m.ActiveConnections.Add(1)
}

func (m *Metrics) connClosed(duration time.Duration) {
	m.ActiveConnections.Add(-1)
	m.TotalLatencyNs.Add(duration.Nanoseconds())
}

// RecordResponse records a response whose status line made it out
func (m *Metrics) RecordResponse(code response.StatusCode, bodyBytes int64) {
	m.BodyBytes.Add(bodyBytes)
	if code.IsSuccess() {
		m.Responses2xx.Add(1)
	} else if code.IsClientError() {
		m.Responses4xx.Add(1)
	}
}

// AverageLatency returns average connection lifetime
func (m *Metrics) AverageLatency() time.Duration {
	total := m.ConnectionsTotal.Load() - m.ActiveConnections.Load()
	if total <= 0 {
		return 0
	}
	return time.Duration(m.TotalLatencyNs.Load() / total)
}

// MetricsSnapshot is a point in time copy of Metrics
type MetricsSnapshot struct {
	ConnectionsTotal  int64
	ActiveConnections int64
	Responses2xx      int64
	Responses4xx      int64
	InvalidRequests   int64
	ErrorsTotal       int64
	BodyBytes         int64
	AverageLatency    time.Duration
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		ConnectionsTotal:  m.ConnectionsTotal.Load(),
		ActiveConnections: m.ActiveConnections.Load(),
		Responses2xx:      m.Responses2xx.Load(),
		Responses4xx:      m.Responses4xx.Load(),
		InvalidRequests:   m.InvalidRequests.Load(),
		ErrorsTotal:       m.ErrorsTotal.Load(),
		BodyBytes:         m.BodyBytes.Load(),
		AverageLatency:    m.AverageLatency(),
	}
}
