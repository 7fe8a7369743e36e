package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Brownie44l1/webserver/internal/response"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	assert.Equal(t, time.Duration(0), m.AverageLatency())

	m.connOpened()
	m.connOpened()
	m.RecordResponse(response.StatusOK, 100)
	m.RecordResponse(response.StatusNotFound, 23)
	m.connClosed(10 * time.Millisecond)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.ConnectionsTotal)
	assert.Equal(t, int64(1), snap.ActiveConnections)
	assert.Equal(t, int64(1), snap.Responses2xx)
	assert.Equal(t, int64(1), snap.Responses4xx)
	assert.Equal(t, int64(123), snap.BodyBytes)
	assert.Equal(t, 10*time.Millisecond, snap.AverageLatency)

	m.connClosed(30 * time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, m.AverageLatency())
}
