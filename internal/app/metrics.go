package app

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics counts the traffic through the selection controller.
type Metrics struct {
	mu       sync.Mutex
	inbound  map[string]uint64
	outbound map[string]uint64

	failures     atomic.Uint64
	handledCount atomic.Uint64
	handleNs     atomic.Int64
	maxHandleNs  atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		inbound:   make(map[string]uint64),
		outbound:  make(map[string]uint64),
		startTime: time.Now(),
	}
}

// RecordInbound records a handled notification and how long it took.
func (m *Metrics) RecordInbound(topic string, d time.Duration, err error) {
	m.mu.Lock()
	m.inbound[topic]++
	m.mu.Unlock()

	ns := d.Nanoseconds()
	m.handledCount.Add(1)
	m.handleNs.Add(ns)
	for {
		old := m.maxHandleNs.Load()
		if ns <= old || m.maxHandleNs.CompareAndSwap(old, ns) {
			break
		}
	}
	if err != nil {
		m.failures.Add(1)
	}
}

// RecordOutbound records a message sent to the native layer.
func (m *Metrics) RecordOutbound(msgType string) {
	m.mu.Lock()
	m.outbound[msgType]++
	m.mu.Unlock()
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	in := copyCounts(m.inbound)
	out := copyCounts(m.outbound)
	m.mu.Unlock()

	count := m.handledCount.Load()
	var avg time.Duration
	if count > 0 {
		avg = time.Duration(m.handleNs.Load() / int64(count))
	}
	return MetricsSnapshot{
		Uptime:     time.Since(m.startTime),
		Inbound:    in,
		Outbound:   out,
		Failures:   m.failures.Load(),
		AvgHandle:  avg,
		MaxHandle:  time.Duration(m.maxHandleNs.Load()),
		HandledAll: count,
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	m.inbound = make(map[string]uint64)
	m.outbound = make(map[string]uint64)
	m.startTime = time.Now()
	m.mu.Unlock()
	m.failures.Store(0)
	m.handledCount.Store(0)
	m.handleNs.Store(0)
	m.maxHandleNs.Store(0)
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime     time.Duration
	Inbound    map[string]uint64
	Outbound   map[string]uint64
	Failures   uint64
	AvgHandle  time.Duration
	MaxHandle  time.Duration
	HandledAll uint64
}

// Topics returns the inbound topics in name order.
func (s MetricsSnapshot) Topics() []string {
	out := make([]string, 0, len(s.Inbound))
	for t := range s.Inbound {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func copyCounts(m map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
