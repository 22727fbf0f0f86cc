package logging

import "sync"

// Metrics is a small named-counter store for loop and router health. It is
// safe for concurrent use.
type Metrics struct {
	mu       sync.RWMutex
	counters map[string]uint64
}

func NewMetrics() *Metrics {
	return &Metrics{counters: make(map[string]uint64)}
}

// TelemetryAdd increments a counter by delta.
func (m *Metrics) TelemetryAdd(key string, delta uint64) {
	if m == nil || key == "" {
		return
	}
	m.mu.Lock()
	m.counters[key] += delta
	m.mu.Unlock()
}

// TelemetryStore overwrites a counter with value.
func (m *Metrics) TelemetryStore(key string, value uint64) {
	if m == nil || key == "" {
		return
	}
	m.mu.Lock()
	m.counters[key] = value
	m.mu.Unlock()
}

// TelemetrySnapshot copies all counters.
func (m *Metrics) TelemetrySnapshot() map[string]uint64 {
	if m == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	copied := make(map[string]uint64, len(m.counters))
	for k, v := range m.counters {
		copied[k] = v
	}
	return copied
}
