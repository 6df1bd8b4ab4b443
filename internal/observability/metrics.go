package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	fetchCount   map[string]int64
	fetchTime    map[string]time.Duration
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Requests map[string]int64   `json:"requests"`
	Errors   map[string]int64   `json:"errors"`
	Fetches  map[string]int64   `json:"record_fetches"`
	FetchMS  map[string]float64 `json:"record_fetch_avg_ms"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		fetchCount:   make(map[string]int64),
		fetchTime:    make(map[string]time.Duration),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordFetch counts one record store list call by table and outcome.
func (m *Metrics) RecordFetch(table, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	key := table + "|" + outcome
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCount[key]++
	m.fetchTime[key] += duration
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Requests: map[string]int64{},
		Errors:   map[string]int64{},
		Fetches:  map[string]int64{},
		FetchMS:  map[string]float64{},
	}
	if m == nil {
		return snap
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.requestCount {
		snap.Requests[k] = v
	}
	for k, v := range m.errorCount {
		snap.Errors[k] = v
	}
	for k, v := range m.fetchCount {
		snap.Fetches[k] = v
		snap.FetchMS[k] = float64(m.fetchTime[k].Microseconds()) / 1000 / float64(v)
	}
	return snap
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
