package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for requests, errors, and
// calls to the external text-understanding capability.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	llmCallCount map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		llmCallCount: make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
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

// RecordLLMCall counts one round trip to the external capability.
// Operation is one of extract, fix, parse_query; outcome is ok, degraded,
// or error.
func (m *Metrics) RecordLLMCall(operation, outcome string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.llmCallCount[operation+"|"+outcome]++
}

// LLMCallCount returns the counter for one operation/outcome pair.
func (m *Metrics) LLMCallCount(operation, outcome string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.llmCallCount[operation+"|"+outcome]
}
