package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for store traffic, request
// handling and breach alerting.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	queryCount   map[string]int64
	queryRows    map[string]int64
	scanCount    int64
	scanRows     int64
	breachAlerts int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		queryCount:   make(map[string]int64),
		queryRows:    make(map[string]int64),
	}
}

// RecordRequest increments counters for HTTP requests.
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

// RecordStoreQuery counts one indexed store query and the rows it returned.
func (m *Metrics) RecordStoreQuery(index string, rows int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryCount[index]++
	m.queryRows[index] += int64(rows)
}

// RecordStoreScan counts one store scan and the rows it returned.
func (m *Metrics) RecordStoreScan(rows int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanCount++
	m.scanRows += int64(rows)
}

// RecordBreachAlerts counts alerts emitted by a breach scan.
func (m *Metrics) RecordBreachAlerts(count int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.breachAlerts += int64(count)
}
