package utils

import (
	"sync"
	"time"
)

// MetricsCollector tracks request counts and operation latencies across the
// server. It is fed by the logging middleware.
type MetricsCollector struct {
	mu           sync.RWMutex
	requestCount uint64
	errorCount   uint64

	// Maps operation name to list of latencies in nanoseconds
	operationTimes map[string][]int64

	systemStartTime time.Time
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		operationTimes:  make(map[string][]int64),
		systemStartTime: time.Now(),
	}
}

func (mc *MetricsCollector) IncrementRequests() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.requestCount++
}

func (mc *MetricsCollector) IncrementErrors() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.errorCount++
}

// maxLatencySamples bounds the per-operation history; older samples are
// discarded first.
const maxLatencySamples = 1000

func (mc *MetricsCollector) AddOperationLatency(operationName string, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	samples := append(mc.operationTimes[operationName], duration.Nanoseconds())
	if len(samples) > maxLatencySamples {
		samples = samples[len(samples)-maxLatencySamples:]
	}
	mc.operationTimes[operationName] = samples
}

func (mc *MetricsCollector) RequestCount() uint64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.requestCount
}

func (mc *MetricsCollector) ErrorCount() uint64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.errorCount
}

func (mc *MetricsCollector) Uptime() time.Duration {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return time.Since(mc.systemStartTime)
}
