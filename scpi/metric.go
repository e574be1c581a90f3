package scpi

import (
	"sync/atomic"
)

// EngineMetrics contains atomic metrics for a protocol engine.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type EngineMetrics struct {
	// CommandSendCount indicates the number of commands written.
	CommandSendCount atomic.Uint64
	// QuerySendCount indicates the number of queries issued.
	QuerySendCount atomic.Uint64
	// CompletionCount indicates the number of completion handshakes that succeeded.
	CompletionCount atomic.Uint64
	// CompletionErrCount indicates the number of completion handshakes that
	// ended in a status, parse, or timeout failure.
	CompletionErrCount atomic.Uint64
}

func (m *EngineMetrics) incCommandSendCount() {
	m.CommandSendCount.Add(1)
}

func (m *EngineMetrics) incQuerySendCount() {
	m.QuerySendCount.Add(1)
}

func (m *EngineMetrics) incCompletionCount() {
	m.CompletionCount.Add(1)
}

func (m *EngineMetrics) incCompletionErrCount() {
	m.CompletionErrCount.Add(1)
}
