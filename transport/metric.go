package transport

import (
	"sync/atomic"
)

// Metrics contains atomic I/O metrics for a transport.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type Metrics struct {
	// ConnectCount indicates the number of successful connects.
	ConnectCount atomic.Uint64
	// BytesWritten indicates the number of bytes written, terminators included.
	BytesWritten atomic.Uint64
	// BytesRead indicates the number of bytes read, terminators included.
	BytesRead atomic.Uint64
	// WriteErrCount indicates the number of failed writes.
	WriteErrCount atomic.Uint64
	// ReadErrCount indicates the number of failed reads.
	ReadErrCount atomic.Uint64
}

func (m *Metrics) incConnectCount() {
	m.ConnectCount.Add(1)
}

func (m *Metrics) addBytesWritten(n int) {
	m.BytesWritten.Add(uint64(n)) //nolint:gosec
}

func (m *Metrics) addBytesRead(n int) {
	m.BytesRead.Add(uint64(n)) //nolint:gosec
}

func (m *Metrics) incWriteErrCount() {
	m.WriteErrCount.Add(1)
}

func (m *Metrics) incReadErrCount() {
	m.ReadErrCount.Add(1)
}
