package executor

import "math/big"

// MetricsCollector receives execution outcomes.
type MetricsCollector interface {
	RecordTransfer(asset string, amount *big.Int)
	RecordRefund(asset string, amount *big.Int)
	RecordError(state, reason string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTransfer(string, *big.Int) {}
func (NoopMetricsCollector) RecordRefund(string, *big.Int)   {}
func (NoopMetricsCollector) RecordError(string, string)      {}
