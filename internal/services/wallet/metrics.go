package wallet

import "github.com/shopspring/decimal"

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordMutation(string, decimal.Decimal) {}
func (n *NoopMetricsCollector) RecordDriftRepair(uint)                {}
func (n *NoopMetricsCollector) RecordError(string, string)            {}
func (n *NoopMetricsCollector) RecordCacheHit(string)                 {}
func (n *NoopMetricsCollector) RecordCacheMiss(string)                {}
