package tabgo

import "sync/atomic"

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordExpand is called whenever the backing arrays of a table are
	// grown to fit appended rows. Amortized growth keeps this logarithmic
	// in the number of appends.
	RecordExpand(newCapacity int)

	// RecordSort is called after each sort, with the number of entries
	// permuted.
	RecordSort(size int)

	// RecordSerialize is called after each serialization with the number
	// of cells written, err nil on success.
	RecordSerialize(cells int, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordExpand(int)           {}
func (NoopMetricsCollector) RecordSort(int)             {}
func (NoopMetricsCollector) RecordSerialize(int, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ExpandCount     atomic.Int64
	SortCount       atomic.Int64
	SortedEntries   atomic.Int64
	SerializeCount  atomic.Int64
	SerializeErrors atomic.Int64
	SerializedCells atomic.Int64
}

// RecordExpand implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExpand(int) {
	b.ExpandCount.Add(1)
}

// RecordSort implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSort(size int) {
	b.SortCount.Add(1)
	b.SortedEntries.Add(int64(size))
}

// RecordSerialize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSerialize(cells int, err error) {
	b.SerializeCount.Add(1)
	b.SerializedCells.Add(int64(cells))
	if err != nil {
		b.SerializeErrors.Add(1)
	}
}
