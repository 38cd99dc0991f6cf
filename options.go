package tabgo

import (
	"github.com/hupe1980/tabgo/axis"
	"github.com/hupe1980/tabgo/codec"
	"github.com/hupe1980/tabgo/store"
)

type options struct {
	logger      *Logger
	metrics     MetricsCollector
	codec       codec.Codec
	compression store.CompressionType
	capacity    int
	policy      axis.DuplicatePolicy
	workers     int
}

func defaultOptions() *options {
	return &options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
		codec:   codec.Default,
		policy:  axis.RejectDuplicates,
	}
}

// Option configures table construction and load behavior.
type Option func(*options)

// WithLogger configures structured logging. A nil logger disables it.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures operational metrics collection.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithCodec configures the codec used for object-kind cells during
// serialization. If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures payload compression for Write/SaveFile.
func WithCompression(c store.CompressionType) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCapacity pre-reserves row slots so early appends avoid expansions.
func WithCapacity(capacity int) Option {
	return func(o *options) {
		if capacity > 0 {
			o.capacity = capacity
		}
	}
}

// WithDuplicatePolicy configures how AddRow/AddRows/AddColumn treat keys
// that are already present. The default rejects duplicates.
func WithDuplicatePolicy(policy axis.DuplicatePolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithParallel marks the table parallel: vector scans and sorts split
// their ordinal range across a fixed worker pool of workers goroutines
// (negative selects GOMAXPROCS; zero, the default, stays serial). Every
// worker builds its own cursor; user callbacks must tolerate concurrent
// invocation.
func WithParallel(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}
