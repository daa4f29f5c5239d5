package config

import "runtime"

// BatchConfig holds settings for batch evaluation.
type BatchConfig struct {
	// Workers is the number of concurrent evaluators. Zero means one per CPU.
	Workers int

	// BufferSize is the capacity of the pool's input and output channels
	BufferSize int

	// CacheSize bounds the evaluation cache. Zero disables it; negative
	// means unlimited.
	CacheSize int
}

// NewBatchConfig creates a BatchConfig with default values.
func NewBatchConfig() *BatchConfig {
	return &BatchConfig{
		Workers:    0,
		BufferSize: 64,
		CacheSize:  4096,
	}
}

// WorkerCount resolves Workers to a concrete count.
func (b *BatchConfig) WorkerCount() int {
	if b.Workers <= 0 {
		return runtime.NumCPU()
	}
	return b.Workers
}

// Validate checks that the batch configuration is valid.
func (b *BatchConfig) Validate() error {
	if b.Workers < 0 {
		return invalid("workers (%d) must not be negative", b.Workers)
	}
	if b.BufferSize < 0 {
		return invalid("buffer size (%d) must not be negative", b.BufferSize)
	}
	return nil
}

// CacheCapacity resolves CacheSize to a capacity for the evaluation
// cache, where zero means unlimited.
func (b *BatchConfig) CacheCapacity() (capacity int, enabled bool) {
	switch {
	case b.CacheSize == 0:
		return 0, false
	case b.CacheSize < 0:
		return 0, true
	default:
		return b.CacheSize, true
	}
}
