package util

import "runtime"

// OptimalPoolSize returns the pool size used for CPU-bound work:
// min(max(NumCPU*2, 4), 32). Parser pools and the extraction worker pool use
// the same value so workers never block waiting for a parser.
func OptimalPoolSize() int {
	size := runtime.NumCPU() * 2
	if size < 4 {
		size = 4
	}
	if size > 32 {
		size = 32
	}
	return size
}

// PoolSizeWithOverride returns override when positive, otherwise
// OptimalPoolSize(). Used to honor explicit concurrency flags.
func PoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return OptimalPoolSize()
}
