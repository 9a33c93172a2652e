package sim

import (
	"runtime"
	"sync"
)

// Kernels parallelize over reduced row indices. The mask partitioning
// guarantees distinct rows touch disjoint packed slots, including the
// conjugate mirror writes, so chunks need no locking.
const parThreshold = 1 << 8

// parRange splits [0, n) into near-equal contiguous chunks, runs fn on each
// from its own goroutine and joins them before returning. Sweeps below the
// threshold run inline.
func parRange(n int, fn func(lo, hi int)) {
	if n < parThreshold {
		if n > 0 {
			fn(0, n)
		}
		return
	}
	workers := min(runtime.GOMAXPROCS(0), n)
	if workers <= 1 {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := range workers {
		lo := w * chunk
		hi := min(lo+chunk, n)
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// parSum runs fn over chunks of [0, n), each returning a partial complex
// sum, and returns the total.
func parSum(n int, fn func(lo, hi int) complex128) complex128 {
	if n < parThreshold {
		if n == 0 {
			return 0
		}
		return fn(0, n)
	}
	workers := min(runtime.GOMAXPROCS(0), n)
	if workers <= 1 {
		return fn(0, n)
	}
	chunk := (n + workers - 1) / workers
	parts := make([]complex128, workers)
	var wg sync.WaitGroup
	for w := range workers {
		lo := w * chunk
		hi := min(lo+chunk, n)
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			parts[w] = fn(lo, hi)
		}(w, lo, hi)
	}
	wg.Wait()
	total := complex128(0)
	for _, p := range parts {
		total += p
	}
	return total
}
