package parallel

import "runtime"

import "github.com/klauspost/cpuid/v2"

// Threads reports the default worker count for this machine.
// Physical cores are preferred because the split search is memory bound.
func Threads() int {
	if n := cpuid.CPU.PhysicalCores; n > 0 {
		return n
	}
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Limit resolves a configured thread count, where zero or less means Threads.
func Limit(configured int) int {
	if configured > 0 {
		return configured
	}
	return Threads()
}
