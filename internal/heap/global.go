package heap

import "unsafe"

// defaultHeap is the package-level singleton used by the convenience
// functions below. It is constructed once, at package initialisation, and
// seeds its memory lazily on the first Allocate.
var defaultHeap = New(DefaultStrategy)

// Allocate satisfies n bytes from the default, build-time-configured heap.
// See Heap.Allocate.
func Allocate(n int) unsafe.Pointer { return defaultHeap.Allocate(n) }

// Release returns p to the default heap. See Heap.Release.
func Release(p unsafe.Pointer) { defaultHeap.Release(p) }

// GetStats returns a snapshot of the default heap's statistics.
func GetStats() Stats { return defaultHeap.Stats() }

// Visualize renders the default heap's current layout.
func Visualize() string { return defaultHeap.Visualize() }
