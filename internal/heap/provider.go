package heap

import (
	"errors"
	"unsafe"
)

// errOutOfMemory signals that the OS refused to grow the heap region any
// further (spec 7: out-of-memory).
var errOutOfMemory = errors.New("uheap: out of memory")

// errInvalidArgument signals a zero or negative allocation request
// (spec 7: invalid-argument).
var errInvalidArgument = errors.New("uheap: invalid argument")

// provider is the C1 heap-provider contract: move the program break (or
// its portable equivalent) forward and hand back a single free block
// covering the newly mapped range. Implementations never insert into the
// free index and never shrink; growth is monotonic for the life of the
// process. The caller (heap.grow) is responsible for splicing the
// returned block onto the tail of the global list.
type provider interface {
	// grow advances the region by at least minBytes, rounded up to a
	// page-aligned multiple, and returns a freshly initialised free
	// block covering exactly the new range. The returned block's start
	// address is strictly greater than any block previously returned by
	// this provider.
	grow(minBytes uintptr) (*block, error)

	// pageSize reports the OS page size used for rounding.
	pageSize() uintptr
}

// roundGrowth rounds minBytes up to the larger of one page and a
// page-aligned multiple of minBytes (spec 4.1).
func roundGrowth(minBytes, page uintptr) uintptr {
	if minBytes <= page {
		return page
	}

	return alignUp(minBytes, page)
}

// initBlock writes a fresh, unlinked free-block header at addr covering
// size bytes. Shared by every provider implementation so the header
// layout lives in exactly one place.
func initBlock(addr, size uintptr) *block {
	b := (*block)(unsafe.Pointer(addr))
	*b = block{totalSize: size, isFree: true}

	return b
}

// newDefaultProvider returns the platform heap provider selected at
// compile time.
func newDefaultProvider() provider {
	return newOSProvider()
}
