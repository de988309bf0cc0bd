package heap

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// fakeProvider backs growth with a single pre-allocated Go byte slice,
// bumping a cursor through it page by page. It never touches the OS,
// which makes the block-engine tests deterministic and independent of the
// platform's real page size, the way the teacher's ArenaAllocatorImpl
// (internal/allocator/arena.go) bumps a cursor through a pre-made buffer.
type fakeProvider struct {
	arena  []byte
	cursor uintptr
	page   uintptr
}

func newFakeProvider(totalSize int, page uintptr) *fakeProvider {
	return &fakeProvider{arena: make([]byte, totalSize), page: page}
}

func (f *fakeProvider) pageSize() uintptr { return f.page }

func (f *fakeProvider) grow(minBytes uintptr) (*block, error) {
	growBy := roundGrowth(minBytes, f.page)
	if f.cursor+growBy > uintptr(len(f.arena)) {
		return nil, errOutOfMemory
	}

	addr := uintptr(unsafe.Pointer(&f.arena[0])) + f.cursor
	f.cursor += growBy

	return initBlock(addr, growBy), nil
}

const testPageSize = 4096

// newTestHeap builds a Heap over a fakeProvider with arenaPages worth of
// backing memory and the given strategy.
func newTestHeap(strategy Strategy, arenaPages int) *Heap {
	return newHeapWithProvider(strategy, newFakeProvider(arenaPages*testPageSize, testPageSize))
}

// checkInvariants walks h's global list and asserts invariants 1-5 of
// spec 8 hold. Invariant 6 (non-overlap of used payload ranges) follows
// from invariant 1 (tiling) plus non-free blocks never sharing addresses,
// so it is not checked separately here.
func checkInvariants(t *testing.T, h *Heap) {
	t.Helper()

	var (
		wantAddr          = h.base
		sawFree           bool
		totalMemory       uintptr
		usedMemory        uintptr
		indexedFreeBlocks = map[*block]bool{}
	)

	if h.strategy == QuickFit {
		for j, head := range h.index.buckets {
			for b := head; b != nil; b = b.fnext {
				indexedFreeBlocks[b] = true
				require.True(t, b.isFree, "free index contains a used block")
				require.Equal(t, j, classOf(b.totalSize), "block sits in the wrong size-class bucket")
			}
		}
	}

	for b := h.list.head; b != nil; b = b.gnext {
		// Invariant 1: tiling, no gaps, no overlap.
		require.Equal(t, wantAddr, addrOf(b), "global list has a gap or overlap")
		wantAddr += b.totalSize

		// Invariant 2: no two adjacent free blocks.
		if b.isFree {
			require.False(t, sawFree, "two adjacent free blocks found")
			sawFree = true
		} else {
			sawFree = false
		}

		// Invariant 4: alignment.
		require.Zero(t, b.totalSize%wordAlign, "block size not word-aligned")
		require.Zero(t, addrOf(b)%wordAlign, "block address not word-aligned")
		require.Zero(t, uintptr(b.payload())%wordAlign, "payload address not word-aligned")

		totalMemory += b.totalSize
		if !b.isFree {
			usedMemory += b.totalSize
		}

		// Invariant 3: index consistency (quick-fit only).
		if h.strategy == QuickFit {
			require.Equal(t, b.isFree, indexedFreeBlocks[b], "block free-index membership does not match is_free")
		}
	}

	require.Equal(t, h.base+totalMemory, wantAddr, "global list does not tile [base, break)")

	// Invariant 5: accounting.
	require.Equal(t, totalMemory, h.totalMemory, "total_memory accounting mismatch")
	require.Equal(t, usedMemory, h.usedMemory, "used_memory accounting mismatch")
}
