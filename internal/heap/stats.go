package heap

// Stats is the observer snapshot returned by Heap.Stats: total bytes,
// used bytes, free-block count, the largest free block, and the two
// fragmentation ratios from spec 4.7. All ratios are zero when their
// denominator is zero.
type Stats struct {
	TotalMemory           uintptr
	UsedMemory            uintptr
	FreeBlockCount        int
	LargestFreeBlock      uintptr
	ExternalFragmentation float64
	InternalFragmentation float64
}

// Stats returns a read-only snapshot of allocator statistics. Thread-safe;
// never mutates state.
func (h *Heap) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.statsLocked()
}

// statsLocked computes Stats with h.mu already held.
func (h *Heap) statsLocked() Stats {
	var (
		freeCount       int
		totalFree       uintptr
		largestFree     uintptr
		internalSlack   uintptr
	)

	for b := h.list.head; b != nil; b = b.gnext {
		if b.isFree {
			freeCount++
			totalFree += b.totalSize

			if b.totalSize > largestFree {
				largestFree = b.totalSize
			}
		} else {
			internalSlack += b.totalSize - b.requestedSize - headerSize
		}
	}

	var externalFrag float64
	if totalFree > 0 {
		externalFrag = float64(totalFree-largestFree) / float64(totalFree)
	}

	var internalFrag float64
	if h.usedMemory > 0 {
		internalFrag = float64(internalSlack) / float64(h.usedMemory)
	}

	return Stats{
		TotalMemory:           h.totalMemory,
		UsedMemory:            h.usedMemory,
		FreeBlockCount:        freeCount,
		LargestFreeBlock:      largestFree,
		ExternalFragmentation: externalFrag,
		InternalFragmentation: internalFrag,
	}
}
