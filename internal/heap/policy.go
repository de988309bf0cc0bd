package heap

// requiredSize computes the total block size needed to satisfy a payload
// request of n bytes: align8(n + headerSize) (spec 4.5).
func requiredSize(n int) uintptr {
	return alignUp(uintptr(n)+headerSize, wordAlign)
}

// place selects or creates a free block able to satisfy a required
// allocation size (C5). Candidate selection is a closed, two-member
// strategy variant: best-fit scans the global list for the smallest
// adequate free block, quick-fit scans the free index upward from the
// request's size class. Whichever strategy finds no candidate falls
// through to growing the heap.
func (h *Heap) place(required uintptr) (*block, error) {
	var candidate *block

	switch h.strategy {
	case BestFit:
		candidate = h.bestFitScan(required)
	case QuickFit:
		candidate = h.index.scanFrom(classOf(required), required)
		if candidate != nil {
			h.index.remove(candidate)
		}
	}

	if candidate == nil {
		grown, err := h.grow(required)
		if err != nil {
			return nil, err
		}

		candidate = grown
	}

	return h.splitOrConsume(candidate, required), nil
}

// bestFitScan traverses the global list and returns the smallest free
// block able to hold required bytes; ties go to the earliest address
// encountered (spec 4.5). This mode never touches the free index.
func (h *Heap) bestFitScan(required uintptr) *block {
	var best *block

	for b := h.list.head; b != nil; b = b.gnext {
		if !b.isFree || b.totalSize < required {
			continue
		}

		if best == nil || b.totalSize < best.totalSize {
			best = b
		}
	}

	return best
}

// grow asks the provider for more memory and appends it to the global
// list. In quick-fit mode, if the new block lands adjacent to a free tail
// the two are coalesced first so a single larger candidate comes back and
// the "no two adjacent free blocks" invariant holds across a grow. In
// best-fit mode no free-index touches are required, and no coalescing is
// needed either: the grown block is about to become the candidate and is
// marked used by allocate right after place returns, under the same lock,
// so it can never be observed free next to another free block.
func (h *Heap) grow(required uintptr) (*block, error) {
	grown, err := h.provider.grow(required)
	if err != nil {
		return nil, err
	}

	prevTail := h.list.tail
	h.list.insertTail(grown)
	h.totalMemory += grown.totalSize

	if h.strategy == QuickFit && prevTail != nil && prevTail.isFree {
		h.index.remove(prevTail)
		prevTail.totalSize += grown.totalSize
		h.list.unlink(grown)

		return prevTail, nil
	}

	return grown, nil
}

// splitOrConsume truncates candidate to required and splices a free
// remainder after it when the remainder would have a usable payload of at
// least one aligned word; otherwise candidate is consumed whole,
// tolerating up to headerSize+wordAlign-1 bytes of internal slack
// (spec 4.5's split threshold).
func (h *Heap) splitOrConsume(candidate *block, required uintptr) *block {
	if candidate.totalSize >= required+headerSize+wordAlign {
		remainderSize := candidate.totalSize - required
		candidate.totalSize = required

		remainder := initBlock(addrOf(candidate)+required, remainderSize)
		h.list.spliceInAfter(candidate, remainder)

		if h.strategy == QuickFit {
			h.index.insert(remainder)
		}
	}

	return candidate
}
