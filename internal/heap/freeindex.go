package heap

import "math/bits"

// freeIndex is the segregated free-list accelerator (C4): bucketCount
// unordered doubly-linked lists of free blocks, keyed by size class. It is
// meaningful only in quick-fit mode; best-fit never touches it (spec 9,
// open question 1 — a block is in exactly one bucket iff is_free is true).
type freeIndex struct {
	buckets [bucketCount]*block
}

// classOf returns the bucket index for size s:
//
//	index(s) = min(K-1, max(0, floor(log2(s/32))+1)), index(s) = 0 for s <= 32.
//
// floor(log2(s/32)) for s > 32 equals bits.Len(uint(s>>5)) - 1, so
// index(s) = bits.Len(uint(s>>5)), clamped to K-1.
func classOf(s uintptr) int {
	if s <= bucketBaseSize {
		return 0
	}

	class := bits.Len(uint(s >> 5))
	if class > bucketCount-1 {
		class = bucketCount - 1
	}

	return class
}

// insert adds b to the head of its size class's bucket.
func (fi *freeIndex) insert(b *block) {
	class := classOf(b.totalSize)
	head := fi.buckets[class]

	b.fprev = nil
	b.fnext = head

	if head != nil {
		head.fprev = b
	}

	fi.buckets[class] = b
}

// remove is O(1) given the node.
func (fi *freeIndex) remove(b *block) {
	class := classOf(b.totalSize)

	if b.fprev != nil {
		b.fprev.fnext = b.fnext
	} else {
		fi.buckets[class] = b.fnext
	}

	if b.fnext != nil {
		b.fnext.fprev = b.fprev
	}

	b.fprev, b.fnext = nil, nil
}

// scanFrom returns the first fitting block in buckets i, i+1, ..., K-1;
// within a bucket, scan is first-fit.
func (fi *freeIndex) scanFrom(i int, required uintptr) *block {
	if i < 0 {
		i = 0
	}

	for j := i; j < bucketCount; j++ {
		for b := fi.buckets[j]; b != nil; b = b.fnext {
			if b.totalSize >= required {
				return b
			}
		}
	}

	return nil
}
