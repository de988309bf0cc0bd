package heap

import "unsafe"

// headerSize is the fixed, word-aligned size of every block header. Because
// it is itself a multiple of wordAlign, a payload address recovered from it
// is naturally aligned (spec 4.2).
var headerSize = alignUp(unsafe.Sizeof(block{}), wordAlign)

// block is the in-band metadata record stored at the start of every block,
// free or used (C2). It lives directly inside the heap region; its own
// address is addrOf(b), and it is recovered from a client payload pointer
// as p - headerSize. That recovery is the single reason the allocator is
// address-reversible and the critical trust boundary on Release.
type block struct {
	totalSize     uintptr
	requestedSize uintptr
	isFree        bool

	gprev, gnext *block // C3: global address-ordered list links
	fprev, fnext *block // C4: free-index bucket links, valid only while isFree
}

// addrOf returns b's own address in the heap region.
func addrOf(b *block) uintptr { return uintptr(unsafe.Pointer(b)) }

// blockAt overlays a block header onto an existing address.
func blockAt(addr uintptr) *block { return (*block)(unsafe.Pointer(addr)) }

// payload returns the client-visible byte range start for b.
func (b *block) payload() unsafe.Pointer {
	return unsafe.Pointer(addrOf(b) + headerSize)
}

// blockFromPayload recovers the header for a payload pointer.
func blockFromPayload(p unsafe.Pointer) *block {
	return blockAt(uintptr(p) - headerSize)
}

// alignUp rounds size up to the nearest multiple of alignment, which must
// be a power of two.
func alignUp(size, alignment uintptr) uintptr {
	return (size + alignment - 1) &^ (alignment - 1)
}
