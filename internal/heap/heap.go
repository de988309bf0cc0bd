package heap

import (
	"sync"
	"unsafe"
)

// Heap is the allocator facade (C7): a single owning record holding the
// global address list, the free index, and the accounting counters, all
// guarded by one process-wide mutual-exclusion lock. It is meant to be
// constructed once and never destroyed during process life (design note:
// global mutable state).
//
// Every public entry point acquires the lock on entry and releases it on
// every exit path via defer, including error and out-of-memory returns.
// No lock is ever held across a call out to client code, because there is
// no such call on any path.
type Heap struct {
	mu sync.Mutex

	strategy Strategy
	provider provider

	list  globalList
	index freeIndex

	base        uintptr
	initialized bool

	totalMemory uintptr
	usedMemory  uintptr
}

// New constructs a Heap using the given placement strategy and the
// platform's default heap provider. The heap is not yet backed by any OS
// memory; it lazily seeds itself on the first Allocate.
func New(strategy Strategy) *Heap {
	return &Heap{strategy: strategy, provider: newDefaultProvider()}
}

// newHeapWithProvider is a test/tooling seam: it builds a Heap over an
// injected provider (e.g. a mock that can be made to fail on demand) so
// the out-of-memory path can be exercised deterministically.
func newHeapWithProvider(strategy Strategy, p provider) *Heap {
	return &Heap{strategy: strategy, provider: p}
}

// ensureInit performs the lazy one-shot seed grow. Must be called with
// h.mu held; the check happens inside the lock so concurrent first calls
// are serialized and only one performs the initial grow (spec 5:
// initialization race).
func (h *Heap) ensureInit() error {
	if h.initialized {
		return nil
	}

	seed, err := h.provider.grow(defaultSeedPages * h.provider.pageSize())
	if err != nil {
		return err
	}

	h.base = addrOf(seed)
	h.list.insertTail(seed)
	h.totalMemory += seed.totalSize

	if h.strategy == QuickFit {
		h.index.insert(seed)
	}

	h.initialized = true

	return nil
}

// Allocate satisfies a request for n payload bytes, returning a payload
// pointer or nil. Requests of zero or negative size fail with
// invalid-argument and return nil (spec 7); out-of-memory also returns
// nil. Thread-safe; lazily seeds the heap on first call.
func (h *Heap) Allocate(n int) unsafe.Pointer {
	p, _ := h.allocate(n)

	return p
}

// allocate is the internal, error-returning counterpart of Allocate. It
// exists as a seam for tests that need to distinguish invalid-argument
// from out-of-memory rather than just observing a nil pointer.
func (h *Heap) allocate(n int) (unsafe.Pointer, error) {
	if n <= 0 {
		return nil, errInvalidArgument
	}

	required := requiredSize(n)

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ensureInit(); err != nil {
		return nil, err
	}

	b, err := h.place(required)
	if err != nil {
		return nil, err
	}

	b.isFree = false
	b.requestedSize = uintptr(n)
	h.usedMemory += b.totalSize

	return b.payload(), nil
}

// Release returns a previously allocated payload pointer to the heap. A
// nil pointer is a no-op. A pointer whose header is already marked free is
// an idempotent double-free no-op (spec 7). Otherwise the block is marked
// free, its requested size cleared, and it is coalesced with any free
// neighbours.
func (h *Heap) Release(p unsafe.Pointer) {
	if p == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	b := blockFromPayload(p)
	if b.isFree {
		return
	}

	b.isFree = true
	h.usedMemory -= b.totalSize
	b.requestedSize = 0

	h.coalesce(b)
}
