//go:build !linux

package heap

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// reservationSize is how much virtual address space the fallback provider
// reserves up front, PROT_NONE, and commits into page by page. Most of it
// is never touched; this is the portable equivalent of a monotonic program
// break on platforms that have no brk(2) syscall.
const reservationSize = 1 << 30 // 1GB of address space

// mmapProvider implements C1 by reserving a single large anonymous mapping
// once and bumping a committed boundary into it on each grow, grounded in
// the teacher's region-reservation approach (internal/runtime/region_alloc.go).
type mmapProvider struct {
	page      uintptr
	base      uintptr
	committed uintptr
	reserved  uintptr
}

func newOSProvider() provider {
	return &mmapProvider{page: uintptr(unix.Getpagesize())}
}

func (p *mmapProvider) pageSize() uintptr { return p.page }

func (p *mmapProvider) reserve() error {
	data, err := unix.Mmap(-1, 0, reservationSize, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return fmt.Errorf("%w: reservation mmap failed: %v", errOutOfMemory, err)
	}

	p.base = uintptr(unsafe.Pointer(&data[0]))
	p.reserved = reservationSize

	return nil
}

func (p *mmapProvider) grow(minBytes uintptr) (*block, error) {
	if p.base == 0 {
		if err := p.reserve(); err != nil {
			return nil, err
		}
	}

	growBy := roundGrowth(minBytes, p.page)
	if p.committed+growBy > p.reserved {
		return nil, fmt.Errorf("%w: reservation exhausted", errOutOfMemory)
	}

	addr := p.base + p.committed

	region := unsafe.Slice((*byte)(unsafe.Pointer(addr)), growBy)
	if err := unix.Mprotect(region, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return nil, fmt.Errorf("%w: mprotect failed: %v", errOutOfMemory, err)
	}

	p.committed += growBy

	return initBlock(addr, growBy), nil
}
