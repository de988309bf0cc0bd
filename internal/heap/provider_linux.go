//go:build linux

package heap

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// brkProvider implements C1 with the real brk(2) syscall, advancing the
// process program break. This is the straightforward, direct-syscall path;
// see provider_fallback.go for platforms with no brk(2).
type brkProvider struct {
	page uintptr
}

func newOSProvider() provider {
	return &brkProvider{page: uintptr(unix.Getpagesize())}
}

func (p *brkProvider) pageSize() uintptr { return p.page }

// currentBreak queries the break without moving it, the conventional
// brk(0) idiom.
func (p *brkProvider) currentBreak() (uintptr, error) {
	addr, _, errno := unix.Syscall(unix.SYS_BRK, 0, 0, 0)
	if errno != 0 {
		return 0, fmt.Errorf("uheap: brk(0) query failed: %w", errno)
	}

	return addr, nil
}

func (p *brkProvider) grow(minBytes uintptr) (*block, error) {
	growBy := roundGrowth(minBytes, p.page)

	base, err := p.currentBreak()
	if err != nil {
		return nil, err
	}

	want := base + growBy

	got, _, errno := unix.Syscall(unix.SYS_BRK, want, 0, 0)
	if errno != 0 || got < want {
		return nil, fmt.Errorf("%w: brk(%d) failed", errOutOfMemory, want)
	}

	return initBlock(base, growBy), nil
}
