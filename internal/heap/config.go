// Package heap implements a user-space general-purpose allocator on top of
// a contiguous, grow-only program-break region. It maintains a dense,
// address-ordered global list of every block alongside a size-segregated
// free index, and exposes a thread-safe facade for allocation and release.
package heap

// Strategy selects the placement policy (C5). It is a closed, two-member
// variant fixed at construction time; best-fit and quick-fit never share
// free-index bookkeeping so best-fit doesn't pay the index's maintenance
// cost (design note: strategy as a closed variant).
type Strategy int

const (
	BestFit Strategy = iota
	QuickFit
)

func (s Strategy) String() string {
	switch s {
	case BestFit:
		return "best-fit"
	case QuickFit:
		return "quick-fit"
	default:
		return "unknown"
	}
}

const (
	// wordAlign is the fixed machine-word alignment every block size and
	// payload address is rounded to.
	wordAlign = 8

	// bucketCount is K, the number of segregated free-index buckets.
	bucketCount = 10

	// bucketBaseSize is the size at or below which a free block belongs
	// to bucket 0.
	bucketBaseSize = 32

	// defaultSeedPages is how many OS pages the heap requests the first
	// time it is lazily initialised.
	defaultSeedPages = 1

	// DefaultStrategy is the build-time placement policy used by the
	// package-level singleton. Strategy choice is a build-time constant
	// of the implementation, never a runtime client option.
	DefaultStrategy = QuickFit
)
