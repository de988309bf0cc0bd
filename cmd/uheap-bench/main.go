// Command uheap-bench drives concurrent allocate/release workers against
// the allocator and reports throughput and tail latency, the way a
// capacity-planning smoke test would before a release.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"time"
	"unsafe"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"

	"github.com/orizon-lang/uheap/internal/heap"
)

// minSupportedVersion is the oldest uheap release this harness is known to
// produce meaningful numbers against; older layouts changed the header
// size and would skew the results.
const minSupportedVersion = "1.0.0"

func main() {
	strategyFlag := flag.String("strategy", "quick-fit", "placement strategy: best-fit or quick-fit")
	workers := flag.Int("workers", 8, "number of concurrent worker goroutines")
	iterations := flag.Int("iterations", 20000, "allocate/release iterations per worker")
	minVersion := flag.String("min-version", minSupportedVersion, "refuse to run against a reported version older than this")
	reportVersion := flag.String("report-version", minSupportedVersion, "version string this build reports, for the compatibility gate")
	flag.Parse()

	if err := checkVersionGate(*minVersion, *reportVersion); err != nil {
		log.Fatalf("uheap-bench: %v", err)
	}

	strategy := heap.QuickFit
	if *strategyFlag == "best-fit" {
		strategy = heap.BestFit
	}

	h := heap.New(strategy)

	result := run(h, *workers, *iterations)
	result.print(os.Stdout)
}

// checkVersionGate refuses to proceed if reported is older than min,
// guarding against silently comparing numbers across incompatible layout
// versions.
func checkVersionGate(min, reported string) error {
	minV, err := semver.NewVersion(min)
	if err != nil {
		return fmt.Errorf("parsing -min-version: %w", err)
	}

	reportedV, err := semver.NewVersion(reported)
	if err != nil {
		return fmt.Errorf("parsing -report-version: %w", err)
	}

	if reportedV.LessThan(minV) {
		return fmt.Errorf("reported version %s is older than the minimum supported %s", reportedV, minV)
	}

	return nil
}

type benchResult struct {
	opsPerSecond float64
	p50          time.Duration
	p99          time.Duration
	failures     int64
}

func (r benchResult) print(w *os.File) {
	fmt.Fprintf(w, "ops/sec=%.0f p50=%s p99=%s failures=%d\n",
		r.opsPerSecond, r.p50, r.p99, r.failures)
}

// run fans out workers workers, each performing iterations allocate/release
// pairs of a pseudo-random size, coordinated with an errgroup so the first
// worker error (there are none today, but the shape survives adding one)
// aborts the rest by way of the shared context.
func run(h *heap.Heap, workers, iterations int) benchResult {
	g, ctx := errgroup.WithContext(context.Background())

	latencies := make([][]time.Duration, workers)
	failures := make([]int64, workers)

	start := time.Now()

	for w := 0; w < workers; w++ {
		w := w
		latencies[w] = make([]time.Duration, 0, iterations)

		g.Go(func() error {
			rng := rand.New(rand.NewSource(int64(w) + 1))

			for i := 0; i < iterations; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				size := 8 + rng.Intn(512)

				opStart := time.Now()
				p := h.Allocate(size)
				latencies[w] = append(latencies[w], time.Since(opStart))

				if p == nil {
					failures[w]++

					continue
				}

				// Touch the payload so the allocation isn't optimised away
				// and to mimic real client behaviour.
				*(*byte)(unsafe.Pointer(p)) = byte(i)

				h.Release(p)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("uheap-bench: worker error: %v", err)
	}

	elapsed := time.Since(start)

	var all []time.Duration

	var totalFailures int64

	for w := 0; w < workers; w++ {
		all = append(all, latencies[w]...)
		totalFailures += failures[w]
	}

	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })

	totalOps := workers * iterations

	return benchResult{
		opsPerSecond: float64(totalOps) / elapsed.Seconds(),
		p50:          percentile(all, 0.50),
		p99:          percentile(all, 0.99),
		failures:     totalFailures,
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	idx := int(p * float64(len(sorted)-1))

	return sorted[idx]
}
