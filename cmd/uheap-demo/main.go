// Command uheap-demo runs the allocator against the concrete scenarios of
// the block-management engine's test plan and prints its statistics and a
// text-mode visualization of the resulting layout. It is an external
// collaborator of the core engine, not part of it (spec: test driver, PRNG,
// and visualizer are auxiliary).
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"unsafe"

	"github.com/fsnotify/fsnotify"

	"github.com/orizon-lang/uheap/internal/heap"
)

func main() {
	strategyFlag := flag.String("strategy", "quick-fit", "placement strategy: best-fit or quick-fit")
	watchDir := flag.String("watch", "", "directory to watch for scenario file changes; reruns the scenario on each write or create event")
	flag.Parse()

	strategy := heap.QuickFit
	if *strategyFlag == "best-fit" {
		strategy = heap.BestFit
	}

	run := func() {
		h := heap.New(strategy)
		runFillAndReadback(h)
		runFragmentationStress(h)

		fmt.Println(h.Visualize())

		stats := h.Stats()
		fmt.Printf("total=%d used=%d free_blocks=%d largest_free=%d ext_frag=%.4f int_frag=%.4f\n",
			stats.TotalMemory, stats.UsedMemory, stats.FreeBlockCount,
			stats.LargestFreeBlock, stats.ExternalFragmentation, stats.InternalFragmentation)
	}

	run()

	if *watchDir == "" {
		return
	}

	watchAndRerun(*watchDir, run)
}

// runFillAndReadback is scenario S1: allocate 50 blocks of random sizes in
// [8, 135], fill each with its index byte, then verify every byte reads
// back correctly.
func runFillAndReadback(h *heap.Heap) {
	rng := rand.New(rand.NewSource(1))

	const n = 50

	ptrs := make([]unsafe.Pointer, n)
	sizes := make([]int, n)

	for i := 0; i < n; i++ {
		sizes[i] = 8 + rng.Intn(135-8+1)
		ptrs[i] = h.Allocate(sizes[i])

		if ptrs[i] == nil {
			log.Printf("allocation %d failed (size=%d)", i, sizes[i])

			continue
		}

		data := unsafe.Slice((*byte)(ptrs[i]), sizes[i])
		for j := range data {
			data[j] = byte(i)
		}
	}

	for i := 0; i < n; i++ {
		if ptrs[i] == nil {
			continue
		}

		data := unsafe.Slice((*byte)(ptrs[i]), sizes[i])
		for _, v := range data {
			if v != byte(i) {
				log.Printf("corruption detected in block %d", i)

				break
			}
		}

		h.Release(ptrs[i])
	}
}

// runFragmentationStress is scenario S4: allocate 100 blocks of sizes
// ((i mod 64)+1)*8 + 1, release every odd-indexed block, then reallocate
// every odd slot with ((i mod 64)+1)*8.
func runFragmentationStress(h *heap.Heap) {
	const n = 100

	ptrs := make([]unsafe.Pointer, n)
	for i := 0; i < n; i++ {
		ptrs[i] = h.Allocate((i%64+1)*8 + 1)
	}

	for i := 1; i < n; i += 2 {
		h.Release(ptrs[i])
	}

	for i := 1; i < n; i += 2 {
		ptrs[i] = h.Allocate((i%64 + 1) * 8)
	}
}

// watchAndRerun uses fsnotify to re-run the active scenario whenever a file
// under dir changes, a live-reload loop for interactively tuning scenario
// parameters during development.
func watchAndRerun(dir string, run func()) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("uheap-demo: creating watcher: %v", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		log.Fatalf("uheap-demo: watching %s: %v", dir, err)
	}

	log.Printf("watching %s for changes; rerunning the scenario on every write or create", dir)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				log.Printf("scenario file changed: %s", event.Name)
				run()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}

			log.Printf("uheap-demo: watcher error: %v", err)
		}
	}
}
