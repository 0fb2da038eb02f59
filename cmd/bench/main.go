package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/notebox"
	"github.com/aretw0/notebox/pkg/adapters/memory"
	"github.com/aretw0/notebox/pkg/core"
)

func main() {
	workers := flag.Int("workers", 8, "Number of concurrent principals")
	ops := flag.Int("ops", 100000, "Operations per worker")
	watchers := flag.Int("watchers", 0, "Change feed subscribers per principal")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	store := memory.NewStore(memory.Config{Logger: logger})
	service := notebox.New(notebox.WithLogger(logger), notebox.WithStore(store))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Subscribers that drain their feed, so publishing cost is part of the run.
	var received atomic.Int64
	for w := 0; w < *workers; w++ {
		for i := 0; i < *watchers; i++ {
			events, err := service.Watch(ctx, principalFor(w))
			if err != nil {
				panic(err)
			}
			go func() {
				for range events {
					received.Add(1)
				}
			}()
		}
	}

	fmt.Printf("Running %d workers x %d ops...\n", *workers, *ops)
	var counts [5]atomic.Int64
	start := time.Now()

	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			run(ctx, service, principalFor(w), *ops, rand.New(rand.NewSource(int64(w))), &counts)
		}(w)
	}
	wg.Wait()
	duration := time.Since(start)

	total := *workers * *ops
	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d ops):\n", total)
	fmt.Printf("  Duration:   %v\n", duration)
	fmt.Printf("  Throughput: %.0f ops/s\n", float64(total)/duration.Seconds())
	for i, name := range []string{"add", "list", "get", "edit", "delete"} {
		fmt.Printf("  %-7s %d\n", name+":", counts[i].Load())
	}
	if *watchers > 0 {
		fmt.Printf("  Events received: %d\n", received.Load())
	}
	fmt.Printf("--------------------------------------------------\n")

	state, err := json.MarshalIndent(store.State(), "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Printf("Store state:\n%s\n", state)
}

// run issues a write-heavy mix: 40% add, 20% list, 20% get, 10% edit, 10% delete.
func run(ctx context.Context, service *core.Service, p core.Principal, ops int, rng *rand.Rand, counts *[5]atomic.Int64) {
	var size uint64
	for i := 0; i < ops; i++ {
		index := uint64(0)
		if size > 0 {
			index = uint64(rng.Int63n(int64(size)))
		}
		switch n := rng.Intn(10); {
		case n < 4:
			service.AddNote(ctx, p, fmt.Sprintf("note %d", i), "benchmark body")
			size++
			counts[0].Add(1)
		case n < 6:
			size = uint64(len(service.ListNotes(ctx, p)))
			counts[1].Add(1)
		case n < 8:
			service.GetNote(ctx, p, index)
			counts[2].Add(1)
		case n < 9:
			service.EditNote(ctx, p, index, "edited", "benchmark body")
			counts[3].Add(1)
		default:
			if service.DeleteNote(ctx, p, index) {
				size--
			}
			counts[4].Add(1)
		}
	}
}

func principalFor(w int) core.Principal {
	return core.Principal(fmt.Sprintf("bench-%d", w))
}
