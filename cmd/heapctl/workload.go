package main

import (
	"math/rand"
	"unsafe"

	"github.com/joshuapare/heapkit/heap"
)

// levelOptions maps the numeric --level flag to its preset.
var levelOptions = map[int]heap.Options{
	1: heap.Level1,
	2: heap.Level2,
	3: heap.Level3,
	4: heap.Level4,
}

// workloadResult bundles everything a run reports.
type workloadResult struct {
	Level string       `json:"level"`
	Ops   int          `json:"ops"`
	Seed  int64        `json:"seed"`
	Stats heap.Stats   `json:"stats"`
	OpSt  heap.OpStats `json:"operations"`
}

// runWorkload drives a mixed malloc/calloc/free/realloc sequence against a
// fresh isolated allocator and returns the final counters. The sequence is
// fully determined by the seed so levels can be compared apples to apples.
func runWorkload(opts heap.Options, ops int, seed int64) workloadResult {
	a := heap.NewIsolated(0, &opts)
	rng := rand.New(rand.NewSource(seed))

	var live []unsafe.Pointer
	for i := 0; i < ops; i++ {
		switch action := rng.Intn(10); {
		case action < 4: // allocate
			size := uintptr(16 + rng.Intn(4096))
			if opts.MapLarge && rng.Intn(50) == 0 {
				size = uintptr(150_000 + rng.Intn(1<<16))
			}
			if p := a.Malloc(size); p != nil {
				live = append(live, p)
			}

		case action < 5: // calloc
			if p := a.Calloc(uintptr(1+rng.Intn(64)), 16); p != nil {
				live = append(live, p)
			}

		case action < 8: // free
			if len(live) == 0 {
				continue
			}
			j := rng.Intn(len(live))
			a.Free(live[j])
			live = append(live[:j], live[j+1:]...)

		default: // realloc
			if len(live) == 0 {
				continue
			}
			j := rng.Intn(len(live))
			if q := a.Realloc(live[j], uintptr(16+rng.Intn(4096))); q != nil {
				live[j] = q
			}
		}
	}

	return workloadResult{
		Level: opts.Name,
		Ops:   ops,
		Seed:  seed,
		Stats: a.Stats(),
		OpSt:  a.OpStats(),
	}
}
