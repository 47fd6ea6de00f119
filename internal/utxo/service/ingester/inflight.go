package ingester

import (
	"sync"

	"github.com/scylladb/go-set/u64set"
)

// inflight tracks heights handed to the writer whose batch has not been
// flushed yet.
type inflight struct {
	mu      sync.Mutex
	heights *u64set.Set
}

func newInflight() *inflight {
	return &inflight{heights: u64set.New()}
}

func (f *inflight) Add(heights ...uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.heights.Add(heights...)
}

func (f *inflight) Remove(heights ...uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.heights.Remove(heights...)
}

func (f *inflight) Size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.heights.Size()
}

// Filter returns the heights that are not in flight, keeping their order.
func (f *inflight) Filter(heights []uint64) []uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]uint64, 0, len(heights))
	for _, h := range heights {
		if !f.heights.Has(h) {
			out = append(out, h)
		}
	}
	return out
}
