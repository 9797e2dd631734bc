package relight

import (
	"runtime"
	"sync"
)

// DefaultPoolCapacity is the slot count of a frame pool unless the caller
// asks for more.
const DefaultPoolCapacity = 128

// FramePool holds the finalized render lights of one update cycle in a
// fixed-capacity slot array. Slots are handed out sequentially and the whole
// pool is reset between cycles; slot indices double as the history handles
// carried across frames.
type FramePool struct {
	slots []RenderLight
	next  uint32
}

func NewFramePool(capacity int) *FramePool {
	if capacity <= 0 {
		capacity = DefaultPoolCapacity
	}
	return &FramePool{slots: make([]RenderLight, capacity)}
}

// Alloc stores a render light in the next free slot and returns its handle.
// A full pool is logged and reported to the caller; the light is dropped for
// this cycle rather than growing the pool mid-frame.
func (p *FramePool) Alloc(l RenderLight) (uint32, bool) {
	if int(p.next) >= len(p.slots) {
		getLogger().Errorf("frame pool exhausted at %d lights", len(p.slots))
		return NoHistory, false
	}
	slot := p.next
	if l.History == NoHistory {
		l.History = slot
	}
	p.slots[slot] = l
	p.next++
	return slot, true
}

// Get returns the light stored at slot.
func (p *FramePool) Get(slot uint32) (RenderLight, bool) {
	if slot >= p.next {
		return RenderLight{}, false
	}
	return p.slots[slot], true
}

// Range returns the populated slice [first, first+count) for readback by the
// render-primitive consumer.
func (p *FramePool) Range(first, count uint32) ([]RenderLight, bool) {
	// Checked as two subtractions so first+count cannot wrap around uint32.
	if first > p.next || count > p.next-first {
		return nil, false
	}
	return p.slots[first : first+count], true
}

func (p *FramePool) Len() int { return int(p.next) }

// Reset recycles every slot for the next update cycle.
func (p *FramePool) Reset() { p.next = 0 }

// ConvertAll converts many independent records in parallel with a fixed-size
// worker pool. prev, when non-nil, resolves a record's previous-frame
// primitive by identity hash for history carry-over; it must be safe for
// concurrent read-only use. Results keep the order of records, with
// unresolved records left as zero-value entries reported false in the
// returned ok slice.
func ConvertAll(records []*LightRecord, prev func(hash uint64) *RenderLight, workers int) ([]RenderLight, []bool) {
	out := make([]RenderLight, len(records))
	ok := make([]bool, len(records))

	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(records) {
		workers = len(records)
	}
	if workers <= 1 {
		for i, r := range records {
			out[i], ok[i] = convertOne(r, prev)
		}
		return out, ok
	}

	var wg sync.WaitGroup
	next := make(chan int)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range next {
				out[i], ok[i] = convertOne(records[i], prev)
			}
		}()
	}
	for i := range records {
		next <- i
	}
	close(next)
	wg.Wait()

	return out, ok
}

func convertOne(r *LightRecord, prev func(hash uint64) *RenderLight) (RenderLight, bool) {
	if r == nil {
		return RenderLight{}, false
	}
	var before *RenderLight
	if prev != nil {
		before = prev(r.Hash)
	}
	return r.ToRenderLight(before)
}
