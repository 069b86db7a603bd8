package edit

import "github.com/joshuapare/schdockit/internal/format"

// allocator hands out contiguous sector runs in layout order and records the
// chain of each run in the FAT it is building.
type allocator struct {
	next uint32
	fat  []uint32
}

// newAllocator creates an allocator for a FAT of the given entry count. Every
// slot starts out free.
func newAllocator(entries int) *allocator {
	fat := make([]uint32, entries)
	for i := range fat {
		fat[i] = format.FreeSect
	}
	return &allocator{fat: fat}
}

// chain reserves n sectors, links them in order and terminates the run with
// ENDOFCHAIN. A zero-length run returns ENDOFCHAIN without consuming sectors.
func (a *allocator) chain(n int) uint32 {
	if n == 0 {
		return format.EndOfChain
	}
	start := a.next
	for i := 0; i < n; i++ {
		sid := a.next + uint32(i)
		if i == n-1 {
			a.fat[sid] = format.EndOfChain
		} else {
			a.fat[sid] = sid + 1
		}
	}
	a.next += uint32(n)
	return start
}

// mark reserves n sectors and stamps each with marker (FATSECT or DIFSECT).
// It returns the sector ids in order.
func (a *allocator) mark(n int, marker uint32) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		sid := a.next + uint32(i)
		a.fat[sid] = marker
		out[i] = sid
	}
	a.next += uint32(n)
	return out
}
