// Package blocklist implements the append-only ordered sequence of 32-bit
// block ids used to represent the resolved extent of a file: fixed-size
// arrays chained head to tail so a file with many blocks never needs an
// O(n) reallocation to grow.
package blocklist

import "github.com/vmfs-go/vmfs-reader/internal/types"

// chunkSize is the number of ids per chunk. Purely a rate-of-growth choice,
// not an observable contract.
const chunkSize = 128

type chunk struct {
	ids  [chunkSize]uint32
	next *chunk
}

// List is an append-only, positionally-indexable sequence of block ids.
type List struct {
	head, tail *chunk
	total      uint32
	avail      uint32
}

// New returns an empty block list.
func New() *List {
	return &List{}
}

// Add appends id to the tail of the list.
func (l *List) Add(id uint32) {
	if l.avail == 0 {
		c := &chunk{}
		if l.tail != nil {
			l.tail.next = c
		} else {
			l.head = c
		}
		l.tail = c
		l.avail = chunkSize
	}

	pos := chunkSize - l.avail
	l.tail.ids[pos] = id
	l.total++
	l.avail--
}

// Total returns the number of ids appended so far.
func (l *List) Total() uint32 {
	return l.total
}

// Get returns the id at position pos, in insertion order. It fails with
// ErrOutOfRange when pos is at or past Total().
func (l *List) Get(pos uint32) (uint32, error) {
	if pos >= l.total {
		return 0, types.ErrOutOfRange
	}

	cpos := uint32(0)
	for c := l.head; c != nil; c = c.next {
		if pos >= cpos && pos < cpos+chunkSize {
			return c.ids[pos-cpos], nil
		}
		cpos += chunkSize
	}

	return 0, types.ErrOutOfRange
}
