package engine

import (
	"math"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/josebatista/capicua/move"
)

const (
	TTExact = 0x01
	TTLower = 0x02
	TTUpper = 0x03
)

const entrySize = 12

const bottom3ByteMask = (1 << 24) - 1
const depthMask = (1 << 6) - 1

// TableEntry is 10 bytes of payload padded to entrySize.
type TableEntry struct {
	// Don't store the full hash, but the top 5 bytes. The bottom 3 bytes
	// can be determined from the bucket in the array.
	top4bytes    uint32
	score        int16
	fifthbyte    uint8
	flagAndDepth uint8
	play         move.TinyMove
}

// fullHash calculates the full 64-bit hash for this table entry, given the
// bottom bytes in idx.
func (t TableEntry) fullHash(idx uint64) uint64 {
	return uint64(t.top4bytes)<<32 + uint64(t.fifthbyte)<<24 + (idx & bottom3ByteMask)
}

func (t TableEntry) flag() uint8 {
	return t.flagAndDepth >> 6
}

func (t TableEntry) depth() uint8 {
	return t.flagAndDepth & depthMask
}

func (t TableEntry) valid() bool {
	// a table flag is 1, 2, or 3.
	return t.flag() != 0
}

func (t TableEntry) move() move.TinyMove {
	return t.play
}

// TranspositionTable is a fixed-size, depth-preferred hash table of search
// results. Each solver owns its own instance; nothing here is shared
// across concurrent searches.
type TranspositionTable struct {
	table        []TableEntry
	created      atomic.Uint64
	lookups      atomic.Uint64
	hits         atomic.Uint64
	sizePowerOf2 int
	sizeMask     uint64
	// "type 2" collisions. A type 2 collision happens when two positions
	// share the same lower bytes. A type 1 collision happens when two
	// positions share the same overall hash. We don't have a super easy
	// way to detect the latter, but it should be much less common.
	t2collisions atomic.Uint64
}

func (t *TranspositionTable) lookup(zval uint64) TableEntry {
	t.lookups.Add(1)
	idx := zval & t.sizeMask
	fullHash := t.table[idx].fullHash(idx)
	if fullHash != zval {
		if t.table[idx].valid() {
			// There is another unrelated node at this position.
			t.t2collisions.Add(1)
		}
		return TableEntry{}
	}
	t.hits.Add(1)
	// otherwise, assume the same zobrist hash is the same position. this
	// fails very, very rarely. but it could happen.
	return t.table[idx]
}

// store writes the entry only if the slot is empty or the new entry was
// searched at least as deep as the stored one.
func (t *TranspositionTable) store(zval uint64, tentry TableEntry) {
	idx := zval & t.sizeMask
	existing := t.table[idx]
	if existing.valid() && existing.depth() > tentry.depth() {
		return
	}
	tentry.top4bytes = uint32(zval >> 32)
	tentry.fifthbyte = uint8(zval >> 24)
	t.table[idx] = tentry
	t.created.Add(1)
}

// Reset sizes the table from a fraction of system memory and clears it.
func (t *TranspositionTable) Reset(fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	// find biggest power of 2 lower than desired.
	t.sizePowerOf2 = int(math.Log2(desiredNElems))
	// Guarantee at least 2^24 elements in the table. Anything less and our
	// 5-byte full hash proxy won't work.
	if t.sizePowerOf2 < 24 {
		t.sizePowerOf2 = 24
	}

	numElems := 1 << t.sizePowerOf2
	t.sizeMask = uint64(numElems - 1)
	reset := false
	if t.table != nil && len(t.table) == numElems {
		reset = true
		clear(t.table)
	} else {
		t.table = make([]TableEntry, numElems)
	}

	log.Debug().Int("num-elems", numElems).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Bool("reset", reset).
		Msg("transposition-table-size")

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.t2collisions.Store(0)
}
