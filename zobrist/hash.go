// Package zobrist generates position hashes for the domino search.
// https://en.wikipedia.org/wiki/Zobrist_hashing
package zobrist

import (
	"lukechampine.com/frand"

	"github.com/josebatista/capicua/game"
	"github.com/josebatista/capicua/move"
	"github.com/josebatista/capicua/tiles"
)

const bignum = 1<<63 - 2

// endSlots covers pip values 0..6 plus one slot for the empty-board
// sentinel.
const endSlots = tiles.MaxPip + 2

const emptyEndSlot = endSlots - 1

// Zobrist holds one random key per hashable feature: every (tile, owner)
// pair, each possible value of either end, the side to move, and the
// consecutive-pass count. Two positions that agree on all of those hash
// identically no matter how they were reached.
type Zobrist struct {
	theirTurn uint64

	tileTable  [tiles.SetSize][2]uint64
	leftTable  [endSlots]uint64
	rightTable [endSlots]uint64
	passTurns  [game.MaxScorelessTurns + 1]uint64
}

func (z *Zobrist) Initialize() {
	for i := 0; i < tiles.SetSize; i++ {
		z.tileTable[i][0] = frand.Uint64n(bignum) + 1
		z.tileTable[i][1] = frand.Uint64n(bignum) + 1
	}
	for i := 0; i < endSlots; i++ {
		z.leftTable[i] = frand.Uint64n(bignum) + 1
		z.rightTable[i] = frand.Uint64n(bignum) + 1
	}
	for i := 0; i <= game.MaxScorelessTurns; i++ {
		z.passTurns[i] = frand.Uint64n(bignum) + 1
	}
	z.theirTurn = frand.Uint64n(bignum) + 1
}

func endSlot(v int8) int {
	if v == game.NoEnd {
		return emptyEndSlot
	}
	return int(v)
}

// Hash computes the full hash for a position, from the solving player's
// point of view: owner bit 0 is ours, owner bit 1 is theirs.
func (z *Zobrist) Hash(ourHand, theirHand game.Hand, left, right int8,
	theirTurn bool, passes int) uint64 {

	key := uint64(0)
	for _, t := range ourHand {
		key ^= z.tileTable[t.ID()][0]
	}
	for _, t := range theirHand {
		key ^= z.tileTable[t.ID()][1]
	}
	key ^= z.leftTable[endSlot(left)]
	key ^= z.rightTable[endSlot(right)]
	if theirTurn {
		key ^= z.theirTurn
	}
	key ^= z.passTurns[passes]
	return key
}

// AddMove incrementally updates a hash for one ply: drop the mover's tile
// key, swap the affected end keys, adjust the pass-count key, and flip the
// side to move. Old and new ends come from the positions before and after
// the ply; for a pass they are the same.
func (z *Zobrist) AddMove(key uint64, m *move.Move, wasOurs bool,
	oldLeft, oldRight, newLeft, newRight int8, oldPasses, newPasses int) uint64 {

	if !m.IsPass() {
		owner := 0
		if !wasOurs {
			owner = 1
		}
		key ^= z.tileTable[m.Tile().ID()][owner]
		if oldLeft != newLeft {
			key ^= z.leftTable[endSlot(oldLeft)]
			key ^= z.leftTable[endSlot(newLeft)]
		}
		if oldRight != newRight {
			key ^= z.rightTable[endSlot(oldRight)]
			key ^= z.rightTable[endSlot(newRight)]
		}
	}
	if oldPasses != newPasses {
		key ^= z.passTurns[oldPasses]
		key ^= z.passTurns[newPasses]
	}
	key ^= z.theirTurn
	return key
}
