package game

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/josebatista/capicua/move"
	"github.com/josebatista/capicua/tiles"
)

func hand(specs ...string) Hand {
	h := make(Hand, 0, len(specs))
	for _, s := range specs {
		t, err := tiles.Parse(s)
		if err != nil {
			panic(err)
		}
		h = append(h, t)
	}
	return h
}

func TestLegalMovesEmptyBoard(t *testing.T) {
	is := is.New(t)
	h := hand("6-4", "3-3", "0-0")
	moves := LegalMoves(h, NoEnd, NoEnd)
	is.Equal(len(moves), 3)
	for _, m := range moves {
		is.Equal(m.Placement(), move.EndLeft)
	}
}

func TestLegalMovesMatchesEnds(t *testing.T) {
	is := is.New(t)
	h := hand("6-4", "3-3", "4-2", "5-1")
	moves := LegalMoves(h, 4, 3)
	// 6-4 at left, 3-3 at right, 4-2 at left.
	is.Equal(len(moves), 3)
}

func TestLegalMovesSharedEndValue(t *testing.T) {
	// When both ends show the same value, a matching tile gets one move
	// per end slot and never more than two moves total.
	h := hand("5-2", "5-5")
	moves := LegalMoves(h, 5, 5)
	assert.Len(t, moves, 4)
	perTile := map[string]int{}
	for _, m := range moves {
		perTile[m.Tile().String()]++
	}
	assert.Equal(t, 2, perTile["5-2"])
	assert.Equal(t, 2, perTile["5-5"])
}

func TestApplyEnds(t *testing.T) {
	is := is.New(t)

	// Empty board: the tile's values become the ends.
	l, r, err := ApplyEnds(NoEnd, NoEnd, tiles.MustNew(2, 6), move.EndLeft)
	is.NoErr(err)
	is.Equal(l, int8(2))
	is.Equal(r, int8(6))

	// Matching the left end exposes the tile's other value.
	l, r, err = ApplyEnds(2, 6, tiles.MustNew(2, 5), move.EndLeft)
	is.NoErr(err)
	is.Equal(l, int8(5))
	is.Equal(r, int8(6))

	// A double exposes the same value.
	l, r, err = ApplyEnds(2, 6, tiles.MustNew(6, 6), move.EndRight)
	is.NoErr(err)
	is.Equal(l, int8(2))
	is.Equal(r, int8(6))

	// Mismatches are rejected.
	_, _, err = ApplyEnds(2, 6, tiles.MustNew(3, 4), move.EndLeft)
	is.True(err != nil)
}

func TestApplyDoesNotMutate(t *testing.T) {
	is := is.New(t)
	h0 := hand("6-4", "3-3")
	h1 := hand("4-2", "5-1")
	pos := NewPosition(h0, h1, 4, 3, 0)

	np, err := pos.Apply(move.New(tiles.MustNew(4, 6), move.EndLeft))
	is.NoErr(err)

	is.Equal(len(pos.Hands[0]), 2) // parent untouched
	is.Equal(pos.Left, int8(4))
	is.Equal(len(np.Hands[0]), 1)
	is.Equal(np.Left, int8(6))
	is.Equal(np.Right, int8(3))
	is.Equal(np.OnTurn, 1)
	is.Equal(np.Passes, 0)
}

func TestApplyRejectsForeignTile(t *testing.T) {
	is := is.New(t)
	pos := NewPosition(hand("6-4"), hand("5-1"), 4, 3, 0)
	_, err := pos.Apply(move.New(tiles.MustNew(3, 3), move.EndRight))
	is.True(err != nil)
}

func TestPassBumpsCounterAndTerminal(t *testing.T) {
	is := is.New(t)
	pos := NewPosition(hand("6-6"), hand("5-5"), 1, 2, 0)
	is.True(!pos.Terminal())

	p1, err := pos.Apply(move.NewPass())
	is.NoErr(err)
	is.Equal(p1.Passes, 1)
	is.True(!p1.Terminal())

	p2, err := p1.Apply(move.NewPass())
	is.NoErr(err)
	is.Equal(p2.Passes, 2)
	is.True(p2.Terminal())
}

func TestTerminalOnEmptyHand(t *testing.T) {
	is := is.New(t)
	pos := NewPosition(hand("6-4"), hand("5-1"), 4, 3, 0)
	np, err := pos.Apply(move.New(tiles.MustNew(4, 6), move.EndLeft))
	is.NoErr(err)
	is.True(np.Terminal())
}

func TestPipsDeadBlankCounting(t *testing.T) {
	// 0-0, 2-3 and 6-6 with both live ends nonzero count 13+5+12 = 30.
	h := hand("0-0", "2-3", "6-6")
	assert.Equal(t, 30, h.Pips(4, 5))
	// With a zero end the blank is live and counts its face value.
	assert.Equal(t, 17, h.Pips(0, 5))
	// On an empty board everything is playable.
	assert.Equal(t, 17, h.Pips(NoEnd, NoEnd))
}

func TestMobilityAndCanPlay(t *testing.T) {
	is := is.New(t)
	h := hand("6-4", "3-3", "4-2")
	is.Equal(Mobility(h, 4, 3), 3)
	is.Equal(Mobility(h, NoEnd, NoEnd), 3)
	is.Equal(Mobility(h, 5, 5), 0)
	is.True(CanPlay(h, 4, 3))
	is.True(!CanPlay(h, 5, 5))
}

func TestHandWithout(t *testing.T) {
	is := is.New(t)
	h := hand("6-4", "3-3", "6-4")
	nh := h.Without(tiles.MustNew(4, 6))
	is.Equal(len(h), 3)
	is.Equal(len(nh), 2)
	// Only one copy removed.
	is.True(nh.Contains(tiles.MustNew(4, 6)))
}
