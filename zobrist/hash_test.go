package zobrist

import (
	"testing"

	"github.com/matryer/is"

	"github.com/josebatista/capicua/game"
	"github.com/josebatista/capicua/move"
	"github.com/josebatista/capicua/tiles"
)

func hand(specs ...string) game.Hand {
	h := make(game.Hand, 0, len(specs))
	for _, s := range specs {
		t, err := tiles.Parse(s)
		if err != nil {
			panic(err)
		}
		h = append(h, t)
	}
	return h
}

func TestHashIsStateFunction(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()

	ours := hand("6-4", "3-3")
	theirs := hand("5-1", "2-2")

	h1 := z.Hash(ours, theirs, 4, 3, false, 0)
	// Hand order must not matter.
	h2 := z.Hash(hand("3-3", "6-4"), theirs, 4, 3, false, 0)
	is.Equal(h1, h2)

	// Every component must matter.
	is.True(h1 != z.Hash(ours, theirs, 3, 4, false, 0))
	is.True(h1 != z.Hash(ours, theirs, 4, 3, true, 0))
	is.True(h1 != z.Hash(ours, theirs, 4, 3, false, 1))
	is.True(h1 != z.Hash(theirs, ours, 4, 3, false, 0))
	is.True(h1 != z.Hash(ours, theirs, game.NoEnd, game.NoEnd, false, 0))
}

func TestAddMoveMatchesFullRehash(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()

	pos := game.NewPosition(hand("6-4", "4-2", "3-3"), hand("5-1", "1-3"), 4, 3, 0)
	key := z.Hash(pos.Hands[0], pos.Hands[1], pos.Left, pos.Right, false, pos.Passes)

	plays := []*move.Move{
		move.New(tiles.MustNew(4, 6), move.EndLeft),
		move.New(tiles.MustNew(1, 3), move.EndRight),
		move.New(tiles.MustNew(2, 4), move.EndLeft),
	}
	for _, m := range plays {
		np, err := pos.Apply(m)
		is.NoErr(err)
		key = z.AddMove(key, m, pos.OnTurn == 0,
			pos.Left, pos.Right, np.Left, np.Right, pos.Passes, np.Passes)
		want := z.Hash(np.Hands[0], np.Hands[1], np.Left, np.Right,
			np.OnTurn == 1, np.Passes)
		is.Equal(key, want)
		pos = np
	}
}

func TestAddMovePassTogglesCleanly(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()

	pos := game.NewPosition(hand("6-6"), hand("5-5"), 1, 2, 0)
	key := z.Hash(pos.Hands[0], pos.Hands[1], pos.Left, pos.Right, false, 0)

	pass := move.NewPass()
	np, err := pos.Apply(pass)
	is.NoErr(err)
	key = z.AddMove(key, pass, true, pos.Left, pos.Right, np.Left, np.Right, 0, 1)
	is.Equal(key, z.Hash(np.Hands[0], np.Hands[1], np.Left, np.Right, true, 1))

	// A second pass lands on the terminal pass count.
	np2, err := np.Apply(pass)
	is.NoErr(err)
	key = z.AddMove(key, pass, false, np.Left, np.Right, np2.Left, np2.Right, 1, 2)
	is.Equal(key, z.Hash(np2.Hands[0], np2.Hands[1], np2.Left, np2.Right, false, 2))
}

func TestKeysAreNonZero(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()
	for i := 0; i < tiles.SetSize; i++ {
		is.True(z.tileTable[i][0] != 0)
		is.True(z.tileTable[i][1] != 0)
	}
	is.True(z.theirTurn != 0)
}
