package engine

import (
	"testing"

	"github.com/matryer/is"

	"github.com/josebatista/capicua/game"
	"github.com/josebatista/capicua/move"
	"github.com/josebatista/capicua/tiles"
)

func TestStoreKillerShiftsSlots(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	s := newSolver(t, &cfg)
	s.clearKillers()

	m1 := move.New(tiles.MustNew(4, 6), move.EndLeft)
	m2 := move.New(tiles.MustNew(3, 3), move.EndRight)

	s.storeKiller(3, m1)
	is.True(s.killers[3][0].Equals(m1))
	is.True(s.killers[3][1] == nil)

	s.storeKiller(3, m2)
	is.True(s.killers[3][0].Equals(m2))
	is.True(s.killers[3][1].Equals(m1))

	// Re-storing the current killer must not push it into both slots.
	s.storeKiller(3, m2)
	is.True(s.killers[3][0].Equals(m2))
	is.True(s.killers[3][1].Equals(m1))
}

func TestHistoryAccrual(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	s := newSolver(t, &cfg)
	s.clearHistory()

	m := move.New(tiles.MustNew(2, 5), move.EndRight)
	s.bumpHistory(m, 3)
	s.bumpHistory(m, 2)
	is.Equal(s.history[m.Tile().ID()][m.Placement()], int32(13))

	s.bumpHistory(move.NewPass(), 5)
	s.clearHistory()
	is.Equal(s.history[m.Tile().ID()][m.Placement()], int32(0))
}

func TestOrderingHashMoveFirst(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	s := newSolver(t, &cfg)
	s.clearKillers()
	s.clearHistory()

	pos := game.NewPosition(
		hand("6-4", "3-3", "4-0"),
		hand("5-1", "2-2"),
		4, 3, 0)
	moves := game.LegalMoves(pos.Hands[0], pos.Left, pos.Right)
	// Promote the lowest-pip candidate to hash move.
	ttMove := move.New(tiles.MustNew(0, 4), move.EndLeft)

	s.assignEstimates(&pos, moves, 4, ttMove)
	is.True(moves[0].Equals(ttMove))
}

func TestOrderingKillerBeatsPips(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	s := newSolver(t, &cfg)
	s.clearKillers()
	s.clearHistory()

	pos := game.NewPosition(
		hand("6-4", "3-3", "4-0"),
		hand("5-1", "2-2"),
		4, 3, 0)
	moves := game.LegalMoves(pos.Hands[0], pos.Left, pos.Right)
	killer := move.New(tiles.MustNew(0, 4), move.EndLeft)
	s.storeKiller(4, killer)

	s.assignEstimates(&pos, moves, 4, nil)
	is.True(moves[0].Equals(killer))
}

func TestOrderingReplyKillingMoveFirst(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	s := newSolver(t, &cfg)
	s.clearKillers()
	s.clearHistory()

	// 2-1 on the right leaves 6|1, which the opponent's 2-5 cannot touch;
	// it must outrank the heavier 6-6 double.
	pos := game.NewPosition(hand("6-6", "2-1"), hand("2-5"), 6, 2, 0)
	moves := game.LegalMoves(pos.Hands[0], pos.Left, pos.Right)
	s.assignEstimates(&pos, moves, 2, nil)
	is.Equal(moves[0].Tile(), tiles.MustNew(2, 1))
}

func TestOrderingGhostLock(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	s := newSolver(t, &cfg)
	s.clearKillers()
	s.clearHistory()

	// 1-2 keeps both ends nonzero while the opponent holds 0-0; 6-0 is
	// heavier but opens a zero end that would free the blank.
	pos := game.NewPosition(
		hand("6-0", "1-2"),
		hand("0-0", "2-6", "0-5"),
		6, 1, 0)
	moves := game.LegalMoves(pos.Hands[0], pos.Left, pos.Right)
	s.assignEstimates(&pos, moves, 2, nil)
	is.Equal(moves[0].Tile(), tiles.MustNew(1, 2))
}

func TestOrderingIsDeterministic(t *testing.T) {
	is := is.New(t)
	cfg := testConfig()
	s := newSolver(t, &cfg)
	s.clearKillers()
	s.clearHistory()

	pos := game.NewPosition(
		hand("6-4", "3-3", "4-0", "4-2"),
		hand("5-1", "2-2"),
		4, 3, 0)

	first := game.LegalMoves(pos.Hands[0], pos.Left, pos.Right)
	s.assignEstimates(&pos, first, 2, nil)
	second := game.LegalMoves(pos.Hands[0], pos.Left, pos.Right)
	s.assignEstimates(&pos, second, 2, nil)

	is.Equal(len(first), len(second))
	for i := range first {
		is.True(first[i].Equals(second[i]))
	}
}
