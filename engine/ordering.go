package engine

import (
	"sort"

	"github.com/josebatista/capicua/game"
	"github.com/josebatista/capicua/move"
	"github.com/josebatista/capicua/tiles"
)

// Ordering offsets. The hash move outranks everything, then immediate
// outs, then killers; the history accumulator and static bonuses settle
// the rest.
const (
	HashMoveOffset   = 1 << 23
	OutPlayOffset    = 1 << 22
	Killer0Offset    = 1 << 21
	Killer1Offset    = 1 << 20
	ForcedPassOffset = 1 << 14
	GhostLockOffset  = 1 << 13
	DoubleBonus      = 64
)

func (s *Solver) storeKiller(ply int, m *move.Move) {
	if !m.Equals(s.killers[ply][0]) {
		s.killers[ply][1] = s.killers[ply][0]
		s.killers[ply][0] = m
	}
}

// clearKillers wipes the killer-move table.
func (s *Solver) clearKillers() {
	for ply := 0; ply < MaxGameLength; ply++ {
		s.killers[ply][0] = nil
		s.killers[ply][1] = nil
	}
}

func (s *Solver) clearHistory() {
	s.history = [tiles.SetSize][2]int32{}
}

// bumpHistory accrues a depth-squared weight for a (tile, end) pair that
// produced a cutoff.
func (s *Solver) bumpHistory(m *move.Move, depth int) {
	if m.IsPass() {
		return
	}
	s.history[m.Tile().ID()][m.Placement()] += int32(depth * depth)
}

// assignEstimates scores each candidate move for ordering purposes and
// sorts the slice best-first. The estimates are static: they bias the
// search order, never the returned value.
func (s *Solver) assignEstimates(pos *game.Position, moves []*move.Move,
	depth int, ttMove *move.Move) {

	mover := pos.OnTurn
	moverHand := pos.Hands[mover]
	oppHand := pos.Hands[1-mover]
	blank := tiles.MustNew(0, 0)
	oppHoldsBlank := oppHand.Contains(blank)

	for _, m := range moves {
		t := m.Tile()
		est := int32(t.PipCount())
		if t.IsDouble() {
			est += DoubleBonus
		}
		if len(moverHand) == 1 {
			// Playing our last tile is an immediate win; search it first.
			est += OutPlayOffset
		}
		if m.Equals(s.killers[depth][0]) {
			est += Killer0Offset
		} else if m.Equals(s.killers[depth][1]) {
			est += Killer1Offset
		}
		est += s.history[t.ID()][m.Placement()]

		newLeft, newRight, err := game.ApplyEnds(pos.Left, pos.Right, t, m.Placement())
		if err == nil {
			if !game.CanPlay(oppHand, newLeft, newRight) {
				est += ForcedPassOffset
			}
			if mover == 0 && oppHoldsBlank && newLeft != 0 && newRight != 0 {
				// The opponent is left holding a 0-0 it cannot discharge.
				est += GhostLockOffset
			}
		}
		if ttMove != nil && m.Equals(ttMove) {
			est += HashMoveOffset
		}
		m.SetEstimatedValue(est)
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].EstimatedValue() > moves[j].EstimatedValue()
	})
}
