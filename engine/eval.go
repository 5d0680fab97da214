package engine

import (
	"github.com/josebatista/capicua/game"
	"github.com/josebatista/capicua/tiles"
)

// evaluate is the leaf heuristic, always from the searching player's
// (player 0's) point of view. It only runs on non-terminal positions whose
// depth budget is exhausted.
func (s *Solver) evaluate(pos *game.Position) int16 {
	w := s.cfg.Weights
	self := pos.Hands[0]
	opp := pos.Hands[1]

	score := w.PipDiff * (opp.Pips(pos.Left, pos.Right) - self.Pips(pos.Left, pos.Right))
	score += w.Mobility * (game.Mobility(self, pos.Left, pos.Right) -
		game.Mobility(opp, pos.Left, pos.Right))
	score += w.HandSize * (len(opp) - len(self))
	score += s.suitControl(pos)
	score += s.ghostTerm(pos)
	score += w.DoubleDrag * (opp.DoublePips() - self.DoublePips())

	if score > int32Max16 {
		score = int32Max16
	} else if score < -int32Max16 {
		score = -int32Max16
	}
	return int16(score)
}

// Leaf scores stay well inside int16 so terminal scores and ordering
// offsets never collide with them.
const int32Max16 = 30000

// suitControl rewards owning more tiles matching the live end values than
// the opponent does, plus a fixed bonus per end the opponent cannot answer
// at all.
func (s *Solver) suitControl(pos *game.Position) int {
	if pos.BoardEmpty() {
		return 0
	}
	w := s.cfg.Weights
	self := pos.Hands[0]
	opp := pos.Hands[1]

	term := 0
	ends := []int{int(pos.Left)}
	if pos.Right != pos.Left {
		ends = append(ends, int(pos.Right))
	}
	for _, v := range ends {
		oppMatch := opp.Matching(v)
		term += w.SuitControl * (self.Matching(v) - oppMatch)
		if oppMatch == 0 {
			term += w.LockIn
		}
	}
	return term
}

// ghostTerm scores an unplayable 0-0 tile: dead weight for whichever side
// is stuck holding it.
func (s *Solver) ghostTerm(pos *game.Position) int {
	if pos.BoardEmpty() || pos.Left == 0 || pos.Right == 0 {
		return 0
	}
	w := s.cfg.Weights
	blank := tiles.MustNew(0, 0)
	term := 0
	if pos.Hands[1].Contains(blank) {
		term += w.Ghost
	}
	if pos.Hands[0].Contains(blank) {
		term -= w.Ghost
	}
	return term
}
