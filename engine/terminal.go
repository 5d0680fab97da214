package engine

import (
	"github.com/josebatista/capicua/game"
)

// terminalValue scores a finished position from the searching player's
// point of view: domino endings score the winner's opponent's remaining
// pips, block endings go through aggressor assignment first.
func (s *Solver) terminalValue(pos *game.Position) int16 {
	if len(pos.Hands[0]) == 0 {
		return int16(pos.Hands[1].Pips(pos.Left, pos.Right))
	}
	if len(pos.Hands[1]) == 0 {
		return -int16(pos.Hands[0].Pips(pos.Left, pos.Right))
	}
	return s.blockValue(pos)
}

// blockValue scores a mutual block. Responsibility for the lock is
// assigned first: if the aggressor's pip sum is no greater than the
// opponent's, the aggressor wins double the opponent's pips; otherwise the
// opponent wins the sum of both totals. Locking out a heavier hand pays;
// getting locked while holding more pips than the side that trapped you
// pays them.
func (s *Solver) blockValue(pos *game.Position) int16 {
	agg := s.aggressor(pos)
	oth := 1 - agg
	aggPips := pos.Hands[agg].Pips(pos.Left, pos.Right)
	othPips := pos.Hands[oth].Pips(pos.Left, pos.Right)

	var winner, points int
	if aggPips <= othPips {
		winner = agg
		points = 2 * othPips
	} else {
		winner = oth
		points = aggPips + othPips
	}
	if winner == 0 {
		return int16(points)
	}
	return -int16(points)
}

// aggressor decides which side forced the lock. It walks the last two
// placements: if the final placement's tile was the only tile in either
// remaining hand capable of matching the ends left by the placement before
// it, the final placement was forced, and the earlier placement's side set
// up the lock. Otherwise the final placer owns it.
func (s *Solver) aggressor(pos *game.Position) int {
	n := len(s.placements)
	if n == 0 {
		// A double-pass with no placement on record. Nobody set anything
		// up; charge the opponent so the searcher is never blamed for a
		// lock it could not have engineered.
		return 1
	}
	last := s.placements[n-1]
	if n == 1 {
		return last.Player
	}
	prev := s.placements[n-2]
	// Ends in effect at the moment the final placement was chosen.
	pl, pr := int(prev.Left), int(prev.Right)
	for _, h := range pos.Hands {
		for _, t := range h {
			if t.Matches(pl) || t.Matches(pr) {
				// An alternative existed; the final placement was a
				// choice, not a forced reply.
				return last.Player
			}
		}
	}
	return prev.Player
}
