package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/josebatista/capicua/game"
	"github.com/josebatista/capicua/move"
	"github.com/josebatista/capicua/tiles"
)

var (
	ErrBadRequest = errors.New("malformed move request")
)

// Request is one "choose a move" query from the host. Both hands are
// given: this engine searches the open-information variant, and treating
// the opponent's hand as known is a documented precondition. The supplied
// legal-move list is the authoritative legality source at the root.
type Request struct {
	MyHand  []tiles.Tile
	OppHand []tiles.Tile

	BoardEmpty bool
	Left       int
	Right      int

	// Recent placements, oldest first, enough to recover the last two
	// non-pass plies for block-responsibility seeding.
	Recent []game.Placement

	LegalMoves []*move.Move
}

// Response carries exactly one chosen move, or NoMove when the request had
// no legal moves and the host must record a pass.
type Response struct {
	Move   *move.Move
	NoMove bool

	Value   int16
	Depth   int
	Nodes   uint64
	Elapsed time.Duration
}

// validate fails fast on caller contract violations: oversized or
// overlapping hands, out-of-range ends, or a supplied "legal" move that
// the position does not admit.
func (r *Request) validate() error {
	if len(r.MyHand) == 0 || len(r.MyHand) > tiles.HandLimit ||
		len(r.OppHand) == 0 || len(r.OppHand) > tiles.HandLimit {
		return fmt.Errorf("%w: hand sizes %d and %d", ErrBadRequest,
			len(r.MyHand), len(r.OppHand))
	}
	var seen [tiles.SetSize]bool
	for _, h := range [][]tiles.Tile{r.MyHand, r.OppHand} {
		for _, t := range h {
			if seen[t.ID()] {
				return fmt.Errorf("%w: tile %s appears twice", ErrBadRequest, t)
			}
			seen[t.ID()] = true
		}
	}
	if !r.BoardEmpty {
		if r.Left < 0 || r.Left > tiles.MaxPip || r.Right < 0 || r.Right > tiles.MaxPip {
			return fmt.Errorf("%w: board ends %d|%d", ErrBadRequest, r.Left, r.Right)
		}
	}
	left, right := r.ends()
	mine := game.Hand(r.MyHand)
	for _, m := range r.LegalMoves {
		if m.IsPass() {
			return fmt.Errorf("%w: pass in legal-move list", ErrBadRequest)
		}
		if !mine.Contains(m.Tile()) {
			return fmt.Errorf("%w: legal move %s not in hand", ErrBadRequest, m)
		}
		if _, _, err := game.ApplyEnds(left, right, m.Tile(), m.Placement()); err != nil {
			return fmt.Errorf("%w: %s does not fit %d|%d", ErrBadRequest, m, left, right)
		}
	}
	return nil
}

func (r *Request) ends() (int8, int8) {
	if r.BoardEmpty {
		return game.NoEnd, game.NoEnd
	}
	return int8(r.Left), int8(r.Right)
}

// position builds the root search position. The searching player is
// always index 0 and is on turn.
func (r *Request) position() game.Position {
	left, right := r.ends()
	return game.NewPosition(game.Hand(r.MyHand), game.Hand(r.OppHand), left, right, 0)
}
