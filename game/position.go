// Package game holds the position model for a two-player, no-draw domino
// game: hands, open ends, side to move, and consecutive passes. Positions
// are values; applying a move yields a new position and never mutates the
// parent.
package game

import (
	"errors"
	"fmt"

	"github.com/josebatista/capicua/move"
	"github.com/josebatista/capicua/tiles"
)

// NoEnd is the sentinel for an empty board; both ends carry it until the
// first tile is set.
const NoEnd int8 = -1

// MaxScorelessTurns is how many consecutive passes lock the game.
const MaxScorelessTurns = 2

var (
	ErrIllegalMove = errors.New("move does not fit either board end")
	ErrNotInHand   = errors.New("tile is not in the mover's hand")
)

// Hand is an unordered multiset of tiles belonging to one side.
type Hand []tiles.Tile

// Contains reports whether the hand holds t.
func (h Hand) Contains(t tiles.Tile) bool {
	for _, ht := range h {
		if ht == t {
			return true
		}
	}
	return false
}

// Without returns a new hand with one copy of t removed. The receiver is
// untouched.
func (h Hand) Without(t tiles.Tile) Hand {
	nh := make(Hand, 0, len(h)-1)
	removed := false
	for _, ht := range h {
		if !removed && ht == t {
			removed = true
			continue
		}
		nh = append(nh, ht)
	}
	return nh
}

// Copy returns an independent copy of the hand.
func (h Hand) Copy() Hand {
	nh := make(Hand, len(h))
	copy(nh, h)
	return nh
}

// Matching counts tiles in the hand that can attach to an end showing v.
func (h Hand) Matching(v int) int {
	n := 0
	for _, t := range h {
		if t.Matches(v) {
			n++
		}
	}
	return n
}

// Pips sums the hand's pip values for scoring. The 0-0 tile counts as
// tiles.DeadBlankPips when it cannot be played at the given ends.
func (h Hand) Pips(left, right int8) int {
	blankPlayable := left == NoEnd || left == 0 || right == 0
	sum := 0
	for _, t := range h {
		sum += t.ScoreValue(!t.IsBlank() || blankPlayable)
	}
	return sum
}

// DoublePips sums the pip values of the doubles in the hand.
func (h Hand) DoublePips() int {
	sum := 0
	for _, t := range h {
		if t.IsDouble() {
			sum += t.PipCount()
		}
	}
	return sum
}

// Position is the full search state: both hands, the open ends, whose turn
// it is, and how many consecutive passes have occurred.
type Position struct {
	Hands  [2]Hand
	Left   int8
	Right  int8
	OnTurn int
	Passes int
}

// NewPosition builds a position from host-supplied data. The board is empty
// when left and right are both NoEnd.
func NewPosition(h0, h1 Hand, left, right int8, onTurn int) Position {
	return Position{
		Hands:  [2]Hand{h0.Copy(), h1.Copy()},
		Left:   left,
		Right:  right,
		OnTurn: onTurn,
	}
}

// BoardEmpty reports whether no tile has been set yet.
func (p *Position) BoardEmpty() bool {
	return p.Left == NoEnd
}

// Opponent returns the player not on turn.
func (p *Position) Opponent() int {
	return 1 - p.OnTurn
}

// Terminal reports whether the game is over at this position: one hand is
// empty (domino) or both sides passed (block).
func (p *Position) Terminal() bool {
	return len(p.Hands[0]) == 0 || len(p.Hands[1]) == 0 ||
		p.Passes >= MaxScorelessTurns
}

// TilesRemaining is the total tile count across both hands.
func (p *Position) TilesRemaining() int {
	return len(p.Hands[0]) + len(p.Hands[1])
}

// ApplyEnds computes the board ends that result from attaching t at the
// given end. On an empty board the tile's two values become the ends.
func ApplyEnds(left, right int8, t tiles.Tile, e move.End) (int8, int8, error) {
	if left == NoEnd {
		return int8(t.Low()), int8(t.High()), nil
	}
	if e == move.EndLeft {
		if !t.Matches(int(left)) {
			return 0, 0, fmt.Errorf("%w: %s at left end %d", ErrIllegalMove, t, left)
		}
		return int8(t.OtherSide(int(left))), right, nil
	}
	if !t.Matches(int(right)) {
		return 0, 0, fmt.Errorf("%w: %s at right end %d", ErrIllegalMove, t, right)
	}
	return left, int8(t.OtherSide(int(right))), nil
}

// Apply plays m for the side on turn and returns the resulting position.
// Passes flip the turn and bump the pass counter; placements reset it.
func (p *Position) Apply(m *move.Move) (Position, error) {
	np := Position{
		Hands:  p.Hands,
		Left:   p.Left,
		Right:  p.Right,
		OnTurn: p.Opponent(),
	}
	if m.IsPass() {
		np.Passes = p.Passes + 1
		return np, nil
	}
	hand := p.Hands[p.OnTurn]
	if !hand.Contains(m.Tile()) {
		return Position{}, fmt.Errorf("%w: %s", ErrNotInHand, m.Tile())
	}
	left, right, err := ApplyEnds(p.Left, p.Right, m.Tile(), m.Placement())
	if err != nil {
		return Position{}, err
	}
	np.Left = left
	np.Right = right
	np.Hands[p.OnTurn] = hand.Without(m.Tile())
	np.Passes = 0
	return np, nil
}

// LegalMoves enumerates every distinct (tile, end) placement for the hand
// at the given ends. On an empty board each tile is playable once, at the
// canonical left slot. A tile contributes at most one move per end.
func LegalMoves(h Hand, left, right int8) []*move.Move {
	moves := make([]*move.Move, 0, 2*len(h))
	if left == NoEnd {
		for _, t := range h {
			moves = append(moves, move.New(t, move.EndLeft))
		}
		return moves
	}
	for _, t := range h {
		if t.Matches(int(left)) {
			moves = append(moves, move.New(t, move.EndLeft))
		}
		if t.Matches(int(right)) {
			moves = append(moves, move.New(t, move.EndRight))
		}
	}
	return moves
}

// Mobility is the number of legal placements the hand has at these ends.
func Mobility(h Hand, left, right int8) int {
	if left == NoEnd {
		return len(h)
	}
	n := 0
	for _, t := range h {
		if t.Matches(int(left)) {
			n++
		}
		if t.Matches(int(right)) {
			n++
		}
	}
	return n
}

// CanPlay reports whether the hand has any legal placement at all.
func CanPlay(h Hand, left, right int8) bool {
	if left == NoEnd {
		return len(h) > 0
	}
	for _, t := range h {
		if t.Matches(int(left)) || t.Matches(int(right)) {
			return true
		}
	}
	return false
}
