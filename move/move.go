// Package move describes a single play: a tile attached to one of the two
// open board ends, or a pass.
package move

import (
	"fmt"

	"github.com/josebatista/capicua/tiles"
)

// End selects which open end of the line a tile attaches to.
type End uint8

const (
	EndLeft End = iota
	EndRight
)

func (e End) String() string {
	if e == EndLeft {
		return "left"
	}
	return "right"
}

// Move is one ply. A pass carries no tile.
type Move struct {
	tile tiles.Tile
	end  End
	pass bool

	// estimatedValue is a move-ordering score, not a search result.
	estimatedValue int32
}

// New returns a placement move.
func New(t tiles.Tile, e End) *Move {
	return &Move{tile: t, end: e}
}

// NewPass returns a pass move.
func NewPass() *Move {
	return &Move{pass: true}
}

func (m *Move) Tile() tiles.Tile { return m.tile }
func (m *Move) Placement() End   { return m.end }
func (m *Move) IsPass() bool     { return m.pass }

func (m *Move) EstimatedValue() int32 { return m.estimatedValue }

func (m *Move) SetEstimatedValue(v int32) {
	m.estimatedValue = v
}

func (m *Move) AddEstimatedValue(v int32) {
	m.estimatedValue += v
}

// Equals ignores the estimated value; two moves are the same play if they
// put the same tile on the same end.
func (m *Move) Equals(o *Move) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.pass || o.pass {
		return m.pass == o.pass
	}
	return m.tile == o.tile && m.end == o.end
}

func (m *Move) ShortDescription() string {
	if m.pass {
		return "(pass)"
	}
	return fmt.Sprintf("%s>%s", m.tile, m.end)
}

func (m *Move) String() string {
	return m.ShortDescription()
}
