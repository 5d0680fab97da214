// Package tiles models the 28 tiles of a double-six domino set.
package tiles

import (
	"fmt"
)

const (
	// MaxPip is the highest pip value on a double-six tile.
	MaxPip = 6
	// SetSize is the number of distinct tiles in a double-six set.
	SetSize = 28
	// HandLimit is the most tiles a hand can hold in the two-player,
	// no-draw variant.
	HandLimit = 7
	// DeadBlankPips is what the 0-0 tile counts for when it cannot be
	// played. A stuck double blank is a liability, not a free ride.
	DeadBlankPips = 13
)

// Tile is an unordered pair of pip values. The zero value is the 0-0 tile.
// Tiles are immutable; hand them around by value.
type Tile struct {
	low, high uint8
}

// New returns the canonical tile for the given pair of pip values, in
// either order.
func New(a, b int) (Tile, error) {
	if a < 0 || a > MaxPip || b < 0 || b > MaxPip {
		return Tile{}, fmt.Errorf("pip values out of range: %d-%d", a, b)
	}
	if a > b {
		a, b = b, a
	}
	return Tile{low: uint8(a), high: uint8(b)}, nil
}

// MustNew is New for known-good literals; it panics on bad input.
func MustNew(a, b int) Tile {
	t, err := New(a, b)
	if err != nil {
		panic(err)
	}
	return t
}

// FromID is the inverse of ID.
func FromID(id int) (Tile, error) {
	if id < 0 || id >= SetSize {
		return Tile{}, fmt.Errorf("tile id out of range: %d", id)
	}
	return fullSet[id], nil
}

// fullSet is the interning table for the whole double-six set, indexed by
// tile ID. It is built once and read-only afterwards.
var fullSet [SetSize]Tile

func init() {
	for high := 0; high <= MaxPip; high++ {
		for low := 0; low <= high; low++ {
			t := Tile{low: uint8(low), high: uint8(high)}
			fullSet[t.ID()] = t
		}
	}
}

// FullSet returns all 28 tiles in ID order.
func FullSet() []Tile {
	s := make([]Tile, SetSize)
	copy(s, fullSet[:])
	return s
}

// ID returns a stable index in [0, 28) derived from the (low, high) pair.
func (t Tile) ID() int {
	h := int(t.high)
	return h*(h+1)/2 + int(t.low)
}

func (t Tile) Low() int  { return int(t.low) }
func (t Tile) High() int { return int(t.high) }

// PipCount is the face value of the tile.
func (t Tile) PipCount() int {
	return int(t.low) + int(t.high)
}

// IsDouble reports whether both halves show the same value.
func (t Tile) IsDouble() bool {
	return t.low == t.high
}

// IsBlank reports whether this is the 0-0 tile.
func (t Tile) IsBlank() bool {
	return t.low == 0 && t.high == 0
}

// Matches reports whether the tile can attach to an end showing v.
func (t Tile) Matches(v int) bool {
	return int(t.low) == v || int(t.high) == v
}

// OtherSide returns the value exposed after attaching the tile to an end
// showing v. For a double this is v itself.
func (t Tile) OtherSide(v int) int {
	if int(t.low) == v {
		return int(t.high)
	}
	return int(t.low)
}

// ScoreValue is the tile's pip count for scoring purposes. The 0-0 tile
// counts as DeadBlankPips unless it is currently playable.
func (t Tile) ScoreValue(playable bool) int {
	if t.IsBlank() && !playable {
		return DeadBlankPips
	}
	return t.PipCount()
}

func (t Tile) String() string {
	return fmt.Sprintf("%d-%d", t.high, t.low)
}

// MarshalText renders the tile in "6-4" form for wire payloads.
func (t Tile) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses the "6-4" form.
func (t *Tile) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Parse converts a "6-4" style string into a tile.
func Parse(s string) (Tile, error) {
	var a, b int
	if _, err := fmt.Sscanf(s, "%d-%d", &a, &b); err != nil {
		return Tile{}, fmt.Errorf("badly formatted tile %q: %w", s, err)
	}
	return New(a, b)
}
