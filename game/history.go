package game

import (
	"fmt"

	"github.com/josebatista/capicua/tiles"
)

// Placement records one non-pass ply: who set which tile and the board
// ends it produced. The block scorer walks these backwards to decide who
// forced a lock.
type Placement struct {
	Player int
	Tile   tiles.Tile
	// Ends after this placement.
	Left  int8
	Right int8
}

func (pl Placement) String() string {
	return fmt.Sprintf("p%d %s (ends %d|%d)", pl.Player, pl.Tile, pl.Left, pl.Right)
}
