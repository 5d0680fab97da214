package move

import "github.com/josebatista/capicua/tiles"

// TinyMove is a 16-bit representation of a move, made to be as small as
// possible to fit in a transposition table entry.
type TinyMove uint16

// Schema:
// 15       8        0
//  xxxxxxxx xxxxxxxx
//           xttttt e
// t - tile ID plus one (1..28); 0 means the whole move is a pass
// e - end bit (left = 0, right = 1)
//
// If the move is a pass, the entire value is 0.

const (
	tmEndBit    = 1
	tmTileShift = 1
)

// InvalidTinyMove is a sentinel distinct from every encodable move.
const InvalidTinyMove TinyMove = 1 << 15

// ToTiny packs a move. A nil move maps to InvalidTinyMove.
func ToTiny(m *Move) TinyMove {
	if m == nil {
		return InvalidTinyMove
	}
	if m.pass {
		return 0
	}
	tm := TinyMove(m.tile.ID()+1) << tmTileShift
	if m.end == EndRight {
		tm |= tmEndBit
	}
	return tm
}

// FromTiny unpacks a move. It returns nil for InvalidTinyMove.
func FromTiny(tm TinyMove) *Move {
	if tm == InvalidTinyMove {
		return nil
	}
	if tm == 0 {
		return NewPass()
	}
	id := int(tm>>tmTileShift) - 1
	t, err := tiles.FromID(id)
	if err != nil {
		return nil
	}
	e := EndLeft
	if tm&tmEndBit != 0 {
		e = EndRight
	}
	return New(t, e)
}
