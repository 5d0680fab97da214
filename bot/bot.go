// Package bot exposes the engine over NATS request/reply with JSON
// payloads, so a game server can ask for moves without linking the engine
// in.
package bot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/josebatista/capicua/config"
	"github.com/josebatista/capicua/engine"
	"github.com/josebatista/capicua/game"
	"github.com/josebatista/capicua/move"
	"github.com/josebatista/capicua/tiles"
)

// RequestsSubject is where move requests arrive; replies go to the
// message's reply subject.
const RequestsSubject = "capicua.bot.requests"

// BotRequest is the wire form of a move request. Tiles are "6-4" strings;
// ends are absent (null) when the board is empty.
type BotRequest struct {
	MyHand  []string `json:"myHand"`
	OppHand []string `json:"oppHand"`
	Left    *int     `json:"left"`
	Right   *int     `json:"right"`
	// Recent non-pass plays, oldest first: player index, tile, and the
	// ends after the play.
	Recent []BotPlacement `json:"recent,omitempty"`
	// Legal moves for the side to move, as the host enumerated them.
	LegalMoves []BotMove `json:"legalMoves"`
}

type BotPlacement struct {
	Player int    `json:"player"`
	Tile   string `json:"tile"`
	Left   int    `json:"left"`
	Right  int    `json:"right"`
}

type BotMove struct {
	Tile string `json:"tile"`
	End  string `json:"end"`
}

// BotResponse carries the chosen move or an error. Pass is signaled by a
// null move with pass set.
type BotResponse struct {
	Move  *BotMove `json:"move"`
	Pass  bool     `json:"pass"`
	Value int16    `json:"value"`
	Depth int      `json:"depth"`
	Nodes uint64   `json:"nodes"`
	Error string   `json:"error,omitempty"`
}

type Bot struct {
	config *config.Config
	solver *engine.Solver
	nc     *nats.Conn
}

func NewBot(cfg *config.Config) (*Bot, error) {
	s := &engine.Solver{}
	if err := s.Init(cfg); err != nil {
		return nil, err
	}
	return &Bot{config: cfg, solver: s}, nil
}

func errorResponse(message string, err error) *BotResponse {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return &BotResponse{Error: msg}
}

// Deserialize converts wire bytes into an engine request.
func Deserialize(data []byte) (*engine.Request, error) {
	var wire BotRequest
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	req := &engine.Request{}
	var err error
	if req.MyHand, err = parseHand(wire.MyHand); err != nil {
		return nil, err
	}
	if req.OppHand, err = parseHand(wire.OppHand); err != nil {
		return nil, err
	}
	if (wire.Left == nil) != (wire.Right == nil) {
		return nil, fmt.Errorf("only one board end given")
	}
	if wire.Left == nil {
		req.BoardEmpty = true
	} else {
		req.Left = *wire.Left
		req.Right = *wire.Right
	}
	for _, p := range wire.Recent {
		t, err := tiles.Parse(p.Tile)
		if err != nil {
			return nil, err
		}
		req.Recent = append(req.Recent, game.Placement{
			Player: p.Player, Tile: t, Left: int8(p.Left), Right: int8(p.Right),
		})
	}
	for _, wm := range wire.LegalMoves {
		m, err := parseMove(wm)
		if err != nil {
			return nil, err
		}
		req.LegalMoves = append(req.LegalMoves, m)
	}
	return req, nil
}

func parseHand(ss []string) ([]tiles.Tile, error) {
	hand := make([]tiles.Tile, 0, len(ss))
	for _, s := range ss {
		t, err := tiles.Parse(s)
		if err != nil {
			return nil, err
		}
		hand = append(hand, t)
	}
	return hand, nil
}

func parseMove(wm BotMove) (*move.Move, error) {
	t, err := tiles.Parse(wm.Tile)
	if err != nil {
		return nil, err
	}
	switch wm.End {
	case "left":
		return move.New(t, move.EndLeft), nil
	case "right":
		return move.New(t, move.EndRight), nil
	}
	return nil, fmt.Errorf("bad end %q", wm.End)
}

func (b *Bot) handle(ctx context.Context, data []byte) *BotResponse {
	req, err := Deserialize(data)
	if err != nil {
		return errorResponse("bad request", err)
	}
	resp, err := b.solver.Solve(ctx, req)
	if err != nil {
		return errorResponse("solve failed", err)
	}
	out := &BotResponse{
		Value: resp.Value,
		Depth: resp.Depth,
		Nodes: resp.Nodes,
	}
	if resp.NoMove {
		out.Pass = true
		return out
	}
	out.Move = &BotMove{
		Tile: resp.Move.Tile().String(),
		End:  resp.Move.Placement().String(),
	}
	return out
}

// Main connects to NATS and serves move requests until ctx is done.
func (b *Bot) Main(ctx context.Context, natsURL string) error {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return err
	}
	b.nc = nc
	defer nc.Close()

	sub, err := nc.Subscribe(RequestsSubject, func(m *nats.Msg) {
		resp := b.handle(ctx, m.Data)
		data, err := json.Marshal(resp)
		if err != nil {
			log.Error().Err(err).Msg("marshaling response")
			return
		}
		if err := m.Respond(data); err != nil {
			log.Error().Err(err).Msg("responding")
		}
	})
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	log.Info().Str("subject", RequestsSubject).Str("nats-url", natsURL).
		Msg("bot listening")
	<-ctx.Done()
	return ctx.Err()
}
