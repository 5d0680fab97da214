// Command solve answers one move request from the command line and prints
// the chosen move as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/namsral/flag"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/josebatista/capicua/config"
	"github.com/josebatista/capicua/engine"
	"github.com/josebatista/capicua/game"
	"github.com/josebatista/capicua/tiles"
)

func parseHand(s string) (game.Hand, error) {
	fields := strings.Fields(s)
	hand := make(game.Hand, 0, len(fields))
	for _, f := range fields {
		t, err := tiles.Parse(f)
		if err != nil {
			return nil, err
		}
		hand = append(hand, t)
	}
	return hand, nil
}

func main() {
	var mine, theirs string
	var left, right int
	var empty, debug bool

	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	fs.StringVar(&mine, "mine", "", `searching player's hand, e.g. "6-4 3-3 5-0"`)
	fs.StringVar(&theirs, "theirs", "", "opponent's hand")
	fs.IntVar(&left, "left", 0, "left end value")
	fs.IntVar(&right, "right", 0, "right end value")
	fs.BoolVar(&empty, "empty", false, "the board is empty")
	fs.BoolVar(&debug, "debug", false, "debug logging")
	fs.Parse(os.Args[1:])

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	myHand, err := parseHand(mine)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing -mine")
	}
	oppHand, err := parseHand(theirs)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing -theirs")
	}

	l, r := int8(left), int8(right)
	if empty {
		l, r = game.NoEnd, game.NoEnd
	}
	req := &engine.Request{
		MyHand:     myHand,
		OppHand:    oppHand,
		BoardEmpty: empty,
		Left:       left,
		Right:      right,
		LegalMoves: game.LegalMoves(myHand, l, r),
	}

	cfg := config.DefaultConfig()
	s := &engine.Solver{}
	if err := s.Init(&cfg); err != nil {
		log.Fatal().Err(err).Msg("initializing solver")
	}
	resp, err := s.Solve(context.Background(), req)
	if err != nil {
		log.Fatal().Err(err).Msg("solving")
	}

	out := map[string]any{
		"pass":  resp.NoMove,
		"value": resp.Value,
		"depth": resp.Depth,
		"nodes": resp.Nodes,
	}
	if !resp.NoMove {
		out["tile"] = resp.Move.Tile().String()
		out["end"] = resp.Move.Placement().String()
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(data))
}
