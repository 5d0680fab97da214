// Package shell is an interactive console for setting up domino positions
// and asking the engine for moves.
package shell

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/josebatista/capicua/config"
	"github.com/josebatista/capicua/engine"
	"github.com/josebatista/capicua/game"
	"github.com/josebatista/capicua/move"
	"github.com/josebatista/capicua/tiles"
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// ShellController owns the position being edited and a solver.
type ShellController struct {
	l      *readline.Instance
	cfg    *config.Config
	solver *engine.Solver

	myHand   game.Hand
	oppHand  game.Hand
	left     int8
	right    int8
	onTurn   int
	passes   int
	placed   []game.Placement
	finished bool
}

func NewShellController(cfg *config.Config) (*ShellController, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mcapicua>\033[0m ",
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	s := &engine.Solver{}
	if err := s.Init(cfg); err != nil {
		return nil, err
	}
	sc := &ShellController{l: l, cfg: cfg, solver: s}
	sc.reset()
	return sc, nil
}

func (sc *ShellController) reset() {
	sc.myHand = nil
	sc.oppHand = nil
	sc.left = game.NoEnd
	sc.right = game.NoEnd
	sc.onTurn = 0
	sc.passes = 0
	sc.placed = nil
	sc.finished = false
}

func (sc *ShellController) out() io.Writer {
	return sc.l.Stderr()
}

// Loop runs the shell until exit or EOF.
func (sc *ShellController) Loop() {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]
		if cmd == "exit" || cmd == "quit" {
			break
		}
		if err := sc.dispatch(cmd, args); err != nil {
			showMessage("error: "+err.Error(), sc.out())
		}
	}
}

func (sc *ShellController) dispatch(cmd string, args []string) error {
	switch cmd {
	case "new":
		sc.reset()
		showMessage("new position; set hands and board", sc.out())
		return nil
	case "hand":
		return sc.setHand(args)
	case "board":
		return sc.setBoard(args)
	case "show":
		sc.show()
		return nil
	case "solve":
		return sc.solve(args)
	case "play":
		return sc.play(args)
	case "pass":
		return sc.pass()
	case "help":
		sc.help()
		return nil
	}
	return fmt.Errorf("unknown command %q; try help", cmd)
}

func (sc *ShellController) setHand(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: hand <mine|theirs> <tile> [tile...]")
	}
	hand := make(game.Hand, 0, len(args)-1)
	for _, s := range args[1:] {
		t, err := tiles.Parse(s)
		if err != nil {
			return err
		}
		hand = append(hand, t)
	}
	if len(hand) > tiles.HandLimit {
		return fmt.Errorf("at most %d tiles per hand", tiles.HandLimit)
	}
	switch args[0] {
	case "mine":
		sc.myHand = hand
	case "theirs":
		sc.oppHand = hand
	default:
		return fmt.Errorf("usage: hand <mine|theirs> <tile> [tile...]")
	}
	return nil
}

func (sc *ShellController) setBoard(args []string) error {
	if len(args) == 1 && args[0] == "empty" {
		sc.left, sc.right = game.NoEnd, game.NoEnd
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: board <left> <right> | board empty")
	}
	l, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	r, err := strconv.Atoi(args[1])
	if err != nil {
		return err
	}
	if l < 0 || l > tiles.MaxPip || r < 0 || r > tiles.MaxPip {
		return fmt.Errorf("end values must be between 0 and %d", tiles.MaxPip)
	}
	sc.left, sc.right = int8(l), int8(r)
	return nil
}

func (sc *ShellController) show() {
	board := "(empty)"
	if sc.left != game.NoEnd {
		board = fmt.Sprintf("%d | %d", sc.left, sc.right)
	}
	turn := "mine"
	if sc.onTurn == 1 {
		turn = "theirs"
	}
	showMessage(fmt.Sprintf("board: %s", board), sc.out())
	showMessage(fmt.Sprintf("my hand:    %s", handString(sc.myHand)), sc.out())
	showMessage(fmt.Sprintf("their hand: %s", handString(sc.oppHand)), sc.out())
	showMessage(fmt.Sprintf("turn: %s, passes: %d", turn, sc.passes), sc.out())
	if sc.finished {
		showMessage("game over", sc.out())
	}
}

func handString(h game.Hand) string {
	if len(h) == 0 {
		return "(empty)"
	}
	return strings.Join(lo.Map(h, func(t tiles.Tile, _ int) string {
		return t.String()
	}), " ")
}

func (sc *ShellController) request() (*engine.Request, error) {
	if len(sc.myHand) == 0 || len(sc.oppHand) == 0 {
		return nil, fmt.Errorf("set both hands first")
	}
	if sc.onTurn != 0 {
		return nil, fmt.Errorf("it is not my turn; play or pass for the opponent")
	}
	req := &engine.Request{
		MyHand:     sc.myHand,
		OppHand:    sc.oppHand,
		BoardEmpty: sc.left == game.NoEnd,
		Left:       int(sc.left),
		Right:      int(sc.right),
		Recent:     sc.placed,
		LegalMoves: game.LegalMoves(sc.myHand, sc.left, sc.right),
	}
	return req, nil
}

func (sc *ShellController) solve(args []string) error {
	req, err := sc.request()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		plies, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		sc.cfg.MaxPlies = plies
	}
	resp, err := sc.solver.Solve(context.Background(), req)
	if err != nil {
		return err
	}
	if resp.NoMove {
		showMessage("no legal move; must pass", sc.out())
		return nil
	}
	showMessage(fmt.Sprintf("best: %s  value: %d  depth: %d  nodes: %d  (%.2fs)",
		resp.Move.ShortDescription(), resp.Value, resp.Depth, resp.Nodes,
		resp.Elapsed.Seconds()), sc.out())
	return nil
}

func (sc *ShellController) play(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: play <tile> <left|right>")
	}
	t, err := tiles.Parse(args[0])
	if err != nil {
		return err
	}
	var e move.End
	switch args[1] {
	case "left", "l":
		e = move.EndLeft
	case "right", "r":
		e = move.EndRight
	default:
		return fmt.Errorf("end must be left or right")
	}
	pos := game.NewPosition(sc.myHand, sc.oppHand, sc.left, sc.right, sc.onTurn)
	pos.Passes = sc.passes
	np, err := pos.Apply(move.New(t, e))
	if err != nil {
		return err
	}
	sc.placed = append(sc.placed, game.Placement{
		Player: sc.onTurn, Tile: t, Left: np.Left, Right: np.Right,
	})
	sc.myHand = np.Hands[0]
	sc.oppHand = np.Hands[1]
	sc.left, sc.right = np.Left, np.Right
	sc.onTurn = np.OnTurn
	sc.passes = np.Passes
	sc.finished = np.Terminal()
	sc.show()
	return nil
}

func (sc *ShellController) pass() error {
	sc.passes++
	sc.onTurn = 1 - sc.onTurn
	if sc.passes >= game.MaxScorelessTurns {
		sc.finished = true
		showMessage("blocked game", sc.out())
	}
	return nil
}

func (sc *ShellController) help() {
	showMessage(strings.TrimSpace(`
new                          start over
hand <mine|theirs> <tiles>   set a hand, e.g. hand mine 6-4 3-3 5-0
board <left> <right>         set the open ends; "board empty" for no tiles
show                         print the position
solve [plies]                ask the engine for the best move
play <tile> <left|right>     play a tile for the side on turn
pass                         record a pass for the side on turn
exit                         leave
`), sc.out())
}

// Execute is the entry point used by cmd/capicua.
func Execute(cfg *config.Config) {
	sc, err := NewShellController(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("creating shell")
	}
	sc.Loop()
}
