// Package engine is the exact adversarial search for the open-information
// domino variant: depth-limited minimax with alpha-beta pruning over both
// known hands, a zobrist-keyed transposition table, killer/history move
// ordering, and iterative deepening under node and wall-clock budgets.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/josebatista/capicua/config"
	"github.com/josebatista/capicua/game"
	"github.com/josebatista/capicua/move"
	"github.com/josebatista/capicua/tiles"
	"github.com/josebatista/capicua/zobrist"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
(* Initial call *)
alphabeta(origin, depth, −∞, +∞, TRUE)
**/

const HugeNumber = int16(32767)

// MaxGameLength bounds ply indexing: at most 14 placements for two
// seven-tile hands, plus interleaved passes and extension headroom.
const MaxGameLength = 36

const MaxKillers = 2

// ExtensionPlies is the extra depth granted to a volatile leaf.
const ExtensionPlies = 2

// DeepeningStep is 2 plies, since this is a two-ply-symmetric game.
const DeepeningStep = 2

// TimeBudgetFraction is how much of the move time limit may be spent
// before we stop starting new deepening iterations.
const TimeBudgetFraction = 0.5

var ErrNoSolution = errors.New("no solution found")

// Credit: MIT-licensed https://github.com/algerbrex/blunder/blob/main/engine/search.go
type PVLine struct {
	Moves []*move.Move
	score int16
}

// Clear the principal variation line.
func (pvLine *PVLine) Clear() {
	pvLine.Moves = nil
}

// Update the principal variation line with a new best move,
// and a new line of best play after the best move.
func (pvLine *PVLine) Update(m *move.Move, newPVLine PVLine, score int16) {
	pvLine.Clear()
	pvLine.Moves = append(pvLine.Moves, m)
	pvLine.Moves = append(pvLine.Moves, newPVLine.Moves...)
	pvLine.score = score
}

// GetPVMove returns the best move from the principal variation line.
func (pvLine *PVLine) GetPVMove() *move.Move {
	if len(pvLine.Moves) == 0 {
		return nil
	}
	return pvLine.Moves[0]
}

func (pvLine PVLine) NLBString() string {
	// no line breaks
	s := fmt.Sprintf("PV; val %d; ", pvLine.score)
	for i := 0; i < len(pvLine.Moves); i++ {
		s += fmt.Sprintf("%d: %s; ", i+1, pvLine.Moves[i].ShortDescription())
	}
	return s
}

// Solver implements the minimax + alphabeta algorithm. All mutable state
// below is private to one Solve call; a Solver must not be shared across
// concurrent searches.
type Solver struct {
	cfg     *config.Config
	zobrist *zobrist.Zobrist
	ttable  *TranspositionTable

	transpositionTableOptim bool

	root      game.Position
	rootMoves []*move.Move
	// placements is the search-scoped play stack, seeded from the
	// request's recent history; the block scorer reads it.
	placements []game.Placement

	killers [MaxGameLength][MaxKillers]*move.Move
	history [tiles.SetSize][2]int32

	currentIDDepth int
	depthReached   int
	nodeBudget     uint64
	nodes          atomic.Uint64

	principalVariation PVLine
	bestPVValue        int16
	hasPV              bool
}

func max(x, y int16) int16 {
	if x < y {
		return y
	}
	return x
}

func min(x, y int16) int16 {
	if x < y {
		return x
	}
	return y
}

// Init initializes the solver.
func (s *Solver) Init(cfg *config.Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	s.cfg = cfg
	s.zobrist = &zobrist.Zobrist{}
	s.ttable = &TranspositionTable{}
	s.transpositionTableOptim = true
	return nil
}

// SetTranspositionTableOptim toggles memoization. Disabling it must never
// change the returned value, only the work to find it.
func (s *Solver) SetTranspositionTableOptim(tt bool) {
	s.transpositionTableOptim = tt
}

// Solve picks one move for the request, or signals NoMove when the host
// must record a pass.
func (s *Solver) Solve(ctx context.Context, req *Request) (*Response, error) {
	tstart := time.Now()
	if err := req.validate(); err != nil {
		return nil, err
	}
	if len(req.LegalMoves) == 0 {
		return &Response{NoMove: true, Elapsed: time.Since(tstart)}, nil
	}
	if len(req.LegalMoves) == 1 {
		// Only one legal move; no search needed.
		return &Response{Move: req.LegalMoves[0], Elapsed: time.Since(tstart)}, nil
	}

	s.root = req.position()
	s.placements = append(s.placements[:0], req.Recent...)
	s.rootMoves = make([]*move.Move, len(req.LegalMoves))
	for i, m := range req.LegalMoves {
		s.rootMoves[i] = move.New(m.Tile(), m.Placement())
	}

	s.zobrist.Initialize()
	if s.transpositionTableOptim {
		s.ttable.Reset(s.cfg.TTMemFraction)
	}
	s.clearKillers()
	s.clearHistory()
	s.nodes.Store(0)
	s.nodeBudget = s.cfg.NodeBudget
	s.hasPV = false
	s.depthReached = 0

	maxPlies := s.phaseCeiling()
	log.Debug().Int("max-plies", maxPlies).
		Int("tiles-remaining", s.root.TilesRemaining()).
		Int("legal-moves", len(req.LegalMoves)).
		Msg("alphabeta-solve-config")

	solveCtx, cancel := context.WithTimeout(ctx, s.cfg.MoveTimeLimit)
	defer cancel()

	g := &errgroup.Group{}
	done := make(chan bool)

	g.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nps", nodes-lastNodes).Msg("nodes-per-second")
				lastNodes = nodes
			}
		}
	})

	g.Go(func() error {
		err := s.iterativelyDeepen(solveCtx, maxPlies)
		done <- true
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	chosen := s.principalVariation.GetPVMove()
	value := s.bestPVValue
	if !s.hasPV || chosen == nil {
		// No iteration completed inside the budgets; fall back to the
		// statically best single-ply move.
		chosen = s.rootMoves[0]
		value = 0
	}
	final := findInList(chosen, req.LegalMoves)
	if final == nil {
		return nil, ErrNoSolution
	}

	log.Info().
		Uint64("ttable-created", s.ttable.created.Load()).
		Uint64("ttable-lookups", s.ttable.lookups.Load()).
		Uint64("ttable-hits", s.ttable.hits.Load()).
		Uint64("ttable-t2collisions", s.ttable.t2collisions.Load()).
		Uint64("nodes", s.nodes.Load()).
		Int("depth", s.depthReached).
		Int16("value", value).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")

	return &Response{
		Move:    final,
		Value:   value,
		Depth:   s.depthReached,
		Nodes:   s.nodes.Load(),
		Elapsed: time.Since(tstart),
	}, nil
}

// phaseCeiling caps the deepening depth by game phase: while most tiles
// are still in hand the exact search cannot finish anyway, so don't let it
// try.
func (s *Solver) phaseCeiling() int {
	plies := s.cfg.MaxPlies
	if s.root.TilesRemaining() >= 10 && s.cfg.EarlyGamePlies < plies {
		plies = s.cfg.EarlyGamePlies
	}
	if plies > MaxGameLength-ExtensionPlies*2 {
		plies = MaxGameLength - ExtensionPlies*2
	}
	return plies
}

func (s *Solver) iterativelyDeepen(ctx context.Context, plies int) error {
	rootKey := s.zobrist.Hash(s.root.Hands[0], s.root.Hands[1],
		s.root.Left, s.root.Right, false, s.root.Passes)

	// Static ordering for the very first iteration.
	s.assignEstimates(&s.root, s.rootMoves, 0, nil)

	solvedAt := s.root.TilesRemaining()
	start := time.Now()

	for p := DeepeningStep; p <= plies; p += DeepeningStep {
		s.currentIDDepth = p
		pv := PVLine{}
		val, err := s.alphabeta(ctx, s.root, rootKey, p, s.cfg.ExtensionBudget,
			-HugeNumber, HugeNumber, true, &pv)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				// Keep the previous completed iteration's result.
				log.Debug().Int("ply", p).Msg("deepening-cut-short")
				return nil
			}
			return err
		}
		if s.nodes.Load() >= s.nodeBudget {
			// This iteration only finished by degrading open branches to
			// static evaluations; keep the previous full iteration, or
			// the static root ordering if none completed.
			log.Debug().Int("ply", p).Uint64("nodes", s.nodes.Load()).
				Msg("node-budget-exhausted")
			return nil
		}
		// Sort the top layer by backed-up value for the next time around.
		sort.SliceStable(s.rootMoves, func(i, j int) bool {
			return s.rootMoves[i].EstimatedValue() > s.rootMoves[j].EstimatedValue()
		})
		s.principalVariation = pv
		s.bestPVValue = val
		s.hasPV = true
		s.depthReached = p
		log.Debug().Int16("value", val).Int("ply", p).
			Str("pv", pv.NLBString()).Msg("best-val")

		if p >= solvedAt {
			// Searched deeper than tiles remain; the position is exactly
			// solved and further iterations cannot change the answer.
			break
		}
		if time.Since(start) > time.Duration(TimeBudgetFraction*float64(s.cfg.MoveTimeLimit)) {
			break
		}
	}
	return nil
}

func (s *Solver) alphabeta(ctx context.Context, pos game.Position, nodeKey uint64,
	depth, extensions int, α, β int16, maximizing bool, pv *PVLine) (int16, error) {

	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	s.nodes.Add(1)

	if pos.Terminal() {
		// Terminal values can depend on the play history (block
		// responsibility), so they are computed fresh here and never
		// served from the table.
		return s.terminalValue(&pos), nil
	}

	alphaOrig := α
	betaOrig := β
	var ttMove *move.Move
	atRoot := depth == s.currentIDDepth

	if s.transpositionTableOptim && !atRoot {
		ttEntry := s.ttable.lookup(nodeKey)
		if ttEntry.valid() && int(ttEntry.depth()) >= depth {
			score := ttEntry.score
			flag := ttEntry.flag()
			if flag == TTExact {
				return score, nil
			} else if flag == TTLower {
				α = max(α, score)
			} else if flag == TTUpper {
				β = min(β, score)
			}
			if α >= β {
				return score, nil
			}
		}
		if ttEntry.valid() {
			// search hash move first.
			ttMove = move.FromTiny(ttEntry.move())
		}
	}

	if s.nodes.Load() >= s.nodeBudget {
		// Over the node budget: degrade this branch to its static
		// evaluation. An accepted approximation, not an error.
		return s.evaluate(&pos), nil
	}

	stm := pos.OnTurn
	children := game.LegalMoves(pos.Hands[stm], pos.Left, pos.Right)

	if len(children) == 0 {
		// Forced pass: flip the turn without consuming depth. Two in a
		// row terminate above.
		pass := move.NewPass()
		child, err := pos.Apply(pass)
		if err != nil {
			return 0, err
		}
		childKey := s.zobrist.AddMove(nodeKey, pass, stm == 0,
			pos.Left, pos.Right, child.Left, child.Right, pos.Passes, child.Passes)
		childPV := PVLine{}
		value, err := s.alphabeta(ctx, child, childKey, depth, extensions,
			α, β, !maximizing, &childPV)
		if err != nil {
			return value, err
		}
		pv.Update(pass, childPV, value)
		return value, nil
	}

	if depth <= 0 {
		if extensions > 0 && s.volatile(&pos, children) {
			// One-reply or reply-killing positions are too unstable to
			// score statically; grant a bounded extension.
			depth = ExtensionPlies
			extensions--
		} else {
			return s.evaluate(&pos), nil
		}
	}

	if atRoot {
		children = s.rootMoves
	} else {
		s.assignEstimates(&pos, children, depth, ttMove)
	}

	var bestMove *move.Move
	bestValue := -HugeNumber
	if !maximizing {
		bestValue = HugeNumber
	}
	childPV := PVLine{}

	for _, child := range children {
		np, err := pos.Apply(child)
		if err != nil {
			return 0, err
		}
		s.placements = append(s.placements, game.Placement{
			Player: stm, Tile: child.Tile(), Left: np.Left, Right: np.Right,
		})
		childKey := s.zobrist.AddMove(nodeKey, child, stm == 0,
			pos.Left, pos.Right, np.Left, np.Right, pos.Passes, np.Passes)
		value, err := s.alphabeta(ctx, np, childKey, depth-1, extensions,
			α, β, !maximizing, &childPV)
		s.placements = s.placements[:len(s.placements)-1]
		if err != nil {
			return value, err
		}
		if atRoot {
			child.SetEstimatedValue(int32(value))
		}

		if maximizing {
			if value > bestValue {
				bestValue = value
				bestMove = child
				pv.Update(child, childPV, bestValue)
			}
			α = max(α, bestValue)
			if bestValue >= β {
				s.storeKiller(depth, child)
				s.bumpHistory(child, depth)
				break // beta cut-off
			}
		} else {
			if value < bestValue {
				bestValue = value
				bestMove = child
				pv.Update(child, childPV, bestValue)
			}
			β = min(β, bestValue)
			if bestValue <= α {
				s.storeKiller(depth, child)
				s.bumpHistory(child, depth)
				break // alpha cut-off
			}
		}
		childPV.Clear()
	}

	if s.transpositionTableOptim && bestMove != nil {
		var flag uint8
		if bestValue <= alphaOrig {
			flag = TTUpper
		} else if bestValue >= betaOrig {
			flag = TTLower
		} else {
			flag = TTExact
		}
		s.ttable.store(nodeKey, TableEntry{
			score:        bestValue,
			flagAndDepth: flag<<6 + uint8(depth),
			play:         move.ToTiny(bestMove),
		})
	}
	return bestValue, nil
}

// volatile reports whether a depth-exhausted position is too forced to
// evaluate statically: either side down to one legal move, or any move
// here leaving the opponent with zero replies.
func (s *Solver) volatile(pos *game.Position, children []*move.Move) bool {
	if len(children) == 1 {
		return true
	}
	opp := pos.Hands[1-pos.OnTurn]
	if game.Mobility(opp, pos.Left, pos.Right) == 1 {
		return true
	}
	for _, m := range children {
		nl, nr, err := game.ApplyEnds(pos.Left, pos.Right, m.Tile(), m.Placement())
		if err == nil && !game.CanPlay(opp, nl, nr) {
			return true
		}
	}
	return false
}

func findInList(m *move.Move, list []*move.Move) *move.Move {
	for _, lm := range list {
		if m.Equals(lm) {
			return lm
		}
	}
	return nil
}
