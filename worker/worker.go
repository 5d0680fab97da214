// Package worker runs the engine in its own goroutine behind a strict
// request/response boundary, keeping the synchronous search off whatever
// interactive loop the host runs. One worker owns one solver; all search
// state is reset per request and never shared.
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/josebatista/capicua/engine"
)

var ErrQueueTimeout = errors.New("worker queue is full")

type job struct {
	req  *engine.Request
	resp chan result
}

type result struct {
	resp *engine.Response
	err  error
}

// MoveWorker serializes move requests onto one solver.
type MoveWorker struct {
	config *WorkerConfig
	solver *engine.Solver
	jobs   chan job
}

// NewMoveWorker creates a new worker.
func NewMoveWorker(cfg *WorkerConfig) (*MoveWorker, error) {
	s := &engine.Solver{}
	if err := s.Init(cfg.EngineConfig); err != nil {
		return nil, err
	}
	return &MoveWorker{
		config: cfg,
		solver: s,
		jobs:   make(chan job, cfg.QueueDepth),
	}, nil
}

// Run starts the worker main loop. It returns when ctx is done.
func (w *MoveWorker) Run(ctx context.Context) error {
	log.Info().
		Int("queue-depth", w.config.QueueDepth).
		Msg("starting move worker")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker shutting down")
			return ctx.Err()

		case j := <-w.jobs:
			start := time.Now()
			resp, err := w.solver.Solve(ctx, j.req)
			if err != nil {
				log.Warn().Err(err).
					Str("request", fingerprint(j.req)).
					Msg("solve failed")
			} else {
				log.Debug().
					Str("request", fingerprint(j.req)).
					Str("move", describe(resp)).
					Dur("elapsed", time.Since(start)).
					Msg("solve done")
			}
			j.resp <- result{resp: resp, err: err}
		}
	}
}

// Submit hands one request to the worker and waits for its response.
func (w *MoveWorker) Submit(ctx context.Context, req *engine.Request) (*engine.Response, error) {
	j := job{req: req, resp: make(chan result, 1)}
	submitCtx, cancel := context.WithTimeout(ctx, w.config.SubmitTimeout)
	defer cancel()
	select {
	case w.jobs <- j:
	case <-submitCtx.Done():
		return nil, ErrQueueTimeout
	}
	select {
	case r := <-j.resp:
		return r.resp, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// fingerprint is a short stable tag for a request, for log correlation
// only.
func fingerprint(req *engine.Request) string {
	data := make([]byte, 0, 24)
	for _, t := range req.MyHand {
		data = append(data, byte(t.ID()))
	}
	data = append(data, 0xff)
	for _, t := range req.OppHand {
		data = append(data, byte(t.ID()))
	}
	if req.BoardEmpty {
		data = append(data, 0xfe)
	} else {
		data = append(data, byte(req.Left), byte(req.Right))
	}
	sum := xxhash.Sum64(data)
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 8)
	for i := range out {
		out[i] = hexdigits[(sum>>(60-4*i))&0xf]
	}
	return string(out)
}

func describe(resp *engine.Response) string {
	if resp == nil || resp.NoMove {
		return "(no move)"
	}
	return resp.Move.ShortDescription()
}
