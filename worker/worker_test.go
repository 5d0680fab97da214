package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/josebatista/capicua/engine"
	"github.com/josebatista/capicua/game"
	"github.com/josebatista/capicua/tiles"
)

func hand(specs ...string) []tiles.Tile {
	h := make([]tiles.Tile, 0, len(specs))
	for _, s := range specs {
		t, err := tiles.Parse(s)
		if err != nil {
			panic(err)
		}
		h = append(h, t)
	}
	return h
}

func testRequest() *engine.Request {
	my := hand("6-4", "3-3", "4-2")
	return &engine.Request{
		MyHand:     my,
		OppHand:    hand("5-1", "1-3"),
		Left:       4,
		Right:      3,
		LegalMoves: game.LegalMoves(game.Hand(my), 4, 3),
	}
}

func TestWorkerRoundTrip(t *testing.T) {
	is := is.New(t)
	cfg := DefaultWorkerConfig()
	w, err := NewMoveWorker(cfg)
	is.NoErr(err)

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- w.Run(ctx) }()

	req := testRequest()
	resp, err := w.Submit(ctx, req)
	is.NoErr(err)
	is.True(!resp.NoMove)
	found := false
	for _, m := range req.LegalMoves {
		if resp.Move.Equals(m) {
			found = true
		}
	}
	is.True(found)

	cancel()
	is.True(errors.Is(<-runErr, context.Canceled))
}

func TestSubmitTimesOutWhenWorkerIsGone(t *testing.T) {
	is := is.New(t)
	cfg := DefaultWorkerConfig()
	cfg.QueueDepth = 0
	cfg.SubmitTimeout = 10 * time.Millisecond
	w, err := NewMoveWorker(cfg)
	is.NoErr(err)

	// Nothing is draining the queue.
	_, err = w.Submit(context.Background(), testRequest())
	is.True(errors.Is(err, ErrQueueTimeout))
}

func TestFingerprintIsStableAndDiscriminating(t *testing.T) {
	is := is.New(t)
	a := testRequest()
	b := testRequest()
	is.Equal(fingerprint(a), fingerprint(b))

	b.Right = 2
	is.True(fingerprint(a) != fingerprint(b))

	c := testRequest()
	c.BoardEmpty = true
	is.True(fingerprint(a) != fingerprint(c))
}

func TestDescribe(t *testing.T) {
	is := is.New(t)
	is.Equal(describe(nil), "(no move)")
	is.Equal(describe(&engine.Response{NoMove: true}), "(no move)")
}
