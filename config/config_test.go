package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	err := cfg.Load([]string{
		"-debug",
		"-node-budget", "5000",
		"-move-time-limit", "250ms",
		"-max-plies", "10",
	})
	is.NoErr(err)
	is.True(cfg.Debug)
	is.Equal(cfg.NodeBudget, uint64(5000))
	is.Equal(cfg.MoveTimeLimit, 250*time.Millisecond)
	is.Equal(cfg.MaxPlies, 10)
	// Untouched fields keep their defaults.
	is.Equal(cfg.EarlyGamePlies, 8)
	is.Equal(cfg.Weights, DefaultWeights())
}

func TestLoadWeightsFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "weights.yaml")
	err := os.WriteFile(path, []byte("pip_diff: 7\nghost: 20\n"), 0o644)
	is.NoErr(err)

	cfg := DefaultConfig()
	err = cfg.Load([]string{"-weights-path", path})
	is.NoErr(err)
	is.Equal(cfg.Weights.PipDiff, 7)
	is.Equal(cfg.Weights.Ghost, 20)
	// Keys absent from the file keep their defaults.
	is.Equal(cfg.Weights.Mobility, 6)
}

func TestLoadMissingWeightsFile(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	err := cfg.Load([]string{"-weights-path", "/nonexistent/weights.yaml"})
	is.True(err != nil)
}
