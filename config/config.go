// Package config carries the engine's tunables. Everything here is a
// fixed constant at search time; nothing is derived state.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/namsral/flag"
	"gopkg.in/yaml.v3"
)

// Weights are the static-evaluation and move-ordering coefficients. They
// are tuned for the two-player double-six block variant.
type Weights struct {
	PipDiff     int `yaml:"pip_diff"`
	Mobility    int `yaml:"mobility"`
	HandSize    int `yaml:"hand_size"`
	SuitControl int `yaml:"suit_control"`
	LockIn      int `yaml:"lock_in"`
	Ghost       int `yaml:"ghost"`
	DoubleDrag  int `yaml:"double_drag"`
}

// DefaultWeights returns the tuned defaults.
func DefaultWeights() Weights {
	return Weights{
		PipDiff:     4,
		Mobility:    6,
		HandSize:    12,
		SuitControl: 5,
		LockIn:      18,
		Ghost:       15,
		DoubleDrag:  2,
	}
}

type Config struct {
	Debug bool

	// TTMemFraction is the fraction of system memory given to the
	// transposition table.
	TTMemFraction float64
	// NodeBudget caps total nodes per move request. Exceeding it degrades
	// open branches to their static evaluation.
	NodeBudget uint64
	// MoveTimeLimit bounds one whole move request; iterative deepening
	// stops starting new iterations after a fraction of it is spent.
	MoveTimeLimit time.Duration
	// MaxPlies is the hard iterative-deepening ceiling.
	MaxPlies int
	// EarlyGamePlies caps depth while most tiles are still in hand.
	EarlyGamePlies int
	// ExtensionBudget is the total extra depth a branch may receive from
	// forced-line extensions.
	ExtensionBudget int

	WeightsPath string
	Weights     Weights
}

func DefaultConfig() Config {
	return Config{
		TTMemFraction:   0.05,
		NodeBudget:      2_000_000,
		MoveTimeLimit:   5 * time.Second,
		MaxPlies:        16,
		EarlyGamePlies:  8,
		ExtensionBudget: 4,
		Weights:         DefaultWeights(),
	}
}

func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("capicua", flag.ContinueOnError)
	fs.BoolVar(&c.Debug, "debug", c.Debug, "debug logging")
	fs.Float64Var(&c.TTMemFraction, "tt-mem-fraction", c.TTMemFraction,
		"fraction of system memory for the transposition table")
	fs.Uint64Var(&c.NodeBudget, "node-budget", c.NodeBudget,
		"max search nodes per move request")
	fs.DurationVar(&c.MoveTimeLimit, "move-time-limit", c.MoveTimeLimit,
		"wall-clock budget per move request")
	fs.IntVar(&c.MaxPlies, "max-plies", c.MaxPlies,
		"iterative deepening depth ceiling")
	fs.IntVar(&c.EarlyGamePlies, "early-game-plies", c.EarlyGamePlies,
		"depth ceiling while ten or more tiles remain in hand")
	fs.IntVar(&c.ExtensionBudget, "extension-budget", c.ExtensionBudget,
		"total forced-line extension plies per branch")
	fs.StringVar(&c.WeightsPath, "weights-path", c.WeightsPath,
		"optional YAML file overriding evaluator weights")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if c.WeightsPath != "" {
		if err := c.loadWeights(c.WeightsPath); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) loadWeights(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading weights file: %w", err)
	}
	w := DefaultWeights()
	if err := yaml.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("parsing weights file: %w", err)
	}
	c.Weights = w
	return nil
}
