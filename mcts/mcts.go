// Package mcts implements an oracle-guided Monte Carlo tree search for
// two-player, perfect-information board games. Leaf evaluation comes from an
// injected value oracle and move priors from an injected policy oracle
// rather than from random playouts.
package mcts

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/gorgonia/shahmat/game"
)

// MaxMoves is the maximum number of legal moves the engine caters for in any
// one position. Policy vectors are zero-padded to this length. 218 is the
// largest number of legal moves known in a reachable chess position.
const MaxMoves = 218

// An Encoder converts a game state into the fixed-shape numeric
// representation both oracles consume. It must be deterministic and
// side-effect free.
type Encoder func(s game.State) []float32

// ValueOracle estimates the probability, in [0, 1], that White wins from the
// encoded position.
type ValueOracle interface {
	Value(board []float32) (float32, error)
}

// PolicyOracle scores every slot of the engine's move capacity for the
// encoded position. The scores are raw (unnormalized), and the returned
// slice must be at least MaxMoves long.
type PolicyOracle interface {
	Policy(board []float32) ([]float32, error)
}

// Config is the structure to configure a search Tree.
type Config struct {
	// ExplorationConstant is the C in the UCB1 formula.
	ExplorationConstant float32
	// DirichletAlpha is the concentration of the noise drawn for the root's
	// selection scores each iteration.
	DirichletAlpha float64
	// Seed seeds the noise generator.
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		ExplorationConstant: math32.Sqrt(2),
		DirichletAlpha:      0.3,
		Seed:                time.Now().UnixNano(),
	}
}

func (c Config) IsValid() bool {
	return c.ExplorationConstant > 0 && c.DirichletAlpha > 0
}
