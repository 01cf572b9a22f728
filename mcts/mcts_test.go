package mcts

import (
	"github.com/gorgonia/shahmat/game"
	"github.com/pkg/errors"
)

// countdown is a deterministic stub game: each side alternately plays one of
// two moves ("l" or "r") until no plies remain, at which point the game is
// over with a fixed outcome. It exists so the tree can be tested without a
// real game engine or real oracles.
type countdown struct {
	plies int // moves remaining until the game is over
	mover game.Player
	num   int

	resolved bool
	drawn    bool
	winner   game.Player // None means the game ends drawn
}

func newCountdown(plies int) *countdown {
	return &countdown{plies: plies, mover: game.Player(game.White)}
}

func (c *countdown) LegalMoves() []game.Move {
	if c.plies <= 0 {
		return nil
	}
	return []game.Move{"l", "r"}
}

func (c *countdown) ToMove() game.Player { return c.mover }

func (c *countdown) MoveNumber() int { return c.num }

func (c *countdown) Resolve() { c.resolved = c.plies <= 0 }

func (c *countdown) Concluded() bool { return c.resolved }

func (c *countdown) Drawn() bool {
	return c.resolved && c.winner == game.Player(game.None)
}

func (c *countdown) Winner() (game.Player, bool) {
	if !c.resolved || c.winner == game.Player(game.None) {
		return game.Player(game.None), false
	}
	return c.winner, true
}

func (c *countdown) Apply(m game.Move) game.State {
	c.plies--
	c.mover = game.Opponent(c.mover)
	c.num++
	c.resolved = false
	return c
}

func (c *countdown) Clone() game.State {
	c2 := *c
	return &c2
}

// won is a countdown that is already over with the given winner.
func won(winner game.Player) *countdown {
	return &countdown{plies: 0, mover: game.Player(game.White), winner: winner}
}

// stub oracles

// constValue values every position at a fixed scalar.
type constValue float32

func (c constValue) Value(board []float32) (float32, error) { return float32(c), nil }

// uniformPolicy spreads raw scores evenly over the whole move capacity.
type uniformPolicy struct{}

func (uniformPolicy) Policy(board []float32) ([]float32, error) {
	policy := make([]float32, MaxMoves)
	for i := range policy {
		policy[i] = 1 / float32(MaxMoves)
	}
	return policy, nil
}

// failingValue errors on every call.
type failingValue struct{}

func (failingValue) Value(board []float32) (float32, error) {
	return 0, errors.New("oracle down")
}

func nullEncoder(s game.State) []float32 { return make([]float32, 4) }

func testConfig() Config {
	conf := DefaultConfig()
	conf.Seed = 1337
	return conf
}

func testTree() *Tree {
	return New(testConfig(), nullEncoder, constValue(0.5), uniformPolicy{})
}
