// Package shahmat ties a chess game, the learned oracles and the Monte
// Carlo tree search into a move-by-move engine.
package shahmat

import (
	"github.com/gorgonia/shahmat/game"
	"github.com/gorgonia/shahmat/mcts"
	"github.com/pkg/errors"
)

// Config configures an Engine.
type Config struct {
	MCTS       mcts.Config
	Iterations int // per-move search budget
}

func DefaultConfig() Config {
	return Config{
		MCTS:       mcts.DefaultConfig(),
		Iterations: 400,
	}
}

// Engine composes a game state, an encoder, the two oracles and one search
// tree into a player. The tree is retained across moves: once a move is
// committed its subtree becomes the next search's root and the discarded
// branches are released in bulk.
type Engine struct {
	conf    Config
	current game.State
	tree    *mcts.Tree
}

// New creates an Engine playing from the given state. The encoder and
// oracles are injected; see shahmat.DummyOracle for a stand-in when no
// trained network is around.
func New(g game.State, conf Config, enc mcts.Encoder, val mcts.ValueOracle, pol mcts.PolicyOracle) *Engine {
	return &Engine{
		conf:    conf,
		current: g,
		tree:    mcts.New(conf.MCTS, enc, val, pol),
	}
}

// State returns the engine's current game state.
func (e *Engine) State() game.State { return e.current }

// Tree exposes the search tree, mostly for inspection.
func (e *Engine) Tree() *mcts.Tree { return e.tree }

func (e *Engine) ensureRoot() error {
	if e.tree.Root().IsValid() {
		return nil
	}
	_, err := e.tree.SetRoot(e.current.Clone())
	return err
}

// Play searches the current position and commits the best move found,
// advancing both the game and the tree. It returns game.NoMove, without
// error, when the game is already over.
func (e *Engine) Play() (game.Move, error) {
	if err := e.ensureRoot(); err != nil {
		return game.NoMove, err
	}
	root, err := e.tree.Search(e.conf.Iterations)
	if err != nil {
		return game.NoMove, err
	}
	if e.tree.Node(root).IsTerminal() {
		return game.NoMove, nil
	}

	mv, err := e.tree.BestMove()
	if err != nil {
		return game.NoMove, err
	}
	e.current = e.current.Apply(mv)
	if !e.tree.AdvanceMove(mv) {
		return mv, errors.Errorf("search returned move %q with no matching child", mv)
	}
	return mv, nil
}

// Observe commits a move made by an external party (the opponent). The
// searched subtree behind that move is reused when it exists; otherwise the
// tree starts over from the new position.
func (e *Engine) Observe(mv game.Move) error {
	e.current = e.current.Apply(mv)
	if !e.tree.AdvanceMove(mv) {
		_, err := e.tree.SetRoot(e.current.Clone())
		return err
	}
	return nil
}
