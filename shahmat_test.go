package shahmat

import (
	"testing"

	"github.com/gorgonia/shahmat/game"
	chessgame "github.com/gorgonia/shahmat/game/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngineConfig() Config {
	conf := DefaultConfig()
	conf.Iterations = 8
	conf.MCTS.Seed = 1337
	return conf
}

func newTestEngine(s game.State) *Engine {
	var oracle DummyOracle
	return New(s, testEngineConfig(), chessgame.Encode, oracle, oracle)
}

func TestEngineSelfPlay(t *testing.T) {
	assert := assert.New(t)
	e := newTestEngine(chessgame.New())

	const plies = 4
	for i := 0; i < plies; i++ {
		mv, err := e.Play()
		require.NoError(t, err)
		assert.NotEqual(game.NoMove, mv, "ply %d", i)
	}
	assert.Equal(plies, e.State().MoveNumber())
}

func TestEnginePlayConcluded(t *testing.T) {
	s, err := chessgame.FromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 0 3")
	require.NoError(t, err)

	e := newTestEngine(s)
	mv, err := e.Play()
	require.NoError(t, err)
	assert.Equal(t, game.NoMove, mv, "a finished game has no move to play")
}

func TestEnginePlayForcedDraw(t *testing.T) {
	// two bare kings: a forced draw the underlying library concludes even
	// though the position still has moves
	s, err := chessgame.FromFEN("8/8/8/8/8/4k3/8/4K3 w - - 0 1")
	require.NoError(t, err)

	e := newTestEngine(s)
	mv, err := e.Play()
	require.NoError(t, err)
	assert.Equal(t, game.NoMove, mv, "a drawn game has no move to play")
	assert.Empty(t, e.Tree().Children(e.Tree().Root()), "a drawn root is never expanded")
}

func TestEngineObserve(t *testing.T) {
	assert := assert.New(t)
	a := newTestEngine(chessgame.New())
	b := newTestEngine(chessgame.New())

	// a plays both sides; b only watches, reusing searched subtrees when the
	// observed move was anticipated
	for i := 0; i < 4; i++ {
		mv, err := a.Play()
		require.NoError(t, err)
		require.NoError(t, b.Observe(mv))
	}

	assert.Equal(
		a.State().(*chessgame.Game).FEN(),
		b.State().(*chessgame.Game).FEN(),
	)
}

func TestEngineObserveFreshTree(t *testing.T) {
	assert := assert.New(t)
	e := newTestEngine(chessgame.New())

	// no search has run yet, so there is no subtree to advance into
	require.NoError(t, e.Observe(game.Move("e2e4")))
	assert.Equal(1, e.State().MoveNumber())
	assert.True(e.Tree().Root().IsValid())

	mv, err := e.Play()
	require.NoError(t, err)
	assert.NotEqual(game.NoMove, mv)
	assert.Equal(2, e.State().MoveNumber())
}

func TestDummyOracle(t *testing.T) {
	assert := assert.New(t)
	var oracle DummyOracle

	v, err := oracle.Value(nil)
	require.NoError(t, err)
	assert.Equal(float32(0.5), v)

	p, err := oracle.Policy(nil)
	require.NoError(t, err)
	require.NotEmpty(t, p)
	for _, s := range p[1:] {
		assert.Equal(p[0], s)
	}
}
