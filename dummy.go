package shahmat

import "github.com/gorgonia/shahmat/mcts"

// DummyOracle is a deterministic stand-in for a trained network: every
// position is worth 0.5 and the policy is spread uniformly over the whole
// move capacity. Handy for tests and for exercising the engine before any
// weights exist.
type DummyOracle struct{}

func (DummyOracle) Value(board []float32) (float32, error) { return 0.5, nil }

func (DummyOracle) Policy(board []float32) ([]float32, error) {
	policy := make([]float32, mcts.MaxMoves)
	for i := range policy {
		policy[i] = 1 / float32(mcts.MaxMoves)
	}
	return policy, nil
}
