package mcts

import (
	"github.com/gorgonia/shahmat/game"
	"github.com/pkg/errors"
)

// Search runs the given number of selection-expansion-evaluation-backup
// iterations from the current root and returns it. The caller picks the
// actual move from the root's children statistics afterwards (BestMove).
//
// A terminal root is returned immediately, untouched. Otherwise the root's
// policy vector is ensured, and each iteration then:
//
//  1. draws fresh Dirichlet noise over the root's legal moves and selects a
//     root child on the noised scores (the noise is private to the
//     iteration, never persisted),
//  2. descends through visited nodes on their own un-noised scores, stopping
//     at a terminal node, at an unvisited node, or at a node whose policy
//     vector had to be computed first (the expansion point),
//  3. backpropagates the stopping node's evaluation with its mover identity.
func (t *Tree) Search(iterations int) (Naughty, error) {
	if !t.root.IsValid() {
		return nilNode, errors.New("search without a root")
	}
	if t.Node(t.root).terminal {
		return t.root, nil
	}
	if !t.Node(t.root).HasPolicy() {
		if err := t.computePolicy(t.root); err != nil {
			return nilNode, err
		}
	}

	for i := 0; i < iterations; i++ {
		root := t.Node(t.root)
		sel, err := t.selectChild(t.root, t.noised(root.legalScores))
		if err != nil {
			return nilNode, err
		}

		for t.Node(sel).visits > 0 {
			n := t.Node(sel)
			if n.terminal {
				break
			}
			if !n.HasPolicy() {
				// this node is the expansion point of the iteration
				if err := t.computePolicy(sel); err != nil {
					return nilNode, err
				}
				break
			}
			if sel, err = t.selectChild(sel, n.legalScores); err != nil {
				return nilNode, err
			}
		}

		leaf := t.Node(sel)
		result := leaf.value
		t.backPropagate(sel, result, leaf.state.ToMove())
		t.log("depth: %d, search number: %d, node score: %v",
			leaf.state.MoveNumber()-t.Node(t.root).state.MoveNumber(), i+1, result)
	}
	return t.root, nil
}

// noised returns this iteration's selection scores for the root: the blended
// scores plus one Dirichlet(alpha) draw, one noise value per legal move.
func (t *Tree) noised(scores []float32) []float32 {
	alphas := make([]float64, len(scores))
	for i := range alphas {
		alphas[i] = t.DirichletAlpha
	}
	noise := t.dirichlet.Dirichlet(alphas)

	retVal := make([]float32, len(scores))
	for i := range scores {
		retVal[i] = scores[i] + float32(noise[i])
	}
	return retVal
}

// BestMove returns the move of the best root child: most visits, higher
// evaluation as the tie break. The children themselves are left in
// legal-move order.
func (t *Tree) BestMove() (game.Move, error) {
	kids := t.Children(t.root)
	if len(kids) == 0 {
		return game.NoMove, errors.New("root has no children to choose from")
	}

	best := kids[0]
	for _, kid := range kids[1:] {
		b, k := t.Node(best), t.Node(kid)
		if k.visits > b.visits || (k.visits == b.visits && k.value > b.value) {
			best = kid
		}
	}
	return t.Node(best).move, nil
}
