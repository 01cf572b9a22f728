package mcts

import (
	"github.com/chewxy/math32"
	"github.com/gorgonia/shahmat/game"
	rng "github.com/leesper/go_rng"
	"github.com/pkg/errors"
	"gorgonia.org/vecf32"
)

// Tree is the search tree plus everything needed to grow it: the arena the
// nodes live in, the oracles, and the noise source. It is single-owner and
// single-threaded; one search iteration runs to completion before the next.
type Tree struct {
	Config

	// memory related fields
	nodes    []Node
	children [][]Naughty
	freelist []Naughty

	root Naughty

	// injected collaborators
	enc Encoder
	val ValueOracle
	pol PolicyOracle

	dirichlet *rng.DirichletGenerator

	lumberjack
}

// New creates an empty search tree. The encoder and both oracles are
// injected here; the tree never reaches for ambient globals.
func New(conf Config, enc Encoder, val ValueOracle, pol PolicyOracle) *Tree {
	if !conf.IsValid() {
		panic("mcts.Config is not valid. Unable to proceed")
	}
	t := &Tree{
		Config:   conf,
		nodes:    make([]Node, 0, 4096),
		children: make([][]Naughty, 0, 4096),

		root: nilNode,

		enc: enc,
		val: val,
		pol: pol,

		dirichlet:  rng.NewDirichletGenerator(conf.Seed),
		lumberjack: makeLumberJack(),
	}
	go t.start()
	return t
}

// Root returns the current root of the tree, nilNode-invalid if none is set.
func (t *Tree) Root() Naughty { return t.root }

// Node gets the node for the given index.
func (t *Tree) Node(of Naughty) *Node { return &t.nodes[int(of)] }

// Children returns the list of children of a node, one per legal move of its
// state, in the same order as the state's legal-move sequence. Empty until
// the node is expanded.
func (t *Tree) Children(of Naughty) []Naughty { return t.children[of] }

// alloc tries to get a node from the free list. If none is found a new node
// is allocated into the arena.
func (t *Tree) alloc() Naughty {
	l := len(t.freelist)
	if l == 0 {
		n := Naughty(len(t.nodes))
		t.nodes = append(t.nodes, Node{id: n, parent: nilNode})
		t.children = append(t.children, make([]Naughty, 0, 8))
		return n
	}

	n := t.freelist[l-1]
	t.freelist = t.freelist[:l-1]
	return n
}

// free puts the node back into the freelist.
func (t *Tree) free(n Naughty) {
	t.children[int(n)] = t.children[int(n)][:0]
	t.Node(n).reset()
	t.freelist = append(t.freelist, n)
}

// freeSubtree recursively releases a node and everything below it.
func (t *Tree) freeSubtree(of Naughty) {
	for _, kid := range t.children[of] {
		t.freeSubtree(kid)
	}
	t.free(of)
}

// newNode constructs a node for the given state snapshot. The state's
// terminal status is resolved here, and the node's evaluation is fixed for
// good: the actual outcome for a concluded game, the value oracle's estimate
// otherwise. Oracle failures are not recoverable locally and propagate.
func (t *Tree) newNode(s game.State, mv game.Move, parent Naughty) (Naughty, error) {
	id := t.alloc()
	n := t.Node(id)
	n.move = mv
	n.parent = parent
	n.state = s
	n.board = t.enc(s)

	s.Resolve()
	switch {
	case s.Concluded() && s.Drawn():
		n.value = 0.5
	case s.Concluded():
		if w, _ := s.Winner(); w == game.Player(game.White) {
			n.value = 1
		} else {
			n.value = 0
		}
	default:
		v, err := t.val.Value(n.board)
		if err != nil {
			t.free(id)
			return nilNode, errors.WithMessage(err, "value oracle")
		}
		n.value = v
	}
	n.terminal = len(s.LegalMoves()) == 0
	return id, nil
}

// SetRoot discards any existing tree and makes a node built from the given
// state the new root. The tree takes ownership of the state.
func (t *Tree) SetRoot(s game.State) (Naughty, error) {
	t.Reset()
	root, err := t.newNode(s, game.NoMove, nilNode)
	if err != nil {
		return nilNode, err
	}
	t.root = root
	return root, nil
}

// Advance makes a child of the current root the new root, as happens when a
// real move is committed. The child's parent link is cleared and the
// discarded sibling subtrees are released in bulk.
func (t *Tree) Advance(newRoot Naughty) {
	oldRoot := t.root
	for _, kid := range t.children[oldRoot] {
		if kid != newRoot {
			t.freeSubtree(kid)
		}
	}
	t.children[oldRoot] = t.children[oldRoot][:0]
	t.free(oldRoot)

	t.Node(newRoot).parent = nilNode
	t.root = newRoot
}

// AdvanceMove advances the root into the child carrying the given move.
// It reports whether such a child existed; when it does not (the move leads
// into an unexpanded region) the caller has to rebuild the tree with SetRoot.
func (t *Tree) AdvanceMove(mv game.Move) bool {
	if !t.root.IsValid() {
		return false
	}
	for _, kid := range t.Children(t.root) {
		if t.Node(kid).move == mv {
			t.Advance(kid)
			return true
		}
	}
	return false
}

// Reset empties the tree and the debug log.
func (t *Tree) Reset() {
	// Tree.Reset shadows the promoted method, so the logger's own Reset has
	// to be called explicitly
	t.lumberjack.Reset()
	t.freelist = t.freelist[:0]
	for i := range t.nodes {
		t.nodes[i].reset()
		t.freelist = append(t.freelist, t.nodes[i].id)
	}
	for i := range t.children {
		t.children[i] = t.children[i][:0]
	}
	t.root = nilNode
}

// expandChildren creates one child per legal move of the node's state, in
// the legal-move order, each from a deep copy of the state. It is a no-op on
// terminal nodes and on nodes that already have children: "children empty"
// is the only re-expansion guard.
func (t *Tree) expandChildren(of Naughty) error {
	if t.Node(of).terminal {
		return nil
	}
	if len(t.children[of]) > 0 {
		return nil
	}

	state := t.Node(of).state
	for _, mv := range state.LegalMoves() {
		next := state.Clone().Apply(mv)
		kid, err := t.newNode(next, mv, of)
		if err != nil {
			return errors.WithMessagef(err, "expanding move %q", mv)
		}
		t.children[of] = append(t.children[of], kid)
	}
	return nil
}

// ucb1 is the exploration score of a node: mean win rate plus the
// visit-count bonus. An unvisited node gets the implied bonus
// C*sqrt(ln(parent visits)) instead of a division by zero, and 0 when the
// parent is unvisited too; the fallback keeps unvisited siblings comparable
// without going infinite.
func (t *Tree) ucb1(of Naughty) float32 {
	n := t.Node(of)
	c := t.ExplorationConstant

	var parentVisits uint32
	if n.parent.IsValid() {
		parentVisits = t.Node(n.parent).visits
	}

	if n.visits == 0 {
		if parentVisits > 0 {
			return c * math32.Sqrt(math32.Log(float32(parentVisits)))
		}
		return 0
	}
	return float32(n.wins)/float32(n.visits) +
		c*math32.Sqrt(math32.Log(float32(parentVisits))/float32(n.visits))
}

// computePolicy expands the node if needed, then blends three signals into
// one per-legal-move ranking:
//
//	score[i] = childValue[i] + ucb1[i] + prior[i]
//
// where prior is the policy oracle's output normalized over its ENTIRE raw
// vector - padding slots beyond the legal-move count included. The blend is
// a plain sum across the three scales; selection and noise injection both
// operate on this combined scale.
func (t *Tree) computePolicy(of Naughty) error {
	if err := t.expandChildren(of); err != nil {
		return err
	}

	kids := t.children[of]
	evals := make([]float32, len(kids))
	ucbs := make([]float32, len(kids))
	for i, kid := range kids {
		evals[i] = t.Node(kid).value
		ucbs[i] = t.ucb1(kid)
	}

	raw, err := t.pol.Policy(t.Node(of).board)
	if err != nil {
		return errors.WithMessage(err, "policy oracle")
	}
	if len(raw) < MaxMoves {
		return errors.Errorf("policy oracle returned %d scores, want at least %d", len(raw), MaxMoves)
	}

	var sum float32
	for _, p := range raw {
		sum += p
	}

	legal := make([]float32, len(kids))
	copy(legal, raw[:len(kids)])
	vecf32.Scale(legal, 1/sum)
	vecf32.Add(legal, evals)
	vecf32.Add(legal, ucbs)

	n := t.Node(of)
	n.legalScores = legal
	n.policy = make([]float32, MaxMoves)
	copy(n.policy, legal)
	return nil
}

// selectChild returns the child at the argmax of scores, ties broken by the
// first occurrence. An empty score vector means the tree is inconsistent
// (selecting among zero children); that is reported, never silently
// tolerated.
func (t *Tree) selectChild(of Naughty, scores []float32) (Naughty, error) {
	if len(scores) == 0 {
		t.log("selectChild(%v): empty scores. node: %v children: %v", of, t.Node(of), t.children[of])
		return nilNode, errors.Errorf("no children to select at node %d", int(of))
	}
	return t.children[of][argmax(scores)], nil
}

// backPropagate walks from the given node through the parent chain to the
// root, inclusive. Every node on the chain is credited a visit; a node is
// credited a win when the result strongly favours its side to move:
// result > 0.75 for nodes sharing the leaf's mover identity, result < 0.25
// for the rest. Results inside (0.25, 0.75) credit no one.
func (t *Tree) backPropagate(from Naughty, result float32, leafMover game.Player) {
	for id := from; id.IsValid(); {
		n := t.Node(id)
		n.visits++
		if n.state.ToMove() == leafMover {
			if result > 0.75 {
				n.wins++
			}
		} else if result < 0.25 {
			n.wins++
		}
		id = n.parent
	}
}
