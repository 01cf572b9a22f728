package mcts

import (
	"fmt"

	"github.com/gorgonia/shahmat/game"
)

// Node is a single node of the search tree. It owns an independent snapshot
// of the game state it stands for, the oracle evaluation of that state, and
// the visit/win statistics accumulated by the search.
//
// Nodes live in the tree's arena and are addressed by Naughty indices. The
// parent field is such an index: a back-reference used for statistic
// propagation and UCB computation only, never for ownership.
type Node struct {
	move   game.Move  // the move that produced this state; NoMove for the root
	parent Naughty    // nilNode for the root
	state  game.State // owned snapshot
	board  []float32  // cached encoding of state

	// value is the position evaluation in [0, 1] (White's winning
	// probability). It is fixed at construction: the actual outcome for a
	// concluded state, the value oracle's estimate otherwise. Only the
	// statistics change during search.
	value float32

	legalScores []float32 // blended per-legal-move scores; nil until computed
	policy      []float32 // legalScores zero-padded to MaxMoves

	visits uint32
	wins   uint32

	terminal bool

	id Naughty
}

func (n *Node) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{NodeID: %v Move: %q Value: %v Visits: %v Wins: %v Terminal: %v}",
		n.id, n.move, n.value, n.visits, n.wins, n.terminal)
}

// Move gets the move associated with the node.
func (n *Node) Move() game.Move { return n.move }

// State returns the game state snapshot the node owns.
func (n *Node) State() game.State { return n.state }

// Value returns the evaluation fixed at the node's construction.
func (n *Node) Value() float32 { return n.value }

func (n *Node) Visits() uint32 { return n.visits }

func (n *Node) Wins() uint32 { return n.wins }

// IsTerminal returns true if the node's state has no legal moves.
func (n *Node) IsTerminal() bool { return n.terminal }

// HasPolicy returns true once the node's policy vector has been computed.
func (n *Node) HasPolicy() bool { return n.legalScores != nil }

// PolicyVector returns the node's MaxMoves-long blended score vector, or nil
// if it hasn't been computed yet. Entries past the legal-move count are zero.
func (n *Node) PolicyVector() []float32 { return n.policy }

// ID returns the node's index in the arena.
func (n *Node) ID() int { return int(n.id) }

func (n *Node) reset() {
	n.move = game.NoMove
	n.parent = nilNode
	n.state = nil
	n.board = nil
	n.value = 0
	n.legalScores = nil
	n.policy = nil
	n.visits = 0
	n.wins = 0
	n.terminal = false
}
