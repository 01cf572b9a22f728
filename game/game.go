package game

import (
	"fmt"
)

// Colour is the colour of a side. None is the zero value.
type Colour int32

const (
	None Colour = iota
	Black
	White
)

func (cl Colour) Format(s fmt.State, c rune) {
	switch cl {
	case None:
		fmt.Fprint(s, "None")
	case Black:
		fmt.Fprint(s, "Black")
	case White:
		fmt.Fprint(s, "White")
	}
}

// Player represents a player. It's also a colour.
type Player Colour

func (p Player) Format(s fmt.State, c rune) { Colour(p).Format(s, c) }

// Opponent returns the other player.
func Opponent(p Player) Player {
	switch Colour(p) {
	case Black:
		return Player(White)
	case White:
		return Player(Black)
	}
	panic("Unreachable")
}

// Move is a move in UCI-style notation (e.g. "e2e4", "e7e8q").
type Move string

// NoMove is the move of a root node - no move led to it.
const NoMove = Move("")

// State is any two-player, perfect-information game that implements these.
//
// A State is a snapshot: Apply and Clone must never alias mutable
// substructure with the receiver, so that two nodes of a search tree can
// never observe each other's mutations.
type State interface {
	// These methods represent the game state
	LegalMoves() []Move // all legal moves in a stable order; empty iff the game is over
	ToMove() Player     // which side is to move
	MoveNumber() int    // count of moves so far that led to this point

	// Terminal status. Resolve caches checkmate/draw detection; the
	// predicates below are only meaningful after a Resolve.
	Resolve()
	Concluded() bool       // has the game ended?
	Drawn() bool           // did it end in a draw?
	Winner() (Player, bool) // winner, if Concluded and not Drawn

	// interactions
	Apply(m Move) State // applies a legal move. The side to move has to change.

	// generics
	Clone() State
}
