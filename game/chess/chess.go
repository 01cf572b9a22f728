// Package chess adapts github.com/notnil/chess to the game.State capability
// set, so that the search core can drive a real chess game.
package chess

import (
	"github.com/gorgonia/shahmat/game"
	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

var uci = chess.UCINotation{}

// Game wraps a notnil/chess game. Terminal status is resolved lazily by
// Resolve and cached in the three flags below.
type Game struct {
	g *chess.Game

	concluded bool
	drawn     bool
	winner    game.Player
}

// New returns a game in the standard starting position.
func New() *Game {
	return &Game{g: chess.NewGame(chess.UseNotation(uci))}
}

// FromFEN returns a game set up from a FEN record.
func FromFEN(fen string) (*Game, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot set up position from %q", fen)
	}
	return &Game{g: chess.NewGame(opt, chess.UseNotation(uci))}, nil
}

// LegalMoves returns every legal move in UCI notation. The order is the
// stable order of the underlying move generator. Empty iff the game is over:
// notnil/chess concludes forced draws (insufficient material, seventy-five
// moves, fivefold) while the position still has moves, so the outcome is
// checked before the generator.
func (s *Game) LegalMoves() []game.Move {
	if s.g.Outcome() != chess.NoOutcome {
		return nil
	}
	valid := s.g.ValidMoves()
	pos := s.g.Position()
	retVal := make([]game.Move, len(valid))
	for i, m := range valid {
		retVal[i] = game.Move(uci.Encode(pos, m))
	}
	return retVal
}

func (s *Game) ToMove() game.Player {
	if s.g.Position().Turn() == chess.White {
		return game.Player(game.White)
	}
	return game.Player(game.Black)
}

// MoveNumber returns the number of plies played so far.
func (s *Game) MoveNumber() int { return len(s.g.Moves()) }

// Resolve caches checkmate and draw detection. notnil/chess applies forced
// draws (stalemate, insufficient material, seventy-five moves, fivefold)
// automatically, so the outcome is authoritative here.
func (s *Game) Resolve() {
	switch s.g.Outcome() {
	case chess.WhiteWon:
		s.concluded = true
		s.winner = game.Player(game.White)
	case chess.BlackWon:
		s.concluded = true
		s.winner = game.Player(game.Black)
	case chess.Draw:
		s.concluded = true
		s.drawn = true
	}
}

func (s *Game) Concluded() bool { return s.concluded }
func (s *Game) Drawn() bool     { return s.drawn }

// Winner returns the winning side. Only meaningful once Resolve has run and
// the game neither continues nor is drawn.
func (s *Game) Winner() (game.Player, bool) {
	if !s.concluded || s.drawn {
		return game.Player(game.None), false
	}
	return s.winner, true
}

// Apply plays the given move on the receiver and returns it. The move must
// be legal; an undecodable or illegal move is a caller defect.
func (s *Game) Apply(m game.Move) game.State {
	mv, err := uci.Decode(s.g.Position(), string(m))
	if err != nil {
		panic(errors.Wrapf(err, "cannot decode move %q", m))
	}
	if err := s.g.Move(mv); err != nil {
		panic(errors.Wrapf(err, "cannot play move %q", m))
	}
	// the cached terminal status belongs to the previous position
	s.concluded = false
	s.drawn = false
	s.winner = game.Player(game.None)
	return s
}

// Clone deep-copies the game. The clone shares no mutable substructure with
// the receiver.
func (s *Game) Clone() game.State {
	return &Game{
		g:         s.g.Clone(),
		concluded: s.concluded,
		drawn:     s.drawn,
		winner:    s.winner,
	}
}

// FEN returns the FEN record of the current position.
func (s *Game) FEN() string { return s.g.Position().String() }

func (s *Game) String() string { return s.g.Position().Board().Draw() }
