package chess

import (
	"github.com/gorgonia/shahmat/game"
	"github.com/notnil/chess"
)

// Board geometry and the number of feature planes fed to the oracles.
const (
	Rows     = 8
	Cols     = 8
	Features = 14
)

// Encode converts a chess state into the 14-plane float32 bitboard the
// oracles consume: six planes per side for the piece kinds, then one
// side-to-move plane per colour. Plane layout is CHW.
func Encode(s game.State) []float32 {
	g, ok := s.(*Game)
	if !ok {
		panic("chess.Encode called on a non-chess state")
	}

	const planeSize = Rows * Cols
	board := make([]float32, Features*planeSize)
	for sq, p := range g.g.Position().Board().SquareMap() {
		if p == chess.NoPiece {
			continue
		}
		board[planeOf(p)*planeSize+int(sq)] = 1
	}

	toMovePlane := 12
	if g.g.Position().Turn() == chess.Black {
		toMovePlane = 13
	}
	for i := 0; i < planeSize; i++ {
		board[toMovePlane*planeSize+i] = 1
	}
	return board
}

// planeOf maps a piece to its feature plane: white King..Pawn occupy planes
// 0-5, black King..Pawn planes 6-11.
func planeOf(p chess.Piece) int {
	plane := int(p.Type() - chess.King)
	if p.Color() == chess.Black {
		plane += 6
	}
	return plane
}
