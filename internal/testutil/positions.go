package testutil

import (
	"testing"

	"github.com/lgbarn/position-engine-go/internal/chess"
)

// Encoded positions shared across package tests.
const (
	StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	// After 1.e4 d5 2.e5 f5: White may capture en passant on f6.
	EnPassantFEN = "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3"

	// Fool's mate: 1.f3 e5 2.g4 Qh4#.
	FoolsMateFEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"

	// Black king on a8 boxed in by the white queen; Black to move.
	StalemateFEN = "k7/2Q5/1K6/8/8/8/8/8 b - - 0 1"

	// White rook gives check along the e-file.
	CheckFEN = "4k3/8/8/8/8/8/8/4RK2 b - - 0 1"

	EmptyFEN   = "8/8/8/8/8/8/8/8 w - - 0 1"
	NoKingsFEN = "8/pppppppp/8/8/8/8/PPPPPPPP/8 w - - 0 1"
)

// Place builds a position with the given pieces, keyed by square name.
// All other fields take the NewPosition defaults.
func Place(t *testing.T, pieces map[string]chess.ColouredPiece) chess.Position {
	t.Helper()
	pos := chess.NewPosition()
	for name, piece := range pieces {
		sq, err := chess.ParseSquare(name)
		if err != nil {
			t.Fatalf("Place: %v", err)
		}
		pos.Board.Set(sq, piece)
	}
	return pos
}

// Sq parses a square name and fails the test if it is invalid.
func Sq(t *testing.T, name string) chess.Square {
	t.Helper()
	sq, err := chess.ParseSquare(name)
	if err != nil {
		t.Fatalf("Sq(%q): %v", name, err)
	}
	return sq
}
