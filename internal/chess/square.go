package chess

import (
	"fmt"

	"github.com/lgbarn/position-engine-go/internal/errors"
)

// Square is a (file, rank) pair. File 0-7 maps to a-h, rank 0-7 to 1-8.
// Squares outside the board are representable so callers can pass raw
// coordinates; Valid reports whether a square is on the board.
type Square struct {
	File int
	Rank int
}

// Sq builds a square from file and rank indices.
func Sq(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

// Valid reports whether both coordinates lie within the 8x8 board.
func (s Square) Valid() bool {
	return s.File >= 0 && s.File < BoardSize && s.Rank >= 0 && s.Rank < BoardSize
}

// String returns the algebraic name of the square, e.g. "e4".
// Off-board squares are rendered with their raw indices.
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.File, s.Rank)
	}
	return string([]byte{byte(FileBase + s.File), byte(RankBase + s.Rank)})
}

// Offset returns the square shifted by the given file and rank deltas.
func (s Square) Offset(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}

// ParseSquare parses a two-character square reference such as "e4".
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return Square{}, fmt.Errorf("square %q: %w", text, errors.ErrInvalidSquare)
	}
	f, r := text[0], text[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return Square{}, fmt.Errorf("square %q: %w", text, errors.ErrInvalidSquare)
	}
	return Square{File: int(f - FileBase), Rank: int(r - RankBase)}, nil
}

// MustParseSquare is like ParseSquare but panics on error.
// It is intended for constants and tests.
func MustParseSquare(text string) Square {
	sq, err := ParseSquare(text)
	if err != nil {
		panic(err)
	}
	return sq
}

// MoveRequest is a source/target square pair supplied by a caller.
type MoveRequest struct {
	From Square
	To   Square
}

// String returns the move in long algebraic form, e.g. "e2e4".
func (m MoveRequest) String() string {
	return m.From.String() + m.To.String()
}

// ParseMoveRequest parses a four-character long algebraic move such as "e2e4".
func ParseMoveRequest(text string) (MoveRequest, error) {
	if len(text) != 4 {
		return MoveRequest{}, fmt.Errorf("move %q: %w", text, errors.ErrInvalidSquare)
	}
	from, err := ParseSquare(text[:2])
	if err != nil {
		return MoveRequest{}, err
	}
	to, err := ParseSquare(text[2:])
	if err != nil {
		return MoveRequest{}, err
	}
	return MoveRequest{From: from, To: to}, nil
}
