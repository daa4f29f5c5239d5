// Package chess provides the core value types shared by the position engine.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Direction returns +1 for White, -1 for Black (pawn advance along ranks).
func (c Colour) Direction() int {
	if c == White {
		return 1
	}
	return -1
}

// PawnRank returns the rank index pawns of this colour start on.
func (c Colour) PawnRank() int {
	if c == White {
		return 1
	}
	return 6
}

// Piece represents a chess piece kind, independent of colour.
type Piece int

const (
	NoPiece Piece = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceKinds
)

// String returns the string representation of a piece.
func (p Piece) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if p >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece (uppercase).
func (p Piece) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if p >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// PieceFromLetter converts an encoding letter to a piece kind, ignoring case.
// It returns NoPiece for anything outside pnbrqk.
func PieceFromLetter(c byte) Piece {
	switch c {
	case 'K', 'k':
		return King
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'B', 'b':
		return Bishop
	case 'N', 'n':
		return Knight
	case 'P', 'p':
		return Pawn
	default:
		return NoPiece
	}
}

// ColouredPiece is a piece kind together with its owner.
// The zero value is an empty square.
type ColouredPiece struct {
	Kind   Piece
	Colour Colour
}

// Empty is the contents of an unoccupied square.
var Empty = ColouredPiece{}

// W creates a white piece.
func W(piece Piece) ColouredPiece {
	return ColouredPiece{Kind: piece, Colour: White}
}

// B creates a black piece.
func B(piece Piece) ColouredPiece {
	return ColouredPiece{Kind: piece, Colour: Black}
}

// IsEmpty reports whether the square holds no piece.
func (cp ColouredPiece) IsEmpty() bool {
	return cp.Kind == NoPiece
}

// Letter returns the encoding letter: uppercase for White, lowercase for Black.
func (cp ColouredPiece) Letter() byte {
	l := cp.Kind.Letter()
	if cp.Colour == Black && l >= 'A' && l <= 'Z' {
		l += 'a' - 'A'
	}
	return l
}

// String returns a readable description such as "White Knight".
func (cp ColouredPiece) String() string {
	if cp.IsEmpty() {
		return "Empty"
	}
	return cp.Colour.String() + " " + cp.Kind.String()
}

// PieceFromFENChar converts a case-sensitive encoding letter to a coloured piece.
// The boolean is false for characters outside pnbrqkPNBRQK.
func PieceFromFENChar(c byte) (ColouredPiece, bool) {
	kind := PieceFromLetter(c)
	if kind == NoPiece {
		return Empty, false
	}
	colour := White
	if c >= 'a' && c <= 'z' {
		colour = Black
	}
	return ColouredPiece{Kind: kind, Colour: colour}, true
}

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8

	RankBase = '1'
	FileBase = 'a'
)
