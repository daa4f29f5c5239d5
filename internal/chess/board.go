package chess

// Board is an 8x8 grid of squares indexed [file][rank].
// It is an array, so assignment copies it; positions derived from one
// another never share squares.
type Board [BoardSize][BoardSize]ColouredPiece

// At returns the piece on the square, or Empty for off-board squares.
func (b *Board) At(sq Square) ColouredPiece {
	if !sq.Valid() {
		return Empty
	}
	return b[sq.File][sq.Rank]
}

// Set places a piece on the square. Off-board squares are ignored.
func (b *Board) Set(sq Square, piece ColouredPiece) {
	if sq.Valid() {
		b[sq.File][sq.Rank] = piece
	}
}

// Find returns every square holding the given piece, ordered a1, b1 .. h8.
func (b *Board) Find(piece ColouredPiece) []Square {
	var squares []Square
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			if b[file][rank] == piece {
				squares = append(squares, Square{File: file, Rank: rank})
			}
		}
	}
	return squares
}

// Count returns the number of squares holding the given piece.
func (b *Board) Count(piece ColouredPiece) int {
	n := 0
	for file := 0; file < BoardSize; file++ {
		for rank := 0; rank < BoardSize; rank++ {
			if b[file][rank] == piece {
				n++
			}
		}
	}
	return n
}

// CastlingRights holds the four independent castling availability flags.
type CastlingRights struct {
	WhiteKing  bool
	WhiteQueen bool
	BlackKing  bool
	BlackQueen bool
}

// AllCastling grants every castling right.
var AllCastling = CastlingRights{WhiteKing: true, WhiteQueen: true, BlackKing: true, BlackQueen: true}

// None reports whether no castling right is held.
func (c CastlingRights) None() bool {
	return !c.WhiteKing && !c.WhiteQueen && !c.BlackKing && !c.BlackQueen
}

// Position is the full game state. It is a comparable value; the engine
// always returns a new Position rather than modifying one.
type Position struct {
	Board Board

	// Who has the next move.
	SideToMove Colour

	Castling CastlingRights

	// Is an en-passant capture possible? If so EPSquare holds the
	// square the capturing pawn lands on.
	EnPassant bool
	EPSquare  Square

	// Half-moves since the last pawn move or capture.
	HalfmoveClock int

	// Starts at 1 and is incremented after Black's move.
	FullmoveNumber int
}

// NewPosition returns an empty board with White to move, no castling
// rights and the move counters at their starting values.
func NewPosition() Position {
	return Position{
		SideToMove:     White,
		FullmoveNumber: 1,
	}
}

// StartingPosition returns the standard initial array.
func StartingPosition() Position {
	pos := NewPosition()
	backRank := [BoardSize]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < BoardSize; file++ {
		pos.Board[file][0] = W(backRank[file])
		pos.Board[file][1] = W(Pawn)
		pos.Board[file][6] = B(Pawn)
		pos.Board[file][7] = B(backRank[file])
	}
	pos.Castling = AllCastling
	return pos
}

// At returns the piece on the given square.
func (p Position) At(sq Square) ColouredPiece {
	return p.Board.At(sq)
}

// EnPassantTarget returns the en-passant target square, if any.
func (p Position) EnPassantTarget() (Square, bool) {
	return p.EPSquare, p.EnPassant
}
