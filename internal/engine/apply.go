package engine

import "github.com/lgbarn/position-engine-go/internal/chess"

// Apply plays the move and returns the successor position. The input is
// not modified. The move must already have passed IsLegal; the result for
// a rejected move is unspecified.
func Apply(pos chess.Position, from, to chess.Square) chess.Position {
	return Subset.Apply(pos, from, to)
}

// Apply plays the move under these rules. Only RevokeCastling changes the
// outcome; the legality options are the caller's concern.
func (r Rules) Apply(pos chess.Position, from, to chess.Square) chess.Position {
	next := pos
	colour := pos.SideToMove
	piece := next.Board.At(from)
	captured := next.Board.At(to)

	isPawn := piece.Kind == chess.Pawn
	enPassantCapture := false

	// Handle en passant capture: the captured pawn sits behind the target.
	// Only an enemy pawn there is removed.
	if isPawn && to.File != from.File && captured.IsEmpty() {
		behind := to.Offset(0, -colour.Direction())
		if next.Board.At(behind) == (chess.ColouredPiece{Kind: chess.Pawn, Colour: colour.Opposite()}) {
			enPassantCapture = true
			next.Board.Set(behind, chess.Empty)
		}
	}

	// Set en passant square if double pawn push
	next.EnPassant = false
	next.EPSquare = chess.Square{}
	if isPawn && abs(to.Rank-from.Rank) == 2 {
		next.EnPassant = true
		next.EPSquare = from.Offset(0, colour.Direction())
	}

	next.Board.Set(from, chess.Empty)
	next.Board.Set(to, piece)

	next.SideToMove = colour.Opposite()

	if isPawn || !captured.IsEmpty() || enPassantCapture {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}

	if colour == chess.Black {
		next.FullmoveNumber++
	}

	if r.RevokeCastling {
		next.Castling = revokeCastling(next.Castling, piece, from, captured, to)
	}

	return next
}

// Home squares of the castling pieces.
var (
	whiteKingHome  = chess.Sq(4, 0)
	blackKingHome  = chess.Sq(4, 7)
	whiteKingRook  = chess.Sq(7, 0)
	whiteQueenRook = chess.Sq(0, 0)
	blackKingRook  = chess.Sq(7, 7)
	blackQueenRook = chess.Sq(0, 7)
)

// revokeCastling removes the rights invalidated by a king or rook leaving
// its home square, or a rook being captured on one.
func revokeCastling(rights chess.CastlingRights, moved chess.ColouredPiece, from chess.Square,
	captured chess.ColouredPiece, to chess.Square) chess.CastlingRights {

	switch moved {
	case chess.W(chess.King):
		if from == whiteKingHome {
			rights.WhiteKing = false
			rights.WhiteQueen = false
		}
	case chess.B(chess.King):
		if from == blackKingHome {
			rights.BlackKing = false
			rights.BlackQueen = false
		}
	case chess.W(chess.Rook), chess.B(chess.Rook):
		rights = revokeForRookSquare(rights, moved.Colour, from)
	}

	if captured.Kind == chess.Rook {
		rights = revokeForRookSquare(rights, captured.Colour, to)
	}
	return rights
}

// revokeForRookSquare clears the right tied to a rook home square.
func revokeForRookSquare(rights chess.CastlingRights, colour chess.Colour, sq chess.Square) chess.CastlingRights {
	if colour == chess.White {
		switch sq {
		case whiteKingRook:
			rights.WhiteKing = false
		case whiteQueenRook:
			rights.WhiteQueen = false
		}
	} else {
		switch sq {
		case blackKingRook:
			rights.BlackKing = false
		case blackQueenRook:
			rights.BlackQueen = false
		}
	}
	return rights
}
