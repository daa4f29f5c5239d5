package engine

import "github.com/lgbarn/position-engine-go/internal/chess"

// Rules selects optional checks on top of the basic legality subset.
// The zero value enforces exactly the subset: piece geometry, turn
// ownership and no self-capture, with sliding paths and king safety
// left unchecked and castling rights carried over untouched.
type Rules struct {
	// CheckPaths rejects rook, bishop and queen moves whose path is blocked.
	CheckPaths bool

	// RejectSelfCheck rejects moves that leave the mover's king attacked.
	RejectSelfCheck bool

	// RevokeCastling clears castling rights when a king or rook leaves
	// its home square, or a rook is captured on one.
	RevokeCastling bool
}

// Subset is the default rule set.
var Subset = Rules{}

// IsLegal reports whether moving the piece on from to to is permitted by
// the legality subset.
func IsLegal(pos chess.Position, from, to chess.Square) bool {
	return Subset.IsLegal(pos, from, to)
}

// IsLegal reports whether the move is permitted under these rules.
func (r Rules) IsLegal(pos chess.Position, from, to chess.Square) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}

	piece := pos.At(from)
	if piece.IsEmpty() || piece.Colour != pos.SideToMove {
		return false
	}

	target := pos.At(to)
	if !target.IsEmpty() && target.Colour == piece.Colour {
		return false
	}

	if !canPieceMove(pos, piece, from, to) {
		return false
	}

	if r.CheckPaths && !isPathClear(&pos.Board, piece.Kind, from, to) {
		return false
	}

	if r.RejectSelfCheck && leavesKingAttacked(pos, from, to) {
		return false
	}

	return true
}

// canPieceMove applies the per-kind geometry table.
func canPieceMove(pos chess.Position, piece chess.ColouredPiece, from, to chess.Square) bool {
	df := abs(to.File - from.File)
	dr := abs(to.Rank - from.Rank)

	switch piece.Kind {
	case chess.Rook:
		return isStraight(df, dr)

	case chess.Bishop:
		return isDiagonal(df, dr)

	case chess.Queen:
		return isStraight(df, dr) || isDiagonal(df, dr)

	case chess.Knight:
		return (df == 1 && dr == 2) || (df == 2 && dr == 1)

	case chess.King:
		return df <= 1 && dr <= 1

	case chess.Pawn:
		return canPawnMove(pos, piece.Colour, from, to)

	case chess.NoPiece, chess.NumPieceKinds:
		return false
	}

	return false
}

// isStraight reports a move along exactly one of file or rank.
func isStraight(df, dr int) bool {
	return (df == 0) != (dr == 0)
}

// isDiagonal reports a move with equal file and rank displacement.
func isDiagonal(df, dr int) bool {
	return df == dr
}

// canPawnMove checks the four pawn cases: single push, double push from
// the starting rank, diagonal capture and en-passant capture.
func canPawnMove(pos chess.Position, colour chess.Colour, from, to chess.Square) bool {
	dir := colour.Direction()
	rankStep := to.Rank - from.Rank
	fileStep := abs(to.File - from.File)
	target := pos.At(to)

	switch {
	case fileStep == 0 && rankStep == dir:
		return target.IsEmpty()

	case fileStep == 0 && rankStep == 2*dir:
		if from.Rank != colour.PawnRank() {
			return false
		}
		return pos.At(from.Offset(0, dir)).IsEmpty() && target.IsEmpty()

	case fileStep == 1 && rankStep == dir:
		if !target.IsEmpty() {
			return target.Colour != colour
		}
		ep, ok := pos.EnPassantTarget()
		return ok && ep == to
	}

	return false
}

// isPathClear checks that every square strictly between from and to is
// empty for sliding pieces. Other pieces always pass.
func isPathClear(board *chess.Board, kind chess.Piece, from, to chess.Square) bool {
	switch kind {
	case chess.Rook, chess.Bishop, chess.Queen:
	default:
		return true
	}

	fileDir := sign(to.File - from.File)
	rankDir := sign(to.Rank - from.Rank)

	sq := from.Offset(fileDir, rankDir)
	for sq != to {
		if !board.At(sq).IsEmpty() {
			return false
		}
		sq = sq.Offset(fileDir, rankDir)
	}
	return true
}

// leavesKingAttacked plays the move and reports whether the mover's king
// is then attacked.
func leavesKingAttacked(pos chess.Position, from, to chess.Square) bool {
	mover := pos.SideToMove
	next := Apply(pos, from, to)
	return InCheck(next, mover)
}
