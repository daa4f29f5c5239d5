package engine

import "github.com/lgbarn/position-engine-go/internal/chess"

// FullRules enables every optional check. HasLegalMoves uses it to decide
// whether a side has any move that keeps its king safe.
var FullRules = Rules{CheckPaths: true, RejectSelfCheck: true, RevokeCastling: true}

// InCheck returns true if the given colour's king is attacked.
// A side without a king is never in check; with several kings, any
// attacked king counts.
func InCheck(pos chess.Position, colour chess.Colour) bool {
	for _, sq := range pos.Board.Find(chess.ColouredPiece{Kind: chess.King, Colour: colour}) {
		if IsSquareAttacked(&pos.Board, sq, colour.Opposite()) {
			return true
		}
	}
	return false
}

// Attack directions.
var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// IsSquareAttacked returns true if the square is attacked by the given colour.
func IsSquareAttacked(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	// Pawns attack from one rank behind, relative to their direction.
	pawn := chess.ColouredPiece{Kind: chess.Pawn, Colour: byColour}
	pawnRank := -byColour.Direction()
	if board.At(sq.Offset(-1, pawnRank)) == pawn || board.At(sq.Offset(1, pawnRank)) == pawn {
		return true
	}

	knight := chess.ColouredPiece{Kind: chess.Knight, Colour: byColour}
	for _, off := range knightOffsets {
		if board.At(sq.Offset(off[0], off[1])) == knight {
			return true
		}
	}

	king := chess.ColouredPiece{Kind: chess.King, Colour: byColour}
	for _, off := range kingOffsets {
		if board.At(sq.Offset(off[0], off[1])) == king {
			return true
		}
	}

	queen := chess.ColouredPiece{Kind: chess.Queen, Colour: byColour}
	bishop := chess.ColouredPiece{Kind: chess.Bishop, Colour: byColour}
	for _, dir := range diagonalDirs {
		if p := firstPieceAlong(board, sq, dir); p == bishop || p == queen {
			return true
		}
	}

	rook := chess.ColouredPiece{Kind: chess.Rook, Colour: byColour}
	for _, dir := range straightDirs {
		if p := firstPieceAlong(board, sq, dir); p == rook || p == queen {
			return true
		}
	}

	return false
}

// firstPieceAlong returns the first piece met walking from sq in the
// given direction, or Empty if the edge is reached.
func firstPieceAlong(board *chess.Board, sq chess.Square, dir [2]int) chess.ColouredPiece {
	for cur := sq.Offset(dir[0], dir[1]); cur.Valid(); cur = cur.Offset(dir[0], dir[1]) {
		if p := board.At(cur); !p.IsEmpty() {
			return p
		}
	}
	return chess.Empty
}

// LegalMoves returns every move of the side to move that FullRules
// accepts. Castling and promotion choices are not generated.
func LegalMoves(pos chess.Position) []chess.MoveRequest {
	var moves []chess.MoveRequest
	forEachLegalMove(pos, func(m chess.MoveRequest) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

// HasLegalMoves returns true if the side to move has at least one move
// that FullRules accepts.
func HasLegalMoves(pos chess.Position) bool {
	found := false
	forEachLegalMove(pos, func(chess.MoveRequest) bool {
		found = true
		return false
	})
	return found
}

// forEachLegalMove calls fn for each legal move until fn returns false.
func forEachLegalMove(pos chess.Position, fn func(chess.MoveRequest) bool) {
	for ff := 0; ff < chess.BoardSize; ff++ {
		for fr := 0; fr < chess.BoardSize; fr++ {
			from := chess.Sq(ff, fr)
			piece := pos.At(from)
			if piece.IsEmpty() || piece.Colour != pos.SideToMove {
				continue
			}
			for tf := 0; tf < chess.BoardSize; tf++ {
				for tr := 0; tr < chess.BoardSize; tr++ {
					to := chess.Sq(tf, tr)
					if !FullRules.IsLegal(pos, from, to) {
						continue
					}
					if !fn(chess.MoveRequest{From: from, To: to}) {
						return
					}
				}
			}
		}
	}
}

// IsCheckmate returns true if the side to move is in check with no legal move.
func IsCheckmate(pos chess.Position) bool {
	return InCheck(pos, pos.SideToMove) && !HasLegalMoves(pos)
}

// IsStalemate returns true if the side to move is not in check but has no legal move.
func IsStalemate(pos chess.Position) bool {
	return !InCheck(pos, pos.SideToMove) && !HasLegalMoves(pos)
}
