// Package hashing provides Zobrist keys for positions and a thread-safe
// cache keyed on them.
package hashing

import (
	"math/rand/v2"

	"github.com/lgbarn/position-engine-go/internal/chess"
)

const numSquares = chess.BoardSize * chess.BoardSize

// Zobrist tables. The generator is seeded with constants so keys are
// stable across runs.
var (
	pieceKeys    [2][chess.NumPieceKinds][numSquares]uint64
	blackToMove  uint64
	castlingKeys [4]uint64
	epFileKeys   [chess.BoardSize]uint64
)

func init() {
	rng := rand.New(rand.NewPCG(0x9E3779B97F4A7C15, 0xD1B54A32D192ED03))
	for c := range pieceKeys {
		for k := range pieceKeys[c] {
			for sq := range pieceKeys[c][k] {
				pieceKeys[c][k][sq] = rng.Uint64()
			}
		}
	}
	blackToMove = rng.Uint64()
	for i := range castlingKeys {
		castlingKeys[i] = rng.Uint64()
	}
	for i := range epFileKeys {
		epFileKeys[i] = rng.Uint64()
	}
}

// Key returns the Zobrist key of pos. The half-move clock and full-move
// number are not part of the key.
func Key(pos chess.Position) uint64 {
	var key uint64
	for file := 0; file < chess.BoardSize; file++ {
		for rank := 0; rank < chess.BoardSize; rank++ {
			p := pos.Board[file][rank]
			if p.IsEmpty() {
				continue
			}
			key ^= pieceKeys[colourIndex(p.Colour)][p.Kind][file*chess.BoardSize+rank]
		}
	}

	if pos.SideToMove == chess.Black {
		key ^= blackToMove
	}

	rights := [4]bool{pos.Castling.WhiteKing, pos.Castling.WhiteQueen, pos.Castling.BlackKing, pos.Castling.BlackQueen}
	for i, set := range rights {
		if set {
			key ^= castlingKeys[i]
		}
	}

	if pos.EnPassant && pos.EPSquare.Valid() {
		key ^= epFileKeys[pos.EPSquare.File]
	}
	return key
}

func colourIndex(c chess.Colour) int {
	if c == chess.White {
		return 0
	}
	return 1
}

// SamePosition reports whether a and b agree on everything Key hashes.
func SamePosition(a, b chess.Position) bool {
	return a.Board == b.Board &&
		a.SideToMove == b.SideToMove &&
		a.Castling == b.Castling &&
		a.EnPassant == b.EnPassant &&
		(!a.EnPassant || a.EPSquare == b.EPSquare)
}
