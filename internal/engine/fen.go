// Package engine provides the position codec, the move legality filter,
// the move executor and the display evaluator.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/position-engine-go/internal/chess"
	"github.com/lgbarn/position-engine-go/internal/errors"
)

// InitialFEN is the encoding of the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// numFields is the number of space-separated fields in an encoding.
const numFields = 6

// Decode parses a six-field position encoding.
// Every failure wraps errors.ErrMalformedEncoding.
func Decode(text string) (chess.Position, error) {
	parts := strings.Split(text, " ")
	if len(parts) != numFields {
		return chess.Position{}, errors.NewEncodingError("fields", text,
			fmt.Sprintf("want %d space-separated fields, got %d", numFields, len(parts)))
	}

	pos := chess.NewPosition()

	if err := parsePiecePositions(&pos.Board, parts[0]); err != nil {
		return chess.Position{}, err
	}

	side, err := parseSideToMove(parts[1])
	if err != nil {
		return chess.Position{}, err
	}
	pos.SideToMove = side

	castling, err := parseCastlingRights(parts[2])
	if err != nil {
		return chess.Position{}, err
	}
	pos.Castling = castling

	ep, ok, err := parseEnPassant(parts[3])
	if err != nil {
		return chess.Position{}, err
	}
	pos.EnPassant, pos.EPSquare = ok, ep

	if pos.HalfmoveClock, err = parseCounter("halfmove", parts[4]); err != nil {
		return chess.Position{}, err
	}
	if pos.FullmoveNumber, err = parseCounter("fullmove", parts[5]); err != nil {
		return chess.Position{}, err
	}

	return pos, nil
}

// MustDecode is like Decode but panics if the text is malformed.
// It is intended for fixed fixtures.
func MustDecode(text string) chess.Position {
	pos, err := Decode(text)
	if err != nil {
		panic(err)
	}
	return pos
}

// InitialPosition returns the decoded standard starting position.
func InitialPosition() chess.Position {
	return chess.StartingPosition()
}

// parsePiecePositions parses the piece placement field, rank 8 first.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return errors.NewEncodingError("board", positions,
			fmt.Sprintf("want %d ranks, got %d", chess.BoardSize, len(ranks)))
	}

	for i, rankText := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		for j := 0; j < len(rankText); j++ {
			c := rankText[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				if file > chess.BoardSize {
					break
				}
				continue
			}
			piece, ok := chess.PieceFromFENChar(c)
			if !ok {
				return errors.NewEncodingError("board", positions,
					fmt.Sprintf("invalid character %q in rank %d", c, rank+1))
			}
			if file >= chess.BoardSize {
				file++
				break
			}
			board.Set(chess.Sq(file, rank), piece)
			file++
		}
		if file != chess.BoardSize {
			return errors.NewEncodingError("board", positions,
				fmt.Sprintf("rank %d does not describe exactly %d files", rank+1, chess.BoardSize))
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(field string) (chess.Colour, error) {
	switch field {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	default:
		return chess.White, errors.NewEncodingError("side", field, "must be w or b")
	}
}

// castlingOrder is the only order in which castling letters may appear.
const castlingOrder = "KQkq"

// parseCastlingRights parses the castling availability field: "-" or a
// non-empty subsequence of KQkq in that order.
func parseCastlingRights(field string) (chess.CastlingRights, error) {
	var rights chess.CastlingRights
	if field == "-" {
		return rights, nil
	}
	if field == "" {
		return rights, errors.NewEncodingError("castling", field, "empty")
	}

	next := 0
	for i := 0; i < len(field); i++ {
		idx := strings.IndexByte(castlingOrder[next:], field[i])
		if idx < 0 {
			return chess.CastlingRights{}, errors.NewEncodingError("castling", field,
				"must be - or a subset of KQkq in that order")
		}
		next += idx + 1
		switch field[i] {
		case 'K':
			rights.WhiteKing = true
		case 'Q':
			rights.WhiteQueen = true
		case 'k':
			rights.BlackKing = true
		case 'q':
			rights.BlackQueen = true
		}
	}
	return rights, nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(field string) (chess.Square, bool, error) {
	if field == "-" {
		return chess.Square{}, false, nil
	}
	sq, err := chess.ParseSquare(field)
	if err != nil {
		return chess.Square{}, false, errors.NewEncodingError("enpassant", field,
			"must be - or a square a1-h8")
	}
	return sq, true, nil
}

// parseCounter parses a base-10 non-negative integer clock field.
func parseCounter(name, field string) (int, error) {
	if field == "" {
		return 0, errors.NewEncodingError(name, field, "empty")
	}
	for i := 0; i < len(field); i++ {
		if field[i] < '0' || field[i] > '9' {
			return 0, errors.NewEncodingError(name, field, "not a non-negative integer")
		}
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, errors.NewEncodingError(name, field, "out of range")
	}
	return n, nil
}

// Encode serializes a position. It is the inverse of Decode.
func Encode(pos chess.Position) string {
	var sb strings.Builder

	writePiecePositions(&sb, &pos.Board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, pos.SideToMove)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, pos.Castling)
	sb.WriteByte(' ')
	writeEnPassant(&sb, pos)
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", pos.HalfmoveClock, pos.FullmoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := board.At(chess.Sq(file, rank))
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, side chess.Colour) {
	if side == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, rights chess.CastlingRights) {
	if rights.None() {
		sb.WriteByte('-')
		return
	}
	if rights.WhiteKing {
		sb.WriteByte('K')
	}
	if rights.WhiteQueen {
		sb.WriteByte('Q')
	}
	if rights.BlackKing {
		sb.WriteByte('k')
	}
	if rights.BlackQueen {
		sb.WriteByte('q')
	}
}

// writeEnPassant writes the en passant target square to the builder.
func writeEnPassant(sb *strings.Builder, pos chess.Position) {
	if pos.EnPassant {
		sb.WriteString(pos.EPSquare.String())
	} else {
		sb.WriteByte('-')
	}
}
