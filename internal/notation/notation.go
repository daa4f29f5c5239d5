// Package notation reads move text. Long algebraic moves (e2e4) are
// parsed directly; standard algebraic moves (Nf3, exd5) are resolved
// against the position with github.com/notnil/chess.
package notation

import (
	nchess "github.com/notnil/chess"

	"github.com/lgbarn/position-engine-go/internal/chess"
	"github.com/lgbarn/position-engine-go/internal/engine"
	"github.com/lgbarn/position-engine-go/internal/errors"
)

// ParseMove converts move text to a square pair in pos. Errors wrap
// errors.ErrInvalidNotation. The result still has to pass the legality
// filter.
func ParseMove(pos chess.Position, text string) (chess.MoveRequest, error) {
	if m, err := chess.ParseMoveRequest(text); err == nil {
		return m, nil
	}
	return parseSAN(pos, text)
}

// parseSAN resolves standard algebraic text. notnil only loads positions
// with one king per side, and only decodes moves it considers fully legal.
func parseSAN(pos chess.Position, text string) (chess.MoveRequest, error) {
	if !oneKingEach(pos) {
		return chess.MoveRequest{}, invalid(text, "standard algebraic needs one king per side")
	}

	opt, err := nchess.FEN(engine.Encode(pos))
	if err != nil {
		return chess.MoveRequest{}, invalid(text, "position not readable")
	}
	game := nchess.NewGame(opt)

	m, err := nchess.AlgebraicNotation{}.Decode(game.Position(), text)
	if err != nil {
		return chess.MoveRequest{}, invalid(text, "not long or standard algebraic")
	}
	if m.Promo() != nchess.NoPieceType {
		return chess.MoveRequest{}, invalid(text, "promotion is not supported")
	}

	from, err := chess.ParseSquare(m.S1().String())
	if err != nil {
		return chess.MoveRequest{}, invalid(text, err.Error())
	}
	to, err := chess.ParseSquare(m.S2().String())
	if err != nil {
		return chess.MoveRequest{}, invalid(text, err.Error())
	}
	return chess.MoveRequest{From: from, To: to}, nil
}

func oneKingEach(pos chess.Position) bool {
	return pos.Board.Count(chess.W(chess.King)) == 1 && pos.Board.Count(chess.B(chess.King)) == 1
}

func invalid(text, reason string) error {
	return errors.Wrapf(errors.ErrInvalidNotation, "move %q: %s", text, reason)
}
