package oracle

import (
	nchess "github.com/notnil/chess"

	"github.com/lgbarn/position-engine-go/internal/chess"
	"github.com/lgbarn/position-engine-go/internal/engine"
)

// Notnil classifies positions with github.com/notnil/chess. It returns
// Unknown for positions the library cannot load, including any without
// exactly one king per side.
type Notnil struct{}

func (Notnil) Name() string { return NameNotnil }

func (Notnil) Status(pos chess.Position) Status {
	if !wellFormed(pos) {
		return Unknown
	}

	opt, err := nchess.FEN(engine.Encode(pos))
	if err != nil {
		return Unknown
	}
	game := nchess.NewGame(opt)

	switch game.Position().Status() {
	case nchess.Checkmate:
		return Checkmate
	case nchess.Stalemate:
		return Stalemate
	}

	if engine.InCheck(pos, pos.SideToMove) {
		return Check
	}
	return Ongoing
}
