// Package oracle classifies positions as ongoing, check, checkmate or
// stalemate. The position engine itself never decides game end; callers
// consult an Oracle after each applied move.
package oracle

import (
	"fmt"
	"strings"

	"github.com/lgbarn/position-engine-go/internal/chess"
	"github.com/lgbarn/position-engine-go/internal/engine"
	"github.com/lgbarn/position-engine-go/internal/errors"
)

// Status is the game-end classification of a position from the point of
// view of the side to move.
type Status int

const (
	Unknown Status = iota
	Ongoing
	Check
	Checkmate
	Stalemate
)

var statusNames = [...]string{
	Unknown:   "unknown",
	Ongoing:   "ongoing",
	Check:     "check",
	Checkmate: "checkmate",
	Stalemate: "stalemate",
}

// String returns the lower-case status name used in API responses.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// Terminal reports whether the status ends the game.
func (s Status) Terminal() bool {
	return s == Checkmate || s == Stalemate
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Oracle decides check, checkmate and stalemate for a position.
type Oracle interface {
	Name() string
	Status(pos chess.Position) Status
}

// Oracle names accepted by ByName.
const (
	NameNone    = "none"
	NameBuiltin = "builtin"
	NameNotnil  = "notnil"
)

// Names lists every oracle ByName accepts.
func Names() []string {
	return []string{NameNone, NameBuiltin, NameNotnil}
}

// ByName returns the oracle registered under name (case-insensitive).
func ByName(name string) (Oracle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameNone, "":
		return None{}, nil
	case NameBuiltin:
		return Builtin{}, nil
	case NameNotnil:
		return Notnil{}, nil
	default:
		return nil, errors.Wrapf(errors.ErrUnknownOracle, "%q (want one of %s)", name, strings.Join(Names(), ", "))
	}
}

// None never classifies a position.
type None struct{}

func (None) Name() string { return NameNone }

func (None) Status(chess.Position) Status { return Unknown }

// Builtin uses the engine's own attack scanner and move enumeration.
// It works for any position, including ones without kings: a side with
// no king is never in check, so it can only be stalemated.
type Builtin struct{}

func (Builtin) Name() string { return NameBuiltin }

func (Builtin) Status(pos chess.Position) Status {
	inCheck := engine.InCheck(pos, pos.SideToMove)
	hasMoves := engine.HasLegalMoves(pos)

	switch {
	case inCheck && !hasMoves:
		return Checkmate
	case !hasMoves:
		return Stalemate
	case inCheck:
		return Check
	default:
		return Ongoing
	}
}

// wellFormed reports whether each colour has exactly one king. External
// move generators reject or misbehave on anything else.
func wellFormed(pos chess.Position) bool {
	return pos.Board.Count(chess.W(chess.King)) == 1 && pos.Board.Count(chess.B(chess.King)) == 1
}
