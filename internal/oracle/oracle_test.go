package oracle

import (
	"testing"

	"github.com/lgbarn/position-engine-go/internal/engine"
	"github.com/lgbarn/position-engine-go/internal/errors"
	"github.com/lgbarn/position-engine-go/internal/testutil"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{Unknown, "unknown"},
		{Ongoing, "ongoing"},
		{Check, "check"},
		{Checkmate, "checkmate"},
		{Stalemate, "stalemate"},
		{Status(99), "Status(99)"},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, tt.s.String(), tt.want)
	}

	text, err := Checkmate.MarshalText()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, string(text), "checkmate")

	var back Status
	testutil.AssertNoError(t, back.UnmarshalText(text))
	testutil.AssertEqual(t, back, Checkmate)
	testutil.AssertError(t, back.UnmarshalText([]byte("resigned")))

	testutil.AssertTrue(t, Checkmate.Terminal(), "checkmate is terminal")
	testutil.AssertTrue(t, Stalemate.Terminal(), "stalemate is terminal")
	testutil.AssertFalse(t, Check.Terminal(), "check is not terminal")
}

func TestByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"none", NameNone},
		{"", NameNone},
		{"builtin", NameBuiltin},
		{"Builtin", NameBuiltin},
		{" notnil ", NameNotnil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := ByName(tt.name)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, o.Name(), tt.want)
		})
	}

	_, err := ByName("stockfish")
	testutil.AssertErrorIs(t, err, errors.ErrUnknownOracle)
	testutil.AssertContains(t, err.Error(), "stockfish")
}

func TestOracles(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		builtin Status
		notnil  Status
	}{
		{"starting position", testutil.StartFEN, Ongoing, Ongoing},
		{"fool's mate", testutil.FoolsMateFEN, Checkmate, Checkmate},
		{"stalemate", testutil.StalemateFEN, Stalemate, Stalemate},
		{"check", testutil.CheckFEN, Check, Check},
		{"no kings", testutil.NoKingsFEN, Ongoing, Unknown},
		{"empty board", testutil.EmptyFEN, Stalemate, Unknown},
		{"two white kings", "4k3/8/8/8/8/8/8/K3K3 w - - 0 1", Ongoing, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := engine.MustDecode(tt.fen)
			testutil.AssertEqual(t, None{}.Status(pos), Unknown, "None")
			testutil.AssertEqual(t, Builtin{}.Status(pos), tt.builtin, "Builtin")
			testutil.AssertEqual(t, Notnil{}.Status(pos), tt.notnil, "Notnil")
		})
	}
}

func TestOracles_AgreeOnWellFormedGames(t *testing.T) {
	fens := []string{
		"r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4",
		"r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 4",
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
		testutil.EnPassantFEN,
	}
	for _, fen := range fens {
		pos := engine.MustDecode(fen)
		testutil.AssertEqual(t, Notnil{}.Status(pos), Builtin{}.Status(pos), fen)
	}
}
