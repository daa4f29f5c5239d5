package engine

import (
	"testing"

	"github.com/lgbarn/position-engine-go/internal/chess"
	"github.com/lgbarn/position-engine-go/internal/testutil"
)

func TestIsLegal_StartingPosition(t *testing.T) {
	pos := MustDecode(InitialFEN)

	tests := []struct {
		move string
		want bool
	}{
		// Knights
		{"b1c3", true},
		{"b1a3", true},
		{"b1b3", false},
		{"b1d2", false},
		{"g1f3", true},
		{"g1h3", true},
		{"g1e2", false}, // own pawn
		// Pawns
		{"e2e3", true},
		{"e2e4", true},
		{"e2e5", false},
		{"e2d3", false}, // diagonal onto an empty square
		{"e2e1", false},
		// Sliding pieces are not path-checked: blocked moves still pass geometry.
		{"a1a3", true},
		{"c1e3", true},
		{"d1d3", true},
		{"d1h5", true},
		{"a1b3", false},
		{"c1c3", false},
		// King
		{"e1e2", false}, // own pawn
		{"e1e3", false},
		// Turn ownership
		{"e7e5", false},
		{"g8f6", false},
		// Empty source
		{"e4e5", false},
	}

	for _, tt := range tests {
		t.Run(tt.move, func(t *testing.T) {
			m, err := chess.ParseMoveRequest(tt.move)
			if err != nil {
				t.Fatalf("ParseMoveRequest(%q) error = %v", tt.move, err)
			}
			if got := IsLegal(pos, m.From, m.To); got != tt.want {
				t.Errorf("IsLegal(%s) = %v, want %v", tt.move, got, tt.want)
			}
		})
	}
}

func TestIsLegal_OutOfBounds(t *testing.T) {
	pos := MustDecode(InitialFEN)
	tests := []struct {
		name     string
		from, to chess.Square
	}{
		{"negative source", chess.Sq(-1, 0), chess.Sq(0, 2)},
		{"target off the top", chess.Sq(0, 6), chess.Sq(0, 8)},
		{"target off the side", chess.Sq(1, 0), chess.Sq(8, 2)},
		{"knight jump off board", chess.Sq(6, 0), chess.Sq(8, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertFalse(t, IsLegal(pos, tt.from, tt.to), "IsLegal(%v, %v)", tt.from, tt.to)
		})
	}
}

func TestIsLegal_TurnEnforcement(t *testing.T) {
	for _, fen := range []string{InitialFEN, testutil.EnPassantFEN, "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R b KQkq - 0 1"} {
		pos := MustDecode(fen)
		for ff := 0; ff < 8; ff++ {
			for fr := 0; fr < 8; fr++ {
				from := chess.Sq(ff, fr)
				piece := pos.At(from)
				if piece.IsEmpty() || piece.Colour == pos.SideToMove {
					continue
				}
				for tf := 0; tf < 8; tf++ {
					for tr := 0; tr < 8; tr++ {
						if IsLegal(pos, from, chess.Sq(tf, tr)) {
							t.Errorf("%s: IsLegal(%v, %v) = true for the side not to move", fen, from, chess.Sq(tf, tr))
						}
					}
				}
			}
		}
	}
}

func TestIsLegal_NoSelfCapture(t *testing.T) {
	pos := MustDecode("r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")
	for ff := 0; ff < 8; ff++ {
		for fr := 0; fr < 8; fr++ {
			from := chess.Sq(ff, fr)
			piece := pos.At(from)
			if piece.IsEmpty() {
				continue
			}
			for tf := 0; tf < 8; tf++ {
				for tr := 0; tr < 8; tr++ {
					to := chess.Sq(tf, tr)
					if target := pos.At(to); !target.IsEmpty() && target.Colour == piece.Colour && IsLegal(pos, from, to) {
						t.Errorf("IsLegal(%v, %v) = true onto own %v", from, to, target)
					}
				}
			}
		}
	}
}

func TestIsLegal_PieceGeometry(t *testing.T) {
	tests := []struct {
		name  string
		piece chess.ColouredPiece
		from  string
		legal []string
	}{
		{
			name:  "rook",
			piece: chess.W(chess.Rook),
			from:  "d4",
			legal: []string{"d1", "d2", "d3", "d5", "d6", "d7", "d8", "a4", "b4", "c4", "e4", "f4", "g4", "h4"},
		},
		{
			name:  "bishop",
			piece: chess.W(chess.Bishop),
			from:  "d4",
			legal: []string{"a1", "b2", "c3", "e5", "f6", "g7", "h8", "a7", "b6", "c5", "e3", "f2", "g1"},
		},
		{
			name:  "knight",
			piece: chess.W(chess.Knight),
			from:  "d4",
			legal: []string{"b3", "b5", "c2", "c6", "e2", "e6", "f3", "f5"},
		},
		{
			name:  "king",
			piece: chess.W(chess.King),
			from:  "d4",
			legal: []string{"c3", "c4", "c5", "d3", "d5", "e3", "e4", "e5"},
		},
		{
			name:  "queen in corner",
			piece: chess.B(chess.Queen),
			from:  "a8",
			legal: []string{
				"a1", "a2", "a3", "a4", "a5", "a6", "a7",
				"b8", "c8", "d8", "e8", "f8", "g8", "h8",
				"b7", "c6", "d5", "e4", "f3", "g2", "h1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := testutil.Place(t, map[string]chess.ColouredPiece{tt.from: tt.piece})
			pos.SideToMove = tt.piece.Colour
			from := testutil.Sq(t, tt.from)

			want := make(map[chess.Square]bool)
			for _, name := range tt.legal {
				want[testutil.Sq(t, name)] = true
			}

			for tf := 0; tf < 8; tf++ {
				for tr := 0; tr < 8; tr++ {
					to := chess.Sq(tf, tr)
					if got := IsLegal(pos, from, to); got != want[to] {
						t.Errorf("IsLegal(%v -> %v) = %v, want %v", from, to, got, want[to])
					}
				}
			}
		})
	}
}

func TestIsLegal_Pawn(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want bool
	}{
		{"white single push", InitialFEN, "d2d3", true},
		{"white double push", InitialFEN, "d2d4", true},
		{"black double push", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", "d7d5", true},
		{"black cannot move backwards", "4k3/8/8/3p4/8/8/8/4K3 b - - 0 1", "d5d6", false},
		{"double push only from start rank", "4k3/8/8/8/8/3P4/8/4K3 w - - 0 1", "d3d5", false},
		{"double push blocked at first square", "4k3/8/8/8/8/3n4/3P4/4K3 w - - 0 1", "d2d4", false},
		{"double push blocked at target", "4k3/8/8/8/3n4/8/3P4/4K3 w - - 0 1", "d2d4", false},
		{"single push blocked", "4k3/8/8/8/8/3n4/3P4/4K3 w - - 0 1", "d2d3", false},
		{"diagonal capture", "4k3/8/8/8/8/4n3/3P4/4K3 w - - 0 1", "d2e3", true},
		{"black diagonal capture", "4k3/8/8/3p4/4P3/8/8/4K3 b - - 0 1", "d5e4", true},
		{"diagonal onto empty square", "4k3/8/8/8/8/8/3P4/4K3 w - - 0 1", "d2e3", false},
		{"two files sideways", "4k3/8/8/8/8/5n2/3P4/4K3 w - - 0 1", "d2f3", false},
		{"en passant capture", testutil.EnPassantFEN, "e5f6", true},
		{"en passant from wrong file", testutil.EnPassantFEN, "e5d6", false},
		{"push past the en passant pawn", testutil.EnPassantFEN, "e5e6", true},
		{"black en passant", "rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 3", "d4e3", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := MustDecode(tt.fen)
			m, err := chess.ParseMoveRequest(tt.move)
			if err != nil {
				t.Fatalf("ParseMoveRequest(%q) error = %v", tt.move, err)
			}
			if got := IsLegal(pos, m.From, m.To); got != tt.want {
				t.Errorf("IsLegal(%s) = %v, want %v", tt.move, got, tt.want)
			}
		})
	}
}

func TestRules_CheckPaths(t *testing.T) {
	pos := MustDecode(InitialFEN)
	rules := Rules{CheckPaths: true}

	tests := []struct {
		move string
		want bool
	}{
		{"a1a3", false},
		{"c1e3", false},
		{"d1h5", false},
		{"b1c3", true}, // knights jump
		{"e2e4", true},
	}
	for _, tt := range tests {
		t.Run(tt.move, func(t *testing.T) {
			m, _ := chess.ParseMoveRequest(tt.move)
			if got := rules.IsLegal(pos, m.From, m.To); got != tt.want {
				t.Errorf("Rules{CheckPaths}.IsLegal(%s) = %v, want %v", tt.move, got, tt.want)
			}
		})
	}

	open := MustDecode("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2")
	m, _ := chess.ParseMoveRequest("d1h5")
	testutil.AssertTrue(t, rules.IsLegal(open, m.From, m.To), "Qh5 with an open diagonal")
}

func TestRules_RejectSelfCheck(t *testing.T) {
	// The e2 knight is pinned against the king by the e8 rook.
	pos := MustDecode("4r1k1/8/8/8/8/8/4N3/4K3 w - - 0 1")
	m, _ := chess.ParseMoveRequest("e2c3")

	testutil.AssertTrue(t, IsLegal(pos, m.From, m.To), "subset ignores pins")
	testutil.AssertFalse(t, Rules{RejectSelfCheck: true}.IsLegal(pos, m.From, m.To), "pinned knight")

	king, _ := chess.ParseMoveRequest("e1d1")
	testutil.AssertTrue(t, Rules{RejectSelfCheck: true}.IsLegal(pos, king.From, king.To), "king steps off the file")
}
