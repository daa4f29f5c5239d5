package engine

import (
	"golang.org/x/exp/constraints"

	"github.com/lgbarn/position-engine-go/internal/chess"
)

// Evaluator constants. Scores are in pawns from White's point of view
// until mapped onto the 0-100 gauge.
const (
	CentreBonus      = 0.3
	DevelopmentBonus = 0.2

	// MaxAdvantage bounds the raw score before it is mapped to the gauge.
	MaxAdvantage = 10.0

	// GaugeScale converts one pawn of advantage into gauge points.
	GaugeScale = 5.0

	Balanced = 50.0
	GaugeMin = 0.0
	GaugeMax = 100.0
)

// pieceValues is indexed by chess.Piece. Kings carry no material value.
var pieceValues = [chess.NumPieceKinds]float64{
	chess.NoPiece: 0,
	chess.Pawn:    1,
	chess.Knight:  3,
	chess.Bishop:  3,
	chess.Rook:    5,
	chess.Queen:   9,
	chess.King:    0,
}

// PieceValue returns the material value of a piece kind.
func PieceValue(kind chess.Piece) float64 {
	if kind < 0 || kind >= chess.NumPieceKinds {
		return 0
	}
	return pieceValues[kind]
}

// centreSquares are d4, e4, d5 and e5.
var centreSquares = [4]chess.Square{
	chess.Sq(3, 3), chess.Sq(4, 3), chess.Sq(3, 4), chess.Sq(4, 4),
}

// developmentSquares are the minor-piece starting squares of each colour.
var developmentSquares = map[chess.Colour][4]chess.Square{
	chess.White: {chess.Sq(1, 0), chess.Sq(2, 0), chess.Sq(5, 0), chess.Sq(6, 0)},
	chess.Black: {chess.Sq(1, 7), chess.Sq(2, 7), chess.Sq(5, 7), chess.Sq(6, 7)},
}

// signFor returns +1 for White and -1 for Black.
func signFor(c chess.Colour) float64 {
	if c == chess.White {
		return 1
	}
	return -1
}

// Material returns the signed material balance: positive favours White.
func Material(pos chess.Position) float64 {
	total := 0.0
	for file := 0; file < chess.BoardSize; file++ {
		for rank := 0; rank < chess.BoardSize; rank++ {
			p := pos.Board[file][rank]
			if p.IsEmpty() {
				continue
			}
			total += signFor(p.Colour) * PieceValue(p.Kind)
		}
	}
	return total
}

// Positional returns the centre-occupation and development terms.
// Occupancy is tallied as signed counts first so balanced positions
// score exactly zero.
func Positional(pos chess.Position) float64 {
	centre := 0
	for _, sq := range centreSquares {
		if p := pos.At(sq); !p.IsEmpty() {
			centre += p.Colour.Direction()
		}
	}

	developed := 0
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for _, sq := range developmentSquares[colour] {
			p := pos.At(sq)
			undeveloped := p.Colour == colour && (p.Kind == chess.Knight || p.Kind == chess.Bishop)
			if !undeveloped {
				developed += colour.Direction()
			}
		}
	}

	return float64(centre)*CentreBonus + float64(developed)*DevelopmentBonus
}

// Score returns the display score in [0,100]: 50 is balanced, higher
// favours White. It accepts any decodable position, including ones with
// no kings or several kings.
func Score(pos chess.Position) float64 {
	total := clamp(Material(pos)+Positional(pos), -MaxAdvantage, MaxAdvantage)
	return clamp(Balanced+total*GaugeScale, GaugeMin, GaugeMax)
}

// clamp restricts v to [lo, hi].
func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
