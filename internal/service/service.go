// Package service runs the move pipeline on top of the engine: decode,
// check legality, apply, encode, score and classify.
package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lgbarn/position-engine-go/internal/chess"
	"github.com/lgbarn/position-engine-go/internal/engine"
	"github.com/lgbarn/position-engine-go/internal/errors"
	"github.com/lgbarn/position-engine-go/internal/hashing"
	"github.com/lgbarn/position-engine-go/internal/oracle"
	"github.com/lgbarn/position-engine-go/internal/worker"
)

// Result is the response to an accepted move.
type Result struct {
	Position string        `json:"position"`
	Move     string        `json:"move"`
	Score    float64       `json:"score"`
	Status   oracle.Status `json:"status"`
}

// Evaluation describes a position without moving.
type Evaluation struct {
	Position   string        `json:"position"`
	SideToMove string        `json:"side_to_move"`
	Score      float64       `json:"score"`
	Material   float64       `json:"material"`
	Positional float64       `json:"positional"`
	Status     oracle.Status `json:"status"`
}

// Service is safe for concurrent use: positions are values and the
// oracle and rules are read-only.
type Service struct {
	oracle oracle.Oracle
	rules  engine.Rules
	log    zerolog.Logger
	cache  *hashing.Cache[scored]
}

// scored holds the clock-independent part of an Evaluation.
type scored struct {
	score, material, positional float64
	status                      oracle.Status
}

// Option configures a Service.
type Option func(*Service)

// WithCache memoizes evaluations of up to size distinct positions.
// Clocks do not affect an evaluation, so positions differing only in
// their counters share an entry.
func WithCache(size int) Option {
	return func(s *Service) {
		s.cache = hashing.NewCache[scored](size)
	}
}

// New creates a service. A nil oracle is replaced by oracle.None.
func New(o oracle.Oracle, rules engine.Rules, log zerolog.Logger, opts ...Option) *Service {
	if o == nil {
		o = oracle.None{}
	}
	s := &Service{oracle: o, rules: rules, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rules returns the legality rules in force.
func (s *Service) Rules() engine.Rules {
	return s.rules
}

// OracleName returns the name of the configured oracle.
func (s *Service) OracleName() string {
	return s.oracle.Name()
}

// Play decodes the position, applies the move from-to and returns the
// successor. Errors wrap ErrMalformedEncoding, ErrInvalidSquare or
// ErrIllegalMove; the caller keeps its previous position on any error.
func (s *Service) Play(ctx context.Context, encoded, from, to string) (Result, error) {
	pos, err := engine.Decode(encoded)
	if err != nil {
		return Result{}, err
	}
	move, err := parseMove(from, to)
	if err != nil {
		return Result{}, &errors.MoveError{Err: err, Position: encoded, Move: from + to}
	}
	_, res, err := s.PlayPosition(ctx, pos, move)
	return res, err
}

// PlayPosition applies a move to a decoded position.
func (s *Service) PlayPosition(ctx context.Context, pos chess.Position, move chess.MoveRequest) (chess.Position, Result, error) {
	if err := ctx.Err(); err != nil {
		return pos, Result{}, err
	}

	if !s.rules.IsLegal(pos, move.From, move.To) {
		s.log.Debug().Str("move", move.String()).Str("position", engine.Encode(pos)).Msg("move rejected")
		return pos, Result{}, &errors.MoveError{
			Err:      errors.ErrIllegalMove,
			Position: engine.Encode(pos),
			Move:     move.String(),
		}
	}

	next := s.rules.Apply(pos, move.From, move.To)
	res := Result{
		Position: engine.Encode(next),
		Move:     move.String(),
		Score:    engine.Score(next),
		Status:   s.oracle.Status(next),
	}

	s.log.Debug().
		Str("move", res.Move).
		Str("position", res.Position).
		Float64("score", res.Score).
		Stringer("status", res.Status).
		Msg("move applied")

	return next, res, nil
}

// Evaluate scores an encoded position and classifies it.
func (s *Service) Evaluate(ctx context.Context, encoded string) (Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return Evaluation{}, err
	}
	pos, err := engine.Decode(encoded)
	if err != nil {
		return Evaluation{}, err
	}
	return s.EvaluatePosition(pos), nil
}

// EvaluatePosition scores a decoded position.
func (s *Service) EvaluatePosition(pos chess.Position) Evaluation {
	sc, ok := s.lookup(pos)
	if !ok {
		sc = scored{
			score:      engine.Score(pos),
			material:   engine.Material(pos),
			positional: engine.Positional(pos),
			status:     s.oracle.Status(pos),
		}
		if s.cache != nil {
			s.cache.Add(pos, sc)
		}
	}
	return Evaluation{
		Position:   engine.Encode(pos),
		SideToMove: pos.SideToMove.String(),
		Score:      sc.score,
		Material:   sc.material,
		Positional: sc.positional,
		Status:     sc.status,
	}
}

func (s *Service) lookup(pos chess.Position) (scored, bool) {
	if s.cache == nil {
		return scored{}, false
	}
	return s.cache.Get(pos)
}

// CacheFull reports whether the evaluation cache stopped accepting new
// positions. It is false without a cache.
func (s *Service) CacheFull() bool {
	return s.cache != nil && s.cache.IsFull()
}

// CacheStats returns the evaluation cache's hit and miss counts, or zeros
// without a cache.
func (s *Service) CacheStats() (hits, misses int) {
	if s.cache == nil {
		return 0, 0
	}
	return s.cache.Stats()
}

// LegalMoves lists every move the configured rules accept, in long
// algebraic form.
func (s *Service) LegalMoves(ctx context.Context, encoded string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pos, err := engine.Decode(encoded)
	if err != nil {
		return nil, err
	}

	moves := []string{}
	for ff := 0; ff < chess.BoardSize; ff++ {
		for fr := 0; fr < chess.BoardSize; fr++ {
			from := chess.Sq(ff, fr)
			for tf := 0; tf < chess.BoardSize; tf++ {
				for tr := 0; tr < chess.BoardSize; tr++ {
					to := chess.Sq(tf, tr)
					if s.rules.IsLegal(pos, from, to) {
						moves = append(moves, chess.MoveRequest{From: from, To: to}.String())
					}
				}
			}
		}
	}
	return moves, nil
}

// BatchItem is one entry of EvaluateBatch's output.
type BatchItem struct {
	Index      int         `json:"index"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// EvaluateBatch evaluates the encodings concurrently and returns one item
// per input, in input order.
func (s *Service) EvaluateBatch(ctx context.Context, encodings []string, opts ...worker.PoolOption) []BatchItem {
	results := worker.Run(ctx, encodings, func(item worker.WorkItem) worker.ProcessResult {
		ev, err := s.Evaluate(ctx, item.Position)
		return worker.ProcessResult{Position: item.Position, Index: item.Index, Payload: ev, Err: err}
	}, opts...)

	items := make([]BatchItem, len(results))
	failed := 0
	for i, r := range results {
		items[i].Index = i
		if r.Err != nil {
			items[i].Error = r.Err.Error()
			failed++
			continue
		}
		ev := r.Payload.(Evaluation)
		items[i].Evaluation = &ev
	}

	hits, misses := s.CacheStats()
	s.log.Info().
		Int("positions", len(encodings)).
		Int("failed", failed).
		Int("cache_hits", hits).
		Int("cache_misses", misses).
		Bool("cache_full", s.CacheFull()).
		Msg("batch evaluated")
	return items
}

// parseMove parses two square names.
func parseMove(from, to string) (chess.MoveRequest, error) {
	f, err := chess.ParseSquare(from)
	if err != nil {
		return chess.MoveRequest{}, err
	}
	t, err := chess.ParseSquare(to)
	if err != nil {
		return chess.MoveRequest{}, err
	}
	return chess.MoveRequest{From: f, To: t}, nil
}
