package service

import (
	"context"
	"strings"

	"github.com/lgbarn/position-engine-go/internal/engine"
	"github.com/lgbarn/position-engine-go/internal/errors"
	"github.com/lgbarn/position-engine-go/internal/notation"
	"github.com/lgbarn/position-engine-go/internal/oracle"
	"github.com/lgbarn/position-engine-go/internal/worker"
)

// SequenceResult is the outcome of replaying a move list.
type SequenceResult struct {
	Start    string        `json:"start"`
	Position string        `json:"position"`
	Moves    []string      `json:"moves"`
	Score    float64       `json:"score"`
	Status   oracle.Status `json:"status"`
}

// PlaySequence replays moves from start, the initial position when start
// is empty. Moves may be long algebraic or SAN; Moves in the result are
// always long algebraic. Replay stops at the first move that does not
// parse or is illegal, and the returned *errors.MoveError carries its
// 1-based ply.
func (s *Service) PlaySequence(ctx context.Context, start string, moves []string) (SequenceResult, error) {
	if start == "" {
		start = engine.InitialFEN
	}
	pos, err := engine.Decode(start)
	if err != nil {
		return SequenceResult{}, err
	}

	res := SequenceResult{Start: engine.Encode(pos), Moves: make([]string, 0, len(moves))}
	for i, text := range moves {
		if err := ctx.Err(); err != nil {
			return SequenceResult{}, err
		}
		move, err := notation.ParseMove(pos, text)
		if err != nil {
			return SequenceResult{}, &errors.MoveError{Err: err, Position: engine.Encode(pos), Move: text, Ply: i + 1}
		}
		if !s.rules.IsLegal(pos, move.From, move.To) {
			s.log.Debug().Str("move", move.String()).Int("ply", i+1).Msg("sequence rejected")
			return SequenceResult{}, &errors.MoveError{
				Err:      errors.ErrIllegalMove,
				Position: engine.Encode(pos),
				Move:     text,
				Ply:      i + 1,
			}
		}
		pos = s.rules.Apply(pos, move.From, move.To)
		res.Moves = append(res.Moves, move.String())
	}

	ev := s.EvaluatePosition(pos)
	res.Position = ev.Position
	res.Score = ev.Score
	res.Status = ev.Status

	s.log.Debug().
		Int("plies", len(res.Moves)).
		Str("position", res.Position).
		Stringer("status", res.Status).
		Msg("sequence replayed")
	return res, nil
}

// SequenceItem is one entry of PlaySequences' output.
type SequenceItem struct {
	Index  int             `json:"index"`
	Result *SequenceResult `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// PlaySequences replays each space-separated move list from start
// concurrently and returns one item per input, in input order.
func (s *Service) PlaySequences(ctx context.Context, start string, sequences []string, opts ...worker.PoolOption) []SequenceItem {
	results := worker.Run(ctx, sequences, func(item worker.WorkItem) worker.ProcessResult {
		res, err := s.PlaySequence(ctx, start, strings.Fields(item.Position))
		return worker.ProcessResult{Position: item.Position, Index: item.Index, Payload: res, Err: err}
	}, opts...)

	items := make([]SequenceItem, len(results))
	failed := 0
	for i, r := range results {
		items[i].Index = i
		if r.Err != nil {
			items[i].Error = r.Err.Error()
			failed++
			continue
		}
		res := r.Payload.(SequenceResult)
		items[i].Result = &res
	}

	s.log.Info().
		Int("sequences", len(sequences)).
		Int("failed", failed).
		Msg("sequences replayed")
	return items
}
