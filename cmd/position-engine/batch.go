package main

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/position-engine-go/internal/config"
	"github.com/lgbarn/position-engine-go/internal/errors"
	"github.com/lgbarn/position-engine-go/internal/service"
	"github.com/lgbarn/position-engine-go/internal/worker"
)

// readLines returns the non-blank lines of r. Lines starting with '#'
// are comments.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read input")
	}
	return lines, nil
}

// poolOptions sizes batch worker pools from the batch configuration.
func poolOptions(cfg *config.Config) []worker.PoolOption {
	return []worker.PoolOption{
		worker.WithWorkers(cfg.Batch.WorkerCount()),
		worker.WithBufferSize(cfg.Batch.BufferSize),
	}
}

// runBatch evaluates every position read from r and writes one JSON line
// per position to w, in input order.
func runBatch(ctx context.Context, cfg *config.Config, svc *service.Service, r io.Reader, w io.Writer) error {
	positions, err := readLines(r)
	if err != nil {
		return err
	}
	return writeLines(ctx, w, svc.EvaluateBatch(ctx, positions, poolOptions(cfg)...))
}

// runSequenceBatch replays every move list read from r, one per line,
// from start and writes one JSON line per list to w, in input order.
func runSequenceBatch(ctx context.Context, cfg *config.Config, svc *service.Service, start string, r io.Reader, w io.Writer) error {
	sequences, err := readLines(r)
	if err != nil {
		return err
	}
	return writeLines(ctx, w, svc.PlaySequences(ctx, start, sequences, poolOptions(cfg)...))
}

func writeLines[T any](ctx context.Context, w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return errors.Wrap(err, "write batch result")
		}
	}
	return ctx.Err()
}
