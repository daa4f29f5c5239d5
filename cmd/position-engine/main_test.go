package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lgbarn/position-engine-go/internal/config"
	"github.com/lgbarn/position-engine-go/internal/engine"
	perrors "github.com/lgbarn/position-engine-go/internal/errors"
	"github.com/lgbarn/position-engine-go/internal/oracle"
	"github.com/lgbarn/position-engine-go/internal/service"
	"github.com/lgbarn/position-engine-go/internal/testutil"
	"github.com/lgbarn/position-engine-go/internal/worker"
)

func newTestService() *service.Service {
	return service.New(oracle.Builtin{}, engine.Subset, zerolog.Nop())
}

func TestRunSingle(t *testing.T) {
	t.Run("evaluate", func(t *testing.T) {
		var buf bytes.Buffer
		err := runSingle(context.Background(), newTestService(), testutil.StartFEN, "", &buf)
		testutil.AssertNoError(t, err)

		var ev service.Evaluation
		testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &ev))
		testutil.AssertEqual(t, ev.Score, 50.0)
		testutil.AssertEqual(t, ev.Status, oracle.Ongoing)
	})

	t.Run("play", func(t *testing.T) {
		var buf bytes.Buffer
		err := runSingle(context.Background(), newTestService(), testutil.StartFEN, "e2e4", &buf)
		testutil.AssertNoError(t, err)

		var res service.Result
		testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &res))
		testutil.AssertEqual(t, res.Position, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
		testutil.AssertEqual(t, res.Move, "e2e4")
	})

	errTests := []struct {
		name     string
		position string
		move     string
		want     error
	}{
		{"illegal move", testutil.StartFEN, "e2e5", perrors.ErrIllegalMove},
		{"malformed position", "8/8/8", "", perrors.ErrMalformedEncoding},
		{"short move", testutil.StartFEN, "e2e", perrors.ErrInvalidSquare},
		{"bad square", testutil.StartFEN, "e2x4", perrors.ErrInvalidSquare},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := runSingle(context.Background(), newTestService(), tt.position, tt.move, &buf)
			testutil.AssertErrorIs(t, err, tt.want)
			testutil.AssertEqual(t, buf.Len(), 0, "nothing written on error")
		})
	}
}

func TestServiceOptions(t *testing.T) {
	testutil.AssertEqual(t, len(serviceOptions(config.NewConfig())), 1)

	cfg := config.NewConfig()
	cfg.Batch.CacheSize = 0
	testutil.AssertEqual(t, len(serviceOptions(cfg)), 0)
}

func TestReadLines(t *testing.T) {
	input := "# opening\n" + testutil.StartFEN + "\n\n   \n" + testutil.CheckFEN + "  \n"
	got, err := readLines(strings.NewReader(input))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, []string{testutil.StartFEN, testutil.CheckFEN})
}

func TestRunBatch(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Batch.Workers = 3
	input := strings.Join([]string{
		testutil.StartFEN,
		"garbage",
		testutil.FoolsMateFEN,
		testutil.StalemateFEN,
	}, "\n")

	var buf bytes.Buffer
	err := runBatch(context.Background(), cfg, newTestService(), strings.NewReader(input), &buf)
	testutil.AssertNoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	testutil.AssertEqual(t, len(lines), 4)

	items := make([]service.BatchItem, len(lines))
	for i, line := range lines {
		testutil.AssertNoError(t, json.Unmarshal([]byte(line), &items[i]), "line %d", i)
		testutil.AssertEqual(t, items[i].Index, i)
	}

	testutil.AssertEqual(t, items[0].Evaluation.Status, oracle.Ongoing)
	testutil.AssertTrue(t, items[1].Evaluation == nil, "malformed line has no evaluation")
	testutil.AssertContains(t, items[1].Error, "malformed")
	testutil.AssertEqual(t, items[2].Evaluation.Status, oracle.Checkmate)
	testutil.AssertEqual(t, items[3].Evaluation.Status, oracle.Stalemate)
}

func TestRunBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := runBatch(ctx, config.NewConfig(), newTestService(), strings.NewReader(testutil.StartFEN), &buf)
	testutil.AssertErrorIs(t, err, context.Canceled)
}

func TestPoolOptions(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Batch.Workers = 5
	testutil.AssertEqual(t, worker.NewPool(nil, poolOptions(cfg)...).NumWorkers(), 5)
}

func TestRunSequence(t *testing.T) {
	var buf bytes.Buffer
	err := runSequence(context.Background(), newTestService(), testutil.StartFEN, "e2e4 d7d5  e4e5 f5", &buf)
	testutil.AssertNoError(t, err)

	var res service.SequenceResult
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &res))
	testutil.AssertEqual(t, res.Position, testutil.EnPassantFEN)
	testutil.AssertEqual(t, res.Moves, []string{"e2e4", "d7d5", "e4e5", "f7f5"})

	buf.Reset()
	err = runSequence(context.Background(), newTestService(), testutil.StartFEN, "e2e4 e2e4", &buf)
	testutil.AssertErrorIs(t, err, perrors.ErrIllegalMove)
	testutil.AssertEqual(t, buf.Len(), 0, "nothing written on error")
}

func TestRunSequenceBatch(t *testing.T) {
	input := "e2e4 d7d5 e4e5 f7f5\n# comment\nd4 Nf6\ne2e4 xx\n"

	var buf bytes.Buffer
	err := runSequenceBatch(context.Background(), config.NewConfig(), newTestService(), testutil.StartFEN, strings.NewReader(input), &buf)
	testutil.AssertNoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	testutil.AssertEqual(t, len(lines), 3)

	items := make([]service.SequenceItem, len(lines))
	for i, line := range lines {
		testutil.AssertNoError(t, json.Unmarshal([]byte(line), &items[i]), "line %d", i)
	}
	testutil.AssertEqual(t, items[0].Result.Position, testutil.EnPassantFEN)
	testutil.AssertEqual(t, items[1].Result.Moves, []string{"d2d4", "g8f6"})
	testutil.AssertContains(t, items[2].Error, "invalid move notation")
}

func TestNewLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := config.NewConfig()
		cfg.SetLogOutput(&buf)
		cfg.Log.Level = "warn"
		cfg.Log.JSON = true

		log := newLogger(cfg)
		log.Info().Msg("hidden")
		log.Warn().Str("k", "v").Msg("shown")

		testutil.AssertNotContains(t, buf.String(), "hidden")
		testutil.AssertContains(t, buf.String(), `"message":"shown"`)
		testutil.AssertContains(t, buf.String(), `"k":"v"`)
	})

	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := config.NewConfig()
		cfg.SetLogOutput(&buf)

		log := newLogger(cfg)
		log.Info().Msg("ready")
		testutil.AssertContains(t, buf.String(), "ready")
		testutil.AssertNotContains(t, buf.String(), `"message"`)
	})
}

func TestOpenStore(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		store, closeStore, err := openStore(config.NewConfig(), zerolog.Nop())
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, store == nil, "no store without a path")
		testutil.AssertNoError(t, closeStore())
	})

	t.Run("in memory", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Storage.InMemory = true
		store, closeStore, err := openStore(cfg, zerolog.Nop())
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, store != nil, "store opened")
		testutil.AssertNoError(t, closeStore())
	})

	t.Run("directory", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Storage.Path = t.TempDir()
		store, closeStore, err := openStore(cfg, zerolog.Nop())
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, store != nil, "store opened")
		testutil.AssertNoError(t, closeStore())
	})
}

func TestServe_Shutdown(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Server.ListenAddr = "127.0.0.1:0"
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := serve(ctx, cfg, zerolog.Nop(), newTestService())
	testutil.AssertNoError(t, err)
}
