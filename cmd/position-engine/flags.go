// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/position-engine-go/internal/config"
	"github.com/lgbarn/position-engine-go/internal/engine"
)

var (
	// Modes
	serveMode     = flag.Bool("serve", false, "Run the HTTP API server")
	batchMode     = flag.Bool("batch", false, "Evaluate one encoded position per stdin line")
	sequencesMode = flag.Bool("sequences", false, "With -batch, replay one space-separated move list per stdin line from -position")

	// Single position
	positionText = flag.String("position", engine.InitialFEN, "Encoded position to evaluate or move from")
	moveText     = flag.String("move", "", "Move to play as from and to squares (e.g. e2e4)")
	movesText    = flag.String("moves", "", "Space-separated moves to replay from -position, long or standard algebraic (overrides -move)")

	// Rules
	oracleName      = flag.String("oracle", "builtin", "Game-end oracle: none, builtin, notnil")
	checkPaths      = flag.Bool("check-paths", false, "Reject sliding moves through occupied squares")
	rejectSelfCheck = flag.Bool("reject-self-check", false, "Reject moves that leave the mover in check")
	revokeCastling  = flag.Bool("revoke-castling", false, "Clear castling rights when kings or rooks move")

	// Server
	listenAddr = flag.String("addr", ":8080", "HTTP listen address")
	dbPath     = flag.String("db", "", "Badger directory for session persistence")
	inMemoryDB = flag.Bool("db-memory", false, "Persist sessions in an in-memory badger store")

	// Batch
	workers    = flag.Int("workers", 0, "Batch worker goroutines (0 = number of CPUs)")
	bufferSize = flag.Int("buffer", 64, "Batch work queue size")
	cacheSize  = flag.Int("cache", 4096, "Evaluation cache entries (0 = off, -1 = unlimited)")

	// Output and logging
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	logFile    = flag.String("l", "", "Log file (default: stderr)")
	logLevel   = flag.String("log-level", "info", "Log level: trace, debug, info, warn, error, disabled")
	logJSON    = flag.Bool("log-json", false, "Write log lines as JSON")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags copies parsed flag values into cfg.
func applyFlags(cfg *config.Config) {
	applyRulesFlags(cfg)
	applyServerFlags(cfg)
	applyBatchFlags(cfg)
	applyLogFlags(cfg)
}

func applyRulesFlags(cfg *config.Config) {
	cfg.Oracle = *oracleName
	cfg.Rules.CheckPaths = *checkPaths
	cfg.Rules.RejectSelfCheck = *rejectSelfCheck
	cfg.Rules.RevokeCastling = *revokeCastling
}

func applyServerFlags(cfg *config.Config) {
	cfg.Server.ListenAddr = *listenAddr
	cfg.Storage.Path = *dbPath
	cfg.Storage.InMemory = *inMemoryDB
}

func applyBatchFlags(cfg *config.Config) {
	cfg.Batch.Workers = *workers
	cfg.Batch.BufferSize = *bufferSize
	cfg.Batch.CacheSize = *cacheSize
}

func applyLogFlags(cfg *config.Config) {
	cfg.Log.Level = *logLevel
	cfg.Log.JSON = *logJSON
}
