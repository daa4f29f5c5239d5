package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/lgbarn/position-engine-go/internal/config"
	"github.com/lgbarn/position-engine-go/internal/errors"
	"github.com/lgbarn/position-engine-go/internal/httpapi"
	"github.com/lgbarn/position-engine-go/internal/service"
	"github.com/lgbarn/position-engine-go/internal/session"
	"github.com/lgbarn/position-engine-go/internal/storage"
)

// openStore opens the configured session store. The returned close
// function is never nil.
func openStore(cfg *config.Config, log zerolog.Logger) (session.Store, func() error, error) {
	if !cfg.Storage.Enabled() {
		log.Info().Msg("session persistence disabled")
		return nil, func() error { return nil }, nil
	}

	var (
		db  *storage.Badger
		err error
	)
	if cfg.Storage.InMemory {
		db, err = storage.OpenInMemory()
	} else {
		db, err = storage.Open(cfg.Storage.Path)
	}
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("path", cfg.Storage.Path).Bool("in_memory", cfg.Storage.InMemory).Msg("session store opened")
	return db, db.Close, nil
}

// serve runs the HTTP API until ctx is cancelled, then shuts down
// gracefully.
func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger, svc *service.Service) error {
	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error().Err(err).Msg("close session store")
		}
	}()

	sessions := session.NewManager(svc, store, log)
	srv := &http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      httpapi.NewRouter(log, svc, sessions,
			httpapi.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
			httpapi.WithPoolOptions(poolOptions(cfg)...),
		),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("oracle", svc.OracleName()).
			Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
