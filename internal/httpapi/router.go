// Package httpapi exposes the position engine over HTTP with JSON bodies.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/lgbarn/position-engine-go/internal/errors"
	"github.com/lgbarn/position-engine-go/internal/oracle"
	"github.com/lgbarn/position-engine-go/internal/service"
	"github.com/lgbarn/position-engine-go/internal/session"
	"github.com/lgbarn/position-engine-go/internal/worker"
)

// DefaultMaxBodyBytes bounds request bodies unless WithMaxBodyBytes
// sets a positive limit.
const DefaultMaxBodyBytes = 1 << 16

// Handler serves the API.
type Handler struct {
	svc      *service.Service
	sessions *session.Manager
	log      zerolog.Logger
	maxBody  int64
	poolOpts []worker.PoolOption
}

// Option configures a Handler.
type Option func(*Handler)

// WithMaxBodyBytes limits request bodies to n bytes. Zero or negative
// keeps DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBody = n
		}
	}
}

// WithPoolOptions sets the worker pool used by the batch endpoints.
func WithPoolOptions(opts ...worker.PoolOption) Option {
	return func(h *Handler) {
		h.poolOpts = append(h.poolOpts, opts...)
	}
}

func newHandler(log zerolog.Logger, svc *service.Service, sessions *session.Manager, opts ...Option) *Handler {
	h := &Handler{
		svc:      svc,
		sessions: sessions,
		log:      log,
		maxBody:  DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewRouter creates the HTTP router. sessions is optional; without it the
// session endpoints are not registered.
func NewRouter(log zerolog.Logger, svc *service.Service, sessions *session.Manager, opts ...Option) http.Handler {
	h := newHandler(log, svc, sessions, opts...)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("GET /api/info", h.info)
	mux.HandleFunc("POST /api/move", h.move)
	mux.HandleFunc("POST /api/evaluate", h.evaluate)
	mux.HandleFunc("POST /api/moves", h.legalMoves)
	mux.HandleFunc("POST /api/batch", h.batch)
	mux.HandleFunc("POST /api/sequence", h.sequence)
	mux.HandleFunc("POST /api/sequences", h.sequences)

	if sessions != nil {
		mux.HandleFunc("POST /api/sessions", h.createSession)
		mux.HandleFunc("GET /api/sessions", h.listSessions)
		mux.HandleFunc("GET /api/sessions/{id}", h.getSession)
		mux.HandleFunc("DELETE /api/sessions/{id}", h.deleteSession)
		mux.HandleFunc("POST /api/sessions/{id}/move", h.sessionMove)
		mux.HandleFunc("POST /api/sessions/{id}/undo", h.undoSession)
	} else {
		log.Info().Msg("sessions disabled")
	}

	return RequestID(AccessLog(log, mux))
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) info(w http.ResponseWriter, r *http.Request) {
	rules := h.svc.Rules()
	writeJSON(w, http.StatusOK, map[string]any{
		"oracle":            h.svc.OracleName(),
		"oracles":           oracle.Names(),
		"check_paths":       rules.CheckPaths,
		"reject_self_check": rules.RejectSelfCheck,
		"revoke_castling":   rules.RevokeCastling,
		"sessions":          h.sessions != nil,
	})
}

// MoveRequest is the body of POST /api/move.
type MoveRequest struct {
	Position string `json:"position"`
	From     string `json:"from"`
	To       string `json:"to"`
}

func (h *Handler) move(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.svc.Play(r.Context(), req.Position, req.From, req.To)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// PositionRequest is the body of endpoints that take a single position.
type PositionRequest struct {
	Position string `json:"position"`
}

func (h *Handler) evaluate(w http.ResponseWriter, r *http.Request) {
	var req PositionRequest
	if !h.decode(w, r, &req) {
		return
	}
	ev, err := h.svc.Evaluate(r.Context(), req.Position)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (h *Handler) legalMoves(w http.ResponseWriter, r *http.Request) {
	var req PositionRequest
	if !h.decode(w, r, &req) {
		return
	}
	moves, err := h.svc.LegalMoves(r.Context(), req.Position)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"moves": moves})
}

// BatchRequest is the body of POST /api/batch.
type BatchRequest struct {
	Positions []string `json:"positions"`
}

func (h *Handler) batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !h.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": h.svc.EvaluateBatch(r.Context(), req.Positions, h.poolOpts...)})
}

// SequenceRequest is the body of POST /api/sequence. An empty Start is
// the initial position.
type SequenceRequest struct {
	Start string   `json:"start"`
	Moves []string `json:"moves"`
}

func (h *Handler) sequence(w http.ResponseWriter, r *http.Request) {
	var req SequenceRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.svc.PlaySequence(r.Context(), req.Start, req.Moves)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SequencesRequest is the body of POST /api/sequences. Each entry of
// Sequences is a space-separated move list replayed from Start.
type SequencesRequest struct {
	Start     string   `json:"start"`
	Sequences []string `json:"sequences"`
}

func (h *Handler) sequences(w http.ResponseWriter, r *http.Request) {
	var req SequencesRequest
	if !h.decode(w, r, &req) {
		return
	}
	items := h.svc.PlaySequences(r.Context(), req.Start, req.Sequences, h.poolOpts...)
	writeJSON(w, http.StatusOK, map[string]any{"results": items})
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req PositionRequest
	if r.ContentLength != 0 && !h.decode(w, r, &req) {
		return
	}
	s, err := h.sessions.Create(r.Context(), req.Position)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	list, err := h.sessions.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": list})
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SessionMoveRequest is the body of POST /api/sessions/{id}/move.
type SessionMoveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (h *Handler) sessionMove(w http.ResponseWriter, r *http.Request) {
	var req SessionMoveRequest
	if !h.decode(w, r, &req) {
		return
	}
	s, res, err := h.sessions.Play(r.Context(), r.PathValue("id"), req.From, req.To)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": s, "result": res})
}

func (h *Handler) undoSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Undo(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// decode reads a JSON body into v, answering 400 on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Ply   int    `json:"ply,omitempty"`
}

// writeError maps engine errors onto status codes.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, errors.ErrMalformedEncoding):
		status, kind = http.StatusBadRequest, "malformed_position"
	case errors.Is(err, errors.ErrInvalidSquare):
		status, kind = http.StatusBadRequest, "invalid_square"
	case errors.Is(err, errors.ErrInvalidNotation):
		status, kind = http.StatusBadRequest, "invalid_move"
	case errors.Is(err, errors.ErrIllegalMove):
		status, kind = http.StatusUnprocessableEntity, "illegal_move"
	case errors.Is(err, errors.ErrSessionNotFound):
		status, kind = http.StatusNotFound, "session_not_found"
	}

	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Str("rid", GetRequestID(r.Context())).Str("path", r.URL.Path).Msg("request failed")
		writeJSON(w, status, errorBody{Error: "internal error", Kind: kind})
		return
	}
	body := errorBody{Error: err.Error(), Kind: kind}
	var moveErr *errors.MoveError
	if errors.As(err, &moveErr) {
		body.Ply = moveErr.Ply
	}
	writeJSON(w, status, body)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
