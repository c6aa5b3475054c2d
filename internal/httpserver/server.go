// internal/httpserver/server.go
//
// HTTP server wiring for the Wardle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     request logging, per-client rate limiting on guesses).
//   - Public endpoints: "/", "/health", "/metrics", "/debug/words".
//   - Game endpoints: POST /game/new, POST /game/guess, GET /game/{id}.
//   - Reveal stream: GET /game/{id}/events (WebSocket).
//   - Daily endpoint: POST /daily/new.
//
// Notes:
//   - CORS is origin-aware for a single configured client origin.
//   - The event stream sits outside the request timeout.
//   - Forwarding headers (X-Forwarded-For, X-Real-IP) are honored only with
//     TrustProxy; otherwise clients are keyed by their socket address.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/kiittsunne/wardle/internal/config"
	"github.com/kiittsunne/wardle/internal/game"
	"github.com/kiittsunne/wardle/internal/match"
	"github.com/kiittsunne/wardle/internal/store"
)

// Server bundles router, live-match store and the match factory.
type Server struct {
	r       *chi.Mux
	store   store.Store
	matches *match.Factory
	cfg     config.Config
	limits  *limiter
	now     func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, f *match.Factory, cfg config.Config) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		matches: f,
		cfg:     cfg,
		limits:  newLimiter(cfg.RateLimit, cfg.RateBurst),
		now:     time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	if cfg.TrustProxy {
		s.r.Use(chimw.RealIP) // set RemoteAddr from X-Forwarded-For etc.
	}
	s.r.Use(requestLogger)             // zerolog access log
	s.r.Use(chimw.Recoverer)           // recover from panics
	s.r.Use(corsFor(cfg.ClientOrigin)) // single-origin CORS

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"wardle","endpoints":["/health","/metrics","POST /game/new","POST /game/guess","GET /game/{id}","GET /game/{id}/events","POST /daily/new"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", s.handleWordStats)

		// --- game ---
		r.Post("/game/new", s.handleNewGame)
		r.With(s.limits.middleware).Post("/game/guess", s.handleGuess)
		r.Get("/game/{id}", s.handleGetGame)

		s.mountDaily(r)

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
		})
	})

	s.r.Handle("/metrics", promhttp.Handler())
	s.r.Get("/game/{id}/events", s.handleEvents)

	return s
}

// SweepClients forgets rate-limit state for clients idle longer than idle.
func (s *Server) SweepClients(now time.Time, idle time.Duration) int {
	return s.limits.sweep(now, idle)
}

// Router exposes the internal router (useful for tests and http.Server).
func (s *Server) Router() chi.Router { return s.r }

// ServeHTTP lets Server be used directly as a handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFor enables CORS for a single origin.
func corsFor(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger writes one zerolog line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("req", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Mode   string `json:"mode"`   // "solo" | "versus"
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newGameRes struct {
	GameID      string    `json:"gameId"`
	Mode        game.Mode `json:"mode"`
	WordLength  int       `json:"wordLength"`
	MaxAttempts int       `json:"maxAttempts"`
	Date        string    `json:"date,omitempty"`
}

// handleNewGame starts a round and registers it in the store.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	m, err := s.matches.Start(game.ParseMode(req.Mode), req.Answer, match.SourceRandom)
	if err != nil {
		writeGameErr(w, r, err)
		return
	}
	if !s.save(w, r, m) {
		return
	}
	writeJSON(w, http.StatusOK, newGameResFor(m))
}

func newGameResFor(m *match.Match) newGameRes {
	rd := m.Round()
	return newGameRes{GameID: rd.ID, Mode: rd.Mode, WordLength: rd.WordLength(), MaxAttempts: rd.MaxAttempts()}
}

func (s *Server) save(w http.ResponseWriter, r *http.Request, m *match.Match) bool {
	if err := s.store.Save(r.Context(), m); err != nil {
		log.Error().Err(err).Str("req", chimw.GetReqID(r.Context())).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return false
	}
	return true
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Player   game.GuessResult  `json:"player"`
	Computer *game.GuessResult `json:"computer,omitempty"`
	State    game.Status       `json:"state"`
	Winner   game.Side         `json:"winner,omitempty"`
	Answer   string            `json:"answer,omitempty"`
	Message  string            `json:"message,omitempty"`
	Keyboard game.Keyboard     `json:"keyboard"`
}

// handleGuess plays one player turn.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	m, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	turn, err := m.Submit(r.Context(), req.Guess)
	if err != nil {
		writeGameErr(w, r, err)
		return
	}

	res := guessRes{
		Player:   turn.Player,
		Computer: turn.Computer,
		State:    turn.View.Status,
		Winner:   turn.View.Winner,
		Answer:   turn.View.Target,
		Keyboard: turn.View.Sides[game.SidePlayer].Keyboard,
	}
	if n := len(turn.Events); n > 0 && turn.View.Status.Finished() {
		res.Message = turn.Events[n-1].Message
	}
	writeJSON(w, http.StatusOK, res)
}

// handleGetGame returns the round view; the target stays hidden while playing.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, m.Round().Snapshot())
}

// handleWordStats reports dictionary counts.
func (s *Server) handleWordStats(w http.ResponseWriter, r *http.Request) {
	total, distinct, skipped := s.matches.Dictionary().Stats()
	writeJSON(w, http.StatusOK, map[string]int{
		"words":      total,
		"distinct":   distinct,
		"skipped":    skipped,
		"wordLength": s.matches.Dictionary().WordLength(),
	})
}

// ------------------------------- errors ------------------------------------

type errorRes struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}

// writeGameErr maps engine errors to status codes.
func writeGameErr(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := game.IsValidation(err); ok {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "invalid_guess", Kind: string(ve.Kind), Message: ve.Message()})
		return
	}
	switch {
	case errors.Is(err, game.ErrSideLocked):
		writeError(w, http.StatusConflict, "locked")
	case errors.Is(err, game.ErrRoundFinished):
		writeError(w, http.StatusConflict, "finished")
	case errors.Is(err, game.ErrNoAttemptsLeft):
		writeError(w, http.StatusConflict, "no_attempts_left")
	default:
		log.Error().Err(err).Str("req", chimw.GetReqID(r.Context())).Msg("game error")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorRes{Error: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
