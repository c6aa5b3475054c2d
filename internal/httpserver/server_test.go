package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiittsunne/wardle/internal/config"
	"github.com/kiittsunne/wardle/internal/daily"
	"github.com/kiittsunne/wardle/internal/game"
	"github.com/kiittsunne/wardle/internal/match"
	"github.com/kiittsunne/wardle/internal/reveal"
	"github.com/kiittsunne/wardle/internal/store"
	"github.com/kiittsunne/wardle/internal/words"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.RevealDelay = 0
	cfg.RateLimit = 0
	if mutate != nil {
		mutate(&cfg)
	}
	d, err := words.New([]string{"crane", "trace", "react", "crate", "slate", "stare", "about", "ghost"})
	require.NoError(t, err)
	f := match.NewFactory(d, game.NewSeededSelector(9), cfg.RevealDelay, game.Options{
		MaxAttempts:    cfg.MaxAttempts,
		DistinctTarget: cfg.DistinctTargets,
		ShareFeedback:  cfg.ShareFeedback,
	})
	return New(store.NewMemoryStore(), f, cfg)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func newGame(t *testing.T, s *Server, body string) newGameRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/game/new", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res newGameRes
	decode(t, rec, &res)
	require.NotEmpty(t, res.GameID)
	return res
}

func guess(t *testing.T, s *Server, id, g string) *httptest.ResponseRecorder {
	t.Helper()
	b, _ := json.Marshal(guessReq{GameID: id, Guess: g})
	return do(t, s, http.MethodPost, "/game/guess", string(b))
}

func TestHealthAndIndex(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	rec = do(t, s, http.MethodGet, "/", "")
	assert.Contains(t, rec.Body.String(), `"service":"wardle"`)

	rec = do(t, s, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestNewGame(t *testing.T) {
	s := newTestServer(t, nil)
	res := newGame(t, s, `{"mode":"versus"}`)
	assert.Equal(t, game.ModeVersus, res.Mode)
	assert.Equal(t, 5, res.WordLength)
	assert.Equal(t, 6, res.MaxAttempts)

	rec := do(t, s, http.MethodPost, "/game/new", `{"answer":"qwert"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGuess_SoloFlow(t *testing.T) {
	s := newTestServer(t, nil)
	id := newGame(t, s, `{"mode":"solo","answer":"crane"}`).GameID

	rec := guess(t, s, id, "trace")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res guessRes
	decode(t, rec, &res)
	assert.Equal(t, game.StatusPlaying, res.State)
	assert.Nil(t, res.Computer)
	assert.Empty(t, res.Answer, "answer hidden while playing")
	assert.Equal(t, "02212", res.Player.Codes())
	assert.Equal(t, game.MarkPresent, res.Keyboard["c"])

	rec = guess(t, s, id, "CRANE")
	require.Equal(t, http.StatusOK, rec.Code)
	res = guessRes{}
	decode(t, rec, &res)
	assert.Equal(t, game.StatusWon, res.State)
	assert.Equal(t, game.SidePlayer, res.Winner)
	assert.Equal(t, "crane", res.Answer)
	assert.Equal(t, "Great Job!", res.Message)

	rec = guess(t, s, id, "crane")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "finished")
}

func TestGuess_Versus(t *testing.T) {
	s := newTestServer(t, nil)
	id := newGame(t, s, `{"mode":"versus","answer":"crane"}`).GameID

	rec := guess(t, s, id, "trace")
	require.Equal(t, http.StatusOK, rec.Code)
	var res guessRes
	decode(t, rec, &res)
	require.NotNil(t, res.Computer)
	assert.Equal(t, game.SideComputer, res.Computer.Side)
}

func TestGuess_Errors(t *testing.T) {
	s := newTestServer(t, nil)
	id := newGame(t, s, `{"answer":"crane"}`).GameID

	rec := guess(t, s, id, "cra")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var er errorRes
	decode(t, rec, &er)
	assert.Equal(t, errorRes{Error: "invalid_guess", Kind: "too_short", Message: "Not Enough Letters"}, er)

	rec = guess(t, s, id, "zzzzz")
	er = errorRes{}
	decode(t, rec, &er)
	assert.Equal(t, "not_in_dictionary", er.Kind)
	assert.Equal(t, "Not a Wardle Word", er.Message)

	rec = guess(t, s, "missing", "crane")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/game/guess", "{")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "bad_json")
}

func TestGuess_LockedDuringReveal(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.RevealDelay = time.Hour })
	id := newGame(t, s, `{"answer":"crane"}`).GameID

	require.Equal(t, http.StatusOK, guess(t, s, id, "trace").Code)
	rec := guess(t, s, id, "react")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "locked")
}

func TestGetGame(t *testing.T) {
	s := newTestServer(t, nil)
	id := newGame(t, s, `{"answer":"crane"}`).GameID
	guess(t, s, id, "trace")

	rec := do(t, s, http.MethodGet, "/game/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var v game.RoundView
	decode(t, rec, &v)
	assert.Equal(t, id, v.ID)
	assert.Empty(t, v.Target)
	assert.Equal(t, 1, v.Sides[game.SidePlayer].Attempts)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/game/missing", "").Code)
}

func TestDailyNew(t *testing.T) {
	s := newTestServer(t, nil)
	day := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return day }

	rec := do(t, s, http.MethodPost, "/daily/new", `{"mode":"solo"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res newGameRes
	decode(t, rec, &res)
	assert.Equal(t, "2024-05-01", res.Date)

	want, ok := daily.Word(day, s.cfg.DailySalt, s.matches.Dictionary().TargetPool(true))
	require.True(t, ok)
	m, err := s.store.Get(context.Background(), res.GameID)
	require.NoError(t, err)
	assert.Equal(t, want, m.Round().Target())
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.RateLimit = 0.001; c.RateBurst = 1 })
	id := newGame(t, s, `{"answer":"crane"}`).GameID

	assert.Equal(t, http.StatusOK, guess(t, s, id, "trace").Code)
	assert.Equal(t, http.StatusTooManyRequests, guess(t, s, id, "react").Code)
}

func guessFrom(s *Server, id, g, forwardedFor string) int {
	b, _ := json.Marshal(guessReq{GameID: id, Guess: g})
	req := httptest.NewRequest(http.MethodPost, "/game/guess", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimit_IgnoresForwardedHeaders(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.RateLimit = 0.001; c.RateBurst = 1 })
	id := newGame(t, s, `{"answer":"crane"}`).GameID

	allowed := 0
	for i := 0; i < 200; i++ {
		if guessFrom(s, id, "trace", fmt.Sprintf("10.0.%d.%d", i/256, i%256)) != http.StatusTooManyRequests {
			allowed++
		}
	}
	assert.Equal(t, 1, allowed)
	assert.Equal(t, 1, s.limits.size())
}

func TestRateLimit_TrustProxyAndSweep(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.RateLimit = 0.001; c.RateBurst = 1; c.TrustProxy = true })
	id := newGame(t, s, `{"answer":"crane"}`).GameID

	assert.NotEqual(t, http.StatusTooManyRequests, guessFrom(s, id, "trace", "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, guessFrom(s, id, "trace", "10.0.0.1"))
	assert.NotEqual(t, http.StatusTooManyRequests, guessFrom(s, id, "react", "10.0.0.2"))
	assert.Equal(t, 2, s.limits.size())

	assert.Zero(t, s.SweepClients(time.Now(), time.Hour))
	assert.Equal(t, 2, s.SweepClients(time.Now().Add(2*time.Hour), time.Hour))
	assert.Zero(t, s.limits.size())
}

func TestLimiter_SweepKeepsRecentClients(t *testing.T) {
	l := newLimiter(1, 1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	l.allow("a")
	now = now.Add(30 * time.Minute)
	l.allow("b")

	assert.Equal(t, 1, l.sweep(now.Add(45*time.Minute), time.Hour))
	assert.Equal(t, 1, l.size())
	_, ok := l.clients["b"]
	assert.True(t, ok)
}

func TestMetricsAndWordStats(t *testing.T) {
	s := newTestServer(t, nil)
	newGame(t, s, `{}`)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wardle_rounds_started_total")

	rec = do(t, s, http.MethodGet, "/debug/words", "")
	var stats map[string]int
	decode(t, rec, &stats)
	assert.Equal(t, 8, stats["words"])
	assert.Equal(t, 5, stats["wordLength"])
}

func TestEvents_WebSocket(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s)
	defer ts.Close()

	rec := do(t, s, http.MethodPost, "/game/new", `{"answer":"crane"}`)
	var ng newGameRes
	decode(t, rec, &ng)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/game/" + ng.GameID + "/events"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	var first map[string]any
	require.NoError(t, ws.ReadJSON(&first))
	assert.Equal(t, "snapshot", first["kind"])

	b, _ := json.Marshal(guessReq{GameID: ng.GameID, Guess: "crane"})
	resp, err := http.Post(ts.URL+"/game/guess", "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var kinds []reveal.Kind
	for {
		var e reveal.Event
		if err := ws.ReadJSON(&e); err != nil {
			break
		}
		kinds = append(kinds, e.Kind)
		if e.Kind == reveal.KindFinished {
			assert.Equal(t, "Great Job!", e.Message)
		}
	}
	assert.Equal(t, []reveal.Kind{
		reveal.KindTile, reveal.KindTile, reveal.KindTile, reveal.KindTile, reveal.KindTile,
		reveal.KindGuess, reveal.KindFinished,
	}, kinds)
}

func TestEvents_UnknownGame(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/game/missing/events", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
