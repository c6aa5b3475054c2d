// internal/httpserver/routes_daily.go
//
// HTTP route for the "Daily Challenge" mode.
//   - POST /daily/new → start a round whose target is today's word
//
// The target is chosen deterministically from the date and a salt, so every
// client gets the same word on the same UTC day. Rounds are ordinary live
// matches; nothing about them outlives the process.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kiittsunne/wardle/internal/daily"
	"github.com/kiittsunne/wardle/internal/game"
	"github.com/kiittsunne/wardle/internal/match"
)

// dailyReq is the body of /daily/new.
type dailyReq struct {
	Mode string `json:"mode"`
}

// mountDaily registers the /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
	})
}

// dailyWord returns today's date key and target.
func (s *Server) dailyWord() (date, word string, ok bool) {
	now := s.now().UTC()
	pool := s.matches.Dictionary().TargetPool(s.cfg.DistinctTargets)
	word, ok = daily.Word(now, s.cfg.DailySalt, pool)
	return daily.DateKey(now), word, ok
}

// handleDailyNew starts a round on today's word.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	var req dailyReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	date, word, ok := s.dailyWord()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no_words")
		return
	}
	m, err := s.matches.Start(game.ParseMode(req.Mode), word, match.SourceDaily)
	if err != nil {
		writeGameErr(w, r, err)
		return
	}
	if !s.save(w, r, m) {
		return
	}
	res := newGameResFor(m)
	res.Date = date
	writeJSON(w, http.StatusOK, res)
}
