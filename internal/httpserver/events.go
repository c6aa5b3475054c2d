package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/kiittsunne/wardle/internal/reveal"
)

const (
	eventBuffer = 64
	writeWait   = 5 * time.Second
	pingEvery   = 30 * time.Second
)

// upgrader accepts connections from the configured client origin, or from
// clients that send no Origin header.
func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			o := r.Header.Get("Origin")
			return o == "" || o == s.cfg.ClientOrigin || o == "http://"+r.Host
		},
	}
}

// handleEvents streams a round's reveal events over a WebSocket until the
// client goes away.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	up := s.upgrader()
	ws, err := up.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("req", chimw.GetReqID(r.Context())).Msg("websocket upgrade")
		return
	}
	defer ws.Close()

	events, stop := m.Feed().Subscribe(eventBuffer)
	defer stop()

	// Reader: only needed to notice the peer closing.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := ws.NextReader(); err != nil {
				return
			}
		}
	}()

	// Send the current state first so late joiners can draw the grid.
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := ws.WriteJSON(map[string]any{"kind": "snapshot", "round": m.Round().Snapshot()}); err != nil {
		return
	}

	ping := time.NewTicker(pingEvery)
	defer ping.Stop()
	for {
		select {
		case <-gone:
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteJSON(e); err != nil {
				log.Debug().Err(err).Str("round", m.ID()).Msg("websocket write")
				return
			}
			if e.Kind == reveal.KindFinished {
				_ = ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, e.Message),
					time.Now().Add(writeWait))
				return
			}
		case <-ping.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
