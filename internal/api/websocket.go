package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"manachat.ai/manachat/internal/core"
	"manachat.ai/manachat/internal/store"
)

type wsClientMessage struct {
	Type string `json:"type"` // "message" or "retry"
	Text string `json:"text,omitempty"`
}

type wsServerMessage struct {
	Type    string             `json:"type"` // "delta", "done", "error", "rejected"
	Message *store.ChatMessage `json:"message,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// ChatStreamHandler upgrades to a WebSocket and exchanges messages for one
// open conversation. Each client message drives one streaming exchange; the
// server emits a delta per fragment, then done or error. The engine's
// awaiting flag keeps exchanges single-flight, so rejected sends surface as
// "rejected" frames without touching the transcript.
func (h *APIHandler) ChatStreamHandler(w http.ResponseWriter, r *http.Request) {
	personaID := chi.URLParam(r, "personaID")

	if _, ok := h.ctrl.User(); !ok {
		http.Error(w, "No active profile", http.StatusUnauthorized)
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // In production, validate origin
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		var req wsClientMessage
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Str("persona_id", personaID).Msg("chat socket closed")
			}
			return
		}

		onDelta := func(msg store.ChatMessage) {
			if err := conn.WriteJSON(wsServerMessage{Type: "delta", Message: &msg}); err != nil {
				log.Debug().Err(err).Msg("failed to write delta frame")
			}
		}

		var exchangeErr error
		switch req.Type {
		case "retry":
			exchangeErr = h.engine.Retry(r.Context(), personaID, onDelta)
		default:
			exchangeErr = h.engine.Send(r.Context(), personaID, req.Text, onDelta)
		}

		switch {
		case exchangeErr == nil:
			conn.WriteJSON(wsServerMessage{Type: "done"})
		case errors.Is(exchangeErr, core.ErrEmptyMessage),
			errors.Is(exchangeErr, core.ErrBusy),
			errors.Is(exchangeErr, core.ErrNoSession):
			conn.WriteJSON(wsServerMessage{Type: "rejected", Error: exchangeErr.Error()})
		default:
			// The engine already appended the terminal error entry.
			msgs := h.engine.History(personaID)
			frame := wsServerMessage{Type: "error", Error: exchangeErr.Error()}
			if n := len(msgs); n > 0 && msgs[n-1].IsError {
				frame.Message = &msgs[n-1]
			}
			conn.WriteJSON(frame)
		}
	}
}
