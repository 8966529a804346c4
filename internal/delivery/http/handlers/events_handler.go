package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/gorilla/mux"
)

type EventSource interface {
	Subscribe(userID string) (<-chan domain.Event, func())
	Subscribers(userID string) int
}

// EventsHandler streams a user's order and balance changes as server-sent events.
type EventsHandler struct {
	source    EventSource
	heartbeat time.Duration
}

func NewEventsHandler(source EventSource, heartbeat time.Duration) *EventsHandler {
	if heartbeat <= 0 {
		heartbeat = 25 * time.Second
	}
	return &EventsHandler{source: source, heartbeat: heartbeat}
}

func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "streaming unsupported"})
		return
	}
	userID := mux.Vars(r)["userID"]

	events, unsubscribe := h.source.Subscribe(userID)
	defer unsubscribe()
	slog.Debug("event stream opened", "user_id", userID, "streams", h.source.Subscribers(userID))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				slog.Error("failed to encode event", "user_id", userID, "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
