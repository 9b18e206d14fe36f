package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Jevon1999/api-presensi/internal/domain/auth"
	"github.com/Jevon1999/api-presensi/internal/handler/http/response"
	"github.com/Jevon1999/api-presensi/internal/pkg/jwt"
	"github.com/Jevon1999/api-presensi/internal/pkg/sse"
)

const sseKeepAlive = 30 * time.Second

type EventsHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventsHandlerImpl struct {
	hub        *sse.Hub
	jwtService jwt.Service
	keepAlive  time.Duration
}

func NewEventsHandler(hub *sse.Hub, jwtService jwt.Service) EventsHandler {
	return &eventsHandlerImpl{hub: hub, jwtService: jwtService, keepAlive: sseKeepAlive}
}

// Stream implements EventsHandler. EventSource cannot set headers, so the
// short-lived stream token travels in the query string.
func (h *eventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	userID, err := h.jwtService.ValidateSSEToken(r.URL.Query().Get("token"))
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming unsupported")
		return
	}

	topic := sse.TopicAll
	if officeID := r.URL.Query().Get("office_id"); officeID != "" {
		topic = sse.OfficeTopic(officeID)
	}

	events, unsubscribe := h.hub.Subscribe(topic)
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "event: connected\ndata: {\"topic\":%q}\n\n", topic)
	flusher.Flush()
	slog.Info("event stream opened", "user_id", userID, "topic", topic)

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			slog.Info("event stream closed", "user_id", userID, "topic", topic)
			return
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("event encode error", "event", event.Event, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()
		}
	}
}
