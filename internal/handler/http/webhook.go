package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Jevon1999/api-presensi/internal/domain/command"
	"github.com/Jevon1999/api-presensi/internal/handler/http/response"
	"github.com/Jevon1999/api-presensi/internal/pkg/dedupe"
	"github.com/Jevon1999/api-presensi/internal/pkg/ratelimit"
	"github.com/Jevon1999/api-presensi/internal/pkg/waha"
)

const maxWebhookBody = 1 << 20

// ChatResponder sends replies back to the chat a message came from.
type ChatResponder interface {
	Reply(ctx context.Context, session, chatID string, result command.Result)
	ReplyKey(ctx context.Context, session, chatID, key string, data map[string]string)
}

type WebhookHandler interface {
	WAHA(w http.ResponseWriter, r *http.Request)
}

type webhookHandlerImpl struct {
	dispatcher command.Dispatcher
	responder  ChatResponder
	verifier   *waha.WebhookVerifier
	seen       dedupe.Store
	limiter    *ratelimit.KeyedLimiter
}

func NewWebhookHandler(
	dispatcher command.Dispatcher,
	responder ChatResponder,
	verifier *waha.WebhookVerifier,
	seen dedupe.Store,
	limiter *ratelimit.KeyedLimiter,
) WebhookHandler {
	return &webhookHandlerImpl{
		dispatcher: dispatcher,
		responder:  responder,
		verifier:   verifier,
		seen:       seen,
		limiter:    limiter,
	}
}

func ignored(w http.ResponseWriter, reason string) {
	response.SuccessWithMessage(w, "ignored", map[string]string{"reason": reason})
}

// WAHA implements WebhookHandler. It always answers quickly; the reply to
// the member is delivered in the background.
func (h *webhookHandlerImpl) WAHA(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		slog.Error("webhook read error", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if h.verifier.Enabled() && !h.verifier.Verify(body, r.Header.Get(waha.HeaderHMAC)) {
		slog.Warn("webhook signature mismatch", "remote_addr", r.RemoteAddr)
		response.Unauthorized(w, "Invalid webhook signature")
		return
	}

	var event waha.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		slog.Error("webhook decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if !event.IsMessage() {
		ignored(w, "event")
		return
	}

	msg := event.Payload
	switch {
	case msg.FromMe:
		ignored(w, "from_me")
		return
	case msg.IsGroup():
		ignored(w, "group")
		return
	}

	caption := strings.TrimSpace(msg.Caption())
	if caption == "" && msg.Location == nil {
		ignored(w, "empty")
		return
	}

	ctx := r.Context()
	if msg.ID != "" {
		first, err := h.seen.FirstSeen(ctx, msg.ID)
		if err != nil {
			// a broken dedupe store must not drop messages
			slog.Warn("webhook dedupe unavailable", "message_id", msg.ID, "error", err)
		} else if !first {
			ignored(w, "duplicate")
			return
		}
	}

	if !h.limiter.Allow(msg.From) {
		slog.Warn("webhook sender rate limited", "from", msg.From)
		ignored(w, "rate_limited")
		return
	}

	if caption == "" {
		h.responder.ReplyKey(ctx, event.Session, msg.From, command.MsgLocationCaptionFirst, nil)
		response.SuccessWithMessage(w, "processed", nil)
		return
	}

	kind, freeText := command.ParseChatText(caption)
	cmd := command.Command{
		Kind:      kind,
		MemberKey: chatMemberKey(msg.From),
		FreeText:  freeText,
		Channel:   command.ChannelChat,
	}
	if msg.Location != nil {
		cmd.Coordinates = &command.Coordinates{
			Latitude:  float64(msg.Location.Latitude),
			Longitude: float64(msg.Location.Longitude),
		}
	}

	result, err := h.dispatcher.Dispatch(ctx, cmd)
	if err != nil {
		slog.Error("webhook dispatch error", "from", msg.From, "kind", kind, "error", err)
	}

	h.responder.Reply(ctx, event.Session, msg.From, result)
	response.SuccessWithMessage(w, "processed", map[string]string{"kind": string(kind)})
}

// chatMemberKey drops the WhatsApp server suffix from a chat id.
func chatMemberKey(chatID string) string {
	if at := strings.IndexByte(chatID, '@'); at >= 0 {
		return chatID[:at]
	}
	return chatID
}
