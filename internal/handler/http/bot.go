package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Jevon1999/api-presensi/internal/config"
	"github.com/Jevon1999/api-presensi/internal/handler/http/response"
)

type BotHandler interface {
	Reload(w http.ResponseWriter, r *http.Request)
	Config(w http.ResponseWriter, r *http.Request)
}

type botHandlerImpl struct {
	store config.BotConfigStore
}

func NewBotHandler(store config.BotConfigStore) BotHandler {
	return &botHandlerImpl{store: store}
}

type botConfigResponse struct {
	Session          string   `json:"session"`
	SendTimeout      string   `json:"send_timeout"`
	TypingDelay      string   `json:"typing_delay"`
	MarkMessagesRead bool     `json:"mark_messages_read"`
	ReminderEnabled  bool     `json:"reminder_enabled"`
	ReminderCheckIn  string   `json:"reminder_check_in"`
	ReminderCheckOut string   `json:"reminder_check_out"`
	Templates        []string `json:"templates"`
	LoadedAt         string   `json:"loaded_at"`
}

func toBotConfigResponse(cfg *config.BotConfig) botConfigResponse {
	return botConfigResponse{
		Session:          cfg.Session,
		SendTimeout:      cfg.SendTimeout.String(),
		TypingDelay:      cfg.TypingDelay.String(),
		MarkMessagesRead: cfg.MarkMessagesRead,
		ReminderEnabled:  cfg.ReminderEnabled,
		ReminderCheckIn:  cfg.ReminderCheckIn,
		ReminderCheckOut: cfg.ReminderCheckOut,
		Templates:        cfg.TemplateKeys(),
		LoadedAt:         cfg.LoadedAt.Format(time.RFC3339),
	}
}

// Reload implements BotHandler. A failed reload keeps the running config.
func (h *botHandlerImpl) Reload(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.Reload()
	if err != nil {
		slog.Error("bot config reload failed", "error", err)
		response.BadRequest(w, "Bot config reload failed: "+err.Error(), nil)
		return
	}

	slog.Info("bot config reloaded", "templates", len(cfg.TemplateKeys()))
	response.SuccessWithMessage(w, "Bot config reloaded", toBotConfigResponse(cfg))
}

// Config implements BotHandler.
func (h *botHandlerImpl) Config(w http.ResponseWriter, r *http.Request) {
	response.Success(w, toBotConfigResponse(h.store.Current()))
}
