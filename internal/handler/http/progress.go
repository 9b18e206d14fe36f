package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Jevon1999/api-presensi/internal/config"
	"github.com/Jevon1999/api-presensi/internal/domain/command"
	"github.com/Jevon1999/api-presensi/internal/handler/http/response"
)

type ProgressHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
}

type progressHandlerImpl struct {
	dispatcher command.Dispatcher
	bot        config.BotConfigStore
}

func NewProgressHandler(dispatcher command.Dispatcher, bot config.BotConfigStore) ProgressHandler {
	return &progressHandlerImpl{dispatcher: dispatcher, bot: bot}
}

type progressRequest struct {
	Phone       string `json:"phone"`
	NoHP        string `json:"no_hp"`
	Description string `json:"description"`
}

// Create implements ProgressHandler.
func (h *progressHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("progress decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	key := req.Phone
	if key == "" {
		key = req.NoHP
	}

	result, err := h.dispatcher.Dispatch(r.Context(), command.Command{
		Kind:      command.KindProgressNote,
		MemberKey: key,
		FreeText:  req.Description,
		Channel:   command.ChannelREST,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeCommandResult(w, h.bot, result, true)
}
