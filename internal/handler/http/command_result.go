package http

import (
	"net/http"

	"github.com/Jevon1999/api-presensi/internal/config"
	"github.com/Jevon1999/api-presensi/internal/domain/command"
	"github.com/Jevon1999/api-presensi/internal/handler/http/response"
	"github.com/Jevon1999/api-presensi/internal/service/chatbot"
)

var outcomeErrorCodes = map[command.Outcome]string{
	command.OutcomeConflict: "CONFLICT",
	command.OutcomeDenied:   "FORBIDDEN",
	command.OutcomeNotFound: "NOT_FOUND",
	command.OutcomeInvalid:  "VALIDATION_ERROR",
	command.OutcomeUnknown:  "BAD_REQUEST",
}

// statusForOutcome maps a dispatcher outcome to an HTTP status. created
// selects 201 for commands that insert a row.
func statusForOutcome(outcome command.Outcome, created bool) int {
	switch outcome {
	case command.OutcomeSuccess:
		if created {
			return http.StatusCreated
		}
		return http.StatusOK
	case command.OutcomeInfo:
		return http.StatusOK
	case command.OutcomeConflict:
		return http.StatusConflict
	case command.OutcomeDenied:
		return http.StatusForbidden
	case command.OutcomeNotFound:
		return http.StatusNotFound
	case command.OutcomeInvalid:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// writeCommandResult renders a dispatcher result as JSON. The message is the
// same text the chat channel would send.
func writeCommandResult(w http.ResponseWriter, bot config.BotConfigStore, result command.Result, created bool) {
	message := chatbot.RenderResult(bot.Current(), result)
	status := statusForOutcome(result.Outcome, created)

	if result.Succeeded() {
		response.Write(w, status, response.Response{
			Success: true,
			Message: message,
			Data:    result.Payload,
		})
		return
	}

	response.Write(w, status, response.Response{
		Success: false,
		Data:    result.Payload,
		Error: &response.ErrorDetail{
			Code:    outcomeErrorCodes[result.Outcome],
			Message: message,
			Details: result.Fields,
		},
	})
}
