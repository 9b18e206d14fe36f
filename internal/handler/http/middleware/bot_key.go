package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/Jevon1999/api-presensi/internal/domain/auth"
	"github.com/Jevon1999/api-presensi/internal/handler/http/response"
)

const HeaderBotAPIKey = "X-Bot-Api-Key"

// BotAPIKey guards the endpoints the bot gateway calls on behalf of members.
func BotAPIKey(key string) func(http.Handler) http.Handler {
	expected := []byte(key)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(HeaderBotAPIKey))
			if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
				slog.Warn("rejected bot api key", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
				response.HandleError(w, auth.ErrInvalidBotAPIKey)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
