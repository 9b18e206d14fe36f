package chatbot

import (
	"regexp"
	"strings"

	"github.com/Jevon1999/api-presensi/internal/config"
	"github.com/Jevon1999/api-presensi/internal/domain/command"
)

var placeholder = regexp.MustCompile(`\{([a-z_]+)\}`)

// Render fills the template for key with data. Unknown keys fall back to
// the generic error template, missing values render as "-".
func Render(cfg *config.BotConfig, key string, data map[string]string) string {
	text, ok := cfg.Template(key)
	if !ok {
		text, ok = cfg.Template(command.MsgError)
		if !ok {
			return "Terjadi kesalahan."
		}
	}

	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		name := strings.Trim(match, "{}")
		if v, ok := data[name]; ok && v != "" {
			return v
		}
		return "-"
	})
}

// RenderResult renders a dispatcher result.
func RenderResult(cfg *config.BotConfig, result command.Result) string {
	return Render(cfg, result.MessageKey, result.Data)
}
