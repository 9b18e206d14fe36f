package http

import (
	"log/slog"
	"os"

	"github.com/Jevon1999/api-presensi/internal/handler/http/middleware"
	"github.com/Jevon1999/api-presensi/internal/pkg/jwt"
	"github.com/Jevon1999/api-presensi/internal/pkg/ratelimit"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Env         string
	Version     string
	LogLevel    slog.Level
	CORSOrigins []string
	BotAPIKey   string
	// PublicLimiter throttles the bot-key endpoints per client address.
	PublicLimiter *ratelimit.KeyedLimiter
}

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Progress   ProgressHandler
	Webhook    WebhookHandler
	Events     EventsHandler
	Bot        BotHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
		Level:       cfg.LogLevel,
	})).With(
		slog.String("app", "api-presensi"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.HeaderBotAPIKey},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService))
				r.Post("/logout", h.Auth.Logout)
				r.Get("/me", h.Auth.Me)
				r.Post("/sse-token", h.Auth.SSEToken)
			})
		})

		// WAHA calls this; authenticity comes from the optional HMAC.
		r.Post("/webhook/waha", h.Webhook.WAHA)

		// Stream token is checked by the handler.
		r.Get("/events/stream", h.Events.Stream)

		// Bot gateway endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.BotAPIKey(cfg.BotAPIKey))
			if cfg.PublicLimiter != nil {
				r.Use(middleware.RateLimitByIP(cfg.PublicLimiter))
			}
			r.Post("/attendance/check-in", h.Attendance.CheckIn)
			r.Post("/attendance/check-out", h.Attendance.CheckOut)
			r.Get("/attendance/status", h.Attendance.Status)
			r.Post("/progress", h.Progress.Create)
		})

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(middleware.AdminOnly)

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/report", h.Attendance.Report)
				r.Get("/{id}", h.Attendance.Get)
				r.Put("/{id}/reset", h.Attendance.Reset)
				r.Post("/{id}/reset", h.Attendance.Reset)
			})

			r.Route("/bot", func(r chi.Router) {
				r.Get("/config", h.Bot.Config)
				r.Post("/reload", h.Bot.Reload)
			})
		})
	})
	return r
}
