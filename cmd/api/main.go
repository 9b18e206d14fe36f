package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jevon1999/api-presensi/internal/config"
	"github.com/Jevon1999/api-presensi/internal/domain/attendance"
	"github.com/Jevon1999/api-presensi/internal/domain/member"
	"github.com/Jevon1999/api-presensi/internal/domain/office"
	"github.com/Jevon1999/api-presensi/internal/domain/progress"
	"github.com/Jevon1999/api-presensi/internal/domain/user"
	"github.com/Jevon1999/api-presensi/internal/fixtures"
	appHTTP "github.com/Jevon1999/api-presensi/internal/handler/http"
	"github.com/Jevon1999/api-presensi/internal/pkg/cron"
	"github.com/Jevon1999/api-presensi/internal/pkg/database"
	"github.com/Jevon1999/api-presensi/internal/pkg/dedupe"
	"github.com/Jevon1999/api-presensi/internal/pkg/jwt"
	"github.com/Jevon1999/api-presensi/internal/pkg/ratelimit"
	"github.com/Jevon1999/api-presensi/internal/pkg/sse"
	"github.com/Jevon1999/api-presensi/internal/pkg/waha"
	"github.com/Jevon1999/api-presensi/internal/repository/memory"
	"github.com/Jevon1999/api-presensi/internal/repository/postgresql"
	attendanceService "github.com/Jevon1999/api-presensi/internal/service/attendance"
	serviceAuth "github.com/Jevon1999/api-presensi/internal/service/auth"
	"github.com/Jevon1999/api-presensi/internal/service/chatbot"
	commandService "github.com/Jevon1999/api-presensi/internal/service/command"
	"github.com/Jevon1999/api-presensi/internal/service/geofence"
	progressService "github.com/Jevon1999/api-presensi/internal/service/progress"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	version         = "v1.0.0"
	shutdownTimeout = 15 * time.Second
	limiterIdle     = 30 * time.Minute
)

type repositories struct {
	tx         database.Transactor
	attendance attendance.AttendanceRepository
	resetLog   attendance.ResetLogRepository
	member     member.MemberRepository
	office     office.OfficeRepository
	progress   progress.ProgressRepository
	user       user.UserRepository
	close      func()
}

func main() {
	if err := run(); err != nil {
		slog.Error("api stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("app", "api-presensi")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()

	seen, closeDedupe, err := openDedupeStore(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer closeDedupe()

	botStore, err := config.NewBotConfigStore(config.EnvBotConfigLoader)
	if err != nil {
		return fmt.Errorf("failed to load bot config: %w", err)
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("failed to create jwt service: %w", err)
	}

	if cfg.Bot.WebhookSecret == "" {
		slog.Warn("WEBHOOK_SECRET not set, WAHA webhook signatures are not verified")
	}

	hub := sse.NewHub()
	wahaClient := waha.NewClient(cfg.Bot.WAHABaseURL, cfg.Bot.WAHAAPIKey, cfg.Bot.SendTimeout)
	responder := chatbot.NewResponder(wahaClient, botStore)

	attendanceSvc := attendanceService.NewAttendanceService(
		repos.tx,
		repos.attendance,
		repos.resetLog,
		repos.member,
		geofence.NewGeofenceService(repos.office),
		hub,
		attendanceService.Options{Location: cfg.App.Location, CountryCode: cfg.App.CountryCode},
	)
	progressSvc := progressService.NewProgressService(repos.progress, repos.member, hub, cfg.App.Location, cfg.App.CountryCode, time.Now)
	authSvc := serviceAuth.NewAuthService(repos.user, JWTService)
	dispatcher := commandService.NewDispatcher(attendanceSvc, progressSvc)

	limit := rate.Limit(cfg.RateLimit.RPS)
	webhookLimiter := ratelimit.NewKeyedLimiter(limit, cfg.RateLimit.Burst)
	publicLimiter := ratelimit.NewKeyedLimiter(limit, cfg.RateLimit.Burst)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Env:           cfg.App.Env,
		Version:       version,
		LogLevel:      cfg.SlogLevel(),
		CORSOrigins:   cfg.App.CORSOrigins,
		BotAPIKey:     cfg.Bot.APIKey,
		PublicLimiter: publicLimiter,
	}, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Attendance: appHTTP.NewAttendanceHandler(dispatcher, attendanceSvc, botStore),
		Progress:   appHTTP.NewProgressHandler(dispatcher, botStore),
		Webhook: appHTTP.NewWebhookHandler(
			dispatcher,
			responder,
			waha.NewWebhookVerifier(cfg.Bot.WebhookSecret),
			seen,
			webhookLimiter,
		),
		Events: appHTTP.NewEventsHandler(hub, JWTService),
		Bot:    appHTTP.NewBotHandler(botStore),
	})

	scheduler := cron.NewScheduler()
	cron.NewReminderJobs(repos.member, repos.attendance, responder, botStore, cfg.App.Location, time.Now).
		RegisterJobs(scheduler)
	scheduler.AddJob("prune_rate_limiters", 10*time.Minute, func(ctx context.Context) error {
		pruned := webhookLimiter.Prune(limiterIdle) + publicLimiter.Prune(limiterIdle)
		slog.Debug("rate limiters pruned", "removed", pruned)
		return nil
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	server.RegisterOnShutdown(hub.Close)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("http server listening", "addr", server.Addr, "storage", cfg.App.StorageDriver, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("shutting down http server")
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return scheduler.Run(gctx)
	})

	err = g.Wait()
	responder.Wait()
	slog.Info("api stopped")
	return err
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.App.StorageDriver {
	case config.StorageDriverMemory:
		data, err := fixtures.Demo(cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			return nil, err
		}
		store := memory.NewStore()
		store.Seed(data.Offices, data.Locations, data.Members, data.Users)
		slog.Warn("using in-memory storage, data is lost on restart", "members", len(data.Members))

		return &repositories{
			tx:         memory.NewTransactor(store),
			attendance: memory.NewAttendanceRepository(store),
			resetLog:   memory.NewResetLogRepository(store),
			member:     memory.NewMemberRepository(store),
			office:     memory.NewOfficeRepository(store),
			progress:   memory.NewProgressRepository(store),
			user:       memory.NewUserRepository(store),
			close:      func() {},
		}, nil

	case config.StorageDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		return &repositories{
			tx:         postgresql.NewTransactor(db),
			attendance: postgresql.NewAttendanceRepository(db),
			resetLog:   postgresql.NewResetLogRepository(db),
			member:     postgresql.NewMemberRepository(db),
			office:     postgresql.NewOfficeRepository(db),
			progress:   postgresql.NewProgressRepository(db),
			user:       postgresql.NewUserRepository(db),
			close:      db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.App.StorageDriver)
	}
}

// openDedupeStore prefers Redis so duplicate suppression survives restarts
// and is shared between replicas.
func openDedupeStore(ctx context.Context, cfg config.RedisConfig) (dedupe.Store, func(), error) {
	if cfg.Addr == "" {
		slog.Info("REDIS_ADDR not set, webhook dedupe is in-memory")
		return dedupe.NewMemoryStore(cfg.DedupeTTL), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return dedupe.NewRedisStore(rdb, cfg.DedupeTTL), func() { _ = rdb.Close() }, nil
}
