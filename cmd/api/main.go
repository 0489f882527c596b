package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hoptimisten/hoptimisten-backend/api/routes"
	"github.com/hoptimisten/hoptimisten-backend/internal/auth"
	"github.com/hoptimisten/hoptimisten-backend/internal/events"
	"github.com/hoptimisten/hoptimisten-backend/internal/eventtypes"
	"github.com/hoptimisten/hoptimisten-backend/internal/games"
	"github.com/hoptimisten/hoptimisten-backend/internal/notifications"
	"github.com/hoptimisten/hoptimisten-backend/internal/payments"
	"github.com/hoptimisten/hoptimisten-backend/internal/players"
	"github.com/hoptimisten/hoptimisten-backend/internal/rounds"
	"github.com/hoptimisten/hoptimisten-backend/internal/statistics"
	"github.com/hoptimisten/hoptimisten-backend/internal/users"
	"github.com/hoptimisten/hoptimisten-backend/pkg/config"
	"github.com/hoptimisten/hoptimisten-backend/pkg/db"
	"github.com/hoptimisten/hoptimisten-backend/pkg/logger"
	"github.com/hoptimisten/hoptimisten-backend/pkg/metrics"
	"github.com/hoptimisten/hoptimisten-backend/pkg/migrate"
	"github.com/hoptimisten/hoptimisten-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gorm := dbClient.DB()

	userService, err := users.NewService(users.NewRepository(gorm), cfg.Password)
	exitOnError(logg, "users service", err)

	authService, err := auth.NewService(auth.ServiceParams{
		Users:  userService,
		JWT:    cfg.JWT,
		Logger: logg,
	})
	exitOnError(logg, "auth service", err)

	playerService, err := players.NewService(players.NewRepository(gorm))
	exitOnError(logg, "players service", err)

	statisticsService, err := statistics.NewService(statistics.NewRepository(gorm))
	exitOnError(logg, "statistics service", err)

	reconcileMetrics := metrics.NewReconcileMetrics(prometheus.DefaultRegisterer)

	paymentService, err := payments.NewService(payments.ServiceParams{
		Repo:      payments.NewRepository(gorm),
		Penalties: statisticsService,
		Players:   playerService,
		Locker:    redisClient,
		Metrics:   reconcileMetrics,
		Logger:    logg,
		LockTTL:   cfg.Reconcile.LockTTL,
	})
	exitOnError(logg, "payments service", err)

	notificationService, err := notifications.NewService(notifications.ServiceParams{
		Repo:   notifications.NewRepository(gorm),
		Sender: notifications.NewWebPushSender(cfg.Push),
		Logger: logg,
	})
	exitOnError(logg, "notifications service", err)

	gameService, err := games.NewService(games.ServiceParams{
		Repo:        games.NewRepository(gorm),
		Reconciler:  paymentService,
		Broadcaster: notificationService,
		Logger:      logg,
	})
	exitOnError(logg, "games service", err)

	roundService, err := rounds.NewService(rounds.NewRepository(gorm), gameService)
	exitOnError(logg, "rounds service", err)

	eventTypeService, err := eventtypes.NewService(eventtypes.NewRepository(gorm))
	exitOnError(logg, "event types service", err)

	eventService, err := events.NewService(events.ServiceParams{
		Repo:       events.NewRepository(gorm),
		Games:      gameService,
		EventTypes: eventTypeService,
	})
	exitOnError(logg, "events service", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, routes.Services{
			Auth:          authService,
			Players:       playerService,
			Games:         gameService,
			Rounds:        roundService,
			EventTypes:    eventTypeService,
			Events:        eventService,
			Payments:      paymentService,
			Statistics:    statisticsService,
			Notifications: notificationService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func exitOnError(logg *logger.Logger, what string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+what, err)
	os.Exit(1)
}
