package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hoptimisten/hoptimisten-backend/api/controllers"
	"github.com/hoptimisten/hoptimisten-backend/api/middleware"
	"github.com/hoptimisten/hoptimisten-backend/internal/auth"
	"github.com/hoptimisten/hoptimisten-backend/internal/events"
	"github.com/hoptimisten/hoptimisten-backend/internal/eventtypes"
	"github.com/hoptimisten/hoptimisten-backend/internal/games"
	"github.com/hoptimisten/hoptimisten-backend/internal/notifications"
	"github.com/hoptimisten/hoptimisten-backend/internal/payments"
	"github.com/hoptimisten/hoptimisten-backend/internal/players"
	"github.com/hoptimisten/hoptimisten-backend/internal/rounds"
	"github.com/hoptimisten/hoptimisten-backend/internal/statistics"
	"github.com/hoptimisten/hoptimisten-backend/pkg/config"
	"github.com/hoptimisten/hoptimisten-backend/pkg/db"
	"github.com/hoptimisten/hoptimisten-backend/pkg/logger"
	"github.com/hoptimisten/hoptimisten-backend/pkg/redis"
)

// Services bundles the domain services consumed by the HTTP surface.
type Services struct {
	Auth          auth.Service
	Players       players.Service
	Games         games.Service
	Rounds        rounds.Service
	EventTypes    eventtypes.Service
	Events        events.Service
	Payments      payments.Service
	Statistics    statistics.Service
	Notifications notifications.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/login", controllers.AuthLogin(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/players", func(r chi.Router) {
			r.Get("/", controllers.PlayerList(svcs.Players, logg))
			r.Post("/", controllers.PlayerCreate(svcs.Players, logg))
			r.Get("/{playerId}", controllers.PlayerGet(svcs.Players, logg))
			r.Patch("/{playerId}", controllers.PlayerUpdate(svcs.Players, logg))
			r.Delete("/{playerId}", controllers.PlayerDeactivate(svcs.Players, logg))
		})

		r.Route("/games", func(r chi.Router) {
			r.Get("/", controllers.GameList(svcs.Games, logg))
			r.Post("/", controllers.GameCreate(svcs.Games, logg))
			r.Route("/{gameId}", func(r chi.Router) {
				r.Get("/", controllers.GameGet(svcs.Games, logg))
				r.Patch("/", controllers.GameUpdate(svcs.Games, logg))
				r.Delete("/", controllers.GameDelete(svcs.Games, logg))
				r.Post("/complete", controllers.GameComplete(svcs.Games, logg))
				r.Route("/rounds", func(r chi.Router) {
					r.Get("/", controllers.RoundList(svcs.Rounds, logg))
					r.Post("/", controllers.RoundCreate(svcs.Rounds, logg))
				})
				r.Get("/events", controllers.EventList(svcs.Events, logg))
				r.Get("/payments", controllers.PaymentListByGame(svcs.Payments, logg))
			})
		})

		r.Delete("/rounds/{roundId}", controllers.RoundDelete(svcs.Rounds, logg))

		r.Route("/event-types", func(r chi.Router) {
			r.Get("/", controllers.EventTypeList(svcs.EventTypes, logg))
			r.Post("/", controllers.EventTypeCreate(svcs.EventTypes, logg))
			r.Patch("/{eventTypeId}", controllers.EventTypeUpdate(svcs.EventTypes, logg))
			r.Delete("/{eventTypeId}", controllers.EventTypeDelete(svcs.EventTypes, logg))
		})

		r.Route("/events", func(r chi.Router) {
			r.Post("/", controllers.EventCreate(svcs.Events, logg))
			r.Delete("/{eventId}", controllers.EventDelete(svcs.Events, logg))
		})

		r.Patch("/payments/{paymentId}", controllers.PaymentUpdate(svcs.Payments, logg))

		r.Route("/statistics", func(r chi.Router) {
			r.Get("/penalties", controllers.StatisticsPenalties(svcs.Statistics, logg))
			r.Get("/streaks", controllers.StatisticsStreaks(svcs.Statistics, logg))
		})

		r.Route("/push/subscriptions", func(r chi.Router) {
			r.Post("/", controllers.PushSubscribe(svcs.Notifications, logg))
			r.Delete("/", controllers.PushUnsubscribe(svcs.Notifications, logg))
		})
	})

	return r
}
