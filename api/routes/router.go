package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/javiercanto/orderdesk-backend/api/controllers"
	"github.com/javiercanto/orderdesk-backend/api/middleware"
	"github.com/javiercanto/orderdesk-backend/internal/auth"
	"github.com/javiercanto/orderdesk-backend/internal/orders"
	"github.com/javiercanto/orderdesk-backend/pkg/auth/session"
	"github.com/javiercanto/orderdesk-backend/pkg/config"
	"github.com/javiercanto/orderdesk-backend/pkg/logger"
	"github.com/javiercanto/orderdesk-backend/pkg/redis"
	"github.com/javiercanto/orderdesk-backend/pkg/sheets"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	sheetsClient sheets.Pinger,
	redisClient redis.Pinger,
	sessionChecker session.AccessSessionChecker,
	authService auth.Service,
	orderService orders.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, sheetsClient, redisClient))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", controllers.Login(authService, logg))
		r.Post("/refresh", controllers.Refresh(authService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
			r.Post("/logout", controllers.Logout(authService, logg))
		})
	})

	r.Route("/orders", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))

		r.Post("/", controllers.CreateOrder(orderService, logg))
		r.Get("/", controllers.ListOrders(orderService, logg))
		r.Get("/{orderID}", controllers.GetOrder(orderService, logg))
		r.Put("/{orderID}", controllers.UpdateOrder(orderService, logg))
		r.Delete("/{orderID}", controllers.DeleteOrder(orderService, logg))
	})

	return r
}
