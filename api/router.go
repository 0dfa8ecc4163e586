package api

import (
	"net/http"

	"cblls_server/api/admin"
	"cblls_server/api/auth"
	"cblls_server/api/health"
	"cblls_server/api/middleware"
	"cblls_server/api/products"
	"cblls_server/api/storefront"
	"cblls_server/config"
	"cblls_server/services"
	"cblls_server/storage"
	"cblls_server/store"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

func App(st *store.Store, accountService *services.AccountService) chi.Router {
	r := chi.NewRouter()

	// create loggers
	logLevel := gecho.ParseLogLevel(config.GetLogLevel())
	mwLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(false), gecho.WithLogLevel(logLevel)))
	standardLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(true), gecho.WithLogLevel(logLevel)))

	cfg := config.GetConfig()
	backend := storage.GetInstance()

	// Initialize middleware
	mw := middleware.NewMiddleware(cfg, mwLogger, accountService)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)

	// Limits & security
	r.Use(mw.BodyLimit(10 * 1024 * 1024))
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(gecho.Handlers.CreateLoggingMiddleware(mwLogger))
	r.Use(middleware.MetricsMiddleware)

	// CORS (must be before auth / csrf)
	r.Use(mw.SetupCORS().Handler)

	// Throttling
	r.Use(mw.RateLimitMiddleware())

	// Register all routes
	NewRouterManager(
		products.NewProductRoutesManager(standardLogger, st),
		storefront.NewStorefrontRoutesManager(standardLogger, st),
		health.NewHealthRoutesManager(standardLogger, backend),
		auth.NewAuthRoutesManager(standardLogger, st, accountService, cfg, mw),
		admin.NewAdminRoutesManager(standardLogger, st, mw),
	).RegisterRoutes(r)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		gecho.Success(w,
			gecho.WithMessage("Welcome to the CBLLS API"),
			gecho.Send(),
		)
	})

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.Send(),
		)
	})

	return r
}
