package auth

import (
	"cblls_server/api/middleware"
	"cblls_server/services"
	"cblls_server/store"
	"cblls_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AuthRoutesManager struct {
	logger         *gecho.Logger
	store          *store.Store
	accountService *services.AccountService
	cfg            *structs.Config
	mw             *middleware.Middleware
}

func NewAuthRoutesManager(
	logger *gecho.Logger,
	st *store.Store,
	accountService *services.AccountService,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:         logger,
		store:          st,
		accountService: accountService,
		cfg:            cfg,
		mw:             mw,
	}
}

func (arm *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		// CSRF token endpoint (must be called before protected routes)
		r.Get("/csrf", arm.HandleCSRF)

		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(arm.mw.CSRFMiddleware())
			r.Post("/register", arm.HandleRegister)
			r.Post("/login", arm.HandleLogin)
			r.Post("/logout", arm.HandleLogout)
			r.Post("/recover-password", arm.HandleRecoverPassword)
			r.Post("/reset-password", arm.HandleResetPassword)
			r.Post("/resend-verification", arm.HandleResendVerification)
		})
		r.Get("/me", arm.HandleMe)
		r.Get("/verify-email", arm.HandleVerifyEmail)
		r.Post("/refresh-session", arm.HandleRefreshSession)
	})
}
