package admin

import (
	"cblls_server/api/middleware"
	"cblls_server/store"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger *gecho.Logger
	store  *store.Store
	mw     *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	st *store.Store,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger: logger,
		store:  st,
		mw:     mw,
	}
}

func (arm *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(arm.mw.UserAuthMiddleware)
		r.Use(arm.mw.AdminAuthMiddleware)
		r.Use(arm.mw.CSRFMiddleware())

		r.Get("/products", arm.ListProducts)
		r.Post("/products", arm.SaveProduct)
		r.Put("/products", arm.SaveProduct)
		r.Delete("/products/{id}", arm.DeleteProduct)
		r.Put("/config", arm.SaveConfig)
	})
}
