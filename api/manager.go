package api

import (
	"cblls_server/api/admin"
	"cblls_server/api/auth"
	"cblls_server/api/health"
	"cblls_server/api/products"
	"cblls_server/api/storefront"

	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	productRoutes    *products.ProductRoutesManager
	storefrontRoutes *storefront.StorefrontRoutesManager
	healthRoutes     *health.HealthRoutesManager
	authRoutes       *auth.AuthRoutesManager
	adminRoutes      *admin.AdminRoutesManager
}

func NewRouterManager(
	productRoutes *products.ProductRoutesManager,
	storefrontRoutes *storefront.StorefrontRoutesManager,
	healthRoutes *health.HealthRoutesManager,
	authRoutes *auth.AuthRoutesManager,
	adminRoutes *admin.AdminRoutesManager,
) *routerManager {
	return &routerManager{
		productRoutes:    productRoutes,
		storefrontRoutes: storefrontRoutes,
		healthRoutes:     healthRoutes,
		authRoutes:       authRoutes,
		adminRoutes:      adminRoutes,
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.productRoutes.RegisterRoutes(r)
	rm.storefrontRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
}
