package products

import (
	"cblls_server/store"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProductRoutesManager struct {
	logger *gecho.Logger
	store  *store.Store
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	st *store.Store,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger: logger,
		store:  st,
	}
}

func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/products", prm.FetchAllProducts)
	r.Get("/products/{id}", prm.FetchProductByID)
	r.Get("/events/products", prm.StreamProducts)
}
