package storefront

import (
	"cblls_server/store"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// StorefrontRoutesManager serves the public shop surface that is not
// product data: the merged configuration and the contact deep links.
type StorefrontRoutesManager struct {
	logger *gecho.Logger
	store  *store.Store
}

func NewStorefrontRoutesManager(
	logger *gecho.Logger,
	st *store.Store,
) *StorefrontRoutesManager {
	return &StorefrontRoutesManager{
		logger: logger,
		store:  st,
	}
}

func (srm *StorefrontRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/config", srm.FetchConfig)
	r.Get("/events/config", srm.StreamConfig)
	r.Get("/contact/whatsapp", srm.WhatsAppContact)
	r.Get("/contact/email", srm.EmailContact)
}
