package middleware

import (
	"cblls_server/services"
	"cblls_server/structs"

	"github.com/MonkyMars/gecho"
)

type Middleware struct {
	cfg            *structs.Config
	logger         *gecho.Logger
	accountService *services.AccountService
	limiter        *rateLimiter
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, accountService *services.AccountService) *Middleware {
	return &Middleware{
		cfg:            cfg,
		logger:         logger,
		accountService: accountService,
		limiter:        newRateLimiter(),
	}
}
