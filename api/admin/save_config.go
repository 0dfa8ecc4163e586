package admin

import (
	"errors"
	"net/http"

	"cblls_server/handling"
	"cblls_server/lib"
	"cblls_server/store"
	"cblls_server/structs"

	"github.com/MonkyMars/gecho"
)

// SaveConfig handles PUT /admin/config, replacing the whole
// configuration document. Slide and category bounds are enforced by the
// store; violations come back as 400s with the store's message.
func (arm *AdminRoutesManager) SaveConfig(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AppConfig](r)
	if err != nil {
		arm.logger.Warn("Invalid config payload", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Please check the configuration data and try again"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	saved, err := arm.store.SaveConfig(r.Context(), *body)
	if err != nil {
		if isConfigBoundsError(err) {
			gecho.BadRequest(w,
				gecho.WithMessage(err.Error()),
				gecho.Send(),
			)
			return
		}
		handling.RespondStoreError(err, arm.logger, w)
		return
	}

	arm.logger.Info("Configuration saved",
		gecho.Field("categories", len(saved.Categories)),
		gecho.Field("header_slides", len(saved.HeaderSlides)),
	)

	gecho.Success(w,
		gecho.WithMessage("Configuration saved successfully"),
		gecho.WithData(map[string]any{
			"config": saved,
		}),
		gecho.Send(),
	)
}

func isConfigBoundsError(err error) bool {
	return errors.Is(err, store.ErrNoCategories) ||
		errors.Is(err, store.ErrNoSlides) ||
		errors.Is(err, store.ErrTooManySlides) ||
		errors.Is(err, store.ErrUnknownIcon)
}
