package admin

import (
	"net/http"

	"cblls_server/handling"
	"cblls_server/lib"
	"cblls_server/structs"

	"github.com/MonkyMars/gecho"
)

// SaveProduct handles POST /admin/products, creating or updating a
// product in one operation. A zero identifier means create; the response
// carries the product as stored, with the assigned identifier and the
// recomputed stock and price.
func (arm *AdminRoutesManager) SaveProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.Product](r)
	if err != nil {
		arm.logger.Warn("Invalid product payload", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Please check the product data and try again"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	saved, err := arm.store.SaveProduct(r.Context(), *body)
	if err != nil {
		handling.RespondStoreError(err, arm.logger, w)
		return
	}

	arm.logger.Info("Product saved", gecho.Field("product_id", saved.ID), gecho.Field("name", saved.Name))

	gecho.Success(w,
		gecho.WithMessage("Product saved successfully"),
		gecho.WithData(map[string]any{
			"product": saved,
		}),
		gecho.Send(),
	)
}
