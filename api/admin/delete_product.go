package admin

import (
	"net/http"
	"strconv"

	"cblls_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// DeleteProduct handles DELETE /admin/products/{id}. Deleting an absent
// product succeeds; the operation is idempotent.
func (arm *AdminRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id == 0 {
		arm.logger.Warn("Invalid product ID format", gecho.Field("id", idStr))
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid product ID"),
			gecho.Send(),
		)
		return
	}

	if err := arm.store.DeleteProduct(r.Context(), id); err != nil {
		handling.RespondStoreError(err, arm.logger, w)
		return
	}

	arm.logger.Info("Product deleted", gecho.Field("product_id", id))

	gecho.Success(w,
		gecho.WithMessage("Product deleted successfully"),
		gecho.Send(),
	)
}
