package admin

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// ListProducts handles GET /admin/products. Unlike the public listing
// this returns the raw collection, inactive products included.
func (arm *AdminRoutesManager) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := arm.store.Products()

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products": products,
			"meta": map[string]any{
				"count": len(products),
			},
		}),
		gecho.Send(),
	)
}
