package products

import (
	"net/http"
	"strconv"

	"cblls_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// FetchAllProducts handles GET /products with filtering, pagination and sorting
func (p *ProductRoutesManager) FetchAllProducts(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseCatalogListOptions(r)
	if err != nil {
		p.logger.Warn("Invalid query parameters", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid query parameters"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	// the public listing hides inactive products unless the filter is
	// explicit; the admin surface has its own unfiltered listing
	if opts.IsActive == nil {
		active := true
		opts.IsActive = &active
	}

	products := handling.FilterProducts(p.store.Products(), opts)

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

// FetchProductByID handles GET /products/{id} to fetch a single product
func (p *ProductRoutesManager) FetchProductByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id == 0 {
		p.logger.Warn("Invalid product ID format", gecho.Field("id", idStr))
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid product ID"),
			gecho.Send(),
		)
		return
	}

	for _, product := range p.store.Products() {
		if product.ID == id {
			gecho.Success(w,
				gecho.WithData(map[string]any{
					"product": product,
				}),
				gecho.Send(),
			)
			return
		}
	}

	gecho.NotFound(w,
		gecho.WithMessage("Product not found"),
		gecho.Send(),
	)
}
