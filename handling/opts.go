package handling

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"cblls_server/structs"
)

// CatalogListOptions is the parsed query surface of the public catalog
// listing. All filters are optional and combine with AND semantics.
type CatalogListOptions struct {
	Category      string
	SearchTerm    string
	IsActive      *bool
	MinPrice      *uint64
	MaxPrice      *uint64
	Page          int
	PageSize      int
	SortBy        string
	SortDirection string
}

// ParseCatalogListOptions parses HTTP query parameters into CatalogListOptions
func ParseCatalogListOptions(r *http.Request) (*CatalogListOptions, error) {
	query := r.URL.Query()

	// Early return if no query params
	if len(query) == 0 {
		return &CatalogListOptions{}, nil
	}

	opts := &CatalogListOptions{}
	var err error
	var val64 uint64
	var valInt int
	var valBool bool

	if category := query.Get("category"); category != "" {
		opts.Category = category
	}

	if searchTerm := query.Get("search"); searchTerm != "" {
		opts.SearchTerm = searchTerm
	}

	if isActive := query.Get("is_active"); isActive != "" {
		if valBool, err = strconv.ParseBool(isActive); err != nil {
			return nil, err
		}
		opts.IsActive = &valBool
	}

	if minPrice := query.Get("min_price"); minPrice != "" {
		if val64, err = strconv.ParseUint(minPrice, 10, 64); err != nil {
			return nil, err
		}
		opts.MinPrice = &val64
	}

	if maxPrice := query.Get("max_price"); maxPrice != "" {
		if val64, err = strconv.ParseUint(maxPrice, 10, 64); err != nil {
			return nil, err
		}
		opts.MaxPrice = &val64
	}

	if page := query.Get("page"); page != "" {
		if valInt, err = strconv.Atoi(page); err != nil {
			return nil, err
		}
		opts.Page = valInt
	}

	if pageSize := query.Get("page_size"); pageSize != "" {
		if valInt, err = strconv.Atoi(pageSize); err != nil {
			return nil, err
		}
		opts.PageSize = valInt
	}

	if sortBy := query.Get("sort_by"); sortBy != "" {
		opts.SortBy = sortBy
	}

	if sortDirection := query.Get("sort_direction"); sortDirection != "" {
		opts.SortDirection = strings.ToUpper(sortDirection)
	}

	return opts, nil
}

// FilterProducts applies the options to an in-memory catalog snapshot.
// The snapshot is small by design, so filtering happens after the read
// rather than inside the storage layer.
func FilterProducts(products []structs.Product, opts *CatalogListOptions) []structs.Product {
	filtered := make([]structs.Product, 0, len(products))
	search := strings.ToLower(opts.SearchTerm)

	for _, p := range products {
		if opts.Category != "" && p.Category != opts.Category {
			continue
		}
		if opts.IsActive != nil && p.IsActive != *opts.IsActive {
			continue
		}
		if opts.MinPrice != nil && p.Price < *opts.MinPrice {
			continue
		}
		if opts.MaxPrice != nil && p.Price > *opts.MaxPrice {
			continue
		}
		if search != "" && !matchesSearch(&p, search) {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, opts.SortBy, opts.SortDirection)

	return paginate(filtered, opts.Page, opts.PageSize)
}

func matchesSearch(p *structs.Product, search string) bool {
	if strings.Contains(strings.ToLower(p.Name), search) {
		return true
	}
	return strings.Contains(strings.ToLower(p.Description), search)
}

func sortProducts(products []structs.Product, sortBy, direction string) {
	if sortBy == "" {
		return
	}

	less := func(a, b *structs.Product) bool { return a.Name < b.Name }
	switch sortBy {
	case "price":
		less = func(a, b *structs.Product) bool { return a.Price < b.Price }
	case "stock":
		less = func(a, b *structs.Product) bool { return a.Stock < b.Stock }
	case "name":
	default:
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		if direction == "DESC" {
			return less(&products[j], &products[i])
		}
		return less(&products[i], &products[j])
	})
}

func paginate(products []structs.Product, page, pageSize int) []structs.Product {
	if pageSize <= 0 {
		return products
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(products) {
		return []structs.Product{}
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}
