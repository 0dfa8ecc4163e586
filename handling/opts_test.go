package handling

import (
	"net/http/httptest"
	"testing"

	"cblls_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() []structs.Product {
	return []structs.Product{
		{ID: 1, Name: "Smart TV 55", Category: "tv", Price: 450000, Stock: 3, IsActive: true, Description: "Pantalla 4K"},
		{ID: 2, Name: "Cafetera Espresso", Category: "kitchen", Price: 120000, Stock: 0, IsActive: true},
		{ID: 3, Name: "Notebook Pro", Category: "computing", Price: 980000, Stock: 7, IsActive: false},
		{ID: 4, Name: "Auriculares", Category: "mobile", Price: 45000, Stock: 12, IsActive: true, Description: "Cancelación de ruido"},
	}
}

func TestParseCatalogListOptions(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?category=tv&is_active=true&min_price=1000&page=2&page_size=5&sort_by=price&sort_direction=desc", nil)

	opts, err := ParseCatalogListOptions(r)
	require.NoError(t, err)

	assert.Equal(t, "tv", opts.Category)
	require.NotNil(t, opts.IsActive)
	assert.True(t, *opts.IsActive)
	require.NotNil(t, opts.MinPrice)
	assert.Equal(t, uint64(1000), *opts.MinPrice)
	assert.Equal(t, 2, opts.Page)
	assert.Equal(t, 5, opts.PageSize)
	assert.Equal(t, "price", opts.SortBy)
	assert.Equal(t, "DESC", opts.SortDirection)
}

func TestParseCatalogListOptionsRejectsBadValues(t *testing.T) {
	for _, query := range []string{"page=abc", "is_active=maybe", "min_price=-5"} {
		r := httptest.NewRequest("GET", "/products?"+query, nil)
		_, err := ParseCatalogListOptions(r)
		assert.Error(t, err, "query %q should not parse", query)
	}
}

func TestFilterProductsByCategoryAndActive(t *testing.T) {
	active := true
	got := FilterProducts(sampleCatalog(), &CatalogListOptions{IsActive: &active})
	assert.Len(t, got, 3)

	got = FilterProducts(sampleCatalog(), &CatalogListOptions{Category: "tv"})
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestFilterProductsSearchMatchesNameAndDescription(t *testing.T) {
	got := FilterProducts(sampleCatalog(), &CatalogListOptions{SearchTerm: "ruido"})
	require.Len(t, got, 1)
	assert.Equal(t, "Auriculares", got[0].Name)
}

func TestFilterProductsPriceRange(t *testing.T) {
	minP, maxP := uint64(100000), uint64(500000)
	got := FilterProducts(sampleCatalog(), &CatalogListOptions{MinPrice: &minP, MaxPrice: &maxP})
	assert.Len(t, got, 2)
}

func TestFilterProductsSortAndPaginate(t *testing.T) {
	got := FilterProducts(sampleCatalog(), &CatalogListOptions{SortBy: "price", SortDirection: "DESC"})
	require.Len(t, got, 4)
	assert.Equal(t, "Notebook Pro", got[0].Name)

	got = FilterProducts(sampleCatalog(), &CatalogListOptions{SortBy: "price", Page: 2, PageSize: 3})
	require.Len(t, got, 1)
	assert.Equal(t, "Notebook Pro", got[0].Name)

	got = FilterProducts(sampleCatalog(), &CatalogListOptions{Page: 9, PageSize: 3})
	assert.Empty(t, got)
}
