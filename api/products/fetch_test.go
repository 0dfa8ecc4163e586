package products

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cblls_server/storage"
	"cblls_server/store"
	"cblls_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopProvider struct{}

func (noopProvider) SignIn(context.Context, string, string) (*structs.User, error) {
	return nil, nil
}
func (noopProvider) SignUp(context.Context, string, string, string) (*structs.User, error) {
	return nil, nil
}
func (noopProvider) Lookup(context.Context, string) (*structs.User, error) {
	return nil, nil
}

func setupRouter(t *testing.T) (chi.Router, *store.Store) {
	t.Helper()

	backend, err := storage.OpenFile(t.TempDir(), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	st := store.New(backend, noopProvider{}, gecho.NewDefaultLogger())
	t.Cleanup(st.Close)

	r := chi.NewRouter()
	NewProductRoutesManager(gecho.NewDefaultLogger(), st).RegisterRoutes(r)
	return r, st
}

func TestFetchAllProducts(t *testing.T) {
	r, st := setupRouter(t)

	_, err := st.SaveProduct(context.Background(), structs.Product{Name: "Televisor", Category: "tv", IsActive: true})
	require.NoError(t, err)
	_, err = st.SaveProduct(context.Background(), structs.Product{Name: "Cafetera", Category: "kitchen", IsActive: true})
	require.NoError(t, err)
	// hidden from the public listing
	_, err = st.SaveProduct(context.Background(), structs.Product{Name: "Descatalogado", Category: "tv", IsActive: false})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Products []structs.Product `json:"products"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Products, 2)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?category=tv", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Products, 1)
	assert.Equal(t, "Televisor", resp.Data.Products[0].Name)
}

func TestFetchAllProductsRejectsBadQuery(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?page=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFetchProductByID(t *testing.T) {
	r, st := setupRouter(t)

	saved, err := st.SaveProduct(context.Background(), structs.Product{Name: "Televisor"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d", saved.ID), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d", saved.ID+1), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/notanumber", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
