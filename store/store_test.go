package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"cblls_server/lib"
	"cblls_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBackend is an in-memory document backend with write-failure
// injection, standing in for the real drivers in store tests.
type memBackend struct {
	mu     sync.Mutex
	docs   map[string][]byte
	setErr error
}

func newMemBackend() *memBackend {
	return &memBackend{docs: make(map[string][]byte)}
}

func (mb *memBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	data, ok := mb.docs[key]
	return data, ok, nil
}

func (mb *memBackend) Set(_ context.Context, key string, value []byte) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if mb.setErr != nil {
		return mb.setErr
	}
	mb.docs[key] = value
	return nil
}

func (mb *memBackend) Delete(_ context.Context, key string) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	delete(mb.docs, key)
	return nil
}

func (mb *memBackend) Ping(context.Context) error { return nil }
func (mb *memBackend) Close() error               { return nil }

// stubProvider resolves every credential pair the same way, letting
// tests drive the store's success and failure paths directly.
type stubProvider struct {
	user *structs.User
	err  error
}

func (sp *stubProvider) SignIn(context.Context, string, string) (*structs.User, error) {
	return sp.user, sp.err
}

func (sp *stubProvider) SignUp(context.Context, string, string, string) (*structs.User, error) {
	return sp.user, sp.err
}

func (sp *stubProvider) Lookup(context.Context, string) (*structs.User, error) {
	return sp.user, sp.err
}

func newTestStore(t *testing.T, backend *memBackend, provider IdentityProvider) *Store {
	t.Helper()
	if provider == nil {
		provider = &stubProvider{}
	}
	s := New(backend, provider, gecho.NewDefaultLogger())
	t.Cleanup(s.Close)
	return s
}

func TestSaveProductAssignsIDAndRecomputesStock(t *testing.T) {
	s := newTestStore(t, newMemBackend(), nil)

	saved, err := s.SaveProduct(context.Background(), structs.Product{
		Name:     "Auriculares X",
		Category: "mobile",
		Price:    999,
		Stock:    42, // must be overwritten by the variant sum
		Variants: []structs.Variant{
			{Name: "Negro", Price: 129900, Stock: 3},
			{Name: "Blanco", Price: 139900, Stock: 5},
		},
	})
	require.NoError(t, err)

	assert.NotZero(t, saved.ID)
	assert.Equal(t, 8, saved.Stock)
	assert.Equal(t, uint64(129900), saved.Price)
	for _, v := range saved.Variants {
		assert.NotEmpty(t, v.ID)
	}

	products := s.Products()
	require.Len(t, products, 1)
	assert.Equal(t, saved, products[0])
}

func TestSaveProductIDsPairwiseDistinct(t *testing.T) {
	s := newTestStore(t, newMemBackend(), nil)

	seen := make(map[int64]bool)
	for i := 0; i < 25; i++ {
		saved, err := s.SaveProduct(context.Background(), structs.Product{Name: "Item"})
		require.NoError(t, err)
		assert.False(t, seen[saved.ID], "id %d assigned twice", saved.ID)
		seen[saved.ID] = true
	}
}

func TestSaveProductUpdatesByID(t *testing.T) {
	s := newTestStore(t, newMemBackend(), nil)

	saved, err := s.SaveProduct(context.Background(), structs.Product{Name: "Antes"})
	require.NoError(t, err)

	saved.Name = "Después"
	updated, err := s.SaveProduct(context.Background(), saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)

	products := s.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Después", products[0].Name)
}

func TestSaveProductRejectedWriteKeepsOldAndSkipsNotify(t *testing.T) {
	backend := newMemBackend()
	s := newTestStore(t, backend, nil)

	_, err := s.SaveProduct(context.Background(), structs.Product{Name: "Guardado"})
	require.NoError(t, err)

	notifications := 0
	unsubscribe := s.SubscribeToProducts(func([]structs.Product) { notifications++ })
	defer unsubscribe()
	require.Equal(t, 1, notifications) // immediate snapshot only

	backend.setErr = lib.ErrStorageFull
	_, err = s.SaveProduct(context.Background(), structs.Product{Name: "Rechazado"})
	require.ErrorIs(t, err, lib.ErrStorageFull)

	assert.Equal(t, 1, notifications, "a rejected write must not notify")
	backend.setErr = nil
	products := s.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Guardado", products[0].Name)
}

func TestDeleteProductAbsentIsNoOpButNotifies(t *testing.T) {
	s := newTestStore(t, newMemBackend(), nil)

	saved, err := s.SaveProduct(context.Background(), structs.Product{Name: "Unico"})
	require.NoError(t, err)

	notifications := 0
	unsubscribe := s.SubscribeToProducts(func([]structs.Product) { notifications++ })
	defer unsubscribe()

	require.NoError(t, s.DeleteProduct(context.Background(), saved.ID+1))
	assert.Equal(t, 2, notifications)
	assert.Len(t, s.Products(), 1)

	require.NoError(t, s.DeleteProduct(context.Background(), saved.ID))
	assert.Len(t, s.Products(), 0)
}

func TestSubscribeImmediateAndUnsubscribeIsolation(t *testing.T) {
	s := newTestStore(t, newMemBackend(), nil)

	var first, second []int
	unsubFirst := s.SubscribeToProducts(func(p []structs.Product) { first = append(first, len(p)) })
	unsubSecond := s.SubscribeToProducts(func(p []structs.Product) { second = append(second, len(p)) })
	defer unsubSecond()

	require.Equal(t, []int{0}, first, "subscription fires immediately with the current snapshot")
	require.Equal(t, []int{0}, second)

	_, err := s.SaveProduct(context.Background(), structs.Product{Name: "Uno"})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, first)
	assert.Equal(t, []int{0, 1}, second)

	unsubFirst()
	unsubFirst() // double deregistration is safe

	_, err = s.SaveProduct(context.Background(), structs.Product{Name: "Dos"})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, first, "removed subscriber must stay silent")
	assert.Equal(t, []int{0, 1, 2}, second)
}

func TestConfigFallsBackPerSubCollection(t *testing.T) {
	backend := newMemBackend()
	s := newTestStore(t, backend, nil)

	// nothing stored yet: full defaults
	cfg := s.Config()
	assert.Equal(t, DefaultConfig(), cfg)

	// stored document with categories but no slides, as an older
	// iteration could have written it: only the slides fall back
	partial := structs.AppConfig{
		GeneralInfo: "Editado",
		Categories:  []structs.Category{{ID: "audio", Name: "Audio", Icon: structs.IconHeadphones}},
	}
	data, err := json.Marshal(partial)
	require.NoError(t, err)
	backend.docs["cblls_config_local"] = data

	cfg = s.Config()
	assert.Equal(t, "Editado", cfg.GeneralInfo)
	require.Len(t, cfg.Categories, 1)
	assert.Equal(t, "audio", cfg.Categories[0].ID)
	assert.Equal(t, DefaultConfig().HeaderSlides, cfg.HeaderSlides)

	// corrupt document: full defaults again
	backend.docs["cblls_config_local"] = []byte("{not json")
	assert.Equal(t, DefaultConfig(), s.Config())
}

func TestSaveConfigBoundsAndSlideIDs(t *testing.T) {
	s := newTestStore(t, newMemBackend(), nil)
	base := DefaultConfig()

	cfg := base
	cfg.Categories = nil
	_, err := s.SaveConfig(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrNoCategories)

	cfg = base
	cfg.HeaderSlides = nil
	_, err = s.SaveConfig(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrNoSlides)

	cfg = base
	cfg.HeaderSlides = make([]structs.HeaderSlide, MaxHeaderSlides+1)
	for i := range cfg.HeaderSlides {
		cfg.HeaderSlides[i] = structs.HeaderSlide{ID: "s", Title: "t"}
	}
	_, err = s.SaveConfig(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrTooManySlides)

	cfg = base
	cfg.Categories = []structs.Category{{ID: "x", Name: "X", Icon: "rocket"}}
	_, err = s.SaveConfig(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrUnknownIcon)

	cfg = base
	cfg.HeaderSlides = append(cfg.HeaderSlides, structs.HeaderSlide{Title: "Nueva"})
	saved, err := s.SaveConfig(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, saved.HeaderSlides, 2)
	assert.True(t, strings.HasPrefix(saved.HeaderSlides[1].ID, "SL-"))
}

func TestSaveConfigAppendsCategory(t *testing.T) {
	s := newTestStore(t, newMemBackend(), nil)

	cfg := s.Config()
	prior := len(cfg.Categories)
	cfg.Categories = append(cfg.Categories, structs.Category{ID: "audio", Name: "Audio", Icon: structs.IconMusic})

	_, err := s.SaveConfig(context.Background(), cfg)
	require.NoError(t, err)

	got := s.Config()
	require.Len(t, got.Categories, prior+1)
	assert.Equal(t, structs.Category{ID: "audio", Name: "Audio", Icon: structs.IconMusic}, got.Categories[prior])
}

func TestSaveConfigNotifiesSubscribers(t *testing.T) {
	s := newTestStore(t, newMemBackend(), nil)

	var got []structs.AppConfig
	unsubscribe := s.SubscribeToConfig(func(cfg structs.AppConfig) { got = append(got, cfg) })
	defer unsubscribe()
	require.Len(t, got, 1)

	cfg := DefaultConfig()
	cfg.FooterText = "Nuevo pie"
	_, err := s.SaveConfig(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Nuevo pie", got[1].FooterText)
}

func TestLoginFailureReturnsResultAndPersistsNothing(t *testing.T) {
	backend := newMemBackend()
	provider := &stubProvider{err: lib.ErrWeakPassword}
	s := newTestStore(t, backend, provider)

	notifications := 0
	unsubscribe := s.SubscribeToAuth(func(*structs.User) { notifications++ })
	defer unsubscribe()
	require.Equal(t, 1, notifications)

	result := s.Login(context.Background(), "ana@example.com", "12345")
	assert.False(t, result.Success)
	assert.Nil(t, result.User)
	assert.Equal(t, "Password is too short (min 6 characters)", result.Message)

	assert.Nil(t, s.CurrentUser())
	assert.Equal(t, 1, notifications, "a failed login must not notify")
}

func TestRegisterEstablishesSessionForNewSubscribers(t *testing.T) {
	user := &structs.User{Uid: "u-1", Email: "ana@example.com", Name: "Ana", Role: structs.RoleClient}
	s := newTestStore(t, newMemBackend(), &stubProvider{user: user})

	result := s.Register(context.Background(), "Ana", "ana@example.com", "secreta1")
	require.True(t, result.Success)
	require.Equal(t, user, result.User)

	var observed *structs.User
	unsubscribe := s.SubscribeToAuth(func(u *structs.User) { observed = u })
	defer unsubscribe()
	require.NotNil(t, observed)
	assert.Equal(t, user.Uid, observed.Uid)
}

func TestLogoutClearsSessionAndNotifiesNil(t *testing.T) {
	user := &structs.User{Uid: "u-1", Email: "ana@example.com", Name: "Ana"}
	s := newTestStore(t, newMemBackend(), &stubProvider{user: user})
	require.True(t, s.Login(context.Background(), "ana@example.com", "secreta1").Success)

	var got []*structs.User
	unsubscribe := s.SubscribeToAuth(func(u *structs.User) { got = append(got, u) })
	defer unsubscribe()

	s.Logout(context.Background())
	require.Len(t, got, 2)
	assert.NotNil(t, got[0])
	assert.Nil(t, got[1])
	assert.Nil(t, s.CurrentUser())
}

func TestRefreshSessionPicksUpProviderChanges(t *testing.T) {
	user := &structs.User{Uid: "u-1", Email: "ana@example.com", Name: "Ana", Verified: false}
	provider := &stubProvider{user: user}
	s := newTestStore(t, newMemBackend(), provider)
	require.True(t, s.Login(context.Background(), "ana@example.com", "secreta1").Success)

	// no change: no notification beyond the immediate snapshot
	notifications := 0
	unsubscribe := s.SubscribeToAuth(func(*structs.User) { notifications++ })
	defer unsubscribe()
	require.NotNil(t, s.RefreshSession(context.Background()))
	assert.Equal(t, 1, notifications)

	// provider flipped the verification flag out of band
	provider.user = &structs.User{Uid: "u-1", Email: "ana@example.com", Name: "Ana", Verified: true}
	fresh := s.RefreshSession(context.Background())
	require.NotNil(t, fresh)
	assert.True(t, fresh.Verified)
	assert.Equal(t, 2, notifications)
	assert.True(t, s.CurrentUser().Verified)
}

func TestRefreshSessionWithoutSessionReturnsNil(t *testing.T) {
	s := newTestStore(t, newMemBackend(), &stubProvider{})
	assert.Nil(t, s.RefreshSession(context.Background()))
}
