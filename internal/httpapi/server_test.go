package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beautique-shop/storefront/internal/cart/model"
	"github.com/beautique-shop/storefront/internal/cart/repo"
	"github.com/beautique-shop/storefront/internal/cart/store"
	"github.com/beautique-shop/storefront/internal/cart/tools"
	"github.com/beautique-shop/storefront/internal/cart/widget"
	"github.com/beautique-shop/storefront/internal/catalog"
	errx "github.com/beautique-shop/storefront/internal/core/error"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	srv     *httptest.Server
	store   *store.Store
	storage model.Storage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithStorage(t, repo.NewMemoryStorage())
}

func newFixtureWithStorage(t *testing.T, storage model.Storage) *fixture {
	t.Helper()
	s := store.New(storage, store.WithConfirmer(model.ContextConfirmer{}))
	s.Hydrate(context.Background())
	w := widget.New(s, nil)
	t.Cleanup(w.Stop)
	c := catalog.New(model.ContextConfirmer{}, catalog.SeedProducts()...)

	api := New(Deps{
		Widget:  w,
		Catalog: c,
		Tools:   tools.NewRegistry(tools.Deps{Catalog: c, Widget: w}),
		Logger:  zerolog.Nop(),
	})
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, store: s, storage: storage}
}

func (f *fixture) do(t *testing.T, method, path, body string) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, f.srv.URL+path, rd)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(b, &out), string(b))
	return out
}

func TestCartEndpoints(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Cart", decode[widget.View](t, body).CounterLabel)

	status, body = f.do(t, http.MethodPost, "/cart/open", "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[widget.View](t, body).Open)

	status, body = f.do(t, http.MethodPost, "/cart/items", `{"product_id":2}`)
	require.Equal(t, http.StatusOK, status)
	added := decode[cartChangeResponse](t, body)
	assert.True(t, added.Persisted)
	require.NotNil(t, added.Item)
	assert.Equal(t, model.ItemID("2"), added.Item.ID)
	assert.Equal(t, "€53.00", added.Cart.Subtotal)

	status, _ = f.do(t, http.MethodPost, "/cart/items", `{"attributes":{"product-id":"x1","price":"€5","product-name":"Mask"}}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, f.store.ItemCount())

	status, body = f.do(t, http.MethodPatch, "/cart/items/2", `{"quantity":"3"}`)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[cartChangeResponse](t, body).Applied)

	status, body = f.do(t, http.MethodPatch, "/cart/items/2", `{"quantity":0}`)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, decode[cartChangeResponse](t, body).Applied)
	assert.Equal(t, 4, f.store.ItemCount())

	status, body = f.do(t, http.MethodDelete, "/cart/items/x1", "")
	require.Equal(t, http.StatusOK, status)
	assert.False(t, decode[cartChangeResponse](t, body).Applied)

	status, body = f.do(t, http.MethodDelete, "/cart/items/x1?confirm=true", "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[cartChangeResponse](t, body).Applied)
	assert.Equal(t, 3, f.store.ItemCount())

	status, body = f.do(t, http.MethodPost, "/cart/checkout", "")
	require.Equal(t, http.StatusOK, status)
	data := decode[model.CheckoutData](t, body)
	assert.Equal(t, "159", data.Subtotal.String())
	_, err := f.storage.Read(context.Background(), model.DefaultCartConfig().CheckoutKey)
	assert.NoError(t, err)

	status, _ = f.do(t, http.MethodDelete, "/cart", "")
	require.Equal(t, http.StatusOK, status)
	assert.False(t, f.store.IsEmpty())

	status, _ = f.do(t, http.MethodDelete, "/cart?confirm=true", "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, f.store.IsEmpty())

	status, body = f.do(t, http.MethodPost, "/cart/checkout", "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Your cart is empty", decode[map[string]string](t, body)["error"])
}

type failingStorage struct {
	model.Storage
}

func (failingStorage) Write(context.Context, string, string) error {
	return errx.WrapRedis(errors.New("connection refused"))
}

func TestCartChangesSurviveStorageFailure(t *testing.T) {
	f := newFixtureWithStorage(t, failingStorage{Storage: repo.NewMemoryStorage()})

	status, body := f.do(t, http.MethodPost, "/cart/items", `{"product_id":1}`)
	require.Equal(t, http.StatusOK, status, string(body))
	added := decode[cartChangeResponse](t, body)
	assert.True(t, added.Applied)
	assert.False(t, added.Persisted)
	assert.Equal(t, "Cart (1)", added.Cart.CounterLabel)

	status, body = f.do(t, http.MethodPatch, "/cart/items/1", `{"quantity":3}`)
	require.Equal(t, http.StatusOK, status)
	updated := decode[cartChangeResponse](t, body)
	assert.True(t, updated.Applied)
	assert.False(t, updated.Persisted)
	assert.Equal(t, 3, f.store.ItemCount())

	// declined changes write nothing
	status, body = f.do(t, http.MethodDelete, "/cart", "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[cartChangeResponse](t, body).Persisted)

	status, body = f.do(t, http.MethodDelete, "/cart?confirm=true", "")
	require.Equal(t, http.StatusOK, status)
	cleared := decode[cartChangeResponse](t, body)
	assert.True(t, cleared.Applied)
	assert.False(t, cleared.Persisted)
	assert.True(t, f.store.IsEmpty())

	_, _ = f.store.AddItem(context.Background(), model.Candidate{ID: "9", Name: "Mask"})
	status, body = f.do(t, http.MethodPost, "/cart/checkout", "")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, errx.RedisErrorMessage, decode[map[string]string](t, body)["error"])
}

func TestAddItemValidation(t *testing.T) {
	f := newFixture(t)

	status, _ := f.do(t, http.MethodPost, "/cart/items", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.do(t, http.MethodPost, "/cart/items", `not json`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := f.do(t, http.MethodPost, "/cart/items", `{"product_id":42}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "product not found", decode[map[string]string](t, body)["error"])
	assert.True(t, f.store.IsEmpty())
}

func TestProductEndpoints(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, http.MethodGet, "/products?q=lotion", "")
	require.Equal(t, http.StatusOK, status)
	found := decode[[]catalog.Product](t, body)
	require.Len(t, found, 1)
	assert.Equal(t, int64(2), found[0].ID)

	status, body = f.do(t, http.MethodPost, "/products", `{"sku":"NEW-1","name":"Toner","brand":"B","price":"12.50","stock_quantity":3}`)
	require.Equal(t, http.StatusCreated, status)
	created := decode[catalog.Product](t, body)
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, catalog.PlaceholderImage, created.Image)

	status, _ = f.do(t, http.MethodPost, "/products", `{"sku":"","name":"Toner"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = f.do(t, http.MethodPut, "/products/3", `{"sku":"NEW-1","name":"Rose Toner","price":13}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Rose Toner", decode[catalog.Product](t, body).Name)

	status, _ = f.do(t, http.MethodGet, "/products/abc", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = f.do(t, http.MethodDelete, "/products/3", "")
	require.Equal(t, http.StatusOK, status)
	assert.False(t, decode[map[string]bool](t, body)["deleted"])

	status, body = f.do(t, http.MethodDelete, "/products/3?confirm=true", "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[map[string]bool](t, body)["deleted"])

	status, _ = f.do(t, http.MethodGet, "/products/3", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestToolEndpoints(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, http.MethodGet, "/tools", "")
	require.Equal(t, http.StatusOK, status)
	infos := decode[[]map[string]any](t, body)
	assert.Len(t, infos, 8)

	status, body = f.do(t, http.MethodPost, "/tools/add_to_cart", `{"product_id":1}`)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[map[string]any](t, body)["applied"].(bool))
	assert.Equal(t, 1, f.store.ItemCount())

	status, _ = f.do(t, http.MethodPost, "/tools/view_cart", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = f.do(t, http.MethodPost, "/tools/nope", `{}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = f.do(t, http.MethodPost, "/tools/view_cart", `{broken`)
	assert.Equal(t, http.StatusBadRequest, status)
}
