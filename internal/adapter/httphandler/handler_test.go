package httphandler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trustedwear/storefront/internal/adapter/catalog"
	"github.com/trustedwear/storefront/internal/adapter/httphandler"
	"github.com/trustedwear/storefront/internal/core/domain"
	"github.com/trustedwear/storefront/internal/core/service"
)

type memSession struct {
	cart domain.Cart
	user *domain.User
}

func (m *memSession) LoadCart(context.Context) domain.Cart { return m.cart }

func (m *memSession) SaveCart(_ context.Context, c domain.Cart) error {
	m.cart = append(domain.Cart(nil), c...)
	return nil
}

func (m *memSession) LoadUser(context.Context) (domain.User, bool) {
	if m.user == nil {
		return domain.User{}, false
	}
	return *m.user, true
}

func (m *memSession) SaveUser(_ context.Context, u domain.User) error {
	m.user = &u
	return nil
}

func (m *memSession) DeleteUser(context.Context) error {
	m.user = nil
	return nil
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	c, err := catalog.Load()
	require.NoError(t, err)
	store := service.New(&memSession{}, c, nil, nil)

	mux := http.NewServeMux()
	httphandler.RegisterCart(mux, store, c)
	httphandler.RegisterAuth(mux, store)
	httphandler.RegisterCatalog(mux, c)
	httphandler.RegisterOrders(mux, store)
	return httphandler.LogRequests(httphandler.AllowJSON(mux))
}

func doJSON(
	t *testing.T, h http.Handler, method, target, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) httphandler.CartView {
	t.Helper()
	var view httphandler.CartView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	return view
}

func TestCartEndpoints(t *testing.T) {
	t.Run("EmptyCart", func(t *testing.T) {
		h := newTestHandler(t)

		w := doJSON(t, h, http.MethodGet, "/v1/cart", "")
		require.Equal(t, http.StatusOK, w.Code)

		view := decodeCart(t, w)
		assert.Empty(t, view.Items)
		assert.Zero(t, view.Total)
		assert.Zero(t, view.Count)
	})

	t.Run("AddItem", func(t *testing.T) {
		h := newTestHandler(t)

		w := doJSON(t, h, http.MethodPost, "/v1/cart/items",
			`{"product_id": "m1", "size": "M", "quantity": 2}`)
		require.Equal(t, http.StatusOK, w.Code)

		view := decodeCart(t, w)
		require.Len(t, view.Items, 1)
		assert.Equal(t, "m1", view.Items[0].Product.ID)
		assert.Equal(t, 2, view.Items[0].Quantity)
		assert.Equal(t, 2, view.Count)
		assert.InDelta(t, 456, view.Total, 1e-9) // sale price 228 x2
	})

	t.Run("AddItemDefaultsQuantityToOne", func(t *testing.T) {
		h := newTestHandler(t)

		w := doJSON(t, h, http.MethodPost, "/v1/cart/items",
			`{"product_id": "m1", "size": "M"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, decodeCart(t, w).Count)
	})

	t.Run("AddUnknownProduct", func(t *testing.T) {
		h := newTestHandler(t)

		w := doJSON(t, h, http.MethodPost, "/v1/cart/items",
			`{"product_id": "nope", "size": "M", "quantity": 1}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("AddUnknownSize", func(t *testing.T) {
		h := newTestHandler(t)

		w := doJSON(t, h, http.MethodPost, "/v1/cart/items",
			`{"product_id": "m1", "size": "XS", "quantity": 1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("AddNegativeQuantity", func(t *testing.T) {
		h := newTestHandler(t)

		w := doJSON(t, h, http.MethodPost, "/v1/cart/items",
			`{"product_id": "m1", "size": "M", "quantity": -1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("AddInvalidJSON", func(t *testing.T) {
		h := newTestHandler(t)

		w := doJSON(t, h, http.MethodPost, "/v1/cart/items", `{"product_id":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UpdateToZeroRemovesLine", func(t *testing.T) {
		h := newTestHandler(t)

		doJSON(t, h, http.MethodPost, "/v1/cart/items",
			`{"product_id": "m1", "size": "M", "quantity": 2}`)

		w := doJSON(t, h, http.MethodPut, "/v1/cart/items",
			`{"product_id": "m1", "size": "M", "quantity": 0}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeCart(t, w).Items)
	})

	t.Run("RemoveItem", func(t *testing.T) {
		h := newTestHandler(t)

		doJSON(t, h, http.MethodPost, "/v1/cart/items",
			`{"product_id": "m1", "size": "M", "quantity": 1}`)
		doJSON(t, h, http.MethodPost, "/v1/cart/items",
			`{"product_id": "m1", "size": "L", "quantity": 1}`)

		w := doJSON(t, h, http.MethodDelete, "/v1/cart/items",
			`{"product_id": "m1", "size": "M"}`)
		require.Equal(t, http.StatusOK, w.Code)

		view := decodeCart(t, w)
		require.Len(t, view.Items, 1)
		assert.Equal(t, "L", view.Items[0].Size)
	})

	t.Run("ClearCart", func(t *testing.T) {
		h := newTestHandler(t)

		doJSON(t, h, http.MethodPost, "/v1/cart/items",
			`{"product_id": "m1", "size": "M", "quantity": 3}`)

		w := doJSON(t, h, http.MethodDelete, "/v1/cart", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeCart(t, w).Items)
	})
}

func TestAuthEndpoints(t *testing.T) {
	t.Run("LoginSucceeds", func(t *testing.T) {
		h := newTestHandler(t)

		w := doJSON(t, h, http.MethodPost, "/v1/auth/login",
			`{"email": "a@b.com", "password": "pw"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var u httphandler.User
		require.NoError(t, json.NewDecoder(w.Body).Decode(&u))
		assert.Equal(t, "1", u.ID)
		assert.Equal(t, "a", u.Name)
		assert.Equal(t, "a@b.com", u.Email)
	})

	t.Run("LoginEmptyCredentials", func(t *testing.T) {
		h := newTestHandler(t)

		w := doJSON(t, h, http.MethodPost, "/v1/auth/login",
			`{"email": "", "password": "pw"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("SignupSucceeds", func(t *testing.T) {
		h := newTestHandler(t)

		w := doJSON(t, h, http.MethodPost, "/v1/auth/signup",
			`{"email": "a@b.com", "password": "pw", "name": "Ann"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var u httphandler.User
		require.NoError(t, json.NewDecoder(w.Body).Decode(&u))
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "Ann", u.Name)
	})

	t.Run("SignupMissingName", func(t *testing.T) {
		h := newTestHandler(t)

		w := doJSON(t, h, http.MethodPost, "/v1/auth/signup",
			`{"email": "a@b.com", "password": "pw"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("SessionLifecycle", func(t *testing.T) {
		h := newTestHandler(t)

		w := doJSON(t, h, http.MethodGet, "/v1/session", "")
		assert.Equal(t, http.StatusNoContent, w.Code)

		doJSON(t, h, http.MethodPost, "/v1/auth/login",
			`{"email": "a@b.com", "password": "pw"}`)

		w = doJSON(t, h, http.MethodGet, "/v1/session", "")
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, h, http.MethodPost, "/v1/auth/logout", "")
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, h, http.MethodGet, "/v1/session", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("LogoutKeepsCart", func(t *testing.T) {
		h := newTestHandler(t)

		doJSON(t, h, http.MethodPost, "/v1/cart/items",
			`{"product_id": "m1", "size": "M", "quantity": 2}`)
		doJSON(t, h, http.MethodPost, "/v1/auth/login",
			`{"email": "a@b.com", "password": "pw"}`)
		doJSON(t, h, http.MethodPost, "/v1/auth/logout", "")

		w := doJSON(t, h, http.MethodGet, "/v1/cart", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, decodeCart(t, w).Count)
	})
}

func TestCatalogEndpoints(t *testing.T) {
	h := newTestHandler(t)

	decodeProducts := func(w *httptest.ResponseRecorder) []httphandler.Product {
		var ps []httphandler.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&ps))
		return ps
	}

	t.Run("ListAll", func(t *testing.T) {
		w := doJSON(t, h, http.MethodGet, "/v1/products", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeProducts(w), 10)
	})

	t.Run("FilterByCategory", func(t *testing.T) {
		w := doJSON(t, h, http.MethodGet, "/v1/products?category=kids", "")
		require.Equal(t, http.StatusOK, w.Code)
		for _, p := range decodeProducts(w) {
			assert.Equal(t, "kids", p.Category)
		}
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		w := doJSON(t, h, http.MethodGet, "/v1/products?category=pets", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Search", func(t *testing.T) {
		w := doJSON(t, h, http.MethodGet, "/v1/products?q=bomber", "")
		require.Equal(t, http.StatusOK, w.Code)

		ps := decodeProducts(w)
		require.Len(t, ps, 1)
		assert.Equal(t, "m4", ps[0].ID)
	})

	t.Run("GetByID", func(t *testing.T) {
		w := doJSON(t, h, http.MethodGet, "/v1/products/w2", "")
		require.Equal(t, http.StatusOK, w.Code)

		var p httphandler.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&p))
		assert.Equal(t, "Uptown Girl Crop Top", p.Name)
	})

	t.Run("GetUnknownID", func(t *testing.T) {
		w := doJSON(t, h, http.MethodGet, "/v1/products/nope", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOrdersEndpoint(t *testing.T) {
	h := newTestHandler(t)

	t.Run("AnonymousIsUnauthorized", func(t *testing.T) {
		w := doJSON(t, h, http.MethodGet, "/v1/orders", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("EmptyHistory", func(t *testing.T) {
		doJSON(t, h, http.MethodPost, "/v1/auth/login",
			`{"email": "a@b.com", "password": "pw"}`)

		w := doJSON(t, h, http.MethodGet, "/v1/orders", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

type stubCounts struct {
	counts map[string]int64
	err    error
}

func (s stubCounts) Counts() (map[string]int64, error) {
	return s.counts, s.err
}

func TestTrendingEndpoint(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)

	newHandler := func(counts stubCounts) http.Handler {
		mux := http.NewServeMux()
		httphandler.RegisterTrending(mux, counts, c)
		return mux
	}

	t.Run("SortedByAddsDescending", func(t *testing.T) {
		h := newHandler(stubCounts{counts: map[string]int64{
			"m1": 3, "w2": 12, "k1": 7,
		}})

		w := doJSON(t, h, http.MethodGet, "/v1/trending", "")
		require.Equal(t, http.StatusOK, w.Code)

		var entries []httphandler.TrendingEntry
		require.NoError(t, json.NewDecoder(w.Body).Decode(&entries))
		require.Len(t, entries, 3)
		assert.Equal(t, "w2", entries[0].Product.ID)
		assert.Equal(t, "k1", entries[1].Product.ID)
		assert.Equal(t, "m1", entries[2].Product.ID)
	})

	t.Run("SkipsCountersWithoutCatalogEntry", func(t *testing.T) {
		h := newHandler(stubCounts{counts: map[string]int64{
			"m1": 3, "retired": 99,
		}})

		w := doJSON(t, h, http.MethodGet, "/v1/trending", "")
		require.Equal(t, http.StatusOK, w.Code)

		var entries []httphandler.TrendingEntry
		require.NoError(t, json.NewDecoder(w.Body).Decode(&entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "m1", entries[0].Product.ID)
	})

	t.Run("NoCountersIsNoContent", func(t *testing.T) {
		h := newHandler(stubCounts{})

		w := doJSON(t, h, http.MethodGet, "/v1/trending", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("UnavailableView", func(t *testing.T) {
		h := newHandler(stubCounts{err: assert.AnError})

		w := doJSON(t, h, http.MethodGet, "/v1/trending", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("RejectsNonJSONBody", func(t *testing.T) {
		h := newTestHandler(t)

		r := httptest.NewRequest(
			http.MethodPost, "/v1/cart/items", strings.NewReader("product_id=m1"),
		)
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})

	t.Run("TagsRequestID", func(t *testing.T) {
		h := newTestHandler(t)

		w := doJSON(t, h, http.MethodGet, "/v1/cart", "")
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}
