package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/trustedwear/storefront/internal/adapter/catalog"
	"github.com/trustedwear/storefront/internal/core/domain"
)

// GET    v1/cart                     (200 OK)
// POST   v1/cart/items   JSON        (200 OK, 400 Bad request, 404 Not found)
// PUT    v1/cart/items   JSON        (200 OK, 400 Bad request)
// DELETE v1/cart/items   JSON        (200 OK, 400 Bad request)
// DELETE v1/cart                     (200 OK)

type CartStore interface {
	CartItems() []domain.CartItem
	CartTotal() float64
	CartCount() int
	AddToCart(ctx context.Context, p domain.Product, size string, quantity int)
	RemoveFromCart(ctx context.Context, productID, size string)
	UpdateQuantity(ctx context.Context, productID, size string, quantity int)
	ClearCart(ctx context.Context)
}

type ProductResolver interface {
	ByID(id string) (domain.Product, error)
}

type CartHandler struct {
	store    CartStore
	products ProductResolver
}

func RegisterCart(mux *http.ServeMux, store CartStore, products ProductResolver) {
	h := CartHandler{store, products}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.AddItem)
	mux.HandleFunc("PUT /v1/cart/items", h.UpdateItem)
	mux.HandleFunc("DELETE /v1/cart/items", h.RemoveItem)
	mux.HandleFunc("DELETE /v1/cart", h.ClearCart)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w)
}

// AddItem validates the product and size against the catalog before calling
// the permissive store, unknown ids never reach the cart from this surface.
func (h CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.AddItem"
	log := slog.With("op", op)

	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if req.Quantity < 0 {
		http.Error(w, "quantity must be positive", http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	p, err := h.products.ByID(req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "unknown product", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to resolve product", http.StatusInternalServerError)
		log.Error("failed to resolve product", "err", err)
		return
	}

	if !slices.Contains(p.Sizes, req.Size) {
		http.Error(w, "unknown size", http.StatusBadRequest)
		return
	}

	h.store.AddToCart(r.Context(), p, req.Size, req.Quantity)
	log.Info("item added", "productID", p.ID, "size", req.Size)
	h.writeCart(w)
}

func (h CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.UpdateItem"
	log := slog.With("op", op)

	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	h.store.UpdateQuantity(r.Context(), req.ProductID, req.Size, req.Quantity)
	h.writeCart(w)
}

func (h CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.RemoveItem"
	log := slog.With("op", op)

	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	h.store.RemoveFromCart(r.Context(), req.ProductID, req.Size)
	h.writeCart(w)
}

func (h CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.store.ClearCart(r.Context())
	h.writeCart(w)
}

func (h CartHandler) writeCart(w http.ResponseWriter) {
	const op = "CartHandler.writeCart"

	view := toCartView(h.store.CartItems(), h.store.CartTotal(), h.store.CartCount())
	writeJSON(w, http.StatusOK, view, op)
}
