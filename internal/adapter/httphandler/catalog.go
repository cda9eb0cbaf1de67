package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/trustedwear/storefront/internal/adapter/catalog"
	"github.com/trustedwear/storefront/internal/core/domain"
)

// GET v1/products?category=men&q=hoodie (200 OK, 400 Bad request)
// GET v1/products/{id}                  (200 OK, 404 Not found)

type CatalogQueries interface {
	All() []domain.Product
	ByID(id string) (domain.Product, error)
	ByCategory(domain.Category) []domain.Product
	Search(query string) []domain.Product
}

type CatalogHandler struct {
	catalog CatalogQueries
}

func RegisterCatalog(mux *http.ServeMux, c CatalogQueries) {
	h := CatalogHandler{c}
	mux.HandleFunc("GET /v1/products", h.ListProducts)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
}

func (h CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.ListProducts"

	var ps []domain.Product
	switch {
	case r.URL.Query().Has("category"):
		cat, err := domain.ParseCategory(r.URL.Query().Get("category"))
		if err != nil {
			http.Error(w, "unknown category", http.StatusBadRequest)
			return
		}
		ps = h.catalog.ByCategory(cat)
	case r.URL.Query().Has("q"):
		ps = h.catalog.Search(r.URL.Query().Get("q"))
	default:
		ps = h.catalog.All()
	}

	writeJSON(w, http.StatusOK, toProductViews(ps), op)
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"
	log := slog.With("op", op)

	p, err := h.catalog.ByID(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to read product", http.StatusInternalServerError)
		log.Error("failed to read product", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toProductView(p), op)
}
