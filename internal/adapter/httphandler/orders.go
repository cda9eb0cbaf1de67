package httphandler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/trustedwear/storefront/internal/core/domain"
)

// GET v1/orders (200 OK, 204 No content, 401 Unauthorized)

type OrderHistory interface {
	User() (domain.User, bool)
	OrderHistory(ctx context.Context) ([]domain.Order, error)
}

type OrdersHandler struct {
	history OrderHistory
}

func RegisterOrders(mux *http.ServeMux, history OrderHistory) {
	h := OrdersHandler{history}
	mux.HandleFunc("GET /v1/orders", h.ListOrders)
}

func (h OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.ListOrders"
	log := slog.With("op", op)

	if _, ok := h.history.User(); !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	os, err := h.history.OrderHistory(r.Context())
	if err != nil {
		http.Error(w, "failed to read orders", http.StatusInternalServerError)
		log.Error("failed to read orders", "err", err)
		return
	}
	if len(os) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	views := make([]Order, 0, len(os))
	for _, o := range os {
		views = append(views, toOrderView(o))
	}
	writeJSON(w, http.StatusOK, views, op)
}
