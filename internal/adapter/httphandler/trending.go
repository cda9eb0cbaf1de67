package httphandler

import (
	"log/slog"
	"net/http"
	"sort"
)

// GET v1/trending (200 OK, 204 No content)

type TrendingCounts interface {
	Counts() (map[string]int64, error)
}

type TrendingHandler struct {
	counts   TrendingCounts
	products ProductResolver
}

func RegisterTrending(
	mux *http.ServeMux, counts TrendingCounts, products ProductResolver,
) {
	h := TrendingHandler{counts, products}
	mux.HandleFunc("GET /v1/trending", h.ListTrending)
}

func (h TrendingHandler) ListTrending(w http.ResponseWriter, r *http.Request) {
	const op = "TrendingHandler.ListTrending"
	log := slog.With("op", op)

	counts, err := h.counts.Counts()
	if err != nil {
		http.Error(w, "trending is unavailable", http.StatusServiceUnavailable)
		log.Error("failed to read trending counts", "err", err)
		return
	}

	var entries []TrendingEntry
	for productID, adds := range counts {
		p, err := h.products.ByID(productID)
		if err != nil {
			// counters may outlive catalog entries
			continue
		}
		entries = append(entries, TrendingEntry{
			Product: toProductView(p),
			Adds:    adds,
		})
	}

	if len(entries) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Adds > entries[j].Adds
	})
	writeJSON(w, http.StatusOK, entries, op)
}
