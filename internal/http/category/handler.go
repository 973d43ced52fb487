package category

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tbeckett/finboard/internal/ledger"
)

// Handler serves the seeded category reference data that pickers and charts
// are built from.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(ledger.Categories()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
