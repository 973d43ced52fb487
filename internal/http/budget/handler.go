package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tbeckett/finboard/internal/ledger"
	"github.com/tbeckett/finboard/internal/stats"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
}

type createBudgetRequest struct {
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	budget, err := h.svc.AddBudget(r.Context(), ledger.AddBudgetParams{
		Category: req.Category,
		Limit:    req.Limit,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrValidation) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(budget); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// list returns each budget with its derived spend and percentage.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	progress := stats.BudgetsProgress(h.svc.Budgets(), h.svc.Transactions())

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(progress); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
