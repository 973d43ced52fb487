package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
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
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        ledger.Type     `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var date time.Time

	if req.Date != "" {
		parsed, err := time.Parse(time.DateOnly, req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		date = parsed
	}

	tx, err := h.svc.AddTransaction(r.Context(), ledger.AddTransactionParams{
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
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

	if err := json.NewEncoder(w).Encode(tx); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// list returns transactions sorted by date descending, optionally narrowed
// by a case-insensitive ?q= substring match on description or category.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	txs := stats.FilterTransactions(h.svc.Transactions(), r.URL.Query().Get("q"))

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(txs); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteTransaction(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
