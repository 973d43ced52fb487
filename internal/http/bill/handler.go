package bill

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
	r.Patch("/{id}/paid", h.togglePaid)
}

type createBillRequest struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	DueDate  string          `json:"dueDate"`
	Category string          `json:"category"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dueDate time.Time

	if req.DueDate != "" {
		parsed, err := time.Parse(time.DateOnly, req.DueDate)
		if err != nil {
			http.Error(w, "dueDate must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		dueDate = parsed
	}

	bill, err := h.svc.AddBill(r.Context(), ledger.AddBillParams{
		Name:     req.Name,
		Amount:   req.Amount,
		DueDate:  dueDate,
		Category: req.Category,
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

	if err := json.NewEncoder(w).Encode(bill); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.svc.Bills()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) togglePaid(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	bill, err := h.svc.ToggleBillPaid(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "bill not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(bill); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
