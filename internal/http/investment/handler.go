package investment

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

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

type createInvestmentRequest struct {
	AssetName     string            `json:"assetName"`
	Symbol        string            `json:"symbol"`
	Quantity      decimal.Decimal   `json:"quantity"`
	PurchasePrice decimal.Decimal   `json:"purchasePrice"`
	CurrentPrice  decimal.Decimal   `json:"currentPrice"`
	PurchaseDate  string            `json:"purchaseDate"`
	Category      ledger.AssetClass `json:"category"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var purchaseDate time.Time

	if req.PurchaseDate != "" {
		parsed, err := time.Parse(time.DateOnly, req.PurchaseDate)
		if err != nil {
			http.Error(w, "purchaseDate must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		purchaseDate = parsed
	}

	inv, err := h.svc.AddInvestment(r.Context(), ledger.AddInvestmentParams{
		AssetName:     req.AssetName,
		Symbol:        req.Symbol,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		CurrentPrice:  req.CurrentPrice,
		PurchaseDate:  purchaseDate,
		Category:      req.Category,
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

	if err := json.NewEncoder(w).Encode(inv); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type investmentResponse struct {
	ledger.Investment
	GainLoss    decimal.Decimal `json:"gainLoss"`
	Performance float64         `json:"performance"`
}

// list returns each holding with its derived gain/loss and performance.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	invs := h.svc.Investments()

	resp := make([]investmentResponse, len(invs))
	for i, inv := range invs {
		resp[i] = investmentResponse{
			Investment:  inv,
			GainLoss:    inv.CurrentPrice.Sub(inv.PurchasePrice).Mul(inv.Quantity),
			Performance: stats.AssetPerformance(inv),
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
