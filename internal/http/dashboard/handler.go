package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tbeckett/finboard/internal/insight"
	"github.com/tbeckett/finboard/internal/ledger"
	"github.com/tbeckett/finboard/internal/stats"
)

type Handler struct {
	svc     *ledger.Service
	advisor *insight.Service
}

func NewHandler(svc *ledger.Service, advisor *insight.Service) *Handler {
	return &Handler{svc: svc, advisor: advisor}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/weekly", h.weekly)
	r.Get("/categories", h.categories)
	r.Get("/portfolio", h.portfolio)
	r.Get("/insight", h.insight)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, stats.Summarize(h.svc.Transactions()))
}

func (h *Handler) weekly(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, stats.WeeklyActivity(h.svc.Transactions(), time.Now()))
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	breakdown := stats.CategoryBreakdown(h.svc.Transactions())

	type entry struct {
		stats.CategoryTotal
		Color string `json:"color"`
	}

	resp := make([]entry, len(breakdown))
	for i, ct := range breakdown {
		resp[i] = entry{
			CategoryTotal: ct,
			Color:         ledger.LookupCategory(ct.Category).Color,
		}
	}

	writeJSON(w, resp)
}

func (h *Handler) portfolio(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, stats.PortfolioSummary(h.svc.Investments()))
}

type insightResponse struct {
	Advice string `json:"advice"`
}

// insight asks the external advisor for a spending summary. The advisor
// never fails: on any problem it answers with a fallback string, so this
// endpoint always returns 200.
func (h *Handler) insight(w http.ResponseWriter, r *http.Request) {
	advice := h.advisor.Advise(r.Context(), h.svc.Transactions())

	writeJSON(w, insightResponse{Advice: advice})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
