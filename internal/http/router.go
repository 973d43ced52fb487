package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tbeckett/finboard/internal/http/bill"
	"github.com/tbeckett/finboard/internal/http/budget"
	"github.com/tbeckett/finboard/internal/http/category"
	"github.com/tbeckett/finboard/internal/http/dashboard"
	"github.com/tbeckett/finboard/internal/http/investment"
	"github.com/tbeckett/finboard/internal/http/transaction"
)

func New(
	transactionsV1 *transaction.Handler,
	billsV1 *bill.Handler,
	budgetsV1 *budget.Handler,
	investmentsV1 *investment.Handler,
	categoriesV1 *category.Handler,
	dashboardV1 *dashboard.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/bills", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			billsV1.Routes(r)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			budgetsV1.Routes(r)
		})

		r.Route("/investments", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			investmentsV1.Routes(r)
		})

		r.Route("/categories", categoriesV1.Routes)

		r.Route("/dashboard", dashboardV1.Routes)
	})

	return router
}
