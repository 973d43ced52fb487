package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"

	"github.com/tbeckett/finboard/internal/config"
	finboardHttp "github.com/tbeckett/finboard/internal/http"
	billHandler "github.com/tbeckett/finboard/internal/http/bill"
	budgetHandler "github.com/tbeckett/finboard/internal/http/budget"
	categoryHandler "github.com/tbeckett/finboard/internal/http/category"
	dashboardHandler "github.com/tbeckett/finboard/internal/http/dashboard"
	investmentHandler "github.com/tbeckett/finboard/internal/http/investment"
	txHandler "github.com/tbeckett/finboard/internal/http/transaction"
	"github.com/tbeckett/finboard/internal/insight"
	"github.com/tbeckett/finboard/internal/ledger"
	"github.com/tbeckett/finboard/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewSQLite(cfg.Storage.Path)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ledgerService := ledger.NewService(store)
	ledgerService.Load(context.Background())

	var chatClient insight.ChatClient
	if cfg.OpenAI.APIKey != "" {
		chatClient = openai.NewClient(cfg.OpenAI.APIKey)
	}

	advisor := insight.NewService(chatClient, cfg.OpenAI.Model)

	var (
		transactionH = txHandler.NewHandler(ledgerService)
		billH        = billHandler.NewHandler(ledgerService)
		budgetH      = budgetHandler.NewHandler(ledgerService)
		investmentH  = investmentHandler.NewHandler(ledgerService)
		categoryH    = categoryHandler.NewHandler()
		dashboardH   = dashboardHandler.NewHandler(ledgerService, advisor)
	)

	router := finboardHttp.New(transactionH, billH, budgetH, investmentH, categoryH, dashboardH)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
