// Package insight asks an external text-generation service for a
// natural-language spending summary. The service is an opaque collaborator:
// it can be slow, fail, or return nothing, and none of that may disturb the
// rest of the system, so every failure path collapses to a fallback string.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/tbeckett/finboard/internal/ledger"
)

const (
	// maxTransactions bounds the summary sent to the collaborator.
	maxTransactions = 20

	emptyFallback = "Start adding transactions to get personalized financial insights."
	errorFallback = "Error connecting to AI advisor. Please try again later."
)

// ChatClient is the one method of the OpenAI client the advisor uses.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Service struct {
	client ChatClient
	model  string
}

// NewService wraps a chat client. A nil client (no credentials configured)
// is allowed; Advise then always returns the error fallback.
func NewService(client ChatClient, model string) *Service {
	return &Service{client: client, model: model}
}

// entry is the reduced transaction shape sent to the collaborator.
type entry struct {
	Type     ledger.Type `json:"type"`
	Amount   string      `json:"amount"`
	Category string      `json:"category"`
	Date     string      `json:"date"`
}

// Advise summarizes the most recent transactions as financial advice.
// It never returns an error: failures are logged and converted to a
// user-facing fallback string.
func (s *Service) Advise(ctx context.Context, txs []ledger.Transaction) string {
	if len(txs) == 0 {
		return emptyFallback
	}

	if s.client == nil {
		slog.Warn("advisor requested but no AI client is configured")
		return errorFallback
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a personal finance advisor. Answer in Markdown with short, practical advice.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(txs),
			},
		},
	})
	if err != nil {
		slog.Warn("advisor request failed", "error", err)
		return errorFallback
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		slog.Warn("advisor returned an empty completion")
		return errorFallback
	}

	return resp.Choices[0].Message.Content
}

func buildPrompt(txs []ledger.Transaction) string {
	if len(txs) > maxTransactions {
		txs = txs[:maxTransactions]
	}

	entries := make([]entry, len(txs))
	for i, tx := range txs {
		entries[i] = entry{
			Type:     tx.Type,
			Amount:   tx.Amount.String(),
			Category: tx.Category,
			Date:     tx.Date.Format(time.DateOnly),
		}
	}

	// Marshalling a fixed struct slice cannot fail.
	blob, _ := json.Marshal(entries)

	return fmt.Sprintf(
		"Here are my most recent transactions as JSON:\n%s\n\nSummarize my spending habits and give me two or three concrete suggestions to improve them.",
		blob,
	)
}
