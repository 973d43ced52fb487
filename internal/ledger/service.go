package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tbeckett/finboard/internal/storage"
)

// Storage keys, one per collection. Each collection persists independently
// and immediately after every mutation; there is no transactional grouping
// across them.
const (
	KeyTransactions = "transactions"
	KeyBills        = "bills"
	KeyBudgets      = "budgets"
	KeyInvestments  = "investments"
)

// Service owns the four record collections. All mutations go through it:
// each handler validates, replaces the collection value copy-on-write, and
// writes the full collection back to storage. The in-memory collections stay
// authoritative even when a write fails.
type Service struct {
	store storage.Store

	mu           sync.Mutex
	transactions []Transaction
	bills        []Bill
	budgets      []Budget
	investments  []Investment
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// Load reads all four collections from storage. A missing key or a blob that
// does not parse fails open to an empty collection; Load never returns an
// error to the caller.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loadCollection(ctx, s.store, KeyTransactions, &s.transactions)
	loadCollection(ctx, s.store, KeyBills, &s.bills)
	loadCollection(ctx, s.store, KeyBudgets, &s.budgets)
	loadCollection(ctx, s.store, KeyInvestments, &s.investments)
}

func loadCollection[T any](ctx context.Context, store storage.Store, key string, dst *[]T) {
	*dst = nil

	blob, err := store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("failed to load collection, starting empty", "key", key, "error", err)
		}

		return
	}

	if err := json.Unmarshal(blob, dst); err != nil {
		slog.Warn("stored collection is malformed, starting empty", "key", key, "error", err)

		*dst = nil
	}
}

// persist writes one collection back in full. Writes are fire-and-forget:
// a failure is logged and the in-memory value remains authoritative.
func (s *Service) persist(ctx context.Context, key string, collection any) {
	blob, err := json.Marshal(collection)
	if err != nil {
		slog.Error("failed to encode collection", "key", key, "error", err)
		return
	}

	if err := s.store.Save(ctx, key, blob); err != nil {
		slog.Warn("failed to persist collection", "key", key, "error", err)
	}
}

type AddTransactionParams struct {
	Amount      decimal.Decimal
	Type        Type
	Category    string
	Description string
	Date        time.Time
}

// AddTransaction validates the params, assigns a fresh id, defaults the date
// to today and the category to the first seeded category, and prepends the
// new transaction so the collection stays newest-first.
func (s *Service) AddTransaction(ctx context.Context, params AddTransactionParams) (*Transaction, error) {
	if !params.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	if strings.TrimSpace(params.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	if params.Type != TypeIncome && params.Type != TypeExpense {
		return nil, fmt.Errorf("%w: type must be income or expense", ErrValidation)
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	category := params.Category
	if category == "" {
		category = DefaultCategory().Name
	}

	tx := Transaction{
		ID:          uuid.New(),
		Date:        DateOnly(date),
		Amount:      params.Amount,
		Category:    category,
		Description: params.Description,
		Type:        params.Type,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Transaction, 0, len(s.transactions)+1)
	next = append(next, tx)
	next = append(next, s.transactions...)
	s.transactions = next

	s.persist(ctx, KeyTransactions, s.transactions)

	return &tx, nil
}

// DeleteTransaction removes the transaction with the given id. Deleting an
// absent id is a no-op.
func (s *Service) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.transactions), func(tx Transaction) bool {
		return tx.ID == id
	})
	if len(next) == len(s.transactions) {
		return nil
	}

	s.transactions = next
	s.persist(ctx, KeyTransactions, s.transactions)

	return nil
}

type AddBillParams struct {
	Name     string
	Amount   decimal.Decimal
	DueDate  time.Time
	Category string
}

// AddBill appends a new unpaid bill. The category defaults to "Utilities".
func (s *Service) AddBill(ctx context.Context, params AddBillParams) (*Bill, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	if !params.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	if params.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", ErrValidation)
	}

	category := params.Category
	if category == "" {
		category = "Utilities"
	}

	bill := Bill{
		ID:       uuid.New(),
		Name:     params.Name,
		Amount:   params.Amount,
		DueDate:  DateOnly(params.DueDate),
		Category: category,
		IsPaid:   false,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.bills = append(slices.Clone(s.bills), bill)
	s.persist(ctx, KeyBills, s.bills)

	return &bill, nil
}

// ToggleBillPaid flips the paid flag on the bill with the given id.
func (s *Service) ToggleBillPaid(ctx context.Context, id uuid.UUID) (*Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.bills)
	for i, bill := range next {
		if bill.ID != id {
			continue
		}

		bill.IsPaid = !bill.IsPaid
		next[i] = bill
		s.bills = next

		s.persist(ctx, KeyBills, s.bills)

		return &bill, nil
	}

	return nil, ErrNotFound
}

type AddBudgetParams struct {
	Category string
	Limit    decimal.Decimal
}

// AddBudget appends a new budget. No uniqueness check is made against
// existing categories: multiple budgets for the same category are permitted
// and each is tracked independently.
func (s *Service) AddBudget(ctx context.Context, params AddBudgetParams) (*Budget, error) {
	if strings.TrimSpace(params.Category) == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}

	if !params.Limit.IsPositive() {
		return nil, fmt.Errorf("%w: limit must be positive", ErrValidation)
	}

	budget := Budget{
		ID:       uuid.New(),
		Category: params.Category,
		Limit:    params.Limit,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.budgets = append(slices.Clone(s.budgets), budget)
	s.persist(ctx, KeyBudgets, s.budgets)

	return &budget, nil
}

type AddInvestmentParams struct {
	AssetName     string
	Symbol        string
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
	CurrentPrice  decimal.Decimal
	PurchaseDate  time.Time
	Category      AssetClass
}

// AddInvestment appends a new holding.
func (s *Service) AddInvestment(ctx context.Context, params AddInvestmentParams) (*Investment, error) {
	if strings.TrimSpace(params.AssetName) == "" {
		return nil, fmt.Errorf("%w: asset name is required", ErrValidation)
	}

	if params.Quantity.IsNegative() || params.PurchasePrice.IsNegative() || params.CurrentPrice.IsNegative() {
		return nil, fmt.Errorf("%w: quantity and prices must not be negative", ErrValidation)
	}

	category := params.Category
	if category == "" {
		category = AssetOther
	}

	inv := Investment{
		ID:            uuid.New(),
		AssetName:     params.AssetName,
		Symbol:        params.Symbol,
		Quantity:      params.Quantity,
		PurchasePrice: params.PurchasePrice,
		CurrentPrice:  params.CurrentPrice,
		PurchaseDate:  DateOnly(params.PurchaseDate),
		Category:      category,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.investments = append(slices.Clone(s.investments), inv)
	s.persist(ctx, KeyInvestments, s.investments)

	return &inv, nil
}

// Transactions returns a snapshot copy of the transaction collection,
// newest-added first.
func (s *Service) Transactions() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.transactions)
}

func (s *Service) Bills() []Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.bills)
}

func (s *Service) Budgets() []Budget {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.budgets)
}

func (s *Service) Investments() []Investment {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.investments)
}
