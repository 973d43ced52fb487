package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrValidation = errors.New("invalid input")
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// AssetClass groups investments for display.
type AssetClass string

const (
	AssetStock      AssetClass = "Stock"
	AssetCrypto     AssetClass = "Crypto"
	AssetRealEstate AssetClass = "RealEstate"
	AssetOther      AssetClass = "Other"
)

// Transaction is a single income or expense entry. Immutable once created
// except for deletion.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Type        Type            `json:"type"`
}

// Bill is a recurring payment reminder. IsPaid is the only field that
// changes after creation.
type Bill struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	DueDate  time.Time       `json:"dueDate"`
	Category string          `json:"category"`
	IsPaid   bool            `json:"isPaid"`
}

// Budget is a monthly spending limit for one category. Spend against it is
// always derived from transactions, never stored.
type Budget struct {
	ID       uuid.UUID       `json:"id"`
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
}

// Investment is a user-tracked holding. CurrentPrice is user-entered;
// profit/loss is derived, never stored.
type Investment struct {
	ID            uuid.UUID       `json:"id"`
	AssetName     string          `json:"assetName"`
	Symbol        string          `json:"symbol"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	PurchaseDate  time.Time       `json:"purchaseDate"`
	Category      AssetClass      `json:"category"`
}

// DateOnly strips the time-of-day portion, normalizing to UTC midnight so
// calendar-day comparisons are exact.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
