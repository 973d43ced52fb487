// Package stats computes every derived value on the dashboard. All functions
// are pure: they read the record collections passed in and keep no state, so
// recomputed values can never drift out of sync with their inputs.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tbeckett/finboard/internal/ledger"
)

// Summary holds the headline totals. Balance is income minus expenses,
// computed exactly.
type Summary struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

func Summarize(txs []ledger.Transaction) Summary {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, tx := range txs {
		switch tx.Type {
		case ledger.TypeIncome:
			income = income.Add(tx.Amount)
		case ledger.TypeExpense:
			expenses = expenses.Add(tx.Amount)
		}
	}

	return Summary{
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}
}

// DayActivity is one bucket of the 7-day income/expense series.
type DayActivity struct {
	Date    time.Time       `json:"date"`
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// WeeklyActivity buckets transactions into the 7 calendar days ending today
// (inclusive), oldest first. Bucketing uses the full calendar date, so
// same-month-and-day transactions from other years never collide.
func WeeklyActivity(txs []ledger.Transaction, today time.Time) []DayActivity {
	type dayKey struct {
		year  int
		month time.Month
		day   int
	}

	key := func(t time.Time) dayKey {
		y, m, d := t.UTC().Date()
		return dayKey{y, m, d}
	}

	income := make(map[dayKey]decimal.Decimal)
	expense := make(map[dayKey]decimal.Decimal)

	for _, tx := range txs {
		k := key(tx.Date)

		switch tx.Type {
		case ledger.TypeIncome:
			income[k] = income[k].Add(tx.Amount)
		case ledger.TypeExpense:
			expense[k] = expense[k].Add(tx.Amount)
		}
	}

	days := make([]DayActivity, 0, 7)

	for i := 6; i >= 0; i-- {
		day := ledger.DateOnly(today).AddDate(0, 0, -i)
		k := key(day)

		days = append(days, DayActivity{
			Date:    day,
			Label:   day.Format("Jan 2"),
			Income:  income[k],
			Expense: expense[k],
		})
	}

	return days
}

// CategoryTotal is the total expense spend for one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// CategoryBreakdown groups expense transactions by category string. Categories
// with no spend do not appear. The result is ordered by total descending
// (ties broken by name) so repeated reads are deterministic.
func CategoryBreakdown(txs []ledger.Transaction) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)

	for _, tx := range txs {
		if tx.Type != ledger.TypeExpense {
			continue
		}

		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}

	out := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		out = append(out, CategoryTotal{Category: category, Total: total})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}

		return out[i].Category < out[j].Category
	})

	return out
}

// BudgetProgress is one budget with its derived spend.
type BudgetProgress struct {
	ID         uuid.UUID       `json:"id"`
	Category   string          `json:"category"`
	Limit      decimal.Decimal `json:"limit"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage float64         `json:"percentage"`
}

// BudgetsProgress derives spend for each budget from the expense transactions
// whose category matches it. Percentage is clamped to [0, 100]; a limit of
// zero or less yields 0 rather than a non-finite value.
func BudgetsProgress(budgets []ledger.Budget, txs []ledger.Transaction) []BudgetProgress {
	spentByCategory := make(map[string]decimal.Decimal)

	for _, tx := range txs {
		if tx.Type != ledger.TypeExpense {
			continue
		}

		spentByCategory[tx.Category] = spentByCategory[tx.Category].Add(tx.Amount)
	}

	out := make([]BudgetProgress, 0, len(budgets))

	for _, b := range budgets {
		spent := spentByCategory[b.Category]

		out = append(out, BudgetProgress{
			ID:         b.ID,
			Category:   b.Category,
			Limit:      b.Limit,
			Spent:      spent,
			Remaining:  b.Limit.Sub(spent),
			Percentage: budgetPercentage(spent, b.Limit),
		})
	}

	return out
}

func budgetPercentage(spent, limit decimal.Decimal) float64 {
	if !limit.IsPositive() {
		return 0
	}

	pct := spent.Div(limit).Mul(decimal.NewFromInt(100))
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return 100
	}

	f, _ := pct.Round(2).Float64()

	return f
}

// Portfolio holds the totals derived across all holdings.
type Portfolio struct {
	TotalInvested        decimal.Decimal `json:"totalInvested"`
	CurrentValue         decimal.Decimal `json:"currentValue"`
	ProfitLoss           decimal.Decimal `json:"profitLoss"`
	ProfitLossPercentage float64         `json:"profitLossPercentage"`
}

func PortfolioSummary(invs []ledger.Investment) Portfolio {
	invested := decimal.Zero
	current := decimal.Zero

	for _, inv := range invs {
		invested = invested.Add(inv.PurchasePrice.Mul(inv.Quantity))
		current = current.Add(inv.CurrentPrice.Mul(inv.Quantity))
	}

	profitLoss := current.Sub(invested)

	var pct float64
	if invested.IsPositive() {
		pct, _ = profitLoss.Div(invested).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	}

	return Portfolio{
		TotalInvested:        invested,
		CurrentValue:         current,
		ProfitLoss:           profitLoss,
		ProfitLossPercentage: pct,
	}
}

// AssetPerformance is the percentage gain or loss of one holding against its
// purchase price. A purchase price of zero yields 0 rather than a non-finite
// value.
func AssetPerformance(inv ledger.Investment) float64 {
	if !inv.PurchasePrice.IsPositive() {
		return 0
	}

	pct, _ := inv.CurrentPrice.Sub(inv.PurchasePrice).
		Div(inv.PurchasePrice).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		Float64()

	return pct
}

// FilterTransactions returns transactions whose description or category
// contains the query (case-insensitive), sorted by date descending. The sort
// is stable: same-date entries keep their relative insertion order. An empty
// query matches everything.
func FilterTransactions(txs []ledger.Transaction, query string) []ledger.Transaction {
	query = strings.ToLower(query)

	out := make([]ledger.Transaction, 0, len(txs))

	for _, tx := range txs {
		if query == "" ||
			strings.Contains(strings.ToLower(tx.Description), query) ||
			strings.Contains(strings.ToLower(tx.Category), query) {
			out = append(out, tx)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	return out
}
