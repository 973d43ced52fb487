package stats_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbeckett/finboard/internal/ledger"
	"github.com/tbeckett/finboard/internal/stats"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tx(amount string, typ ledger.Type, category string, d time.Time) ledger.Transaction {
	return ledger.Transaction{
		ID:          uuid.New(),
		Date:        d,
		Amount:      dec(amount),
		Category:    category,
		Description: category,
		Type:        typ,
	}
}

func TestSummarize(t *testing.T) {
	type testCase struct {
		name         string
		txs          []ledger.Transaction
		wantIncome   string
		wantExpenses string
		wantBalance  string
	}

	tests := []testCase{
		{
			name:         "Empty",
			txs:          nil,
			wantIncome:   "0",
			wantExpenses: "0",
			wantBalance:  "0",
		},
		{
			name: "IncomeAndExpense",
			txs: []ledger.Transaction{
				tx("100", ledger.TypeIncome, "Salary", date(2024, 1, 1)),
				tx("40", ledger.TypeExpense, "Food & Dining", date(2024, 1, 2)),
			},
			wantIncome:   "100",
			wantExpenses: "40",
			wantBalance:  "60",
		},
		{
			name: "FractionalAmountsExact",
			txs: []ledger.Transaction{
				tx("0.10", ledger.TypeIncome, "Salary", date(2024, 1, 1)),
				tx("0.20", ledger.TypeIncome, "Salary", date(2024, 1, 1)),
				tx("0.30", ledger.TypeExpense, "Food & Dining", date(2024, 1, 2)),
			},
			wantIncome:   "0.3",
			wantExpenses: "0.3",
			wantBalance:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stats.Summarize(tt.txs)

			assert.True(t, got.Income.Equal(dec(tt.wantIncome)), "income = %s", got.Income)
			assert.True(t, got.Expenses.Equal(dec(tt.wantExpenses)), "expenses = %s", got.Expenses)
			assert.True(t, got.Balance.Equal(dec(tt.wantBalance)), "balance = %s", got.Balance)
			assert.True(t, got.Balance.Equal(got.Income.Sub(got.Expenses)))
		})
	}
}

func TestWeeklyActivity(t *testing.T) {
	today := date(2024, 1, 10)

	txs := []ledger.Transaction{
		tx("10", ledger.TypeIncome, "Salary", date(2024, 1, 4)),
		tx("5", ledger.TypeExpense, "Food & Dining", date(2024, 1, 10)),
		tx("7", ledger.TypeExpense, "Food & Dining", date(2024, 1, 10)),
		// Outside the window.
		tx("99", ledger.TypeExpense, "Food & Dining", date(2024, 1, 3)),
		// Same month and day, different year: must not collide with Jan 9 2024.
		tx("50", ledger.TypeExpense, "Food & Dining", date(2023, 1, 9)),
	}

	days := stats.WeeklyActivity(txs, today)
	require.Len(t, days, 7)

	assert.Equal(t, "Jan 4", days[0].Label)
	assert.Equal(t, "Jan 10", days[6].Label)

	assert.True(t, days[0].Income.Equal(dec("10")), "oldest bucket income = %s", days[0].Income)
	assert.True(t, days[6].Expense.Equal(dec("12")), "today expense = %s", days[6].Expense)

	// Jan 9 2024 bucket stays empty despite the Jan 9 2023 transaction.
	assert.Equal(t, "Jan 9", days[5].Label)
	assert.True(t, days[5].Expense.IsZero(), "year collision leaked: %s", days[5].Expense)

	for _, day := range days[1:5] {
		assert.True(t, day.Income.IsZero())
		assert.True(t, day.Expense.IsZero())
	}
}

func TestCategoryBreakdown(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, stats.CategoryBreakdown(nil))
	})

	t.Run("GroupsExpensesOnly", func(t *testing.T) {
		txs := []ledger.Transaction{
			tx("40", ledger.TypeExpense, "Food & Dining", date(2024, 1, 2)),
			tx("15", ledger.TypeExpense, "Transport", date(2024, 1, 3)),
			tx("10", ledger.TypeExpense, "Food & Dining", date(2024, 1, 4)),
			tx("1000", ledger.TypeIncome, "Salary", date(2024, 1, 1)),
		}

		got := stats.CategoryBreakdown(txs)
		require.Len(t, got, 2)

		assert.Equal(t, "Food & Dining", got[0].Category)
		assert.True(t, got[0].Total.Equal(dec("50")))
		assert.Equal(t, "Transport", got[1].Category)
		assert.True(t, got[1].Total.Equal(dec("15")))
	})
}

func TestBudgetsProgress(t *testing.T) {
	budget := func(category, limit string) ledger.Budget {
		return ledger.Budget{ID: uuid.New(), Category: category, Limit: dec(limit)}
	}

	txs := []ledger.Transaction{
		tx("40", ledger.TypeExpense, "Food & Dining", date(2024, 1, 2)),
		tx("300", ledger.TypeExpense, "Shopping", date(2024, 1, 3)),
		tx("1000", ledger.TypeIncome, "Food & Dining", date(2024, 1, 1)),
	}

	t.Run("PercentageOfLimit", func(t *testing.T) {
		got := stats.BudgetsProgress([]ledger.Budget{budget("Food & Dining", "100")}, txs)
		require.Len(t, got, 1)

		assert.True(t, got[0].Spent.Equal(dec("40")), "spent = %s", got[0].Spent)
		assert.True(t, got[0].Remaining.Equal(dec("60")))
		assert.Equal(t, 40.0, got[0].Percentage)
	})

	t.Run("ClampedAt100", func(t *testing.T) {
		got := stats.BudgetsProgress([]ledger.Budget{budget("Shopping", "200")}, txs)
		require.Len(t, got, 1)

		assert.Equal(t, 100.0, got[0].Percentage)
		assert.True(t, got[0].Remaining.Equal(dec("-100")))
	})

	t.Run("ZeroLimitYieldsZeroNotNaN", func(t *testing.T) {
		got := stats.BudgetsProgress([]ledger.Budget{budget("Shopping", "0")}, txs)
		require.Len(t, got, 1)

		assert.Equal(t, 0.0, got[0].Percentage)
	})

	t.Run("DuplicateCategoryBudgetsTrackedIndependently", func(t *testing.T) {
		got := stats.BudgetsProgress([]ledger.Budget{
			budget("Food & Dining", "100"),
			budget("Food & Dining", "80"),
		}, txs)
		require.Len(t, got, 2)

		assert.Equal(t, 40.0, got[0].Percentage)
		assert.Equal(t, 50.0, got[1].Percentage)
	})

	t.Run("NoSpend", func(t *testing.T) {
		got := stats.BudgetsProgress([]ledger.Budget{budget("Health", "100")}, txs)
		require.Len(t, got, 1)

		assert.True(t, got[0].Spent.IsZero())
		assert.Equal(t, 0.0, got[0].Percentage)
	})
}

func TestPortfolioSummary(t *testing.T) {
	inv := func(purchase, current, qty string) ledger.Investment {
		return ledger.Investment{
			ID:            uuid.New(),
			AssetName:     "asset",
			Quantity:      dec(qty),
			PurchasePrice: dec(purchase),
			CurrentPrice:  dec(current),
			Category:      ledger.AssetStock,
		}
	}

	t.Run("Empty", func(t *testing.T) {
		got := stats.PortfolioSummary(nil)

		assert.True(t, got.TotalInvested.IsZero())
		assert.True(t, got.CurrentValue.IsZero())
		assert.True(t, got.ProfitLoss.IsZero())
		assert.Equal(t, 0.0, got.ProfitLossPercentage)
	})

	t.Run("GainAcrossHoldings", func(t *testing.T) {
		got := stats.PortfolioSummary([]ledger.Investment{
			inv("10", "15", "2"),
			inv("100", "90", "1"),
		})

		assert.True(t, got.TotalInvested.Equal(dec("120")), "invested = %s", got.TotalInvested)
		assert.True(t, got.CurrentValue.Equal(dec("120")))
		assert.True(t, got.ProfitLoss.IsZero())
		assert.True(t, got.ProfitLoss.Equal(got.CurrentValue.Sub(got.TotalInvested)))
		assert.Equal(t, 0.0, got.ProfitLossPercentage)
	})

	t.Run("PercentageGain", func(t *testing.T) {
		got := stats.PortfolioSummary([]ledger.Investment{inv("10", "15", "2")})

		assert.True(t, got.TotalInvested.Equal(dec("20")))
		assert.True(t, got.CurrentValue.Equal(dec("30")))
		assert.True(t, got.ProfitLoss.Equal(dec("10")))
		assert.Equal(t, 50.0, got.ProfitLossPercentage)
	})

	t.Run("ZeroInvestedYieldsZeroPercentage", func(t *testing.T) {
		got := stats.PortfolioSummary([]ledger.Investment{inv("0", "15", "2")})

		assert.True(t, got.TotalInvested.IsZero())
		assert.Equal(t, 0.0, got.ProfitLossPercentage)
	})
}

func TestAssetPerformance(t *testing.T) {
	type testCase struct {
		name     string
		purchase string
		current  string
		want     float64
	}

	tests := []testCase{
		{name: "Gain", purchase: "10", current: "15", want: 50},
		{name: "Loss", purchase: "200", current: "150", want: -25},
		{name: "Flat", purchase: "10", current: "10", want: 0},
		{name: "ZeroPurchasePrice", purchase: "0", current: "15", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stats.AssetPerformance(ledger.Investment{
				PurchasePrice: dec(tt.purchase),
				CurrentPrice:  dec(tt.current),
				Quantity:      dec("1"),
			})

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterTransactions(t *testing.T) {
	groceries := tx("40", ledger.TypeExpense, "Food & Dining", date(2024, 1, 2))
	groceries.Description = "Weekly groceries"

	fuel := tx("30", ledger.TypeExpense, "Transport", date(2024, 1, 5))
	fuel.Description = "Fuel"

	salary := tx("1000", ledger.TypeIncome, "Salary", date(2024, 1, 5))
	salary.Description = "January salary"

	txs := []ledger.Transaction{groceries, fuel, salary}

	t.Run("EmptyQueryReturnsAllSortedByDateDesc", func(t *testing.T) {
		got := stats.FilterTransactions(txs, "")
		require.Len(t, got, 3)

		// Same-date entries keep their relative order (stable sort).
		assert.Equal(t, fuel.ID, got[0].ID)
		assert.Equal(t, salary.ID, got[1].ID)
		assert.Equal(t, groceries.ID, got[2].ID)
	})

	t.Run("MatchesDescriptionCaseInsensitive", func(t *testing.T) {
		got := stats.FilterTransactions(txs, "GROCER")
		require.Len(t, got, 1)
		assert.Equal(t, groceries.ID, got[0].ID)
	})

	t.Run("MatchesCategory", func(t *testing.T) {
		got := stats.FilterTransactions(txs, "transport")
		require.Len(t, got, 1)
		assert.Equal(t, fuel.ID, got[0].ID)
	})

	t.Run("NoMatch", func(t *testing.T) {
		assert.Empty(t, stats.FilterTransactions(txs, "does-not-exist"))
	})
}
