package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fedha/internal/core"
)

// HomeSummary is the lightweight month snapshot shown on the home page.
type HomeSummary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
	Notifications []string
}

// Home computes the month totals plus a nudge when today has no expense
// recorded yet.
func (e *Engine) Home(ctx context.Context, ownerID int64, now time.Time) (*HomeSummary, error) {
	year, month := now.Year(), now.Month()

	goal, err := e.store.FinancialGoal(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load financial goal: %w", err)
	}

	incomes, err := e.store.IncomeForMonth(ctx, ownerID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list month income: %w", err)
	}
	monthlyIncome := decimal.Zero
	for _, in := range incomes {
		monthlyIncome = monthlyIncome.Add(in.Amount)
	}

	expenses, err := e.store.ExpensesForMonth(ctx, ownerID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list month expenses: %w", err)
	}
	totalExpenses := decimal.Zero
	hasToday := false
	for _, ex := range expenses {
		totalExpenses = totalExpenses.Add(ex.Amount)
		if core.SameDay(ex.CreatedAt, now) {
			hasToday = true
		}
	}

	s := &HomeSummary{
		TotalIncome:   goal.MonthlySalary.Add(monthlyIncome),
		TotalExpenses: totalExpenses,
	}
	s.Balance = s.TotalIncome.Sub(totalExpenses)
	if !hasToday {
		s.Notifications = append(s.Notifications,
			"Leo bado hujaweka matumizi yako. Kumbuka kurekodi!")
	}
	return s, nil
}
