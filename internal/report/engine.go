// Package report derives the monthly financial report from an owner's
// stored records. It is purely read-then-compute: the engine never
// mutates anything except through the goal get-or-create accessor, and
// repeated calls over unchanged data produce identical output.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fedha/internal/core"
)

// LimitStatus reports how today's spending compares to the configured
// daily limit.
type LimitStatus string

const (
	LimitGood     LimitStatus = "Good"
	LimitExceeded LimitStatus = "Exceeded"
)

// Store is the read boundary the engine computes over. Implementations
// must scope every query to the given owner.
type Store interface {
	// IncomeForMonth returns income records dated in the given calendar month.
	IncomeForMonth(ctx context.Context, ownerID int64, year int, month time.Month) ([]core.Income, error)
	// ExpensesForMonth returns expenses dated in the given calendar month,
	// newest first.
	ExpensesForMonth(ctx context.Context, ownerID int64, year int, month time.Month) ([]core.Expense, error)
	// ExpensesOn returns expenses whose date component equals day's date,
	// regardless of month.
	ExpensesOn(ctx context.Context, ownerID int64, day time.Time) ([]core.Expense, error)
	// RecurringBills returns all of the owner's bills ordered by ascending
	// next due date.
	RecurringBills(ctx context.Context, ownerID int64) ([]core.RecurringBill, error)
	// FinancialGoal fetches the owner's goal singleton, creating a
	// zero-valued one if absent.
	FinancialGoal(ctx context.Context, ownerID int64) (core.FinancialGoal, error)
}

// ChartSeries holds parallel label/value arrays for presentation. Values
// are float64 by contract; everything upstream stays decimal.
type ChartSeries struct {
	Labels []string
	Values []float64
}

// Report is the full output of one engine run.
type Report struct {
	Goal core.FinancialGoal

	ActualIncome    decimal.Decimal // sum of logged income this month
	ProjectedIncome decimal.Decimal // salary + daily estimate * 30, informational
	TotalIncome     decimal.Decimal // salary + logged income

	Expenses      []core.Expense // this month, newest first
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal

	SavingsProgress  decimal.Decimal // percent, clamped to [0, 100]
	TodayExpenses    decimal.Decimal
	DailyLimitStatus LimitStatus

	Recurring      []core.RecurringBill // ascending next due date
	RecurringTotal decimal.Decimal

	Advice []Advisory

	Week       ChartSeries // last 7 days of expenses, oldest first
	Categories ChartSeries // month expenses by category, descending
}

type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

var (
	thirty     = decimal.NewFromInt(30)
	oneHundred = decimal.NewFromInt(100)
)

// Build computes the report for ownerID as of now. Any store failure
// aborts the whole report; empty record sets yield zero sums.
func (e *Engine) Build(ctx context.Context, ownerID int64, now time.Time) (*Report, error) {
	year, month := now.Year(), now.Month()

	goal, err := e.store.FinancialGoal(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load financial goal: %w", err)
	}

	incomes, err := e.store.IncomeForMonth(ctx, ownerID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list month income: %w", err)
	}
	actualIncome := decimal.Zero
	for _, in := range incomes {
		actualIncome = actualIncome.Add(in.Amount)
	}

	expenses, err := e.store.ExpensesForMonth(ctx, ownerID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list month expenses: %w", err)
	}
	totalExpenses := decimal.Zero
	todayExpenses := decimal.Zero
	for _, ex := range expenses {
		totalExpenses = totalExpenses.Add(ex.Amount)
		if core.SameDay(ex.CreatedAt, now) {
			todayExpenses = todayExpenses.Add(ex.Amount)
		}
	}

	r := &Report{
		Goal:            goal,
		ActualIncome:    actualIncome,
		ProjectedIncome: goal.MonthlySalary.Add(goal.DailyIncomeEst.Mul(thirty)),
		TotalIncome:     goal.MonthlySalary.Add(actualIncome),
		Expenses:        expenses,
		TotalExpenses:   totalExpenses,
		TodayExpenses:   todayExpenses,
	}
	r.Balance = r.TotalIncome.Sub(totalExpenses)
	r.SavingsProgress = savingsProgress(r.Balance, goal.SavingsGoal)

	r.DailyLimitStatus = LimitGood
	if goal.DailySpendingLimit.IsPositive() && todayExpenses.GreaterThan(goal.DailySpendingLimit) {
		r.DailyLimitStatus = LimitExceeded
	}

	bills, err := e.store.RecurringBills(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list recurring bills: %w", err)
	}
	r.Recurring = bills
	r.RecurringTotal = decimal.Zero
	for _, b := range bills {
		r.RecurringTotal = r.RecurringTotal.Add(b.Amount)
	}

	r.Advice = buildAdvice(r)

	week, err := e.weekSeries(ctx, ownerID, now)
	if err != nil {
		return nil, err
	}
	r.Week = week
	r.Categories = categorySeries(expenses)

	return r, nil
}

// savingsProgress is balance/goal as a percentage, clamped to [0, 100].
// A zero goal disables the metric; a negative balance clamps to 0 even
// though the goal is being missed (observed behavior, kept on purpose).
func savingsProgress(balance, goal decimal.Decimal) decimal.Decimal {
	if !goal.IsPositive() {
		return decimal.Zero
	}
	p := balance.Div(goal).Mul(oneHundred)
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(oneHundred) {
		return oneHundred
	}
	return p
}

// weekSeries totals each of the 7 days ending on now's date, oldest
// first. Days are queried individually so the window may reach into the
// previous month.
func (e *Engine) weekSeries(ctx context.Context, ownerID int64, now time.Time) (ChartSeries, error) {
	s := ChartSeries{
		Labels: make([]string, 0, 7),
		Values: make([]float64, 0, 7),
	}
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		items, err := e.store.ExpensesOn(ctx, ownerID, day)
		if err != nil {
			return ChartSeries{}, fmt.Errorf("list expenses on %s: %w", day.Format("2006-01-02"), err)
		}
		total := decimal.Zero
		for _, ex := range items {
			total = total.Add(ex.Amount)
		}
		s.Labels = append(s.Labels, day.Format("Mon 02"))
		s.Values = append(s.Values, total.InexactFloat64())
	}
	return s, nil
}

// categorySeries groups the month's expenses by category and sorts by
// descending total. Ties keep UI category order for a stable result.
func categorySeries(expenses []core.Expense) ChartSeries {
	totals := make(map[core.Category]decimal.Decimal)
	for _, ex := range expenses {
		totals[ex.Category] = totals[ex.Category].Add(ex.Amount)
	}

	order := make(map[core.Category]int, len(totals))
	for i, c := range core.Categories() {
		order[c] = i
	}
	cats := make([]core.Category, 0, len(totals))
	for c := range totals {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		a, b := totals[cats[i]], totals[cats[j]]
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return order[cats[i]] < order[cats[j]]
	})

	s := ChartSeries{
		Labels: make([]string, 0, len(cats)),
		Values: make([]float64, 0, len(cats)),
	}
	for _, c := range cats {
		s.Labels = append(s.Labels, string(c))
		s.Values = append(s.Values, totals[c].InexactFloat64())
	}
	return s
}
