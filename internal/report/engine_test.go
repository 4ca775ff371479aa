package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fedha/internal/core"
)

// fakeStore serves canned records; queries ignore year/month filtering
// beyond what the test pre-sorts, except ExpensesOn which filters by day.
type fakeStore struct {
	goal     core.FinancialGoal
	incomes  []core.Income
	expenses []core.Expense // newest first, current month
	bills    []core.RecurringBill
	err      error
}

func (f *fakeStore) IncomeForMonth(_ context.Context, _ int64, _ int, _ time.Month) ([]core.Income, error) {
	return f.incomes, f.err
}

func (f *fakeStore) ExpensesForMonth(_ context.Context, _ int64, year int, month time.Month) ([]core.Expense, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []core.Expense
	for _, e := range f.expenses {
		if e.CreatedAt.Year() == year && e.CreatedAt.Month() == month {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) ExpensesOn(_ context.Context, _ int64, day time.Time) ([]core.Expense, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []core.Expense
	for _, e := range f.expenses {
		if core.SameDay(e.CreatedAt, day) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) RecurringBills(_ context.Context, _ int64) ([]core.RecurringBill, error) {
	return f.bills, f.err
}

func (f *fakeStore) FinancialGoal(_ context.Context, _ int64) (core.FinancialGoal, error) {
	return f.goal, f.err
}

var testNow = time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func expense(amount string, cat core.Category, at time.Time) core.Expense {
	return core.Expense{Title: "t", Amount: dec(amount), Category: cat, CreatedAt: at}
}

func TestBuildEmptyMonth(t *testing.T) {
	store := &fakeStore{goal: core.FinancialGoal{MonthlySalary: dec("300000")}}
	r, err := NewEngine(store).Build(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.TotalIncome.Equal(dec("300000")) {
		t.Fatalf("total income = %s, want salary", r.TotalIncome)
	}
	if !r.TotalExpenses.IsZero() {
		t.Fatalf("total expenses = %s, want 0", r.TotalExpenses)
	}
	if !r.Balance.Equal(dec("300000")) {
		t.Fatalf("balance = %s, want salary", r.Balance)
	}
	if r.DailyLimitStatus != LimitGood {
		t.Fatalf("limit status = %s, want Good", r.DailyLimitStatus)
	}
}

// The worked example from the report contract: salary 500000, one Food
// expense of 50000 today, no savings goal.
func TestBuildSalaryWithOneExpense(t *testing.T) {
	store := &fakeStore{
		goal:     core.FinancialGoal{MonthlySalary: dec("500000")},
		expenses: []core.Expense{expense("50000", core.CategoryFood, testNow)},
	}
	r, err := NewEngine(store).Build(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.TotalIncome.Equal(dec("500000")) {
		t.Fatalf("total income = %s", r.TotalIncome)
	}
	if !r.TotalExpenses.Equal(dec("50000")) {
		t.Fatalf("total expenses = %s", r.TotalExpenses)
	}
	if !r.Balance.Equal(dec("450000")) {
		t.Fatalf("balance = %s", r.Balance)
	}
	if !r.SavingsProgress.IsZero() {
		t.Fatalf("savings progress = %s, want 0 for zero goal", r.SavingsProgress)
	}
	if r.DailyLimitStatus != LimitGood {
		t.Fatalf("limit status = %s, zero limit disables the check", r.DailyLimitStatus)
	}
	if len(r.Advice) != 1 || r.Advice[0].Severity != SeveritySuccess {
		t.Fatalf("advice = %+v, want single success advisory", r.Advice)
	}
}

func TestBuildOverspentTakesPrecedence(t *testing.T) {
	store := &fakeStore{
		expenses: []core.Expense{expense("1000", core.CategoryFood, testNow)},
	}
	r, err := NewEngine(store).Build(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Balance.Equal(dec("-1000")) {
		t.Fatalf("balance = %s", r.Balance)
	}
	if len(r.Advice) != 1 || r.Advice[0].Severity != SeverityDanger {
		t.Fatalf("advice = %+v, want single overspent danger", r.Advice)
	}
	// clamped, never negative
	if !r.SavingsProgress.IsZero() {
		t.Fatalf("savings progress = %s", r.SavingsProgress)
	}
}

func TestSavingsProgressClamped(t *testing.T) {
	cases := []struct {
		balance, goal, want string
	}{
		{"50000", "100000", "50"},
		{"100000", "100000", "100"},
		{"250000", "100000", "100"}, // over-achieved, clamp high
		{"-5000", "100000", "0"},    // negative balance, clamp low
		{"5000", "0", "0"},          // no goal set
	}
	for _, tc := range cases {
		got := savingsProgress(dec(tc.balance), dec(tc.goal))
		if !got.Equal(dec(tc.want)) {
			t.Fatalf("savingsProgress(%s, %s) = %s, want %s", tc.balance, tc.goal, got, tc.want)
		}
	}
}

func TestDailyLimitExceeded(t *testing.T) {
	store := &fakeStore{
		goal: core.FinancialGoal{
			MonthlySalary:      dec("500000"),
			DailySpendingLimit: dec("10000"),
		},
		expenses: []core.Expense{
			expense("8000", core.CategoryFood, testNow),
			expense("5000", core.CategoryTransport, testNow),
			// yesterday's expense must not count toward today
			expense("90000", core.CategoryOther, testNow.AddDate(0, 0, -1)),
		},
	}
	r, err := NewEngine(store).Build(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.TodayExpenses.Equal(dec("13000")) {
		t.Fatalf("today expenses = %s", r.TodayExpenses)
	}
	if r.DailyLimitStatus != LimitExceeded {
		t.Fatalf("limit status = %s, want Exceeded", r.DailyLimitStatus)
	}
	// healthy-savings success and daily-limit danger may co-occur
	var haveSuccess, haveLimitDanger bool
	for _, a := range r.Advice {
		if a.Severity == SeveritySuccess {
			haveSuccess = true
		}
		if a.Severity == SeverityDanger {
			haveLimitDanger = true
		}
	}
	if !haveSuccess || !haveLimitDanger {
		t.Fatalf("advice = %+v, want success plus daily-limit danger", r.Advice)
	}
}

func TestRecurringBillsAdvisory(t *testing.T) {
	store := &fakeStore{
		goal: core.FinancialGoal{MonthlySalary: dec("100000")},
		bills: []core.RecurringBill{
			{Title: "Kodi", Amount: dec("40000"), Category: core.CategoryOther, Frequency: core.Monthly, NextDueDate: testNow},
			{Title: "Vifurushi", Amount: dec("20000"), Category: core.CategoryCommunication, Frequency: core.Monthly, NextDueDate: testNow},
		},
	}
	r, err := NewEngine(store).Build(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.RecurringTotal.Equal(dec("60000")) {
		t.Fatalf("recurring total = %s", r.RecurringTotal)
	}
	var haveRecurring bool
	for _, a := range r.Advice {
		if a.Icon == "fa-file-invoice-dollar" {
			haveRecurring = true
		}
	}
	if !haveRecurring {
		t.Fatalf("advice = %+v, want recurring-over-half-salary warning", r.Advice)
	}
}

func TestAdviceNeverEmpty(t *testing.T) {
	// Salary with balance between 10% and 30% of income: no trio branch,
	// no limit breach, no recurring bills. Expect the generic info nudge.
	store := &fakeStore{
		goal:     core.FinancialGoal{MonthlySalary: dec("100000")},
		expenses: []core.Expense{expense("80000", core.CategoryFood, testNow)},
	}
	r, err := NewEngine(store).Build(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Advice) != 1 || r.Advice[0].Severity != SeverityInfo {
		t.Fatalf("advice = %+v, want single info message", r.Advice)
	}
}

func TestWeekSeriesShape(t *testing.T) {
	store := &fakeStore{
		expenses: []core.Expense{
			expense("100", core.CategoryFood, testNow),
			expense("200", core.CategoryFood, testNow.AddDate(0, 0, -3)),
			expense("400", core.CategoryFood, testNow.AddDate(0, 0, -6)),
			// outside the 7-day window
			expense("800", core.CategoryFood, testNow.AddDate(0, 0, -7)),
		},
	}
	r, err := NewEngine(store).Build(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Week.Labels) != 7 || len(r.Week.Values) != 7 {
		t.Fatalf("series lengths = %d/%d, want 7", len(r.Week.Labels), len(r.Week.Values))
	}
	if r.Week.Labels[6] != testNow.Format("Mon 02") {
		t.Fatalf("last label = %q, want today", r.Week.Labels[6])
	}
	var sum float64
	for _, v := range r.Week.Values {
		sum += v
	}
	if sum != 700 {
		t.Fatalf("series sum = %v, want 700", sum)
	}
	if r.Week.Values[0] != 400 || r.Week.Values[3] != 200 || r.Week.Values[6] != 100 {
		t.Fatalf("series = %v, want oldest first", r.Week.Values)
	}
}

func TestCategorySeries(t *testing.T) {
	store := &fakeStore{
		expenses: []core.Expense{
			expense("100", core.CategoryFood, testNow),
			expense("300", core.CategoryTransport, testNow),
			expense("50", core.CategoryFood, testNow),
		},
	}
	r, err := NewEngine(store).Build(context.Background(), 1, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLabels := []string{string(core.CategoryTransport), string(core.CategoryFood)}
	if len(r.Categories.Labels) != 2 {
		t.Fatalf("labels = %v", r.Categories.Labels)
	}
	for i, l := range wantLabels {
		if r.Categories.Labels[i] != l {
			t.Fatalf("labels = %v, want %v", r.Categories.Labels, wantLabels)
		}
	}
	var sum float64
	for _, v := range r.Categories.Values {
		sum += v
	}
	if sum != 450 {
		t.Fatalf("breakdown sum = %v, want month total 450", sum)
	}
}

func TestBuildPropagatesStoreErrors(t *testing.T) {
	store := &fakeStore{err: errors.New("boom")}
	if _, err := NewEngine(store).Build(context.Background(), 1, testNow); err == nil {
		t.Fatalf("expected store error to propagate")
	}
}

func TestHomeSummary(t *testing.T) {
	t.Run("no expense today", func(t *testing.T) {
		store := &fakeStore{
			goal: core.FinancialGoal{MonthlySalary: dec("200000")},
			expenses: []core.Expense{
				expense("10000", core.CategoryFood, testNow.AddDate(0, 0, -2)),
			},
		}
		s, err := NewEngine(store).Home(context.Background(), 1, testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !s.Balance.Equal(dec("190000")) {
			t.Fatalf("balance = %s", s.Balance)
		}
		if len(s.Notifications) != 1 {
			t.Fatalf("notifications = %v, want reminder nudge", s.Notifications)
		}
	})

	t.Run("expense recorded today", func(t *testing.T) {
		store := &fakeStore{
			expenses: []core.Expense{expense("500", core.CategoryFood, testNow)},
		}
		s, err := NewEngine(store).Home(context.Background(), 1, testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(s.Notifications) != 0 {
			t.Fatalf("notifications = %v, want none", s.Notifications)
		}
	})
}
