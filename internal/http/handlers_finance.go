package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"fedha/internal/core"
	"fedha/internal/report"
)

// monthReport serves Build results through the LRU cache.
func (s *Server) monthReport(r *http.Request, owner int64, now time.Time) (*report.Report, error) {
	key := reportCacheKey(owner, now.Year(), now.Month())
	if cached, ok := s.reportCache.Get(key); ok {
		return cached, nil
	}
	rep, err := s.engine.Build(r.Context(), owner, now)
	if err != nil {
		return nil, err
	}
	s.reportCache.Set(key, rep)
	return rep, nil
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	now := time.Now().UTC()

	rep, err := s.monthReport(r, owner, now)
	if err != nil {
		s.storeError(w, r, err)
		return
	}

	s.render(w, r, "expenses.html", struct {
		Report     *report.Report
		Categories []core.Category
		MonthName  string
		Exportable bool
	}{
		Report:     rep,
		Categories: core.Categories(),
		MonthName:  now.Format("January 2006"),
		Exportable: s.exporter != nil,
	})
}

type expensePage struct {
	Expense    core.Expense
	Amount     string
	Categories []core.Category
	Error      string
}

func (s *Server) handleNewExpenseForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "new_expense.html", expensePage{Categories: core.Categories()})
}

func (s *Server) handleNewExpense(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	rawAmount := sanitizeInput(r.PostFormValue("amount"))
	expense := core.Expense{
		OwnerID:  owner,
		Title:    sanitizeInput(r.PostFormValue("title")),
		Category: core.Category(sanitizeInput(r.PostFormValue("category"))),
	}

	amount, err := core.ParseAmount(rawAmount)
	if err == nil {
		expense.Amount = amount
		err = expense.Validate()
	}
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, r, "new_expense.html", expensePage{
			Expense: expense, Amount: rawAmount,
			Categories: core.Categories(), Error: err.Error(),
		})
		return
	}

	if err := s.store.CreateExpense(r.Context(), &expense); err != nil {
		s.storeError(w, r, err)
		return
	}
	s.invalidateReports(owner)
	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

func (s *Server) handleEditExpenseForm(w http.ResponseWriter, r *http.Request) {
	expense, err := s.store.ExpenseByID(r.Context(), ownerID(r), pathID(r, "id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.render(w, r, "edit_expense.html", expensePage{
		Expense: expense, Amount: expense.Amount.String(), Categories: core.Categories(),
	})
}

func (s *Server) handleEditExpense(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	expense, err := s.store.ExpenseByID(r.Context(), owner, pathID(r, "id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	rawAmount := sanitizeInput(r.PostFormValue("amount"))
	expense.Title = sanitizeInput(r.PostFormValue("title"))
	expense.Category = core.Category(sanitizeInput(r.PostFormValue("category")))

	amount, err := core.ParseAmount(rawAmount)
	if err == nil {
		expense.Amount = amount
		err = expense.Validate()
	}
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, r, "edit_expense.html", expensePage{
			Expense: expense, Amount: rawAmount,
			Categories: core.Categories(), Error: err.Error(),
		})
		return
	}

	if err := s.store.UpdateExpense(r.Context(), expense); err != nil {
		s.storeError(w, r, err)
		return
	}
	s.invalidateReports(owner)
	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	if err := s.store.DeleteExpense(r.Context(), owner, pathID(r, "id")); err != nil {
		s.storeError(w, r, err)
		return
	}
	s.invalidateReports(owner)
	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

type goalsPage struct {
	Goal  core.FinancialGoal
	Error string
}

func (s *Server) handleGoalsForm(w http.ResponseWriter, r *http.Request) {
	goal, err := s.store.FinancialGoal(r.Context(), ownerID(r))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.render(w, r, "financial_goals.html", goalsPage{Goal: goal})
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	goal := core.FinancialGoal{OwnerID: owner}
	var err error
	parse := func(field string) decimal.Decimal {
		if err != nil {
			return decimal.Zero
		}
		var d decimal.Decimal
		d, err = core.ParseGoalAmount(sanitizeInput(r.PostFormValue(field)))
		return d
	}
	goal.MonthlySalary = parse("monthly_salary")
	goal.DailyIncomeEst = parse("daily_income_estimate")
	goal.SavingsGoal = parse("savings_goal")
	goal.DailySpendingLimit = parse("daily_spending_limit")
	if err == nil {
		err = goal.Validate()
	}
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, r, "financial_goals.html", goalsPage{Goal: goal, Error: err.Error()})
		return
	}

	if err := s.store.SaveFinancialGoal(r.Context(), goal); err != nil {
		s.storeError(w, r, err)
		return
	}
	s.invalidateReports(owner)

	slog.InfoContext(r.Context(), "Financial goal saved", "owner_id", owner)
	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

type incomePage struct {
	Income core.Income
	Amount string
	Error  string
}

func (s *Server) handleNewIncomeForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "new_income.html", incomePage{})
}

func (s *Server) handleNewIncome(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	rawAmount := sanitizeInput(r.PostFormValue("amount"))
	income := core.Income{
		OwnerID: owner,
		Source:  sanitizeInput(r.PostFormValue("source")),
	}

	amount, err := core.ParseAmount(rawAmount)
	if err == nil {
		income.Amount = amount
		err = income.Validate()
	}
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, r, "new_income.html", incomePage{Income: income, Amount: rawAmount, Error: err.Error()})
		return
	}

	if err := s.store.CreateIncome(r.Context(), &income); err != nil {
		s.storeError(w, r, err)
		return
	}
	s.invalidateReports(owner)

	slog.InfoContext(r.Context(), "Income recorded",
		"income_id", income.ID, "owner_id", owner, "amount", income.Amount.String())
	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

type recurringPage struct {
	Bill        core.RecurringBill
	Amount      string
	DueDate     string
	Categories  []core.Category
	Frequencies []core.Frequency
	Error       string
}

func (s *Server) handleNewRecurringForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "new_recurring_expense.html", recurringPage{
		Categories:  core.Categories(),
		Frequencies: core.Frequencies(),
	})
}

func (s *Server) handleNewRecurring(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	rawAmount := sanitizeInput(r.PostFormValue("amount"))
	rawDue := sanitizeInput(r.PostFormValue("next_due_date"))
	bill := core.RecurringBill{
		OwnerID:        owner,
		Title:          sanitizeInput(r.PostFormValue("title")),
		Category:       core.Category(sanitizeInput(r.PostFormValue("category"))),
		Frequency:      core.Frequency(sanitizeInput(r.PostFormValue("frequency"))),
		NextDueDate:    parseEventDate(rawDue),
		ReminderActive: r.PostFormValue("reminder_active") != "",
	}

	amount, err := core.ParseAmount(rawAmount)
	if err == nil {
		bill.Amount = amount
		err = bill.Validate()
	}
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, r, "new_recurring_expense.html", recurringPage{
			Bill: bill, Amount: rawAmount, DueDate: rawDue,
			Categories:  core.Categories(),
			Frequencies: core.Frequencies(),
			Error:       err.Error(),
		})
		return
	}

	if err := s.store.CreateRecurringBill(r.Context(), &bill); err != nil {
		s.storeError(w, r, err)
		return
	}
	s.invalidateReports(owner)

	slog.InfoContext(r.Context(), "Recurring bill created",
		"bill_id", bill.ID, "owner_id", owner, "frequency", string(bill.Frequency))
	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

func (s *Server) handleDeleteRecurring(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	if err := s.store.DeleteRecurringBill(r.Context(), owner, pathID(r, "id")); err != nil {
		s.storeError(w, r, err)
		return
	}
	s.invalidateReports(owner)
	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		http.NotFound(w, r)
		return
	}
	owner := ownerID(r)
	now := time.Now().UTC()

	user, err := s.store.UserByID(r.Context(), owner)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	rep, err := s.monthReport(r, owner, now)
	if err != nil {
		s.storeError(w, r, err)
		return
	}

	if _, err := s.exporter.AppendReport(r.Context(), user.Username, now.Year(), now.Month(), rep); err != nil {
		slog.ErrorContext(r.Context(), "Report export failed", "owner_id", owner, "error", err)
		http.Error(w, "export failed", http.StatusBadGateway)
		return
	}
	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}
