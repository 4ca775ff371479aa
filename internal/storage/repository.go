package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"fedha/internal/core"
)

const (
	timeLayout = "2006-01-02 15:04:05"
	dateLayout = "2006-01-02"
)

// SQLiteRepository is the default persistence backend. Timestamps are
// stored as UTC text; amounts as exact decimal strings.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ----- users -----

func (r *SQLiteRepository) CreateUser(ctx context.Context, u *core.User) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, now.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create user id: %w", err)
	}
	u.ID = id
	u.CreatedAt = now
	return nil
}

func (r *SQLiteRepository) UserByUsername(ctx context.Context, username string) (core.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?`,
		username))
}

func (r *SQLiteRepository) UserByID(ctx context.Context, id int64) (core.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?`,
		id))
}

func (r *SQLiteRepository) scanUser(row *sql.Row) (core.User, error) {
	var u core.User
	var created string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt = parseTime(created)
	return u, nil
}

// ----- topics & entries -----

func (r *SQLiteRepository) CreateTopic(ctx context.Context, t *core.Topic) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO topics (owner_id, text, created_at) VALUES (?, ?, ?)`,
		t.OwnerID, t.Text, now.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("create topic: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create topic id: %w", err)
	}
	t.ID = id
	t.CreatedAt = now
	return nil
}

func (r *SQLiteRepository) TopicsForOwner(ctx context.Context, ownerID int64) ([]core.Topic, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, text, created_at FROM topics WHERE owner_id = ? ORDER BY created_at`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()
	return scanTopics(rows)
}

func (r *SQLiteRepository) TopicByID(ctx context.Context, ownerID, topicID int64) (core.Topic, error) {
	var t core.Topic
	var created string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, text, created_at FROM topics WHERE id = ? AND owner_id = ?`,
		topicID, ownerID).Scan(&t.ID, &t.OwnerID, &t.Text, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Topic{}, ErrNotFound
	}
	if err != nil {
		return core.Topic{}, fmt.Errorf("get topic: %w", err)
	}
	t.CreatedAt = parseTime(created)
	return t, nil
}

// RecentTopics orders by the owner's latest entry activity, then topic
// creation, mirroring the home page's "continue writing" list.
func (r *SQLiteRepository) RecentTopics(ctx context.Context, ownerID int64, limit int) ([]core.Topic, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.owner_id, t.text, t.created_at
         FROM topics t
         LEFT JOIN entries e ON e.topic_id = t.id
         WHERE t.owner_id = ?
         GROUP BY t.id
         ORDER BY COALESCE(MAX(e.created_at), t.created_at) DESC
         LIMIT ?`,
		ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent topics: %w", err)
	}
	defer rows.Close()
	return scanTopics(rows)
}

func scanTopics(rows *sql.Rows) ([]core.Topic, error) {
	var out []core.Topic
	for rows.Next() {
		var t core.Topic
		var created string
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Text, &created); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		t.CreatedAt = parseTime(created)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateEntry(ctx context.Context, ownerID int64, e *core.Entry) error {
	// Ownership check through the topic before writing.
	if _, err := r.TopicByID(ctx, ownerID, e.TopicID); err != nil {
		return err
	}
	now := time.Now().UTC()
	if e.EventDate.IsZero() {
		e.EventDate = now
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (topic_id, title, text, mood, event_date, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.TopicID, e.Title, e.Text, e.Mood, e.EventDate.Format(dateLayout), now.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create entry id: %w", err)
	}
	e.ID = id
	e.CreatedAt = now
	return nil
}

const entryColumns = `e.id, e.topic_id, e.title, e.text, e.mood, e.event_date, e.created_at`

func (r *SQLiteRepository) EntriesForTopic(ctx context.Context, ownerID, topicID int64) ([]core.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries e
         JOIN topics t ON t.id = e.topic_id
         WHERE e.topic_id = ? AND t.owner_id = ?
         ORDER BY e.created_at DESC`,
		topicID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *SQLiteRepository) EntryByID(ctx context.Context, ownerID, entryID int64) (core.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries e
         JOIN topics t ON t.id = e.topic_id
         WHERE e.id = ? AND t.owner_id = ?`,
		entryID, ownerID)
	if err != nil {
		return core.Entry{}, fmt.Errorf("get entry: %w", err)
	}
	defer rows.Close()
	entries, err := scanEntries(rows)
	if err != nil {
		return core.Entry{}, err
	}
	if len(entries) == 0 {
		return core.Entry{}, ErrNotFound
	}
	return entries[0], nil
}

func (r *SQLiteRepository) UpdateEntry(ctx context.Context, ownerID int64, e core.Entry) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE entries SET title = ?, text = ?, mood = ?, event_date = ?
         WHERE id = ? AND topic_id IN (SELECT id FROM topics WHERE owner_id = ?)`,
		e.Title, e.Text, e.Mood, e.EventDate.Format(dateLayout), e.ID, ownerID)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteEntry(ctx context.Context, ownerID, entryID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM entries
         WHERE id = ? AND topic_id IN (SELECT id FROM topics WHERE owner_id = ?)`,
		entryID, ownerID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) RecentEntries(ctx context.Context, ownerID int64, limit int) ([]core.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries e
         JOIN topics t ON t.id = e.topic_id
         WHERE t.owner_id = ?
         ORDER BY e.created_at DESC LIMIT ?`,
		ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *SQLiteRepository) EntriesForMonth(ctx context.Context, ownerID int64, year int, month time.Month) ([]core.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries e
         JOIN topics t ON t.id = e.topic_id
         WHERE t.owner_id = ? AND strftime('%Y-%m', e.event_date) = ?
         ORDER BY e.event_date`,
		ownerID, monthKey(year, month))
	if err != nil {
		return nil, fmt.Errorf("list month entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *SQLiteRepository) CountTopics(ctx context.Context, ownerID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM topics WHERE owner_id = ?`, ownerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count topics: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) CountEntries(ctx context.Context, ownerID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries e JOIN topics t ON t.id = e.topic_id WHERE t.owner_id = ?`,
		ownerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

func scanEntries(rows *sql.Rows) ([]core.Entry, error) {
	var out []core.Entry
	for rows.Next() {
		var e core.Entry
		var eventDate, created string
		if err := rows.Scan(&e.ID, &e.TopicID, &e.Title, &e.Text, &e.Mood, &eventDate, &created); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.EventDate = parseDate(eventDate)
		e.CreatedAt = parseTime(created)
		out = append(out, e)
	}
	return out, rows.Err()
}

// ----- expenses -----

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e *core.Expense) error {
	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (owner_id, title, amount, category, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.OwnerID, e.Title, e.Amount.String(), string(e.Category), e.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create expense id: %w", err)
	}
	e.ID = id
	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID, "owner_id", e.OwnerID, "amount", e.Amount.String(), "category", string(e.Category))
	return nil
}

const expenseColumns = `id, owner_id, title, amount, category, created_at`

func (r *SQLiteRepository) ExpenseByID(ctx context.Context, ownerID, id int64) (core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ? AND owner_id = ?`,
		id, ownerID)
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	defer rows.Close()
	expenses, err := scanExpenses(rows)
	if err != nil {
		return core.Expense{}, err
	}
	if len(expenses) == 0 {
		return core.Expense{}, ErrNotFound
	}
	return expenses[0], nil
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e core.Expense) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET title = ?, amount = ?, category = ? WHERE id = ? AND owner_id = ?`,
		e.Title, e.Amount.String(), string(e.Category), e.ID, e.OwnerID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, ownerID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) ExpensesForMonth(ctx context.Context, ownerID int64, year int, month time.Month) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses
         WHERE owner_id = ? AND strftime('%Y-%m', created_at) = ?
         ORDER BY created_at DESC, id DESC`,
		ownerID, monthKey(year, month))
	if err != nil {
		return nil, fmt.Errorf("list month expenses: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

func (r *SQLiteRepository) ExpensesOn(ctx context.Context, ownerID int64, day time.Time) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses
         WHERE owner_id = ? AND strftime('%Y-%m-%d', created_at) = ?
         ORDER BY created_at DESC, id DESC`,
		ownerID, day.UTC().Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("list day expenses: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

func scanExpenses(rows *sql.Rows) ([]core.Expense, error) {
	var out []core.Expense
	for rows.Next() {
		var e core.Expense
		var amount, category, created string
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Title, &amount, &category, &created); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse stored amount %q: %w", amount, err)
		}
		e.Amount = d
		e.Category = core.Category(category)
		e.CreatedAt = parseTime(created)
		out = append(out, e)
	}
	return out, rows.Err()
}

// ----- income -----

func (r *SQLiteRepository) CreateIncome(ctx context.Context, in *core.Income) error {
	now := time.Now().UTC()
	if in.CreatedAt.IsZero() {
		in.CreatedAt = now
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO incomes (owner_id, source, amount, created_at) VALUES (?, ?, ?, ?)`,
		in.OwnerID, in.Source, in.Amount.String(), in.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("create income: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create income id: %w", err)
	}
	in.ID = id
	return nil
}

func (r *SQLiteRepository) IncomeForMonth(ctx context.Context, ownerID int64, year int, month time.Month) ([]core.Income, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, source, amount, created_at FROM incomes
         WHERE owner_id = ? AND strftime('%Y-%m', created_at) = ?
         ORDER BY created_at DESC, id DESC`,
		ownerID, monthKey(year, month))
	if err != nil {
		return nil, fmt.Errorf("list month income: %w", err)
	}
	defer rows.Close()

	var out []core.Income
	for rows.Next() {
		var in core.Income
		var amount, created string
		if err := rows.Scan(&in.ID, &in.OwnerID, &in.Source, &amount, &created); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse stored amount %q: %w", amount, err)
		}
		in.Amount = d
		in.CreatedAt = parseTime(created)
		out = append(out, in)
	}
	return out, rows.Err()
}

// ----- recurring bills -----

func (r *SQLiteRepository) CreateRecurringBill(ctx context.Context, b *core.RecurringBill) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO recurring_bills (owner_id, title, amount, category, frequency, next_due_date, reminder_active)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.OwnerID, b.Title, b.Amount.String(), string(b.Category), string(b.Frequency),
		b.NextDueDate.Format(dateLayout), boolToInt(b.ReminderActive))
	if err != nil {
		return fmt.Errorf("create recurring bill: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create recurring bill id: %w", err)
	}
	b.ID = id
	return nil
}

const billColumns = `b.id, b.owner_id, b.title, b.amount, b.category, b.frequency, b.next_due_date, b.reminder_active`

func (r *SQLiteRepository) RecurringBills(ctx context.Context, ownerID int64) ([]core.RecurringBill, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+billColumns+` FROM recurring_bills b
         WHERE b.owner_id = ? ORDER BY b.next_due_date, b.id`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("list recurring bills: %w", err)
	}
	defer rows.Close()
	bills, _, err := scanBills(rows, false)
	return bills, err
}

func (r *SQLiteRepository) DeleteRecurringBill(ctx context.Context, ownerID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM recurring_bills WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete recurring bill: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DueReminders(ctx context.Context, asOf time.Time) ([]DueReminder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+billColumns+`, u.username, u.email
         FROM recurring_bills b
         JOIN users u ON u.id = b.owner_id
         WHERE b.reminder_active = 1 AND b.next_due_date <= ?
         ORDER BY b.next_due_date, b.id`,
		asOf.UTC().Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	defer rows.Close()
	_, reminders, err := scanBills(rows, true)
	return reminders, err
}

func (r *SQLiteRepository) AdvanceBill(ctx context.Context, billID int64, nextDue time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE recurring_bills SET next_due_date = ? WHERE id = ?`,
		nextDue.Format(dateLayout), billID)
	if err != nil {
		return fmt.Errorf("advance bill: %w", err)
	}
	return requireRow(res)
}

func scanBills(rows *sql.Rows, withOwner bool) ([]core.RecurringBill, []DueReminder, error) {
	var bills []core.RecurringBill
	var reminders []DueReminder
	for rows.Next() {
		var b core.RecurringBill
		var amount, category, frequency, due string
		var active int
		var username, email string

		dest := []any{&b.ID, &b.OwnerID, &b.Title, &amount, &category, &frequency, &due, &active}
		if withOwner {
			dest = append(dest, &username, &email)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("scan recurring bill: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, nil, fmt.Errorf("parse stored amount %q: %w", amount, err)
		}
		b.Amount = d
		b.Category = core.Category(category)
		b.Frequency = core.Frequency(frequency)
		b.NextDueDate = parseDate(due)
		b.ReminderActive = active != 0

		bills = append(bills, b)
		if withOwner {
			reminders = append(reminders, DueReminder{Bill: b, Username: username, Email: email})
		}
	}
	return bills, reminders, rows.Err()
}

// ----- financial goal -----

// FinancialGoal fetches the owner's goal row, creating a zero-valued one
// on first access. INSERT OR IGNORE against the owner primary key keeps
// concurrent first requests from creating duplicates.
func (r *SQLiteRepository) FinancialGoal(ctx context.Context, ownerID int64) (core.FinancialGoal, error) {
	if _, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO financial_goals (owner_id) VALUES (?)`, ownerID); err != nil {
		return core.FinancialGoal{}, fmt.Errorf("init financial goal: %w", err)
	}

	var g core.FinancialGoal
	var salary, dailyEst, savings, limit string
	err := r.db.QueryRowContext(ctx,
		`SELECT owner_id, monthly_salary, daily_income_estimate, savings_goal, daily_spending_limit
         FROM financial_goals WHERE owner_id = ?`,
		ownerID).Scan(&g.OwnerID, &salary, &dailyEst, &savings, &limit)
	if err != nil {
		return core.FinancialGoal{}, fmt.Errorf("get financial goal: %w", err)
	}

	for _, f := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{salary, &g.MonthlySalary},
		{dailyEst, &g.DailyIncomeEst},
		{savings, &g.SavingsGoal},
		{limit, &g.DailySpendingLimit},
	} {
		d, err := decimal.NewFromString(f.raw)
		if err != nil {
			return core.FinancialGoal{}, fmt.Errorf("parse stored goal amount %q: %w", f.raw, err)
		}
		*f.dst = d
	}
	return g, nil
}

func (r *SQLiteRepository) SaveFinancialGoal(ctx context.Context, g core.FinancialGoal) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO financial_goals (owner_id, monthly_salary, daily_income_estimate, savings_goal, daily_spending_limit)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(owner_id) DO UPDATE SET
             monthly_salary = excluded.monthly_salary,
             daily_income_estimate = excluded.daily_income_estimate,
             savings_goal = excluded.savings_goal,
             daily_spending_limit = excluded.daily_spending_limit`,
		g.OwnerID, g.MonthlySalary.String(), g.DailyIncomeEst.String(),
		g.SavingsGoal.String(), g.DailySpendingLimit.String())
	if err != nil {
		return fmt.Errorf("save financial goal: %w", err)
	}
	return nil
}

// ----- helpers -----

func monthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(timeLayout, s, time.UTC); err == nil {
		return t
	}
	if t, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
		return t
	}
	return time.Time{}
}

func parseDate(s string) time.Time {
	return parseTime(s)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
