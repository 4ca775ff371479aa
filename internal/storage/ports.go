package storage

import (
	"context"
	"errors"
	"time"

	"fedha/internal/core"
)

// ErrNotFound is returned when a row does not exist or belongs to a
// different owner.
var ErrNotFound = errors.New("not found")

// UserStore persists account records.
type UserStore interface {
	CreateUser(ctx context.Context, u *core.User) error
	UserByUsername(ctx context.Context, username string) (core.User, error)
	UserByID(ctx context.Context, id int64) (core.User, error)
}

// DiaryStore persists topics and entries. Entry ownership flows through
// the topic; every accessor takes the owner and filters by it.
type DiaryStore interface {
	CreateTopic(ctx context.Context, t *core.Topic) error
	TopicsForOwner(ctx context.Context, ownerID int64) ([]core.Topic, error)
	TopicByID(ctx context.Context, ownerID, topicID int64) (core.Topic, error)
	RecentTopics(ctx context.Context, ownerID int64, limit int) ([]core.Topic, error)

	CreateEntry(ctx context.Context, ownerID int64, e *core.Entry) error
	EntriesForTopic(ctx context.Context, ownerID, topicID int64) ([]core.Entry, error)
	EntryByID(ctx context.Context, ownerID, entryID int64) (core.Entry, error)
	UpdateEntry(ctx context.Context, ownerID int64, e core.Entry) error
	DeleteEntry(ctx context.Context, ownerID, entryID int64) error
	RecentEntries(ctx context.Context, ownerID int64, limit int) ([]core.Entry, error)
	EntriesForMonth(ctx context.Context, ownerID int64, year int, month time.Month) ([]core.Entry, error)
	CountTopics(ctx context.Context, ownerID int64) (int64, error)
	CountEntries(ctx context.Context, ownerID int64) (int64, error)
}

// FinanceStore persists the money records and serves the report engine's
// read accessors.
type FinanceStore interface {
	CreateExpense(ctx context.Context, e *core.Expense) error
	ExpenseByID(ctx context.Context, ownerID, id int64) (core.Expense, error)
	UpdateExpense(ctx context.Context, e core.Expense) error
	DeleteExpense(ctx context.Context, ownerID, id int64) error
	ExpensesForMonth(ctx context.Context, ownerID int64, year int, month time.Month) ([]core.Expense, error)
	ExpensesOn(ctx context.Context, ownerID int64, day time.Time) ([]core.Expense, error)

	CreateIncome(ctx context.Context, in *core.Income) error
	IncomeForMonth(ctx context.Context, ownerID int64, year int, month time.Month) ([]core.Income, error)

	CreateRecurringBill(ctx context.Context, b *core.RecurringBill) error
	RecurringBills(ctx context.Context, ownerID int64) ([]core.RecurringBill, error)
	DeleteRecurringBill(ctx context.Context, ownerID, id int64) error

	FinancialGoal(ctx context.Context, ownerID int64) (core.FinancialGoal, error)
	SaveFinancialGoal(ctx context.Context, g core.FinancialGoal) error
}

// DueReminder pairs a due bill with the contact details of its owner.
type DueReminder struct {
	Bill     core.RecurringBill
	Username string
	Email    string
}

// ReminderStore is what the scheduler needs: find due reminder-active
// bills across all owners and push their due dates forward.
type ReminderStore interface {
	DueReminders(ctx context.Context, asOf time.Time) ([]DueReminder, error)
	AdvanceBill(ctx context.Context, billID int64, nextDue time.Time) error
}

// Store is the full persistence surface the application wires together.
type Store interface {
	UserStore
	DiaryStore
	FinanceStore
	ReminderStore
	Close() error
}
