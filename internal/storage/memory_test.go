package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fedha/internal/core"
)

func newTestUser(t *testing.T, s *MemoryStore, username string) core.User {
	t.Helper()
	u := core.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	if err := s.CreateUser(context.Background(), &u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func TestMemoryStoreTopicOwnership(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	alice := newTestUser(t, s, "alice")
	bob := newTestUser(t, s, "bob")

	topic := core.Topic{OwnerID: alice.ID, Text: "Safari"}
	if err := s.CreateTopic(ctx, &topic); err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}

	if _, err := s.TopicByID(ctx, bob.ID, topic.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
	got, err := s.TopicByID(ctx, alice.ID, topic.ID)
	if err != nil || got.Text != "Safari" {
		t.Fatalf("TopicByID: got %+v, err %v", got, err)
	}

	entry := core.Entry{TopicID: topic.ID, Title: "Day one", Text: "We left early."}
	if err := s.CreateEntry(ctx, bob.ID, &entry); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound creating entry on foreign topic, got %v", err)
	}
	if err := s.CreateEntry(ctx, alice.ID, &entry); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if _, err := s.EntryByID(ctx, bob.ID, entry.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound reading foreign entry, got %v", err)
	}
	if err := s.DeleteEntry(ctx, bob.ID, entry.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting foreign entry, got %v", err)
	}
}

func TestMemoryStoreExpenseMonthFilter(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := newTestUser(t, s, "alice")

	add := func(day time.Time, title string) {
		e := core.Expense{
			OwnerID:   u.ID,
			Title:     title,
			Amount:    decimal.NewFromInt(1000),
			Category:  core.CategoryFood,
			CreatedAt: day,
		}
		if err := s.CreateExpense(ctx, &e); err != nil {
			t.Fatalf("CreateExpense: %v", err)
		}
	}
	add(time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC), "bus")
	add(time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC), "lunch")
	add(time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC), "last month")

	month, err := s.ExpensesForMonth(ctx, u.ID, 2026, time.September)
	if err != nil {
		t.Fatalf("ExpensesForMonth: %v", err)
	}
	if len(month) != 2 {
		t.Fatalf("expected 2 expenses in September, got %d", len(month))
	}
	if month[0].Title != "lunch" {
		t.Errorf("expected newest first, got %q", month[0].Title)
	}

	day, err := s.ExpensesOn(ctx, u.ID, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ExpensesOn: %v", err)
	}
	if len(day) != 1 || day[0].Title != "lunch" {
		t.Fatalf("expected lunch on the 15th, got %+v", day)
	}
}

func TestMemoryStoreDueReminders(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := newTestUser(t, s, "alice")
	now := time.Date(2026, 9, 15, 7, 15, 0, 0, time.UTC)

	mk := func(title string, due time.Time, active bool) core.RecurringBill {
		b := core.RecurringBill{
			OwnerID:        u.ID,
			Title:          title,
			Amount:         decimal.NewFromInt(20000),
			Category:       core.CategoryOther,
			Frequency:      core.Monthly,
			NextDueDate:    due,
			ReminderActive: active,
		}
		if err := s.CreateRecurringBill(ctx, &b); err != nil {
			t.Fatalf("CreateRecurringBill: %v", err)
		}
		return b
	}
	overdue := mk("rent", now.AddDate(0, 0, -2), true)
	dueToday := mk("internet", time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), true)
	mk("gym", now.AddDate(0, 0, 5), true)
	mk("muted", now.AddDate(0, 0, -1), false)

	due, err := s.DueReminders(ctx, now)
	if err != nil {
		t.Fatalf("DueReminders: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("expected 2 due reminders, got %d", len(due))
	}
	if due[0].Bill.ID != overdue.ID || due[1].Bill.ID != dueToday.ID {
		t.Errorf("expected due-date order, got %q then %q", due[0].Bill.Title, due[1].Bill.Title)
	}
	if due[0].Email != "alice@example.com" {
		t.Errorf("expected owner email joined in, got %q", due[0].Email)
	}

	next := time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)
	if err := s.AdvanceBill(ctx, overdue.ID, next); err != nil {
		t.Fatalf("AdvanceBill: %v", err)
	}
	due, err = s.DueReminders(ctx, now)
	if err != nil {
		t.Fatalf("DueReminders after advance: %v", err)
	}
	if len(due) != 1 || due[0].Bill.ID != dueToday.ID {
		t.Fatalf("expected only internet after advance, got %+v", due)
	}
}

func TestMemoryStoreGoalGetOrCreate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := newTestUser(t, s, "alice")

	g, err := s.FinancialGoal(ctx, u.ID)
	if err != nil {
		t.Fatalf("FinancialGoal: %v", err)
	}
	if !g.MonthlySalary.IsZero() || !g.SavingsGoal.IsZero() {
		t.Fatalf("expected zero-valued goal on first access, got %+v", g)
	}

	g.MonthlySalary = decimal.NewFromInt(500000)
	g.SavingsGoal = decimal.NewFromInt(100000)
	if err := s.SaveFinancialGoal(ctx, g); err != nil {
		t.Fatalf("SaveFinancialGoal: %v", err)
	}
	got, err := s.FinancialGoal(ctx, u.ID)
	if err != nil {
		t.Fatalf("FinancialGoal after save: %v", err)
	}
	if !got.MonthlySalary.Equal(decimal.NewFromInt(500000)) {
		t.Errorf("expected saved salary, got %s", got.MonthlySalary)
	}
}

// Compile-time check that both backends satisfy the full store surface.
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLiteRepository)(nil)
)
