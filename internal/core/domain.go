package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// Category values are the labels the original UI stores; they must not
	// change without a data migration.
	CategoryFood          Category = "Chakula"
	CategoryTransport     Category = "Usafiri"
	CategoryCommunication Category = "Mawasiliano"
	CategoryEntertainment Category = "Burudani"
	CategoryEmergency     Category = "Dharura"
	CategoryOther         Category = "Mengineyo"
)

const (
	Daily   Frequency = "Daily"
	Weekly  Frequency = "Weekly"
	Monthly Frequency = "Monthly"
	Yearly  Frequency = "Yearly"
)

type (
	Category  string
	Frequency string

	// Topic groups diary entries under a short heading.
	Topic struct {
		ID        int64
		OwnerID   int64
		Text      string
		CreatedAt time.Time
	}

	// Entry is a single diary record. Ownership is derived through the
	// topic; EventDate places the entry on the calendar grid.
	Entry struct {
		ID        int64
		TopicID   int64
		Title     string
		Text      string
		Mood      string
		EventDate time.Time
		CreatedAt time.Time
	}

	Expense struct {
		ID        int64
		OwnerID   int64
		Title     string
		Amount    decimal.Decimal
		Category  Category
		CreatedAt time.Time
	}

	Income struct {
		ID        int64
		OwnerID   int64
		Source    string
		Amount    decimal.Decimal
		CreatedAt time.Time
	}

	// RecurringBill is a periodic obligation. NextDueDate holds only a
	// date component; ReminderActive opts the bill into reminder emails.
	RecurringBill struct {
		ID             int64
		OwnerID        int64
		Title          string
		Amount         decimal.Decimal
		Category       Category
		Frequency      Frequency
		NextDueDate    time.Time
		ReminderActive bool
	}

	// FinancialGoal is the per-owner budgeting singleton. A zero-valued
	// instance is created lazily on first access.
	FinancialGoal struct {
		OwnerID            int64
		MonthlySalary      decimal.Decimal
		DailyIncomeEst     decimal.Decimal
		SavingsGoal        decimal.Decimal
		DailySpendingLimit decimal.Decimal
	}

	User struct {
		ID           int64
		Username     string
		Email        string
		PasswordHash string
		CreatedAt    time.Time
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyTitle       = errors.New("empty title")
	ErrEmptyText        = errors.New("empty text")
	ErrEmptySource      = errors.New("empty source")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrInvalidDueDate   = errors.New("invalid due date")
	ErrNegativeGoal     = errors.New("goal values must not be negative")
)

// Categories lists the closed category set in UI order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryCommunication,
		CategoryEntertainment,
		CategoryEmergency,
		CategoryOther,
	}
}

// Frequencies lists the closed frequency set for recurring bills.
func Frequencies() []Frequency {
	return []Frequency{Daily, Weekly, Monthly, Yearly}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryCommunication,
		CategoryEntertainment, CategoryEmergency, CategoryOther:
		return true
	}
	return false
}

// English returns the language-neutral name used in logs and exports.
func (c Category) English() string {
	switch c {
	case CategoryFood:
		return "Food"
	case CategoryTransport:
		return "Transport"
	case CategoryCommunication:
		return "Communication"
	case CategoryEntertainment:
		return "Entertainment"
	case CategoryEmergency:
		return "Emergency"
	case CategoryOther:
		return "Other"
	}
	return string(c)
}

func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

func (t Topic) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	if len(t.Text) > 200 {
		return errors.New("topic too long (max 200 characters)")
	}
	return nil
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.Text) == "" {
		return ErrEmptyText
	}
	if len(e.Title) > 100 {
		return errors.New("title too long (max 100 characters)")
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if len(e.Title) > 100 {
		return errors.New("title too long (max 100 characters)")
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

func (i Income) Validate() error {
	if strings.TrimSpace(i.Source) == "" {
		return ErrEmptySource
	}
	if len(i.Source) > 100 {
		return errors.New("source too long (max 100 characters)")
	}
	if !i.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func (b RecurringBill) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrEmptyTitle
	}
	if len(b.Title) > 100 {
		return errors.New("title too long (max 100 characters)")
	}
	if !b.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !b.Category.Valid() {
		return ErrInvalidCategory
	}
	if !b.Frequency.Valid() {
		return ErrInvalidFrequency
	}
	if b.NextDueDate.IsZero() {
		return ErrInvalidDueDate
	}
	return nil
}

// Validate rejects negative targets; zero means "not set" everywhere.
func (g FinancialGoal) Validate() error {
	for _, v := range []decimal.Decimal{
		g.MonthlySalary, g.DailyIncomeEst, g.SavingsGoal, g.DailySpendingLimit,
	} {
		if v.IsNegative() {
			return ErrNegativeGoal
		}
	}
	return nil
}

// SameDay reports whether two instants fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
