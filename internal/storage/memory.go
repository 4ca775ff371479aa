package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"fedha/internal/core"
)

// MemoryStore is a mutex-guarded Store for tests and the "memory"
// backend. Data does not survive a restart.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64

	users   map[int64]core.User
	topics  map[int64]core.Topic
	entries map[int64]core.Entry
	spends  map[int64]core.Expense
	incomes map[int64]core.Income
	bills   map[int64]core.RecurringBill
	goals   map[int64]core.FinancialGoal
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:  1,
		users:   map[int64]core.User{},
		topics:  map[int64]core.Topic{},
		entries: map[int64]core.Entry{},
		spends:  map[int64]core.Expense{},
		incomes: map[int64]core.Income{},
		bills:   map[int64]core.RecurringBill{},
		goals:   map[int64]core.FinancialGoal{},
	}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// ----- users -----

func (s *MemoryStore) CreateUser(_ context.Context, u *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.id()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) UserByUsername(_ context.Context, username string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return core.User{}, ErrNotFound
}

func (s *MemoryStore) UserByID(_ context.Context, id int64) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return core.User{}, ErrNotFound
	}
	return u, nil
}

// ----- topics & entries -----

func (s *MemoryStore) CreateTopic(_ context.Context, t *core.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.id()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	s.topics[t.ID] = *t
	return nil
}

func (s *MemoryStore) TopicsForOwner(_ context.Context, ownerID int64) ([]core.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Topic
	for _, t := range s.topics {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) TopicByID(_ context.Context, ownerID, topicID int64) (core.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.topics[topicID]
	if !ok || t.OwnerID != ownerID {
		return core.Topic{}, ErrNotFound
	}
	return t, nil
}

func (s *MemoryStore) RecentTopics(ctx context.Context, ownerID int64, limit int) ([]core.Topic, error) {
	topics, err := s.TopicsForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	lastActivity := make(map[int64]time.Time, len(topics))
	for _, t := range topics {
		lastActivity[t.ID] = t.CreatedAt
	}
	for _, e := range s.entries {
		if at, ok := lastActivity[e.TopicID]; ok && e.CreatedAt.After(at) {
			lastActivity[e.TopicID] = e.CreatedAt
		}
	}
	s.mu.Unlock()

	sort.Slice(topics, func(i, j int) bool {
		return lastActivity[topics[i].ID].After(lastActivity[topics[j].ID])
	})
	if len(topics) > limit {
		topics = topics[:limit]
	}
	return topics, nil
}

func (s *MemoryStore) CreateEntry(ctx context.Context, ownerID int64, e *core.Entry) error {
	if _, err := s.TopicByID(ctx, ownerID, e.TopicID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.id()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.EventDate.IsZero() {
		e.EventDate = e.CreatedAt
	}
	s.entries[e.ID] = *e
	return nil
}

func (s *MemoryStore) entriesOwnedBy(ownerID int64, keep func(core.Entry) bool) []core.Entry {
	var out []core.Entry
	for _, e := range s.entries {
		t, ok := s.topics[e.TopicID]
		if !ok || t.OwnerID != ownerID {
			continue
		}
		if keep == nil || keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (s *MemoryStore) EntriesForTopic(_ context.Context, ownerID, topicID int64) ([]core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.entriesOwnedBy(ownerID, func(e core.Entry) bool { return e.TopicID == topicID })
	sortEntriesNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) EntryByID(_ context.Context, ownerID, entryID int64) (core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[entryID]
	if !ok {
		return core.Entry{}, ErrNotFound
	}
	t, ok := s.topics[e.TopicID]
	if !ok || t.OwnerID != ownerID {
		return core.Entry{}, ErrNotFound
	}
	return e, nil
}

func (s *MemoryStore) UpdateEntry(ctx context.Context, ownerID int64, e core.Entry) error {
	current, err := s.EntryByID(ctx, ownerID, e.ID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current.Title = e.Title
	current.Text = e.Text
	current.Mood = e.Mood
	current.EventDate = e.EventDate
	s.entries[current.ID] = current
	return nil
}

func (s *MemoryStore) DeleteEntry(ctx context.Context, ownerID, entryID int64) error {
	if _, err := s.EntryByID(ctx, ownerID, entryID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, entryID)
	return nil
}

func (s *MemoryStore) RecentEntries(_ context.Context, ownerID int64, limit int) ([]core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.entriesOwnedBy(ownerID, nil)
	sortEntriesNewestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) EntriesForMonth(_ context.Context, ownerID int64, year int, month time.Month) ([]core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.entriesOwnedBy(ownerID, func(e core.Entry) bool {
		y, m, _ := e.EventDate.Date()
		return y == year && m == month
	})
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	return out, nil
}

func (s *MemoryStore) CountTopics(_ context.Context, ownerID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, t := range s.topics {
		if t.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) CountEntries(_ context.Context, ownerID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.entriesOwnedBy(ownerID, nil))), nil
}

func sortEntriesNewestFirst(entries []core.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}

// ----- expenses -----

func (s *MemoryStore) CreateExpense(_ context.Context, e *core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.id()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	s.spends[e.ID] = *e
	return nil
}

func (s *MemoryStore) ExpenseByID(_ context.Context, ownerID, id int64) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.spends[id]
	if !ok || e.OwnerID != ownerID {
		return core.Expense{}, ErrNotFound
	}
	return e, nil
}

func (s *MemoryStore) UpdateExpense(ctx context.Context, e core.Expense) error {
	current, err := s.ExpenseByID(ctx, e.OwnerID, e.ID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current.Title = e.Title
	current.Amount = e.Amount
	current.Category = e.Category
	s.spends[current.ID] = current
	return nil
}

func (s *MemoryStore) DeleteExpense(ctx context.Context, ownerID, id int64) error {
	if _, err := s.ExpenseByID(ctx, ownerID, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.spends, id)
	return nil
}

func (s *MemoryStore) ExpensesForMonth(_ context.Context, ownerID int64, year int, month time.Month) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.spends {
		y, m, _ := e.CreatedAt.Date()
		if e.OwnerID == ownerID && y == year && m == month {
			out = append(out, e)
		}
	}
	sortExpensesNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) ExpensesOn(_ context.Context, ownerID int64, day time.Time) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.spends {
		if e.OwnerID == ownerID && core.SameDay(e.CreatedAt, day) {
			out = append(out, e)
		}
	}
	sortExpensesNewestFirst(out)
	return out, nil
}

func sortExpensesNewestFirst(expenses []core.Expense) {
	sort.Slice(expenses, func(i, j int) bool {
		if expenses[i].CreatedAt.Equal(expenses[j].CreatedAt) {
			return expenses[i].ID > expenses[j].ID
		}
		return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
	})
}

// ----- income -----

func (s *MemoryStore) CreateIncome(_ context.Context, in *core.Income) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	in.ID = s.id()
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	s.incomes[in.ID] = *in
	return nil
}

func (s *MemoryStore) IncomeForMonth(_ context.Context, ownerID int64, year int, month time.Month) ([]core.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Income
	for _, in := range s.incomes {
		y, m, _ := in.CreatedAt.Date()
		if in.OwnerID == ownerID && y == year && m == month {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ----- recurring bills -----

func (s *MemoryStore) CreateRecurringBill(_ context.Context, b *core.RecurringBill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.id()
	s.bills[b.ID] = *b
	return nil
}

func (s *MemoryStore) RecurringBills(_ context.Context, ownerID int64) ([]core.RecurringBill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.RecurringBill
	for _, b := range s.bills {
		if b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	sortBillsByDue(out)
	return out, nil
}

func (s *MemoryStore) DeleteRecurringBill(_ context.Context, ownerID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bills[id]
	if !ok || b.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(s.bills, id)
	return nil
}

func (s *MemoryStore) DueReminders(_ context.Context, asOf time.Time) ([]DueReminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := asOf.UTC().Truncate(24 * time.Hour).Add(24*time.Hour - time.Nanosecond)
	var out []DueReminder
	var bills []core.RecurringBill
	for _, b := range s.bills {
		if b.ReminderActive && !b.NextDueDate.After(cutoff) {
			bills = append(bills, b)
		}
	}
	sortBillsByDue(bills)
	for _, b := range bills {
		u, ok := s.users[b.OwnerID]
		if !ok {
			continue
		}
		out = append(out, DueReminder{Bill: b, Username: u.Username, Email: u.Email})
	}
	return out, nil
}

func (s *MemoryStore) AdvanceBill(_ context.Context, billID int64, nextDue time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bills[billID]
	if !ok {
		return ErrNotFound
	}
	b.NextDueDate = nextDue
	s.bills[billID] = b
	return nil
}

func sortBillsByDue(bills []core.RecurringBill) {
	sort.Slice(bills, func(i, j int) bool {
		if bills[i].NextDueDate.Equal(bills[j].NextDueDate) {
			return bills[i].ID < bills[j].ID
		}
		return bills[i].NextDueDate.Before(bills[j].NextDueDate)
	})
}

// ----- financial goal -----

func (s *MemoryStore) FinancialGoal(_ context.Context, ownerID int64) (core.FinancialGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[ownerID]
	if !ok {
		g = core.FinancialGoal{OwnerID: ownerID}
		s.goals[ownerID] = g
	}
	return g, nil
}

func (s *MemoryStore) SaveFinancialGoal(_ context.Context, g core.FinancialGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals[g.OwnerID] = g
	return nil
}
