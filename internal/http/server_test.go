package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"fedha/internal/auth"
	"fedha/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	mgr := auth.NewManager("0123456789abcdef", time.Hour)
	s, err := NewServer(":0", store, mgr, Options{})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s, store
}

func postForm(s *Server, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func get(s *Server, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

// registerUser runs the register flow and returns the session cookie.
func registerUser(t *testing.T, s *Server, username string) *http.Cookie {
	t.Helper()
	rec := postForm(s, "/register", url.Values{
		"username": {username},
		"email":    {username + "@example.com"},
		"password": {"hunter22hunter22"},
	}, nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("register: expected redirect, got %d: %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("register: no session cookie set")
	return nil
}

func TestHealthEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	if rec := get(s, "/healthz", nil); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz: got %d %q", rec.Code, rec.Body.String())
	}
	if rec := get(s, "/readyz", nil); rec.Code != http.StatusOK || rec.Body.String() != "ready" {
		t.Errorf("readyz: got %d %q", rec.Code, rec.Body.String())
	}
}

func TestUnauthenticatedRedirects(t *testing.T) {
	s, _ := newTestServer(t)

	for _, path := range []string{"/dashboard", "/topics", "/expenses", "/financial_goals", "/calendar"} {
		rec := get(s, path, nil)
		if rec.Code != http.StatusSeeOther {
			t.Errorf("%s: expected redirect, got %d", path, rec.Code)
			continue
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("%s: expected redirect to /login, got %q", path, loc)
		}
	}
}

func TestRegisterLoginLogout(t *testing.T) {
	s, _ := newTestServer(t)
	cookie := registerUser(t, s, "alice")

	if rec := get(s, "/dashboard", cookie); rec.Code != http.StatusOK {
		t.Errorf("dashboard with session: got %d", rec.Code)
	}

	// Wrong password is rejected.
	rec := postForm(s, "/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login: expected 401, got %d", rec.Code)
	}

	// Correct login issues a fresh session.
	rec = postForm(s, "/login", url.Values{
		"username": {"alice"},
		"password": {"hunter22hunter22"},
	}, nil)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("login: expected redirect, got %d", rec.Code)
	}

	// Logout clears the cookie.
	rec = postForm(s, "/logout", url.Values{}, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("logout: expected redirect, got %d", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie && c.MaxAge >= 0 {
			t.Error("logout should expire the session cookie")
		}
	}
}

func TestDuplicateUsernameRejected(t *testing.T) {
	s, _ := newTestServer(t)
	registerUser(t, s, "alice")

	rec := postForm(s, "/register", url.Values{
		"username": {"alice"},
		"email":    {"other@example.com"},
		"password": {"hunter22hunter22"},
	}, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate username, got %d", rec.Code)
	}
}

func TestTopicAndEntryFlow(t *testing.T) {
	s, store := newTestServer(t)
	cookie := registerUser(t, s, "alice")

	rec := postForm(s, "/new_topic", url.Values{"text": {"Safari ya Dodoma"}}, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("new_topic: expected redirect, got %d", rec.Code)
	}

	rec = get(s, "/topics", cookie)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Safari ya Dodoma") {
		t.Fatalf("topics page should list the new topic, got %d", rec.Code)
	}

	rec = postForm(s, "/new_entry/1", url.Values{
		"title": {"Siku ya kwanza"},
		"text":  {"Tulifika salama."},
		"mood":  {"Furaha"},
	}, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("new_entry: expected redirect, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = get(s, "/topics/1", cookie)
	if !strings.Contains(rec.Body.String(), "Siku ya kwanza") {
		t.Error("topic page should show the entry")
	}

	// Empty entry text is rejected with the form re-rendered.
	rec = postForm(s, "/new_entry/1", url.Values{"text": {"   "}}, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty entry: expected 400, got %d", rec.Code)
	}

	// Another user cannot see or touch the topic.
	other := registerUser(t, s, "bob")
	if rec := get(s, "/topics/1", other); rec.Code != http.StatusNotFound {
		t.Errorf("foreign topic: expected 404, got %d", rec.Code)
	}
	if rec := postForm(s, "/delete_entry/2", url.Values{}, other); rec.Code != http.StatusNotFound {
		t.Errorf("foreign entry delete: expected 404, got %d", rec.Code)
	}

	// The entry is still there.
	entries, err := store.EntriesForTopic(context.Background(), 1, 1)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected entry to survive, got %d err %v", len(entries), err)
	}
}

func TestExpenseFlowAndReport(t *testing.T) {
	s, _ := newTestServer(t)
	cookie := registerUser(t, s, "alice")

	rec := postForm(s, "/financial_goals", url.Values{
		"monthly_salary": {"500000"},
		"savings_goal":   {"100000"},
	}, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("financial_goals: expected redirect, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = postForm(s, "/new_expense", url.Values{
		"title":    {"Chakula cha mchana"},
		"amount":   {"12500"},
		"category": {"Chakula"},
	}, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("new_expense: expected redirect, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = get(s, "/expenses", cookie)
	body := rec.Body.String()
	if rec.Code != http.StatusOK {
		t.Fatalf("expenses: got %d", rec.Code)
	}
	if !strings.Contains(body, "Chakula cha mchana") {
		t.Error("report page should list the expense")
	}
	if !strings.Contains(body, "TZS 487,500.00") {
		t.Errorf("report page should show the balance, body: %.300s", body)
	}

	// Invalid amount re-renders the form.
	rec = postForm(s, "/new_expense", url.Values{
		"title":    {"x"},
		"amount":   {"-5"},
		"category": {"Chakula"},
	}, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative amount: expected 400, got %d", rec.Code)
	}

	// Mutations invalidate the cached report.
	rec = postForm(s, "/new_expense", url.Values{
		"title":    {"Nauli"},
		"amount":   {"2000"},
		"category": {"Usafiri"},
	}, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("second expense: got %d", rec.Code)
	}
	rec = get(s, "/expenses", cookie)
	if !strings.Contains(rec.Body.String(), "Nauli") {
		t.Error("report should reflect the new expense immediately")
	}
}

func TestForeignExpenseIs404(t *testing.T) {
	s, _ := newTestServer(t)
	alice := registerUser(t, s, "alice")
	bob := registerUser(t, s, "bob")

	rec := postForm(s, "/new_expense", url.Values{
		"title":    {"Umeme"},
		"amount":   {"30000"},
		"category": {"Mengineyo"},
	}, alice)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("new_expense: got %d", rec.Code)
	}

	if rec := get(s, "/edit_expense/1", bob); rec.Code != http.StatusNotFound {
		t.Errorf("foreign expense edit form: expected 404, got %d", rec.Code)
	}
	if rec := postForm(s, "/delete_expense/1", url.Values{}, bob); rec.Code != http.StatusNotFound {
		t.Errorf("foreign expense delete: expected 404, got %d", rec.Code)
	}
}

func TestRecurringBillFlow(t *testing.T) {
	s, _ := newTestServer(t)
	cookie := registerUser(t, s, "alice")

	rec := postForm(s, "/new_recurring_expense", url.Values{
		"title":           {"Kodi ya nyumba"},
		"amount":          {"250000"},
		"category":        {"Mengineyo"},
		"frequency":       {"Monthly"},
		"next_due_date":   {"2026-10-01"},
		"reminder_active": {"1"},
	}, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("new_recurring_expense: got %d: %s", rec.Code, rec.Body.String())
	}

	rec = get(s, "/expenses", cookie)
	if !strings.Contains(rec.Body.String(), "Kodi ya nyumba") {
		t.Error("report page should list the recurring bill")
	}

	rec = postForm(s, "/delete_recurring_expense/1", url.Values{}, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("delete_recurring_expense: got %d", rec.Code)
	}
	rec = get(s, "/expenses", cookie)
	if strings.Contains(rec.Body.String(), "Kodi ya nyumba") {
		t.Error("deleted bill should be gone from the report page")
	}
}

func TestCalendarPage(t *testing.T) {
	s, _ := newTestServer(t)
	cookie := registerUser(t, s, "alice")

	rec := get(s, "/calendar?year=2026&month=9", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("calendar: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "September 2026") {
		t.Error("calendar should show the requested month")
	}
}

func TestExportRouteWithoutExporter(t *testing.T) {
	s, _ := newTestServer(t)
	cookie := registerUser(t, s, "alice")

	if rec := postForm(s, "/export_report", url.Values{}, cookie); rec.Code != http.StatusNotFound {
		t.Errorf("export without exporter: expected 404, got %d", rec.Code)
	}
}
