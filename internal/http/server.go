package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fedha/internal/auth"
	"fedha/internal/cache"
	"fedha/internal/core"
	"fedha/internal/report"
	"fedha/internal/storage"
	appweb "fedha/web"
)

const sessionCookie = "fedha_session"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	ownerIDKey   contextKey = "owner_id"
)

// ReportExporter pushes a monthly report snapshot to an external sheet.
// Optional; the export route 404s when none is configured.
type ReportExporter interface {
	AppendReport(ctx context.Context, username string, year int, month time.Month, rep *report.Report) (string, error)
}

type Server struct {
	http.Server
	templates *template.Template

	store    storage.Store
	auth     *auth.Manager
	engine   *report.Engine
	exporter ReportExporter

	reportCache *cache.LRUCache[*report.Report]
	janitor     *cache.Janitor
	rateLimiter *rateLimiter

	shutdownOnce sync.Once
}

// Options carries the optional wiring for NewServer.
type Options struct {
	Exporter       ReportExporter
	ReportCacheTTL time.Duration
}

// NewServer configures routes and templates, returning a ready-to-run
// server. All /topics, /expenses and goal routes require a session.
func NewServer(addr string, store storage.Store, authMgr *auth.Manager, opts Options) (*Server, error) {
	mux := http.NewServeMux()

	cacheTTL := opts.ReportCacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:       store,
		auth:        authMgr,
		engine:      report.NewEngine(store),
		exporter:    opts.Exporter,
		reportCache: cache.NewLRUCache[*report.Report](100, cacheTTL),
		rateLimiter: newRateLimiter(),
	}
	s.janitor = cache.NewJanitor(s.reportCache)
	s.janitor.Start(10 * time.Minute)

	t, err := template.New("").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	public := s.withSecurityHeaders
	private := func(h http.HandlerFunc) http.HandlerFunc {
		return s.withSecurityHeaders(s.requireAuth(h))
	}

	mux.HandleFunc("GET /{$}", public(s.handleIndex))
	mux.HandleFunc("GET /register", public(s.handleRegisterForm))
	mux.HandleFunc("POST /register", public(s.handleRegister))
	mux.HandleFunc("GET /login", public(s.handleLoginForm))
	mux.HandleFunc("POST /login", public(s.handleLogin))
	mux.HandleFunc("/logout", public(s.handleLogout))

	mux.HandleFunc("GET /dashboard", private(s.handleDashboard))
	mux.HandleFunc("GET /calendar", private(s.handleCalendar))

	mux.HandleFunc("GET /topics", private(s.handleTopics))
	mux.HandleFunc("GET /topics/{id}", private(s.handleTopic))
	mux.HandleFunc("GET /new_topic", private(s.handleNewTopicForm))
	mux.HandleFunc("POST /new_topic", private(s.handleNewTopic))
	mux.HandleFunc("GET /new_entry/{topic}", private(s.handleNewEntryForm))
	mux.HandleFunc("POST /new_entry/{topic}", private(s.handleNewEntry))
	mux.HandleFunc("GET /edit_entry/{id}", private(s.handleEditEntryForm))
	mux.HandleFunc("POST /edit_entry/{id}", private(s.handleEditEntry))
	mux.HandleFunc("POST /delete_entry/{id}", private(s.handleDeleteEntry))

	mux.HandleFunc("GET /expenses", private(s.handleExpenses))
	mux.HandleFunc("GET /new_expense", private(s.handleNewExpenseForm))
	mux.HandleFunc("POST /new_expense", private(s.handleNewExpense))
	mux.HandleFunc("GET /edit_expense/{id}", private(s.handleEditExpenseForm))
	mux.HandleFunc("POST /edit_expense/{id}", private(s.handleEditExpense))
	mux.HandleFunc("POST /delete_expense/{id}", private(s.handleDeleteExpense))

	mux.HandleFunc("GET /financial_goals", private(s.handleGoalsForm))
	mux.HandleFunc("POST /financial_goals", private(s.handleGoals))
	mux.HandleFunc("GET /new_income", private(s.handleNewIncomeForm))
	mux.HandleFunc("POST /new_income", private(s.handleNewIncome))
	mux.HandleFunc("GET /new_recurring_expense", private(s.handleNewRecurringForm))
	mux.HandleFunc("POST /new_recurring_expense", private(s.handleNewRecurring))
	mux.HandleFunc("POST /delete_recurring_expense/{id}", private(s.handleDeleteRecurring))

	mux.HandleFunc("POST /export_report", private(s.handleExportReport))

	return s, nil
}

// Shutdown stops the server plus its cleanup goroutines. Safe to call
// more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.janitor.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := clientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://cdn.jsdelivr.net; style-src 'self' 'unsafe-inline' https://cdnjs.cloudflare.com; img-src 'self' data:; font-src 'self' https://cdnjs.cloudflare.com; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

// requireAuth resolves the session cookie to an owner id. Requests
// without a valid session are redirected to the login page.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ownerID, err := s.auth.VerifyToken(cookie.Value)
		if err != nil {
			s.clearSession(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), ownerIDKey, ownerID)
		next(w, r.WithContext(ctx))
	}
}

func ownerID(r *http.Request) int64 {
	id, _ := r.Context().Value(ownerIDKey).(int64)
	return id
}

func (s *Server) currentUser(r *http.Request) (core.User, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return core.User{}, false
	}
	id, err := s.auth.VerifyToken(cookie.Value)
	if err != nil {
		return core.User{}, false
	}
	u, err := s.store.UserByID(r.Context(), id)
	if err != nil {
		return core.User{}, false
	}
	return u, true
}

func (s *Server) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.auth.TTL().Seconds()),
	})
}

func (s *Server) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
