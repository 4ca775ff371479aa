package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fedha/internal/core"
	"fedha/internal/storage"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"tzs": core.FormatTZS,
		"json": func(v any) (string, error) {
			b, err := json.Marshal(v)
			return string(b), err
		},
		"datetime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
		"date": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"percent": func(d decimal.Decimal) string {
			return d.StringFixed(1)
		},
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed",
			"template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// pathID parses the numeric {name} path segment. Zero means malformed.
func pathID(r *http.Request, name string) int64 {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// storeError maps storage failures to responses. A missing or foreign
// row is a 404; everything else is a 500 with the detail kept in logs.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	slog.ErrorContext(r.Context(), "Storage error", "url", r.URL.Path, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(v string) string {
	v = strings.TrimSpace(v)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, v)
}

// parseYearMonth reads year/month query parameters, defaulting to now.
func parseYearMonth(r *http.Request, now time.Time) (int, time.Month) {
	year := now.Year()
	month := now.Month()

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil && y >= 1 && y <= 9999 {
			year = y
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			month = time.Month(m)
		}
	}
	return year, month
}

func reportCacheKey(ownerID int64, year int, month time.Month) string {
	return fmt.Sprintf("%d:%04d-%02d", ownerID, year, int(month))
}

// invalidateReports drops every cached report for the owner. Called
// after any finance mutation.
func (s *Server) invalidateReports(ownerID int64) {
	s.reportCache.DeletePrefix(fmt.Sprintf("%d:", ownerID))
}
