package calendar

import (
	"strings"
	"testing"
	"time"

	"fedha/internal/core"
)

func TestMonthGridShape(t *testing.T) {
	// September 2026 starts on a Tuesday and has 30 days.
	html := string(MonthGrid(2026, time.September, nil))

	if !strings.Contains(html, "<caption>September 2026</caption>") {
		t.Fatalf("missing caption: %s", html)
	}
	if got := strings.Count(html, `data-date="2026-09-`); got != 30 {
		t.Fatalf("day cells = %d, want 30", got)
	}
	// one leading empty cell (Monday) + four trailing ones
	if got := strings.Count(html, "calendar__day--empty"); got != 5 {
		t.Fatalf("empty cells = %d, want 5", got)
	}
	if strings.Contains(html, "calendar__day--active") {
		t.Fatalf("no entries, no active days expected")
	}
}

func TestMonthGridMarksEntryDays(t *testing.T) {
	entries := []core.Entry{
		{ID: 7, Title: "Safari <plan>", Mood: "Happy", EventDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)},
		{ID: 8, Title: "Kazi", EventDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)},
		// wrong month, must be ignored
		{ID: 9, Title: "Old", EventDate: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)},
	}
	html := string(MonthGrid(2026, time.September, entries))

	if got := strings.Count(html, "calendar__day--active"); got != 1 {
		t.Fatalf("active days = %d, want 1", got)
	}
	if !strings.Contains(html, "event--happy") {
		t.Fatalf("mood class not rendered: %s", html)
	}
	if !strings.Contains(html, "event--default") {
		t.Fatalf("entries without mood should get the default class")
	}
	if !strings.Contains(html, "Safari &lt;plan&gt;") {
		t.Fatalf("entry titles must be escaped")
	}
	if strings.Contains(html, `data-entry-id="9"`) {
		t.Fatalf("entries outside the month must not render")
	}
}
