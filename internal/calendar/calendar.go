// Package calendar renders a month as an HTML day grid, marking days
// that carry at least one diary entry. Pure presentation: it receives
// entries already scoped to the owner and month and only groups them by
// day.
package calendar

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"fedha/internal/core"
)

var weekdayHeader = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// MonthGrid renders the grid for year/month. Weeks run Monday-first;
// leading and trailing cells outside the month are empty.
func MonthGrid(year int, month time.Month, entries []core.Entry) template.HTML {
	byDay := make(map[int][]core.Entry)
	for _, e := range entries {
		if e.EventDate.Year() == year && e.EventDate.Month() == month {
			d := e.EventDate.Day()
			byDay[d] = append(byDay[d], e)
		}
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	// Monday-first column index of day 1
	lead := (int(first.Weekday()) + 6) % 7

	var b strings.Builder
	b.WriteString(`<table class="calendar">`)
	fmt.Fprintf(&b, `<caption>%s %d</caption>`, month.String(), year)
	b.WriteString("<thead><tr>")
	for _, wd := range weekdayHeader {
		fmt.Fprintf(&b, "<th>%s</th>", wd)
	}
	b.WriteString("</tr></thead><tbody><tr>")

	col := 0
	for ; col < lead; col++ {
		b.WriteString(emptyCell)
	}
	for day := 1; day <= daysInMonth; day++ {
		if col == 7 {
			b.WriteString("</tr><tr>")
			col = 0
		}
		writeDayCell(&b, year, month, day, byDay[day])
		col++
	}
	for ; col < 7; col++ {
		b.WriteString(emptyCell)
	}
	b.WriteString("</tr></tbody></table>")
	return template.HTML(b.String())
}

const emptyCell = `<td class="calendar__day calendar__day--empty">&nbsp;</td>`

func writeDayCell(b *strings.Builder, year int, month time.Month, day int, entries []core.Entry) {
	css := "calendar__day"
	if len(entries) > 0 {
		css += " calendar__day--active"
	}
	dateStr := fmt.Sprintf("%d-%02d-%02d", year, month, day)

	fmt.Fprintf(b, `<td class="%s" data-date="%s"><div class="day-wrapper"><span class="calendar__date">%d</span>`,
		css, dateStr, day)
	if len(entries) > 0 {
		b.WriteString(`<div class="calendar__events">`)
		for _, e := range entries {
			mood := "event--default"
			if e.Mood != "" {
				mood = "event--" + strings.ToLower(e.Mood)
			}
			fmt.Fprintf(b, `<div class="event-pill %s" title="%s" data-entry-id="%d">%s</div>`,
				template.HTMLEscapeString(mood),
				template.HTMLEscapeString(e.Title),
				e.ID,
				template.HTMLEscapeString(e.Title))
		}
		b.WriteString("</div>")
	}
	b.WriteString("</div></td>")
}
