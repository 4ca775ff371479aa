package http

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"fedha/internal/calendar"
	"fedha/internal/core"
	"fedha/internal/report"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	user, loggedIn := s.currentUser(r)
	if !loggedIn {
		s.render(w, r, "index.html", struct {
			User *core.User
		}{})
		return
	}

	now := time.Now().UTC()
	summary, err := s.engine.Home(r.Context(), user.ID, now)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	topics, err := s.store.RecentTopics(r.Context(), user.ID, 5)
	if err != nil {
		s.storeError(w, r, err)
		return
	}

	s.render(w, r, "index.html", struct {
		User    *core.User
		Summary *report.HomeSummary
		Topics  []core.Topic
	}{User: &user, Summary: summary, Topics: topics})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	now := time.Now().UTC()

	user, err := s.store.UserByID(r.Context(), owner)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	topicCount, err := s.store.CountTopics(r.Context(), owner)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	entryCount, err := s.store.CountEntries(r.Context(), owner)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	recent, err := s.store.RecentEntries(r.Context(), owner, 5)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	summary, err := s.engine.Home(r.Context(), owner, now)
	if err != nil {
		s.storeError(w, r, err)
		return
	}

	s.render(w, r, "dashboard.html", struct {
		User       *core.User
		TopicCount int64
		EntryCount int64
		Recent     []core.Entry
		Summary    *report.HomeSummary
	}{User: &user, TopicCount: topicCount, EntryCount: entryCount, Recent: recent, Summary: summary})
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	now := time.Now().UTC()
	year, month := parseYearMonth(r, now)

	entries, err := s.store.EntriesForMonth(r.Context(), owner, year, month)
	if err != nil {
		s.storeError(w, r, err)
		return
	}

	prev := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	next := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	s.render(w, r, "calendar.html", struct {
		Grid      template.HTML
		Year      int
		Month     int
		PrevLink  string
		NextLink  string
		MonthName string
	}{
		Grid:      calendar.MonthGrid(year, month, entries),
		Year:      year,
		Month:     int(month),
		PrevLink:  fmt.Sprintf("/calendar?year=%d&month=%d", prev.Year(), int(prev.Month())),
		NextLink:  fmt.Sprintf("/calendar?year=%d&month=%d", next.Year(), int(next.Month())),
		MonthName: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006"),
	})
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.store.TopicsForOwner(r.Context(), ownerID(r))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.render(w, r, "topics.html", struct {
		Topics []core.Topic
	}{Topics: topics})
}

func (s *Server) handleTopic(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	topicID := pathID(r, "id")
	if topicID == 0 {
		http.NotFound(w, r)
		return
	}

	topic, err := s.store.TopicByID(r.Context(), owner, topicID)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	entries, err := s.store.EntriesForTopic(r.Context(), owner, topicID)
	if err != nil {
		s.storeError(w, r, err)
		return
	}

	s.render(w, r, "topic.html", struct {
		Topic   core.Topic
		Entries []core.Entry
	}{Topic: topic, Entries: entries})
}

func (s *Server) handleNewTopicForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "new_topic.html", struct{ Error string }{})
}

func (s *Server) handleNewTopic(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	topic := core.Topic{
		OwnerID: ownerID(r),
		Text:    sanitizeInput(r.PostFormValue("text")),
	}
	if err := topic.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, r, "new_topic.html", struct{ Error string }{Error: err.Error()})
		return
	}
	if err := s.store.CreateTopic(r.Context(), &topic); err != nil {
		s.storeError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Topic created", "topic_id", topic.ID, "owner_id", topic.OwnerID)
	http.Redirect(w, r, "/topics", http.StatusSeeOther)
}

type entryPage struct {
	Topic core.Topic
	Entry core.Entry
	Error string
}

func (s *Server) handleNewEntryForm(w http.ResponseWriter, r *http.Request) {
	topic, err := s.store.TopicByID(r.Context(), ownerID(r), pathID(r, "topic"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.render(w, r, "new_entry.html", entryPage{Topic: topic})
}

func (s *Server) handleNewEntry(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	topic, err := s.store.TopicByID(r.Context(), owner, pathID(r, "topic"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	entry := core.Entry{
		TopicID:   topic.ID,
		Title:     sanitizeInput(r.PostFormValue("title")),
		Text:      sanitizeInput(r.PostFormValue("text")),
		Mood:      sanitizeInput(r.PostFormValue("mood")),
		EventDate: parseEventDate(r.PostFormValue("event_date")),
	}
	if err := entry.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, r, "new_entry.html", entryPage{Topic: topic, Entry: entry, Error: err.Error()})
		return
	}
	if err := s.store.CreateEntry(r.Context(), owner, &entry); err != nil {
		s.storeError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Entry created",
		"entry_id", entry.ID, "topic_id", topic.ID, "owner_id", owner)
	http.Redirect(w, r, fmt.Sprintf("/topics/%d", topic.ID), http.StatusSeeOther)
}

func (s *Server) handleEditEntryForm(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	entry, err := s.store.EntryByID(r.Context(), owner, pathID(r, "id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	topic, err := s.store.TopicByID(r.Context(), owner, entry.TopicID)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	s.render(w, r, "edit_entry.html", entryPage{Topic: topic, Entry: entry})
}

func (s *Server) handleEditEntry(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	entry, err := s.store.EntryByID(r.Context(), owner, pathID(r, "id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	entry.Title = sanitizeInput(r.PostFormValue("title"))
	entry.Text = sanitizeInput(r.PostFormValue("text"))
	entry.Mood = sanitizeInput(r.PostFormValue("mood"))
	if d := parseEventDate(r.PostFormValue("event_date")); !d.IsZero() {
		entry.EventDate = d
	}

	if err := entry.Validate(); err != nil {
		topic, terr := s.store.TopicByID(r.Context(), owner, entry.TopicID)
		if terr != nil {
			s.storeError(w, r, terr)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, r, "edit_entry.html", entryPage{Topic: topic, Entry: entry, Error: err.Error()})
		return
	}
	if err := s.store.UpdateEntry(r.Context(), owner, entry); err != nil {
		s.storeError(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/topics/%d", entry.TopicID), http.StatusSeeOther)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	owner := ownerID(r)
	entry, err := s.store.EntryByID(r.Context(), owner, pathID(r, "id"))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	if err := s.store.DeleteEntry(r.Context(), owner, entry.ID); err != nil {
		s.storeError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Entry deleted", "entry_id", entry.ID, "owner_id", owner)
	http.Redirect(w, r, fmt.Sprintf("/topics/%d", entry.TopicID), http.StatusSeeOther)
}

func parseEventDate(v string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", sanitizeInput(v), time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
