package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fedha/internal/auth"
	"fedha/internal/core"
	"fedha/internal/storage"
)

type authPage struct {
	User  *core.User
	Error string
	Form  map[string]string
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "register.html", authPage{Form: map[string]string{}})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	username := sanitizeInput(r.PostFormValue("username"))
	email := sanitizeInput(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	page := authPage{Form: map[string]string{"username": username, "email": email}}
	switch {
	case username == "" || email == "" || password == "":
		page.Error = "Tafadhali jaza sehemu zote."
	case len(password) < 8:
		page.Error = "Nenosiri lazima liwe na herufi 8 au zaidi."
	case !strings.Contains(email, "@"):
		page.Error = "Barua pepe si sahihi."
	}
	if page.Error != "" {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, r, "register.html", page)
		return
	}

	if _, err := s.store.UserByUsername(r.Context(), username); err == nil {
		page.Error = "Jina hili la mtumiaji tayari limechukuliwa."
		w.WriteHeader(http.StatusConflict)
		s.render(w, r, "register.html", page)
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		s.storeError(w, r, err)
		return
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		slog.ErrorContext(r.Context(), "Password hashing failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	u := core.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.store.CreateUser(r.Context(), &u); err != nil {
		s.storeError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "User registered", "user_id", u.ID, "username", u.Username)
	s.login(w, r, u.ID)
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", authPage{Form: map[string]string{}})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	username := sanitizeInput(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	u, err := s.store.UserByUsername(r.Context(), username)
	if err == nil {
		err = s.auth.CheckPassword(u.PasswordHash, password)
	}
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) && !errors.Is(err, auth.ErrInvalidCredentials) {
			s.storeError(w, r, err)
			return
		}
		slog.WarnContext(r.Context(), "Login failed", "username", username)
		w.WriteHeader(http.StatusUnauthorized)
		s.render(w, r, "login.html", authPage{
			Error: "Jina la mtumiaji au nenosiri si sahihi.",
			Form:  map[string]string{"username": username},
		})
		return
	}

	slog.InfoContext(r.Context(), "User logged in", "user_id", u.ID, "username", u.Username)
	s.login(w, r, u.ID)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request, userID int64) {
	token, err := s.auth.IssueToken(userID, time.Now().UTC())
	if err != nil {
		slog.ErrorContext(r.Context(), "Token issue failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.setSession(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
