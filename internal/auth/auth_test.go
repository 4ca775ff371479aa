package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	m := NewManager("0123456789abcdef", time.Hour)

	hash, err := m.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash must not equal the plaintext")
	}
	if err := m.CheckPassword(hash, "hunter22"); err != nil {
		t.Errorf("CheckPassword with correct password: %v", err)
	}
	if err := m.CheckPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("0123456789abcdef", time.Hour)
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	token, err := m.IssueToken(42, now)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected compact JWT, got %q", token)
	}

	userID, err := m.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if userID != 42 {
		t.Errorf("expected user 42, got %d", userID)
	}
}

func TestTokenRejections(t *testing.T) {
	m := NewManager("0123456789abcdef", time.Hour)

	t.Run("expired", func(t *testing.T) {
		token, err := m.IssueToken(42, time.Now().Add(-2*time.Hour))
		if err != nil {
			t.Fatalf("IssueToken: %v", err)
		}
		if _, err := m.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewManager("fedcba9876543210", time.Hour)
		token, err := other.IssueToken(42, time.Now())
		if err != nil {
			t.Fatalf("IssueToken: %v", err)
		}
		if _, err := m.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken for foreign signature, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := m.VerifyToken("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
