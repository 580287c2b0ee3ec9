package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/examly/sessionauth"
)

func seedProvider(t *testing.T) *MemoryProvider {
	t.Helper()

	hash, err := HashPassword("correct-password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	p := NewMemoryProvider()
	if err := p.AddUser(User{
		ID:           "user-1",
		Email:        "Alice@Example.com",
		PasswordHash: hash,
		Role:         sessionauth.RoleStudent,
	}); err != nil {
		t.Fatalf("add user failed: %v", err)
	}
	return p
}

func TestAuthenticateSuccess(t *testing.T) {
	p := seedProvider(t)

	principal, err := p.Authenticate(context.Background(), "alice@example.com", "correct-password")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if principal.ID != "user-1" {
		t.Fatalf("expected user-1, got %q", principal.ID)
	}
	if principal.Role != sessionauth.RoleStudent {
		t.Fatalf("expected STUDENT role, got %q", principal.Role)
	}
	if principal.Premium {
		t.Fatal("expected free tier without PremiumUntil")
	}
}

func TestAuthenticateEmailCaseInsensitive(t *testing.T) {
	p := seedProvider(t)

	if _, err := p.Authenticate(context.Background(), "ALICE@EXAMPLE.COM", "correct-password"); err != nil {
		t.Fatalf("expected case-insensitive email match, got %v", err)
	}
}

func TestAuthenticateFailuresAreUniform(t *testing.T) {
	p := seedProvider(t)
	ctx := context.Background()

	_, errWrong := p.Authenticate(ctx, "alice@example.com", "wrong-password")
	_, errUnknown := p.Authenticate(ctx, "nobody@example.com", "any")

	if !errors.Is(errWrong, sessionauth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", errWrong)
	}
	if !errors.Is(errUnknown, sessionauth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", errUnknown)
	}
}

func TestAuthenticateDisabledAccount(t *testing.T) {
	p := seedProvider(t)

	hash, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if err := p.AddUser(User{
		ID:           "user-2",
		Email:        "gone@example.com",
		PasswordHash: hash,
		Role:         sessionauth.RoleStudent,
		Disabled:     true,
	}); err != nil {
		t.Fatalf("add user failed: %v", err)
	}

	if _, err := p.Authenticate(context.Background(), "gone@example.com", "pw"); !errors.Is(err, sessionauth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for disabled account, got %v", err)
	}
}

func TestPremiumLapsesAtExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	hash, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	p := NewMemoryProvider()
	p.now = func() time.Time { return now }
	if err := p.AddUser(User{
		ID:           "user-3",
		Email:        "premium@example.com",
		PasswordHash: hash,
		Role:         sessionauth.RoleStudent,
		PremiumUntil: now.Add(24 * time.Hour),
	}); err != nil {
		t.Fatalf("add user failed: %v", err)
	}
	ctx := context.Background()

	principal, err := p.Authenticate(ctx, "premium@example.com", "pw")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if !principal.Premium {
		t.Fatal("expected premium before expiry")
	}

	now = now.Add(48 * time.Hour)

	principal, err = p.Authenticate(ctx, "premium@example.com", "pw")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if principal.Premium {
		t.Fatal("expected free tier after subscription lapse")
	}
	if principal.AccountType() != sessionauth.AccountFree {
		t.Fatalf("expected FREE, got %q", principal.AccountType())
	}
}

func TestRemoveUser(t *testing.T) {
	p := seedProvider(t)

	p.RemoveUser("alice@example.com")
	if _, err := p.Authenticate(context.Background(), "alice@example.com", "correct-password"); !errors.Is(err, sessionauth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials after removal, got %v", err)
	}
}

func TestAddUserValidation(t *testing.T) {
	p := NewMemoryProvider()

	if err := p.AddUser(User{Email: "x@example.com", PasswordHash: []byte("h")}); err == nil {
		t.Fatal("expected error for missing ID")
	}
	if err := p.AddUser(User{ID: "u", PasswordHash: []byte("h")}); err == nil {
		t.Fatal("expected error for missing email")
	}
	if err := p.AddUser(User{ID: "u", Email: "x@example.com"}); err == nil {
		t.Fatal("expected error for missing hash")
	}
}
