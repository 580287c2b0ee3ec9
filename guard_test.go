package sessionauth

import (
	"context"
	"errors"
	"testing"
)

func TestRequireRole(t *testing.T) {
	engine, _ := newTestEngine(t)

	result := login(t, engine, "alice@test.com", "correct-password")
	claims, err := engine.VerifyAccess(context.Background(), result.AccessToken)
	if err != nil {
		t.Fatalf("verify access failed: %v", err)
	}

	if err := RequireRole(claims, RoleStudent); err != nil {
		t.Fatalf("expected STUDENT allowed, got %v", err)
	}
	if err := RequireRole(claims, RoleTeacher, RoleStudent); err != nil {
		t.Fatalf("expected multi-role allow-list to pass, got %v", err)
	}
	if err := RequireRole(claims, RoleAdmin); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := RequireRole(claims); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for empty allow-list, got %v", err)
	}
}

func TestRequireRoleNilClaims(t *testing.T) {
	if err := RequireRole(nil, RoleStudent); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
