package sessionauth

import (
	"context"
	"errors"
	"testing"

	"github.com/examly/sessionauth/token"
)

func TestLoginIssuesVerifiableTokenPair(t *testing.T) {
	engine, _ := newTestEngine(t)

	result := login(t, engine, "alice@test.com", "correct-password")

	claims, err := engine.VerifyAccess(context.Background(), result.AccessToken)
	if err != nil {
		t.Fatalf("verify access failed: %v", err)
	}
	if claims.Subject != "user-alice" {
		t.Fatalf("expected subject user-alice, got %q", claims.Subject)
	}
	if claims.Scope != "STUDENT" {
		t.Fatalf("expected scope STUDENT, got %q", claims.Scope)
	}
	if claims.AccountType != "FREE" {
		t.Fatalf("expected accountType FREE, got %q", claims.AccountType)
	}

	mustBeValid(t, engine, result.AccessToken)
	mustBeValid(t, engine, result.RefreshToken)
}

func TestLoginPremiumAccountType(t *testing.T) {
	engine, _ := newTestEngine(t)

	result := login(t, engine, "bob@test.com", "bob-password")

	claims, err := engine.VerifyAccess(context.Background(), result.AccessToken)
	if err != nil {
		t.Fatalf("verify access failed: %v", err)
	}
	if claims.AccountType != "PREMIUM" {
		t.Fatalf("expected accountType PREMIUM, got %q", claims.AccountType)
	}
	if claims.Scope != "TEACHER" {
		t.Fatalf("expected scope TEACHER, got %q", claims.Scope)
	}
}

func TestLoginWrongPasswordAndUnknownUserAreIndistinguishable(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	_, errWrong := engine.Login(ctx, "alice@test.com", "wrong-password")
	_, errUnknown := engine.Login(ctx, "nobody@test.com", "any-password")

	if !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", errWrong)
	}
	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", errUnknown)
	}
	if errWrong.Error() != errUnknown.Error() {
		t.Fatalf("error messages differ: %q vs %q", errWrong, errUnknown)
	}
}

func TestLoginIdentityOutage(t *testing.T) {
	provider := newTestProvider()
	provider.err = errors.New("directory timeout")

	engine, _ := newTestEngine(t, func(b *Builder, _ *Config) {
		b.WithIdentityProvider(provider)
	})

	_, err := engine.Login(context.Background(), "alice@test.com", "correct-password")
	if !errors.Is(err, ErrIdentityUnavailable) {
		t.Fatalf("expected ErrIdentityUnavailable, got %v", err)
	}
}

func TestLoginDisplacesPreviousSession(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	first := login(t, engine, "alice@test.com", "correct-password")
	second := login(t, engine, "alice@test.com", "correct-password")

	// The first session's refresh token was overwritten; presenting it
	// now is reuse.
	if _, err := engine.Refresh(ctx, first.RefreshToken); !errors.Is(err, ErrReplayDetected) {
		t.Fatalf("expected ErrReplayDetected for displaced token, got %v", err)
	}
	if _, err := engine.Refresh(ctx, second.RefreshToken); err != nil {
		t.Fatalf("expected current token to rotate, got %v", err)
	}
}

func TestLoginStoreOutage(t *testing.T) {
	engine, mr := newTestEngine(t)
	mr.Close()

	_, err := engine.Login(context.Background(), "alice@test.com", "correct-password")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestLoginRateLimiting(t *testing.T) {
	engine, _ := newTestEngine(t, func(_ *Builder, cfg *Config) {
		cfg.RateLimit.EnableLoginThrottle = true
		cfg.RateLimit.MaxLoginAttempts = 2
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := engine.Login(ctx, "alice@test.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	// Budget exhausted: even the correct password is throttled.
	if _, err := engine.Login(ctx, "alice@test.com", "correct-password"); !errors.Is(err, ErrLoginRateLimited) {
		t.Fatalf("expected ErrLoginRateLimited, got %v", err)
	}

	snapshot := engine.MetricsSnapshot()
	if snapshot.Counters[MetricLoginRateLimited] == 0 {
		t.Fatal("expected login rate limited counter")
	}
}

func TestLoginRateLimitResetsAfterSuccess(t *testing.T) {
	engine, _ := newTestEngine(t, func(_ *Builder, cfg *Config) {
		cfg.RateLimit.EnableLoginThrottle = true
		cfg.RateLimit.MaxLoginAttempts = 3
	})
	ctx := context.Background()

	_, _ = engine.Login(ctx, "alice@test.com", "wrong-password")
	_, _ = engine.Login(ctx, "alice@test.com", "wrong-password")
	login(t, engine, "alice@test.com", "correct-password")

	// The success cleared the counters; the budget is whole again.
	for i := 0; i < 2; i++ {
		if _, err := engine.Login(ctx, "alice@test.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}
}

func TestLoginMetricsAndAudit(t *testing.T) {
	sink := NewChannelSink(16)
	engine, _ := newTestEngine(t, func(b *Builder, _ *Config) {
		b.WithAuditSink(sink)
	})

	login(t, engine, "alice@test.com", "correct-password")
	_, _ = engine.Login(context.Background(), "alice@test.com", "wrong-password")
	engine.Close() // drains the dispatcher

	snapshot := engine.MetricsSnapshot()
	if snapshot.Counters[MetricLoginSuccess] != 1 {
		t.Fatalf("expected 1 login success, got %d", snapshot.Counters[MetricLoginSuccess])
	}
	if snapshot.Counters[MetricLoginFailure] != 1 {
		t.Fatalf("expected 1 login failure, got %d", snapshot.Counters[MetricLoginFailure])
	}

	var types []string
	for len(sink.Events()) > 0 {
		types = append(types, (<-sink.Events()).EventType)
	}
	if len(types) != 2 || types[0] != AuditLoginSuccess || types[1] != AuditLoginFailure {
		t.Fatalf("unexpected audit sequence %v", types)
	}
}

func TestLoginTokenTypes(t *testing.T) {
	engine, _ := newTestEngine(t)

	result := login(t, engine, "alice@test.com", "correct-password")

	// The refresh token is not acceptable where an access token is
	// required.
	if _, err := engine.VerifyAccess(context.Background(), result.RefreshToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for refresh token, got %v", err)
	}

	claims, err := engine.VerifyAccess(context.Background(), result.AccessToken)
	if err != nil {
		t.Fatalf("verify access failed: %v", err)
	}
	if claims.Type != string(token.TypeAccess) {
		t.Fatalf("expected access type, got %q", claims.Type)
	}
}
