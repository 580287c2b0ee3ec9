package sessionauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/examly/sessionauth/store"
	"github.com/examly/sessionauth/token"
)

func TestIntrospectLiveToken(t *testing.T) {
	engine, _ := newTestEngine(t)

	result := login(t, engine, "alice@test.com", "correct-password")
	mustBeValid(t, engine, result.AccessToken)

	snapshot := engine.MetricsSnapshot()
	if snapshot.Counters[MetricIntrospectValid] != 1 {
		t.Fatalf("expected 1 valid introspection, got %d", snapshot.Counters[MetricIntrospectValid])
	}
}

func TestIntrospectCollapsesFailureCauses(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	expiring, err := engine.codec.Mint("user-alice", token.TypeAccess, "FREE", "STUDENT", time.Millisecond)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	foreign, err := token.NewCodec(token.Config{Secret: make([]byte, 64), Issuer: "other"})
	if err != nil {
		t.Fatalf("codec failed: %v", err)
	}
	forged, err := foreign.Mint("user-alice", token.TypeAccess, "FREE", "STUDENT", time.Hour)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	// Malformed, forged, and expired all produce the same bare false.
	for _, input := range []string{"garbage", forged, expiring} {
		if engine.Introspect(ctx, input).Valid {
			t.Fatalf("expected invalid for %q", input)
		}
	}

	snapshot := engine.MetricsSnapshot()
	if snapshot.Counters[MetricIntrospectInvalid] != 3 {
		t.Fatalf("expected 3 invalid introspections, got %d", snapshot.Counters[MetricIntrospectInvalid])
	}
}

func TestIntrospectFailsClosedOnStoreOutage(t *testing.T) {
	engine, mr := newTestEngine(t)
	result := login(t, engine, "alice@test.com", "correct-password")

	mustBeValid(t, engine, result.AccessToken)

	mr.Close()

	// The signature still verifies, but the revocation check cannot
	// run; the token reports invalid rather than guessing.
	mustBeInvalid(t, engine, result.AccessToken)
}

func TestIntrospectLatencyHistogram(t *testing.T) {
	engine, _ := newTestEngine(t)

	result := login(t, engine, "alice@test.com", "correct-password")
	for i := 0; i < 5; i++ {
		mustBeValid(t, engine, result.AccessToken)
	}

	buckets, ok := engine.MetricsSnapshot().Histograms[MetricIntrospectLatency]
	if !ok {
		t.Fatal("expected introspect latency histogram")
	}
	var total uint64
	for _, v := range buckets {
		total += v
	}
	if total != 5 {
		t.Fatalf("expected 5 samples, got %d", total)
	}
}

func TestVerifyAccessReportsCauses(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	result := login(t, engine, "alice@test.com", "correct-password")

	if _, err := engine.VerifyAccess(ctx, "garbage"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
	if _, err := engine.VerifyAccess(ctx, result.RefreshToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for refresh token, got %v", err)
	}

	if err := engine.Logout(ctx, result.AccessToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := engine.VerifyAccess(ctx, result.AccessToken); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}
}

func TestVerifyAccessStoreOutage(t *testing.T) {
	engine, mr := newTestEngine(t)
	result := login(t, engine, "alice@test.com", "correct-password")
	mr.Close()

	if _, err := engine.VerifyAccess(context.Background(), result.AccessToken); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func BenchmarkIntrospect(b *testing.B) {
	cfg := testConfig()
	cfg.Audit.Enabled = false

	memory := store.NewMemoryStore()
	engine, err := New().
		WithConfig(cfg).
		WithStore(memory).
		WithIdentityProvider(newTestProvider()).
		Build()
	if err != nil {
		b.Fatalf("build failed: %v", err)
	}
	defer engine.Close()

	ctx := context.Background()
	result, err := engine.Login(ctx, "alice@test.com", "correct-password")
	if err != nil {
		b.Fatalf("login failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !engine.Introspect(ctx, result.AccessToken).Valid {
			b.Fatal("expected valid")
		}
	}
}
