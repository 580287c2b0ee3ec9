package sessionauth

import (
	"bytes"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// testProvider is a map-backed identity stub. Test seeds live here
// rather than in the identity package to keep these tests self-contained.
type testProvider struct {
	users map[string]testUser
	err   error
}

type testUser struct {
	password  string
	principal Principal
}

func (p *testProvider) Authenticate(_ context.Context, email, password string) (Principal, error) {
	if p.err != nil {
		return Principal{}, p.err
	}
	user, ok := p.users[email]
	if !ok || user.password != password {
		return Principal{}, ErrInvalidCredentials
	}
	return user.principal, nil
}

func newTestProvider() *testProvider {
	return &testProvider{
		users: map[string]testUser{
			"alice@test.com": {
				password:  "correct-password",
				principal: Principal{ID: "user-alice", Role: RoleStudent},
			},
			"bob@test.com": {
				password:  "bob-password",
				principal: Principal{ID: "user-bob", Role: RoleTeacher, Premium: true},
			},
		},
	}
}

func testConfig() Config {
	cfg := defaultConfig()
	cfg.Token.SigningSecret = bytes.Repeat([]byte{0x42}, 64)
	cfg.Metrics.EnableLatencyHistograms = true
	return cfg
}

type testEngineOption func(*Builder, *Config)

func newTestEngine(t *testing.T, opts ...testEngineOption) (*Engine, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := testConfig()
	builder := New().WithRedis(client).WithIdentityProvider(newTestProvider())
	for _, opt := range opts {
		opt(builder, &cfg)
	}

	engine, err := builder.WithConfig(cfg).Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine, mr
}

func login(t *testing.T, engine *Engine, email, password string) AuthResult {
	t.Helper()
	result, err := engine.Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !result.Authenticated || result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatalf("incomplete auth result: %+v", result)
	}
	return result
}

func mustBeValid(t *testing.T, engine *Engine, tokenString string) {
	t.Helper()
	if !engine.Introspect(context.Background(), tokenString).Valid {
		t.Fatal("expected token to introspect as valid")
	}
}

func mustBeInvalid(t *testing.T, engine *Engine, tokenString string) {
	t.Helper()
	if engine.Introspect(context.Background(), tokenString).Valid {
		t.Fatal("expected token to introspect as invalid")
	}
}
