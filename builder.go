package sessionauth

import (
	"errors"

	internalaudit "github.com/examly/sessionauth/internal/audit"
	internalmetrics "github.com/examly/sessionauth/internal/metrics"
	"github.com/examly/sessionauth/internal/rate"
	"github.com/examly/sessionauth/store"
	"github.com/examly/sessionauth/token"
	"github.com/redis/go-redis/v9"
)

// Builder assembles an [Engine] from configuration and injected
// dependencies. A builder is single-use: Build succeeds at most once.
type Builder struct {
	config Config
	redis  redis.UniversalClient
	store  store.Store

	identity  IdentityProvider
	auditSink AuditSink

	built bool
}

// New returns a [Builder] preloaded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration wholesale. The config
// is deep-copied; callers may zero the secret afterwards.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis sets the Redis client backing the session store and, when
// throttling is enabled, the rate limiter.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithStore injects a session store directly, bypassing Redis. Useful
// for tests ([store.MemoryStore]) and alternative backends. Throttling
// still requires a Redis client.
func (b *Builder) WithStore(s store.Store) *Builder {
	b.store = s
	return b
}

// WithIdentityProvider sets the credential verifier used by Login.
func (b *Builder) WithIdentityProvider(p IdentityProvider) *Builder {
	b.identity = p
	return b
}

// WithAuditSink sets the destination for audit events. Without one,
// enabled auditing counts events into a no-op sink.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles the in-process metrics system.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles latency histogram recording.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration, wires the subsystems, and returns
// a ready [Engine]. The engine owns the audit dispatcher goroutine;
// callers must Close it on shutdown.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.identity == nil {
		return nil, errors.New("identity provider required")
	}

	if b.store == nil && b.redis == nil {
		return nil, errors.New("redis client or store required")
	}

	throttling := cfg.RateLimit.EnableLoginThrottle ||
		cfg.RateLimit.EnableIPThrottle ||
		cfg.RateLimit.EnableRefreshThrottle
	if throttling && b.redis == nil {
		return nil, errors.New("rate limiting requires redis client")
	}

	codec, err := token.NewCodec(token.Config{
		Secret: cfg.Token.SigningSecret,
		Issuer: cfg.Token.Issuer,
	})
	if err != nil {
		return nil, err
	}

	sessionStore := b.store
	if sessionStore == nil {
		sessionStore = store.NewRedisStore(b.redis, cfg.Session.RedisPrefix)
	}

	engine := &Engine{
		config:   cfg,
		codec:    codec,
		store:    sessionStore,
		identity: b.identity,
	}

	if throttling {
		engine.limiter = rate.New(b.redis, rate.Config{
			EnableIPThrottle:      cfg.RateLimit.EnableIPThrottle,
			EnableRefreshThrottle: cfg.RateLimit.EnableRefreshThrottle,
			MaxLoginAttempts:      cfg.RateLimit.MaxLoginAttempts,
			LoginCooldown:         cfg.RateLimit.LoginCooldown,
			MaxRefreshAttempts:    cfg.RateLimit.MaxRefreshAttempts,
			RefreshCooldown:       cfg.RateLimit.RefreshCooldown,
		})
	}

	engine.audit = internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)

	engine.metrics = internalmetrics.New(internalmetrics.Config{
		Enabled:       cfg.Metrics.Enabled,
		EnableLatency: cfg.Metrics.EnableLatencyHistograms,
	})

	b.built = true
	return engine, nil
}
