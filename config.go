package sessionauth

import (
	"errors"
	"fmt"
	"time"
)

// Config is the process-wide engine configuration. It is loaded once at
// startup and immutable after [Builder.Build]; rotating the signing
// secret requires a restart and invalidates all outstanding tokens.
type Config struct {
	Token     TokenConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

// TokenConfig parameterizes the HS512 codec and token lifetimes.
type TokenConfig struct {
	// SigningSecret keys the HMAC; at least 64 bytes (the HS512 output
	// size).
	SigningSecret []byte
	// Issuer is the fixed iss claim on every minted token.
	Issuer string
	// AccessTTL bounds access-token lifetime (short).
	AccessTTL time.Duration
	// RefreshTTL bounds refresh-token lifetime (long). Note that for
	// refresh tokens the store TTL is the effective expiry; see
	// [Engine.Refresh].
	RefreshTTL time.Duration
}

// SessionConfig parameterizes the store binding.
type SessionConfig struct {
	// RedisPrefix namespaces every store key; may be empty.
	RedisPrefix string
	// StrictRotation makes Refresh use an atomic replace-if-equal
	// instead of last-writer-wins, so of two racing refreshes exactly
	// one succeeds and the other reports replay.
	StrictRotation bool
}

// RateLimitConfig parameterizes the optional fixed-window attempt
// budgets. Throttling requires a Redis client on the builder.
type RateLimitConfig struct {
	EnableLoginThrottle   bool
	EnableIPThrottle      bool
	MaxLoginAttempts      int
	LoginCooldown         time.Duration
	EnableRefreshThrottle bool
	MaxRefreshAttempts    int
	RefreshCooldown       time.Duration
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process metrics system.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the baseline configuration: 15-minute access
// tokens, 30-day refresh tokens, audit and metrics on, throttling off.
// The signing secret has no default and must be supplied.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			Issuer:     "sessionauth",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 30 * 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			MaxLoginAttempts:   5,
			LoginCooldown:      15 * time.Minute,
			MaxRefreshAttempts: 10,
			RefreshCooldown:    time.Minute,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if len(c.Token.SigningSecret) < 64 {
		return errors.New("token signing secret must be at least 64 bytes")
	}
	if c.Token.Issuer == "" {
		return errors.New("token issuer required")
	}
	if c.Token.AccessTTL <= 0 || c.Token.RefreshTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	if c.Token.RefreshTTL < c.Token.AccessTTL {
		return errors.New("refresh TTL must not be shorter than access TTL")
	}
	if c.RateLimit.EnableLoginThrottle || c.RateLimit.EnableIPThrottle {
		if c.RateLimit.MaxLoginAttempts <= 0 {
			return fmt.Errorf("invalid MaxLoginAttempts %d", c.RateLimit.MaxLoginAttempts)
		}
		if c.RateLimit.LoginCooldown <= 0 {
			return errors.New("login cooldown must be positive")
		}
	}
	if c.RateLimit.EnableRefreshThrottle {
		if c.RateLimit.MaxRefreshAttempts <= 0 {
			return fmt.Errorf("invalid MaxRefreshAttempts %d", c.RateLimit.MaxRefreshAttempts)
		}
		if c.RateLimit.RefreshCooldown <= 0 {
			return errors.New("refresh cooldown must be positive")
		}
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return fmt.Errorf("invalid audit buffer size %d", c.Audit.BufferSize)
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	if cfg.Token.SigningSecret != nil {
		out.Token.SigningSecret = make([]byte, len(cfg.Token.SigningSecret))
		copy(out.Token.SigningSecret, cfg.Token.SigningSecret)
	}
	return out
}
