package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Type discriminates the two credential kinds minted by a [Codec].
type Type string

const (
	// TypeAccess is the short-lived credential presented on protected requests.
	TypeAccess Type = "access"
	// TypeRefresh is the long-lived credential exchanged for a new pair.
	TypeRefresh Type = "refresh"
)

// Verification failures, ordered by the check that produced them:
// structural parse, then MAC, then expiry.
var (
	// ErrMalformed indicates the string is not a well-formed signed token.
	ErrMalformed = errors.New("malformed token")
	// ErrBadSignature indicates the MAC did not verify under the shared secret.
	ErrBadSignature = errors.New("token signature mismatch")
	// ErrExpired indicates the exp claim is in the past.
	ErrExpired = errors.New("token expired")
)

// minSecretSize is the HS512 output size; shorter keys weaken the MAC.
const minSecretSize = 64

// Claims is the full claim set carried by every sessionauth token.
// Once signed the set is immutable: the MAC covers header and claims,
// so any mutation invalidates the token.
type Claims struct {
	Type        string `json:"type"`
	AccountType string `json:"accountType"`
	Scope       string `json:"scope"`
	jwt.RegisteredClaims
}

// Remaining returns the time left until the claim set's natural expiry,
// or zero when no expiry is present. Negative values mean the token has
// already expired.
func (c *Claims) Remaining(now time.Time) time.Duration {
	if c == nil || c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Time.Sub(now)
}

// Config holds the immutable codec parameters. The secret is process-wide
// configuration loaded once at startup; rotating it invalidates every
// outstanding token, which is an accepted operational property.
type Config struct {
	Secret []byte
	Issuer string
}

// Codec signs and verifies the compact token wire format
// (base64url header.claims.signature) with HMAC-SHA-512.
type Codec struct {
	config Config
}

// NewCodec validates the configuration and returns a ready codec.
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) < minSecretSize {
		return nil, fmt.Errorf("signing secret must be at least %d bytes", minSecretSize)
	}
	if cfg.Issuer == "" {
		return nil, errors.New("issuer required")
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)
	cfg.Secret = secret
	return &Codec{config: cfg}, nil
}

// Mint signs a fresh token for the subject. Every call produces a unique
// jti so revocation and reuse tracking can tell otherwise identical
// tokens apart.
func (c *Codec) Mint(subject string, typ Type, accountType, scope string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("empty subject")
	}
	if ttl <= 0 {
		return "", errors.New("non-positive ttl")
	}

	now := time.Now()
	claims := Claims{
		Type:        string(typ),
		AccountType: accountType,
		Scope:       scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    c.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(c.config.Secret)
}

// Verify checks the token in order: structural parse (ErrMalformed),
// MAC over header+claims (ErrBadSignature, constant-time compare inside
// the HMAC verify), then expiry (ErrExpired) unless allowExpired is set.
// It never consults the session store; revocation is the caller's layer.
func (c *Codec) Verify(tokenString string, allowExpired bool) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
	}
	if allowExpired {
		options = append(options, jwt.WithoutClaimsValidation())
	}

	parser := jwt.NewParser(options...)
	parsed, err := parser.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return c.config.Secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%w: %v", ErrExpired, err)
		default:
			// Signature mismatch, algorithm confusion, unverifiable
			// tokens: structurally fine but the MAC cannot stand.
			return nil, fmt.Errorf("%w: %v", ErrBadSignature, err)
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrMalformed
	}
	return claims, nil
}

// Peek parses the claim set without verifying the signature or expiry.
// It is used by logout, where revoking an already-invalid token must be
// a harmless no-op. Only structurally broken input fails, with
// ErrMalformed.
func (c *Codec) Peek(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return claims, nil
}
