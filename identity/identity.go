package identity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/examly/sessionauth"
	"golang.org/x/crypto/bcrypt"
)

// User is an account record held by the [MemoryProvider].
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Role         sessionauth.Role
	// PremiumUntil gates the premium tier; zero means never premium.
	// A lapsed subscription silently downgrades to the free tier on the
	// next authentication.
	PremiumUntil time.Time
	Disabled     bool
}

// MemoryProvider is a map-backed [sessionauth.IdentityProvider] keyed by
// lowercased email. It is safe for concurrent use.
type MemoryProvider struct {
	mu    sync.RWMutex
	users map[string]User
	now   func() time.Time
}

// NewMemoryProvider creates an empty provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		users: make(map[string]User),
		now:   time.Now,
	}
}

// HashPassword bcrypt-hashes a plaintext password for seeding users.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// AddUser registers or replaces a user. The email is normalized to
// lower case.
func (p *MemoryProvider) AddUser(u User) error {
	if u.ID == "" || u.Email == "" {
		return errors.New("user ID and email required")
	}
	if len(u.PasswordHash) == 0 {
		return errors.New("password hash required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.users[strings.ToLower(u.Email)] = u
	return nil
}

// RemoveUser deletes a user by email. Removing an absent user is a
// no-op.
func (p *MemoryProvider) RemoveUser(email string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.users, strings.ToLower(email))
}

// Authenticate verifies the email and password against the stored hash.
// Unknown emails, wrong passwords, and disabled accounts all surface as
// [sessionauth.ErrInvalidCredentials]; a dummy bcrypt comparison runs on
// the unknown-email path so timing does not reveal account existence.
func (p *MemoryProvider) Authenticate(ctx context.Context, email, password string) (sessionauth.Principal, error) {
	if err := ctx.Err(); err != nil {
		return sessionauth.Principal{}, err
	}

	p.mu.RLock()
	user, ok := p.users[strings.ToLower(email)]
	p.mu.RUnlock()

	if !ok {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return sessionauth.Principal{}, sessionauth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return sessionauth.Principal{}, sessionauth.ErrInvalidCredentials
	}

	if user.Disabled {
		return sessionauth.Principal{}, sessionauth.ErrInvalidCredentials
	}

	return sessionauth.Principal{
		ID:      user.ID,
		Role:    user.Role,
		Premium: !user.PremiumUntil.IsZero() && p.now().Before(user.PremiumUntil),
	}, nil
}

// dummyHash is compared against on the unknown-email path so both
// branches pay the bcrypt cost.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("sessionauth-dummy-comparison-subject"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()
