// Package application holds the session context: who is logged in, and the
// cached credential that backs every gateway call.
package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/felixgeelhaar/arcana/internal/gateway"
	"github.com/felixgeelhaar/arcana/internal/identity/domain"
	"github.com/felixgeelhaar/arcana/internal/identity/infrastructure/cache"
)

// AuthGateway is the slice of the backend the session context talks to.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)
	LoginWithGoogle(ctx context.Context, idToken string) (*domain.LoginResult, error)
	Register(ctx context.Context, name, email, password string) (*domain.RegisterResult, error)
	VerifyEmail(ctx context.Context, token string) (*gateway.MessageResponse, error)
	GetCurrentUser(ctx context.Context) (*domain.User, error)
}

// Navigator moves the user to the home view after login or logout.
type Navigator interface {
	Home()
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func()

// Home implements Navigator.
func (f NavigatorFunc) Home() { f() }

type loginOptions struct {
	redirect bool
}

// LoginOption customises Login, LoginWithGoogle and Register.
type LoginOption func(*loginOptions)

// WithoutRedirect keeps the caller where it is after a successful login.
func WithoutRedirect() LoginOption {
	return func(o *loginOptions) { o.redirect = false }
}

// Service is the session context. It is safe for concurrent use.
type Service struct {
	gateway AuthGateway
	store   cache.Store
	nav     Navigator
	logger  *slog.Logger

	mu    sync.RWMutex
	token string
	user  *domain.User
}

// NewService creates a Service. nav and logger may be nil.
func NewService(gw AuthGateway, store cache.Store, nav Navigator, logger *slog.Logger) *Service {
	if nav == nil {
		nav = NavigatorFunc(func() {})
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{gateway: gw, store: store, nav: nav, logger: logger}
}

// Restore hydrates the session from the cache. A missing or unreadable
// entry leaves the session unauthenticated. Entries that cannot be decoded
// are purged; a failed read returns an error and leaves the cache as is.
// The cached credential is not validated against the backend.
func (s *Service) Restore(ctx context.Context) error {
	token, err := s.store.Get(ctx, cache.KeyToken)
	switch {
	case errors.Is(err, cache.ErrNotFound):
		return nil
	case errors.Is(err, cache.ErrCorrupt):
		return s.purgeCorrupt(ctx, err)
	case err != nil:
		return fmt.Errorf("read cached credential: %w", err)
	}

	rawUser, err := s.store.Get(ctx, cache.KeyUser)
	switch {
	case errors.Is(err, cache.ErrNotFound):
		return s.purgeCorrupt(ctx, errors.New("credential cached without identity"))
	case errors.Is(err, cache.ErrCorrupt):
		return s.purgeCorrupt(ctx, err)
	case err != nil:
		return fmt.Errorf("read cached identity: %w", err)
	}

	if !domain.ValidCredential(token) {
		return s.purgeCorrupt(ctx, errors.New("cached credential is a placeholder"))
	}

	var user domain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return s.purgeCorrupt(ctx, err)
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "session restored", "user_id", user.ID)
	return nil
}

func (s *Service) purgeCorrupt(ctx context.Context, cause error) error {
	s.logger.WarnContext(ctx, "discarding cached session", "error", cause)
	s.clear()
	if err := s.store.Delete(ctx, cache.KeyToken, cache.KeyUser); err != nil {
		return fmt.Errorf("purge cached session: %w", err)
	}
	return nil
}

// Login authenticates with email and password.
func (s *Service) Login(ctx context.Context, email, password string, opts ...LoginOption) error {
	res, err := s.gateway.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return err
	}
	return s.establish(ctx, res, opts)
}

// LoginWithGoogle authenticates with a Google ID token.
func (s *Service) LoginWithGoogle(ctx context.Context, idToken string, opts ...LoginOption) error {
	res, err := s.gateway.LoginWithGoogle(ctx, idToken)
	if err != nil {
		return err
	}
	return s.establish(ctx, res, opts)
}

// establish persists a login result, then sets it in memory.
func (s *Service) establish(ctx context.Context, res *domain.LoginResult, opts []LoginOption) error {
	o := loginOptions{redirect: true}
	for _, opt := range opts {
		opt(&o)
	}

	if res == nil || !domain.ValidCredential(res.AccessToken) {
		return domain.ErrNoCredential
	}
	token := strings.TrimSpace(res.AccessToken)
	user := res.User

	if err := s.persistUser(ctx, &user); err != nil {
		return err
	}
	if err := s.store.Set(ctx, cache.KeyToken, token); err != nil {
		_ = s.store.Delete(ctx, cache.KeyUser)
		return fmt.Errorf("persist credential: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "logged in", "user_id", user.ID)
	if o.redirect {
		s.nav.Home()
	}
	return nil
}

// Register validates the form, creates the account and logs in with the same
// credentials. The backend registration itself does not authenticate.
func (s *Service) Register(ctx context.Context, form domain.Registration, opts ...LoginOption) error {
	if err := form.Validate(); err != nil {
		return err
	}
	email := strings.TrimSpace(form.Email)
	if _, err := s.gateway.Register(ctx, strings.TrimSpace(form.Name), email, form.Password); err != nil {
		return err
	}
	return s.Login(ctx, email, form.Password, opts...)
}

// Logout forgets the session and returns home.
func (s *Service) Logout(ctx context.Context) error {
	s.clear()
	err := s.store.Delete(ctx, cache.KeyToken, cache.KeyUser)
	s.nav.Home()
	if err != nil {
		return fmt.Errorf("clear cached session: %w", err)
	}
	return nil
}

// VerifyEmail confirms the address and marks the loaded identity verified
// without re-fetching it.
func (s *Service) VerifyEmail(ctx context.Context, token string) (string, error) {
	res, err := s.gateway.VerifyEmail(ctx, token)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	var updated *domain.User
	if s.user != nil {
		s.user.EmailVerified = true
		u := *s.user
		updated = &u
	}
	s.mu.Unlock()

	if updated != nil {
		if err := s.persistUser(ctx, updated); err != nil {
			s.logger.WarnContext(ctx, "verified flag not persisted", "error", err)
		}
	}
	return res.Message, nil
}

// Refresh re-reads the identity from the backend and updates the cache.
func (s *Service) Refresh(ctx context.Context) (*domain.User, error) {
	if !s.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	user, err := s.gateway.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.persistUser(ctx, user); err != nil {
		return nil, err
	}

	s.mu.Lock()
	u := *user
	s.user = &u
	s.mu.Unlock()
	return user, nil
}

// Current returns a copy of the loaded identity, or nil.
func (s *Service) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a credential and identity are loaded.
func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && domain.ValidCredential(s.token)
}

// Credential returns the bearer credential. It implements
// gateway.CredentialSource.
func (s *Service) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// CredentialExpiry reads the exp claim of the credential when it is a JWT.
// The signature is not checked; the result is informational only.
func (s *Service) CredentialExpiry() (time.Time, bool) {
	token := s.Credential()
	if !domain.ValidCredential(token) {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *Service) persistUser(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := s.store.Set(ctx, cache.KeyUser, string(raw)); err != nil {
		return fmt.Errorf("persist identity: %w", err)
	}
	return nil
}

func (s *Service) clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
}
