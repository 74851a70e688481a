package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/frostgate/svscoord/internal/dependencies/clock"
	"github.com/frostgate/svscoord/internal/model"
	"github.com/frostgate/svscoord/internal/services/idguard"
	"github.com/frostgate/svscoord/internal/services/invite"
	"github.com/frostgate/svscoord/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrAccountExists      = errors.New("account already exists")
)

// Session represents an authenticated session
type Session struct {
	Token     string
	Email     model.Email
	User      model.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles player-ID password accounts and session management.
// Accounts live under the synthetic placeholder-domain email derived from
// the player ID; signing up against an admin-created placeholder converts
// that record in place rather than creating a second owner.
type Service struct {
	storage storage.Store
	invites *invite.Controller
	clock   clock.Clock
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(store storage.Store, invites *invite.Controller, clk clock.Clock, logger *slog.Logger, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         store,
		invites:         invites,
		clock:           clk,
		logger:          logger,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Signup creates (or converts) the account for a player ID and opens a
// session. The identity guard runs inside the same transaction as the
// write, so two concurrent signups for one player ID cannot both succeed.
func (s *Service) Signup(ctx context.Context, playerID model.PlayerID, password string) (*Session, error) {
	if !idguard.ValidID(playerID) {
		return nil, model.ErrPlayerIDNotNumeric
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	email := model.SyntheticEmail(playerID)
	var account model.User

	err = s.storage.RunTransaction(ctx, func(tx storage.Txn) error {
		existing, err := tx.GetUser(email)
		if err != nil && !errors.Is(err, model.ErrUserNotFound) {
			return err
		}
		if existing != nil && existing.AuthLinked {
			return ErrAccountExists
		}

		decision, err := idguard.Validate(tx, playerID, idguard.ContextSelfSignup)
		if err != nil {
			return err
		}
		if !decision.Allowed {
			return decision.Err()
		}

		now := s.clock.Now()
		if decision.Reason == idguard.ReasonPlaceholderLink {
			user := decision.Placeholder
			user.IsPlaceholder = false
			user.AuthLinked = true
			user.PasswordHash = hash
			user.UpdatedAt = now
			account = *user
			return tx.PutUser(user)
		}

		user := &model.User{
			Email:        email,
			Role:         model.RoleMember,
			Status:       model.StatusIncomplete,
			PlayerID:     playerID,
			AuthLinked:   true,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		account = *user
		return tx.PutUser(user)
	})
	if err != nil {
		return nil, err
	}

	s.acceptPendingInvite(ctx, email)

	return s.createSession(&account), nil
}

// Login authenticates a password account and opens a session. Any active
// invite for the identifier is consumed on the way in.
func (s *Service) Login(ctx context.Context, identifier model.Email, password string) (*Session, error) {
	user, err := s.storage.GetUser(ctx, identifier)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if len(user.PasswordHash) == 0 {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if s.acceptPendingInvite(ctx, identifier) {
		if refreshed, err := s.storage.GetUser(ctx, identifier); err == nil {
			user = refreshed
		}
	}

	return s.createSession(user), nil
}

// LoginWithPlayerID is a convenience wrapper for the player-ID login form.
func (s *Service) LoginWithPlayerID(ctx context.Context, playerID model.PlayerID, password string) (*Session, error) {
	if !idguard.ValidID(playerID) {
		return nil, model.ErrPlayerIDNotNumeric
	}
	return s.Login(ctx, model.SyntheticEmail(playerID), password)
}

func (s *Service) acceptPendingInvite(ctx context.Context, identifier model.Email) bool {
	accepted, err := s.invites.AcceptIfExists(ctx, identifier)
	if err != nil {
		s.logger.Warn("invite acceptance failed",
			slog.String("identifier", string(identifier)),
			slog.String("error", err.Error()))
		return false
	}
	return accepted
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

func (s *Service) createSession(user *model.User) *Session {
	token := generateToken()
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		Email:     user.Email,
		User:      *user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session
}

func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
