package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/freelancepay/tracker/internal/domain"
	"github.com/freelancepay/tracker/internal/repository"
	"github.com/freelancepay/tracker/internal/session"
	"github.com/freelancepay/tracker/pkg/config"
	"github.com/freelancepay/tracker/pkg/crypto"
	jwtpkg "github.com/freelancepay/tracker/pkg/jwt"
)

const minPasswordLength = 6

var (
	errEmailRequired    = fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
	errNameRequired     = fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	errPasswordTooShort = fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
)

// Service handles registration, login and token authorization. Every
// protected operation downstream receives a user id that passed through
// Authorize; raw tokens never travel further than this package.
type Service struct {
	users    repository.UserRepository
	sessions session.Store
	logger   *slog.Logger
	cfg      config.APIConfig
}

// New constructs a Service.
func New(users repository.UserRepository, sessions session.Store, logger *slog.Logger, cfg config.APIConfig) Service {
	return Service{users: users, sessions: sessions, logger: logger, cfg: cfg}
}

// Register creates an account and logs it in. The email is normalized to
// lower case before the uniqueness check so casing variants collide.
func (s Service) Register(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", errEmailRequired
	}
	if name == "" {
		return nil, "", errNameRequired
	}
	if len(password) < minPasswordLength {
		return nil, "", errPasswordTooShort
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, "", domain.ErrEmailTaken
		}
		return nil, "", err
	}
	token, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login authenticates a user and returns a session token. Unknown email and
// wrong password produce the identical error so responses never reveal
// whether an account exists.
func (s Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := crypto.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	token, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// Authorize resolves a bearer token to the user it belongs to. The token must
// parse, its session must still be live in the store, and the session's user
// must still exist.
func (s Service) Authorize(ctx context.Context, token string) (*domain.User, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, domain.ErrUnauthenticated
	}
	claims, err := jwtpkg.Parse(trimmed, s.cfg.JWTSecret)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	userID, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil || userID != claims.UserID {
		return nil, domain.ErrUnauthenticated
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// Logout revokes the token's session. A token that no longer resolves is
// treated as already logged out.
func (s Service) Logout(ctx context.Context, token string) error {
	claims, err := jwtpkg.Parse(strings.TrimSpace(token), s.cfg.JWTSecret)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil {
		return err
	}
	s.logger.Info("user logged out", "user_id", claims.UserID)
	return nil
}

func (s Service) issueSession(ctx context.Context, userID string) (string, error) {
	sessionID := uuid.NewString()
	if err := s.sessions.Put(ctx, sessionID, userID, s.cfg.SessionTTL); err != nil {
		return "", err
	}
	return jwtpkg.GenerateToken(userID, sessionID, s.cfg.JWTSecret, s.cfg.SessionTTL)
}
