package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/freelancepay/tracker/internal/domain"
	"github.com/freelancepay/tracker/internal/repository"
	"github.com/freelancepay/tracker/internal/session"
	"github.com/freelancepay/tracker/pkg/config"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
	}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *domain.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return repository.ErrConflict
	}
	copied := *user
	f.byEmail[user.Email] = &copied
	f.byID[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if user, ok := f.byEmail[email]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if user, ok := f.byID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func newTestService(t *testing.T) (Service, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	sessions := session.NewMemoryStore()
	t.Cleanup(sessions.Close)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.APIConfig{JWTSecret: "test-secret", SessionTTL: time.Hour}
	return New(repo, sessions, log, cfg), repo
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
		userName string
	}{
		{"missing email", "", "secret1", "Alice"},
		{"email without domain separator", "alice.example.com", "secret1", "Alice"},
		{"short password", "alice@x.com", "12345", "Alice"},
		{"missing name", "alice@x.com", "secret1", "  "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := svc.Register(ctx, tc.email, tc.password, tc.userName); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRegisterNormalizesEmailAndRejectsDuplicates(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "  Alice@X.com ", "secret1", "Alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if user.Email != "alice@x.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if _, ok := repo.byEmail["alice@x.com"]; !ok {
		t.Fatal("user not persisted under normalized email")
	}

	if _, _, err := svc.Register(ctx, "ALICE@x.com", "secret2", "Alice Again"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "alice@x.com", "secret1", "Alice"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, unknownErr := svc.Login(ctx, "nobody@x.com", "secret1")
	_, _, wrongErr := svc.Login(ctx, "alice@x.com", "wrong-password")
	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) || !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", unknownErr, wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("unknown email and wrong password must read identically: %q vs %q", unknownErr, wrongErr)
	}
}

func TestAuthorizeRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "alice@x.com", "secret1", "Alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	_, token, err := svc.Login(ctx, "alice@x.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	user, err := svc.Authorize(ctx, token)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("authorized wrong user: %s vs %s", user.ID, registered.ID)
	}
}

func TestAuthorizeRejectsGarbageTokens(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, token := range []string{"", "   ", "not-a-jwt"} {
		if _, err := svc.Authorize(ctx, token); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("token %q: expected ErrUnauthenticated, got %v", token, err)
		}
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, token, err := svc.Register(ctx, "alice@x.com", "secret1", "Alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Authorize(ctx, token); err != nil {
		t.Fatalf("authorize before logout: %v", err)
	}
	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Authorize(ctx, token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after logout, got %v", err)
	}
	// A second logout with the same token is a no-op.
	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("repeated logout: %v", err)
	}
}
