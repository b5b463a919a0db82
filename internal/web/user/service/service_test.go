package service

import (
	"context"
	"sync"
	"testing"

	"github.com/Laisky/errors/v2"
	gcrypto "github.com/Laisky/go-utils/v6/crypto"
	"github.com/stretchr/testify/require"

	"github.com/aahabhisheksingh/studyhub-api/internal/web/user/model"
	"github.com/aahabhisheksingh/studyhub-api/library/log"
)

type memStore struct {
	mu    sync.Mutex
	users []*model.User
}

func (m *memStore) GetUserByAccount(ctx context.Context, account string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Account == account {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetUserByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.GoogleID != "" && u.GoogleID == googleID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) ValidateLogin(ctx context.Context, account, rawPassword string) (*model.User, error) {
	u, err := m.GetUserByAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errors.WithStack(model.ErrInvalidCredentials)
	}
	if err := gcrypto.VerifyHashedPassword([]byte(rawPassword), u.Password); err != nil {
		return nil, errors.WithStack(model.ErrInvalidCredentials)
	}
	return u, nil
}

func (m *memStore) InsertUser(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, exist := range m.users {
		if exist.Account == u.Account {
			return errors.WithStack(model.ErrAccountExists)
		}
	}
	cp := *u
	m.users = append(m.users, &cp)
	return nil
}

func (m *memStore) UpdateUser(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, exist := range m.users {
		if exist.ID == u.ID {
			cp := *u
			m.users[i] = &cp
			return nil
		}
	}
	return errors.Errorf("user %q not found", u.Account)
}

type fakeGoogle struct {
	email, name, sub string
	err              error
}

func (g fakeGoogle) Verify(idToken string) (string, string, string, error) {
	if g.err != nil {
		return "", "", "", g.err
	}
	return g.email, g.name, g.sub, nil
}

func newTestService(google GoogleTokenVerifier) (*Users, *memStore) {
	store := &memStore{}
	// nil throttle: throttling has its own tests in library/throttle
	return New(log.Logger.Named("user_test"),
		store, nil, google, "owner@studyhub.example"), store
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(fakeGoogle{})

	u, err := svc.Signup(ctx, " Student@Example.COM ", "secret123", "Student One")
	require.NoError(t, err)
	require.Equal(t, "student@example.com", u.Account)
	require.Equal(t, "Student One", u.DisplayName)
	require.NotEqual(t, "secret123", u.Password)

	got, err := svc.Login(ctx, "student@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, u.Account, got.Account)

	// wrong password and unknown account look identical to the caller
	_, err = svc.Login(ctx, "student@example.com", "wrong")
	require.True(t, errors.Is(err, model.ErrInvalidCredentials))
	_, err = svc.Login(ctx, "nobody@example.com", "secret123")
	require.True(t, errors.Is(err, model.ErrInvalidCredentials))
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(fakeGoogle{})

	_, err := svc.Signup(ctx, "not-an-email", "secret123", "x")
	require.Error(t, err)

	_, err = svc.Signup(ctx, "a@b.c", "short", "x")
	require.Error(t, err)

	_, err = svc.Signup(ctx, "a@b.c", "secret123", "x")
	require.NoError(t, err)
	_, err = svc.Signup(ctx, "a@b.c", "secret123", "x")
	require.True(t, errors.Is(err, model.ErrAccountExists))
}

func TestLoginDisabledAccount(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(fakeGoogle{})

	_, err := svc.Signup(ctx, "blocked@example.com", "secret123", "x")
	require.NoError(t, err)
	store.mu.Lock()
	store.users[0].Status = model.UserStatusDisabled
	store.mu.Unlock()

	_, err = svc.Login(ctx, "blocked@example.com", "secret123")
	require.True(t, errors.Is(err, model.ErrAccountDisabled))
}

func TestLoginWithGoogleCreatesAccount(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(fakeGoogle{
		email: "Student@Example.com", name: "Student One", sub: "google-sub-1"})

	u, err := svc.LoginWithGoogle(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, "student@example.com", u.Account)
	require.Equal(t, "Student One", u.DisplayName)
	require.Equal(t, "google-sub-1", u.GoogleID)

	// second sign-in resolves the same account
	again, err := svc.LoginWithGoogle(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, u.ID, again.ID)
}

func TestLoginWithGoogleLinksExistingAccount(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(fakeGoogle{
		email: "student@example.com", name: "Student One", sub: "google-sub-1"})

	_, err := svc.Signup(ctx, "student@example.com", "secret123", "Student One")
	require.NoError(t, err)

	u, err := svc.LoginWithGoogle(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, "google-sub-1", u.GoogleID)

	store.mu.Lock()
	require.Len(t, store.users, 1)
	store.mu.Unlock()

	// the password still works after linking
	_, err = svc.Login(ctx, "student@example.com", "secret123")
	require.NoError(t, err)
}

func TestLoginWithGoogleBadToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(fakeGoogle{err: errors.New("token expired")})

	_, err := svc.LoginWithGoogle(ctx, "token")
	require.Error(t, err)
}

func TestIsOwner(t *testing.T) {
	require.True(t, IsOwner("owner@studyhub.example", "owner@studyhub.example"))
	require.False(t, IsOwner("Owner@studyhub.example", "owner@studyhub.example"))
	require.False(t, IsOwner("someone@else.example", "owner@studyhub.example"))
	require.False(t, IsOwner("", ""))

	svc, _ := newTestService(fakeGoogle{})
	require.True(t, svc.IsOwner("owner@studyhub.example"))
	require.False(t, svc.IsOwner("student@example.com"))
}
