package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/storefront/pkg/blobstore"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	users      map[string]string
	live       map[string]bool
	signOutErr error
	sessionErr error
	calls      int
}

func newStubAuth() *stubAuth {
	return &stubAuth{
		users: map[string]string{"jane@example.com": "secret1"},
		live:  map[string]bool{},
	}
}

func (s *stubAuth) session(email string) Session {
	token := "token-" + email
	s.live[token] = true
	return Session{
		AccessToken:  token,
		RefreshToken: "refresh-" + email,
		ExpiresAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		User:         User{ID: "user-" + email, Email: email},
	}
}

func (s *stubAuth) SignIn(_ context.Context, email, password string) (Session, error) {
	s.calls++
	if s.users[email] != password {
		return Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	return s.session(email), nil
}

func (s *stubAuth) SignUp(_ context.Context, email, password string) (Session, error) {
	s.calls++
	if _, ok := s.users[email]; ok {
		return Session{}, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}
	s.users[email] = password
	return s.session(email), nil
}

func (s *stubAuth) SignOut(_ context.Context, token string) error {
	s.calls++
	if s.signOutErr != nil {
		return s.signOutErr
	}
	delete(s.live, token)
	return nil
}

func (s *stubAuth) GetSession(_ context.Context, token string) (*Session, error) {
	s.calls++
	if s.sessionErr != nil {
		return nil, s.sessionErr
	}
	if !s.live[token] {
		return nil, nil
	}
	return &Session{AccessToken: token, User: User{ID: "user-jane@example.com", Email: "jane@example.com"}}, nil
}

func newTestStore(t *testing.T, auth Authenticator, storage blobstore.Store) *Store {
	t.Helper()
	s, err := NewStore(context.Background(), StoreParams{Auth: auth, Storage: storage})
	require.NoError(t, err)
	return s
}

func TestLoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	storage := blobstore.NewMemoryStore()
	s := newTestStore(t, newStubAuth(), storage)

	require.NoError(t, s.Login(ctx, " jane@example.com ", "secret1"))
	assert.Equal(t, "user-jane@example.com", s.CurrentUserID())
	assert.Equal(t, "token-jane@example.com", s.AccessToken())
	assert.False(t, s.IsLoading())
	assert.NoError(t, s.LastError())

	reloaded := newTestStore(t, newStubAuth(), storage)
	require.NotNil(t, reloaded.User())
	assert.Equal(t, "jane@example.com", reloaded.User().Email)
}

func TestLoginFailureRecordsError(t *testing.T) {
	s := newTestStore(t, newStubAuth(), blobstore.NewMemoryStore())

	err := s.Login(context.Background(), "jane@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsUnauthenticated(err))
	assert.Equal(t, err, s.LastError())
	assert.Nil(t, s.User())
	assert.Equal(t, "", s.CurrentUserID())
}

func TestLoginRequiresCredentials(t *testing.T) {
	auth := newStubAuth()
	s := newTestStore(t, auth, blobstore.NewMemoryStore())

	err := s.Login(context.Background(), "  ", "secret1")
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Zero(t, auth.calls)
}

func TestRegisterSignsIn(t *testing.T) {
	s := newTestStore(t, newStubAuth(), blobstore.NewMemoryStore())

	require.NoError(t, s.Register(context.Background(), "new@example.com", "secret1"))
	assert.Equal(t, "user-new@example.com", s.CurrentUserID())

	err := s.Register(context.Background(), "new@example.com", "secret1")
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))
	assert.Equal(t, "user-new@example.com", s.CurrentUserID())
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	auth := newStubAuth()
	s := newTestStore(t, auth, blobstore.NewMemoryStore())
	require.NoError(t, s.Login(ctx, "jane@example.com", "secret1"))

	auth.signOutErr = errors.New("connection reset")
	err := s.Logout(ctx)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsRemoteFailure(err))
	assert.NotNil(t, s.Session())

	auth.signOutErr = nil
	require.NoError(t, s.Logout(ctx))
	assert.Nil(t, s.Session())
	assert.NoError(t, s.Logout(ctx))
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	auth := newStubAuth()
	storage := blobstore.NewMemoryStore()
	s := newTestStore(t, auth, storage)
	require.NoError(t, s.Login(ctx, "jane@example.com", "secret1"))

	restored := newTestStore(t, auth, storage)
	require.NoError(t, restored.Restore(ctx))
	require.NotNil(t, restored.Session())
	assert.Equal(t, "refresh-jane@example.com", restored.Session().RefreshToken)

	auth.sessionErr = errors.New("timeout")
	assert.True(t, pkgerrors.IsRemoteFailure(restored.Restore(ctx)))
	assert.NotNil(t, restored.Session())

	auth.sessionErr = nil
	delete(auth.live, "token-jane@example.com")
	require.NoError(t, restored.Restore(ctx))
	assert.Nil(t, restored.Session())
	assert.Nil(t, newTestStore(t, auth, storage).Session())
}

func TestPersistFailureKeepsSession(t *testing.T) {
	storage := blobstore.NewMemoryStore()
	s := newTestStore(t, newStubAuth(), storage)
	storage.SetFailure(errors.New("disk full"))

	err := s.Login(context.Background(), "jane@example.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInternal, pkgerrors.CodeOf(err))
	assert.Nil(t, s.Session())
}
