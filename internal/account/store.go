package account

import (
	"context"
	"strings"
	"sync"

	"github.com/angelmondragon/storefront/pkg/blobstore"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

const (
	// StorageKey is the blob the account store persists under.
	StorageKey = "auth-storage"

	stateVersion = 0
)

type persisted struct {
	Session *Session `json:"session"`
}

// StoreParams groups dependencies for the account store.
type StoreParams struct {
	Auth    Authenticator
	Storage blobstore.Store
	Logger  *logger.Logger
	Key     string
}

// Store holds the current session. Only the session is persisted; the
// loading flag and last error live in memory.
type Store struct {
	op sync.Mutex

	mu        sync.RWMutex
	session   *Session
	loading   bool
	lastError error

	auth    Authenticator
	storage blobstore.Store
	logg    *logger.Logger
	key     string
}

// NewStore loads any persisted session before returning. The session is not
// checked against the remote until Restore is called.
func NewStore(ctx context.Context, params StoreParams) (*Store, error) {
	if params.Auth == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "authenticator is required")
	}
	if params.Storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "account storage is required")
	}
	s := &Store{
		auth:    params.Auth,
		storage: params.Storage,
		logg:    params.Logger,
		key:     params.Key,
	}
	if s.logg == nil {
		s.logg = logger.Nop()
	}
	if s.key == "" {
		s.key = StorageKey
	}

	var loaded persisted
	ok, err := blobstore.LoadState(ctx, s.storage, s.key, stateVersion, &loaded)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account")
	}
	if ok {
		s.session = loaded.Session
	}
	return s, nil
}

// User returns the signed-in user, or nil.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	u := s.session.User
	return &u
}

// Session returns a copy of the current session, or nil.
func (s *Store) Session() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

// CurrentUserID is "" when nobody is signed in.
func (s *Store) CurrentUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.User.ID
}

// AccessToken is the bearer token for remote calls, or "".
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.AccessToken
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// Login signs in and replaces any current session.
func (s *Store) Login(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, email, password, s.auth.SignIn, "account.logged_in")
}

// Register creates the account and signs in as it.
func (s *Store) Register(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, email, password, s.auth.SignUp, "account.registered")
}

// Logout ends the remote session. If the remote call fails the local session
// is kept so the caller can retry.
func (s *Store) Logout(ctx context.Context) error {
	s.op.Lock()
	defer s.op.Unlock()

	token := s.AccessToken()
	if token == "" {
		return nil
	}
	s.begin()
	if err := s.auth.SignOut(ctx, token); err != nil {
		return s.fail(ctx, remoteFailure(err, "sign out"))
	}
	return s.commit(ctx, nil, "account.logged_out")
}

// Restore asks the remote whether the persisted session is still live and
// drops it when it is not. A remote failure keeps the persisted session.
func (s *Store) Restore(ctx context.Context) error {
	s.op.Lock()
	defer s.op.Unlock()

	current := s.Session()
	if current == nil {
		return nil
	}
	s.begin()
	live, err := s.auth.GetSession(ctx, current.AccessToken)
	if err != nil {
		return s.fail(ctx, remoteFailure(err, "get session"))
	}
	if live == nil {
		return s.commit(ctx, nil, "account.session_expired")
	}
	if live.AccessToken == "" {
		live.AccessToken = current.AccessToken
	}
	if live.RefreshToken == "" {
		live.RefreshToken = current.RefreshToken
	}
	return s.commit(ctx, live, "account.session_restored")
}

type signInFunc func(ctx context.Context, email, password string) (Session, error)

func (s *Store) authenticate(ctx context.Context, email, password string, call signInFunc, event string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return s.fail(ctx, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required"))
	}
	s.op.Lock()
	defer s.op.Unlock()

	s.begin()
	sess, err := call(ctx, email, password)
	if err != nil {
		return s.fail(ctx, remoteFailure(err, "authenticate"))
	}
	return s.commit(ctx, &sess, event)
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastError = nil
	s.mu.Unlock()
}

func (s *Store) commit(ctx context.Context, next *Session, event string) error {
	if err := blobstore.SaveState(ctx, s.storage, s.key, stateVersion, persisted{Session: next}); err != nil {
		return s.fail(ctx, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist account"))
	}
	s.mu.Lock()
	s.session = next
	s.loading = false
	s.lastError = nil
	s.mu.Unlock()

	userID := ""
	if next != nil {
		userID = next.User.ID
	}
	s.logg.Debug(s.logg.WithUserID(ctx, userID), event)
	return nil
}

func (s *Store) fail(ctx context.Context, err error) error {
	s.mu.Lock()
	s.loading = false
	s.lastError = err
	s.mu.Unlock()
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "account.failed")
	return err
}

func remoteFailure(err error, action string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
