package wishlist

import (
	"context"
	"sync"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/blobstore"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

const (
	// StorageKey is the blob the wishlist persists under.
	StorageKey = "bound-wishlist-storage"

	stateVersion = 0
)

// Remote is the wishlist surface of the remote collaborator.
type Remote interface {
	ListWishlist(ctx context.Context, userID string) ([]Item, error)
	InsertWishlistItem(ctx context.Context, userID, productID string) (Item, error)
	DeleteWishlistItem(ctx context.Context, userID, productID string) error
}

// UserSource reports the signed-in user, or "" when nobody is.
type UserSource interface {
	CurrentUserID() string
}

// StoreParams groups dependencies for the wishlist store.
type StoreParams struct {
	Remote  Remote
	Users   UserSource
	Storage blobstore.Store
	Logger  *logger.Logger
	Key     string
}

// Store applies wishlist changes only after the remote collaborator accepts
// them. Mutations run one at a time; later callers wait for the one in flight.
type Store struct {
	op sync.Mutex

	mu        sync.RWMutex
	state     State
	loading   bool
	lastError error

	remote  Remote
	users   UserSource
	storage blobstore.Store
	logg    *logger.Logger
	key     string
}

// NewStore loads the persisted wishlist before returning.
func NewStore(ctx context.Context, params StoreParams) (*Store, error) {
	if params.Remote == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist remote is required")
	}
	if params.Storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist storage is required")
	}
	s := &Store{
		remote:  params.Remote,
		users:   params.Users,
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

	var loaded State
	ok, err := blobstore.LoadState(ctx, s.storage, s.key, stateVersion, &loaded)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load wishlist")
	}
	if ok {
		s.state = loaded
	}
	return s, nil
}

// Items returns the saved items of the signed-in user. Rows persisted for
// anyone else, or with nobody signed in, are hidden.
func (s *Store) Items() []Item {
	userID := s.currentUser()
	if userID == "" {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.UserID != userID {
		return nil
	}
	return append([]Item(nil), s.state.Items...)
}

// State returns a snapshot including the owning user.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{UserID: s.state.UserID, Items: append([]Item(nil), s.state.Items...)}
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

// Contains is false whenever no user is signed in or the local state belongs
// to someone else.
func (s *Store) Contains(productID string) bool {
	userID := s.currentUser()
	if userID == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.UserID == userID && s.state.Contains(productID)
}

// FetchAll replaces local state with the remote rows for userID. On failure
// the previous state is kept.
func (s *Store) FetchAll(ctx context.Context, userID string) error {
	if userID == "" {
		return s.fail(ctx, unauthenticated("fetch wishlist"))
	}
	s.op.Lock()
	defer s.op.Unlock()

	s.begin()
	rows, err := s.remote.ListWishlist(ctx, userID)
	if err != nil {
		return s.fail(ctx, remoteFailure(err, "list wishlist"))
	}
	return s.commit(ctx, Replace(userID, rows), "wishlist.fetched")
}

// Add saves product for userID. Re-adding a saved product does nothing.
func (s *Store) Add(ctx context.Context, userID string, product catalog.Product) error {
	if userID == "" {
		return s.fail(ctx, unauthenticated("add to wishlist"))
	}
	if product.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	s.op.Lock()
	defer s.op.Unlock()

	cur := s.ownedState(userID)
	if cur.Contains(product.ID) {
		return nil
	}

	s.begin()
	row, err := s.remote.InsertWishlistItem(ctx, userID, product.ID)
	if err != nil {
		return s.fail(ctx, remoteFailure(err, "insert wishlist item"))
	}
	row.UserID = userID
	row.ProductID = product.ID
	if row.Product.ID == "" {
		row.Product = product
	}
	next, _ := cur.Append(row)
	return s.commit(ctx, next, "wishlist.item_added")
}

// Remove deletes the remote row first and only then the local entry.
func (s *Store) Remove(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return s.fail(ctx, unauthenticated("remove from wishlist"))
	}
	s.op.Lock()
	defer s.op.Unlock()

	s.begin()
	if err := s.remote.DeleteWishlistItem(ctx, userID, productID); err != nil {
		return s.fail(ctx, remoteFailure(err, "delete wishlist item"))
	}
	return s.commit(ctx, s.ownedState(userID).Remove(productID), "wishlist.item_removed")
}

// Reset forgets the local wishlist, e.g. on sign-out.
func (s *Store) Reset(ctx context.Context) error {
	s.op.Lock()
	defer s.op.Unlock()
	s.begin()
	return s.commit(ctx, State{}, "wishlist.reset")
}

func (s *Store) currentUser() string {
	if s.users == nil {
		return ""
	}
	return s.users.CurrentUserID()
}

// ownedState is the local state if it belongs to userID, else an empty one.
func (s *Store) ownedState(userID string) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.UserID != userID {
		return State{UserID: userID}
	}
	return State{UserID: userID, Items: append([]Item(nil), s.state.Items...)}
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

func (s *Store) commit(ctx context.Context, next State, event string) error {
	if err := blobstore.SaveState(ctx, s.storage, s.key, stateVersion, next); err != nil {
		return s.fail(ctx, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist wishlist"))
	}
	s.mu.Lock()
	s.state = next
	s.loading = false
	s.lastError = nil
	s.mu.Unlock()
	s.logg.Debug(s.logg.WithFields(ctx, map[string]any{"user_id": next.UserID, "items": len(next.Items)}), event)
	return nil
}

func (s *Store) fail(ctx context.Context, err error) error {
	s.mu.Lock()
	s.loading = false
	s.lastError = err
	s.mu.Unlock()
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "wishlist.remote_failed")
	return err
}

func unauthenticated(action string) error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, action+" requires a signed-in user")
}

// remoteFailure keeps typed collaborator errors and classifies the rest as
// dependency failures.
func remoteFailure(err error, action string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
