package cart

import (
	"context"
	"sync"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/pricing"
	"github.com/angelmondragon/storefront/pkg/blobstore"
	"github.com/angelmondragon/storefront/pkg/clock"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

const (
	// StorageKey is the blob the cart persists under.
	StorageKey = "cart-storage"

	stateVersion = 0
)

// StoreParams groups dependencies for the cart store.
type StoreParams struct {
	Storage blobstore.Store
	Clock   clock.Clock
	Logger  *logger.Logger
	Key     string
}

// Store owns the cart state. Every mutation is written to Storage before it
// becomes visible; a failed write leaves the cart unchanged.
type Store struct {
	mu      sync.Mutex
	state   State
	storage blobstore.Store
	clock   clock.Clock
	logg    *logger.Logger
	key     string
}

// NewStore loads any persisted cart before returning.
func NewStore(ctx context.Context, params StoreParams) (*Store, error) {
	if params.Storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart storage is required")
	}
	s := &Store{
		storage: params.Storage,
		clock:   params.Clock,
		logg:    params.Logger,
		key:     params.Key,
	}
	if s.clock == nil {
		s.clock = clock.NewRealClock()
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	if ok {
		s.state = loaded
	}
	s.logg.Debug(s.logg.WithFields(ctx, map[string]any{"key": s.key, "lines": len(s.state.Items)}), "cart.loaded")
	return s, nil
}

// State returns a snapshot of the cart.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Items: append([]Item(nil), s.state.Items...)}
}

func (s *Store) Items() []Item {
	return s.State().Items
}

func (s *Store) TotalItemCount() int {
	return s.State().TotalItemCount()
}

func (s *Store) TotalPrice() int64 {
	return s.State().TotalPrice()
}

func (s *Store) Summary(rules pricing.Rules) pricing.Totals {
	return s.State().Summary(rules)
}

func (s *Store) AddItem(ctx context.Context, product catalog.Product, quantity int, size, color string) error {
	return s.mutate(ctx, "cart.item_added", func(cur State) (State, error) {
		return cur.AddItem(product, quantity, size, color, s.clock.Now())
	})
}

func (s *Store) RemoveItem(ctx context.Context, lineID string) error {
	return s.mutate(ctx, "cart.item_removed", func(cur State) (State, error) {
		return cur.RemoveItem(lineID), nil
	})
}

func (s *Store) UpdateQuantity(ctx context.Context, lineID string, quantity int) error {
	return s.mutate(ctx, "cart.quantity_updated", func(cur State) (State, error) {
		return cur.UpdateQuantity(lineID, quantity), nil
	})
}

func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, "cart.cleared", func(cur State) (State, error) {
		return cur.Clear(), nil
	})
}

func (s *Store) mutate(ctx context.Context, event string, transition func(State) (State, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := transition(s.state)
	if err != nil {
		return err
	}
	if err := blobstore.SaveState(ctx, s.storage, s.key, stateVersion, next); err != nil {
		s.logg.Error(ctx, "cart.persist_failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist cart")
	}
	s.state = next
	s.logg.Debug(s.logg.WithFields(ctx, map[string]any{
		"lines": len(next.Items),
		"count": next.TotalItemCount(),
	}), event)
	return nil
}
