// Package session tracks refresh sessions in Redis, one record per access
// token id (jti).
package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront/pkg/config"
	redisclient "github.com/angelmondragon/storefront/pkg/redis"
)

var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	errMissingAccessID     = errors.New("access id is required")
)

// Store is the subset of the redis client sessions need.
type Store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	AccessSessionKey(accessID string) string
}

// Record is what Redis holds per live access id. Only a digest of the
// refresh token is kept.
type Record struct {
	UserID        uuid.UUID `json:"user_id"`
	RefreshDigest string    `json:"refresh_digest"`
	IssuedAt      time.Time `json:"issued_at"`
}

// Matches reports whether token is the refresh token this record was issued with.
func (r *Record) Matches(token string) bool {
	if r == nil || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(r.RefreshDigest), []byte(digest(token))) == 1
}

// Rotation is the outcome of a successful refresh.
type Rotation struct {
	AccessID     string
	RefreshToken string
	UserID       uuid.UUID
}

// AccessSessionChecker exposes the read-only surface needed by middleware.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// NewManager requires the refresh ttl to outlive the access token ttl.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	refreshTTL, accessTTL := cfg.RefreshTokenTTL(), cfg.AccessTokenTTL()
	switch {
	case refreshTTL <= 0:
		return nil, errors.New("refresh token ttl must be positive")
	case refreshTTL <= accessTTL:
		return nil, fmt.Errorf("refresh token ttl (%s) must exceed access token ttl (%s)", refreshTTL, accessTTL)
	}
	return newManager(client, refreshTTL, time.Now), nil
}

func newManager(store Store, ttl time.Duration, now func() time.Time) *Manager {
	return &Manager{store: store, ttl: ttl, now: now}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// Generate opens a session for accessID and returns its refresh token.
func (m *Manager) Generate(ctx context.Context, accessID string, userID uuid.UUID) (string, error) {
	if blank(accessID) {
		return "", errMissingAccessID
	}
	if userID == uuid.Nil {
		return "", errors.New("user id is required")
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating refresh token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	payload, err := json.Marshal(Record{UserID: userID, RefreshDigest: digest(token), IssuedAt: m.now().UTC()})
	if err != nil {
		return "", fmt.Errorf("encoding session record: %w", err)
	}
	if err := m.store.Set(ctx, m.store.AccessSessionKey(accessID), string(payload), m.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Rotate trades the refresh token of oldAccessID for a new session owned by
// the same user. The old session is gone afterwards.
func (m *Manager) Rotate(ctx context.Context, oldAccessID, provided string) (Rotation, error) {
	if blank(oldAccessID) || blank(provided) {
		return Rotation{}, ErrInvalidRefreshToken
	}
	record, err := m.Lookup(ctx, oldAccessID)
	if err != nil {
		return Rotation{}, err
	}
	if !record.Matches(provided) {
		return Rotation{}, ErrInvalidRefreshToken
	}

	next := Rotation{AccessID: NewAccessID(), UserID: record.UserID}
	if next.RefreshToken, err = m.Generate(ctx, next.AccessID, record.UserID); err != nil {
		return Rotation{}, err
	}
	if err := m.Revoke(ctx, oldAccessID); err != nil {
		return Rotation{}, err
	}
	return next, nil
}

// Lookup returns nil, nil when accessID has no live session.
func (m *Manager) Lookup(ctx context.Context, accessID string) (*Record, error) {
	if blank(accessID) {
		return nil, errMissingAccessID
	}
	raw, err := m.store.Get(ctx, m.store.AccessSessionKey(accessID))
	if redisclient.IsNil(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	record := new(Record)
	if err := json.Unmarshal([]byte(raw), record); err != nil {
		return nil, fmt.Errorf("decoding session record: %w", err)
	}
	return record, nil
}

func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if blank(accessID) {
		return errMissingAccessID
	}
	return m.store.Del(ctx, m.store.AccessSessionKey(accessID))
}

func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	record, err := m.Lookup(ctx, accessID)
	return record != nil, err
}

// NewAccessID produces the identifier used as both JWT jti and Redis key.
func NewAccessID() string {
	return uuid.NewString()
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
