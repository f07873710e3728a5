// Package blobstore persists named state blobs for client-side stores.
//
// Each store owns one key and overwrites it wholesale on every mutation.
package blobstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Load when no blob exists under the key.
var ErrNotFound = errors.New("blob not found")

// Store is the durable key/blob surface the stores depend on.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// envelope mirrors the {"state": ..., "version": n} shape persisted stores use.
type envelope struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

// LoadState decodes the blob under key into dst. It reports false with a nil
// error when nothing has been persisted yet.
func LoadState(ctx context.Context, store Store, key string, version int, dst any) (bool, error) {
	raw, err := store.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	if env.Version != version {
		return false, fmt.Errorf("decode %s: unsupported version %d (want %d)", key, env.Version, version)
	}
	if len(env.State) == 0 || string(env.State) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(env.State, dst); err != nil {
		return false, fmt.Errorf("decode %s state: %w", key, err)
	}
	return true, nil
}

// SaveState encodes state into the envelope and writes it under key.
func SaveState(ctx context.Context, store Store, key string, version int, state any) error {
	body, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode %s state: %w", key, err)
	}
	raw, err := json.Marshal(envelope{State: body, Version: version})
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Save(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
