// Package sessionstore persists the client's authentication session: the
// bearer token and the cached user record. Drivers are interchangeable.
package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("sessionstore: not found")

// Store is a small key/value store scoped to one client session.
//
// Concurrent writers follow last-write-wins.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Clear removes the token and the user together.
	Clear(ctx context.Context) error
}

// GetJSON reads key and decodes it into v.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("sessionstore: decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("sessionstore: encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(raw))
}
