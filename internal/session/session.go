// Package session contains the key/value stores that map auth tokens to
// user IDs
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned for keys that don't exist or have expired
var ErrNotFound = errors.New("session not found")

// Store is a key/value store with per key expiry
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	// Del returns ErrNotFound if nothing was deleted
	Del(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Key returns the store key used for a token
func Key(token string) string {
	return "auth_" + token
}
