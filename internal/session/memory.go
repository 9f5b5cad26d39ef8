package session

import (
	"context"
	"errors"
	"time"

	"github.com/jellydator/ttlcache/v2"
)

// MemoryStore keeps sessions in process. Used for development and tests
type MemoryStore struct {
	cache *ttlcache.Cache
}

func NewMemoryStore() *MemoryStore {
	c := ttlcache.NewCache()
	// Sessions have a fixed lifetime, reads must not extend it
	c.SkipTTLExtensionOnHit(true)

	return &MemoryStore{cache: c}
}

func (m *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	return m.cache.SetWithTTL(key, value, ttl)
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	val, err := m.cache.Get(key)
	if err != nil {
		if errors.Is(err, ttlcache.ErrNotFound) {
			return "", ErrNotFound
		}

		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", ErrNotFound
	}

	return s, nil
}

func (m *MemoryStore) Del(_ context.Context, key string) error {
	err := m.cache.Remove(key)
	if errors.Is(err, ttlcache.ErrNotFound) {
		return ErrNotFound
	}

	return err
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

func (m *MemoryStore) Close() error {
	return m.cache.Close()
}
