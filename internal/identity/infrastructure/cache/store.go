// Package cache persists the bearer credential and the serialised identity
// between CLI invocations.
package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sharedCrypto "github.com/felixgeelhaar/arcana/internal/shared/infrastructure/crypto"
)

// Fixed keys. They are always written and cleared together.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrNotFound is returned by Get for a missing key.
var ErrNotFound = errors.New("cache key not found")

// Store is a small string key/value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Backend identifies a Store implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

// DetectBackend picks a backend from a cache URL. Empty URLs and plain paths
// use SQLite.
func DetectBackend(url string) Backend {
	switch {
	case url == "memory" || strings.HasPrefix(url, "memory://"):
		return BackendMemory
	case strings.HasPrefix(url, "redis://") || strings.HasPrefix(url, "rediss://"):
		return BackendRedis
	default:
		return BackendSQLite
	}
}

// Open creates the Store described by url. When encryptionKey is set, values
// are sealed with AES-GCM.
func Open(ctx context.Context, url, encryptionKey string) (Store, error) {
	var (
		store Store
		err   error
	)
	switch DetectBackend(url) {
	case BackendMemory:
		store = NewMemoryStore()
	case BackendRedis:
		store, err = OpenRedis(ctx, url)
	default:
		store, err = OpenSQLite(ctx, sqlitePath(url))
	}
	if err != nil {
		return nil, err
	}

	if encryptionKey == "" {
		return store, nil
	}
	enc, err := sharedCrypto.NewAESGCMFromBase64Key(encryptionKey)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("cache encryption key: %w", err)
	}
	return NewSealedStore(store, enc), nil
}

func sqlitePath(url string) string {
	path := strings.TrimPrefix(url, "sqlite://")
	if path == "" {
		path = DefaultSQLitePath()
	}
	return path
}

// DefaultSQLitePath returns ~/.arcana/cache.db.
func DefaultSQLitePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".arcana", "cache.db")
}
