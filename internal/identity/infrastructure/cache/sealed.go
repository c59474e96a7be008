package cache

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	sharedCrypto "github.com/felixgeelhaar/arcana/internal/shared/infrastructure/crypto"
)

// ErrCorrupt is returned when a sealed value cannot be opened.
var ErrCorrupt = errors.New("cache value corrupt")

// SealedStore encrypts values before handing them to the inner store.
type SealedStore struct {
	inner     Store
	encrypter sharedCrypto.Encrypter
}

// NewSealedStore wraps inner.
func NewSealedStore(inner Store, encrypter sharedCrypto.Encrypter) *SealedStore {
	return &SealedStore{inner: inner, encrypter: encrypter}
}

func (s *SealedStore) Get(ctx context.Context, key string) (string, error) {
	raw, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	plain, err := s.encrypter.Decrypt(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return string(plain), nil
}

func (s *SealedStore) Set(ctx context.Context, key, value string) error {
	sealed, err := s.encrypter.Encrypt([]byte(value))
	if err != nil {
		return fmt.Errorf("seal cache value: %w", err)
	}
	return s.inner.Set(ctx, key, base64.StdEncoding.EncodeToString(sealed))
}

func (s *SealedStore) Delete(ctx context.Context, keys ...string) error {
	return s.inner.Delete(ctx, keys...)
}

func (s *SealedStore) Close() error {
	return s.inner.Close()
}
