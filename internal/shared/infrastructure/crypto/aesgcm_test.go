package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAESGCMFromBase64Key(t *testing.T) {
	t.Run("generated key works", func(t *testing.T) {
		key, err := GenerateKey()
		require.NoError(t, err)

		enc, err := NewAESGCMFromBase64Key(key)
		require.NoError(t, err)
		assert.NotNil(t, enc)
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := NewAESGCMFromBase64Key("")
		assert.ErrorIs(t, err, ErrEmptyKey)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, err := NewAESGCMFromBase64Key("not-valid-base64!!!")
		assert.Error(t, err)
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := NewAESGCMFromBase64Key(base64.StdEncoding.EncodeToString([]byte("short")))
		assert.ErrorIs(t, err, ErrKeyLength)
	})
}

func TestAESEncrypter_RoundTrip(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	enc, err := NewAESGCMFromBase64Key(key)
	require.NoError(t, err)

	sealed, err := enc.Encrypt([]byte("eyJhbGciOiJIUzI1NiJ9.payload.sig"))
	require.NoError(t, err)

	again, err := enc.Encrypt([]byte("eyJhbGciOiJIUzI1NiJ9.payload.sig"))
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ")

	plain, err := enc.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "eyJhbGciOiJIUzI1NiJ9.payload.sig", string(plain))
}

func TestAESEncrypter_Tampered(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	enc, err := NewAESGCMFromBase64Key(key)
	require.NoError(t, err)

	_, err = enc.Decrypt([]byte{1, 2})
	assert.ErrorIs(t, err, ErrCiphertextTooShort)

	sealed, err := enc.Encrypt([]byte("user"))
	require.NoError(t, err)
	sealed[len(sealed)-1] ^= 0xFF
	_, err = enc.Decrypt(sealed)
	assert.Error(t, err)
}
