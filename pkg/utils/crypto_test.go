package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestEncryptDecryptRoundTrip(t *testing.T) {
	encrypted, err := Encrypt([]byte("long-lived-access-token"), testKey)
	require.NoError(t, err)
	require.NotEmpty(t, encrypted)

	decrypted, err := Decrypt(encrypted, testKey)
	require.NoError(t, err)
	assert.Equal(t, "long-lived-access-token", decrypted)
}

func TestDecryptWrongKey(t *testing.T) {
	encrypted, err := Encrypt([]byte("secret"), testKey)
	require.NoError(t, err)

	_, err = Decrypt(encrypted, []byte("ffffffffffffffffffffffffffffffff"))
	assert.Error(t, err)
}

func TestDecryptGarbage(t *testing.T) {
	_, err := Decrypt("bm90LWEtY2lwaGVydGV4dA==", testKey)
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("jwt-secret", "admin@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken("jwt-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "autogram", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("jwt-secret", "admin@example.com", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken("other-secret", token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken("jwt-secret", "admin@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken("jwt-secret", token)
	assert.Error(t, err)
}
