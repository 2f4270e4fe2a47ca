package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, VerifyPassword("password123", hash))
	assert.False(t, VerifyPassword("password124", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same-input")
	require.NoError(t, err)
	second, err := HashPassword("same-input")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := TokenIssuer{Secret: []byte("unit-secret"), TTL: time.Hour}

	token, err := issuer.CreateToken("a@x.com")
	require.NoError(t, err)

	subject, err := issuer.DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestDecodeExpiredToken(t *testing.T) {
	issuer := TokenIssuer{Secret: []byte("unit-secret"), TTL: -time.Minute}

	token, err := issuer.CreateToken("a@x.com")
	require.NoError(t, err)

	_, err = issuer.DecodeToken(token)
	assert.Error(t, err)
}

func TestDecodeWrongSecret(t *testing.T) {
	issuer := TokenIssuer{Secret: []byte("unit-secret"), TTL: time.Hour}
	other := TokenIssuer{Secret: []byte("different-secret"), TTL: time.Hour}

	token, err := issuer.CreateToken("a@x.com")
	require.NoError(t, err)

	_, err = other.DecodeToken(token)
	assert.Error(t, err)
}

func TestDecodeGarbage(t *testing.T) {
	issuer := TokenIssuer{Secret: []byte("unit-secret"), TTL: time.Hour}

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := issuer.DecodeToken(token)
		assert.Error(t, err, "token %q should not decode", token)
	}
}

func TestDecodeMissingSubject(t *testing.T) {
	issuer := TokenIssuer{Secret: []byte("unit-secret"), TTL: time.Hour}

	token, err := issuer.CreateToken("")
	require.NoError(t, err)

	_, err = issuer.DecodeToken(token)
	assert.Error(t, err)
}
