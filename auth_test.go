package nordpay

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenResponseExpiresAt(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	resp := TokenResponse{
		AccessToken: signedToken(t, jwt.MapClaims{"exp": expiry.Unix()}),
	}

	got, err := resp.ExpiresAt()
	require.NoError(t, err)
	assert.True(t, got.Equal(expiry), "ExpiresAt() = %v, want %v", got, expiry)
}

func TestTokenResponseExpiresAtErrors(t *testing.T) {
	t.Run("not a jwt", func(t *testing.T) {
		resp := TokenResponse{AccessToken: "not-a-token"}
		_, err := resp.ExpiresAt()
		assert.ErrorContains(t, err, "parse access token")
	})

	t.Run("no expiry claim", func(t *testing.T) {
		resp := TokenResponse{AccessToken: signedToken(t, jwt.MapClaims{"sub": "merchant"})}
		_, err := resp.ExpiresAt()
		assert.ErrorContains(t, err, "no expiry claim")
	})
}
