package nordpay

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nordpay/nordpay-go/pkg/api"
)

// AuthService acquires access tokens for the other API families.
type AuthService struct {
	client *Client
}

// TokenResponse is the payload of a successful token request.
type TokenResponse struct {
	TokenType    string `json:"token_type"`
	ExpiresIn    string `json:"expires_in"`
	ExtExpiresIn string `json:"ext_expires_in"`
	AccessToken  string `json:"access_token"`
}

// ExpiresAt reads the expiry claim from the access token. The token is
// parsed without signature verification; it is the gateway's job to
// verify, the client only needs the deadline for proactive refresh.
func (t *TokenResponse) ExpiresAt() (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t.AccessToken, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse access token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("read expiry claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("access token has no expiry claim")
	}
	return exp.Time, nil
}

// GetToken exchanges API credentials for a bearer token. Credentials
// travel in headers, per the provider's token endpoint contract.
func (s *AuthService) GetToken(ctx context.Context, clientID, clientSecret string) api.Result[TokenResponse] {
	return call[TokenResponse](ctx, s.client, api.Descriptor{
		Method: http.MethodPost,
		Path:   "/accesstoken/get",
		AdditionalHeaders: map[string]string{
			"client_id":     clientID,
			"client_secret": clientSecret,
		},
	})
}
