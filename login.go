package nordpay

import (
	"context"
	"net/http"

	"github.com/nordpay/nordpay-go/internal/transport"
	"github.com/nordpay/nordpay-go/pkg/api"
)

// LoginService exposes the OpenID Connect discovery document.
type LoginService struct {
	client *Client
}

// OpenIDConfiguration is the well-known discovery document.
type OpenIDConfiguration struct {
	Issuer                           string   `json:"issuer"`
	AuthorizationEndpoint            string   `json:"authorization_endpoint"`
	TokenEndpoint                    string   `json:"token_endpoint"`
	JWKSURI                          string   `json:"jwks_uri"`
	UserinfoEndpoint                 string   `json:"userinfo_endpoint"`
	EndSessionEndpoint               string   `json:"end_session_endpoint,omitempty"`
	ResponseTypesSupported           []string `json:"response_types_supported"`
	ScopesSupported                  []string `json:"scopes_supported"`
	GrantTypesSupported              []string `json:"grant_types_supported"`
	SubjectTypesSupported            []string `json:"subject_types_supported"`
	IDTokenSigningAlgValuesSupported []string `json:"id_token_signing_alg_values_supported"`
}

// Discovery fetches the well-known OpenID configuration. The document is
// public, so the merchant auth headers are stripped from the request.
func (s *LoginService) Discovery(ctx context.Context) api.Result[OpenIDConfiguration] {
	return call[OpenIDConfiguration](ctx, s.client, api.Descriptor{
		Method: http.MethodGet,
		Path:   "/access-management-1.0/access/.well-known/openid-configuration",
		OmitHeaders: []string{
			transport.HeaderAuthorization,
			transport.HeaderSubscriptionKey,
			transport.HeaderMerchantSerialNumber,
			transport.HeaderIdempotencyKey,
		},
	})
}
