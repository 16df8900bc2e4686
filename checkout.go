package nordpay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nordpay/nordpay-go/internal/transport"
	"github.com/nordpay/nordpay-go/pkg/api"
)

// CheckoutService covers hosted checkout sessions. The checkout API
// authenticates with API credentials in headers instead of a bearer
// token, so these operations omit the Authorization header.
type CheckoutService struct {
	client *Client
}

// CheckoutTransaction describes what a checkout session charges.
type CheckoutTransaction struct {
	Amount             Amount `json:"amount"`
	Reference          string `json:"reference"`
	PaymentDescription string `json:"paymentDescription,omitempty"`
}

// CheckoutConfig tunes the hosted checkout experience.
type CheckoutConfig struct {
	CustomerInteraction string `json:"customerInteraction,omitempty"`
	UserFlow            string `json:"userFlow,omitempty"`
	RequireUserInfo     bool   `json:"requireUserInfo,omitempty"`
}

// InitiateSessionRequest creates a checkout session.
type InitiateSessionRequest struct {
	Transaction   CheckoutTransaction `json:"transaction"`
	Configuration *CheckoutConfig     `json:"configuration,omitempty"`
	MerchantURL   string              `json:"merchantUrl,omitempty"`
	CallbackURL   string              `json:"callbackUrl,omitempty"`
}

// InitiateSessionResponse points the customer at the hosted frontend.
type InitiateSessionResponse struct {
	Token               string `json:"token"`
	CheckoutFrontendURL string `json:"checkoutFrontendUrl"`
	PollingURL          string `json:"pollingUrl"`
}

// SessionDetails is the state of a checkout session.
type SessionDetails struct {
	SessionID      string `json:"sessionId"`
	SessionState   string `json:"sessionState"`
	Reference      string `json:"reference"`
	PaymentMethod  string `json:"paymentMethod,omitempty"`
	PaymentDetails *struct {
		Amount Amount `json:"amount"`
		State  string `json:"state"`
	} `json:"paymentDetails,omitempty"`
}

func checkoutHeaders(clientID, clientSecret string) map[string]string {
	return map[string]string{
		"client_id":     clientID,
		"client_secret": clientSecret,
	}
}

// CreateSession starts a hosted checkout session.
func (s *CheckoutService) CreateSession(ctx context.Context, clientID, clientSecret string, req InitiateSessionRequest) api.Result[InitiateSessionResponse] {
	return call[InitiateSessionResponse](ctx, s.client, api.Descriptor{
		Method:            http.MethodPost,
		Path:              "/checkout/v3/session",
		Body:              req,
		AdditionalHeaders: checkoutHeaders(clientID, clientSecret),
		OmitHeaders:       []string{transport.HeaderAuthorization},
	})
}

// GetSession polls a checkout session by its transaction reference.
func (s *CheckoutService) GetSession(ctx context.Context, clientID, clientSecret, reference string) api.Result[SessionDetails] {
	return call[SessionDetails](ctx, s.client, api.Descriptor{
		Method:            http.MethodGet,
		Path:              fmt.Sprintf("/checkout/v3/session/%s", url.PathEscape(reference)),
		AdditionalHeaders: checkoutHeaders(clientID, clientSecret),
		OmitHeaders:       []string{transport.HeaderAuthorization},
	})
}
