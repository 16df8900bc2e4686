package nordpay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nordpay/nordpay-go/pkg/api"
)

// AgreementsService covers the recurring-payment agreements API family.
type AgreementsService struct {
	client *Client
}

// Interval is how often a recurring charge is due.
type Interval struct {
	Unit  string `json:"unit"`
	Count int    `json:"count"`
}

// Pricing describes what an agreement costs the customer.
type Pricing struct {
	Type     string `json:"type,omitempty"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreateAgreementRequest starts a new recurring agreement.
type CreateAgreementRequest struct {
	Interval             Interval `json:"interval"`
	Pricing              Pricing  `json:"pricing"`
	PhoneNumber          string   `json:"phoneNumber,omitempty"`
	ProductName          string   `json:"productName"`
	ProductDescription   string   `json:"productDescription,omitempty"`
	MerchantRedirectURL  string   `json:"merchantRedirectUrl"`
	MerchantAgreementURL string   `json:"merchantAgreementUrl"`
}

// CreateAgreementResponse points the customer at the confirmation flow.
type CreateAgreementResponse struct {
	AgreementID     string `json:"agreementId"`
	ConfirmationURL string `json:"nordpayConfirmationUrl"`
}

// Agreement is the state of a recurring agreement.
type Agreement struct {
	ID                 string   `json:"id"`
	Status             string   `json:"status"`
	ProductName        string   `json:"productName"`
	ProductDescription string   `json:"productDescription,omitempty"`
	Interval           Interval `json:"interval"`
	Pricing            Pricing  `json:"pricing"`
	Start              string   `json:"start,omitempty"`
	Stop               string   `json:"stop,omitempty"`
}

// UpdateAgreementRequest patches an agreement. Nil fields are left
// untouched; stopping an agreement is a status update.
type UpdateAgreementRequest struct {
	ProductName        *string  `json:"productName,omitempty"`
	ProductDescription *string  `json:"productDescription,omitempty"`
	Pricing            *Pricing `json:"pricing,omitempty"`
	Status             *string  `json:"status,omitempty"`
}

// Create starts a new agreement and returns the confirmation URL the
// customer must visit.
func (s *AgreementsService) Create(ctx context.Context, token string, req CreateAgreementRequest) api.Result[CreateAgreementResponse] {
	return call[CreateAgreementResponse](ctx, s.client, api.Descriptor{
		Method: http.MethodPost,
		Path:   "/recurring/v3/agreements",
		Body:   req,
		Token:  token,
	})
}

// Get fetches one agreement by id.
func (s *AgreementsService) Get(ctx context.Context, token, agreementID string) api.Result[Agreement] {
	return call[Agreement](ctx, s.client, api.Descriptor{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/recurring/v3/agreements/%s", url.PathEscape(agreementID)),
		Token:  token,
	})
}

// List fetches the merchant's agreements, optionally filtered by status.
func (s *AgreementsService) List(ctx context.Context, token, status string) api.Result[[]Agreement] {
	path := "/recurring/v3/agreements"
	if status != "" {
		path += "?" + url.Values{"status": {status}}.Encode()
	}
	return call[[]Agreement](ctx, s.client, api.Descriptor{
		Method: http.MethodGet,
		Path:   path,
		Token:  token,
	})
}

// Update patches an agreement.
func (s *AgreementsService) Update(ctx context.Context, token, agreementID string, req UpdateAgreementRequest) api.Result[struct{}] {
	return call[struct{}](ctx, s.client, api.Descriptor{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/recurring/v3/agreements/%s", url.PathEscape(agreementID)),
		Body:   req,
		Token:  token,
	})
}

// Stop ends an agreement. A stopped agreement cannot be reactivated.
func (s *AgreementsService) Stop(ctx context.Context, token, agreementID string) api.Result[struct{}] {
	return call[struct{}](ctx, s.client, api.Descriptor{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/recurring/v3/agreements/%s", url.PathEscape(agreementID)),
		Body:   map[string]string{"status": "STOPPED"},
		Token:  token,
	})
}

// ForceAccept accepts a pending sandbox agreement on the customer's
// behalf. Only available when the client targets the test environment.
func (s *AgreementsService) ForceAccept(ctx context.Context, token, agreementID, phoneNumber string) api.Result[struct{}] {
	return call[struct{}](ctx, s.client, api.Descriptor{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/recurring/v3/tests/agreements/%s/accept", url.PathEscape(agreementID)),
		Body:   map[string]string{"phoneNumber": phoneNumber},
		Token:  token,
	})
}
