package nordpay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nordpay/nordpay-go/pkg/api"
)

// ChargesService covers the charges nested under recurring agreements.
type ChargesService struct {
	client *Client
}

// CreateChargeRequest schedules a charge on an agreement.
type CreateChargeRequest struct {
	Amount          int64  `json:"amount"`
	TransactionType string `json:"transactionType,omitempty"`
	Description     string `json:"description"`
	Due             string `json:"due"`
	RetryDays       int    `json:"retryDays,omitempty"`
}

// ChargeReference identifies a newly created charge.
type ChargeReference struct {
	ChargeID string `json:"chargeId"`
}

// Charge is the state of a scheduled or processed charge.
type Charge struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	Amount          int64  `json:"amount"`
	AmountRefunded  int64  `json:"amountRefunded,omitempty"`
	Due             string `json:"due"`
	Description     string `json:"description"`
	TransactionType string `json:"transactionType,omitempty"`
	FailureReason   string `json:"failureReason,omitempty"`
}

// RefundChargeRequest returns captured charge funds to the customer.
type RefundChargeRequest struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

func chargesPath(agreementID string) string {
	return fmt.Sprintf("/recurring/v3/agreements/%s/charges", url.PathEscape(agreementID))
}

// Create schedules a charge on the agreement.
func (s *ChargesService) Create(ctx context.Context, token, agreementID string, req CreateChargeRequest) api.Result[ChargeReference] {
	return call[ChargeReference](ctx, s.client, api.Descriptor{
		Method: http.MethodPost,
		Path:   chargesPath(agreementID),
		Body:   req,
		Token:  token,
	})
}

// Get fetches one charge.
func (s *ChargesService) Get(ctx context.Context, token, agreementID, chargeID string) api.Result[Charge] {
	return call[Charge](ctx, s.client, api.Descriptor{
		Method: http.MethodGet,
		Path:   chargesPath(agreementID) + "/" + url.PathEscape(chargeID),
		Token:  token,
	})
}

// List fetches the charges on an agreement.
func (s *ChargesService) List(ctx context.Context, token, agreementID string) api.Result[[]Charge] {
	return call[[]Charge](ctx, s.client, api.Descriptor{
		Method: http.MethodGet,
		Path:   chargesPath(agreementID),
		Token:  token,
	})
}

// Cancel removes a charge before it is processed.
func (s *ChargesService) Cancel(ctx context.Context, token, agreementID, chargeID string) api.Result[struct{}] {
	return call[struct{}](ctx, s.client, api.Descriptor{
		Method: http.MethodDelete,
		Path:   chargesPath(agreementID) + "/" + url.PathEscape(chargeID),
		Token:  token,
	})
}

// Capture captures a reserved charge.
func (s *ChargesService) Capture(ctx context.Context, token, agreementID, chargeID string) api.Result[struct{}] {
	return call[struct{}](ctx, s.client, api.Descriptor{
		Method: http.MethodPost,
		Path:   chargesPath(agreementID) + "/" + url.PathEscape(chargeID) + "/capture",
		Token:  token,
	})
}

// Refund returns captured charge funds to the customer.
func (s *ChargesService) Refund(ctx context.Context, token, agreementID, chargeID string, req RefundChargeRequest) api.Result[struct{}] {
	return call[struct{}](ctx, s.client, api.Descriptor{
		Method: http.MethodPost,
		Path:   chargesPath(agreementID) + "/" + url.PathEscape(chargeID) + "/refund",
		Body:   req,
		Token:  token,
	})
}
