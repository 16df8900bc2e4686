package nordpay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nordpay/nordpay-go/pkg/api"
)

// PaymentsService covers the ePayment API family: one-off payments and
// their lifecycle operations.
type PaymentsService struct {
	client *Client
}

// Amount is a monetary value in the currency's minor unit (øre, cents).
type Amount struct {
	Currency string `json:"currency"`
	Value    int64  `json:"value"`
}

// PaymentMethod selects how the customer pays.
type PaymentMethod struct {
	Type string `json:"type"`
}

// Customer identifies the paying customer.
type Customer struct {
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// CreatePaymentRequest initiates a payment.
type CreatePaymentRequest struct {
	Amount             Amount        `json:"amount"`
	PaymentMethod      PaymentMethod `json:"paymentMethod"`
	Customer           *Customer     `json:"customer,omitempty"`
	Reference          string        `json:"reference"`
	ReturnURL          string        `json:"returnUrl,omitempty"`
	UserFlow           string        `json:"userFlow,omitempty"`
	PaymentDescription string        `json:"paymentDescription,omitempty"`
}

// CreatePaymentResponse is returned when a payment is initiated.
type CreatePaymentResponse struct {
	RedirectURL string `json:"redirectUrl,omitempty"`
	Reference   string `json:"reference"`
}

// Payment is the state of an initiated payment.
type Payment struct {
	Amount        Amount            `json:"amount"`
	State         string            `json:"state"`
	Aggregate     *PaymentAggregate `json:"aggregate,omitempty"`
	PaymentMethod PaymentMethod     `json:"paymentMethod"`
	PSPReference  string            `json:"pspReference"`
	Reference     string            `json:"reference"`
	RedirectURL   string            `json:"redirectUrl,omitempty"`
}

// PaymentAggregate sums the money movements on a payment.
type PaymentAggregate struct {
	AuthorizedAmount Amount `json:"authorizedAmount"`
	CancelledAmount  Amount `json:"cancelledAmount"`
	CapturedAmount   Amount `json:"capturedAmount"`
	RefundedAmount   Amount `json:"refundedAmount"`
}

// PaymentEvent is one entry of a payment's event log.
type PaymentEvent struct {
	Reference    string `json:"reference"`
	PSPReference string `json:"pspReference"`
	Name         string `json:"name"`
	Amount       Amount `json:"amount"`
	Timestamp    string `json:"timestamp"`
	Success      bool   `json:"success"`
}

// ModificationRequest adjusts an existing payment (capture, refund).
type ModificationRequest struct {
	ModificationAmount Amount `json:"modificationAmount"`
}

// ModificationResponse reports the payment state after an adjustment.
type ModificationResponse struct {
	Amount       Amount            `json:"amount"`
	State        string            `json:"state"`
	Aggregate    *PaymentAggregate `json:"aggregate,omitempty"`
	PSPReference string            `json:"pspReference"`
	Reference    string            `json:"reference"`
}

// ForceApproveRequest approves a sandbox payment on the customer's
// behalf, skipping the app interaction.
type ForceApproveRequest struct {
	Customer *Customer `json:"customer,omitempty"`
	Token    string    `json:"token,omitempty"`
}

// Create initiates a payment.
func (s *PaymentsService) Create(ctx context.Context, token string, req CreatePaymentRequest) api.Result[CreatePaymentResponse] {
	return call[CreatePaymentResponse](ctx, s.client, api.Descriptor{
		Method: http.MethodPost,
		Path:   "/epayment/v1/payments",
		Body:   req,
		Token:  token,
	})
}

// Get fetches a payment by its reference.
func (s *PaymentsService) Get(ctx context.Context, token, reference string) api.Result[Payment] {
	return call[Payment](ctx, s.client, api.Descriptor{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/epayment/v1/payments/%s", url.PathEscape(reference)),
		Token:  token,
	})
}

// EventLog fetches the ordered event history of a payment.
func (s *PaymentsService) EventLog(ctx context.Context, token, reference string) api.Result[[]PaymentEvent] {
	return call[[]PaymentEvent](ctx, s.client, api.Descriptor{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/epayment/v1/payments/%s/events", url.PathEscape(reference)),
		Token:  token,
	})
}

// Cancel voids an authorized but uncaptured payment.
func (s *PaymentsService) Cancel(ctx context.Context, token, reference string) api.Result[ModificationResponse] {
	return call[ModificationResponse](ctx, s.client, api.Descriptor{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/epayment/v1/payments/%s/cancel", url.PathEscape(reference)),
		Token:  token,
	})
}

// Capture captures all or part of an authorized payment.
func (s *PaymentsService) Capture(ctx context.Context, token, reference string, req ModificationRequest) api.Result[ModificationResponse] {
	return call[ModificationResponse](ctx, s.client, api.Descriptor{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/epayment/v1/payments/%s/capture", url.PathEscape(reference)),
		Body:   req,
		Token:  token,
	})
}

// Refund returns captured funds to the customer.
func (s *PaymentsService) Refund(ctx context.Context, token, reference string, req ModificationRequest) api.Result[ModificationResponse] {
	return call[ModificationResponse](ctx, s.client, api.Descriptor{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/epayment/v1/payments/%s/refund", url.PathEscape(reference)),
		Body:   req,
		Token:  token,
	})
}

// ForceApprove approves a pending sandbox payment. Only available when
// the client targets the test environment.
func (s *PaymentsService) ForceApprove(ctx context.Context, token, reference string, req ForceApproveRequest) api.Result[struct{}] {
	return call[struct{}](ctx, s.client, api.Descriptor{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/epayment/v1/test/payments/%s/approve", url.PathEscape(reference)),
		Body:   req,
		Token:  token,
	})
}
