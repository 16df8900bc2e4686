package nordpay

import (
	"context"
	"net/http"
	"net/url"

	"github.com/nordpay/nordpay-go/pkg/api"
)

// WebhookService manages webhook registrations.
type WebhookService struct {
	client *Client
}

// RegisterWebhookRequest subscribes a URL to a set of events.
type RegisterWebhookRequest struct {
	URL    string   `json:"url"`
	Events []string `json:"events"`
}

// RegisterWebhookResponse carries the registration id and the secret used
// to verify callback signatures.
type RegisterWebhookResponse struct {
	ID     string `json:"id"`
	Secret string `json:"secret"`
}

// Webhook is one registration as returned by List.
type Webhook struct {
	ID     string   `json:"id"`
	URL    string   `json:"url"`
	Events []string `json:"events"`
}

// WebhookList wraps the List response.
type WebhookList struct {
	Webhooks []Webhook `json:"webhooks"`
}

// Register subscribes a callback URL to events.
func (s *WebhookService) Register(ctx context.Context, token string, req RegisterWebhookRequest) api.Result[RegisterWebhookResponse] {
	return call[RegisterWebhookResponse](ctx, s.client, api.Descriptor{
		Method: http.MethodPost,
		Path:   "/webhooks/v1/webhooks",
		Body:   req,
		Token:  token,
	})
}

// List returns all registrations for the merchant.
func (s *WebhookService) List(ctx context.Context, token string) api.Result[WebhookList] {
	return call[WebhookList](ctx, s.client, api.Descriptor{
		Method: http.MethodGet,
		Path:   "/webhooks/v1/webhooks",
		Token:  token,
	})
}

// Delete removes a registration.
func (s *WebhookService) Delete(ctx context.Context, token, id string) api.Result[struct{}] {
	return call[struct{}](ctx, s.client, api.Descriptor{
		Method: http.MethodDelete,
		Path:   "/webhooks/v1/webhooks/" + url.PathEscape(id),
		Token:  token,
	})
}
