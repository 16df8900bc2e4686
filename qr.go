package nordpay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nordpay/nordpay-go/pkg/api"
)

// QRService covers merchant-redirect QR codes.
type QRService struct {
	client *Client
}

// CreateRedirectQRRequest creates a QR code that opens a redirect URL
// when scanned.
type CreateRedirectQRRequest struct {
	ID          string `json:"id"`
	RedirectURL string `json:"redirectUrl"`
}

// RedirectQR describes a stored QR code. URL points at the rendered
// image in the format requested via the Accept header.
type RedirectQR struct {
	ID          string `json:"id"`
	RedirectURL string `json:"redirectUrl"`
	URL         string `json:"url"`
}

// CreateMerchantRedirect stores a new redirect QR code.
func (s *QRService) CreateMerchantRedirect(ctx context.Context, token string, req CreateRedirectQRRequest) api.Result[RedirectQR] {
	return call[RedirectQR](ctx, s.client, api.Descriptor{
		Method: http.MethodPost,
		Path:   "/qr/v1/merchant-redirect",
		Body:   req,
		Token:  token,
		AdditionalHeaders: map[string]string{
			"Accept": "image/svg+xml",
		},
	})
}

// Get fetches one QR code. imageFormat is the Accept media type for the
// rendered image, e.g. "image/svg+xml" or "image/png".
func (s *QRService) Get(ctx context.Context, token, id, imageFormat string) api.Result[RedirectQR] {
	return call[RedirectQR](ctx, s.client, api.Descriptor{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/qr/v1/merchant-redirect/%s", url.PathEscape(id)),
		Token:  token,
		AdditionalHeaders: map[string]string{
			"Accept": imageFormat,
		},
	})
}

// List fetches all of the merchant's redirect QR codes.
func (s *QRService) List(ctx context.Context, token string) api.Result[[]RedirectQR] {
	return call[[]RedirectQR](ctx, s.client, api.Descriptor{
		Method: http.MethodGet,
		Path:   "/qr/v1/merchant-redirect",
		Token:  token,
		AdditionalHeaders: map[string]string{
			"Accept": "image/svg+xml",
		},
	})
}

// Delete removes a QR code.
func (s *QRService) Delete(ctx context.Context, token, id string) api.Result[struct{}] {
	return call[struct{}](ctx, s.client, api.Descriptor{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/qr/v1/merchant-redirect/%s", url.PathEscape(id)),
		Token:  token,
	})
}
