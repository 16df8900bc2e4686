package nordpay

import (
	"context"
	"net/http"
	"net/url"

	"github.com/nordpay/nordpay-go/pkg/api"
)

// UserService fetches profile information the user consented to share.
type UserService struct {
	client *Client
}

// UserInfo is the profile data for a consenting user.
type UserInfo struct {
	Sub         string `json:"sub"`
	Name        string `json:"name,omitempty"`
	GivenName   string `json:"given_name,omitempty"`
	FamilyName  string `json:"family_name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	BirthDate   string `json:"birthdate,omitempty"`
	SID         string `json:"sid,omitempty"`
}

// Info fetches the profile for the sub returned by a payment or agreement
// that requested profile scope.
func (s *UserService) Info(ctx context.Context, token, sub string) api.Result[UserInfo] {
	return call[UserInfo](ctx, s.client, api.Descriptor{
		Method: http.MethodGet,
		Path:   "/userinfo/" + url.PathEscape(sub),
		Token:  token,
	})
}
