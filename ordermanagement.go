package nordpay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nordpay/nordpay-go/pkg/api"
)

// OrderService covers order management: receipts and categories attached
// to completed payments.
type OrderService struct {
	client *Client
}

// PaymentType distinguishes which payment flow an order came from.
type PaymentType string

const (
	PaymentTypeECom      PaymentType = "ecom"
	PaymentTypeRecurring PaymentType = "recurring"
)

// OrderLine is one line of a receipt.
type OrderLine struct {
	Name               string `json:"name"`
	ID                 string `json:"id"`
	TotalAmount        int64  `json:"totalAmount"`
	TotalAmountExclTax int64  `json:"totalAmountExcludingTax"`
	TotalTaxAmount     int64  `json:"totalTaxAmount"`
	TaxRate            int    `json:"taxRate"`
	Quantity           string `json:"quantity,omitempty"`
	UnitPrice          int64  `json:"unitPrice,omitempty"`
}

// BottomLine sums a receipt.
type BottomLine struct {
	Currency       string `json:"currency"`
	TipAmount      int64  `json:"tipAmount,omitempty"`
	GiftCardAmount int64  `json:"giftCardAmount,omitempty"`
	ReceiptNumber  string `json:"receiptNumber,omitempty"`
}

// Receipt attaches purchase details to an order.
type Receipt struct {
	OrderLines []OrderLine `json:"orderLines"`
	BottomLine BottomLine  `json:"bottomLine"`
}

// Category places an order in the customer's purchase overview.
type Category struct {
	Category        string `json:"category"`
	OrderDetailsURL string `json:"orderDetailsUrl"`
	ImageID         string `json:"imageId,omitempty"`
}

// OrderDetails is everything stored against an order.
type OrderDetails struct {
	OrderID  string    `json:"orderId"`
	Category *Category `json:"category,omitempty"`
	Receipt  *Receipt  `json:"receipt,omitempty"`
}

func orderPath(paymentType PaymentType, segment, orderID string) string {
	if segment == "" {
		return fmt.Sprintf("/order-management/v2/%s/%s", paymentType, url.PathEscape(orderID))
	}
	return fmt.Sprintf("/order-management/v2/%s/%s/%s", paymentType, segment, url.PathEscape(orderID))
}

// AddReceipt attaches a receipt to an order.
func (s *OrderService) AddReceipt(ctx context.Context, token string, paymentType PaymentType, orderID string, receipt Receipt) api.Result[struct{}] {
	return call[struct{}](ctx, s.client, api.Descriptor{
		Method: http.MethodPost,
		Path:   orderPath(paymentType, "receipts", orderID),
		Body:   receipt,
		Token:  token,
	})
}

// AddCategory attaches a category link to an order.
func (s *OrderService) AddCategory(ctx context.Context, token string, paymentType PaymentType, orderID string, category Category) api.Result[struct{}] {
	return call[struct{}](ctx, s.client, api.Descriptor{
		Method: http.MethodPut,
		Path:   orderPath(paymentType, "categories", orderID),
		Body:   category,
		Token:  token,
	})
}

// Get fetches everything stored against an order.
func (s *OrderService) Get(ctx context.Context, token string, paymentType PaymentType, orderID string) api.Result[OrderDetails] {
	return call[OrderDetails](ctx, s.client, api.Descriptor{
		Method: http.MethodGet,
		Path:   orderPath(paymentType, "", orderID),
		Token:  token,
	})
}
