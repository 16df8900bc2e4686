// Package nordpay provides a typed Go client for the Nordpay
// merchant-payment REST APIs: payments, recurring agreements and charges,
// checkout sessions, QR codes, order management, webhooks, user profiles,
// and login discovery.
//
// Every operation pipes a request descriptor through one pipeline:
// pre-flight validation, request building, transport with bounded retry,
// response interpretation, and error normalization. The outcome is always
// an api.Result — operations never return a Go error and never panic.
//
// # Quick Start
//
//	cfg := nordpay.ClientConfig{
//		SubscriptionKey:      os.Getenv("NORDPAY_SUBSCRIPTION_KEY"),
//		MerchantSerialNumber: "123456",
//		UseTestMode:          true,
//	}
//	c, err := nordpay.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	token := c.Auth.GetToken(ctx, clientID, clientSecret)
//	if !token.Ok {
//		log.Fatal(token.Message)
//	}
//
//	payment := c.Payments.Create(ctx, token.Data.AccessToken, nordpay.CreatePaymentRequest{
//		Amount:    nordpay.Amount{Currency: "NOK", Value: 1000},
//		Reference: "order-123",
//		PaymentMethod: nordpay.PaymentMethod{Type: "WALLET"},
//	})
//	if payment.Ok {
//		fmt.Println(payment.Data.RedirectURL)
//	} else {
//		fmt.Println(payment.Message)
//	}
//
// # Failure handling
//
// A failed Result always carries a human-readable Message. When the
// failure could be classified, Result.Error holds the kind (connection,
// retry exhaustion, forbidden, provider problem, unknown), the HTTP
// status, the parsed problem payload, and the raw response body.
//
// Transient failures (5xx responses, connection errors) are retried up to
// three times with exponential backoff unless ClientConfig.RetryRequests
// is disabled. Business errors are never retried.
//
// # Environments
//
// ClientConfig.UseTestMode selects the sandbox host; production is the
// default. Administrative test actions such as force-approving a payment
// are rejected before any network call when the client targets production.
package nordpay
