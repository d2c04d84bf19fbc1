// Package payments wraps the Stripe client behind the small surface the
// settlement service needs.
package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/shashiranjanraj/bistro/config"
)

// StripeGateway creates payment intents against Stripe. Safe for concurrent
// use; one instance is shared by all requests.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway builds a gateway from the configured secret key.
func NewStripeGateway() *StripeGateway {
	api := &client.API{}
	api.Init(config.StripeSecretKey(), nil)
	return &StripeGateway{api: api}
}

// CreateIntent requests a card-only payment intent for amountCents in the
// given currency and returns the client secret the frontend needs to finish
// the authorization.
func (g *StripeGateway) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("payments: create intent: %w", err)
	}
	return intent.ClientSecret, nil
}
