// AngelaMos | 2026
// gateway.go

package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/carterperez-dev/summercamp-api/internal/core"
)

// Gateway creates card payment intents and hands back the client secret
// the browser needs to confirm the charge.
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error)
}

type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreatePaymentIntent(
	ctx context.Context,
	amount int64,
	currency string,
) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w: %w", core.ErrGatewayFailed, err)
	}

	return pi.ClientSecret, nil
}

var _ Gateway = (*StripeGateway)(nil)
