package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nexbasket/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
)

// Intent is a created payment intent
type Intent struct {
	ID           string
	ClientSecret string
}

// WebhookEvent is a verified payment event relevant to orders
type WebhookEvent struct {
	Type            string
	PaymentIntentID string
	OrderID         uuid.UUID
}

// Provider abstracts the payment gateway
type Provider interface {
	CreateIntent(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal) (*Intent, error)
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// StripeProvider implements Provider against the Stripe API
type StripeProvider struct {
	api           *client.API
	currency      string
	webhookSecret string
}

// NewStripeProvider creates a Stripe payment provider
func NewStripeProvider(cfg config.PaymentConfig) *StripeProvider {
	api := &client.API{}
	api.Init(cfg.StripeSecretKey, nil)

	return &StripeProvider{
		api:           api,
		currency:      cfg.Currency,
		webhookSecret: cfg.WebhookSecret,
	}
}

// CreateIntent creates a payment intent for the order total. The order
// ID rides along as metadata so the webhook can find the order again.
func (p *StripeProvider) CreateIntent(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal) (*Intent, error) {
	// Stripe amounts are in the currency's minor unit
	minorUnits := amount.Mul(decimal.NewFromInt(100)).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minorUnits),
		Currency: stripe.String(p.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("order_id", orderID.String())

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create payment intent: %w", err)
	}

	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// VerifyWebhook checks the Stripe signature and extracts the order
// reference from the event payload
func (p *StripeProvider) VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("stripe: verify webhook: %w", err)
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("stripe: decode payment intent: %w", err)
	}

	out := &WebhookEvent{
		Type:            string(event.Type),
		PaymentIntentID: pi.ID,
	}
	if raw, ok := pi.Metadata["order_id"]; ok {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("stripe: bad order_id metadata %q: %w", raw, err)
		}
		out.OrderID = id
	}

	return out, nil
}

// Ensure StripeProvider implements Provider
var _ Provider = (*StripeProvider)(nil)
