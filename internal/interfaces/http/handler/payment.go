package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nexbasket/backend/internal/infrastructure/payment"
	"go.uber.org/zap"
)

// maxWebhookBody caps the webhook payload Stripe may send
const maxWebhookBody = 64 << 10

// WebhookVerifier checks a webhook signature and parses the event
type WebhookVerifier interface {
	VerifyWebhook(payload []byte, signature string) (*payment.WebhookEvent, error)
}

// PaymentMarker records a completed payment against an order
type PaymentMarker interface {
	MarkPaid(ctx context.Context, orderID uuid.UUID, paymentRef string) error
}

// PaymentHandler receives payment gateway webhooks
type PaymentHandler struct {
	BaseHandler
	verifier WebhookVerifier
	orders   PaymentMarker
	logger   *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(verifier WebhookVerifier, orders PaymentMarker, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{verifier: verifier, orders: orders, logger: logger}
}

// RegisterRoutes registers payment routes on the API group
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/webhook", h.Webhook)
}

// Webhook handles payment events from the gateway. The signature
// header authenticates the caller, so the route stays public.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		h.BadRequest(c, "Could not read payload")
		return
	}

	event, err := h.verifier.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.logger.Warn("webhook signature verification failed", zap.Error(err))
		h.BadRequest(c, "Invalid signature")
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		if event.OrderID == uuid.Nil {
			h.logger.Warn("payment intent without order metadata",
				zap.String("payment_intent", event.PaymentIntentID))
			break
		}
		if err := h.orders.MarkPaid(c.Request.Context(), event.OrderID, event.PaymentIntentID); err != nil {
			h.logger.Error("failed to mark order paid",
				zap.String("order_id", event.OrderID.String()),
				zap.Error(err))
			// 500 makes the gateway retry the delivery
			h.InternalError(c, "Could not record payment")
			return
		}
	default:
		h.logger.Debug("ignoring webhook event", zap.String("type", event.Type))
	}

	c.Status(http.StatusOK)
}
