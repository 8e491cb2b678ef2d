package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nexbasket/backend/internal/infrastructure/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type stubVerifier struct {
	event *payment.WebhookEvent
	err   error
}

func (s stubVerifier) VerifyWebhook(payload []byte, signature string) (*payment.WebhookEvent, error) {
	return s.event, s.err
}

// MockPaymentMarker implements PaymentMarker for testing
type MockPaymentMarker struct {
	mock.Mock
}

func (m *MockPaymentMarker) MarkPaid(ctx context.Context, orderID uuid.UUID, paymentRef string) error {
	args := m.Called(ctx, orderID, paymentRef)
	return args.Error(0)
}

func newWebhookRouter(verifier WebhookVerifier, orders PaymentMarker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewPaymentHandler(verifier, orders, zap.NewNop()).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postWebhook(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook",
		bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Stripe-Signature", "sig")
	r.ServeHTTP(w, req)
	return w
}

func TestPaymentWebhook(t *testing.T) {
	orderID := uuid.New()

	t.Run("succeeded intent marks the order paid", func(t *testing.T) {
		orders := new(MockPaymentMarker)
		orders.On("MarkPaid", mock.Anything, orderID, "pi_123").Return(nil)

		r := newWebhookRouter(stubVerifier{event: &payment.WebhookEvent{
			Type:            "payment_intent.succeeded",
			PaymentIntentID: "pi_123",
			OrderID:         orderID,
		}}, orders)

		assert.Equal(t, http.StatusOK, postWebhook(r).Code)
		orders.AssertExpectations(t)
	})

	t.Run("bad signature is rejected", func(t *testing.T) {
		orders := new(MockPaymentMarker)
		r := newWebhookRouter(stubVerifier{err: errors.New("bad signature")}, orders)

		assert.Equal(t, http.StatusBadRequest, postWebhook(r).Code)
		orders.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unrelated events are acknowledged", func(t *testing.T) {
		orders := new(MockPaymentMarker)
		r := newWebhookRouter(stubVerifier{event: &payment.WebhookEvent{
			Type: "payment_intent.created",
		}}, orders)

		assert.Equal(t, http.StatusOK, postWebhook(r).Code)
		orders.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("marking failure returns 500 so the gateway retries", func(t *testing.T) {
		orders := new(MockPaymentMarker)
		orders.On("MarkPaid", mock.Anything, orderID, "pi_123").Return(errors.New("db down"))

		r := newWebhookRouter(stubVerifier{event: &payment.WebhookEvent{
			Type:            "payment_intent.succeeded",
			PaymentIntentID: "pi_123",
			OrderID:         orderID,
		}}, orders)

		assert.Equal(t, http.StatusInternalServerError, postWebhook(r).Code)
	})
}
