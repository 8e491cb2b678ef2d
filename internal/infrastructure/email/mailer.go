package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Message is an outbound email
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer sends transactional email
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

const resendEndpoint = "https://api.resend.com/emails"

// ResendMailer sends email through the Resend HTTP API
type ResendMailer struct {
	apiKey string
	from   string
	client *http.Client
}

// NewResendMailer creates a Resend-backed mailer
func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts the message to the Resend API
func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(map[string]interface{}{
		"from":    m.from,
		"to":      []string{msg.To},
		"subject": msg.Subject,
		"html":    msg.HTML,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend: send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("resend: send email: status %d: %s", resp.StatusCode, detail)
	}
	return nil
}

// LogMailer logs messages instead of sending them. Used in development
// and when no email provider is configured.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a log-only mailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger.Named("mailer")}
}

// Send logs the message
func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.Info("Email delivery skipped",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// Ensure both mailers implement Mailer
var (
	_ Mailer = (*ResendMailer)(nil)
	_ Mailer = (*LogMailer)(nil)
)
