package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResendMailerSend(t *testing.T) {
	var captured map[string]interface{}
	var authHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewResendMailer("re_test_key", "orders@nexbasket.example")
	m.client = srv.Client()

	// Point the request at the test server by rewriting the transport
	m.client.Transport = rewriteHost(srv.URL)

	err := m.Send(context.Background(), Message{
		To:      "asha@example.com",
		Subject: "Order shipped",
		HTML:    "<p>on the way</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test_key", authHeader)
	assert.Equal(t, "orders@nexbasket.example", captured["from"])
	assert.Equal(t, "Order shipped", captured["subject"])
}

func TestResendMailerSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := NewResendMailer("bad", "orders@nexbasket.example")
	m.client = srv.Client()
	m.client.Transport = rewriteHost(srv.URL)

	err := m.Send(context.Background(), Message{To: "asha@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestLogMailerSend(t *testing.T) {
	m := NewLogMailer(zap.NewNop())
	assert.NoError(t, m.Send(context.Background(), Message{To: "asha@example.com"}))
}

// rewriteHost redirects every request to the test server
func rewriteHost(target string) http.RoundTripper {
	return roundTripFunc(func(req *http.Request) (*http.Response, error) {
		u := *req.URL
		u.Scheme = "http"
		u.Host = target[len("http://"):]
		req.URL = &u
		return http.DefaultTransport.RoundTrip(req)
	})
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
