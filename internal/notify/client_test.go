package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClientConfig() ClientConfig {
	return ClientConfig{TimeoutMs: 2000, MaxRetries: 2, RetryDelayMs: 1}
}

func TestWebhookClient_Post_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"content":"hola"}`, string(body))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := NewWebhookClient(testClientConfig()).Post(context.Background(), srv.URL, []byte(`{"content":"hola"}`))
	assert.NoError(t, err)
}

func TestWebhookClient_Post_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewWebhookClient(testClientConfig()).Post(context.Background(), srv.URL, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestWebhookClient_Post_RetryExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := NewWebhookClient(testClientConfig()).Post(context.Background(), srv.URL, []byte(`{}`))
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, int32(3), calls.Load())
}

func TestWebhookClient_Post_RejectedIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Unknown Webhook"}`))
	}))
	defer srv.Close()

	err := NewWebhookClient(testClientConfig()).Post(context.Background(), srv.URL, []byte(`{}`))
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "Unknown Webhook")
	assert.Equal(t, int32(1), calls.Load())
}

func TestWebhookClient_Post_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testClientConfig()
	cfg.TimeoutMs = 50
	err := NewWebhookClient(cfg).Post(context.Background(), srv.URL, []byte(`{}`))
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestWebhookClient_Post_Unavailable(t *testing.T) {
	cfg := testClientConfig()
	cfg.MaxRetries = 0
	err := NewWebhookClient(cfg).Post(context.Background(), "http://127.0.0.1:1", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 2*time.Second, parseRetryAfter("2"))
	assert.Equal(t, 1500*time.Millisecond, parseRetryAfter("1.5"))
	assert.Zero(t, parseRetryAfter(""))
	assert.Zero(t, parseRetryAfter("soon"))
}

func TestValidURL(t *testing.T) {
	assert.True(t, ValidURL("https://discord.com/api/webhooks/1/abc"))
	assert.True(t, ValidURL("http://localhost:8080/hook"))
	assert.False(t, ValidURL(""))
	assert.False(t, ValidURL("TU_WEBHOOK_AQUI"))
	assert.False(t, ValidURL("ftp://example.com"))

	w := Webhooks{}
	w.Set("yummy", "time_log", "https://example.com/a")
	w.Set("uwu", "time_log", "pending")
	u, ok := w.WebhookURL("yummy", "time_log")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/a", u)
	_, ok = w.WebhookURL("uwu", "time_log")
	assert.False(t, ok)
	_, ok = w.WebhookURL("yummy", "sales_log")
	assert.False(t, ok)
}
