package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendEventPostsBodyVerbatim(t *testing.T) {
	const payload = `{"id":"evt_1",  "type":"checkout.session.completed"}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/webhook/stripe", r.URL.Path)
		assert.Equal(t, "t=1,v1=abc", r.Header.Get("Stripe-Signature"))
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, payload, string(body))
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	c := NewPaygateClient(srv.URL+"/", time.Second, "")
	require.NoError(t, c.SendEvent(context.Background(), []byte(payload), "t=1,v1=abc"))
}

func TestSendEventReturnsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"signature does not match","code":"WEBHOOK_SIGNATURE_INVALID"}`))
	}))
	defer srv.Close()

	err := NewPaygateClient(srv.URL, time.Second, "").SendEvent(context.Background(), []byte(`{}`), "t=1,v1=00")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	require.Equal(t, "WEBHOOK_SIGNATURE_INVALID", statusErr.Code)
}

func TestHasPaidAndPaymentLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "conv-1", r.Header.Get("x-conversation"))
		switch r.URL.Path {
		case "/hasUserPaid":
			w.Write([]byte(`{"paid":true}`))
		case "/getPaymentURL":
			w.Write([]byte(`{"message":"click","url":"https://pay.example/x?client_reference_id=conv-1"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewPaygateClient(srv.URL, time.Second, "x-conversation")
	ctx := context.Background()

	paid, err := c.HasPaid(ctx, "conv-1")
	require.NoError(t, err)
	require.True(t, paid)

	link, err := c.PaymentLink(ctx, "conv-1")
	require.NoError(t, err)
	require.Equal(t, "click", link.Message)
	require.Contains(t, link.URL, "client_reference_id=conv-1")
}

func TestHasPaidServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	paid, err := NewPaygateClient(srv.URL, time.Second, "").HasPaid(context.Background(), "conv-1")
	require.False(t, paid)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPaygateClient("http://127.0.0.1:1", time.Second, "").HasPaid(ctx, "conv-1")
	require.ErrorIs(t, err, context.Canceled)
}
