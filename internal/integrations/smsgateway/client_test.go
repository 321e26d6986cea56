package smsgateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestSend_Success(t *testing.T) {
	var got sendRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/sms/send", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})

	err := client.Send(context.Background(), "+79001234567", "Your booking is confirmed")

	require.NoError(t, err)
	assert.Equal(t, "+79001234567", got.Phone)
	assert.Equal(t, "Your booking is confirmed", got.Message)
}

func TestSend_GatewayErrorIncludesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Code: 400, Message: "unknown subscriber"}) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})

	err := client.Send(context.Background(), "+79001234567", "test")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "unknown subscriber")
}

func TestSend_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("gateway restarting")) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})

	err := client.Send(context.Background(), "+79001234567", "test")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "gateway restarting")
}
