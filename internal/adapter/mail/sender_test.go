package mail_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/adapter/mail"
)

func TestProviderClient_Send(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{"message_id": "msg-42", "status": "queued"})
	}))
	defer srv.Close()

	client := mail.NewProviderClient(srv.URL, "secret")
	receipt, err := client.Send(context.Background(), "ana@example.com", "Welcome", "welcome", map[string]any{"name": "Ana"})
	require.NoError(t, err)

	assert.Equal(t, "msg-42", receipt.MessageID)
	assert.Equal(t, "queued", receipt.Status)
	assert.Equal(t, "ana@example.com", got["to"])
	assert.Equal(t, "welcome", got["template"])
}

func TestProviderClient_Send_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := mail.NewProviderClient(srv.URL, "secret")
	_, err := client.Send(context.Background(), "ana@example.com", "Welcome", "welcome", nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "429")
	assert.ErrorContains(t, err, "quota exceeded")
}
