package aiwriter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientComplete(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "  A polished summary.  "}},
			},
		})
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", "gpt-3.5-turbo", srv.URL)
	require.NoError(t, err)

	content, err := client.Complete(context.Background(), "Write a summary.")
	require.NoError(t, err)
	assert.Equal(t, "A polished summary.", content)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-3.5-turbo", gotBody.Model)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, 1000, gotBody.MaxTokens)
}

func TestClientCompleteSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "rate limited", "type": "rate_limit"},
		})
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", "gpt-3.5-turbo", srv.URL)
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestNewClientRequiresKeyAndModel(t *testing.T) {
	_, err := NewClient("", "gpt-3.5-turbo", "")
	assert.Error(t, err)

	_, err = NewClient("sk-test", "", "")
	assert.Error(t, err)
}
