package openrouter_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"traderjoe/internal/3rdparty/openrouter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Ask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, openrouter.DefaultModel, body["model"])
		assert.Equal(t, openrouter.DefaultTemperature, body["temperature"])
		assert.Equal(t, []any{
			map[string]any{"role": "system", "content": openrouter.DefaultPersona},
			map[string]any{"role": "user", "content": "how are you?"},
		}, body["messages"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  great 😊\n"}}]}`))
	}))
	defer server.Close()

	client := openrouter.NewClient(server.Client(), openrouter.Config{APIKey: "key", Host: server.URL})
	reply, err := client.Ask(context.Background(), "how are you?")
	require.NoError(t, err)
	assert.Equal(t, "great 😊", reply)
}

func TestClient_AskErrors(t *testing.T) {
	for _, tc := range []struct {
		status int
		body   string
	}{
		{http.StatusTooManyRequests, `{"error":{"code":429,"message":"rate limited"}}`},
		{http.StatusOK, `{"choices":[]}`},
		{http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"   "}}]}`},
	} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(tc.body))
		}))

		client := openrouter.NewClient(server.Client(), openrouter.Config{APIKey: "key", Host: server.URL})
		_, err := client.Ask(context.Background(), "q")
		assert.Error(t, err, tc.body)
		server.Close()
	}
}
