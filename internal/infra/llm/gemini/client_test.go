package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateContentParsesCandidates(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, "secret", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates":[{"content":{"parts":[{"text":"Halo "},{"text":"dunia"}]}}],
			"usageMetadata":{"promptTokenCount":12,"candidatesTokenCount":5,"totalTokenCount":17}
		}`))
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, "gemini-2.0-flash", 0.7)
	res, err := client.GenerateContent(context.Background(), "sebutkan kos murah")
	require.NoError(t, err)
	require.Equal(t, "Halo dunia", res.Text)
	require.Equal(t, 12, res.Usage.PromptTokens)
	require.Equal(t, 5, res.Usage.CompletionTokens)
	require.Equal(t, 17, res.Usage.TotalTokens)

	require.Equal(t, "/models/gemini-2.0-flash:generateContent", gotPath)
	contents := gotBody["contents"].([]any)
	require.Len(t, contents, 1)
}

func TestGenerateContentWithoutKey(t *testing.T) {
	client := NewClient("", "", "gemini-2.0-flash", 0)
	_, err := client.GenerateContent(context.Background(), "apa saja")
	require.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGenerateContentUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, "gemini-2.0-flash", 0)
	_, err := client.GenerateContent(context.Background(), "apa saja")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=429")
}

func TestGenerateContentNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, "gemini-2.0-flash", 0)
	_, err := client.GenerateContent(context.Background(), "apa saja")
	require.Error(t, err)
}
