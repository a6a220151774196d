package llm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeGemini answers generateContent calls by model name.
type fakeGemini struct {
	mu     sync.Mutex
	bodies []string
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.bodies = append(f.bodies, string(body))
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, ":generateContent"):
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"code":404,"message":"unexpected call","status":"NOT_FOUND"}}`)
	case strings.Contains(r.URL.Path, "limited-model"):
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`)
	case strings.Contains(r.URL.Path, "denied-model"):
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"code":401,"message":"API key not valid","status":"UNAUTHENTICATED"}}`)
	case strings.Contains(r.URL.Path, "empty-model"):
		_, _ = io.WriteString(w, `{"candidates":[]}`)
	default:
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"## Breathe\nTake five slow breaths."}]},"finishReason":"STOP"}]}`)
	}
}

func newFakeGeminiClient(t *testing.T, model string) (*GeminiClient, *fakeGemini) {
	t.Helper()

	fake := &fakeGemini{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewGeminiClient(context.Background(), "test-key", model, WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)
	return client, fake
}

func TestGeminiGenerateReturnsRawText(t *testing.T) {
	client, fake := newFakeGeminiClient(t, "ok-model")

	out, err := client.Generate(context.Background(), "hello gemini")
	require.NoError(t, err)
	assert.Equal(t, "## Breathe\nTake five slow breaths.", out)

	require.Len(t, fake.bodies, 1)
	assert.Contains(t, fake.bodies[0], "hello gemini")
}

func TestGeminiGenerateRateLimited(t *testing.T) {
	client, _ := newFakeGeminiClient(t, "limited-model")

	_, err := client.Generate(context.Background(), "hello")
	require.Error(t, err)

	assert.Equal(t, http.StatusTooManyRequests, UpstreamStatus(err))
	assert.True(t, IsRateLimited(err))
}

func TestGeminiGenerateUnauthorized(t *testing.T) {
	client, _ := newFakeGeminiClient(t, "denied-model")

	_, err := client.Generate(context.Background(), "hello")
	require.Error(t, err)

	assert.Equal(t, http.StatusUnauthorized, UpstreamStatus(err))
	assert.False(t, IsRateLimited(err))
}

func TestGeminiGenerateEmptyCandidates(t *testing.T) {
	client, _ := newFakeGeminiClient(t, "empty-model")

	_, err := client.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty text")
}

func TestUpstreamStatusUnwrapsAPIError(t *testing.T) {
	byValue := fmt.Errorf("gemini generate content: %w", genai.APIError{Code: http.StatusTooManyRequests})
	assert.Equal(t, http.StatusTooManyRequests, UpstreamStatus(byValue))
	assert.True(t, IsRateLimited(byValue))

	byPointer := fmt.Errorf("gemini generate content: %w", &genai.APIError{Code: http.StatusForbidden})
	assert.Equal(t, http.StatusForbidden, UpstreamStatus(byPointer))
	assert.False(t, IsRateLimited(byPointer))
}
