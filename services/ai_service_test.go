package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"notable-notes/notable/config"

	"github.com/stretchr/testify/assert"
)

func testAIConfig(endpoint, apiKey string) config.Config {
	return config.Config{
		GoogleAPIKey:     apiKey,
		AIModel:          "gemini-1.5-flash",
		AIEndpoint:       endpoint,
		AITimeoutSeconds: 2,
	}
}

func TestGenerateTags_RequiresInput(t *testing.T) {
	svc := NewAIService(testAIConfig("http://localhost:0", "key"))

	_, err := svc.GenerateTags(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GenerateTags(context.Background(), "   ", "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateTags_MissingAPIKey(t *testing.T) {
	svc := NewAIService(testAIConfig("http://localhost:0", ""))

	_, err := svc.GenerateTags(context.Background(), "Meeting notes", "")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGenerateTags_Success(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "gemini-1.5-flash:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"work, meetings , planning,,"}]}}]}`))
	}))
	defer upstream.Close()

	svc := NewAIService(testAIConfig(upstream.URL, "test-key"))

	tags, err := svc.GenerateTags(context.Background(), "Meeting notes", "Agenda for tomorrow")
	assert.NoError(t, err)
	assert.Equal(t, []string{"work", "meetings", "planning"}, tags)
}

func TestGenerateTags_UpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer upstream.Close()

	svc := NewAIService(testAIConfig(upstream.URL, "test-key"))

	_, err := svc.GenerateTags(context.Background(), "Meeting notes", "")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGenerateTags_Unreachable(t *testing.T) {
	svc := NewAIService(testAIConfig("http://127.0.0.1:1", "test-key"))

	_, err := svc.GenerateTags(context.Background(), "Meeting notes", "")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGenerateTags_BlockedResponse(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`))
	}))
	defer upstream.Close()

	svc := NewAIService(testAIConfig(upstream.URL, "test-key"))

	_, err := svc.GenerateTags(context.Background(), "Meeting notes", "")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGenerateTags_EmptyCandidates(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":" , ,"}]}}]}`))
	}))
	defer upstream.Close()

	svc := NewAIService(testAIConfig(upstream.URL, "test-key"))

	_, err := svc.GenerateTags(context.Background(), "Meeting notes", "")
	assert.ErrorIs(t, err, ErrUpstream)
}
