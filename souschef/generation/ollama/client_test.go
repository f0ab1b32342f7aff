package ollama

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ports "github.com/hearthware/souschef/souschef/assistant/ports"
)

func newTestClient(url string) *Client {
	return NewClient(url, "test-model", 2*time.Second, time.Second, zerolog.Nop())
}

func TestGenerate_Success(t *testing.T) {
	var captured generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(generateResponse{Response: "  Try the carbonara.  "})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, ok := client.Generate(context.Background(), ports.Prompt{System: "be helpful", User: "pasta?"}, ports.Sampling{
		Temperature: 0.3,
		TopP:        0.8,
		NumPredict:  300,
		Stop:        []string{"User:"},
	})

	assert.True(t, ok)
	assert.Equal(t, "Try the carbonara.", text)
	assert.Equal(t, "test-model", captured.Model)
	assert.Equal(t, "be helpful", captured.System)
	assert.Equal(t, "pasta?", captured.Prompt)
	assert.False(t, captured.Stream)
	assert.Equal(t, 300, captured.Options.NumPredict)
	assert.Equal(t, []string{"User:"}, captured.Options.Stop)
}

func TestGenerate_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusInternalServerError)
	}))
	defer server.Close()

	text, ok := newTestClient(server.URL).Generate(context.Background(), ports.Prompt{User: "hi"}, ports.Sampling{})

	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestGenerate_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, "m", 50*time.Millisecond, time.Second, zerolog.Nop())
	_, ok := client.Generate(context.Background(), ports.Prompt{User: "hi"}, ports.Sampling{})

	assert.False(t, ok)
}

func TestGenerate_TransportFailure(t *testing.T) {
	// Nothing listens on this address.
	client := newTestClient("http://127.0.0.1:1")

	_, ok := client.Generate(context.Background(), ports.Prompt{User: "hi"}, ports.Sampling{})

	assert.False(t, ok)
}

func TestGenerate_Cancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server starts its background read and can
		// observe the client disconnect; otherwise r.Context() is never
		// cancelled and server.Close deadlocks.
		io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, ok := newTestClient(server.URL).Generate(ctx, ports.Prompt{User: "hi"}, ports.Sampling{})

	assert.False(t, ok)
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	assert.True(t, newTestClient(server.URL).HealthCheck(context.Background()))
	assert.False(t, newTestClient("http://127.0.0.1:1").HealthCheck(context.Background()))
}
