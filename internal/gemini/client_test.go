package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

// GenerateStream spawns a goroutine per stream; every test must leave it
// finished. Idle keep-alive connections from httptest clients are not leaks.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig("test-key")
	cfg.BaseURL = srv.URL
	cfg.Timeout = 5 * time.Second
	return NewClient(cfg, zap.NewNop())
}

func TestGenerateParsesTextAndFunctionCalls(t *testing.T) {
	var gotReq generateRequest
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{
				"content": {
					"role": "model",
					"parts": [
						{"text": "Let me check that."},
						{"functionCall": {"name": "getCampaigns", "args": {"status": "ENABLED"}}}
					]
				},
				"finishReason": "STOP"
			}],
			"usageMetadata": {"promptTokenCount": 120, "candidatesTokenCount": 30, "totalTokenCount": 150}
		}`))
	})

	resp, err := c.Generate(context.Background(),
		[]Content{{Role: "user", Parts: []Part{{Text: "show enabled campaigns"}}}},
		"system prompt", nil)
	require.NoError(t, err)

	assert.Equal(t, "Let me check that.", resp.Text)
	require.Len(t, resp.FunctionCalls, 1)
	assert.Equal(t, "getCampaigns", resp.FunctionCalls[0].Name)
	assert.Equal(t, "ENABLED", resp.FunctionCalls[0].Args["status"])
	assert.Equal(t, "STOP", resp.FinishReason)
	assert.Equal(t, 150, resp.Usage.TotalTokens)

	// Request carried the sampling defaults and the system instruction.
	assert.InDelta(t, 0.7, gotReq.GenerationConfig.Temperature, 0.001)
	assert.Equal(t, 2048, gotReq.GenerationConfig.MaxOutputTokens)
	assert.InDelta(t, 0.8, gotReq.GenerationConfig.TopP, 0.001)
	assert.Equal(t, 40, gotReq.GenerationConfig.TopK)
	require.NotNil(t, gotReq.SystemInstruction)
	assert.Equal(t, "system prompt", gotReq.SystemInstruction.Parts[0].Text)
}

func TestGenerateRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "ok"}]}, "finishReason": "STOP"}]}`))
	})

	resp, err := c.Generate(context.Background(),
		[]Content{{Role: "user", Parts: []Part{{Text: "hi"}}}}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGenerateDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`bad request`))
	})

	_, err := c.Generate(context.Background(),
		[]Content{{Role: "user", Parts: []Part{{Text: "hi"}}}}, "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerateAPIError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"code": 400, "message": "invalid argument", "status": "INVALID_ARGUMENT"}}`))
	})

	_, err := c.Generate(context.Background(),
		[]Content{{Role: "user", Parts: []Part{{Text: "hi"}}}}, "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}

func TestGenerateNoAPIKey(t *testing.T) {
	cfg := DefaultConfig("")
	c := NewClient(cfg, zap.NewNop())

	_, err := c.Generate(context.Background(), nil, "", nil)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGenerateStream(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "streamGenerateContent")
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(`data: {"candidates": [{"content": {"parts": [{"text": "Your "}]}}]}` + "\n\n"))
		w.Write([]byte(`data: {"candidates": [{"content": {"parts": [{"text": "campaigns look good."}]}}]}` + "\n\n"))
		w.Write([]byte("data: [DONE]\n\n"))
	})

	textCh, errCh := c.GenerateStream(context.Background(),
		[]Content{{Role: "user", Parts: []Part{{Text: "hi"}}}}, "", nil)

	var got string
	for chunk := range textCh {
		got += chunk
	}
	require.NoError(t, <-errCh)
	assert.Equal(t, "Your campaigns look good.", got)
}

func TestGenerateStreamSurfacesErrors(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`forbidden`))
	})

	textCh, errCh := c.GenerateStream(context.Background(),
		[]Content{{Role: "user", Parts: []Part{{Text: "hi"}}}}, "", nil)

	for range textCh {
	}
	err := <-errCh
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestValidateConnection(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "Hello!"}]}, "finishReason": "STOP"}]}`))
	})
	assert.True(t, c.ValidateConnection(context.Background()))

	bad := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	assert.False(t, bad.ValidateConnection(context.Background()))
}
