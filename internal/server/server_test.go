package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"adpilot/internal/agent"
	"adpilot/internal/config"
)

// stubTurner scripts the orchestrator seam.
type stubTurner struct {
	turnFn func(ctx context.Context, msg string, conv agent.Context) (*agent.ChatMessage, agent.Context, error)
}

func (s *stubTurner) Turn(ctx context.Context, msg string, conv agent.Context) (*agent.ChatMessage, agent.Context, error) {
	return s.turnFn(ctx, msg, conv)
}

func (s *stubTurner) WelcomeMessage() *agent.ChatMessage {
	return &agent.ChatMessage{ID: "msg_welcome", Role: "assistant", Content: "Hello! I'm your Google Ads expert for StylePlus."}
}

func (s *stubTurner) FallbackMessage(err error) *agent.ChatMessage {
	return &agent.ChatMessage{
		ID:      "msg_fallback",
		Role:    "assistant",
		Content: fmt.Sprintf("I apologize, but I encountered an error processing your request: %s. Please try again or rephrase your question.", err),
	}
}

func echoTurner() *stubTurner {
	return &stubTurner{
		turnFn: func(_ context.Context, msg string, conv agent.Context) (*agent.ChatMessage, agent.Context, error) {
			reply := &agent.ChatMessage{ID: "msg_reply", Role: "assistant", Content: "echo: " + msg}
			return reply, conv.Update(msg, reply.Content, nil), nil
		},
	}
}

func newTestServer(t *testing.T, turner Turner) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	return New(cfg, turner, zap.NewNop())
}

func createSession(t *testing.T, router http.Handler) *Session {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var sess Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	return &sess
}

func postMessage(router http.Handler, sessionID, message string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"message": message})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+sessionID+"/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndVersion(t *testing.T) {
	router := newTestServer(t, echoTurner()).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"adpilot"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "adpilot")
}

func TestCreateSessionSeedsWelcome(t *testing.T) {
	router := newTestServer(t, echoTurner()).Router()
	sess := createSession(t, router)

	assert.NotEmpty(t, sess.ID)
	require.Len(t, sess.Messages, 1)
	assert.Equal(t, "assistant", sess.Messages[0].Role)
	assert.Contains(t, sess.Messages[0].Content, "Google Ads expert")
}

func TestPostMessageRoundTrip(t *testing.T) {
	router := newTestServer(t, echoTurner()).Router()
	sess := createSession(t, router)

	rec := postMessage(router, sess.ID, "how are my campaigns?")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp postMessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "echo: how are my campaigns?", resp.Message.Content)
	assert.Empty(t, resp.Error)

	// Snapshot shows welcome + user + assistant and an updated context.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+sess.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var snap Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Len(t, snap.Messages, 3)
	assert.Equal(t, "user", snap.Messages[1].Role)
	assert.Len(t, snap.Context.History, 2)
}

func TestPostMessageValidation(t *testing.T) {
	router := newTestServer(t, echoTurner()).Router()
	sess := createSession(t, router)

	rec := postMessage(router, sess.ID, "   ")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postMessage(router, "no-such-session", "hello")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+sess.ID+"/messages", bytes.NewReader([]byte("{broken")))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostMessageTurnFailure(t *testing.T) {
	turner := &stubTurner{
		turnFn: func(_ context.Context, _ string, conv agent.Context) (*agent.ChatMessage, agent.Context, error) {
			return nil, conv, errors.New("first model pass: rate limited")
		},
	}
	router := newTestServer(t, turner).Router()
	sess := createSession(t, router)

	rec := postMessage(router, sess.ID, "hello")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp postMessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message.Content, "I apologize, but I encountered an error")
	assert.Equal(t, "first model pass: rate limited", resp.Error)

	// Transcript records the apology, context stays empty.
	var snap Session
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+sess.ID, nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Len(t, snap.Messages, 3)
	assert.Empty(t, snap.Context.History)
}

func TestPostMessageGateRejectsConcurrentTurn(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	turner := &stubTurner{
		turnFn: func(_ context.Context, msg string, conv agent.Context) (*agent.ChatMessage, agent.Context, error) {
			close(started)
			<-release
			return &agent.ChatMessage{Role: "assistant", Content: "done"}, conv, nil
		},
	}
	router := newTestServer(t, turner).Router()
	sess := createSession(t, router)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		rec := postMessage(router, sess.ID, "slow question")
		assert.Equal(t, http.StatusOK, rec.Code)
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first turn never started")
	}

	rec := postMessage(router, sess.ID, "second question")
	assert.Equal(t, http.StatusConflict, rec.Code)

	close(release)
	wg.Wait()
}

func TestBearerAuth(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.APIKey = "secret-key"
	srv := New(cfg, echoTurner(), zap.NewNop())
	router := srv.Router()

	// Health stays public.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// API requires the key.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	req.Header.Set("Authorization", "Bearer secret-key")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
