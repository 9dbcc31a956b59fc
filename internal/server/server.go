package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"adpilot/internal/agent"
	"adpilot/internal/config"
)

// Turner is the turn entry point the server drives. *agent.Orchestrator
// satisfies it.
type Turner interface {
	Turn(ctx context.Context, userMessage string, conv agent.Context) (*agent.ChatMessage, agent.Context, error)
	WelcomeMessage() *agent.ChatMessage
	FallbackMessage(err error) *agent.ChatMessage
}

// Server exposes the conversation agent over HTTP.
type Server struct {
	cfg      *config.Config
	orch     Turner
	sessions *Sessions
	logger   *zap.Logger
	now      func() time.Time
}

func New(cfg *config.Config, orch Turner, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:      cfg,
		orch:     orch,
		sessions: NewSessions(),
		logger:   logger,
		now:      time.Now,
	}
}

// Router builds the HTTP handler with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(s.logger.Named("http")))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(bearerAuth(s.cfg.Server.APIKey))

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Get("/{sessionID}", s.handleGetSession)
		r.Post("/{sessionID}/messages", s.handlePostMessage)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": s.cfg.Name,
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"service": s.cfg.Name,
		"version": s.cfg.Version,
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Create(s.orch.WelcomeMessage())
	s.logger.Info("session created", zap.String("session_id", sess.ID))
	snap := sess.Snapshot()
	respondJSON(w, http.StatusCreated, &snap)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	snap := sess.Snapshot()
	respondJSON(w, http.StatusOK, &snap)
}

type postMessageRequest struct {
	Message string `json:"message"`
}

type postMessageResponse struct {
	Message *agent.ChatMessage `json:"message"`
	Error   string             `json:"error,omitempty"`
}

func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "message must not be empty")
		return
	}

	if !sess.BeginTurn() {
		respondError(w, http.StatusConflict, "a turn is already in flight for this session")
		return
	}
	defer sess.EndTurn()

	userMsg := agent.ChatMessage{
		ID:        "msg_" + chimw.GetReqID(r.Context()),
		Role:      "user",
		Content:   req.Message,
		Timestamp: s.now(),
	}

	reply, updated, err := s.orch.Turn(r.Context(), req.Message, sess.Context)
	if err != nil {
		// The failed turn stays out of the rolling context; only the
		// transcript records the apology.
		s.logger.Warn("turn failed", zap.String("session_id", sess.ID), zap.Error(err))
		fallback := s.orch.FallbackMessage(err)
		sess.Append(s.now(), userMsg, *fallback)
		respondJSON(w, http.StatusOK, postMessageResponse{Message: fallback, Error: err.Error()})
		return
	}

	sess.Append(s.now(), userMsg, *reply)
	sess.SetContext(updated)
	respondJSON(w, http.StatusOK, postMessageResponse{Message: reply})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
