// Package api exposes the assistant over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/hearthware/souschef/souschef/assistant"
	ports "github.com/hearthware/souschef/souschef/assistant/ports"
	"github.com/hearthware/souschef/souschef/retrieval"
)

// ChatService is the surface the HTTP layer needs from the assistant.
type ChatService interface {
	Chat(ctx context.Context, userID, message string) (assistant.TurnResult, error)
	History(userID string, limit int) []ports.ConversationEntry
	ClearHistory(userID string)
	Status(ctx context.Context) assistant.Status
	Metrics() retrieval.MetricsSummary
}

// Server serves the chat API.
type Server struct {
	router  *chi.Mux
	service ChatService
	port    int
	logger  zerolog.Logger
}

// NewServer builds the router around the given chat service.
func NewServer(port int, service ChatService, logger zerolog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:  router,
		service: service,
		port:    port,
		logger:  logger.With().Str("component", "api").Logger(),
	}

	router.Get("/health", s.health)
	router.Route("/chat", func(r chi.Router) {
		r.Post("/", s.chat)
		r.Get("/history", s.history)
		r.Delete("/history", s.clearHistory)
		r.Get("/status", s.status)
		r.Get("/metrics", s.metrics)
	})

	return s
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Start blocks serving HTTP on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info().Str("addr", addr).Msg("api server starting")
	return http.ListenAndServe(addr, s.router)
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response             string  `json:"response"`
	RelevantRecipesCount int     `json:"relevant_recipes_count"`
	RecipeIDs            []int64 `json:"recipe_ids"`
	SearchIntent         string  `json:"search_intent"`
	Success              bool    `json:"success"`
}

type historyResponse struct {
	History []ports.ConversationEntry `json:"history"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := s.service.Chat(r.Context(), userID, req.Message)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, chatResponse{
			Response:             result.Response,
			RelevantRecipesCount: len(result.RecipeIDs),
			RecipeIDs:            result.RecipeIDs,
			SearchIntent:         result.IntentType,
			Success:              result.Success,
		})
	case errors.Is(err, assistant.ErrEmptyMessage):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message cannot be empty"})
	case errors.Is(err, context.Canceled):
		// Client is gone; nothing useful to write.
	default:
		s.logger.Error().Err(err).Str("user_id", userID).Msg("chat turn failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to process chat message"})
	}
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}

	entries := s.service.History(userID, limit)
	if entries == nil {
		entries = []ports.ConversationEntry{}
	}
	writeJSON(w, http.StatusOK, historyResponse{History: entries})
}

func (s *Server) clearHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	s.service.ClearHistory(userID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "conversation history cleared"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Status(r.Context()))
}

func (s *Server) metrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Metrics())
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// userID pulls the caller identity set by the authenticating proxy.
func (s *Server) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing X-User-ID header"})
		return "", false
	}
	return userID, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
