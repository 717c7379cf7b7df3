// Package server exposes the chat query endpoint over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/imtiz/ragfolio/internal/models"
	"github.com/imtiz/ragfolio/pkg/rag"
)

const genericErrorMessage = "Something went wrong. Please try again."

type chatRequest struct {
	Messages []models.ChatMessage `json:"messages"`
}

type Server struct {
	orchestrator *rag.Orchestrator
}

func New(orchestrator *rag.Orchestrator) *Server {
	return &Server{orchestrator: orchestrator}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/api/chat", s.handleChat)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

// handleChat streams the generated answer as plain text. Every failure is
// collapsed into a generic message; internal detail is logged, not exposed.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("chat: bad request body: %v", err)
		http.Error(w, genericErrorMessage, http.StatusBadRequest)
		return
	}

	stream, err := s.orchestrator.Answer(r.Context(), req.Messages)
	if err != nil {
		log.Printf("chat: %v", err)
		if errors.Is(err, rag.ErrNoMessages) || errors.Is(err, rag.ErrEmptyMessage) {
			http.Error(w, genericErrorMessage, http.StatusBadRequest)
			return
		}
		http.Error(w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	flusher, canFlush := w.(http.Flusher)

	for chunk := range stream {
		if _, err := w.Write([]byte(chunk)); err != nil {
			log.Printf("chat: client gone: %v", err)
			return
		}
		if canFlush {
			flusher.Flush()
		}
	}
}
