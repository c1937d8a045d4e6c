// Package api exposes the animation library over a small JSON HTTP API
// so external tools (editors, stream overlays) can drive the same
// operations as the CLI and TUI.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/mizuki/animlib/internal/errors"
	"github.com/mizuki/animlib/internal/models"
	"github.com/mizuki/animlib/internal/service"
)

// Server serves the animation library HTTP API.
type Server struct {
	service      *service.Service
	errorHandler *apperrors.HTTPErrorHandler
	port         int
	server       *http.Server
}

// NewServer creates an API server on the given port.
func NewServer(svc *service.Service, port int) *Server {
	return &Server{
		service:      svc,
		errorHandler: apperrors.NewHTTPErrorHandler(true),
		port:         port,
	}
}

// Start begins serving HTTP requests and blocks until the server stops.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/animations", s.withMiddleware(s.handleAnimations))
	mux.HandleFunc("/api/v1/animations/", s.withMiddleware(s.handleAnimationByFile))
	mux.HandleFunc("/api/v1/search", s.withMiddleware(s.handleSearch))
	mux.HandleFunc("/api/v1/presets", s.withMiddleware(s.handlePresets))
	mux.HandleFunc("/api/v1/refresh", s.withMiddleware(s.handleRefresh))
	mux.HandleFunc("/api/v1/health", s.withMiddleware(s.handleHealth))

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("animation API listening on http://localhost:%d", s.port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// withMiddleware wraps a handler with logging, CORS, JSON content type,
// and panic recovery.
func (s *Server) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[HTTP] panic in %s %s: %v", r.Method, r.URL.Path, rec)
				s.errorHandler.WriteHTTPError(w, apperrors.InternalError("internal server error"))
			}
		}()

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		handler(w, r)

		log.Printf("[HTTP] %s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	}
}

func (s *Server) writeData(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// saveRequest is the body for POST /api/v1/animations.
type saveRequest struct {
	FileName string           `json:"file_name"`
	Document *models.Document `json:"document"`
}

// presetRequest is the body for POST /api/v1/presets.
type presetRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	FileName    string             `json:"file_name"`
	Parameters  map[string]float64 `json:"parameters"`
}

func (s *Server) handleAnimations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		entries := s.service.List()
		if entries == nil {
			entries = []models.CatalogEntry{}
		}
		s.writeData(w, http.StatusOK, entries)
	case http.MethodPost:
		var req saveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorHandler.WriteHTTPError(w, apperrors.NewAppError(apperrors.ErrCodeInvalidInput, "malformed request body"))
			return
		}
		if req.FileName == "" || req.Document == nil {
			s.errorHandler.WriteHTTPError(w, apperrors.NewAppError(apperrors.ErrCodeInvalidInput, "file_name and document are required"))
			return
		}
		saved, err := s.service.Save(req.Document, req.FileName)
		if err != nil {
			s.errorHandler.WriteHTTPError(w, err)
			return
		}
		s.writeData(w, http.StatusCreated, saved)
	default:
		s.errorHandler.WriteHTTPError(w, apperrors.InvalidCommandError(r.Method, "method not allowed"))
	}
}

func (s *Server) handleAnimationByFile(w http.ResponseWriter, r *http.Request) {
	fileName := strings.TrimPrefix(r.URL.Path, "/api/v1/animations/")
	if fileName == "" || strings.Contains(fileName, "/") {
		s.errorHandler.WriteHTTPError(w, apperrors.NewAppError(apperrors.ErrCodeInvalidInput, "bad animation file name"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		doc, err := s.service.Load(fileName)
		if err != nil {
			s.errorHandler.WriteHTTPError(w, err)
			return
		}
		s.writeData(w, http.StatusOK, doc)
	case http.MethodDelete:
		if err := s.service.Delete(fileName); err != nil {
			s.errorHandler.WriteHTTPError(w, err)
			return
		}
		s.writeData(w, http.StatusOK, map[string]string{"deleted": fileName})
	default:
		s.errorHandler.WriteHTTPError(w, apperrors.InvalidCommandError(r.Method, "method not allowed"))
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorHandler.WriteHTTPError(w, apperrors.InvalidCommandError(r.Method, "method not allowed"))
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		s.errorHandler.WriteHTTPError(w, apperrors.NewAppError(apperrors.ErrCodeInvalidInput, "query parameter q is required"))
		return
	}
	results := s.service.Search(query)
	if results == nil {
		results = []models.CatalogEntry{}
	}
	s.writeData(w, http.StatusOK, results)
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.errorHandler.WriteHTTPError(w, apperrors.InvalidCommandError(r.Method, "method not allowed"))
		return
	}
	var req presetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorHandler.WriteHTTPError(w, apperrors.NewAppError(apperrors.ErrCodeInvalidInput, "malformed request body"))
		return
	}
	saved, err := s.service.SavePreset(req.Parameters, req.Name, req.Description, req.FileName)
	if err != nil {
		s.errorHandler.WriteHTTPError(w, err)
		return
	}
	s.writeData(w, http.StatusCreated, saved)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.errorHandler.WriteHTTPError(w, apperrors.InvalidCommandError(r.Method, "method not allowed"))
		return
	}
	s.service.Refresh()
	s.writeData(w, http.StatusOK, map[string]int{"animations": len(s.service.List())})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"directory":  s.service.Dir(),
		"animations": len(s.service.List()),
	})
}
