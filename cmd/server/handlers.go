package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/himanishpuri/SongSearch/pkg/logger"
	"github.com/himanishpuri/SongSearch/pkg/songsearch"
	"github.com/himanishpuri/SongSearch/pkg/songsearch/catalog"
	"github.com/himanishpuri/SongSearch/pkg/songsearch/source"
)

const version = "1.0.0"

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	service songsearch.Service
	config  *ServerConfig
	log     *logger.Logger
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	SourceURL      string
	Encoding       string
	FetchTimeout   time.Duration
	AllowedOrigins []string
	DevStatic      bool
}

// NewServer creates a new server instance
func NewServer(service songsearch.Service, config *ServerConfig) *Server {
	return &Server{
		service: service,
		config:  config,
		log:     logger.GetLogger().With("[http]"),
	}
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// handleInfo handles GET /api
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api" && r.URL.Path != "/api/" {
		s.respondError(w, http.StatusNotFound, "Not found")
		return
	}

	s.respondJSON(w, http.StatusOK, InfoResponse{
		Service:  "SongSearch API",
		Version:  version,
		PageSize: catalog.PageSize,
		Encoding: s.config.Encoding,
		Endpoints: map[string]string{
			"health": "GET /health",
			"search": "GET /api/search?query={query}&page={page}",
			"legacy": "GET /.netlify/functions/search?query={query}&page={page}",
		},
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status: "healthy",
		Time:   time.Now().Format(time.RFC3339),
	})
}

// handleSearch handles GET /api/search?query=...&page=...
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	params := r.URL.Query()
	query := params.Get("query")
	if query == "" {
		s.respondError(w, http.StatusBadRequest, msgQueryRequired)
		return
	}

	page := 1
	if raw := strings.TrimSpace(params.Get("page")); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, msgInvalidPage)
			return
		}
		page = p
	}

	result, err := s.service.Search(r.Context(), query, page)
	if err != nil {
		var statusErr *source.StatusError
		if errors.As(err, &statusErr) {
			s.log.Warnf("Catalog host returned %d", statusErr.StatusCode)
			s.respondError(w, statusErr.StatusCode, msgUpstreamFailed)
			return
		}
		s.log.Errorf("Search failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}
