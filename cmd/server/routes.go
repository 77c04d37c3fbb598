package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/himanishpuri/SongSearch/pkg/logger"
	"github.com/himanishpuri/SongSearch/pkg/utils"
)

// setupRoutes registers all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api", s.handleInfo)
	mux.HandleFunc("/api/", s.handleInfo)

	mux.HandleFunc("/api/search", s.handleSearch)
	// Netlify function path, kept for existing frontends.
	mux.HandleFunc("/.netlify/functions/search", s.handleSearch)

	mux.Handle("/", s.staticHandler())

	return loggingMiddleware(s.log)(corsMiddleware(s.config.AllowedOrigins)(mux))
}

// corsMiddleware adds CORS headers to responses
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAll := len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowed := false
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				allowed = true
			} else {
				for _, allowedOrigin := range allowedOrigins {
					if allowedOrigin == origin {
						w.Header().Set("Access-Control-Allow-Origin", origin)
						w.Header().Add("Vary", "Origin")
						allowed = true
						break
					}
				}
			}

			if allowed {
				w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+utils.RequestIDHeader)
				w.Header().Set("Access-Control-Expose-Headers", utils.RequestIDHeader)
				w.Header().Set("Access-Control-Max-Age", "3600")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// loggingMiddleware tags each request with an id and logs its outcome
func loggingMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := utils.RequestID(r)
			w.Header().Set(utils.RequestIDHeader, id)

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(wrapped, r)

			log.Infof("%s %s -> %d (%s) from %s req=%s",
				r.Method, r.URL.RequestURI(), wrapped.statusCode,
				time.Since(start).Round(time.Millisecond), getClientIP(r), id)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The first entry is the original client.
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// Start starts the HTTP server
func (s *Server) Start() error {
	handler := s.setupRoutes()

	addr := fmt.Sprintf(":%d", s.config.Port)
	s.log.Infof("SongSearch server starting on %s", addr)
	s.log.Infof("   Catalog: %s (%s)", s.config.SourceURL, s.config.Encoding)
	s.log.Infof("   Fetch timeout: %s", s.config.FetchTimeout)
	s.log.Infof("   CORS Origins: %v", s.config.AllowedOrigins)
	s.log.Infof("Endpoints:")
	s.log.Infof("   GET    /health                       - Health check")
	s.log.Infof("   GET    /api                          - Service info")
	s.log.Infof("   GET    /api/search                   - Search songs")
	s.log.Infof("   GET    /.netlify/functions/search    - Search songs (legacy path)")
	s.log.Infof("   GET    /                             - Search page")

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
