package api

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Server wires the slide generator and the identity endpoint into one
// HTTP listener.
type Server struct {
	generator *SlideGenerator
	authToken string
	userName  string
	port      int
	logger    *zap.Logger
}

func NewServer(generator *SlideGenerator, authToken, userName string, port int, logger *zap.Logger) *Server {
	return &Server{
		generator: generator,
		authToken: authToken,
		userName:  userName,
		port:      port,
		logger:    logger,
	}
}

// Start registers the routes and blocks serving HTTP.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/generate-slides", s.generator.GenerateHandler)
	mux.Handle("/user", s.requireAuth(http.HandlerFunc(s.userHandler)))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	s.logger.Info("starting api server", zap.Int("port", s.port))
	return http.ListenAndServe(fmt.Sprintf(":%d", s.port), mux)
}

// requireAuth gates a handler behind the configured bearer token. With
// no token configured the route stays closed.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if s.authToken == "" || token != s.authToken {
			writeError(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// userHandler returns the authenticated caller's identity.
func (s *Server) userHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":   1,
		"name": s.userName,
	})
}
