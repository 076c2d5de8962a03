// Package callback runs the local HTTP listener that receives OAuth2
// authorization redirects and hands them to the matching platform's flow
// engine.
package callback

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/eventdeck-labs/eventdeck-cli/internal/core/domain"
	"github.com/eventdeck-labs/eventdeck-cli/internal/core/ports/driving"
	"github.com/eventdeck-labs/eventdeck-cli/internal/logger"
)

// Server receives authorization redirects on
// /auth/{platform}/callback and exposes a /health probe.
type Server struct {
	mu       sync.Mutex
	host     string
	port     int
	flows    map[domain.PlatformType]driving.AuthFlow
	server   *http.Server
	listener net.Listener
}

// NewServer builds the callback server for the given flows. Port 0 picks a
// free port; the bound port is available from Port after Start.
func NewServer(host string, port int, flows map[domain.PlatformType]driving.AuthFlow) *Server {
	return &Server{
		host:  host,
		port:  port,
		flows: flows,
	}
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/{platform}/callback", s.handleCallback)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.listener = listener
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Get().Error().Err(err).Msg("callback server stopped")
		}
	}()

	logger.Get().Info().Str("addr", listener.Addr().String()).Msg("callback server listening")
	return nil
}

// Stop shuts the server down, allowing in-flight exchanges to finish.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Port returns the bound port.
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	platform := domain.PlatformType(r.PathValue("platform"))
	flow, ok := s.flows[platform]
	if !ok {
		writePage(w, http.StatusNotFound, "Unknown platform",
			fmt.Sprintf("No login flow is registered for %q.", html.EscapeString(string(platform))))
		return
	}

	q := r.URL.Query()
	if errParam := q.Get("error"); errParam != "" {
		desc := q.Get("error_description")
		logger.Get().Warn().
			Str("platform", string(platform)).
			Str("error", errParam).
			Msg("authorization denied by platform")
		writePage(w, http.StatusBadRequest, "Authorization failed",
			html.EscapeString(errParam+": "+desc))
		return
	}

	code := q.Get("code")
	if code == "" {
		writePage(w, http.StatusBadRequest, "Authorization failed", "No authorization code received.")
		return
	}

	if err := flow.HandleCallback(r.Context(), code, q.Get("state")); err != nil {
		logger.Get().Error().Err(err).Str("platform", string(platform)).Msg("callback exchange failed")
		switch {
		case errors.Is(err, domain.ErrAuthState):
			writePage(w, http.StatusBadRequest, "Authorization failed",
				"The login attempt is unknown or expired. Start the login again.")
		default:
			writePage(w, http.StatusInternalServerError, "Authorization failed",
				"Could not complete the token exchange. Check the server logs.")
		}
		return
	}

	writePage(w, http.StatusOK, "Authorized!",
		"You can close this tab and return to your AI assistant.")
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}

func writePage(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>eventdeck</title></head>
<body style="font-family: sans-serif; text-align: center; margin-top: 15%%">
<h1>%s</h1>
<p>%s</p>
</body>
</html>`, title, message)
}
