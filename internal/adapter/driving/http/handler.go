// Package httphandler implements the JSON status API driving adapter.
package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/ericfisherdev/sessionpanel/internal/application"
)

// Handler is the HTTP driving adapter that serves the status API.
type Handler struct {
	auth   *application.AuthService
	logger *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(auth *application.AuthService, logger *slog.Logger) *Handler {
	return &Handler{
		auth:   auth,
		logger: logger,
	}
}

// RegisterAPIRoutes registers the status API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/session", h.Session)
}

// ApplyMiddleware wraps the handler with logging and recovery middleware.
func ApplyMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, next)
	wrapped = loggingMiddleware(logger, wrapped)
	return wrapped
}

// Health reports that the process is serving requests.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Session reports whether a session is stored. The token is never exposed.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	sess, err := h.auth.Current(r.Context())
	if err != nil {
		h.logger.Error("failed to read session", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := SessionResponse{LoggedIn: sess.LoggedIn()}
	if resp.LoggedIn {
		resp.Identity = sess.Identity
	}
	writeJSON(w, http.StatusOK, resp)
}
