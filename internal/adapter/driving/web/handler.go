// Package web implements the HTML panel driving adapter using templ components.
package web

import (
	"log/slog"
	"net/http"
	"time"

	vm "github.com/ericfisherdev/sessionpanel/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/sessionpanel/internal/application"
)

const brand = "Northwind Traders"

// Handler is the web panel driving adapter. Form posts run the matching
// application operation and redirect back to the page, which renders the
// stored outcome.
type Handler struct {
	auth      *application.AuthService
	protected *application.ProtectedResourceClient
	baseURL   string
	logger    *slog.Logger
	now       func() time.Time
}

// NewHandler creates a Handler with all required dependencies. baseURL is
// shown in the protected panel help text.
func NewHandler(
	auth *application.AuthService,
	protected *application.ProtectedResourceClient,
	baseURL string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		auth:      auth,
		protected: protected,
		baseURL:   baseURL,
		logger:    logger,
		now:       time.Now,
	}
}

// Page renders the full panel page.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	session, err := h.auth.View(r.Context())
	if err != nil {
		h.logger.Error("failed to read session", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	page := vm.PageViewModel{
		Title:     brand + " - Session",
		Brand:     brand,
		Year:      h.now().Year(),
		CSRFToken: csrfToken(w, r),
		Login:     toLoginPanelViewModel(session),
		Protected: toProtectedPanelViewModel(h.protected.View(), h.baseURL),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := Page(page).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// Login handles the login form submission.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	// The outcome, including validation failures, is kept by the auth service
	// and shown after the redirect.
	_, _ = h.auth.Login(r.Context(), r.FormValue("username"), r.FormValue("password"))
	h.backToPanel(w, r, "login")
}

// Logout handles the logout button.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	if err := h.auth.Logout(r.Context()); err != nil {
		h.logger.Error("failed to log out", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.backToPanel(w, r, "login")
}

// FetchCustomers handles the fetch button of the protected panel.
func (h *Handler) FetchCustomers(w http.ResponseWriter, r *http.Request) {
	if !h.checkCSRF(w, r) {
		return
	}

	h.protected.Fetch(r.Context())
	h.backToPanel(w, r, "protected")
}

func (h *Handler) checkCSRF(w http.ResponseWriter, r *http.Request) bool {
	if validateCSRF(r) {
		return true
	}
	h.logger.Warn("csrf validation failed", "path", r.URL.Path)
	http.Error(w, "forbidden", http.StatusForbidden)
	return false
}

func (h *Handler) backToPanel(w http.ResponseWriter, r *http.Request, anchor string) {
	http.Redirect(w, r, "/#"+anchor, http.StatusSeeOther)
}
