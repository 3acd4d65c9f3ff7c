package web

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/sessionpanel/internal/application"
	"github.com/ericfisherdev/sessionpanel/internal/domain/model"
)

// --- Fakes ---

type memoryStore struct {
	session *model.Session
}

func (m *memoryStore) Get(_ context.Context) (*model.Session, error) { return m.session, nil }
func (m *memoryStore) Set(_ context.Context, token, identity string) error {
	m.session = &model.Session{Token: token, Identity: identity}
	return nil
}
func (m *memoryStore) Clear(_ context.Context) error {
	m.session = nil
	return nil
}

type stubBackend struct {
	token     string
	loginErr  error
	customers []model.Customer
	fetchErr  error
}

func (s *stubBackend) Login(_ context.Context, _, _ string) (string, error) {
	return s.token, s.loginErr
}

func (s *stubBackend) FetchCustomers(_ context.Context, _ string) ([]model.Customer, error) {
	return s.customers, s.fetchErr
}

const testCSRF = "test-csrf-token"

func newTestMux(t *testing.T, store *memoryStore, backend *stubBackend) *http.ServeMux {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	bus := application.NewSessionBus(logger)
	auth := application.NewAuthService(store, backend, bus, nil, logger)
	protected := application.NewProtectedResourceClient(context.Background(), store, backend, bus, logger)
	t.Cleanup(protected.Close)

	h := NewHandler(auth, protected, "http://backend.test/api", logger)
	h.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	mux := http.NewServeMux()
	RegisterRoutes(mux, h)
	return mux
}

func getPage(t *testing.T, mux http.Handler) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: testCSRF})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func postForm(mux http.Handler, path string, form url.Values, withCSRF bool) *httptest.ResponseRecorder {
	if withCSRF {
		form.Set(csrfFormField, testCSRF)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: testCSRF})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestPage_LoggedOut(t *testing.T) {
	mux := newTestMux(t, &memoryStore{}, &stubBackend{})

	body := getPage(t, mux)

	assert.Contains(t, body, `action="/login"`)
	assert.Contains(t, body, "Demo Credentials")
	assert.Contains(t, body, "Test Without Token")
	assert.Contains(t, body, "<code>None (no token)</code>")
	assert.Contains(t, body, "<code>GET http://backend.test/api/customers</code>")
	assert.Contains(t, body, "&copy; 2026 Northwind Traders")
	assert.Contains(t, body, `value="`+testCSRF+`"`)
}

func TestPage_IssuesCSRFCookie(t *testing.T) {
	mux := newTestMux(t, &memoryStore{}, &stubBackend{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, csrfCookieName, cookies[0].Name)
	assert.Contains(t, rec.Body.String(), `value="`+cookies[0].Value+`"`)
}

func TestLogin_RejectsMissingCSRF(t *testing.T) {
	store := &memoryStore{}
	mux := newTestMux(t, store, &stubBackend{token: "abc"})

	rec := postForm(mux, "/login", url.Values{"username": {"user"}, "password": {"user"}}, false)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, store.session)
}

func TestLogin_SuccessShowsSession(t *testing.T) {
	store := &memoryStore{}
	token := strings.Repeat("t", 60)
	mux := newTestMux(t, store, &stubBackend{token: token, customers: []model.Customer{{"id": 1.0}}})

	rec := postForm(mux, "/login", url.Values{"username": {"user"}, "password": {"user"}}, true)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/#login", rec.Header().Get("Location"))

	body := getPage(t, mux)
	assert.Contains(t, body, "Logged In")
	assert.Contains(t, body, "Login successful!")
	assert.Contains(t, body, strings.Repeat("t", 50)+"...")
	assert.NotContains(t, body, token)
	assert.Contains(t, body, "Ready to Fetch")
	assert.Contains(t, body, "Authorization: Bearer {token}")
}

func TestLogin_FailureShowsBanner(t *testing.T) {
	mux := newTestMux(t, &memoryStore{}, &stubBackend{loginErr: model.ErrInvalidCredentials})

	postForm(mux, "/login", url.Values{"username": {"user"}, "password": {"bad"}}, true)

	body := getPage(t, mux)
	assert.Contains(t, body, "Login Failed")
	assert.Contains(t, body, "Invalid username or password")
}

func TestLogin_ValidationShowsBanner(t *testing.T) {
	mux := newTestMux(t, &memoryStore{}, &stubBackend{token: "abc"})

	postForm(mux, "/login", url.Values{"username": {" "}, "password": {"x"}}, true)

	body := getPage(t, mux)
	assert.Contains(t, body, "Username and password are required")
}

func TestLogout_ReturnsToLoginForm(t *testing.T) {
	store := &memoryStore{session: &model.Session{Token: "abc", Identity: "user"}}
	mux := newTestMux(t, store, &stubBackend{})

	rec := postForm(mux, "/logout", url.Values{}, true)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	assert.Nil(t, store.session)
	body := getPage(t, mux)
	assert.Contains(t, body, `action="/login"`)
	assert.Contains(t, body, "Test Without Token")
}

func TestFetchCustomers_RendersTable(t *testing.T) {
	backend := &stubBackend{customers: []model.Customer{
		{"customerId": "ALFKI", "customerName": "Alfreds Futterkiste"},
		{"CustomerId": "ANATR", "CustomerName": "Ana Trujillo"},
		{"other": "x"},
	}}
	mux := newTestMux(t, &memoryStore{session: &model.Session{Token: "abc", Identity: "user"}}, backend)

	rec := postForm(mux, "/customers/fetch", url.Values{}, true)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/#protected", rec.Header().Get("Location"))

	body := getPage(t, mux)
	assert.Contains(t, body, "Successfully fetched 3 customers from protected endpoint (showing first 3).")
	assert.Contains(t, body, "ALFKI")
	assert.Contains(t, body, "Ana Trujillo")
	assert.Contains(t, body, "N/A")
	assert.NotContains(t, body, "Ready to Fetch")
}

func TestFetchCustomers_UnauthorizedShowsTip(t *testing.T) {
	mux := newTestMux(t, &memoryStore{}, &stubBackend{fetchErr: model.ErrUnauthorized})

	postForm(mux, "/customers/fetch", url.Values{}, true)

	body := getPage(t, mux)
	assert.Contains(t, body, "Unauthorized: Invalid or expired token (401)")
	assert.Contains(t, body, "Try logging in again.")
	assert.Contains(t, body, `class="message negative"`)
}

func TestFetchCustomers_EmptyIsNeutral(t *testing.T) {
	mux := newTestMux(t, &memoryStore{}, &stubBackend{customers: []model.Customer{}})

	postForm(mux, "/customers/fetch", url.Values{}, true)

	body := getPage(t, mux)
	assert.Contains(t, body, "No customers returned from protected endpoint.")
	assert.Contains(t, body, `class="message neutral"`)
	assert.NotContains(t, body, `class="message negative"`)
}

func TestFetchCustomers_EscapesBackendText(t *testing.T) {
	backend := &stubBackend{customers: []model.Customer{{"id": "1", "name": "<script>alert(1)</script>"}}}
	mux := newTestMux(t, &memoryStore{}, backend)

	postForm(mux, "/customers/fetch", url.Values{}, true)

	body := getPage(t, mux)
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestStaticAssets(t *testing.T) {
	mux := newTestMux(t, &memoryStore{}, &stubBackend{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/panel.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".segment")
}
