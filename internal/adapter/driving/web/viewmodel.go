package web

import (
	"errors"
	"fmt"
	"time"

	vm "github.com/ericfisherdev/sessionpanel/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/sessionpanel/internal/application"
	"github.com/ericfisherdev/sessionpanel/internal/domain/model"
)

const (
	tokenPreviewLength = 50
	defaultUsername    = "user"
	notAvailable       = "N/A"
)

const demoCredentialsMarkdown = `**Username:** user

**Password:** user

Note: these are example credentials. Check the backend API documentation for actual test accounts.`

// toLoginPanelViewModel converts the auth service view into the login panel model.
func toLoginPanelViewModel(view application.SessionView) vm.LoginPanelViewModel {
	panel := vm.LoginPanelViewModel{
		LoggedIn:        view.Session.LoggedIn(),
		DefaultUsername: defaultUsername,
		DemoHTML:        RenderMarkdown(demoCredentialsMarkdown),
	}

	if panel.LoggedIn {
		panel.Identity = view.Session.Identity
		if panel.Identity == "" {
			panel.Identity = "Unknown"
		}
		panel.TokenPreview = previewToken(view.Session.Token)
		if view.TokenInfo != nil && !view.TokenInfo.ExpiresAt.IsZero() {
			panel.ExpiresAt = view.TokenInfo.ExpiresAt.UTC().Format(time.RFC1123)
		}
	}

	switch view.LastAttempt.Status {
	case model.StatusFailed:
		panel.Banner = &vm.BannerViewModel{
			Tone:    vm.ToneNegative,
			Header:  "Login Failed",
			Message: loginErrorMessage(view.LastAttempt.Err),
		}
	case model.StatusSucceeded:
		if panel.LoggedIn {
			panel.Banner = &vm.BannerViewModel{
				Tone:    vm.TonePositive,
				Header:  "Success",
				Message: "Login successful! You can now access protected endpoints.",
			}
		}
	}

	return panel
}

// toProtectedPanelViewModel converts the protected client view into the panel model.
func toProtectedPanelViewModel(view application.ProtectedView, baseURL string) vm.ProtectedPanelViewModel {
	res := view.Result
	panel := vm.ProtectedPanelViewModel{
		LoggedIn: view.LoggedIn,
		InFlight: res.Status == model.StatusInFlight,
	}

	switch {
	case res.Status == model.StatusIdle:
		panel.ShowIdleHelp = true
		panel.IdleHeader = "Test Without Token"
		if view.LoggedIn {
			panel.IdleHeader = "Ready to Fetch"
		}
		panel.HelpHTML = RenderMarkdown(idleHelpMarkdown(view.LoggedIn, baseURL))
	case res.Status == model.StatusFailed:
		panel.Banner = protectedErrorBanner(res.Err)
	case res.Empty():
		panel.Banner = &vm.BannerViewModel{
			Tone:    vm.ToneNeutral,
			Header:  "No Data",
			Message: "No customers returned from protected endpoint.",
		}
	case res.Status == model.StatusSucceeded:
		panel.Banner = &vm.BannerViewModel{
			Tone:   vm.TonePositive,
			Header: "Success!",
			Message: fmt.Sprintf("Successfully fetched %d customers from protected endpoint (showing first %d).",
				res.Total, len(res.Items)),
		}
		panel.Rows = make([]vm.CustomerRowViewModel, 0, len(res.Items))
		for _, c := range res.Items {
			panel.Rows = append(panel.Rows, toCustomerRow(c))
		}
	}

	return panel
}

func toCustomerRow(c model.Customer) vm.CustomerRowViewModel {
	row := vm.CustomerRowViewModel{ID: c.ID(), Name: c.Name()}
	if row.ID == "" {
		row.ID = notAvailable
	}
	if row.Name == "" {
		row.Name = notAvailable
	}
	return row
}

func idleHelpMarkdown(loggedIn bool, baseURL string) string {
	endpoint := fmt.Sprintf("Click the button above to fetch customers from the protected endpoint.\n\n**Endpoint:** `GET %s/customers`\n\n", baseURL)
	if loggedIn {
		return endpoint + "**Header:** `Authorization: Bearer {token}`\n\nYou are logged in. This should return **200 OK**."
	}
	return endpoint + "**Header:** `None (no token)`\n\nYou are NOT logged in. This will return **401 Unauthorized**."
}

func previewToken(token string) string {
	if len(token) <= tokenPreviewLength {
		return token + "..."
	}
	return token[:tokenPreviewLength] + "..."
}

func loginErrorMessage(err error) string {
	var httpErr *model.UnexpectedHTTPError
	switch model.ErrorKind(err) {
	case model.KindValidation:
		return "Username and password are required"
	case model.KindInvalidCredentials:
		return "Invalid username or password"
	case model.KindEndpointNotFound:
		return "Login endpoint not found. Check backend API documentation."
	case model.KindUnexpectedHTTPError:
		errors.As(err, &httpErr)
		return fmt.Sprintf("Login failed: %d %s", httpErr.Status, httpErr.StatusText)
	case model.KindMalformedResponse:
		return "No access token received from server"
	case model.KindTimeout:
		return "The backend did not respond in time. Try again."
	case model.KindUnreachable:
		return "Cannot reach the backend. Check that it is running."
	default:
		return "Login could not be completed."
	}
}

func protectedErrorBanner(err error) *vm.BannerViewModel {
	banner := &vm.BannerViewModel{Tone: vm.ToneNegative, Header: "Error"}

	var httpErr *model.UnexpectedHTTPError
	switch model.ErrorKind(err) {
	case model.KindUnauthorized:
		banner.Message = "Unauthorized: Invalid or expired token (401)"
		banner.Tip = "Your token might be expired or invalid. Try logging in again."
	case model.KindForbidden:
		banner.Message = "Forbidden: You do not have permission to access this resource (403)"
	case model.KindEndpointNotFound:
		banner.Message = "Protected endpoint not found (404). The backend may not have protected customer endpoints, or they use a different path."
	case model.KindUnexpectedHTTPError:
		errors.As(err, &httpErr)
		banner.Message = fmt.Sprintf("HTTP error: status %d %s", httpErr.Status, httpErr.StatusText)
	case model.KindMalformedResponse:
		banner.Message = "The backend returned a response that could not be read."
	case model.KindTimeout:
		banner.Message = "The backend did not respond in time. Try again."
	case model.KindUnreachable:
		banner.Message = "Cannot reach the backend. Check that it is running."
	default:
		banner.Message = "Customers could not be fetched."
	}

	return banner
}
