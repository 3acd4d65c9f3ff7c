// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// Banner tones map to panel message styles.
const (
	TonePositive = "positive"
	ToneNegative = "negative"
	ToneInfo     = "info"
	ToneNeutral  = "neutral"
)

// BannerViewModel is a message box shown at the top of a panel.
type BannerViewModel struct {
	Tone    string
	Header  string
	Message string
	Tip     string // optional follow-up hint, rendered under Message
}

// PageViewModel holds everything the full page layout renders.
type PageViewModel struct {
	Title     string
	Brand     string
	Year      int
	CSRFToken string
	Login     LoginPanelViewModel
	Protected ProtectedPanelViewModel
}

// LoginPanelViewModel holds presentation-ready data for the login panel.
type LoginPanelViewModel struct {
	LoggedIn        bool
	Identity        string
	TokenPreview    string // first characters of the token followed by "..."
	ExpiresAt       string // empty when the token carries no readable expiry
	Banner          *BannerViewModel
	DefaultUsername string
	DemoHTML        string // sanitized HTML
}

// CustomerRowViewModel is one row of the protected customers table.
type CustomerRowViewModel struct {
	ID   string
	Name string
}

// ProtectedPanelViewModel holds presentation-ready data for the protected panel.
type ProtectedPanelViewModel struct {
	LoggedIn     bool
	InFlight     bool
	Banner       *BannerViewModel
	Rows         []CustomerRowViewModel
	ShowIdleHelp bool
	IdleHeader   string
	HelpHTML     string // sanitized HTML
}
