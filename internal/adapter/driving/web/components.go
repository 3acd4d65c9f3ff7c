package web

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	vm "github.com/ericfisherdev/sessionpanel/internal/adapter/driving/web/viewmodel"
)

// htmlWriter accumulates the first write error so components can be written
// as straight-line markup.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) render(c templ.Component) {
	if h.err == nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

// Page renders the full HTML document: header, both panels and footer.
func Page(page vm.PageViewModel) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(page.Title)
		h.raw(`</title><link rel="stylesheet" href="/static/panel.css"></head><body>`)
		h.render(Header(page.Brand))
		h.raw(`<main class="container">`)
		h.render(LoginPanel(page.Login, page.CSRFToken))
		h.render(ProtectedPanel(page.Protected, page.CSRFToken))
		h.raw(`</main>`)
		h.render(Footer(page.Brand, page.Year))
		h.raw(`</body></html>`)
	})
}

// Header renders the top navigation bar.
func Header(brand string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<nav class="menu" role="navigation" aria-label="Main navigation"><div class="container">`)
		h.raw(`<a href="/" class="header item" aria-label="Home">`)
		h.text(brand)
		h.raw(`</a><a href="/#protected" class="item">Customers</a></div></nav>`)
	})
}

// Footer renders the page footer with the copyright year.
func Footer(brand string, year int) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<footer class="footer"><div class="container"><p>&copy; `)
		h.text(fmt.Sprintf("%d %s", year, brand))
		h.raw(`. Demo application for educational purposes.</p></div></footer>`)
	})
}

// Banner renders a panel message box.
func Banner(b *vm.BannerViewModel) templ.Component {
	return component(func(h *htmlWriter) {
		if b == nil {
			return
		}
		h.raw(`<div class="message `)
		h.text(b.Tone)
		h.raw(`"`)
		if b.Tone == vm.ToneNegative || b.Tone == vm.TonePositive {
			h.raw(` role="alert"`)
		}
		h.raw(`><div class="header">`)
		h.text(b.Header)
		h.raw(`</div><p>`)
		h.text(b.Message)
		h.raw(`</p>`)
		if b.Tip != "" {
			h.raw(`<p><strong>Tip:</strong> `)
			h.text(b.Tip)
			h.raw(`</p>`)
		}
		h.raw(`</div>`)
	})
}

func csrfField(h *htmlWriter, token string) {
	h.raw(`<input type="hidden" name="` + csrfFormField + `" value="`)
	h.text(token)
	h.raw(`">`)
}

// LoginPanel renders the login form, or the current session and a logout
// button when logged in.
func LoginPanel(p vm.LoginPanelViewModel, csrf string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section class="segment" id="login"><h2 class="header">`)
		if p.LoggedIn {
			h.raw(`Logged In`)
		} else {
			h.raw(`Login`)
		}
		h.raw(`</h2>`)
		h.render(Banner(p.Banner))

		if p.LoggedIn {
			h.raw(`<div class="message info"><div class="header">Currently Logged In</div>`)
			h.raw(`<p><strong>Username:</strong> `)
			h.text(p.Identity)
			h.raw(`</p><p><strong>Token:</strong> <code class="token">`)
			h.text(p.TokenPreview)
			h.raw(`</code></p>`)
			if p.ExpiresAt != "" {
				h.raw(`<p><strong>Expires:</strong> `)
				h.text(p.ExpiresAt)
				h.raw(`</p>`)
			}
			h.raw(`</div><form method="post" action="/logout">`)
			csrfField(h, csrf)
			h.raw(`<button type="submit" class="button red" aria-label="Logout">Logout</button></form></section>`)
			return
		}

		h.raw(`<form class="form" method="post" action="/login" aria-label="Login form">`)
		csrfField(h, csrf)
		h.raw(`<div class="field"><label for="username">Username</label>`)
		h.raw(`<input type="text" id="username" name="username" required aria-required="true" value="`)
		h.text(p.DefaultUsername)
		h.raw(`"></div><div class="field"><label for="password">Password</label>`)
		h.raw(`<input type="password" id="password" name="password" placeholder="Enter password" required aria-required="true">`)
		h.raw(`</div><button type="submit" class="button primary" aria-label="Login">Login</button></form>`)
		h.raw(`<div class="message"><div class="header">Demo Credentials</div>`)
		h.render(templ.Raw(p.DemoHTML))
		h.raw(`</div></section>`)
	})
}

// ProtectedPanel renders the fetch button, the outcome banner and the
// customers table.
func ProtectedPanel(p vm.ProtectedPanelViewModel, csrf string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section class="segment" id="protected"><h2 class="header">Protected Customer Data`)
		h.raw(`<div class="sub header">Requires authentication token</div></h2>`)
		h.raw(`<form method="post" action="/customers/fetch">`)
		csrfField(h, csrf)
		if p.InFlight {
			h.raw(`<button type="submit" class="button primary loading" disabled>Fetching...</button>`)
		} else {
			h.raw(`<button type="submit" class="button primary" aria-label="Fetch protected customers">Fetch Protected Customers</button>`)
		}
		h.raw(`</form>`)
		h.render(Banner(p.Banner))

		if len(p.Rows) > 0 {
			h.raw(`<table class="table" aria-label="Protected customers table"><thead><tr>`)
			h.raw(`<th scope="col">Customer ID</th><th scope="col">Customer Name</th></tr></thead><tbody>`)
			for _, row := range p.Rows {
				h.raw(`<tr><td><span class="label">`)
				h.text(row.ID)
				h.raw(`</span></td><td><strong>`)
				h.text(row.Name)
				h.raw(`</strong></td></tr>`)
			}
			h.raw(`</tbody></table>`)
		}

		if p.ShowIdleHelp {
			h.raw(`<div class="message info"><div class="header">`)
			h.text(p.IdleHeader)
			h.raw(`</div>`)
			h.render(templ.Raw(p.HelpHTML))
			h.raw(`</div>`)
		}
		h.raw(`</section>`)
	})
}
