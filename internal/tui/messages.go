package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-auth-keeper/models"
)

// Page names known to [RootModel].
const (
	pageMenu     = "menu"
	pageLogin    = "login"
	pageRegister = "register"
	pageForgot   = "forgot"
	pageReset    = "reset"
	pagePassword = "password"
	pageProfile  = "profile"
)

// NavigateTo switches the active page. Payload, when set, is delivered to
// the new page right after its Init command.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// noticeMsg carries a one-line success message for the page being opened.
type noticeMsg struct {
	text string
}

// formDone is the outcome of a submitted form. page names the form so a
// late result never lands on another page.
type formDone struct {
	page   string
	notice string
	err    error
}

type profileLoaded struct {
	user models.PublicUser
	err  error
}

type adminLoaded struct {
	content models.AdminContent
	err     error
}

type tokenCopied struct {
	err error
}
