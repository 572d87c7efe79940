package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-auth-keeper/internal/adapter"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// writeClipboard is swapped in tests; CI machines have no clipboard.
var writeClipboard = clipboard.WriteAll

// profileModel shows the signed-in user. From here the user can copy the
// session token, open the admin area, change the password or sign out.
type profileModel struct {
	ctx  context.Context
	auth adapter.AuthClient

	user    *models.PublicUser
	admin   *models.AdminContent
	loading bool

	notice  string
	errMsg  string
	overlay string
}

func newProfileModel(ctx context.Context, auth adapter.AuthClient) *profileModel {
	return &profileModel{ctx: ctx, auth: auth}
}

// Init reloads the profile every time the page is opened.
func (m *profileModel) Init() tea.Cmd {
	m.admin = nil
	m.overlay = ""
	return m.load()
}

func (m *profileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case noticeMsg:
		m.notice, m.errMsg = msg.text, ""
		return m, nil
	case profileLoaded:
		m.loading = false
		if msg.err != nil {
			m.user = nil
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.user = &msg.user
		return m, nil
	case adminLoaded:
		if msg.err != nil {
			m.overlay = humanizeError(msg.err)
			return m, nil
		}
		m.admin = &msg.content
		return m, nil
	case tokenCopied:
		if msg.err != nil {
			m.notice, m.errMsg = "", "copy to clipboard: "+msg.err.Error()
			return m, nil
		}
		m.notice, m.errMsg = "session token copied to clipboard", ""
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *profileModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.overlay != "" {
		if key.Matches(msg, keys.enter, keys.esc) {
			m.overlay = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.esc):
		return m, navigate(pageMenu, nil)
	case key.Matches(msg, keys.refresh):
		m.notice, m.errMsg = "", ""
		return m, m.load()
	case key.Matches(msg, keys.admin):
		return m, m.loadAdmin()
	case key.Matches(msg, keys.copy):
		return m, m.copyToken()
	case key.Matches(msg, keys.password):
		return m, navigate(pagePassword, nil)
	case key.Matches(msg, keys.logout):
		m.auth.SetToken("")
		m.user, m.admin = nil, nil
		m.notice, m.errMsg = "", ""
		return m, navigate(pageMenu, noticeMsg{text: "signed out"})
	}

	return m, nil
}

func (m *profileModel) View() string {
	if m.overlay != "" {
		return renderErrorOverlay(m.overlay)
	}

	var body string
	switch {
	case m.loading:
		body = "Loading..."
	case m.user == nil:
		body = "No profile loaded."
	default:
		rows := [][2]string{
			{"ID", m.user.ID},
			{"Email", m.user.Email},
			{"Role", string(m.user.Role)},
			{"Created", m.user.CreatedAt.Local().Format(time.DateTime)},
			{"Updated", m.user.UpdatedAt.Local().Format(time.DateTime)},
		}
		if m.admin != nil {
			rows = append(rows, [2]string{"Admin area", m.admin.Message})
		}
		body = renderRows(rows)
	}
	body += renderStatus(m.notice, m.errMsg)

	return renderPage("PROFILE", body, "c: copy token │ a: admin │ p: password │ r: refresh │ l: log out │ esc: menu")
}

func (m *profileModel) load() tea.Cmd {
	m.loading = true
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		user, err := auth.Profile(ctx)
		return profileLoaded{user: user, err: err}
	}
}

func (m *profileModel) loadAdmin() tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		content, err := auth.Admin(ctx)
		return adminLoaded{content: content, err: err}
	}
}

func (m *profileModel) copyToken() tea.Cmd {
	token := m.auth.Token()
	return func() tea.Msg {
		if token == "" {
			return tokenCopied{err: errNotSignedIn}
		}
		return tokenCopied{err: writeClipboard(token)}
	}
}
