package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	title    string
	page     string
	needAuth bool
}

type MenuModel struct {
	items    []menuItem
	idx      int
	signedIn func() bool

	notice string
	errMsg string
}

func newMenuModel(signedIn func() bool) *MenuModel {
	return &MenuModel{
		items: []menuItem{
			{title: "Log in", page: pageLogin},
			{title: "Register", page: pageRegister},
			{title: "Forgot password", page: pageForgot},
			{title: "Reset password", page: pageReset},
			{title: "Profile", page: pageProfile, needAuth: true},
		},
		signedIn: signedIn,
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if notice, ok := msg.(noticeMsg); ok {
		m.notice, m.errMsg = notice.text, ""
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		item := m.items[m.idx]
		if item.needAuth && !m.signedIn() {
			m.notice, m.errMsg = "", errNotSignedIn.Error()
			return m, nil
		}
		m.notice, m.errMsg = "", ""
		return m, navigate(item.page, nil)
	}

	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder
	for i, item := range m.items {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %d │ %s\n", cursor, i+1, item.title))
	}

	body := strings.TrimRight(b.String(), "\n") + renderStatus(m.notice, m.errMsg)
	return renderPage("GO-AUTH-KEEPER", body, "enter: select │ ↑/↓: move │ v: version")
}
