package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// field describes one input of a form.
type field struct {
	label       string
	placeholder string
	secret      bool
	charLimit   int
}

// submitFunc performs the form's request and returns the success notice.
type submitFunc func(ctx context.Context, values []string) (string, error)

// formModel is a column of labelled inputs submitted with enter. Secret
// inputs use masked echo. Values are trimmed, except secrets which are sent
// exactly as typed. On success the form clears itself and navigates to
// successPage with the notice.
type formModel struct {
	ctx context.Context

	page        string
	title       string
	fields      []field
	inputs      []textinput.Model
	confirmLast bool
	submit      submitFunc
	successPage string
	backPage    string

	focus      int
	submitting bool
	errMsg     string
}

func newFormModel(ctx context.Context, page, title string, fields []field, submit submitFunc) *formModel {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Placeholder = f.placeholder
		in.Width = 40
		in.CharLimit = 256
		if f.charLimit > 0 {
			in.CharLimit = f.charLimit
		}
		if f.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		inputs[i] = in
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}

	return &formModel{
		ctx:         ctx,
		page:        page,
		title:       title,
		fields:      fields,
		inputs:      inputs,
		submit:      submit,
		successPage: pageMenu,
		backPage:    pageMenu,
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation.
func (m *formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(formDone); ok {
		if done.page != m.page {
			return m, nil
		}
		m.submitting = false
		if done.err != nil {
			m.errMsg = humanizeError(done.err)
			return m, nil
		}
		m.reset()
		return m, navigate(m.successPage, noticeMsg{text: done.notice})
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.reset()
			return m, navigate(m.backPage, nil)
		case key.Matches(keyMsg, keys.tab):
			m.moveFocus(1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.moveFocus(-1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			return m, m.trySubmit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *formModel) View() string {
	rows := make([][2]string, len(m.fields))
	for i, f := range m.fields {
		rows[i] = [2]string{f.label, "[" + m.inputs[i].View() + "]"}
	}

	var b strings.Builder
	b.WriteString(renderRows(rows))
	if m.submitting {
		b.WriteString("\n\n[Sending...]")
	} else {
		b.WriteString("\n\n[Submit]")
	}
	b.WriteString(renderStatus("", m.errMsg))

	return renderPage(m.title, b.String(), "esc: back │ tab: next field │ enter: submit")
}

func (m *formModel) values() []string {
	values := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		if m.fields[i].secret {
			values[i] = in.Value()
		} else {
			values[i] = strings.TrimSpace(in.Value())
		}
	}
	return values
}

func (m *formModel) trySubmit() tea.Cmd {
	if m.submitting {
		return nil
	}

	values := m.values()
	for _, v := range values {
		if v == "" {
			m.errMsg = errFieldsRequired.Error()
			return nil
		}
	}
	if m.confirmLast {
		n := len(values)
		if values[n-1] != values[n-2] {
			m.errMsg = errPasswordMismatch.Error()
			return nil
		}
		values = values[:n-1]
	}

	m.errMsg = ""
	m.submitting = true

	ctx, submit, page := m.ctx, m.submit, m.page
	return func() tea.Msg {
		notice, err := submit(ctx, values)
		return formDone{page: page, notice: notice, err: err}
	}
}

func (m *formModel) reset() {
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
	m.focus = 0
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	m.submitting = false
	m.errMsg = ""
}

func (m *formModel) moveFocus(step int) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + step + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func navigate(page string, payload tea.Msg) tea.Cmd {
	return func() tea.Msg { return NavigateTo{Page: page, Payload: payload} }
}
