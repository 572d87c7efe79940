package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const uiDivider = "──────────────────────────────────────────────────────"

// renderPage lays out a screen: title, divider, body, divider, key help.
func renderPage(title, body, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(body) == "" {
		body = "-"
	}
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	help := "ctrl+c: quit"
	if strings.TrimSpace(hotKeys) != "" {
		help = hotKeys + " │ " + help
	}
	b.WriteString(helpStyle.Render(help))

	return appStyle.Render(b.String())
}

// renderRows prints label/value pairs as a two-column table.
func renderRows(rows [][2]string) string {
	width := 0
	for _, row := range rows {
		width = max(width, lipgloss.Width(row[0]))
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(row[0])
		b.WriteString(strings.Repeat(" ", width-lipgloss.Width(row[0])))
		b.WriteString(" │ ")
		b.WriteString(row[1])
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderStatus(notice, errMsg string) string {
	switch {
	case errMsg != "":
		return "\n\n" + errorStyle.Render("Error: "+errMsg)
	case notice != "":
		return "\n\n" + noticeStyle.Render("OK: "+notice)
	default:
		return ""
	}
}
