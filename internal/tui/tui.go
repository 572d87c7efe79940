package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-auth-keeper/internal/adapter"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/models"
)

type TUI struct {
	auth      adapter.AuthClient
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(auth adapter.AuthClient, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{auth: auth, buildInfo: buildInfo, logger: logger}
}

// Run shows the interactive client until the user quits or ctx ends. A
// token already set on the auth client opens the profile screen directly.
func (t *TUI) Run(ctx context.Context) error {
	root := t.newRoot(ctx)

	_, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return ctx.Err()
}

func (t *TUI) newRoot(ctx context.Context) RootModel {
	signedIn := func() bool { return t.auth.Token() != "" }

	pages := map[string]tea.Model{
		pageMenu:     newMenuModel(signedIn),
		pageLogin:    newLoginModel(ctx, t.auth),
		pageRegister: newRegisterModel(ctx, t.auth),
		pageForgot:   newForgotPasswordModel(ctx, t.auth),
		pageReset:    newResetPasswordModel(ctx, t.auth),
		pagePassword: newChangePasswordModel(ctx, t.auth),
		pageProfile:  newProfileModel(ctx, t.auth),
	}

	start := pageMenu
	if signedIn() {
		start = pageProfile
	}
	t.logger.Debug().Str("page", start).Msg("starting interactive client")

	return NewRootModel(pages, start, t.buildInfo)
}
