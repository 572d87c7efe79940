package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-auth-keeper/internal/adapter"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/models"
)

// writeClipboard is swapped in tests; CI machines have no clipboard.
var writeClipboard = clipboard.WriteAll

var _ Client = (*App)(nil)

// App wires the subcommands to the auth client, the interactive UI and
// the secret prompt.
type App struct {
	auth      adapter.AuthClient
	ui        Interactive
	secrets   SecretReader
	buildInfo models.AppBuildInfo
	out       io.Writer
	logger    *logger.Logger
}

func NewApp(auth adapter.AuthClient, token string, ui Interactive, secrets SecretReader, buildInfo models.AppBuildInfo, out io.Writer, logger *logger.Logger) *App {
	if token != "" {
		auth.SetToken(token)
	}

	return &App{
		auth:      auth,
		ui:        ui,
		secrets:   secrets,
		buildInfo: buildInfo,
		out:       out,
		logger:    logger,
	}
}

func (a *App) Run(ctx context.Context, args []string) error {
	cmd := a.RootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// RootCmd builds the command tree. Global connection flags (-s, -t) are
// parsed by the config package before the tree sees the arguments.
func (a *App) RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "go-auth-keeper-client",
		Short: "Client of the go-auth-keeper authentication service",
		Long: `Client of the go-auth-keeper authentication service.

Run without a command for the interactive UI. Passwords and reset tokens
are always prompted for, never passed as arguments. Authenticated commands
read the session token from AUTH_TOKEN.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.ui.Run(cmd.Context())
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(a.out)

	root.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.profileCmd(),
		a.adminCmd(),
		a.forgotCmd(),
		a.resetCmd(),
		a.passwdCmd(),
		a.versionCmd(),
	)

	return root
}

func (a *App) registerCmd() *cobra.Command {
	var copyToken bool
	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account and print its session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readNewPassword(a.secrets, "Password")
			if err != nil {
				return err
			}

			resp, err := a.auth.Register(cmd.Context(), models.Credentials{Email: args[0], Password: password})
			if err != nil {
				return err
			}
			return a.printSession(cmd, resp, copyToken)
		},
	}
	cmd.Flags().BoolVar(&copyToken, "copy", false, "copy the session token to the clipboard")
	return cmd
}

func (a *App) loginCmd() *cobra.Command {
	var copyToken bool
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and print the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readSecret(a.secrets, "Password")
			if err != nil {
				return err
			}

			resp, err := a.auth.Login(cmd.Context(), models.Credentials{Email: args[0], Password: password})
			if err != nil {
				return err
			}
			return a.printSession(cmd, resp, copyToken)
		},
	}
	cmd.Flags().BoolVar(&copyToken, "copy", false, "copy the session token to the clipboard")
	return cmd
}

func (a *App) profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "profile",
		Short:   "Show the signed-in user",
		Args:    cobra.NoArgs,
		PreRunE: a.requireToken,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.auth.Profile(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, user)
		},
	}
}

func (a *App) adminCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "admin",
		Short:   "Fetch the admin area (admin role only)",
		Args:    cobra.NoArgs,
		PreRunE: a.requireToken,
		RunE: func(cmd *cobra.Command, _ []string) error {
			content, err := a.auth.Admin(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, content)
		},
	}
}

func (a *App) forgotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot <email>",
		Short: "Ask the server to send a password reset link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.auth.ForgotPassword(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd, resp)
		},
	}
}

func (a *App) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Set a new password with the token from a reset link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := readSecret(a.secrets, "Reset token")
			if err != nil {
				return err
			}
			password, err := readNewPassword(a.secrets, "New password")
			if err != nil {
				return err
			}

			resp, err := a.auth.ResetPassword(cmd.Context(), secret, password)
			if err != nil {
				return err
			}
			return a.print(cmd, resp)
		},
	}
}

func (a *App) passwdCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "passwd",
		Short:   "Change the signed-in user's password",
		Args:    cobra.NoArgs,
		PreRunE: a.requireToken,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := readSecret(a.secrets, "Current password")
			if err != nil {
				return err
			}
			next, err := readNewPassword(a.secrets, "New password")
			if err != nil {
				return err
			}

			resp, err := a.auth.ChangePassword(cmd.Context(), current, next)
			if err != nil {
				return err
			}
			return a.print(cmd, resp)
		},
	}
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), a.buildInfo.String())
		},
	}
}

func (a *App) requireToken(_ *cobra.Command, _ []string) error {
	if a.auth.Token() == "" {
		return ErrNoToken
	}
	return nil
}

func (a *App) printSession(cmd *cobra.Command, resp models.AuthResponse, copyToken bool) error {
	if copyToken {
		if err := writeClipboard(resp.Token); err != nil {
			a.logger.Warn().Err(err).Msg("session token was not copied to the clipboard")
		}
	}
	return a.print(cmd, resp)
}

func (a *App) print(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
