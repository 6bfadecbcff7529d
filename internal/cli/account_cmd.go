package cli

import (
	"fmt"

	"github.com/alexanderramin/execview/internal/cli/formatter"
	"github.com/alexanderramin/execview/internal/domain"
	"github.com/spf13/cobra"
)

func newThemeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the display theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(domain.ThemeLight), string(domain.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				t, err := app.Preferences.Theme(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), t)
				return nil
			}
			t, ok := domain.ParseTheme(args[0])
			if !ok {
				return userErrorf("unknown theme %q: choose light or dark", args[0])
			}
			if err := app.Preferences.SetTheme(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s.\n", t)
			return nil
		},
	}
}

func newLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Start a session as one of the demo users",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Dashboard.EnsureInitialized(cmd.Context()); err != nil {
				return err
			}
			u, err := app.Preferences.Login(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s).\n", formatter.Bold(u.Name), u.Role)
			return nil
		},
	}
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Preferences.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, ok, err := app.Preferences.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Not logged in."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n%s %s\n", formatter.Bold(u.Name), u.Email, formatter.Dim("role:"), u.Role)
			return nil
		},
	}
}
