package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/execview/internal/cli/formatter"
	"github.com/alexanderramin/execview/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// confirmForm builds the yes/no prompt shown before destructive commands.
func confirmForm(title string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(value),
		),
	)
}

func (a *App) confirm(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	var ok bool
	if err := confirmForm(title, &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Regenerate all metrics and notifications",
		Long:  "Regenerate every metric series and the notification feed. Users, settings and preferences are kept.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.interactive() {
					return userErrorf("reset replaces all dashboard data; pass --yes to confirm")
				}
				ok, err := app.confirm("Regenerate all dashboard data?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Reset cancelled."))
					return nil
				}
			}

			err := app.Dashboard.ResetDataset(cmd.Context())
			if err != nil && !errors.Is(err, service.ErrReloadAfterReset) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Dashboard data regenerated."))
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleYellow.Render(service.UserMessage(err)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
