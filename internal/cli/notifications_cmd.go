package cli

import (
	"fmt"

	"github.com/alexanderramin/execview/internal/cli/formatter"
	"github.com/alexanderramin/execview/internal/domain"
	"github.com/spf13/cobra"
)

func newNotificationsCmd(app *App, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "List notifications or mark them read",
	}
	cmd.AddCommand(newNotificationsListCmd(app, opts), newNotificationsReadCmd(app))
	return cmd
}

func newNotificationsListCmd(app *App, opts *options) *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the notification feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(cmd.Context(), app, opts.period, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ns := snap.Notifications
			if unreadOnly {
				ns = ns[:0:0]
				for _, n := range snap.Notifications {
					if !n.Read {
						ns = append(ns, n)
					}
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(fmt.Sprintf("Notifications (%d unread)", domain.CountUnread(snap.Notifications))))
			fmt.Fprint(out, formatter.FormatNotifications(ns, app.now()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Only show unread notifications")
	return cmd
}

func newNotificationsReadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a notification as read",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Dashboard.EnsureInitialized(cmd.Context()); err != nil {
				return err
			}
			ok, err := app.Dashboard.MarkNotificationRead(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return userErrorf("no notification with id %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as read.\n", args[0])
			return nil
		},
	}
}
