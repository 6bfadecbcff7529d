package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/execview/internal/cli/formatter"
	"github.com/alexanderramin/execview/internal/domain"
	"github.com/alexanderramin/execview/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds the services and terminal hooks used by CLI commands.
type App struct {
	Dashboard   service.DashboardService
	Preferences service.PreferenceService

	// Now is the clock used for relative timestamps. Nil means time.Now.
	Now func() time.Time
	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil falls back to a huh prompt.
	Confirm func(title string) (bool, error)
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// userError carries text that is safe to show verbatim.
type userError struct {
	msg string
}

func (e *userError) Error() string { return e.msg }

func userErrorf(format string, args ...any) error {
	return &userError{msg: fmt.Sprintf(format, args...)}
}

// Message returns the text to print for an error returned by a command.
func Message(err error) string {
	var ue *userError
	if errors.As(err, &ue) {
		return ue.msg
	}
	return service.UserMessage(err)
}

// periodValue adapts domain.Granularity to a pflag.Value.
type periodValue struct {
	g *domain.Granularity
}

var _ pflag.Value = periodValue{}

func (p periodValue) String() string {
	if p.g == nil {
		return ""
	}
	return string(*p.g)
}

func (p periodValue) Set(s string) error {
	g, err := domain.ParseGranularity(s)
	if err != nil {
		return err
	}
	*p.g = g
	return nil
}

func (p periodValue) Type() string { return "period" }

// options are the global flags shared by every subcommand.
type options struct {
	period      domain.Granularity
	showMetrics bool
}

// NewRootCmd creates the top-level "execview" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	opts := &options{period: domain.Monthly}

	root := &cobra.Command{
		Use:           "execview",
		Short:         "Executive business dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Var(periodValue{g: &opts.period}, "period", "Reporting period: daily, weekly, monthly, quarterly or annually")
	root.PersistentFlags().BoolVar(&opts.showMetrics, "show-metrics", false, "Print KPI cards above detail tables")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &userError{msg: err.Error()}
	})

	root.AddCommand(
		newInitCmd(app),
		newShowCmd(app, opts),
		newSummaryCmd(app, opts),
		newNotificationsCmd(app, opts),
		newResetCmd(app),
		newExportCmd(app, opts),
		newThemeCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoAmICmd(app),
		newDashboardCmd(app, opts),
	)
	return root
}

// exactArgs is cobra.ExactArgs with an error meant for the user.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &userError{msg: fmt.Sprintf("%s (see %s --help)", err, cmd.CommandPath())}
		}
		return nil
	}
}

// loadSnapshot seeds the store if needed and loads the dataset at g. A
// spinner runs on w while the facade simulates latency.
func loadSnapshot(ctx context.Context, app *App, g domain.Granularity, w io.Writer) (*domain.Snapshot, error) {
	if app.interactive() {
		stop := formatter.StartSpinner(w, "Loading dashboard data...")
		defer stop()
	}
	if _, err := app.Dashboard.EnsureInitialized(ctx); err != nil {
		return nil, err
	}
	return app.Dashboard.GetDataset(ctx, g)
}
