package cli

import (
	"fmt"

	"github.com/alexanderramin/execview/internal/cli/formatter"
	"github.com/alexanderramin/execview/internal/domain"
	"github.com/alexanderramin/execview/internal/service"
	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Seed the local dataset if it is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			seeded, err := app.Dashboard.EnsureInitialized(cmd.Context())
			if err != nil {
				return err
			}
			if seeded {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Dataset seeded."))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Dataset already present."))
			}
			return nil
		},
	}
}

// metricSections are the sections "show" accepts.
var metricSections = []service.Section{
	service.SectionFinancial,
	service.SectionSales,
	service.SectionOperations,
	service.SectionCustomer,
	service.SectionEmployee,
}

// domainView splits one metric domain out of a snapshot: its detail
// table and a snapshot holding only that domain, for its KPIs.
func domainView(snap *domain.Snapshot, section service.Section) (string, *domain.Snapshot) {
	only := &domain.Snapshot{Granularity: snap.Granularity}
	var table string
	switch section {
	case service.SectionFinancial:
		only.Financial = snap.Financial
		table = formatter.FormatFinancial(snap.Financial)
	case service.SectionSales:
		only.Sales = snap.Sales
		table = formatter.FormatSales(snap.Sales)
	case service.SectionOperations:
		only.Operations = snap.Operations
		table = formatter.FormatOperations(snap.Operations)
	case service.SectionCustomer:
		only.Customer = snap.Customer
		table = formatter.FormatCustomer(snap.Customer)
	case service.SectionEmployee:
		only.Employee = snap.Employee
		table = formatter.FormatEmployee(snap.Employee)
	}
	return table, only
}

func newShowCmd(app *App, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "show <domain>",
		Short:     "Show one metric domain: financial, sales, operations, customer or employee",
		Args:      exactArgs(1),
		ValidArgs: []string{"financial", "sales", "operations", "customer", "employee"},
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := service.ParseSection(args[0])
			if err != nil || !isMetricSection(section) {
				return userErrorf("unknown domain %q: choose financial, sales, operations, customer or employee", args[0])
			}

			snap, err := loadSnapshot(cmd.Context(), app, opts.period, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			table, only := domainView(snap, section)
			fmt.Fprintln(out, formatter.Header(fmt.Sprintf("%s (%s)", section, snap.Granularity)))
			if opts.showMetrics {
				fmt.Fprintln(out, formatter.FormatKPIs(domain.BuildSummary(only).KPIs))
			}
			fmt.Fprint(out, table)
			return nil
		},
	}
}

func isMetricSection(s service.Section) bool {
	for _, m := range metricSections {
		if m == s {
			return true
		}
	}
	return false
}

func newSummaryCmd(app *App, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show headline KPIs for every domain",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadSnapshot(cmd.Context(), app, opts.period, cmd.ErrOrStderr()); err != nil {
				return err
			}
			sum, err := app.Dashboard.Summary()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSummary(sum))
			return nil
		},
	}
}
