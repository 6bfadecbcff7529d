package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/execview/internal/service"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App, opts *options) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export <section>",
		Short: "Export a dashboard section as csv or xlsx",
		Long: "Export one section of the dashboard: financial, sales, operations, customer, " +
			"employee, notifications or summary. CSV goes to stdout unless --out is set; " +
			"xlsx defaults to <section>.xlsx.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := service.ParseSection(args[0])
			if err != nil {
				return err
			}
			f, err := service.ParseExportFormat(format)
			if err != nil {
				return err
			}

			if _, err := loadSnapshot(cmd.Context(), app, opts.period, cmd.ErrOrStderr()); err != nil {
				return err
			}
			data, err := app.Dashboard.ExportCollection(section, f)
			if err != nil {
				return err
			}

			path := out
			if path == "" && f == service.FormatXLSX {
				path = string(section) + ".xlsx"
			}
			if path == "" {
				_, err := cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s to %s.\n", section, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Export format: csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	return cmd
}
