package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/healthmetrics/internal/render"
)

func newExportCmd(a *app) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the registry as json, yaml or markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			exporter, err := render.NewExporter(format)
			if err != nil {
				return codeError(exitInput, "invalid format: %s", err)
			}
			reg, _, err := a.loadRegistry(logger)
			if err != nil {
				return err
			}
			data, err := exporter.Export(reg)
			if err != nil {
				return codeError(exitInput, "exporting registry: %s", err)
			}
			return writeOutput(cmd, out, data)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, yaml or md")
	cmd.Flags().StringVar(&out, "out", "", "Write output to file instead of stdout")
	return cmd
}
