package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/healthmetrics/internal/metric"
	"github.com/dshills/healthmetrics/internal/registry"
)

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <metric-id>",
		Short: "Show where a metric lives and how it is labeled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := a.loadRegistry(loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			e, ok := reg.Lookup(metric.ID(args[0]))
			if !ok {
				return codeError(exitInput, "unknown metric %q", args[0])
			}
			if asJSON {
				data, err := json.MarshalIndent(map[string]any{
					"categoryId": e.Category.ID,
					"dataTypeId": e.DataType.DataTypeID,
					"kind":       e.Kind,
					"path":       e.Path,
					"metric":     metric.ToRecord(e.Metric),
				}, "", "  ")
				if err != nil {
					return err
				}
				return writeOutput(cmd, "", data)
			}
			printEntry(cmd, e)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the entry as JSON")
	return cmd
}

func printEntry(cmd *cobra.Command, e registry.Entry) {
	w := cmd.OutOrStdout()
	l := e.Metric.DisplayLabels()

	fmt.Fprintln(w, styleTitle.Render(string(e.Metric.ID())))
	printField(w, "type", string(e.Metric.Type()))
	printField(w, "category", string(e.Category.ID))
	printField(w, "data type", fmt.Sprintf("%s (%s)", e.DataType.DataTypeID, e.DataType.FullDisplayName))
	printField(w, "kind", string(e.Kind))
	printField(w, "field", e.Path)
	printField(w, "map policy", e.DataType.MapConfig.Describe())
	printField(w, "chart title", l.ChartTitle)
	printField(w, "trends card title", l.TrendsCardTitleName)
	printField(w, "column header", l.ColumnTitleHeader)
	printField(w, "short label", l.ShortLabel)

	var refs []string
	for _, ref := range e.Metric.Refs() {
		refs = append(refs, fmt.Sprintf("%s=%s", ref.Field, ref.Metric.ID()))
	}
	printField(w, "references", strings.Join(refs, ", "))
}
