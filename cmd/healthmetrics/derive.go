package main

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/healthmetrics/internal/catalog"
	"github.com/dshills/healthmetrics/internal/derive"
	"github.com/dshills/healthmetrics/internal/metric"
)

type deriveFlags struct {
	category string
	dataType string
	allGroup string
	out      string
}

func newDeriveCmd(a *app) *cobra.Command {
	var flags deriveFlags
	cmd := &cobra.Command{
		Use:   "derive <counts.csv>",
		Short: "Compute rates and shares from raw counts",
		Long:  "derive reads raw counts per demographic group (first column the group, other columns keyed by metric id) and writes the rate, share and population comparison values of a data type as CSV.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDerive(cmd, a, args[0], flags)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.category, "category", string(catalog.MaternalHealthCategoryID), "Category id")
	f.StringVar(&flags.dataType, "data-type", "maternal_mortality", "Data type id")
	f.StringVar(&flags.allGroup, "all-group", derive.DefaultAllGroup, "Group label of the all-groups totals row")
	f.StringVar(&flags.out, "out", "", "Write output to file instead of stdout")
	return cmd
}

func runDerive(cmd *cobra.Command, a *app, path string, flags deriveFlags) error {
	logger := loggerFromContext(cmd.Context())
	reg, _, err := a.loadRegistry(logger)
	if err != nil {
		return err
	}
	dt, ok := reg.DataType(metric.CategoryID(flags.category), metric.DataTypeID(flags.dataType))
	if !ok {
		return codeError(exitInput, "unknown data type %s/%s", flags.category, flags.dataType)
	}

	f, err := os.Open(path)
	if err != nil {
		return codeError(exitInput, "opening counts: %s", err)
	}
	defer f.Close()
	rows, err := derive.ReadCSV(f)
	if err != nil {
		return codeError(exitInput, "%s: %s", path, err)
	}

	ids, err := derive.Columns(dt)
	if err != nil {
		return codeError(exitInput, "%s", err)
	}
	results, err := derive.Compute(dt, rows, flags.allGroup)
	if err != nil {
		return codeError(exitInput, "%s", err)
	}
	logger.Debug("derived values", "rows", len(results), "columns", len(ids))

	var buf bytes.Buffer
	if err := derive.WriteCSV(&buf, ids, results); err != nil {
		return codeError(exitInput, "writing csv: %s", err)
	}
	return writeOutput(cmd, flags.out, buf.Bytes())
}
