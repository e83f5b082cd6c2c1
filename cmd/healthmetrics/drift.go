package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/healthmetrics/internal/drift"
	"github.com/dshills/healthmetrics/internal/render"
)

func newDriftCmd(a *app) *cobra.Command {
	var format, patchOut string
	var update bool
	cmd := &cobra.Command{
		Use:   "drift <snapshot>",
		Short: "Compare the registry export with a committed snapshot",
		Long:  "drift exports the current registry and diffs it against a snapshot file. It exits 2 when they differ; --update rewrites the snapshot instead.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			path := args[0]
			if format == "" {
				format = formatForPath(path)
			}
			exporter, err := render.NewExporter(format)
			if err != nil {
				return codeError(exitInput, "invalid format: %s", err)
			}
			reg, _, err := a.loadRegistry(logger)
			if err != nil {
				return err
			}
			current, err := exporter.Export(reg)
			if err != nil {
				return codeError(exitInput, "exporting registry: %s", err)
			}

			if update {
				if err := os.WriteFile(path, current, 0o644); err != nil {
					return codeError(exitInput, "writing snapshot: %s", err)
				}
				printSuccess(cmd.ErrOrStderr(), "snapshot %s updated", path)
				return nil
			}

			snapshot, err := os.ReadFile(path)
			if err != nil {
				return codeError(exitInput, "reading snapshot: %s", err)
			}
			res := drift.Compare(string(snapshot), string(current))
			if !res.Differs() {
				printSuccess(cmd.ErrOrStderr(), "%s matches the registry", path)
				return nil
			}

			if patchOut != "" {
				if err := os.WriteFile(patchOut, []byte(res.Patch), 0o644); err != nil {
					logger.Warn("patch write failed", "err", err)
				}
			} else if err := writeOutput(cmd, "", []byte(res.Patch)); err != nil {
				return err
			}
			return codeError(exitThreshold, "%s: %s", path, res.Summary())
		},
	}
	f := cmd.Flags()
	f.StringVar(&format, "format", "", "Snapshot format: json, yaml or md (default from the file extension)")
	f.StringVar(&patchOut, "patch-out", "", "Write the diff-match-patch patch to this file instead of stdout")
	f.BoolVar(&update, "update", false, "Rewrite the snapshot with the current export")
	return cmd
}

// formatForPath picks an export format from a file extension.
func formatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".md":
		return "md"
	default:
		return "json"
	}
}
