package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/healthmetrics/internal/render"
	"github.com/dshills/healthmetrics/internal/review"
	"github.com/dshills/healthmetrics/internal/schema"
)

// checkFlags holds the parsed flags for the check command.
type checkFlags struct {
	format            string
	out               string
	failOn            string
	severityThreshold string
	quiet             bool
}

func newCheckCmd(a *app) *cobra.Command {
	var flags checkFlags
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the registry and produce a report",
		Long:  "check validates the built-in categories together with every configured catalog file and reports each violation with its severity, rule and path.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, a, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.format, "format", "json", "Output format: json or md")
	f.StringVar(&flags.out, "out", "", "Write output to file instead of stdout")
	f.StringVar(&flags.failOn, "fail-on", "", "Exit 2 if verdict >= this level (VALID_WITH_GAPS or INVALID)")
	f.StringVar(&flags.severityThreshold, "severity-threshold", "info", "Minimum severity to emit: info, warn, or critical")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "Do not print the verdict line to stderr")
	return cmd
}

func runCheck(cmd *cobra.Command, a *app, flags checkFlags) error {
	logger := loggerFromContext(cmd.Context())

	if err := validateCheckFlags(flags); err != nil {
		return codeError(exitInput, "invalid flags: %s", err)
	}

	files, err := a.loadCatalogs(logger)
	if err != nil {
		return err
	}

	report := review.Check(version, files, review.ParseSeverity(flags.severityThreshold))
	logger.Debug("checked registry",
		"verdict", report.Summary.Verdict,
		"score", report.Summary.Score,
		"violations", report.Summary.CriticalCount+report.Summary.WarnCount+report.Summary.InfoCount,
	)

	renderer, err := render.NewRenderer(flags.format)
	if err != nil {
		return codeError(exitInput, "invalid format: %s", err)
	}
	out, err := renderer.Render(report)
	if err != nil {
		return codeError(exitInput, "rendering output: %s", err)
	}
	if err := writeOutput(cmd, flags.out, out); err != nil {
		return err
	}

	if !flags.quiet {
		printVerdict(cmd, report.Summary)
	}

	if flags.failOn != "" {
		threshold := schema.Verdict(flags.failOn)
		if schema.VerdictOrdinal(report.Summary.Verdict) >= schema.VerdictOrdinal(threshold) {
			return codeError(exitThreshold, "verdict %s meets or exceeds --fail-on threshold %s", report.Summary.Verdict, threshold)
		}
	}
	return nil
}

func printVerdict(cmd *cobra.Command, s schema.Summary) {
	w := cmd.ErrOrStderr()
	line := fmt.Sprintf("%s (score %d: %d critical, %d warn, %d info)", s.Verdict, s.Score, s.CriticalCount, s.WarnCount, s.InfoCount)
	switch s.Verdict {
	case schema.VerdictValid:
		printSuccess(w, "%s", line)
	case schema.VerdictValidWithGaps:
		printWarning(w, "%s", line)
	default:
		printError(w, "%s", line)
	}
}

// validateCheckFlags returns an error if any flag value is invalid.
func validateCheckFlags(flags checkFlags) error {
	switch flags.format {
	case "json", "md":
	default:
		return fmt.Errorf("--format must be json or md, got %q", flags.format)
	}

	if flags.failOn != "" {
		switch schema.Verdict(flags.failOn) {
		case schema.VerdictValidWithGaps, schema.VerdictInvalid:
		default:
			return fmt.Errorf("--fail-on must be VALID_WITH_GAPS or INVALID, got %q", flags.failOn)
		}
	}

	switch flags.severityThreshold {
	case "info", "warn", "critical":
	default:
		return fmt.Errorf("--severity-threshold must be info, warn, or critical, got %q", flags.severityThreshold)
	}
	return nil
}
