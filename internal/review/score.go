package review

import (
	"strings"

	"github.com/dshills/healthmetrics/internal/schema"
)

// basePoints is the score of a registry with no violations.
const basePoints = 100

// penalty is what one violation of each severity costs.
var penalty = map[schema.Severity]int{
	schema.SeverityCritical: 20,
	schema.SeverityWarn:     7,
	schema.SeverityInfo:     2,
}

// Score deducts each violation's penalty from 100, never going below 0.
// It always sees the full violation list, before any threshold filtering.
func Score(violations []schema.Violation) int {
	points := basePoints
	for _, v := range violations {
		points -= penalty[v.Severity]
	}
	return max(points, 0)
}

// Verdict is INVALID when a critical violation exists, VALID_WITH_GAPS when
// only warnings or notes remain, and VALID otherwise.
func Verdict(violations []schema.Violation) schema.Verdict {
	tally := tallySeverities(violations)
	switch {
	case tally[schema.SeverityCritical] > 0:
		return schema.VerdictInvalid
	case len(violations) > 0:
		return schema.VerdictValidWithGaps
	}
	return schema.VerdictValid
}

func tallySeverities(violations []schema.Violation) map[schema.Severity]int {
	tally := make(map[schema.Severity]int, len(penalty))
	for _, v := range violations {
		tally[v.Severity]++
	}
	return tally
}

// Summarize builds the report summary from the full violation list.
func Summarize(violations []schema.Violation) schema.Summary {
	tally := tallySeverities(violations)
	return schema.Summary{
		Verdict:       Verdict(violations),
		Score:         Score(violations),
		CriticalCount: tally[schema.SeverityCritical],
		WarnCount:     tally[schema.SeverityWarn],
		InfoCount:     tally[schema.SeverityInfo],
	}
}

// ParseSeverity reads a --severity-threshold value. Case is ignored and
// anything unrecognised means INFO, i.e. no filtering.
func ParseSeverity(s string) schema.Severity {
	sev := schema.Severity(strings.ToUpper(strings.TrimSpace(s)))
	if sev.Rank() < 0 {
		return schema.SeverityInfo
	}
	return sev
}

// FilterBySeverity keeps the violations at or above threshold.
func FilterBySeverity(violations []schema.Violation, threshold schema.Severity) []schema.Violation {
	if threshold == schema.SeverityInfo {
		return violations
	}
	out := make([]schema.Violation, 0, len(violations))
	for _, v := range violations {
		if v.Severity.AtLeast(threshold) {
			out = append(out, v)
		}
	}
	return out
}
