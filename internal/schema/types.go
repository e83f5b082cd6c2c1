package schema

// Report is the top-level output of a registry check.
type Report struct {
	Tool       string      `json:"tool"`
	Version    string      `json:"version"`
	Input      Input       `json:"input"`
	Summary    Summary     `json:"summary"`
	Violations []Violation `json:"violations"`
	Meta       Meta        `json:"meta"`
}

// Input captures what was checked.
type Input struct {
	Builtin           bool     `json:"builtin"`
	Sources           []Source `json:"sources"`
	SeverityThreshold string   `json:"severity_threshold"`
}

// Source is a catalog file merged into the checked registry.
type Source struct {
	Path string `json:"path"`
	Hash string `json:"hash"` // SHA-256 of the file as read
}

// Summary holds the computed verdict and violation counts.
// Counts always reflect all violations before any --severity-threshold filtering.
type Summary struct {
	Verdict       Verdict `json:"verdict"`
	Score         int     `json:"score"`
	CriticalCount int     `json:"critical_count"`
	WarnCount     int     `json:"warn_count"`
	InfoCount     int     `json:"info_count"`
}

// Meta holds the size of the checked registry.
type Meta struct {
	Categories int `json:"categories"`
	DataTypes  int `json:"data_types"`
	Metrics    int `json:"metrics"`
}

// Severity levels for violations.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarn     Severity = "WARN"
	SeverityCritical Severity = "CRITICAL"
)

// Rank orders severities from INFO (0) to CRITICAL (2). Unknown severities
// rank -1.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarn:
		return 1
	case SeverityCritical:
		return 2
	}
	return -1
}

// AtLeast reports whether s is as severe as threshold or more.
func (s Severity) AtLeast(threshold Severity) bool {
	return s.Rank() >= threshold.Rank()
}

// Verdict represents the overall assessment of the registry.
type Verdict string

const (
	VerdictValid         Verdict = "VALID"
	VerdictValidWithGaps Verdict = "VALID_WITH_GAPS"
	VerdictInvalid       Verdict = "INVALID"
)

// VerdictOrdinal returns the numeric ordering for a verdict, used by --fail-on
// comparison. VALID(0) < VALID_WITH_GAPS(1) < INVALID(2).
// Returns -1 for an unrecognised verdict.
func VerdictOrdinal(v Verdict) int {
	switch v {
	case VerdictValid:
		return 0
	case VerdictValidWithGaps:
		return 1
	case VerdictInvalid:
		return 2
	default:
		return -1
	}
}

// Rule names the configuration rule a violation breaks.
type Rule string

const (
	RuleEmptyIdentifier        Rule = "EMPTY_IDENTIFIER"
	RuleUndeclaredMetricID     Rule = "UNDECLARED_METRIC_ID"
	RuleInvalidMetricType      Rule = "INVALID_METRIC_TYPE"
	RuleScalarType             Rule = "SCALAR_TYPE"
	RuleMissingRateComponent   Rule = "MISSING_RATE_COMPONENT"
	RuleRateComponentType      Rule = "RATE_COMPONENT_TYPE"
	RuleDuplicateRateComponent Rule = "DUPLICATE_RATE_COMPONENT"
	RuleComparisonType         Rule = "COMPARISON_TYPE"
	RuleUnexpectedReference    Rule = "UNEXPECTED_REFERENCE"
	RuleSelfReference          Rule = "SELF_REFERENCE"
	RuleDuplicateDataType      Rule = "DUPLICATE_DATA_TYPE"
	RuleDuplicateMetricID      Rule = "DUPLICATE_METRIC_ID"
	RuleCategoryMismatch       Rule = "CATEGORY_MISMATCH"
	RuleUnknownMapPolicy       Rule = "UNKNOWN_MAP_POLICY"
	RuleMissingDropdownID      Rule = "MISSING_DROPDOWN_ID"
	RuleUnusedMetricID         Rule = "UNUSED_METRIC_ID"
	RuleMissingDefinition      Rule = "MISSING_DEFINITION"
)

// Severity returns the severity every violation of r carries.
func (r Rule) Severity() Severity {
	switch r {
	case RuleMissingDropdownID:
		return SeverityWarn
	case RuleUnusedMetricID, RuleMissingDefinition:
		return SeverityInfo
	}
	return SeverityCritical
}

// IsValidRule reports whether r is one of the defined rules.
func IsValidRule(r Rule) bool {
	switch r {
	case RuleEmptyIdentifier,
		RuleUndeclaredMetricID,
		RuleInvalidMetricType,
		RuleScalarType,
		RuleMissingRateComponent,
		RuleRateComponentType,
		RuleDuplicateRateComponent,
		RuleComparisonType,
		RuleUnexpectedReference,
		RuleSelfReference,
		RuleDuplicateDataType,
		RuleDuplicateMetricID,
		RuleCategoryMismatch,
		RuleUnknownMapPolicy,
		RuleMissingDropdownID,
		RuleUnusedMetricID,
		RuleMissingDefinition:
		return true
	}
	return false
}

// Violation is a single finding against the registry configuration. Path
// locates the offending value, e.g.
// "maternal_health/maternal_mortality/metrics.per100k.rateNumeratorMetric".
type Violation struct {
	ID       string   `json:"id"`
	Severity Severity `json:"severity"`
	Rule     Rule     `json:"rule"`
	Path     string   `json:"path"`
	MetricID string   `json:"metric_id,omitempty"`
	Message  string   `json:"message"`
}
