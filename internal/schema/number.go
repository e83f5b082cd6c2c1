package schema

import "fmt"

// NewViolation returns a violation of r with the rule's severity.
func NewViolation(r Rule, path, metricID, format string, args ...any) Violation {
	return Violation{
		Severity: r.Severity(),
		Rule:     r,
		Path:     path,
		MetricID: metricID,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Number assigns sequential ids (V-0001, V-0002, ...) to vs in place.
func Number(vs []Violation) {
	for i := range vs {
		vs[i].ID = fmt.Sprintf("V-%04d", i+1)
	}
}

// Critical returns the critical violations of vs.
func Critical(vs []Violation) []Violation {
	var out []Violation
	for _, v := range vs {
		if v.Severity == SeverityCritical {
			out = append(out, v)
		}
	}
	return out
}
