// Package validate checks a set of categories against the configuration
// invariants. It runs once, over the whole registry, and reports every
// violation it finds rather than stopping at the first.
package validate

import (
	"fmt"
	"strings"

	"github.com/dshills/healthmetrics/internal/metric"
	"github.com/dshills/healthmetrics/internal/schema"
)

type dataTypeKey struct {
	category metric.CategoryID
	dataType metric.DataTypeID
}

// seenMetric is the first configuration recorded for a metric id.
type seenMetric struct {
	path   string
	typ    metric.Type
	labels metric.Labels
}

type validator struct {
	out       []schema.Violation
	dataTypes map[dataTypeKey]string
	topLevel  map[metric.ID]string
	seen      map[metric.ID]seenMetric
}

// Categories validates cats as one registry. Violations are returned in
// registry order and are not numbered; see schema.Number.
func Categories(cats []metric.Category) []schema.Violation {
	v := &validator{
		dataTypes: make(map[dataTypeKey]string),
		topLevel:  make(map[metric.ID]string),
		seen:      make(map[metric.ID]seenMetric),
	}
	for i := range cats {
		v.category(&cats[i], i)
	}
	return v.out
}

func (v *validator) add(r schema.Rule, path string, id metric.ID, format string, args ...any) {
	v.out = append(v.out, schema.NewViolation(r, path, string(id), format, args...))
}

func (v *validator) category(c *metric.Category, idx int) {
	prefix := string(c.ID)
	if c.ID == "" {
		prefix = fmt.Sprintf("categories[%d]", idx)
		v.add(schema.RuleEmptyIdentifier, prefix, "", "categoryId is required")
	}

	referenced := make(map[metric.ID]bool)
	for i := range c.DataTypes {
		v.dataType(c, &c.DataTypes[i], prefix, i, referenced)
	}

	for _, id := range c.MetricIDs {
		if !referenced[id] {
			v.add(schema.RuleUnusedMetricID, prefix, id, "declared metric id %q is not referenced by any data type", id)
		}
	}
}

func (v *validator) dataType(c *metric.Category, dt *metric.DataTypeConfig, prefix string, idx int, referenced map[metric.ID]bool) {
	base := prefix + "/" + string(dt.DataTypeID)
	if dt.DataTypeID == "" {
		base = fmt.Sprintf("%s/dataTypes[%d]", prefix, idx)
		v.add(schema.RuleEmptyIdentifier, base, "", "dataTypeId is required")
	}

	if dt.CategoryID != c.ID {
		v.add(schema.RuleCategoryMismatch, base, "", "categoryId %q does not match owning category %q", dt.CategoryID, c.ID)
	}

	key := dataTypeKey{category: dt.CategoryID, dataType: dt.DataTypeID}
	if first, ok := v.dataTypes[key]; ok {
		v.add(schema.RuleDuplicateDataType, base, "", "categoryId/dataTypeId %s/%s already defined at %s", dt.CategoryID, dt.DataTypeID, first)
	} else {
		v.dataTypes[key] = base
	}

	if dt.DataTypeID != "" && !containsDataType(c.DropdownIDs, dt.DataTypeID) {
		v.add(schema.RuleMissingDropdownID, base, "", "dataTypeId %q is not listed in the category dropdown ids", dt.DataTypeID)
	}

	if strings.TrimSpace(dt.Definition.Text) == "" {
		v.add(schema.RuleMissingDefinition, base, "", "definition text has not been authored")
	}

	for _, kind := range dt.Kinds() {
		m := dt.Metrics[kind]
		mpath := base + "/metrics." + string(kind)
		if m == nil {
			v.add(schema.RuleEmptyIdentifier, mpath, "", "metric %q has no configuration", kind)
			continue
		}
		metric.Walk(m, func(visit metric.Visit) {
			v.metric(c, visit, mpath, referenced)
		})
	}
}

func (v *validator) metric(c *metric.Category, visit metric.Visit, root string, referenced map[metric.ID]bool) {
	path := root
	if len(visit.Path) > 0 {
		path += "." + strings.Join(visit.Path, ".")
	}
	m := visit.Metric
	id := m.ID()

	if id == "" {
		v.add(schema.RuleEmptyIdentifier, path, "", "metricId is required")
		return
	}
	referenced[id] = true

	if visit.Cycle {
		v.add(schema.RuleSelfReference, path, id, "metric %q references itself through %s", id, strings.Join(visit.Path, "."))
		return
	}
	v.uniqueID(visit, path)
	if !c.Declares(id) {
		v.add(schema.RuleUndeclaredMetricID, path, id, "metric id %q is not declared by category %q", id, c.ID)
	}
	if !metric.IsValidType(m.Type()) {
		v.add(schema.RuleInvalidMetricType, path, id, "unknown metric type %q", m.Type())
	}

	switch mm := m.(type) {
	case metric.Scalar:
		switch mm.MetricType {
		case metric.TypePctRate, metric.TypePctShare, metric.TypeCount:
			v.add(schema.RuleScalarType, path, id, "type %q must be configured with its own variant, not as a scalar", mm.MetricType)
		}
	case metric.Rate:
		num, den := mm.Numerator.ID(), mm.Denominator.ID()
		if num != "" && num == den {
			v.add(schema.RuleDuplicateRateComponent, path, id, "numerator and denominator are both %q", num)
		}
	}
}

// uniqueID enforces that a metric id names one metric across the registry.
// A top-level id may be listed once. A nested id may repeat, as population
// counts do, only with the same type and labels.
func (v *validator) uniqueID(visit metric.Visit, path string) {
	m := visit.Metric
	id := m.ID()
	if len(visit.Path) == 0 {
		if first, ok := v.topLevel[id]; ok {
			v.add(schema.RuleDuplicateMetricID, path, id, "metric id %q already used at %s", id, first)
			return
		}
		v.topLevel[id] = path
	}

	prev, ok := v.seen[id]
	if !ok {
		v.seen[id] = seenMetric{path: path, typ: m.Type(), labels: m.DisplayLabels()}
		return
	}
	switch {
	case prev.typ != m.Type():
		v.add(schema.RuleDuplicateMetricID, path, id, "metric id %q is configured as %s here and as %s at %s", id, m.Type(), prev.typ, prev.path)
	case prev.labels != m.DisplayLabels():
		v.add(schema.RuleDuplicateMetricID, path, id, "metric id %q has different labels here than at %s", id, prev.path)
	}
}

func containsDataType(ids []metric.DataTypeID, id metric.DataTypeID) bool {
	for _, d := range ids {
		if d == id {
			return true
		}
	}
	return false
}
