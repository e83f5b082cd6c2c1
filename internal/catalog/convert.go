package catalog

import (
	"fmt"
	"sort"

	"github.com/dshills/healthmetrics/internal/mappolicy"
	"github.com/dshills/healthmetrics/internal/metric"
	"github.com/dshills/healthmetrics/internal/schema"
)

// converter turns serialized records into typed configuration. Records that
// cannot be represented by the metric variants are reported as violations;
// conversion carries on so later checks still see as much as possible.
type converter struct {
	out []schema.Violation
}

func (c *converter) add(r schema.Rule, path string, id metric.ID, format string, args ...any) {
	c.out = append(c.out, schema.NewViolation(r, path, string(id), format, args...))
}

// FromRecords converts serialized categories into typed categories along
// with the shape violations found on the way.
func FromRecords(records []metric.CategoryRecord) ([]metric.Category, []schema.Violation) {
	c := &converter{}
	cats := make([]metric.Category, 0, len(records))
	for i, r := range records {
		cats = append(cats, c.category(r, i))
	}
	return cats, c.out
}

func (c *converter) category(r metric.CategoryRecord, idx int) metric.Category {
	prefix := string(r.CategoryID)
	if prefix == "" {
		prefix = fmt.Sprintf("categories[%d]", idx)
	}
	cat := metric.Category{
		ID:          r.CategoryID,
		DropdownIDs: append([]metric.DataTypeID(nil), r.DropdownIDs...),
		MetricIDs:   append([]metric.ID(nil), r.MetricIDs...),
		DataTypes:   make([]metric.DataTypeConfig, 0, len(r.DataTypes)),
	}
	for i, dt := range r.DataTypes {
		base := prefix + "/" + string(dt.DataTypeID)
		if dt.DataTypeID == "" {
			base = fmt.Sprintf("%s/dataTypes[%d]", prefix, i)
		}
		cat.DataTypes = append(cat.DataTypes, c.dataType(dt, base))
	}
	return cat
}

func (c *converter) dataType(r metric.DataTypeRecord, base string) metric.DataTypeConfig {
	policy, err := mappolicy.Get(r.MapConfig)
	if err != nil {
		c.add(schema.RuleUnknownMapPolicy, base, "", "%s", err)
	}
	dt := metric.DataTypeConfig{
		CategoryID:            r.CategoryID,
		DataTypeID:            r.DataTypeID,
		MapConfig:             policy,
		DataTypeShortLabel:    r.DataTypeShortLabel,
		FullDisplayName:       r.FullDisplayName,
		FullDisplayNameInline: r.FullDisplayNameInline,
		Definition:            metric.Text{Text: r.Definition.Text},
		Description:           metric.Text{Text: r.Description.Text},
		DataTableTitle:        r.DataTableTitle,
		Metrics:               make(map[metric.Kind]metric.Config, len(r.Metrics)),
	}
	kinds := make([]metric.Kind, 0, len(r.Metrics))
	for k := range r.Metrics {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, kind := range kinds {
		dt.Metrics[kind] = c.metric(r.Metrics[kind], base+"/metrics."+string(kind))
	}
	return dt
}

func labelsOf(r metric.Record) metric.Labels {
	return metric.Labels{
		ChartTitle:          r.ChartTitle,
		TrendsCardTitleName: r.TrendsCardTitleName,
		ColumnTitleHeader:   r.ColumnTitleHeader,
		ShortLabel:          r.ShortLabel,
	}
}

func (c *converter) metric(r metric.Record, path string) metric.Config {
	switch r.Type {
	case metric.TypeCount:
		return c.count(r, path)
	case metric.TypePctRate:
		return c.rate(r, path)
	case metric.TypePctShare:
		return c.share(r, path, 0)
	}

	if !metric.IsValidType(r.Type) {
		c.add(schema.RuleInvalidMetricType, path, r.MetricID, "unknown metric type %q", r.Type)
	}
	c.noReferences(r, path, metric.FieldNumerator, metric.FieldDenominator, metric.FieldComparison)
	return metric.Scalar{MetricID: r.MetricID, MetricType: r.Type, Labels: labelsOf(r)}
}

func (c *converter) count(r metric.Record, path string) metric.Count {
	c.noReferences(r, path, metric.FieldNumerator, metric.FieldDenominator, metric.FieldComparison)
	return metric.Count{MetricID: r.MetricID, Labels: labelsOf(r)}
}

func (c *converter) rate(r metric.Record, path string) metric.Rate {
	m := metric.Rate{MetricID: r.MetricID, Labels: labelsOf(r)}
	m.Numerator = c.rateComponent(r.MetricID, r.RateNumeratorMetric, path, metric.FieldNumerator)
	m.Denominator = c.rateComponent(r.MetricID, r.RateDenominatorMetric, path, metric.FieldDenominator)
	c.noReferences(r, path, metric.FieldComparison)
	return m
}

func (c *converter) rateComponent(parent metric.ID, r *metric.Record, path, field string) metric.Count {
	if r == nil {
		c.add(schema.RuleMissingRateComponent, path, parent, "pct_rate metric %q has no %s", parent, field)
		return metric.Count{}
	}
	sub := path + "." + field
	if r.Type != metric.TypeCount {
		c.add(schema.RuleRateComponentType, sub, r.MetricID, "%s must be a count metric, got %q", field, r.Type)
	}
	return c.count(*r, sub)
}

// maxComparisonDepth bounds nested comparisons in files; a deeper chain can
// only come from a malformed document.
const maxComparisonDepth = 8

func (c *converter) share(r metric.Record, path string, depth int) metric.Share {
	m := metric.Share{MetricID: r.MetricID, Labels: labelsOf(r)}
	c.noReferences(r, path, metric.FieldNumerator, metric.FieldDenominator)
	if r.PopulationComparisonMetric == nil {
		return m
	}
	sub := path + "." + metric.FieldComparison
	cmp := *r.PopulationComparisonMetric
	if cmp.Type != metric.TypePctShare {
		c.add(schema.RuleComparisonType, sub, cmp.MetricID, "%s must be a pct_share metric, got %q", metric.FieldComparison, cmp.Type)
	}
	if depth >= maxComparisonDepth {
		c.add(schema.RuleUnexpectedReference, sub, cmp.MetricID, "comparison chain deeper than %d", maxComparisonDepth)
		return m
	}
	nested := c.share(cmp, sub, depth+1)
	m.PopulationComparison = &nested
	return m
}

// noReferences reports each of the named reference fields that r sets.
func (c *converter) noReferences(r metric.Record, path string, fields ...string) {
	for _, f := range fields {
		var set bool
		switch f {
		case metric.FieldNumerator:
			set = r.RateNumeratorMetric != nil
		case metric.FieldDenominator:
			set = r.RateDenominatorMetric != nil
		case metric.FieldComparison:
			set = r.PopulationComparisonMetric != nil
		}
		if set {
			c.add(schema.RuleUnexpectedReference, path, r.MetricID, "%s metric %q cannot carry %s", r.Type, r.MetricID, f)
		}
	}
}
