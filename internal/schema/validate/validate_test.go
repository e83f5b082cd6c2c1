package validate

import (
	"testing"

	"github.com/dshills/healthmetrics/internal/catalog"
	"github.com/dshills/healthmetrics/internal/metric"
	"github.com/dshills/healthmetrics/internal/schema"
)

func rulesOf(vs []schema.Violation) map[schema.Rule]int {
	out := make(map[schema.Rule]int)
	for _, v := range vs {
		out[v.Rule]++
	}
	return out
}

func TestCategories_BuiltinHasNoCriticalViolations(t *testing.T) {
	vs := Categories(catalog.Builtin())
	if crit := schema.Critical(vs); len(crit) != 0 {
		t.Fatalf("built-in catalog has critical violations: %+v", crit)
	}
	// maternal mortality ships without a definition
	if got := rulesOf(vs)[schema.RuleMissingDefinition]; got != 1 {
		t.Errorf("expected 1 MISSING_DEFINITION, got %d (%+v)", got, vs)
	}
}

func TestCategories_UndeclaredMetricID(t *testing.T) {
	c := catalog.MaternalHealth()
	c.MetricIDs = c.MetricIDs[:4] // drops live_births_estimated_total
	vs := Categories([]metric.Category{c})

	var found *schema.Violation
	for i := range vs {
		if vs[i].Rule == schema.RuleUndeclaredMetricID {
			found = &vs[i]
		}
	}
	if found == nil {
		t.Fatalf("expected UNDECLARED_METRIC_ID, got %+v", vs)
	}
	if found.MetricID != string(catalog.LiveBirthsEstimatedTotal) {
		t.Errorf("metric id = %q", found.MetricID)
	}
	want := "maternal_health/maternal_mortality/metrics.per100k.rateDenominatorMetric"
	if found.Path != want {
		t.Errorf("path = %q, want %q", found.Path, want)
	}
	if found.Severity != schema.SeverityCritical {
		t.Errorf("severity = %s", found.Severity)
	}
}

func TestCategories_SelfReferences(t *testing.T) {
	loop := &metric.Share{MetricID: "loop_pct_share"}
	loop.PopulationComparison = loop

	cases := []struct {
		name string
		m    metric.Config
	}{
		{"numerator is parent", metric.Rate{
			MetricID:    "r",
			Numerator:   metric.Count{MetricID: "r"},
			Denominator: metric.Count{MetricID: "d"},
		}},
		{"comparison is parent", metric.Share{
			MetricID:             "s",
			PopulationComparison: &metric.Share{MetricID: "s"},
		}},
		{"pointer loop", *loop},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := metric.Category{
				ID:          "c",
				DropdownIDs: []metric.DataTypeID{"d"},
				MetricIDs:   []metric.ID{"r", "d", "s", "loop_pct_share"},
				DataTypes: []metric.DataTypeConfig{{
					CategoryID: "c",
					DataTypeID: "d",
					Definition: metric.Text{Text: "defined"},
					Metrics:    map[metric.Kind]metric.Config{metric.KindPctRate: tc.m},
				}},
			}
			if got := rulesOf(Categories([]metric.Category{c}))[schema.RuleSelfReference]; got != 1 {
				t.Errorf("SELF_REFERENCE count = %d, want 1", got)
			}
		})
	}
}

func TestCategories_DuplicateRateComponent(t *testing.T) {
	c := metric.Category{
		ID:          "c",
		DropdownIDs: []metric.DataTypeID{"d"},
		MetricIDs:   []metric.ID{"r", "n"},
		DataTypes: []metric.DataTypeConfig{{
			CategoryID: "c",
			DataTypeID: "d",
			Definition: metric.Text{Text: "defined"},
			Metrics: map[metric.Kind]metric.Config{
				metric.KindPer100k: metric.Rate{
					MetricID:    "r",
					Numerator:   metric.Count{MetricID: "n"},
					Denominator: metric.Count{MetricID: "n"},
				},
			},
		}},
	}
	if got := rulesOf(Categories([]metric.Category{c}))[schema.RuleDuplicateRateComponent]; got != 1 {
		t.Errorf("DUPLICATE_RATE_COMPONENT count = %d, want 1", got)
	}
}

func TestCategories_DuplicateDataTypeAcrossCategories(t *testing.T) {
	a := catalog.MaternalHealth()
	b := catalog.MaternalHealth()
	rules := rulesOf(Categories([]metric.Category{a, b}))

	if rules[schema.RuleDuplicateDataType] != 1 {
		t.Errorf("DUPLICATE_DATA_TYPE = %d, want 1", rules[schema.RuleDuplicateDataType])
	}
	// both top-level metrics are repeated
	if rules[schema.RuleDuplicateMetricID] != 2 {
		t.Errorf("DUPLICATE_METRIC_ID = %d, want 2", rules[schema.RuleDuplicateMetricID])
	}
}

func TestCategories_SharedNestedMetricIDs(t *testing.T) {
	population := metric.Count{MetricID: "pop", Labels: metric.Labels{ShortLabel: "Population"}}
	rate := func(id metric.ID, denominator metric.Count) metric.Rate {
		return metric.Rate{
			MetricID:    id,
			Numerator:   metric.Count{MetricID: id + "_total"},
			Denominator: denominator,
		}
	}
	relabeled := population
	relabeled.Labels.ShortLabel = "Births"

	cases := []struct {
		name   string
		second metric.Config
		want   int
	}{
		{"identical count", rate("b", population), 0},
		{"different labels", rate("b", relabeled), 1},
		{"top-level share", metric.Share{MetricID: "pop"}, 1},
		{"top-level identical count", population, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := metric.Category{
				ID:          "c",
				DropdownIDs: []metric.DataTypeID{"d1", "d2"},
				MetricIDs:   []metric.ID{"a", "a_total", "b", "b_total", "pop"},
				DataTypes: []metric.DataTypeConfig{
					{
						CategoryID: "c",
						DataTypeID: "d1",
						Definition: metric.Text{Text: "defined"},
						Metrics:    map[metric.Kind]metric.Config{metric.KindPer100k: rate("a", population)},
					},
					{
						CategoryID: "c",
						DataTypeID: "d2",
						Definition: metric.Text{Text: "defined"},
						Metrics:    map[metric.Kind]metric.Config{metric.KindPer100k: tc.second},
					},
				},
			}
			vs := Categories([]metric.Category{c})
			var dups []schema.Violation
			for _, v := range vs {
				if v.Rule == schema.RuleDuplicateMetricID {
					dups = append(dups, v)
				}
			}
			if len(dups) != tc.want {
				t.Fatalf("DUPLICATE_METRIC_ID count = %d, want %d (%+v)", len(dups), tc.want, vs)
			}
			for _, v := range dups {
				if v.MetricID != "pop" || v.Severity != schema.SeverityCritical {
					t.Errorf("unexpected violation %+v", v)
				}
			}
		})
	}
}

func TestCategories_ScalarCarryingVariantType(t *testing.T) {
	c := metric.Category{
		ID:          "c",
		DropdownIDs: []metric.DataTypeID{"d"},
		MetricIDs:   []metric.ID{"x"},
		DataTypes: []metric.DataTypeConfig{{
			CategoryID: "c",
			DataTypeID: "d",
			Definition: metric.Text{Text: "defined"},
			Metrics: map[metric.Kind]metric.Config{
				metric.KindPctRate: metric.Scalar{MetricID: "x", MetricType: metric.TypePctRate},
			},
		}},
	}
	vs := Categories([]metric.Category{c})
	if len(vs) != 1 || vs[0].Rule != schema.RuleScalarType {
		t.Errorf("expected a single SCALAR_TYPE violation, got %+v", vs)
	}
}

func TestCategories_CategoryShapeRules(t *testing.T) {
	c := metric.Category{
		ID:          "c",
		DropdownIDs: nil,
		MetricIDs:   []metric.ID{"x", "never_used"},
		DataTypes: []metric.DataTypeConfig{{
			CategoryID: "other",
			DataTypeID: "d",
			Metrics: map[metric.Kind]metric.Config{
				metric.KindCount: metric.Count{MetricID: "x"},
				metric.KindIndex: nil,
			},
		}},
	}
	rules := rulesOf(Categories([]metric.Category{c}))
	want := map[schema.Rule]int{
		schema.RuleCategoryMismatch:  1,
		schema.RuleMissingDropdownID: 1,
		schema.RuleMissingDefinition: 1,
		schema.RuleEmptyIdentifier:   1,
		schema.RuleUnusedMetricID:    1,
	}
	for r, n := range want {
		if rules[r] != n {
			t.Errorf("%s = %d, want %d (all: %v)", r, rules[r], n, rules)
		}
	}
}

func TestCategories_EmptyIdentifiers(t *testing.T) {
	c := metric.Category{
		DataTypes: []metric.DataTypeConfig{{
			Definition: metric.Text{Text: "defined"},
			Metrics: map[metric.Kind]metric.Config{
				metric.KindCount: metric.Count{},
			},
		}},
	}
	vs := Categories([]metric.Category{c})
	if got := rulesOf(vs)[schema.RuleEmptyIdentifier]; got != 3 {
		t.Errorf("EMPTY_IDENTIFIER = %d, want 3: %+v", got, vs)
	}
	if vs[0].Path != "categories[0]" {
		t.Errorf("first path = %q", vs[0].Path)
	}
}
