package metric

import (
	"reflect"
	"strings"
	"testing"
)

func sampleRate() Rate {
	return Rate{
		MetricID: "deaths_per_100k",
		Labels:   Labels{ChartTitle: "Deaths", ShortLabel: "per 100k"},
		Numerator: Count{
			MetricID: "deaths_total",
			Labels:   Labels{ShortLabel: "Deaths"},
		},
		Denominator: Count{
			MetricID: "population_total",
			Labels:   Labels{ShortLabel: "Population"},
		},
	}
}

func TestVariantTypes(t *testing.T) {
	cases := []struct {
		m    Config
		want Type
	}{
		{Count{MetricID: "c"}, TypeCount},
		{Rate{MetricID: "r"}, TypePctRate},
		{Share{MetricID: "s"}, TypePctShare},
		{Scalar{MetricID: "x", MetricType: TypeIndex}, TypeIndex},
	}
	for _, tc := range cases {
		if got := tc.m.Type(); got != tc.want {
			t.Errorf("%s: Type() = %q, want %q", tc.m.ID(), got, tc.want)
		}
		if !IsValidType(tc.m.Type()) {
			t.Errorf("%s: type %q reported invalid", tc.m.ID(), tc.m.Type())
		}
	}
	if IsValidType("percent") {
		t.Error("IsValidType accepted an unknown type")
	}
}

func TestWalk_VisitsNestedInFieldOrder(t *testing.T) {
	var ids []ID
	var paths []string
	Walk(sampleRate(), func(v Visit) {
		ids = append(ids, v.Metric.ID())
		paths = append(paths, strings.Join(v.Path, "."))
		if v.Cycle {
			t.Errorf("unexpected cycle at %s", v.Metric.ID())
		}
	})
	wantIDs := []ID{"deaths_per_100k", "deaths_total", "population_total"}
	if !reflect.DeepEqual(ids, wantIDs) {
		t.Errorf("ids = %v, want %v", ids, wantIDs)
	}
	wantPaths := []string{"", FieldNumerator, FieldDenominator}
	if !reflect.DeepEqual(paths, wantPaths) {
		t.Errorf("paths = %v, want %v", paths, wantPaths)
	}
}

func TestWalk_StopsAtSelfReference(t *testing.T) {
	s := &Share{MetricID: "loop_pct_share"}
	s.PopulationComparison = s

	visits := 0
	cycles := 0
	Walk(*s, func(v Visit) {
		visits++
		if v.Cycle {
			cycles++
			if len(v.Ancestors) != 1 || v.Ancestors[0] != "loop_pct_share" {
				t.Errorf("ancestors = %v", v.Ancestors)
			}
		}
	})
	if visits != 2 || cycles != 1 {
		t.Errorf("visits=%d cycles=%d, want 2 and 1", visits, cycles)
	}
}

func TestWalk_NilRoot(t *testing.T) {
	Walk(nil, func(Visit) { t.Error("fn called for nil root") })
}

func TestKinds_ConventionalOrderThenAlphabetical(t *testing.T) {
	d := DataTypeConfig{Metrics: map[Kind]Config{
		"zeta_custom":  Count{MetricID: "z"},
		KindPctShare:   Share{MetricID: "s"},
		"alpha_custom": Count{MetricID: "a"},
		KindPer100k:    sampleRate(),
		KindCount:      Count{MetricID: "c"},
	}}
	got := d.Kinds()
	want := []Kind{KindPer100k, KindPctShare, KindCount, "alpha_custom", "zeta_custom"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Kinds() = %v, want %v", got, want)
	}
}

func TestToRecord_NestsReferences(t *testing.T) {
	r := ToRecord(sampleRate())
	if r.Type != TypePctRate {
		t.Errorf("Type = %q", r.Type)
	}
	if r.RateNumeratorMetric == nil || r.RateNumeratorMetric.MetricID != "deaths_total" {
		t.Fatalf("numerator = %+v", r.RateNumeratorMetric)
	}
	if r.RateDenominatorMetric == nil || r.RateDenominatorMetric.Type != TypeCount {
		t.Fatalf("denominator = %+v", r.RateDenominatorMetric)
	}
	if r.PopulationComparisonMetric != nil {
		t.Error("rate record must not carry a population comparison")
	}

	share := ToRecord(Share{
		MetricID:             "deaths_pct_share",
		PopulationComparison: &Share{MetricID: "population_pct", Labels: Labels{ShortLabel: PopulationPctShortLabel}},
	})
	if share.PopulationComparisonMetric == nil || share.PopulationComparisonMetric.ShortLabel != PopulationPctShortLabel {
		t.Fatalf("comparison = %+v", share.PopulationComparisonMetric)
	}
}

func TestCategoryDeclares(t *testing.T) {
	c := Category{MetricIDs: []ID{"a", "b"}}
	if !c.Declares("b") {
		t.Error("Declares(b) = false")
	}
	if c.Declares("c") {
		t.Error("Declares(c) = true")
	}
}
