package registry

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/healthmetrics/internal/catalog"
	"github.com/dshills/healthmetrics/internal/metric"
	"github.com/dshills/healthmetrics/internal/schema"
)

func TestDefault_MaternalMortalityLookups(t *testing.T) {
	r, err := Default()
	require.NoError(t, err)

	dt, ok := r.DataType("maternal_health", "maternal_mortality")
	require.True(t, ok)
	assert.Equal(t, "Maternal mortality", dt.FullDisplayName)

	per100k, ok := r.Metric("maternal_health", "maternal_mortality", metric.KindPer100k)
	require.True(t, ok)
	assert.Equal(t, metric.ID("maternal_mortality_per_100k"), per100k.ID())
	rate, ok := per100k.(metric.Rate)
	require.True(t, ok)
	assert.Equal(t, metric.ID("maternal_deaths_estimated_total"), rate.Numerator.ID())
	assert.Equal(t, metric.ID("live_births_estimated_total"), rate.Denominator.ID())

	pctShare, ok := r.Metric("maternal_health", "maternal_mortality", metric.KindPctShare)
	require.True(t, ok)
	assert.Equal(t, metric.ID("maternal_mortality_pct_share"), pctShare.ID())
	share, ok := pctShare.(metric.Share)
	require.True(t, ok)
	require.NotNil(t, share.PopulationComparison)
	assert.Equal(t, metric.ID("maternal_mortality_population_pct"), share.PopulationComparison.ID())
}

func TestDefault_IsShared(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]*Registry, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = MustDefault()
		}(i)
	}
	wg.Wait()
	for _, r := range got[1:] {
		assert.Same(t, got[0], r)
	}
}

func TestLookup_TopLevelAndNested(t *testing.T) {
	r := MustDefault()

	e, ok := r.Lookup(catalog.MaternalMortalityPer100k)
	require.True(t, ok)
	assert.Equal(t, metric.KindPer100k, e.Kind)
	assert.Empty(t, e.Path)
	assert.Equal(t, metric.CategoryID("maternal_health"), e.Category.ID)
	assert.Equal(t, metric.DataTypeID("maternal_mortality"), e.DataType.DataTypeID)

	e, ok = r.Lookup(catalog.LiveBirthsEstimatedTotal)
	require.True(t, ok)
	assert.Equal(t, metric.KindPer100k, e.Kind)
	assert.Equal(t, metric.FieldDenominator, e.Path)
	assert.Equal(t, metric.TypeCount, e.Metric.Type())

	e, ok = r.Lookup(catalog.MaternalMortalityPopulationPct)
	require.True(t, ok)
	assert.Equal(t, metric.KindPctShare, e.Kind)
	assert.Equal(t, metric.FieldComparison, e.Path)

	_, ok = r.Lookup("not_a_metric")
	assert.False(t, ok)

	assert.Equal(t, len(catalog.MaternalHealthMetricIDs), r.MetricCount())
}

func TestLookup_EveryDeclaredIDResolves(t *testing.T) {
	r := MustDefault()
	for _, c := range r.Categories() {
		for _, id := range c.MetricIDs {
			e, ok := r.Lookup(id)
			if assert.True(t, ok, "metric %s", id) {
				assert.Equal(t, id, e.Metric.ID())
			}
		}
	}
}

func TestNew_FailsFastOnCriticalViolations(t *testing.T) {
	c := catalog.MaternalHealth()
	c.MetricIDs = nil

	_, err := New(c)
	require.Error(t, err)

	var invalid *InvalidError
	require.ErrorAs(t, err, &invalid)
	assert.Len(t, invalid.Violations, 5)
	for _, v := range invalid.Violations {
		assert.Equal(t, schema.RuleUndeclaredMetricID, v.Rule)
		assert.Equal(t, schema.SeverityCritical, v.Severity)
	}
	assert.Contains(t, err.Error(), "UNDECLARED_METRIC_ID")
}

func TestNew_RejectsDuplicatePairsAcrossCategories(t *testing.T) {
	_, err := New(catalog.MaternalHealth(), catalog.MaternalHealth())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DUPLICATE_DATA_TYPE")
}

func TestNew_KeepsNonCriticalViolations(t *testing.T) {
	r, err := New(catalog.MaternalHealth())
	require.NoError(t, err)
	require.Len(t, r.Violations(), 1)
	assert.Equal(t, schema.RuleMissingDefinition, r.Violations()[0].Rule)
	assert.Equal(t, "V-0001", r.Violations()[0].ID)
}

func TestNew_IsolatedFromCallerChanges(t *testing.T) {
	c := catalog.MaternalHealth()
	r, err := New(c)
	require.NoError(t, err)

	share := c.DataTypes[0].Metrics[metric.KindPctShare].(metric.Share)
	share.PopulationComparison.MetricID = "mutated"
	c.DataTypes[0].Metrics[metric.KindPer100k] = metric.Count{MetricID: "mutated"}
	c.DataTypes[0].FullDisplayName = "mutated"

	dt, ok := r.DataType("maternal_health", "maternal_mortality")
	require.True(t, ok)
	assert.Equal(t, "Maternal mortality", dt.FullDisplayName)
	_, isRate := dt.Metrics[metric.KindPer100k].(metric.Rate)
	assert.True(t, isRate)
	got := dt.Metrics[metric.KindPctShare].(metric.Share)
	assert.Equal(t, catalog.MaternalMortalityPopulationPct, got.PopulationComparison.ID())
}

func TestLoad_MergesCatalogFiles(t *testing.T) {
	f, err := catalog.Load(filepath.Join("..", "catalog", "testdata", "hiv.yaml"))
	require.NoError(t, err)

	r, err := Load(f)
	require.NoError(t, err)
	require.Len(t, r.Categories(), 2)
	assert.Equal(t, metric.CategoryID("maternal_health"), r.Categories()[0].ID)
	assert.Equal(t, metric.CategoryID("hiv"), r.Categories()[1].ID)
	assert.Len(t, r.DataTypes(), 2)

	e, ok := r.Lookup("hiv_population_total")
	require.True(t, ok)
	assert.Equal(t, metric.DataTypeID("hiv_deaths"), e.DataType.DataTypeID)

	c, ok := r.Category("hiv")
	require.True(t, ok)
	assert.Equal(t, []metric.DataTypeID{"hiv_deaths"}, c.DropdownIDs)
	_, ok = r.Category("nope")
	assert.False(t, ok)
}

func TestLoad_ShapeViolationsAbort(t *testing.T) {
	f, err := catalog.Load(filepath.Join("..", "catalog", "testdata", "broken.yaml"))
	require.NoError(t, err)

	_, err = Load(f)
	var invalid *InvalidError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, schema.RuleUnknownMapPolicy, invalid.Violations[0].Rule)
}

func TestCheck_NumbersShapeFirst(t *testing.T) {
	shape := []schema.Violation{schema.NewViolation(schema.RuleUnknownMapPolicy, "x", "", "bad policy")}
	vs := Check([]metric.Category{catalog.MaternalHealth()}, shape)
	require.Len(t, vs, 2)
	assert.Equal(t, "V-0001", vs[0].ID)
	assert.Equal(t, schema.RuleUnknownMapPolicy, vs[0].Rule)
	assert.Equal(t, "V-0002", vs[1].ID)
	assert.Equal(t, schema.RuleMissingDefinition, vs[1].Rule)
}

// birthsCategory lists m as the only metric of a second category.
func birthsCategory(kind metric.Kind, m metric.Config) metric.Category {
	return metric.Category{
		ID:          "births",
		DropdownIDs: []metric.DataTypeID{"live_births"},
		MetricIDs:   []metric.ID{m.ID()},
		DataTypes: []metric.DataTypeConfig{{
			CategoryID: "births",
			DataTypeID: "live_births",
			Definition: metric.Text{Text: "Live births recorded in the period."},
			Metrics:    map[metric.Kind]metric.Config{kind: m},
		}},
	}
}

func TestNew_RejectsNestedIDReusedWithOtherType(t *testing.T) {
	share := metric.Share{MetricID: catalog.LiveBirthsEstimatedTotal}
	_, err := New(catalog.MaternalHealth(), birthsCategory(metric.KindPctShare, share))

	var invalid *InvalidError
	require.ErrorAs(t, err, &invalid)
	require.Len(t, invalid.Violations, 1)
	v := invalid.Violations[0]
	assert.Equal(t, schema.RuleDuplicateMetricID, v.Rule)
	assert.Equal(t, string(catalog.LiveBirthsEstimatedTotal), v.MetricID)
	assert.Equal(t, "births/live_births/metrics.pct_share", v.Path)
}

func TestLookup_PrefersTopLevelOwner(t *testing.T) {
	mh := catalog.MaternalHealth()
	births := mh.DataTypes[0].Metrics[metric.KindPer100k].(metric.Rate).Denominator

	r, err := New(mh, birthsCategory(metric.KindCount, births))
	require.NoError(t, err)

	e, ok := r.Lookup(catalog.LiveBirthsEstimatedTotal)
	require.True(t, ok)
	assert.Equal(t, metric.CategoryID("births"), e.Category.ID)
	assert.Equal(t, metric.KindCount, e.Kind)
	assert.Empty(t, e.Path)

	// ids only reachable through nesting keep their first owner
	e, ok = r.Lookup(catalog.MaternalDeathsEstimatedTotal)
	require.True(t, ok)
	assert.Equal(t, metric.CategoryID("maternal_health"), e.Category.ID)
}
