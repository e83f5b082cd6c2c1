package catalog

import (
	"github.com/dshills/healthmetrics/internal/mappolicy"
	"github.com/dshills/healthmetrics/internal/metric"
)

const MaternalHealthCategoryID metric.CategoryID = "maternal_health"

// MaternalHealthDropdownIDs lists the maternal health data types in menu order.
var MaternalHealthDropdownIDs = []metric.DataTypeID{
	"maternal_mortality",
}

// Maternal health metric ids.
const (
	MaternalMortalityPer100k       metric.ID = "maternal_mortality_per_100k"
	MaternalMortalityPctShare      metric.ID = "maternal_mortality_pct_share"
	MaternalMortalityPopulationPct metric.ID = "maternal_mortality_population_pct"
	MaternalDeathsEstimatedTotal   metric.ID = "maternal_deaths_estimated_total"
	LiveBirthsEstimatedTotal       metric.ID = "live_births_estimated_total"
)

// MaternalHealthMetricIDs is the full set of metric ids the maternal health
// category may reference.
var MaternalHealthMetricIDs = []metric.ID{
	MaternalMortalityPer100k,
	MaternalMortalityPctShare,
	MaternalMortalityPopulationPct,
	MaternalDeathsEstimatedTotal,
	LiveBirthsEstimatedTotal,
}

// MaternalHealth returns the maternal health category. Each call builds a
// fresh value, so callers may not observe each other's changes.
func MaternalHealth() metric.Category {
	return metric.Category{
		ID:          MaternalHealthCategoryID,
		DropdownIDs: append([]metric.DataTypeID(nil), MaternalHealthDropdownIDs...),
		MetricIDs:   append([]metric.ID(nil), MaternalHealthMetricIDs...),
		DataTypes: []metric.DataTypeConfig{
			{
				CategoryID:            MaternalHealthCategoryID,
				DataTypeID:            "maternal_mortality",
				MapConfig:             mappolicy.DefaultHigherIsWorse,
				DataTypeShortLabel:    "Maternal mortality",
				FullDisplayName:       "Maternal mortality",
				FullDisplayNameInline: "maternal mortality",
				Definition:            metric.Text{Text: ""},
				Description:           metric.Text{Text: ""},
				DataTableTitle:        "Breakdown summary for maternal mortality",
				Metrics: map[metric.Kind]metric.Config{
					metric.KindPer100k: metric.Rate{
						MetricID: MaternalMortalityPer100k,
						Labels: metric.Labels{
							ChartTitle:          "Maternal mortality",
							TrendsCardTitleName: "Rates of maternal mortality over time",
							ColumnTitleHeader:   "Maternal mortality",
							ShortLabel:          "% maternal_mortality",
						},
						Numerator: metric.Count{
							MetricID: MaternalDeathsEstimatedTotal,
							Labels:   metric.Labels{ShortLabel: "Maternal deaths"},
						},
						Denominator: metric.Count{
							MetricID: LiveBirthsEstimatedTotal,
							Labels:   metric.Labels{ShortLabel: "Live births"},
						},
					},
					metric.KindPctShare: metric.Share{
						MetricID: MaternalMortalityPctShare,
						Labels: metric.Labels{
							ChartTitle:        "Share of maternal mortality",
							ColumnTitleHeader: "Share of maternal mortality",
							ShortLabel:        "% of maternal_mortality",
						},
						PopulationComparison: &metric.Share{
							MetricID: MaternalMortalityPopulationPct,
							Labels: metric.Labels{
								ChartTitle:        "Population vs. distribution of total maternal mortality",
								ColumnTitleHeader: metric.PopulationPctTitle,
								ShortLabel:        metric.PopulationPctShortLabel,
							},
						},
					},
				},
			},
		},
	}
}

// Builtin returns every category compiled into the binary, in registry order.
func Builtin() []metric.Category {
	return []metric.Category{
		MaternalHealth(),
	}
}
