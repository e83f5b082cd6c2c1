package registry

import "github.com/dshills/healthmetrics/internal/metric"

// cloneCategory deep-copies c. It must only be called on validated
// categories; a comparison cycle would not terminate.
func cloneCategory(c metric.Category) metric.Category {
	out := metric.Category{
		ID:          c.ID,
		DropdownIDs: append([]metric.DataTypeID(nil), c.DropdownIDs...),
		MetricIDs:   append([]metric.ID(nil), c.MetricIDs...),
		DataTypes:   make([]metric.DataTypeConfig, len(c.DataTypes)),
	}
	for i, dt := range c.DataTypes {
		metrics := make(map[metric.Kind]metric.Config, len(dt.Metrics))
		for k, m := range dt.Metrics {
			metrics[k] = cloneMetric(m)
		}
		dt.Metrics = metrics
		out.DataTypes[i] = dt
	}
	return out
}

func cloneMetric(m metric.Config) metric.Config {
	s, ok := m.(metric.Share)
	if !ok {
		// the other variants hold no pointers
		return m
	}
	return cloneShare(s)
}

func cloneShare(s metric.Share) metric.Share {
	if s.PopulationComparison != nil {
		cmp := cloneShare(*s.PopulationComparison)
		s.PopulationComparison = &cmp
	}
	return s
}
