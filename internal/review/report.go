package review

import (
	"github.com/dshills/healthmetrics/internal/catalog"
	"github.com/dshills/healthmetrics/internal/metric"
	"github.com/dshills/healthmetrics/internal/registry"
	"github.com/dshills/healthmetrics/internal/schema"
)

// Tool is the name recorded in every report.
const Tool = "healthmetrics"

// Check validates the built-in categories together with files and returns
// the report. Summary counts cover every violation; the Violations list is
// filtered by threshold.
func Check(version string, files []*catalog.File, threshold schema.Severity) *schema.Report {
	cats := catalog.Builtin()
	var shape []schema.Violation
	sources := make([]schema.Source, 0, len(files))
	for _, f := range files {
		cats = append(cats, f.Categories...)
		shape = append(shape, f.Violations...)
		sources = append(sources, schema.Source{Path: f.Path, Hash: f.Hash})
	}

	violations := registry.Check(cats, shape)
	shown := FilterBySeverity(violations, threshold)
	if shown == nil {
		shown = []schema.Violation{}
	}

	return &schema.Report{
		Tool:    Tool,
		Version: version,
		Input: schema.Input{
			Builtin:           true,
			Sources:           sources,
			SeverityThreshold: string(threshold),
		},
		Summary:    Summarize(violations),
		Violations: shown,
		Meta:       measure(cats),
	}
}

func measure(cats []metric.Category) schema.Meta {
	m := schema.Meta{Categories: len(cats)}
	ids := make(map[metric.ID]struct{})
	for _, c := range cats {
		m.DataTypes += len(c.DataTypes)
		for i := range c.DataTypes {
			for _, cfg := range c.DataTypes[i].Metrics {
				metric.Walk(cfg, func(v metric.Visit) {
					ids[v.Metric.ID()] = struct{}{}
				})
			}
		}
	}
	m.Metrics = len(ids)
	return m
}
