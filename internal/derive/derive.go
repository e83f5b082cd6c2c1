// Package derive computes rate and share values for a data type from raw
// counts, following the numerator and denominator relationships recorded in
// its metric configuration.
//
// For every Rate metric the value is numerator / denominator, scaled by
// 100 000 when the metric is listed under the per100k kind and by 100
// otherwise. For every Share metric the value is the group's numerator as a
// percent of the all-groups numerator, where the numerator is taken from the
// data type's rate metric. A population comparison share does the same with
// the denominator. When the data type lists a pct_relative_inequity scalar,
// it is derived from the share and its population comparison.
//
// All values are rounded to one decimal. A missing or zero denominator
// yields no value rather than zero.
package derive

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dshills/healthmetrics/internal/metric"
)

// DefaultAllGroup is the group label holding totals across all groups.
const DefaultAllGroup = "All"

// ErrNoRate is returned when a data type has no rate metric to take its
// numerator and denominator from.
var ErrNoRate = errors.New("data type has no rate metric")

// Row holds the raw counts for one demographic group. A metric id missing
// from Counts has no value.
type Row struct {
	Group  string
	Counts map[metric.ID]float64
}

// Result holds the derived values for one group.
type Result struct {
	Group  string
	Values map[metric.ID]float64
}

// Value returns the derived value of id and whether it exists.
func (r Result) Value(id metric.ID) (float64, bool) {
	v, ok := r.Values[id]
	return v, ok
}

type plan struct {
	rates     []rateCol
	share     *metric.Share
	inequity  metric.ID
	numerator metric.ID
	denom     metric.ID
}

type rateCol struct {
	rate  metric.Rate
	scale float64
}

// Columns returns the metric ids Compute derives for dt, in output order.
func Columns(dt *metric.DataTypeConfig) ([]metric.ID, error) {
	p, err := newPlan(dt)
	if err != nil {
		return nil, err
	}
	var ids []metric.ID
	for _, rc := range p.rates {
		ids = append(ids, rc.rate.MetricID)
	}
	if p.share != nil {
		ids = append(ids, p.share.MetricID)
		if p.share.PopulationComparison != nil {
			ids = append(ids, p.share.PopulationComparison.MetricID)
		}
	}
	if p.inequity != "" {
		ids = append(ids, p.inequity)
	}
	return ids, nil
}

func newPlan(dt *metric.DataTypeConfig) (*plan, error) {
	p := &plan{}
	for _, kind := range dt.Kinds() {
		switch m := dt.Metrics[kind].(type) {
		case metric.Rate:
			scale := 100.0
			if kind == metric.KindPer100k {
				scale = 100_000
			}
			p.rates = append(p.rates, rateCol{rate: m, scale: scale})
			if p.numerator == "" {
				p.numerator = m.Numerator.MetricID
				p.denom = m.Denominator.MetricID
			}
		case metric.Share:
			if p.share == nil {
				s := m
				p.share = &s
			}
		case metric.Scalar:
			if m.MetricType == metric.TypePctRelativeInequity && p.inequity == "" {
				p.inequity = m.MetricID
			}
		}
	}
	if len(p.rates) == 0 {
		return nil, fmt.Errorf("%s/%s: %w", dt.CategoryID, dt.DataTypeID, ErrNoRate)
	}
	if p.share == nil || p.share.PopulationComparison == nil {
		p.inequity = ""
	}
	return p, nil
}

// Compute derives the data type's values for every row. allGroup names the
// row holding totals; it is required when dt has a share metric.
func Compute(dt *metric.DataTypeConfig, rows []Row, allGroup string) ([]Result, error) {
	p, err := newPlan(dt)
	if err != nil {
		return nil, err
	}
	if allGroup == "" {
		allGroup = DefaultAllGroup
	}

	var all *Row
	for i := range rows {
		if rows[i].Group == allGroup {
			all = &rows[i]
			break
		}
	}
	if p.share != nil && all == nil {
		return nil, fmt.Errorf("no %q row to compute shares against", allGroup)
	}

	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		res := Result{Group: row.Group, Values: make(map[metric.ID]float64)}
		for _, rc := range p.rates {
			if v, ok := ratio(row, rc.rate.Numerator.MetricID, row, rc.rate.Denominator.MetricID, rc.scale); ok {
				res.Values[rc.rate.MetricID] = v
			}
		}
		if p.share != nil {
			share, shareOK := ratio(row, p.numerator, *all, p.numerator, 100)
			if shareOK {
				res.Values[p.share.MetricID] = share
			}
			// Unknown groups have no population to compare against.
			if cmp := p.share.PopulationComparison; cmp != nil && !IsUnknown(row.Group) {
				pop, popOK := ratio(row, p.denom, *all, p.denom, 100)
				if popOK {
					res.Values[cmp.MetricID] = pop
				}
				if p.inequity != "" && shareOK && popOK && pop != 0 {
					res.Values[p.inequity] = round1((share - pop) / pop * 100)
				}
			}
		}
		results = append(results, res)
	}
	return results, nil
}

// IsUnknown reports whether a group label stands for unknown demographics.
func IsUnknown(group string) bool {
	return strings.Contains(strings.ToLower(group), "unknown")
}

func ratio(numRow Row, num metric.ID, denRow Row, den metric.ID, scale float64) (float64, bool) {
	n, ok := numRow.Counts[num]
	if !ok {
		return 0, false
	}
	d, ok := denRow.Counts[den]
	if !ok || d == 0 {
		return 0, false
	}
	return round1(n / d * scale), true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
