// Package metric defines the configuration model for health data types and
// the metrics that belong to them.
//
// A metric configuration is a tagged variant keyed by its Type: only a Rate
// carries a numerator and a denominator, and only a Share carries a
// population comparison. Both references are typed, so a rate built in Go
// cannot point at anything but count metrics and a comparison cannot be
// anything but a share.
package metric

import (
	"sort"

	"github.com/dshills/healthmetrics/internal/mappolicy"
)

// ID identifies a single metric, e.g. "maternal_mortality_per_100k".
type ID string

// CategoryID identifies a health category, e.g. "maternal_health".
type CategoryID string

// DataTypeID identifies a data type within a category, e.g. "maternal_mortality".
type DataTypeID string

// Type governs how downstream consumers format and aggregate a metric value.
type Type string

const (
	TypePctRate             Type = "pct_rate"
	TypePctShare            Type = "pct_share"
	TypeCount               Type = "count"
	TypePer100k             Type = "per100k"
	TypePctRelativeInequity Type = "pct_relative_inequity"
	TypeIndex               Type = "index"
	TypeRatio               Type = "ratio"
	TypeAgeAdjustedRatio    Type = "age_adjusted_ratio"
)

// IsValidType reports whether t is one of the defined metric types.
func IsValidType(t Type) bool {
	switch t {
	case TypePctRate, TypePctShare, TypeCount, TypePer100k,
		TypePctRelativeInequity, TypeIndex, TypeRatio, TypeAgeAdjustedRatio:
		return true
	}
	return false
}

// Kind is the key under which a data type lists one of its metrics. The set
// is open; the constants below are the conventional keys.
type Kind string

const (
	KindPer100k             Kind = "per100k"
	KindPctRate             Kind = "pct_rate"
	KindPctShare            Kind = "pct_share"
	KindPctRelativeInequity Kind = "pct_relative_inequity"
	KindIndex               Kind = "index"
	KindRatio               Kind = "ratio"
	KindAgeAdjustedRatio    Kind = "age_adjusted_ratio"
	KindCount               Kind = "count"
)

var kindOrder = map[Kind]int{
	KindPer100k:             0,
	KindPctRate:             1,
	KindPctShare:            2,
	KindPctRelativeInequity: 3,
	KindIndex:               4,
	KindRatio:               5,
	KindAgeAdjustedRatio:    6,
	KindCount:               7,
}

// Labels are the display strings of a metric. Each consumer reads its own
// field, so repeated text across fields is expected. An empty string means
// the label has not been authored yet.
type Labels struct {
	ChartTitle          string
	TrendsCardTitleName string
	ColumnTitleHeader   string
	ShortLabel          string
}

// Config is implemented by Count, Rate, Share and Scalar.
type Config interface {
	ID() ID
	Type() Type
	DisplayLabels() Labels
	// Refs returns the metrics nested under this one, in field order.
	Refs() []Ref
	sealed()
}

// Ref is a nested metric reference together with the field holding it.
type Ref struct {
	Field  string
	Metric Config
}

// Field names of nested references, as they appear in serialized records.
const (
	FieldNumerator   = "rateNumeratorMetric"
	FieldDenominator = "rateDenominatorMetric"
	FieldComparison  = "populationComparisonMetric"
)

// Count is a raw tally, e.g. estimated maternal deaths.
type Count struct {
	MetricID ID
	Labels   Labels
}

func (m Count) ID() ID { return m.MetricID }
func (m Count) Type() Type { return TypeCount }
func (m Count) DisplayLabels() Labels { return m.Labels }
func (m Count) Refs() []Ref { return nil }
func (Count) sealed() {}

// Rate is a pct_rate metric defined by a numerator over a denominator.
type Rate struct {
	MetricID    ID
	Labels      Labels
	Numerator   Count
	Denominator Count
}

func (m Rate) ID() ID { return m.MetricID }
func (m Rate) Type() Type { return TypePctRate }
func (m Rate) DisplayLabels() Labels { return m.Labels }
func (Rate) sealed() {}

func (m Rate) Refs() []Ref {
	return []Ref{
		{Field: FieldNumerator, Metric: m.Numerator},
		{Field: FieldDenominator, Metric: m.Denominator},
	}
}

// Share is a pct_share metric, optionally paired with the population share
// it should be compared against.
type Share struct {
	MetricID             ID
	Labels               Labels
	PopulationComparison *Share
}

func (m Share) ID() ID { return m.MetricID }
func (m Share) Type() Type { return TypePctShare }
func (m Share) DisplayLabels() Labels { return m.Labels }
func (Share) sealed() {}

func (m Share) Refs() []Ref {
	if m.PopulationComparison == nil {
		return nil
	}
	return []Ref{{Field: FieldComparison, Metric: *m.PopulationComparison}}
}

// Scalar covers the remaining metric types, which carry no references.
// MetricType must not be pct_rate, pct_share or count; those have their own
// variants.
type Scalar struct {
	MetricID   ID
	MetricType Type
	Labels     Labels
}

func (m Scalar) ID() ID { return m.MetricID }
func (m Scalar) Type() Type { return m.MetricType }
func (m Scalar) DisplayLabels() Labels { return m.Labels }
func (m Scalar) Refs() []Ref { return nil }
func (Scalar) sealed() {}

// Text is a free-text container; it may be empty.
type Text struct {
	Text string
}

// DataTypeConfig describes one data type of a health category and the
// metrics available for it.
type DataTypeConfig struct {
	CategoryID            CategoryID
	DataTypeID            DataTypeID
	MapConfig             mappolicy.Policy
	DataTypeShortLabel    string
	FullDisplayName       string
	FullDisplayNameInline string
	Definition            Text
	Description           Text
	DataTableTitle        string
	Metrics               map[Kind]Config
}

// Metric returns the metric listed under kind.
func (d *DataTypeConfig) Metric(kind Kind) (Config, bool) {
	m, ok := d.Metrics[kind]
	return m, ok
}

// Kinds returns the metric kinds of d, conventional kinds first in their
// usual order, then any others alphabetically.
func (d *DataTypeConfig) Kinds() []Kind {
	kinds := make([]Kind, 0, len(d.Metrics))
	for k := range d.Metrics {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		oi, iok := kindOrder[kinds[i]]
		oj, jok := kindOrder[kinds[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		}
		return kinds[i] < kinds[j]
	})
	return kinds
}

// Category groups the data types of one health topic with the metric ids
// it declares.
type Category struct {
	ID CategoryID
	// DropdownIDs lists the data types offered for the category, in order.
	DropdownIDs []DataTypeID
	// MetricIDs is the closed set of metric ids the category may reference.
	MetricIDs []ID
	DataTypes []DataTypeConfig
}

// Declares reports whether id is among the category's declared metric ids.
func (c *Category) Declares(id ID) bool {
	for _, d := range c.MetricIDs {
		if d == id {
			return true
		}
	}
	return false
}
