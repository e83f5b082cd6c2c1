// Package registry assembles categories into a validated, immutable
// registry with an index from metric id to its owning data type.
//
// A registry is checked once when it is built. Any CRITICAL violation
// aborts construction; the remaining findings stay available through
// Violations for reporting. After construction nothing changes, so a
// registry is safe for concurrent readers.
package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/healthmetrics/internal/catalog"
	"github.com/dshills/healthmetrics/internal/metric"
	"github.com/dshills/healthmetrics/internal/schema"
	"github.com/dshills/healthmetrics/internal/schema/validate"
)

// Entry locates one metric within the registry.
type Entry struct {
	Category *metric.Category
	DataType *metric.DataTypeConfig
	Kind     metric.Kind
	// Path holds the reference fields from the kind's metric down to Metric;
	// empty for top-level metrics.
	Path   string
	Metric metric.Config
}

type dataTypeKey struct {
	category metric.CategoryID
	dataType metric.DataTypeID
}

// Registry is an ordered, validated set of categories. Values returned by
// its accessors are shared and must not be modified.
type Registry struct {
	categories []metric.Category
	dataTypes  []*metric.DataTypeConfig
	byDataType map[dataTypeKey]*metric.DataTypeConfig
	byMetric   map[metric.ID]Entry
	violations []schema.Violation
}

// InvalidError is returned when a registry cannot be built because of
// CRITICAL violations.
type InvalidError struct {
	Violations []schema.Violation
}

func (e *InvalidError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "registry has %d critical violation(s)", len(e.Violations))
	for _, v := range e.Violations {
		fmt.Fprintf(&sb, "\n  %s %s at %s: %s", v.ID, v.Rule, v.Path, v.Message)
	}
	return sb.String()
}

// Check validates cats as one registry and returns every violation, shape
// violations first, numbered in order.
func Check(cats []metric.Category, shape []schema.Violation) []schema.Violation {
	all := make([]schema.Violation, 0, len(shape))
	all = append(all, shape...)
	all = append(all, validate.Categories(cats)...)
	schema.Number(all)
	return all
}

// New validates cats and builds a registry from them. The categories are
// copied, so later changes by the caller do not reach the registry.
func New(cats ...metric.Category) (*Registry, error) {
	return build(cats, nil)
}

// Load builds a registry from the built-in categories followed by the
// categories of each catalog file, in order.
func Load(files ...*catalog.File) (*Registry, error) {
	cats := catalog.Builtin()
	var shape []schema.Violation
	for _, f := range files {
		cats = append(cats, f.Categories...)
		shape = append(shape, f.Violations...)
	}
	return build(cats, shape)
}

var builtin = sync.OnceValues(func() (*Registry, error) {
	return New(catalog.Builtin()...)
})

// Default returns the registry of built-in categories. It is built on first
// use and shared for the life of the process.
func Default() (*Registry, error) {
	return builtin()
}

// MustDefault is like Default but panics if the built-in categories are
// invalid.
func MustDefault() *Registry {
	r, err := Default()
	if err != nil {
		panic(err)
	}
	return r
}

func build(cats []metric.Category, shape []schema.Violation) (*Registry, error) {
	violations := Check(cats, shape)
	if crit := schema.Critical(violations); len(crit) > 0 {
		return nil, &InvalidError{Violations: crit}
	}

	r := &Registry{
		categories: make([]metric.Category, len(cats)),
		byDataType: make(map[dataTypeKey]*metric.DataTypeConfig),
		byMetric:   make(map[metric.ID]Entry),
		violations: violations,
	}
	for i := range cats {
		r.categories[i] = cloneCategory(cats[i])
	}
	for ci := range r.categories {
		c := &r.categories[ci]
		for di := range c.DataTypes {
			dt := &c.DataTypes[di]
			r.dataTypes = append(r.dataTypes, dt)
			r.byDataType[dataTypeKey{category: c.ID, dataType: dt.DataTypeID}] = dt
			r.index(c, dt)
		}
	}
	return r, nil
}

func (r *Registry) index(c *metric.Category, dt *metric.DataTypeConfig) {
	for _, kind := range dt.Kinds() {
		metric.Walk(dt.Metrics[kind], func(v metric.Visit) {
			id := v.Metric.ID()
			if prev, seen := r.byMetric[id]; seen && (prev.Path == "" || len(v.Path) > 0) {
				return
			}
			r.byMetric[id] = Entry{
				Category: c,
				DataType: dt,
				Kind:     kind,
				Path:     strings.Join(v.Path, "."),
				Metric:   v.Metric,
			}
		})
	}
}

// Categories returns the categories in registry order.
func (r *Registry) Categories() []metric.Category {
	return r.categories
}

// Category returns the category with the given id.
func (r *Registry) Category(id metric.CategoryID) (*metric.Category, bool) {
	for i := range r.categories {
		if r.categories[i].ID == id {
			return &r.categories[i], true
		}
	}
	return nil, false
}

// DataTypes returns every data type in registry order.
func (r *Registry) DataTypes() []*metric.DataTypeConfig {
	return r.dataTypes
}

// DataType returns the data type identified by the category/data type pair.
func (r *Registry) DataType(category metric.CategoryID, dataType metric.DataTypeID) (*metric.DataTypeConfig, bool) {
	dt, ok := r.byDataType[dataTypeKey{category: category, dataType: dataType}]
	return dt, ok
}

// Metric returns the metric listed under kind for the given data type.
func (r *Registry) Metric(category metric.CategoryID, dataType metric.DataTypeID, kind metric.Kind) (metric.Config, bool) {
	dt, ok := r.DataType(category, dataType)
	if !ok {
		return nil, false
	}
	return dt.Metric(kind)
}

// Lookup resolves a metric id, top-level or nested, to its entry. The data
// type listing the id at the top level owns it; a nested id shared by
// several data types resolves to the first one in registry order.
func (r *Registry) Lookup(id metric.ID) (Entry, bool) {
	e, ok := r.byMetric[id]
	return e, ok
}

// MetricCount returns the number of distinct metric ids in the index.
func (r *Registry) MetricCount() int {
	return len(r.byMetric)
}

// Violations returns the non-critical findings recorded while building.
func (r *Registry) Violations() []schema.Violation {
	return r.violations
}
