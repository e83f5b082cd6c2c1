// Package mappolicy holds the map-coloring policies referenced by data type
// configurations. A policy is an opaque token to everything except the map
// renderer; configuration only ever refers to it by name.
package mappolicy

import (
	"fmt"
	"sort"
	"strings"
)

// Policy describes how a choropleth map colors a metric.
type Policy struct {
	Name           string
	Scheme         string
	MinColor       string
	MidColor       string
	HigherIsBetter bool
}

var (
	// DefaultHigherIsWorse flags high values as the adverse outcome.
	DefaultHigherIsWorse = Policy{
		Name:     "default_higher_is_worse",
		Scheme:   "darkred",
		MinColor: "#fff5ed",
		MidColor: "#f58a6c",
	}
	// DefaultHigherIsBetter flags high values as the favorable outcome.
	DefaultHigherIsBetter = Policy{
		Name:           "default_higher_is_better",
		Scheme:         "darkgreen",
		MinColor:       "#f2f9ef",
		MidColor:       "#7fc97f",
		HigherIsBetter: true,
	}
	WomenHigherIsWorse = Policy{
		Name:     "women_higher_is_worse",
		Scheme:   "plasma",
		MinColor: "#f9ecf5",
		MidColor: "#c361a2",
	}
	MedicareHigherIsWorse = Policy{
		Name:     "medicare_higher_is_worse",
		Scheme:   "darkorange",
		MinColor: "#fff3e5",
		MidColor: "#f9a65a",
	}
)

var byName = map[string]Policy{
	DefaultHigherIsWorse.Name:  DefaultHigherIsWorse,
	DefaultHigherIsBetter.Name: DefaultHigherIsBetter,
	WomenHigherIsWorse.Name:    WomenHigherIsWorse,
	MedicareHigherIsWorse.Name: MedicareHigherIsWorse,
}

// Get returns the built-in policy for the given name. Every data type
// names its policy, so an empty name is an error.
func Get(name string) (Policy, error) {
	if name == "" {
		return Policy{}, fmt.Errorf("map policy is required: valid policies are %s", strings.Join(Names(), ", "))
	}
	p, ok := byName[name]
	if !ok {
		return Policy{}, fmt.Errorf("unknown map policy %q: valid policies are %s", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names returns the built-in policy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Describe returns a one-line human description used in Markdown exports.
func (p Policy) Describe() string {
	if p.Name == "" {
		return ""
	}
	direction := "higher is worse"
	if p.HigherIsBetter {
		direction = "higher is better"
	}
	return fmt.Sprintf("%s (%s, %s)", p.Name, p.Scheme, direction)
}
