// Package routes describes navigation entries for content areas of the site.
package routes

// Config is one navigation entry. Children nest under their parent in
// display order.
type Config struct {
	Label    string   `json:"label" yaml:"label"`
	Path     string   `json:"path" yaml:"path"`
	Children []Config `json:"children,omitempty" yaml:"children,omitempty"`
}

// PolicyBasePath is the root of the policy context area.
const PolicyBasePath = "/policy"

var policy = []Config{
	{Label: "Crisis Overview", Path: PolicyBasePath + "/crisis-overview"},
	{Label: "Data Collection", Path: PolicyBasePath + "/data-collection"},
	{Label: "Addressing Inequities", Path: PolicyBasePath + "/addressing-inequities"},
	{Label: "Current Efforts", Path: PolicyBasePath + "/current-efforts"},
	{Label: "Reform Opportunities", Path: PolicyBasePath + "/reform-opportunities"},
	{Label: "How to Use the Data", Path: PolicyBasePath + "/how-to-use-the-data"},
	{Label: "Community Safety FAQs", Path: PolicyBasePath + "/faqs"},
}

// Policy returns the policy context pages in menu order. The slice is a
// copy and may be modified by the caller.
func Policy() []Config {
	return Clone(policy)
}

// Clone returns a deep copy of cfgs.
func Clone(cfgs []Config) []Config {
	if cfgs == nil {
		return nil
	}
	out := make([]Config, len(cfgs))
	for i, c := range cfgs {
		out[i] = Config{Label: c.Label, Path: c.Path, Children: Clone(c.Children)}
	}
	return out
}

// Count returns the number of entries in cfgs, children included.
func Count(cfgs []Config) int {
	n := len(cfgs)
	for _, c := range cfgs {
		n += Count(c.Children)
	}
	return n
}
