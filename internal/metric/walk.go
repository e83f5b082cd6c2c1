package metric

// Visit is one step of Walk.
type Visit struct {
	Metric Config
	// Path holds the reference fields leading from the root; empty for the root.
	Path []string
	// Ancestors holds the ids of the metrics above Metric, root first.
	Ancestors []ID
	// Cycle is set when Metric's id already appears among Ancestors. Walk
	// does not descend below a cyclic visit.
	Cycle bool
}

// Walk calls fn for root and every metric nested beneath it, depth first in
// field order.
func Walk(root Config, fn func(Visit)) {
	if root == nil {
		return
	}
	walk(root, nil, nil, fn)
}

func walk(m Config, path []string, ancestors []ID, fn func(Visit)) {
	cycle := false
	for _, a := range ancestors {
		if a == m.ID() {
			cycle = true
			break
		}
	}
	fn(Visit{Metric: m, Path: path, Ancestors: ancestors, Cycle: cycle})
	if cycle {
		return
	}
	next := append(ancestors[:len(ancestors):len(ancestors)], m.ID())
	for _, r := range m.Refs() {
		walk(r.Metric, append(path[:len(path):len(path)], r.Field), next, fn)
	}
}
