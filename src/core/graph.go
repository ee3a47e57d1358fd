package core

// StaticGraph is a minimal concrete TargetGraph implementation (D5): a fixed map of
// target name to its direct dependency names, built once and never mutated. It is the
// reference collaborator implementation used by tests and by callers that have already
// resolved their project's full dependency order up front.
type StaticGraph struct {
	order        []string
	dependencies map[string][]string
}

// NewStaticGraph builds a StaticGraph from an ordered list of target names and a map
// of each target's direct dependency names. Unknown dependency names are kept as-is;
// resolving them is the caller's responsibility.
func NewStaticGraph(order []string, dependencies map[string][]string) *StaticGraph {
	g := &StaticGraph{
		order:        append([]string(nil), order...),
		dependencies: make(map[string][]string, len(dependencies)),
	}
	for name, deps := range dependencies {
		g.dependencies[name] = append([]string(nil), deps...)
	}
	return g
}

// Targets implements TargetGraph.
func (g *StaticGraph) Targets() []Target {
	targets := make([]Target, len(g.order))
	for i, name := range g.order {
		targets[i] = Target{Name: name}
	}
	return targets
}

// DependenciesOf implements TargetGraph.
func (g *StaticGraph) DependenciesOf(name string) []Target {
	deps := g.dependencies[name]
	targets := make([]Target, len(deps))
	for i, d := range deps {
		targets[i] = Target{Name: d}
	}
	return targets
}
