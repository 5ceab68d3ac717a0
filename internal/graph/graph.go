// # internal/graph/graph.go
package graph

import "sort"

// Edge is one resolved file dependency.
type Edge struct {
	From string
	To   string
}

// ModulePopularity is one row of the raw import popularity table.
type ModulePopularity struct {
	Module    string
	Count     int
	Importers int
}

// Graph is the deduplicated directed file dependency graph for one
// analysis run, plus the module popularity accumulator. Built once per
// run from an immutable snapshot, then read; a run is single-threaded
// batch work, so there is no locking.
type Graph struct {
	nodes     []string
	nodeSet   map[string]bool
	edges     map[string]map[string]bool
	reverse   map[string]map[string]bool
	edgeCount int

	popularityCount     map[string]int
	popularityImporters map[string]map[string]bool
}

// New builds an edgeless graph over the analyzed files.
func New(files []string) *Graph {
	g := &Graph{
		nodeSet:             make(map[string]bool, len(files)),
		edges:               make(map[string]map[string]bool),
		reverse:             make(map[string]map[string]bool),
		popularityCount:     make(map[string]int),
		popularityImporters: make(map[string]map[string]bool),
	}
	for _, f := range files {
		if g.nodeSet[f] {
			continue
		}
		g.nodeSet[f] = true
		g.nodes = append(g.nodes, f)
	}
	sort.Strings(g.nodes)
	return g
}

// AddEdge records a from -> to dependency. Self-imports and edges
// touching unanalyzed files are dropped; duplicates collapse.
func (g *Graph) AddEdge(from, to string) {
	if from == to || !g.nodeSet[from] || !g.nodeSet[to] {
		return
	}
	if g.edges[from] == nil {
		g.edges[from] = make(map[string]bool)
	}
	if g.edges[from][to] {
		return
	}
	g.edges[from][to] = true
	if g.reverse[to] == nil {
		g.reverse[to] = make(map[string]bool)
	}
	g.reverse[to][from] = true
	g.edgeCount++
}

// AddModuleReference counts one declared import of module by fromFile,
// independent of whether the reference produced a file edge.
func (g *Graph) AddModuleReference(module, fromFile string) {
	if module == "" {
		return
	}
	g.popularityCount[module]++
	if g.popularityImporters[module] == nil {
		g.popularityImporters[module] = make(map[string]bool)
	}
	g.popularityImporters[module][fromFile] = true
}

func (g *Graph) NodeCount() int { return len(g.nodes) }

func (g *Graph) EdgeCount() int { return g.edgeCount }

// Nodes returns the analyzed files in sorted order.
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.nodes...)
}

// Edges returns every edge ordered by (from, to).
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.edgeCount)
	for _, from := range g.nodes {
		targets := make([]string, 0, len(g.edges[from]))
		for to := range g.edges[from] {
			targets = append(targets, to)
		}
		sort.Strings(targets)
		for _, to := range targets {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// ModulePopularityTable returns rows ordered by import count
// descending, ties by module name ascending.
func (g *Graph) ModulePopularityTable() []ModulePopularity {
	rows := make([]ModulePopularity, 0, len(g.popularityCount))
	for module, count := range g.popularityCount {
		rows = append(rows, ModulePopularity{
			Module:    module,
			Count:     count,
			Importers: len(g.popularityImporters[module]),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Module < rows[j].Module
	})
	return rows
}

// Topology carries every structure derived from the graph for one run:
// integer-id adjacency, the SCC partition, condensation layers, and
// centrality. Node ids are positions in the sorted file list, which
// keeps every downstream ordering independent of map iteration.
type Topology struct {
	Nodes     []string
	Index     map[string]int
	Adjacency [][]int
	Reverse   [][]int

	ComponentOf         []int
	Components          [][]int
	ComponentSuccessors [][]int
	ComponentLayers     []int
	Layers              []int

	FanIn       []int
	FanOut      []int
	Betweenness []float64
	Sampled     bool
	SampleSize  int
}

// Topology computes components, layers, and centrality in sequence.
func (g *Graph) Topology(sampleThreshold int) *Topology {
	t := g.newTopology()
	t.detectComponents()
	t.assignLayers()
	t.computeCentrality(sampleThreshold)
	return t
}

func (g *Graph) newTopology() *Topology {
	t := &Topology{
		Nodes: g.Nodes(),
		Index: make(map[string]int, len(g.nodes)),
	}
	for i, n := range t.Nodes {
		t.Index[n] = i
	}
	t.Adjacency = make([][]int, len(t.Nodes))
	t.Reverse = make([][]int, len(t.Nodes))
	for i, n := range t.Nodes {
		t.Adjacency[i] = sortedIDs(g.edges[n], t.Index)
		t.Reverse[i] = sortedIDs(g.reverse[n], t.Index)
	}
	return t
}

func sortedIDs(set map[string]bool, index map[string]int) []int {
	if len(set) == 0 {
		return nil
	}
	ids := make([]int, 0, len(set))
	for n := range set {
		ids = append(ids, index[n])
	}
	sort.Ints(ids)
	return ids
}

// CycleGroups returns the multi-member components as groups of file
// paths, each group sorted, groups ordered by their first member.
func (t *Topology) CycleGroups() [][]string {
	var groups [][]string
	for _, members := range t.Components {
		if len(members) < 2 {
			continue
		}
		group := make([]string, 0, len(members))
		for _, id := range members {
			group = append(group, t.Nodes[id])
		}
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i][0] < groups[j][0]
	})
	return groups
}
