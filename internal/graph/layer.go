// # internal/graph/layer.go
package graph

import "sort"

// assignLayers builds the condensation graph and assigns each
// component its layer: 0 for sinks (no outgoing condensation edges),
// otherwise 1 + the maximum layer among direct successors. Files
// inherit their component's layer, so layer 0 reads as "imports
// nothing else internal", cycles included.
//
// detectComponents emits components in reverse topological order, so
// walking component ids ascending sees every successor before the
// component that depends on it.
func (t *Topology) assignLayers() {
	count := len(t.Components)
	successors := make([]map[int]bool, count)
	for v, targets := range t.Adjacency {
		cv := t.ComponentOf[v]
		for _, w := range targets {
			cw := t.ComponentOf[w]
			if cv == cw {
				continue
			}
			if successors[cv] == nil {
				successors[cv] = make(map[int]bool)
			}
			successors[cv][cw] = true
		}
	}

	t.ComponentSuccessors = make([][]int, count)
	for c, set := range successors {
		if len(set) == 0 {
			continue
		}
		ids := make([]int, 0, len(set))
		for s := range set {
			ids = append(ids, s)
		}
		sort.Ints(ids)
		t.ComponentSuccessors[c] = ids
	}

	t.ComponentLayers = make([]int, count)
	for c := 0; c < count; c++ {
		layer := 0
		for _, s := range t.ComponentSuccessors[c] {
			if next := t.ComponentLayers[s] + 1; next > layer {
				layer = next
			}
		}
		t.ComponentLayers[c] = layer
	}

	t.Layers = make([]int, len(t.Nodes))
	for v := range t.Layers {
		t.Layers[v] = t.ComponentLayers[t.ComponentOf[v]]
	}
}
