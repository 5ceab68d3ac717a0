// # internal/graph/detect.go
package graph

import "sort"

// detectComponents runs Tarjan's SCC algorithm in iterative form: an
// explicit frame stack instead of call recursion, integer node ids into
// index/lowlink slices. File graphs reach thousands of nodes, which
// rules out native recursion depth.
//
// Components are emitted in reverse topological order of the
// condensation: every component a node points into is completed before
// the node's own component. assignLayers relies on that order.
func (t *Topology) detectComponents() {
	n := len(t.Nodes)
	const unvisited = -1

	index := make([]int, n)
	lowlink := make([]int, n)
	for i := range index {
		index[i] = unvisited
	}
	onStack := make([]bool, n)
	stack := make([]int, 0, n)
	next := 0

	componentOf := make([]int, n)
	components := make([][]int, 0)

	type frame struct {
		node int
		edge int // next adjacency position to examine
	}
	work := make([]frame, 0, 16)

	for start := 0; start < n; start++ {
		if index[start] != unvisited {
			continue
		}
		work = append(work[:0], frame{node: start})

		for len(work) > 0 {
			top := len(work) - 1
			v := work[top].node

			if work[top].edge == 0 {
				index[v] = next
				lowlink[v] = next
				next++
				stack = append(stack, v)
				onStack[v] = true
			}

			descended := false
			for work[top].edge < len(t.Adjacency[v]) {
				w := t.Adjacency[v][work[top].edge]
				work[top].edge++
				if index[w] == unvisited {
					work = append(work, frame{node: w})
					descended = true
					break
				}
				if onStack[w] && index[w] < lowlink[v] {
					lowlink[v] = index[w]
				}
			}
			if descended {
				continue
			}

			work = work[:top]
			if len(work) > 0 {
				parent := work[len(work)-1].node
				if lowlink[v] < lowlink[parent] {
					lowlink[parent] = lowlink[v]
				}
			}

			if lowlink[v] != index[v] {
				continue
			}
			var members []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				members = append(members, w)
				if w == v {
					break
				}
			}
			sort.Ints(members)
			id := len(components)
			for _, m := range members {
				componentOf[m] = id
			}
			components = append(components, members)
		}
	}

	t.ComponentOf = componentOf
	t.Components = components
}
