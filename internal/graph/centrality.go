// # internal/graph/centrality.go
package graph

// computeCentrality fills fan-in, fan-out, and betweenness. Brandes'
// algorithm runs from every node while the graph stays at or under
// sampleThreshold nodes; above that, an evenly spaced sample of that
// size serves as BFS sources and all scores scale by nodes/sample.
// Reports built from sampled output must say so.
func (t *Topology) computeCentrality(sampleThreshold int) {
	n := len(t.Nodes)
	t.FanIn = make([]int, n)
	t.FanOut = make([]int, n)
	for v := 0; v < n; v++ {
		t.FanIn[v] = len(t.Reverse[v])
		t.FanOut[v] = len(t.Adjacency[v])
	}

	t.Betweenness = make([]float64, n)
	t.SampleSize = n
	if n == 0 {
		return
	}

	sources := make([]int, 0, n)
	if sampleThreshold > 0 && n > sampleThreshold {
		// Evenly spaced positions over the sorted node order.
		for i := 0; i < sampleThreshold; i++ {
			sources = append(sources, i*n/sampleThreshold)
		}
		t.Sampled = true
		t.SampleSize = sampleThreshold
	} else {
		for v := 0; v < n; v++ {
			sources = append(sources, v)
		}
	}

	for _, s := range sources {
		t.accumulateFrom(s)
	}

	// Pair dependencies count at half weight: on a directed path
	// a->b->c->d each interior node scores 1.
	scale := 0.5
	if t.Sampled {
		scale *= float64(n) / float64(len(sources))
	}
	for v := range t.Betweenness {
		t.Betweenness[v] *= scale
	}
}

// accumulateFrom adds source s's pair dependencies to the betweenness
// totals: BFS for shortest-path counts, then the reverse-order
// dependency accumulation.
func (t *Topology) accumulateFrom(s int) {
	n := len(t.Nodes)
	order := make([]int, 0, n)
	preds := make([][]int, n)
	sigma := make([]float64, n)
	dist := make([]int, n)
	for v := range dist {
		dist[v] = -1
	}
	sigma[s] = 1
	dist[s] = 0

	queue := make([]int, 0, n)
	queue = append(queue, s)
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		order = append(order, v)
		for _, w := range t.Adjacency[v] {
			if dist[w] < 0 {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
			if dist[w] == dist[v]+1 {
				sigma[w] += sigma[v]
				preds[w] = append(preds[w], v)
			}
		}
	}

	delta := make([]float64, n)
	for i := len(order) - 1; i >= 0; i-- {
		w := order[i]
		for _, v := range preds[w] {
			delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
		}
		if w != s {
			t.Betweenness[w] += delta[w]
		}
	}
}

// FileScore is the composite file importance: fan-in + fan-out +
// betweenness. Key files rank by score descending, ties by path.
func (t *Topology) FileScore(v int) float64 {
	return float64(t.FanIn[v]+t.FanOut[v]) + t.Betweenness[v]
}

// LayerDrop is the layer distance an edge falls, floored at zero.
func (t *Topology) LayerDrop(from, to int) int {
	if drop := t.Layers[from] - t.Layers[to]; drop > 0 {
		return drop
	}
	return 0
}

// EdgeScore is the composite edge importance: edges out of high
// fan-out sources into high fan-in targets crossing bigger layer drops
// score higher. Key links rank by score descending, ties by
// (source, target).
func (t *Topology) EdgeScore(from, to int) int {
	return (t.FanOut[from] + 1) * (t.FanIn[to] + 1) * (t.LayerDrop(from, to) + 1)
}
