package boost

import "sort"

import "github.com/neurlang/churn/parallel"

// minGain is the smallest loss reduction treated as a real improvement
const minGain = 1e-6

// split is the best candidate split found for one node
type split struct {
	gain      float64
	feature   int
	threshold float64
	gl, hl    float64
}

// grower grows one tree per round over a fixed feature matrix.
type grower struct {
	h *HyperParameters
	x [][]float64

	// order holds, per feature, the row indices sorted by that feature
	order [][]int32

	grad, hess []float64

	// node is the tree node each row currently sits in, -1 once the row is out
	node []int32
}

func newGrower(h *HyperParameters, x [][]float64) *grower {
	var features = len(x[0])
	g := &grower{
		h:     h,
		x:     x,
		order: make([][]int32, features),
		grad:  make([]float64, len(x)),
		hess:  make([]float64, len(x)),
		node:  make([]int32, len(x)),
	}
	parallel.ForEach(features, parallel.Limit(h.Threads), func(f int) {
		var order = make([]int32, len(x))
		for r := range order {
			order[r] = int32(r)
		}
		sort.SliceStable(order, func(i, j int) bool {
			return x[order[i]][f] < x[order[j]][f]
		})
		g.order[f] = order
	})
	return g
}

func (g *grower) leaf(sumG, sumH float64) float64 {
	return -sumG / (sumH + g.h.Lambda) * g.h.LearningRate
}

func (g *grower) score(sumG, sumH float64) float64 {
	return sumG * sumG / (sumH + g.h.Lambda)
}

// grow builds a tree level by level from the current gradients. sampled tells which rows
// take part. gains accumulates the loss reduction per feature.
func (g *grower) grow(sampled func(row int) bool, gains []float64) Tree {
	var sumG, sumH float64
	for r := range g.node {
		if sampled(r) {
			g.node[r] = 0
			sumG += g.grad[r]
			sumH += g.hess[r]
		} else {
			g.node[r] = -1
		}
	}
	var tree = Tree{Nodes: []Node{{Feature: -1, Value: g.leaf(sumG, sumH)}}}

	var level = []int{0}
	var G, H = []float64{sumG}, []float64{sumH}

	for depth := 0; depth < g.h.MaxDepth && len(level) > 0; depth++ {
		var slot = make([]int, len(tree.Nodes))
		for i := range slot {
			slot[i] = -1
		}
		for s, n := range level {
			slot[n] = s
		}

		var features = len(g.order)
		var candidates = make([][]split, features)
		parallel.ForEach(features, parallel.Limit(g.h.Threads), func(f int) {
			candidates[f] = g.search(f, slot, G, H)
		})

		var best = make([]split, len(level))
		for s := range best {
			best[s].feature = -1
			for f := 0; f < features; f++ {
				if c := candidates[f][s]; c.feature >= 0 && c.gain > best[s].gain {
					best[s] = c
				}
			}
		}

		var nextLevel []int
		var nextG, nextH []float64
		for s, n := range level {
			b := best[s]
			if b.feature < 0 || b.gain <= g.h.Gamma || b.gain <= minGain {
				continue
			}
			gr, hr := G[s]-b.gl, H[s]-b.hl
			left, right := len(tree.Nodes), len(tree.Nodes)+1
			tree.Nodes = append(tree.Nodes,
				Node{Feature: -1, Value: g.leaf(b.gl, b.hl)},
				Node{Feature: -1, Value: g.leaf(gr, hr)},
			)
			tree.Nodes[n] = Node{Feature: b.feature, Threshold: b.threshold, Left: left, Right: right}
			gains[b.feature] += b.gain
			nextLevel = append(nextLevel, left, right)
			nextG = append(nextG, b.gl, gr)
			nextH = append(nextH, b.hl, hr)
		}

		for r, n := range g.node {
			if n < 0 {
				continue
			}
			node := tree.Nodes[n]
			if node.Leaf() {
				g.node[r] = -1
			} else if g.x[r][node.Feature] < node.Threshold {
				g.node[r] = int32(node.Left)
			} else {
				g.node[r] = int32(node.Right)
			}
		}
		level, G, H = nextLevel, nextG, nextH
	}
	return tree
}

// search scans feature f in sorted order and returns the best split per level slot.
func (g *grower) search(f int, slot []int, G, H []float64) []split {
	var k = len(G)
	var best = make([]split, k)
	var gl = make([]float64, k)
	var hl = make([]float64, k)
	var last = make([]float64, k)
	var seen = make([]bool, k)
	for s := range best {
		best[s].feature = -1
	}
	var lambda, mcw = g.h.Lambda, g.h.MinChildWeight

	for _, r := range g.order[f] {
		n := g.node[r]
		if n < 0 {
			continue
		}
		s := slot[n]
		if s < 0 {
			continue
		}
		v := g.x[r][f]
		if seen[s] && v != last[s] {
			hr := H[s] - hl[s]
			if hl[s] >= mcw && hr >= mcw {
				gr := G[s] - gl[s]
				gain := gl[s]*gl[s]/(hl[s]+lambda) + gr*gr/(hr+lambda) - g.score(G[s], H[s])
				if gain > best[s].gain {
					best[s] = split{gain: gain, feature: f, threshold: v, gl: gl[s], hl: hl[s]}
				}
			}
		}
		gl[s] += g.grad[r]
		hl[s] += g.hess[r]
		last[s] = v
		seen[s] = true
	}
	return best
}
