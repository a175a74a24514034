// Package boost implements a gradient boosted decision tree ensemble for binary
// classification trained on log loss.
package boost

import "fmt"
import "math"

// Node is one node of a regression tree. Leaves have Feature -1.
type Node struct {
	Feature   int     `json:"f"`
	Threshold float64 `json:"t,omitempty"`
	Left      int     `json:"l,omitempty"`
	Right     int     `json:"r,omitempty"`
	Value     float64 `json:"v,omitempty"`
}

// Leaf reports whether the node is a leaf
func (n Node) Leaf() bool {
	return n.Feature < 0
}

// Tree is a regression tree stored as a flat node list, the root at position 0.
// Rows with x[Feature] < Threshold go to Left.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Predict returns the leaf value reached by x
func (t Tree) Predict(x []float64) float64 {
	var n int
	for !t.Nodes[n].Leaf() {
		node := t.Nodes[n]
		if x[node.Feature] < node.Threshold {
			n = node.Left
		} else {
			n = node.Right
		}
	}
	return t.Nodes[n].Value
}

// Depth returns the number of edges on the longest root to leaf path
func (t Tree) Depth() int {
	var depth func(n int) int
	depth = func(n int) int {
		node := t.Nodes[n]
		if node.Leaf() {
			return 0
		}
		l, r := depth(node.Left), depth(node.Right)
		if l > r {
			return l + 1
		}
		return r + 1
	}
	return depth(0)
}

// Leaves returns the number of leaves
func (t Tree) Leaves() (n int) {
	for _, node := range t.Nodes {
		if node.Leaf() {
			n++
		}
	}
	return
}

// validate checks that the tree is well formed for the given input width. Children must
// come after their parent, so traversal always terminates.
func (t Tree) validate(features int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("empty tree")
	}
	for i, node := range t.Nodes {
		if node.Leaf() {
			if math.IsNaN(node.Value) || math.IsInf(node.Value, 0) {
				return fmt.Errorf("node %d: leaf value %v is not finite", i, node.Value)
			}
			continue
		}
		if node.Feature >= features {
			return fmt.Errorf("node %d: feature %d out of %d", i, node.Feature, features)
		}
		if math.IsNaN(node.Threshold) {
			return fmt.Errorf("node %d: threshold is NaN", i)
		}
		for _, child := range [2]int{node.Left, node.Right} {
			if child <= i || child >= len(t.Nodes) {
				return fmt.Errorf("node %d: child %d out of range", i, child)
			}
		}
	}
	return nil
}
