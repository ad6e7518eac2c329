package tree

import "fmt"

// Validate checks the B+ Tree shape invariants against fanout d:
// every node holds at most d-1 keys, every node above the leaf level
// has exactly keys+1 children (which also forces all leaves onto the
// same level), and every non-root node is reachable from the root.
// Validation runs before any layout work; layout assumes a valid tree.
func (t *Tree) Validate(d int) error {
	root := t.Root()
	if root == nil || root.Size() == 0 {
		return ErrEmptyTree
	}
	if len(t.Levels[0]) != 1 {
		return &ShapeError{Reason: fmt.Sprintf("%d nodes on the root level, want 1", len(t.Levels[0]))}
	}

	last := len(t.Levels) - 1
	for depth, level := range t.Levels {
		for _, node := range level {
			if node.Size() == 0 {
				return &ShapeError{Node: node.Name, Reason: "node holds no keys"}
			}
			if node.Size() > d-1 {
				return &ShapeError{
					Node:   node.Name,
					Reason: fmt.Sprintf("holds %d keys, fanout %d allows at most %d", node.Size(), d, d-1),
				}
			}
			if depth > 0 && node.Parent == nil {
				return &ShapeError{Node: node.Name, Reason: "not reachable from the root"}
			}
			if depth < last {
				if want := node.Size() + 1; len(node.Children) != want {
					return &ShapeError{
						Node: node.Name,
						Reason: fmt.Sprintf("has %d children at depth %d, want %d (leaves must share one depth)",
							len(node.Children), depth, want),
					}
				}
			}
		}
	}
	return nil
}
