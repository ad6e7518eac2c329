// Package tree holds the B+ Tree data model consumed by the layout
// engine: nodes constructed once from serialized input and immutable
// thereafter.
package tree

// Key is a single value stored in a node. Value keeps the textual form
// of the input number so fixed-point keys render exactly as written.
// Color, when non-empty, is a hex color overriding the foreground for
// this key's text.
type Key struct {
	Value string
	Color string
}

// Node is a single node of a B+ Tree. Internal nodes carry children in
// key order; leaf nodes have none.
type Node struct {
	Name     string
	Keys     []Key
	Parent   *Node
	Children []*Node
}

// Size returns the number of keys stored in the node.
func (n *Node) Size() int {
	return len(n.Keys)
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// full reports whether the node already has one more child than keys,
// the B+ Tree limit. Used while wiring parents during loading.
func (n *Node) full() bool {
	return len(n.Children) >= len(n.Keys)+1
}

// addChild links a child node. Loading only; nodes are immutable after.
func (n *Node) addChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// ChildIndex returns the position of child among n's children, or -1.
func (n *Node) ChildIndex(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}
