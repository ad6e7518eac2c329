// Package layout transforms a validated B+ Tree into a collision-free
// 2D arrangement of boxes and edges. It emits only geometry; rendering
// backends decide how to draw it.
package layout

import (
	"treedraw/core"
	"treedraw/tree"
)

// Box is a positioned rectangle for one tree node, with one text
// anchor per key (the center of that key's slot).
type Box struct {
	core.Rect
	Node    *tree.Node
	Level   int
	Anchors []core.Vec
}

// Edge connects a parent box's lower boundary to a child box's upper
// boundary. From and To index into Result.Boxes.
type Edge struct {
	From, To   int
	Start, End core.Vec
}

// Result is the complete layout: boxes in level order (root first,
// left to right within a level), one edge per parent-child pair, and
// the canvas size that encloses everything plus the margin.
//
// Links is the linked-leaf chain: one horizontal connector from every
// leaf to its right neighbor. Links are not parent-child Edges and are
// counted separately.
type Result struct {
	Boxes  []Box
	Edges  []Edge
	Links  []Edge
	Width  int
	Height int
}

// Box returns the box laid out for node, or nil.
func (r *Result) Box(node *tree.Node) *Box {
	for i := range r.Boxes {
		if r.Boxes[i].Node == node {
			return &r.Boxes[i]
		}
	}
	return nil
}
