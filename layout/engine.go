package layout

import (
	"math"

	"treedraw/config"
	"treedraw/core"
	"treedraw/tree"
)

// Engine computes box and edge positions. It is a pure function of the
// tree and the spacing settings; style settings (colors) never affect
// the produced geometry.
type Engine struct {
	cfg config.Settings
}

// New creates an engine with the given settings.
func New(cfg config.Settings) *Engine {
	return &Engine{cfg: cfg}
}

// Layout validates the tree against the configured fanout and produces
// the full arrangement. Leaves are packed left to right with a fixed
// gap; each internal node is centered over its children, bottom up,
// with a left-to-right sweep afterwards so sibling-level boxes never
// overlap. Running twice on the same input yields identical output.
func (e *Engine) Layout(t *tree.Tree) (*Result, error) {
	if err := t.Validate(e.cfg.D); err != nil {
		return nil, err
	}

	boxH := e.boxHeight()
	last := len(t.Levels) - 1

	// Index assignment follows level order, which the loader keeps in
	// the order induced by a pre-order traversal, so edges never cross.
	index := make(map[*tree.Node]int)
	boxes := make([]Box, 0, t.NumNodes())
	for depth, level := range t.Levels {
		y := e.cfg.Margin + float64(depth)*(boxH+e.cfg.VSep)
		for _, node := range level {
			index[node] = len(boxes)
			boxes = append(boxes, Box{
				Rect:  core.Rect{Y: y, W: e.boxWidth(node), H: boxH},
				Node:  node,
				Level: depth,
			})
		}
	}

	// Leaves first: packed left to right.
	x := e.cfg.Margin
	for _, leaf := range t.Levels[last] {
		b := &boxes[index[leaf]]
		b.X = x
		x += b.W + e.cfg.HSep
	}

	// Internal levels bottom up: center over children, then resolve
	// any overlap a wide parent introduces.
	for depth := last - 1; depth >= 0; depth-- {
		minX := e.cfg.Margin
		for _, node := range t.Levels[depth] {
			b := &boxes[index[node]]
			b.X = e.childrenCenter(node, boxes, index) - b.W/2
			if b.X < minX {
				b.X = minX
			}
			minX = b.Right() + e.cfg.HSep
		}
	}

	for i := range boxes {
		e.anchorKeys(&boxes[i])
	}

	edges := e.connect(t, boxes, index)
	links := e.chainLeaves(t, boxes, index)

	width, height := 0.0, 0.0
	for i := range boxes {
		width = math.Max(width, boxes[i].Right())
		height = math.Max(height, boxes[i].Bottom())
	}

	return &Result{
		Boxes:  boxes,
		Edges:  edges,
		Links:  links,
		Width:  int(math.Ceil(width + e.cfg.Margin)),
		Height: int(math.Ceil(height + e.cfg.Margin)),
	}, nil
}

// boxWidth is proportional to the key count, one slot per key, with a
// single slot as the minimum.
func (e *Engine) boxWidth(node *tree.Node) float64 {
	slots := node.Size()
	if slots < 1 {
		slots = 1
	}
	return float64(slots) * e.cfg.BlockWidth
}

// boxHeight adds a header row when node names are shown.
func (e *Engine) boxHeight() float64 {
	if e.cfg.ShowName {
		return 2 * e.cfg.BlockHeight
	}
	return e.cfg.BlockHeight
}

func (e *Engine) childrenCenter(node *tree.Node, boxes []Box, index map[*tree.Node]int) float64 {
	sum := 0.0
	for _, child := range node.Children {
		sum += boxes[index[child]].CenterX()
	}
	return sum / float64(len(node.Children))
}

// anchorKeys records the text anchor for every key: the center of its
// slot on the key row (the lower row when a name header is shown).
func (e *Engine) anchorKeys(b *Box) {
	rowTop := b.Y + b.H - e.cfg.BlockHeight
	b.Anchors = make([]core.Vec, len(b.Node.Keys))
	for i := range b.Node.Keys {
		b.Anchors[i] = core.Vec{
			X: b.X + (float64(i)+0.5)*e.cfg.BlockWidth,
			Y: rowTop + e.cfg.BlockHeight/2,
		}
	}
}

// connect emits one edge per parent-child pair. The start point is
// spread along the parent's lower boundary in proportion to the
// child's index so edges of one parent never share a pixel; the end
// point is the child's top center.
func (e *Engine) connect(t *tree.Tree, boxes []Box, index map[*tree.Node]int) []Edge {
	var edges []Edge
	for _, level := range t.Levels {
		for _, node := range level {
			parent := boxes[index[node]]
			for ci, child := range node.Children {
				cb := boxes[index[child]]
				frac := float64(ci+1) / float64(len(node.Children)+1)
				edges = append(edges, Edge{
					From:  index[node],
					To:    index[child],
					Start: core.Vec{X: parent.X + frac*parent.W, Y: parent.Bottom()},
					End:   core.Vec{X: cb.CenterX(), Y: cb.Y},
				})
			}
		}
	}
	return edges
}

// chainLeaves links every leaf to its right neighbor at the middle of
// the key row, the linked-leaf chain that distinguishes a B+ Tree from
// a plain B-tree.
func (e *Engine) chainLeaves(t *tree.Tree, boxes []Box, index map[*tree.Node]int) []Edge {
	leaves := t.Levels[len(t.Levels)-1]
	var links []Edge
	for i := 0; i+1 < len(leaves); i++ {
		a := boxes[index[leaves[i]]]
		b := boxes[index[leaves[i+1]]]
		y := a.Bottom() - e.cfg.BlockHeight/2
		links = append(links, Edge{
			From:  index[leaves[i]],
			To:    index[leaves[i+1]],
			Start: core.Vec{X: a.Right(), Y: y},
			End:   core.Vec{X: b.X, Y: y},
		})
	}
	return links
}
