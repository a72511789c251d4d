package layout

import (
	"sort"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/schema"
)

// Kind discriminates the two node variants of the endpoint tree.
type Kind int

const (
	// KindView is a grouping node holding ordered named children.
	KindView Kind = iota
	// KindArray is a leaf endpoint backed by a hub slice.
	KindArray
)

// Node is one node of the endpoint tree. Views group children under a
// declared index; arrays are leaf endpoints that receive a slice and a
// hub assignment during planning.
type Node struct {
	Kind  Kind
	Index int

	// Array leaves only. Shape is nil for the synthetic parameters
	// leaf until the assembler finalizes it.
	Shape *schema.Template
	Slice *domain.Slice
	Hub   int

	children map[string]*Node
}

// NewView creates a grouping node with the given declared index.
func NewView(index int) *Node {
	return &Node{Kind: KindView, Index: index, Hub: -1, children: make(map[string]*Node)}
}

// NewArray creates a leaf endpoint with the given declared index.
func NewArray(index int, shape schema.Template) *Node {
	return &Node{Kind: KindArray, Index: index, Shape: &shape, Hub: -1}
}

// Put attaches a child under name. Only valid on views.
func (n *Node) Put(name string, child *Node) *Node {
	n.children[name] = child
	return n
}

// Child returns the child registered under name, or nil.
func (n *Node) Child(name string) *Node {
	return n.children[name]
}

// Resolve walks a dotted path from n, failing with UnresolvedPathError
// on the first missing segment.
func (n *Node) Resolve(path string) (*Node, error) {
	current := n
	for _, seg := range domain.SplitPath(path) {
		next := current.Child(seg)
		if next == nil {
			return nil, &domain.UnresolvedPathError{Path: path, Segment: seg}
		}
		current = next
	}
	return current, nil
}

type namedChild struct {
	name string
	node *Node
}

// ordered returns the children sorted by (declared index, name), the
// canonical iteration order of the tree.
func (n *Node) ordered() []namedChild {
	out := make([]namedChild, 0, len(n.children))
	for name, child := range n.children {
		out = append(out, namedChild{name, child})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].node.Index != out[j].node.Index {
			return out[i].node.Index < out[j].node.Index
		}
		return out[i].name < out[j].name
	})
	return out
}

// LeafPaths yields the dotted paths of all plannable array leaves in
// canonical order. Shapeless leaves (the synthetic parameters leaf
// before finalization) are not plannable endpoints and are skipped.
func (n *Node) LeafPaths() []string {
	var out []string
	for _, c := range n.ordered() {
		switch c.node.Kind {
		case KindArray:
			if c.node.Shape != nil {
				out = append(out, c.name)
			}
		case KindView:
			for _, sub := range c.node.LeafPaths() {
				out = append(out, c.name+"."+sub)
			}
		}
	}
	return out
}
