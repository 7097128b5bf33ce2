package texmorph

import "fmt"

// nodeIDCounter is a plain counter (no atomic, texmorph is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. Expression roots, scratch areas and the
// groups themselves are all nodes; a single flat struct keeps them cheap to
// duplicate.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y   float64
	ScaleX float64
	ScaleY float64

	// Computed (unexported, updated during traversal)
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility
	Alpha   float64
	Visible bool

	// Group fields (NodeTypeGroup)
	Text          string  // source characters of the group
	Width, Height float64 // local-space extent drawn as a tinted quad
	Color         Color

	// Metadata
	UserData any

	// Internal
	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewGroupNode creates a group node for the given source text and extent.
func NewGroupNode(name, text string, width, height float64) *Node {
	n := &Node{Name: name, Type: NodeTypeGroup, Text: text, Width: width, Height: height}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("texmorph: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("texmorph: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("texmorph: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Group ---

// Placement returns the node's local position and scale.
func (n *Node) Placement() Placement {
	return Placement{
		Position: Vec2{n.X, n.Y},
		Scale:    Vec2{n.ScaleX, n.ScaleY},
	}
}

// Place sets the node's local position and scale.
func (n *Node) Place(p Placement) error {
	if n.disposed {
		return fmt.Errorf("place %q: %w", n.Name, ErrDisposed)
	}
	n.X, n.Y = p.Position.X, p.Position.Y
	n.ScaleX, n.ScaleY = p.Scale.X, p.Scale.Y
	n.transformDirty = true
	return nil
}

// SetVisible shows or hides the node and its subtree.
func (n *Node) SetVisible(visible bool) error {
	if n.disposed {
		return fmt.Errorf("set visible %q: %w", n.Name, ErrDisposed)
	}
	n.Visible = visible
	return nil
}

// DuplicateInto deep-copies this node and its subtree and appends the copy to
// container, which must be a *Node.
func (n *Node) DuplicateInto(container Group) (Group, error) {
	parent, ok := container.(*Node)
	if !ok {
		return nil, fmt.Errorf("texmorph: duplicate %q into %T: container is not a *Node", n.Name, container)
	}
	if n.disposed {
		return nil, fmt.Errorf("duplicate %q: %w", n.Name, ErrDisposed)
	}
	if parent.disposed {
		return nil, fmt.Errorf("duplicate %q into %q: %w", n.Name, parent.Name, ErrDisposed)
	}
	dup := n.clone()
	parent.AddChild(dup)
	return dup, nil
}

func (n *Node) clone() *Node {
	dup := &Node{
		ID:             nextNodeID(),
		Name:           n.Name,
		Type:           n.Type,
		X:              n.X,
		Y:              n.Y,
		ScaleX:         n.ScaleX,
		ScaleY:         n.ScaleY,
		Alpha:          n.Alpha,
		Visible:        n.Visible,
		Text:           n.Text,
		Width:          n.Width,
		Height:         n.Height,
		Color:          n.Color,
		UserData:       n.UserData,
		transformDirty: true,
	}
	for _, child := range n.children {
		c := child.clone()
		c.Parent = dup
		dup.children = append(dup.children, c)
	}
	return dup
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
