package texmorph

// Group is the handle the alignment engine uses to drive one visual group of
// a rendered expression. The engine never inspects geometry: it reads and
// writes placement, toggles visibility and asks for scratch duplicates.
//
// Place, SetVisible and DuplicateInto fail once the host has destroyed the
// handle. Dispose must be safe to call more than once.
type Group interface {
	Placement() Placement
	Place(p Placement) error
	SetVisible(visible bool) error
	DuplicateInto(container Group) (Group, error)
	Dispose()
}

// Expression is one rendered expression: a root group that positions the
// whole expression and the ordered groups it was decomposed into.
type Expression struct {
	Root   Group
	Groups []Group
}

// Node implements Group.
var _ Group = (*Node)(nil)
