package texmorph

import (
	"math"
	"testing"
)

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > eps {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestLocalTransform(t *testing.T) {
	n := NewContainer("test")
	assertMatrix(t, "identity", computeLocalTransform(n), identityTransform)

	n.X, n.Y = 10, 20
	n.ScaleX, n.ScaleY = 2, 3
	assertMatrix(t, "scale+translate", computeLocalTransform(n), [6]float64{2, 0, 0, 3, 10, 20})
}

func TestMultiplyAffine(t *testing.T) {
	a := [6]float64{1, 0, 0, 1, 10, 20}
	assertMatrix(t, "identity*a", multiplyAffine(identityTransform, a), a)

	b := [6]float64{2, 0, 0, 2, 5, 5}
	assertMatrix(t, "a*b", multiplyAffine(a, b), [6]float64{2, 0, 0, 2, 15, 25})
}

func TestWorldTransformParentChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	parent.X = 100
	child.X = 10

	updateWorldTransform(parent, identityTransform, 1.0, false)

	assertNear(t, "parent.tx", parent.worldTransform[4], 100)
	assertNear(t, "child.tx", child.worldTransform[4], 110)
}

func TestAlphaPropagation(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	parent.Alpha = 0.5
	child.Alpha = 0.5

	updateWorldTransform(parent, identityTransform, 1.0, false)

	assertNear(t, "parent.worldAlpha", parent.worldAlpha, 0.5)
	assertNear(t, "child.worldAlpha", child.worldAlpha, 0.25)
}

func TestDirtyFlagSkipsClean(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	parent.X = 100
	child.X = 10
	updateWorldTransform(parent, identityTransform, 1.0, false)

	child.transformDirty = false
	parent.transformDirty = false
	child.X = 999 // dirty flag NOT set

	updateWorldTransform(parent, identityTransform, 1.0, false)
	assertNear(t, "child.tx (stale)", child.worldTransform[4], 110)
}

func TestParentRecomputedPropagates(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	parent.X = 100
	child.X = 10
	updateWorldTransform(parent, identityTransform, 1.0, false)

	parent.SetPosition(200, 0)
	updateWorldTransform(parent, identityTransform, 1.0, false)

	assertNear(t, "child.tx (from parent)", child.worldTransform[4], 210)
}

func TestPlaceIsPickedUpByTraversal(t *testing.T) {
	root := NewContainer("root")
	g := NewGroupNode("g", "g", 1, 1)
	root.AddChild(g)
	root.UpdateTransforms()

	_ = g.Place(Placement{Position: Vec2{4, 6}, Scale: Vec2{0.5, 0.5}})
	root.UpdateTransforms()

	wx, wy := g.LocalToWorld(2, 2)
	assertNear(t, "wx", wx, 5)
	assertNear(t, "wy", wy, 7)
}

func TestSettersDirty(t *testing.T) {
	n := NewContainer("n")
	setters := map[string]func(){
		"SetPosition": func() { n.SetPosition(1, 2) },
		"SetScale":    func() { n.SetScale(2, 2) },
		"SetAlpha":    func() { n.SetAlpha(0.5) },
		"MarkDirty":   func() { n.MarkDirty() },
	}
	for name, set := range setters {
		n.transformDirty = false
		set()
		if !n.transformDirty {
			t.Errorf("%s should mark the node dirty", name)
		}
	}
}
