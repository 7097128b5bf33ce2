package texmorph

import (
	"errors"
	"testing"
)

type recordingSink struct {
	events []MorphEvent
}

func (r *recordingSink) EmitMorphEvent(e MorphEvent) {
	r.events = append(r.events, e)
}

func (r *recordingSink) types() []MorphEventType {
	out := make([]MorphEventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.Root() == nil {
		t.Fatal("root should not be nil")
	}
	if s.Root().Name != "root" {
		t.Errorf("root.Name = %q, want %q", s.Root().Name, "root")
	}
	if s.Root().Type != NodeTypeContainer {
		t.Errorf("root.Type = %d, want NodeTypeContainer", s.Root().Type)
	}
}

func TestSceneSetDebugMode(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	if !s.debug || !globalDebug {
		t.Error("debug should be true")
	}
	s.SetDebugMode(false)
	if s.debug || globalDebug {
		t.Error("debug should be false")
	}
}

func TestSceneAdvanceLifecycle(t *testing.T) {
	s := NewScene()
	sink := &recordingSink{}
	s.SetEventSink(sink)
	s.AutoDispose = true

	f := newFixture([]float64{0}, []float64{10})
	s.Root().AddChild(f.parent)
	m := f.morph(t, AlignmentTable{Transition}, nil)
	s.AddMorph("slide", NewMorphTween(m, 1))

	if err := s.Advance(0.5); err != nil {
		t.Fatal(err)
	}
	if s.NumMorphs() != 1 {
		t.Fatalf("NumMorphs = %d, want 1", s.NumMorphs())
	}
	if err := s.Advance(0.5); err != nil {
		t.Fatal(err)
	}
	if s.NumMorphs() != 0 {
		t.Errorf("NumMorphs = %d, want 0 after auto-dispose", s.NumMorphs())
	}
	if !m.IsDisposed() {
		t.Error("morph should be disposed")
	}

	want := []MorphEventType{MorphStarted, MorphFinished, MorphDisposed}
	got := sink.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if sink.events[0].Name != "slide" {
		t.Errorf("event name = %q, want slide", sink.events[0].Name)
	}
}

func TestSceneAdvanceKeepsFinishedWithoutAutoDispose(t *testing.T) {
	s := NewScene()
	f := newFixture([]float64{0}, []float64{10})
	m := f.morph(t, AlignmentTable{Transition}, nil)
	s.AddMorph("slide", NewMorphTween(m, 0.5))

	for i := 0; i < 3; i++ {
		if err := s.Advance(0.25); err != nil {
			t.Fatal(err)
		}
	}
	if s.NumMorphs() != 1 {
		t.Errorf("NumMorphs = %d, want 1", s.NumMorphs())
	}
	s.DisposeMorphs()
	if s.NumMorphs() != 0 || !m.IsDisposed() {
		t.Error("DisposeMorphs should dispose and forget every morph")
	}
}

func TestSceneAdvanceReportsFailure(t *testing.T) {
	s := NewScene()
	sink := &recordingSink{}
	s.SetEventSink(sink)

	f := newFixture([]float64{0}, []float64{10})
	m := f.morph(t, AlignmentTable{Transition}, nil)
	m.Tracks(TrackPersisting)[0].Copy.Dispose()
	s.AddMorph("broken", NewMorphTween(m, 1))

	err := s.Advance(0.1)
	if !errors.Is(err, ErrDisposed) {
		t.Fatalf("Advance = %v, want ErrDisposed", err)
	}
	if s.NumMorphs() != 0 {
		t.Errorf("failed morph should be removed, NumMorphs = %d", s.NumMorphs())
	}
	last := sink.events[len(sink.events)-1]
	if last.Type != MorphFailed || last.Err == nil {
		t.Errorf("last event = %+v, want failed with error", last)
	}
}

func TestSceneUpdateFunc(t *testing.T) {
	s := NewScene()
	calls := 0
	s.SetUpdateFunc(func() error {
		calls++
		return nil
	})
	if err := s.Advance(0.1); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("update func calls = %d, want 1", calls)
	}
}

func TestSceneAdvanceRefreshesTransforms(t *testing.T) {
	s := NewScene()
	parent := NewContainer("p")
	parent.SetPosition(100, 0)
	parent.SetScale(2, 2)
	child := NewGroupNode("c", "c", 1, 1)
	child.SetPosition(5, 5)
	parent.AddChild(child)
	s.Root().AddChild(parent)

	if err := s.Advance(0); err != nil {
		t.Fatal(err)
	}
	wx, wy := child.LocalToWorld(0, 0)
	if wx != 110 || wy != 10 {
		t.Errorf("world = (%v, %v), want (110, 10)", wx, wy)
	}
}
