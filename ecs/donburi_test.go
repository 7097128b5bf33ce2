package ecs

import (
	"errors"
	"testing"

	"github.com/phanxgames/texmorph"

	"github.com/yohamta/donburi"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitMorphEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []texmorph.MorphEvent
	MorphEventType.Subscribe(world, func(w donburi.World, e texmorph.MorphEvent) {
		received = append(received, e)
	})

	boom := errors.New("boom")
	sink.EmitMorphEvent(texmorph.MorphEvent{Type: texmorph.MorphStarted, Name: "slide"})
	sink.EmitMorphEvent(texmorph.MorphEvent{Type: texmorph.MorphFailed, Name: "slide", Err: boom})

	if len(received) != 0 {
		t.Fatalf("events should be queued until ProcessEvents, got %d", len(received))
	}
	MorphEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Type != texmorph.MorphStarted || received[0].Name != "slide" {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Type != texmorph.MorphFailed || !errors.Is(received[1].Err, boom) {
		t.Errorf("event 1: %+v", received[1])
	}
}

// Drives a real scene end to end so the sink sees the full lifecycle.
func TestDonburiSink_SceneLifecycle(t *testing.T) {
	world := donburi.NewWorld()
	var got []texmorph.MorphEventType
	MorphEventType.Subscribe(world, func(w donburi.World, e texmorph.MorphEvent) {
		got = append(got, e.Type)
	})

	style := texmorph.DefaultLayoutStyle()
	before, beforeRoot := texmorph.BuildExpression("before", []string{"x", "+", "1"}, style)
	after, afterRoot := texmorph.BuildExpression("after", []string{"1", "+", "x"}, style)

	s := texmorph.NewScene()
	s.SetEventSink(NewDonburiSink(world))
	s.AutoDispose = true
	s.Root().AddChild(beforeRoot)
	s.Root().AddChild(afterRoot)
	scratch := texmorph.NewContainer("scratch")
	s.Root().AddChild(scratch)

	m, err := texmorph.NewMorph(texmorph.MorphConfig{
		Before:  before,
		After:   after,
		Table:   texmorph.AlignmentTable{texmorph.Replace, texmorph.Anchor, texmorph.Replace},
		Scratch: scratch,
	})
	if err != nil {
		t.Fatal(err)
	}
	s.AddMorph("swap", texmorph.NewMorphTween(m, 0.5))
	for i := 0; i < 4; i++ {
		if err := s.Advance(0.25); err != nil {
			t.Fatal(err)
		}
	}
	MorphEventType.ProcessEvents(world)

	want := []texmorph.MorphEventType{texmorph.MorphStarted, texmorph.MorphFinished, texmorph.MorphDisposed}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	MorphEventType.Subscribe(world, func(w donburi.World, e texmorph.MorphEvent) { count1++ })
	MorphEventType.Subscribe(world, func(w donburi.World, e texmorph.MorphEvent) { count2++ })

	sink.EmitMorphEvent(texmorph.MorphEvent{Type: texmorph.MorphFinished})
	MorphEventType.ProcessEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
