package texmorph

import (
	"io"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// MorphEventType identifies a morph lifecycle event.
type MorphEventType uint8

const (
	MorphStarted  MorphEventType = iota // fires when a morph tween is added to the scene
	MorphFinished                       // fires when a morph tween reaches its end state
	MorphDisposed                       // fires when the scene disposes a finished morph
	MorphFailed                         // fires when applying a morph returns an error
)

// String returns the event name.
func (t MorphEventType) String() string {
	switch t {
	case MorphStarted:
		return "started"
	case MorphFinished:
		return "finished"
	case MorphDisposed:
		return "disposed"
	case MorphFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MorphEvent carries a lifecycle change for the optional event bridge.
type MorphEvent struct {
	Type  MorphEventType
	Name  string
	State MorphState
	Err   error
}

// EventSink is the interface for optional event integration (see package
// ecs). When set on a Scene, morph lifecycle events are
// forwarded to it.
type EventSink interface {
	EmitMorphEvent(event MorphEvent)
}

type sceneMorph struct {
	name  string
	tween *MorphTween
}

// Scene is the top-level object that owns the node tree and the running
// morph tweens.
type Scene struct {
	root  *Node
	sink  EventSink
	debug bool
	log   *slog.Logger

	morphs []sceneMorph

	// ClearColor fills the screen before the tree is drawn.
	ClearColor Color

	// AutoDispose disposes morphs as soon as they finish.
	AutoDispose bool

	// CaptureDir receives the PNGs requested with CaptureAt.
	CaptureDir string
	pending    []Capture // waiting for their morph to reach At
	ready      []Capture // written after the next Draw

	updateFunc func() error
	lastUpdate time.Duration
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{
		root:          NewContainer("root"),
		log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		CaptureDir: "captures",
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetLogger sets the logger used for morph lifecycle records. Nil discards.
func (s *Scene) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.log = l
}

// SetEventSink sets the optional event bridge.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetUpdateFunc registers a callback run at the end of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and per-frame
// timing stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// AddMorph starts driving mt from Update under the given name.
func (s *Scene) AddMorph(name string, mt *MorphTween) {
	s.morphs = append(s.morphs, sceneMorph{name: name, tween: mt})
	s.log.Debug("morph started", "name", name, "duration", mt.Duration)
	s.emit(MorphEvent{Type: MorphStarted, Name: name, State: mt.Morph().State()})
}

// NumMorphs returns the number of morphs the scene is driving.
func (s *Scene) NumMorphs() int {
	return len(s.morphs)
}

// Update advances the scene by one tick at the current TPS.
func (s *Scene) Update() error {
	return s.Advance(float32(1.0 / float64(ebiten.TPS())))
}

// Advance moves every running morph forward by dt seconds. A morph whose
// Apply fails is disposed and removed, and the first such error is returned
// after the remaining morphs have been advanced.
func (s *Scene) Advance(dt float32) error {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	var firstErr error
	kept := s.morphs[:0]
	for _, sm := range s.morphs {
		wasDone := sm.tween.Done
		if err := sm.tween.Update(dt); err != nil {
			s.log.Error("morph failed", "name", sm.name, "error", err)
			s.emit(MorphEvent{Type: MorphFailed, Name: sm.name, State: sm.tween.Morph().State(), Err: err})
			sm.tween.Morph().Dispose()
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		s.collectCaptures(sm.name, sm.tween.Progress())
		if sm.tween.Done && !wasDone {
			s.log.Debug("morph finished", "name", sm.name)
			s.emit(MorphEvent{Type: MorphFinished, Name: sm.name, State: sm.tween.Morph().State()})
		}
		if sm.tween.Done && s.AutoDispose {
			sm.tween.Morph().Dispose()
			s.emit(MorphEvent{Type: MorphDisposed, Name: sm.name, State: sm.tween.Morph().State()})
			continue
		}
		kept = append(kept, sm)
	}
	clear(s.morphs[len(kept):])
	s.morphs = kept

	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if s.debug {
		s.lastUpdate = time.Since(t0)
	}

	if firstErr != nil {
		return firstErr
	}
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// DisposeMorphs disposes every morph the scene is driving and forgets them.
func (s *Scene) DisposeMorphs() {
	for _, sm := range s.morphs {
		sm.tween.Morph().Dispose()
		s.emit(MorphEvent{Type: MorphDisposed, Name: sm.name, State: sm.tween.Morph().State()})
	}
	clear(s.morphs)
	s.morphs = s.morphs[:0]
}

func (s *Scene) emit(evt MorphEvent) {
	if s.sink != nil {
		s.sink.EmitMorphEvent(evt)
	}
}
