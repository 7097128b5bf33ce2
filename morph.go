package texmorph

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
)

// MorphState is the playback state of a Morph.
type MorphState uint8

const (
	MorphReady         MorphState = iota // before expression shown, nothing moved yet
	MorphTransitioning                   // scratch copies shown and interpolating
	MorphEnded                           // after expression shown in place
)

// String returns the state name.
func (s MorphState) String() string {
	switch s {
	case MorphReady:
		return "ready"
	case MorphTransitioning:
		return "transitioning"
	case MorphEnded:
		return "ended"
	default:
		return fmt.Sprintf("MorphState(%d)", uint8(s))
	}
}

// TrackKind says how a track is animated.
type TrackKind uint8

const (
	TrackPersisting TrackKind = iota // lerps across the whole morph
	TrackLeaving                     // shrinks away during the first half
	TrackEntering                    // grows in during the second half
)

// String returns the kind name.
func (k TrackKind) String() string {
	switch k {
	case TrackPersisting:
		return "persisting"
	case TrackLeaving:
		return "leaving"
	case TrackEntering:
		return "entering"
	default:
		return fmt.Sprintf("TrackKind(%d)", uint8(k))
	}
}

// Track is the interpolation descriptor of one scratch copy.
type Track struct {
	Kind TrackKind
	Slot int
	Copy Group

	FromPosition, ToPosition Vec2
	FromScale, ToScale       Vec2
}

// PlacementAt returns the copy's placement at normalized time t given the
// eased progress used by persisting tracks.
func (tr *Track) PlacementAt(t, eased float64) Placement {
	switch tr.Kind {
	case TrackLeaving:
		return Placement{Position: tr.FromPosition, Scale: tr.FromScale.Mul(EaseOutFactor(t))}
	case TrackEntering:
		return Placement{Position: tr.ToPosition, Scale: tr.ToScale.Mul(EaseInFactor(t))}
	default:
		return Placement{
			Position: tr.FromPosition.Lerp(tr.ToPosition, eased),
			Scale:    tr.FromScale.Lerp(tr.ToScale, eased),
		}
	}
}

// EaseOutFactor is the leaving scale factor: 1 at t=0, 0 from t=0.5 on.
func EaseOutFactor(t float64) float64 { return clamp01(1 - t*2) }

// EaseInFactor is the entering scale factor: 0 until t=0.5, 1 at t=1.
func EaseInFactor(t float64) float64 { return clamp01(t*2 - 1) }

// MorphConfig describes a transition between two expressions.
type MorphConfig struct {
	Before *Expression
	After  *Expression
	Table  AlignmentTable

	// Easing shapes persisting tracks. Nil means Linear.
	Easing Easing

	// Scratch is an empty container the scratch copies are duplicated into.
	// The morph owns it from NewMorph on, including when NewMorph fails.
	Scratch Group

	// Optional per-slot group index overrides, see WithIndexOverrides.
	BeforeOverrides []int
	AfterOverrides  []int

	// Logger receives debug lifecycle records. Nil discards.
	Logger *slog.Logger
}

// Morph plays one transition. It is driven by Apply with a normalized time
// from any caller-owned clock (see MorphTween) and must be disposed when the
// transition ends or is aborted. Not safe for concurrent use.
type Morph struct {
	before  *Expression
	after   *Expression
	scratch Group
	easing  Easing
	log     *slog.Logger

	paired *PairedState
	offset Vec2
	tracks []Track

	state    MorphState
	disposed bool
}

// NewMorph aligns the two expressions, duplicates every group it animates into
// the scratch container and shows the before expression.
func NewMorph(cfg MorphConfig) (*Morph, error) {
	if cfg.Scratch == nil {
		return nil, errors.New("texmorph: morph needs a scratch container")
	}
	if cfg.Before == nil || cfg.After == nil || cfg.Before.Root == nil || cfg.After.Root == nil {
		cfg.Scratch.Dispose()
		return nil, errors.New("texmorph: morph needs before and after expressions with roots")
	}

	paired, err := NewPairedState(cfg.Table, cfg.Before.Groups, cfg.After.Groups,
		WithIndexOverrides(cfg.BeforeOverrides, cfg.AfterOverrides))
	if err != nil {
		cfg.Scratch.Dispose()
		return nil, fmt.Errorf("new morph: %w", err)
	}

	m := &Morph{
		before:  cfg.Before,
		after:   cfg.After,
		scratch: cfg.Scratch,
		easing:  cfg.Easing,
		log:     cfg.Logger,
		paired:  paired,
		offset:  paired.AnchorOffset(),
	}
	if m.easing == nil {
		m.easing = Linear
	}
	if m.log == nil {
		m.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := m.build(); err != nil {
		m.Dispose()
		return nil, fmt.Errorf("new morph: %w", err)
	}

	m.log.Debug("morph created",
		"persisting", len(m.Tracks(TrackPersisting)),
		"leaving", len(m.Tracks(TrackLeaving)),
		"entering", len(m.Tracks(TrackEntering)),
		"offset_x", m.offset.X, "offset_y", m.offset.Y)
	return m, nil
}

func (m *Morph) build() error {
	if err := m.scratch.Place(m.before.Root.Placement()); err != nil {
		return err
	}

	for _, p := range m.paired.CommonPairs() {
		from := p.Before.Placement()
		to := p.After.Placement()
		if err := m.addTrack(Track{
			Kind:         TrackPersisting,
			Slot:         p.Slot,
			FromPosition: from.Position,
			ToPosition:   to.Position.Add(m.offset),
			FromScale:    from.Scale,
			ToScale:      to.Scale,
		}, p.Before, from); err != nil {
			return err
		}
	}

	for _, g := range m.paired.LeavingGroups() {
		from := g.Group.Placement()
		if err := m.addTrack(Track{
			Kind:         TrackLeaving,
			Slot:         g.Slot,
			FromPosition: from.Position,
			ToPosition:   from.Position,
			FromScale:    from.Scale,
		}, g.Group, from); err != nil {
			return err
		}
	}

	for _, g := range m.paired.EnteringGroups() {
		to := g.Group.Placement()
		pos := to.Position.Add(m.offset)
		if err := m.addTrack(Track{
			Kind:         TrackEntering,
			Slot:         g.Slot,
			FromPosition: pos,
			ToPosition:   pos,
			ToScale:      to.Scale,
		}, g.Group, Placement{Position: pos}); err != nil {
			return err
		}
	}

	if err := m.before.Root.SetVisible(true); err != nil {
		return err
	}
	if err := m.after.Root.SetVisible(false); err != nil {
		return err
	}
	return m.scratch.SetVisible(false)
}

// addTrack duplicates src into the scratch container and records the track.
func (m *Morph) addTrack(tr Track, src Group, initial Placement) error {
	dup, err := src.DuplicateInto(m.scratch)
	if err != nil {
		return fmt.Errorf("duplicate slot %d: %w", tr.Slot, err)
	}
	tr.Copy = dup
	m.tracks = append(m.tracks, tr)
	return dup.Place(initial)
}

// State returns the playback state.
func (m *Morph) State() MorphState {
	return m.state
}

// Offset returns the anchor offset added to every after-side position.
func (m *Morph) Offset() Vec2 {
	return m.offset
}

// Paired returns the alignment the morph was built from.
func (m *Morph) Paired() *PairedState {
	return m.paired
}

// Tracks returns a copy of the tracks of the given kind in slot order.
func (m *Morph) Tracks(kind TrackKind) []Track {
	var out []Track
	for _, tr := range m.tracks {
		if tr.Kind == kind {
			out = append(out, tr)
		}
	}
	return out
}

// Apply shows the transition at normalized time t. Any t may be applied at
// any time, including scrubbing backwards.
//
// t >= 1 hands off to the after expression, which inherits the before
// expression's placement shifted by the anchor offset, so every after group
// stays where its scratch copy ended. t <= 0 snaps back to the pure before state; the
// scratch copies are hidden, not destroyed, so playback can resume. In
// between, leaving tracks shrink during the first half, entering tracks grow
// during the second half and persisting tracks move across the whole range.
//
// Host failures are returned as-is rather than skipping the frame.
func (m *Morph) Apply(t float32) error {
	if m.disposed {
		return fmt.Errorf("apply morph: %w", ErrDisposed)
	}
	if math.IsNaN(float64(t)) {
		return fmt.Errorf("apply morph: %w: t is NaN", ErrInvalidTime)
	}
	switch {
	case t >= 1:
		return m.end()
	case t <= 0:
		return m.reset()
	}

	if m.state != MorphTransitioning {
		if err := m.begin(); err != nil {
			return err
		}
	}

	ft := float64(t)
	eased := float64(m.easing(t))
	for i := range m.tracks {
		tr := &m.tracks[i]
		if err := tr.Copy.Place(tr.PlacementAt(ft, eased)); err != nil {
			return fmt.Errorf("apply slot %d: %w", tr.Slot, err)
		}
	}
	return nil
}

func (m *Morph) begin() error {
	if err := m.scratch.SetVisible(true); err != nil {
		return err
	}
	if err := m.before.Root.SetVisible(false); err != nil {
		return err
	}
	if err := m.after.Root.SetVisible(false); err != nil {
		return err
	}
	m.log.Debug("morph transitioning", "from", m.state.String())
	m.state = MorphTransitioning
	return nil
}

func (m *Morph) end() error {
	if m.state == MorphEnded {
		return nil
	}
	if err := m.after.Root.Place(m.handoffPlacement()); err != nil {
		return err
	}
	if err := m.before.Root.SetVisible(false); err != nil {
		return err
	}
	if err := m.scratch.SetVisible(false); err != nil {
		return err
	}
	if err := m.after.Root.SetVisible(true); err != nil {
		return err
	}
	m.log.Debug("morph ended")
	m.state = MorphEnded
	return nil
}

// handoffPlacement is the before root's placement moved by the offset, which
// lives in the before root's local frame.
func (m *Morph) handoffPlacement() Placement {
	p := m.before.Root.Placement()
	p.Position = p.Position.Add(m.offset.MulVec(p.Scale))
	return p
}

func (m *Morph) reset() error {
	if m.state == MorphReady {
		return nil
	}
	if err := m.before.Root.SetVisible(true); err != nil {
		return err
	}
	if err := m.after.Root.SetVisible(false); err != nil {
		return err
	}
	if err := m.scratch.SetVisible(false); err != nil {
		return err
	}
	m.log.Debug("morph reset", "from", m.state.String())
	m.state = MorphReady
	return nil
}

// Dispose destroys every scratch copy and the scratch container, shows the
// before expression and hides the after expression. Safe to call in any
// state and more than once.
func (m *Morph) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	for i := range m.tracks {
		m.tracks[i].Copy.Dispose()
	}
	m.tracks = nil
	m.scratch.Dispose()
	if err := m.before.Root.SetVisible(true); err != nil {
		m.log.Debug("dispose: show before", "error", err)
	}
	if err := m.after.Root.SetVisible(false); err != nil {
		m.log.Debug("dispose: hide after", "error", err)
	}
	m.log.Debug("morph disposed")
}

// IsDisposed reports whether Dispose has run.
func (m *Morph) IsDisposed() bool {
	return m.disposed
}
