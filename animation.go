package texmorph

import (
	"fmt"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Easing maps normalized time to normalized progress. Curves must satisfy
// f(0) = 0 and f(1) = 1.
type Easing func(t float32) float32

// Linear is the identity easing.
func Linear(t float32) float32 { return t }

// EaseOf adapts a gween easing function to a normalized Easing. The ends are
// pinned so overshooting curves still start at 0 and finish at 1.
func EaseOf(fn ease.TweenFunc) Easing {
	return func(t float32) float32 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return fn(t, 0, 1, 1)
	}
}

var easingsByName = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inquad":       ease.InQuad,
	"outquad":      ease.OutQuad,
	"inoutquad":    ease.InOutQuad,
	"incubic":      ease.InCubic,
	"outcubic":     ease.OutCubic,
	"inoutcubic":   ease.InOutCubic,
	"inquart":      ease.InQuart,
	"outquart":     ease.OutQuart,
	"inoutquart":   ease.InOutQuart,
	"insine":       ease.InSine,
	"outsine":      ease.OutSine,
	"inoutsine":    ease.InOutSine,
	"inexpo":       ease.InExpo,
	"outexpo":      ease.OutExpo,
	"inoutexpo":    ease.InOutExpo,
	"inback":       ease.InBack,
	"outback":      ease.OutBack,
	"inoutback":    ease.InOutBack,
	"outbounce":    ease.OutBounce,
	"inoutelastic": ease.InOutElastic,
}

// EasingByName resolves an easing by its gween name ("linear", "inOutCubic",
// "outQuad", ...). Matching ignores case, dashes and underscores.
func EasingByName(name string) (Easing, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	fn, ok := easingsByName[key]
	if !ok {
		return nil, fmt.Errorf("texmorph: unknown easing %q", name)
	}
	return EaseOf(fn), nil
}

// MorphTween drives a Morph from 0 to 1 over Duration seconds. Create one via
// NewMorphTween and call Update(dt) each frame, or Seek to scrub. The morph's
// own easing shapes the motion; the clock itself is linear.
//
// There is no global animation manager: callers run Update themselves or
// hand the tween to Scene.AddMorph.
type MorphTween struct {
	morph    *Morph
	tween    *gween.Tween
	Duration float32
	Done     bool
	progress float32
}

// NewMorphTween creates a clock for m lasting duration seconds.
func NewMorphTween(m *Morph, duration float32) *MorphTween {
	return &MorphTween{
		morph:    m,
		tween:    gween.New(0, 1, duration, ease.Linear),
		Duration: duration,
	}
}

// Morph returns the driven morph.
func (mt *MorphTween) Morph() *Morph {
	return mt.morph
}

// Update advances the clock by dt seconds and applies the morph. Done is set
// once the morph reaches its end state. Errors from the morph stop the clock.
func (mt *MorphTween) Update(dt float32) error {
	if mt.Done {
		return nil
	}
	if mt.Duration <= 0 {
		return mt.apply(1, true)
	}
	t, finished := mt.tween.Update(dt)
	return mt.apply(t, finished)
}

// Seek jumps to the given time in seconds, forwards or backwards, and applies
// the morph there. Seeking back before the end clears Done.
func (mt *MorphTween) Seek(seconds float32) error {
	if mt.Duration <= 0 {
		return mt.apply(1, true)
	}
	t, finished := mt.tween.Set(seconds)
	return mt.apply(t, finished)
}

func (mt *MorphTween) apply(t float32, finished bool) error {
	if finished {
		t = 1
	}
	if err := mt.morph.Apply(t); err != nil {
		mt.Done = true
		return err
	}
	mt.progress = t
	mt.Done = finished
	return nil
}

// Progress returns the normalized time last applied to the morph.
func (mt *MorphTween) Progress() float32 {
	return mt.progress
}
