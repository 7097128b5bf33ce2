// Package texmorph morphs one rendered math expression into another.
//
// Each expression is decomposed into ordered visual groups (contiguous runs
// of characters). An [AlignmentTable] says, slot by slot, which before group
// becomes which after group, which groups leave and which enter. A [Morph]
// turns that alignment into a crossfade driven by a normalized time t:
// leaving groups shrink away during the first half, entering groups grow in
// during the second half, and persisting groups glide from their before
// placement to their after placement across the whole range. One slot may be
// tagged [Anchor]; the whole after expression is shifted so that group stays
// put on screen.
//
// # Quick start
//
//	before, beforeRoot := texmorph.BuildExpression("before", []string{"a", "+", "b"}, style)
//	after, afterRoot := texmorph.BuildExpression("after", []string{"a", "+", "b", "+", "c"}, style)
//	scene.Root().AddChild(beforeRoot)
//	scene.Root().AddChild(afterRoot)
//
//	scratch := texmorph.NewContainer("scratch")
//	scene.Root().AddChild(scratch)
//
//	m, err := texmorph.NewMorph(texmorph.MorphConfig{
//		Before:  before,
//		After:   after,
//		Table:   texmorph.AutoAlign(3, 5),
//		Easing:  texmorph.EaseOf(ease.InOutCubic),
//		Scratch: scratch,
//	})
//	if err != nil {
//		return err
//	}
//	scene.AddMorph("expand", texmorph.NewMorphTween(m, 1.5))
//
// # Alignment tables
//
// Tables are authored once, either with [AutoAlign] or interactively through
// an [Editor], and can be pasted into scripts as source text
// ([AlignmentTable.SourceText]) or stored as a TOML [Document].
//
// # Scene graph
//
// Groups are driven through the [Group] interface. The package ships a small
// retained-mode scene graph ([Node], [Scene]) rendered with [Ebitengine] that
// implements it; any other host can implement Group instead.
//
// [Ebitengine]: https://ebitengine.org
package texmorph
