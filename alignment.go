package texmorph

import (
	"fmt"
	"iter"
	"slices"
)

// AlignmentTable is an ordered sequence of transition tags, one per slot.
//
// Walking the table left to right, a before cursor advances on every tag
// except Add and an after cursor on every tag except Remove. The cursor
// values at each slot are that slot's before and after group indexes, so
// the table alone carries the correspondence between two expressions.
type AlignmentTable []TransitionTag

// NewAlignmentTable returns a table holding a copy of tags.
func NewAlignmentTable(tags ...TransitionTag) AlignmentTable {
	return AlignmentTable(slices.Clone(tags))
}

// AutoAlign returns the greedy length-matching table for the given group
// counts: Transition slots while both sides have groups left, then Remove or
// Add slots for whichever side is longer.
func AutoAlign(before, after int) AlignmentTable {
	return AlignmentTable(nil).AdjustLength(before, after)
}

// SlotIndex is one step of the cursor walk. Before and After are -1 when the
// slot has no group on that side.
type SlotIndex struct {
	Slot   int
	Before int
	After  int
}

// HasBefore reports whether the slot has a before group.
func (s SlotIndex) HasBefore() bool { return s.Before >= 0 }

// HasAfter reports whether the slot has an after group.
func (s SlotIndex) HasAfter() bool { return s.After >= 0 }

// Index returns the group index on the given side, or -1.
func (s SlotIndex) Index(side Side) int {
	if side == Before {
		return s.Before
	}
	return s.After
}

// Indexes walks the table and yields every slot with its group indexes.
func (t AlignmentTable) Indexes() iter.Seq[SlotIndex] {
	return func(yield func(SlotIndex) bool) {
		b, a := 0, 0
		for i, tag := range t {
			idx := SlotIndex{Slot: i, Before: -1, After: -1}
			if tag.consumesBefore() {
				idx.Before = b
				b++
			}
			if tag.consumesAfter() {
				idx.After = a
				a++
			}
			if !yield(idx) {
				return
			}
		}
	}
}

// Counts returns the number of before and after groups the table addresses.
func (t AlignmentTable) Counts() (before, after int) {
	for _, tag := range t {
		if tag.consumesBefore() {
			before++
		}
		if tag.consumesAfter() {
			after++
		}
	}
	return before, after
}

// Validate checks the table invariants.
func (t AlignmentTable) Validate() error {
	first := -1
	for i, tag := range t {
		if tag != Anchor {
			continue
		}
		if first >= 0 {
			return fmt.Errorf("%w: slots %d and %d", ErrMultipleAnchors, first, i)
		}
		first = i
	}
	return nil
}

// Facts returns the classification of slot as seen from side. Each side reads
// the table from its own point of view: the after side sees an Add as a group
// only it has, which is what the before side calls a Remove.
func (t AlignmentTable) Facts(slot int, side Side) SlotFacts {
	tag := t[slot]
	if side == Before {
		return Classify(tag, tag.mirror())
	}
	return Classify(tag.mirror(), tag)
}

// AdjustLength returns a table resized to address exactly before and after
// groups, keeping existing slots where it can. Negative counts are treated
// as zero.
//
// A side with too many groups loses its last one-sided slot first (Remove
// for the before side, Add for the after side) and only then its last
// paired slot, so existing pairings survive incremental edits. Sides that
// are short then grow: Transition while both are short, then Remove or Add
// for the side that still is. The result is greedy, not a minimal edit.
func (t AlignmentTable) AdjustLength(before, after int) AlignmentTable {
	before = max(before, 0)
	after = max(after, 0)

	out := slices.Clone(t)
	b, a := out.Counts()

	for b > before || a > after {
		var i int
		if b > before {
			i = out.lastIndexFunc(func(tag TransitionTag) bool { return tag == Remove })
			if i < 0 {
				i = out.lastIndexFunc(TransitionTag.consumesBefore)
			}
		} else {
			i = out.lastIndexFunc(func(tag TransitionTag) bool { return tag == Add })
			if i < 0 {
				i = out.lastIndexFunc(TransitionTag.consumesAfter)
			}
		}
		tag := out[i]
		out = slices.Delete(out, i, i+1)
		if tag.consumesBefore() {
			b--
		}
		if tag.consumesAfter() {
			a--
		}
	}

	for b < before || a < after {
		switch {
		case b < before && a < after:
			out = append(out, Transition)
			b++
			a++
		case b < before:
			out = append(out, Remove)
			b++
		default:
			out = append(out, Add)
			a++
		}
	}
	return out
}

// AnchorSlot returns the slot of the first Anchor tag, or -1.
func (t AlignmentTable) AnchorSlot() int {
	return slices.Index(t, Anchor)
}

func (t AlignmentTable) lastIndexFunc(f func(TransitionTag) bool) int {
	for i := len(t) - 1; i >= 0; i-- {
		if f(t[i]) {
			return i
		}
	}
	return -1
}
