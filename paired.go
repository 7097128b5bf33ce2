package texmorph

import (
	"fmt"
	"slices"
)

// Pair is a persisting correspondence: one before group and the after group
// it morphs into.
type Pair struct {
	Slot   int
	Before Group
	After  Group
}

// SlotGroup is a group that exists on one side only (or is replaced).
type SlotGroup struct {
	Slot  int
	Group Group
}

// PairedState combines an alignment table with the before and after groups
// it addresses. Groups live in two flat slices; the table's cursor walk is the
// only source of correspondence between them.
type PairedState struct {
	table  AlignmentTable
	slots  []SlotIndex
	before []Group
	after  []Group
}

type pairedOptions struct {
	beforeOverrides []int
	afterOverrides  []int
}

// PairedOption configures NewPairedState.
type PairedOption func(*pairedOptions)

// WithIndexOverrides replaces cursor-derived group indexes per slot. Entry i
// of a list applies to slot i; a negative entry keeps the walked index. Either
// list may be nil or shorter than the table.
func WithIndexOverrides(before, after []int) PairedOption {
	return func(o *pairedOptions) {
		o.beforeOverrides = before
		o.afterOverrides = after
	}
}

// NewPairedState validates the table and checks that the group slices have
// exactly the lengths the table implies. Callers resizing expressions must
// run AdjustLength first; mismatches are never truncated silently.
func NewPairedState(table AlignmentTable, before, after []Group, opts ...PairedOption) (*PairedState, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	nb, na := table.Counts()
	if len(before) != nb || len(after) != na {
		return nil, fmt.Errorf("%w: table addresses %d before and %d after groups, got %d and %d",
			ErrGroupCountMismatch, nb, na, len(before), len(after))
	}

	var o pairedOptions
	for _, opt := range opts {
		opt(&o)
	}
	slots, err := resolveIndexes(table, o.beforeOverrides, o.afterOverrides)
	if err != nil {
		return nil, err
	}

	return &PairedState{
		table:  table,
		slots:  slots,
		before: before,
		after:  after,
	}, nil
}

// resolveIndexes walks the table and applies per-slot index overrides.
func resolveIndexes(table AlignmentTable, beforeOv, afterOv []int) ([]SlotIndex, error) {
	slots := slices.Collect(table.Indexes())
	nb, na := table.Counts()
	if err := applyOverrides(slots, Before, beforeOv, nb); err != nil {
		return nil, err
	}
	if err := applyOverrides(slots, After, afterOv, na); err != nil {
		return nil, err
	}
	return slots, nil
}

func applyOverrides(slots []SlotIndex, side Side, overrides []int, count int) error {
	if len(overrides) > len(slots) {
		return fmt.Errorf("%w: %d %s overrides for %d slots", ErrSlotIndexOutOfRange, len(overrides), side, len(slots))
	}
	for i, ov := range overrides {
		if ov < 0 {
			continue
		}
		s := &slots[i]
		if s.Index(side) < 0 {
			return fmt.Errorf("%w: slot %d has no %s group to override", ErrSlotIndexOutOfRange, i, side)
		}
		if ov >= count {
			return fmt.Errorf("%w: %s override %d at slot %d exceeds %d groups", ErrSlotIndexOutOfRange, side, ov, i, count)
		}
		if side == Before {
			s.Before = ov
		} else {
			s.After = ov
		}
	}

	seen := make(map[int]int, count)
	for _, s := range slots {
		idx := s.Index(side)
		if idx < 0 {
			continue
		}
		if prev, dup := seen[idx]; dup {
			return fmt.Errorf("%w: %s group %d used by slots %d and %d", ErrSlotIndexOutOfRange, side, idx, prev, s.Slot)
		}
		seen[idx] = s.Slot
	}
	return nil
}

// Table returns the alignment table.
func (p *PairedState) Table() AlignmentTable {
	return p.table
}

// Slots returns the resolved group indexes of every slot. The returned slice
// MUST NOT be mutated by the caller.
func (p *PairedState) Slots() []SlotIndex {
	return p.slots
}

// facts returns the before-side and after-side facts of slot i.
func (p *PairedState) facts(i int) (SlotFacts, SlotFacts) {
	return p.table.Facts(i, Before), p.table.Facts(i, After)
}

// CommonPairs returns the slots where both sides stay, in slot order.
func (p *PairedState) CommonPairs() []Pair {
	var out []Pair
	for _, s := range p.slots {
		bf, af := p.facts(s.Slot)
		if bf.IsStaying && af.IsStaying {
			out = append(out, Pair{Slot: s.Slot, Before: p.before[s.Before], After: p.after[s.After]})
		}
	}
	return out
}

// LeavingGroups returns the before groups that fade out: replaced slots and
// slots removed on the before side only.
func (p *PairedState) LeavingGroups() []SlotGroup {
	var out []SlotGroup
	for _, s := range p.slots {
		bf, af := p.facts(s.Slot)
		if bf.IsReplaced || af.IsReplaced || (bf.IsRemoved && !af.IsRemoved) {
			out = append(out, SlotGroup{Slot: s.Slot, Group: p.before[s.Before]})
		}
	}
	return out
}

// EnteringGroups returns the after groups that fade in: replaced slots and
// slots that only the after side has.
func (p *PairedState) EnteringGroups() []SlotGroup {
	var out []SlotGroup
	for _, s := range p.slots {
		bf, af := p.facts(s.Slot)
		if bf.IsReplaced || af.IsReplaced || (af.IsRemoved && !bf.IsRemoved) {
			out = append(out, SlotGroup{Slot: s.Slot, Group: p.after[s.After]})
		}
	}
	return out
}

// AnchorOffset returns before.Position - after.Position for the first staying
// slot anchored on either side, or the zero vector. Adding it to every after
// position keeps the anchor group still while the rest moves around it.
func (p *PairedState) AnchorOffset() Vec2 {
	for _, s := range p.slots {
		bf, af := p.facts(s.Slot)
		if bf.IsStaying && af.IsStaying && (bf.IsAnchor || af.IsAnchor) {
			b := p.before[s.Before].Placement().Position
			a := p.after[s.After].Placement().Position
			return b.Sub(a)
		}
	}
	return Vec2{}
}
