package texmorph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Editor is the interactive authoring surface for one alignment. It owns the
// table and the source text of every group on both sides, and keeps the two
// consistent: every edit either leaves a valid table addressing exactly the
// current groups or is rejected and changes nothing.
type Editor struct {
	table  AlignmentTable
	groups [2][]string
}

// NewEditor creates an editor over the given group texts, stored in NFC.
// table is resized to the group counts; a nil table yields AutoAlign.
func NewEditor(table AlignmentTable, before, after []string) (*Editor, error) {
	e := &Editor{groups: [2][]string{normalizeGroups(before), normalizeGroups(after)}}
	next := table.AdjustLength(len(before), len(after))
	if err := next.Validate(); err != nil {
		return nil, err
	}
	e.table = next
	return e, nil
}

// Table returns a copy of the current table.
func (e *Editor) Table() AlignmentTable {
	return slices.Clone(e.table)
}

// Groups returns a copy of the group texts on one side.
func (e *Editor) Groups(side Side) []string {
	return slices.Clone(e.groups[side])
}

// SetGroups replaces the group texts on one side, normalised to NFC, and
// resizes the table.
func (e *Editor) SetGroups(side Side, texts []string) error {
	groups := e.groups
	groups[side] = normalizeGroups(texts)
	return e.commit(e.table, groups)
}

func normalizeGroups(texts []string) []string {
	if texts == nil {
		return nil
	}
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = norm.NFC.String(text)
	}
	return out
}

// SetTag changes the tag of one slot. Changing whether the slot consumes a
// group shifts the table, which is then resized to the group counts again.
func (e *Editor) SetTag(slot int, tag TransitionTag) error {
	if err := e.checkSlot(slot); err != nil {
		return err
	}
	next := slices.Clone(e.table)
	next[slot] = tag
	return e.commit(next, e.groups)
}

// RemoveSlot deletes one slot and resizes the table to the group counts.
func (e *Editor) RemoveSlot(slot int) error {
	if err := e.checkSlot(slot); err != nil {
		return err
	}
	next := slices.Delete(slices.Clone(e.table), slot, slot+1)
	return e.commit(next, e.groups)
}

// InsertGroupBoundary splits the group at slot on one side into two at a
// character index, counted in grapheme clusters of the NFC-normalised text.
//
// The second piece needs a slot right after the given one. If that neighbour
// is a slot only the other side has (Add when splitting before, Remove when
// splitting after), it is turned into a Transition pairing with the new
// piece; otherwise a one-sided slot (Remove or Add) is inserted.
func (e *Editor) InsertGroupBoundary(slot int, side Side, splitIndex int) error {
	if err := e.checkSlot(slot); err != nil {
		return err
	}
	idx := slotIndexAt(e.table, slot).Index(side)
	if idx < 0 {
		return fmt.Errorf("%w: slot %d has no %s group", ErrInvalidSplit, slot, side)
	}

	head, tail, ok := splitGraphemes(e.groups[side][idx], splitIndex)
	if !ok {
		return fmt.Errorf("%w: index %d inside %q", ErrInvalidSplit, splitIndex, e.groups[side][idx])
	}

	groups := e.groups
	groups[side] = slices.Clone(groups[side])
	groups[side][idx] = head
	groups[side] = slices.Insert(groups[side], idx+1, tail)

	own, other := Remove, Add
	if side == After {
		own, other = Add, Remove
	}
	next := slices.Clone(e.table)
	if slot+1 < len(next) && next[slot+1] == other {
		next[slot+1] = Transition
	} else {
		next = slices.Insert(next, slot+1, own)
	}
	return e.commit(next, groups)
}

// commit resizes and validates a candidate state and installs it.
func (e *Editor) commit(next AlignmentTable, groups [2][]string) error {
	next = next.AdjustLength(len(groups[Before]), len(groups[After]))
	if err := next.Validate(); err != nil {
		return err
	}
	e.table = next
	e.groups = groups
	return nil
}

func (e *Editor) checkSlot(slot int) error {
	if slot < 0 || slot >= len(e.table) {
		return fmt.Errorf("%w: slot %d of %d", ErrSlotIndexOutOfRange, slot, len(e.table))
	}
	return nil
}

// Document returns the editor state as a persistable document.
func (e *Editor) Document() Document {
	return Document{
		Tags:         e.Table(),
		BeforeGroups: e.Groups(Before),
		AfterGroups:  e.Groups(After),
	}
}

func slotIndexAt(table AlignmentTable, slot int) SlotIndex {
	for s := range table.Indexes() {
		if s.Slot == slot {
			return s
		}
	}
	return SlotIndex{Slot: slot, Before: -1, After: -1}
}

// splitGraphemes splits s before its n-th grapheme cluster. Both halves must
// be non-empty.
func splitGraphemes(s string, n int) (head, tail string, ok bool) {
	s = norm.NFC.String(s)
	if n <= 0 || n >= uniseg.GraphemeClusterCount(s) {
		return "", "", false
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < n && g.Next(); i++ {
		b.WriteString(g.Str())
	}
	head = b.String()
	return head, s[len(head):], true
}

// GraphemeCount returns the number of characters in a group's text as the
// editor counts them.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(norm.NFC.String(s))
}
