package texmorph

import (
	"fmt"
	"strings"
)

// TransitionTag says what happens to one slot of an alignment table.
type TransitionTag uint8

const (
	// Transition maps one before group to one after group and interpolates.
	Transition TransitionTag = iota
	// Anchor is a Transition that also pins the global offset. At most one
	// per table.
	Anchor
	// Add has no before group; the after group appears.
	Add
	// Remove has no after group; the before group disappears.
	Remove
	// Replace has both groups but they are unrelated: the before group
	// disappears and the after group appears independently.
	Replace
)

var tagNames = [...]string{
	Transition: "Transition",
	Anchor:     "Anchor",
	Add:        "Add",
	Remove:     "Remove",
	Replace:    "Replace",
}

// String returns the tag name.
func (t TransitionTag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("TransitionTag(%d)", uint8(t))
}

// ParseTag parses a tag name. Matching is case-insensitive.
func ParseTag(s string) (TransitionTag, error) {
	s = strings.TrimSpace(s)
	for i, name := range tagNames {
		if strings.EqualFold(s, name) {
			return TransitionTag(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTag, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t TransitionTag) MarshalText() ([]byte, error) {
	if int(t) >= len(tagNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTag, uint8(t))
	}
	return []byte(tagNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TransitionTag) UnmarshalText(b []byte) error {
	v, err := ParseTag(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// consumesBefore reports whether the cursor walk takes a before index.
func (t TransitionTag) consumesBefore() bool { return t != Add }

// consumesAfter reports whether the cursor walk takes an after index.
func (t TransitionTag) consumesAfter() bool { return t != Remove }

// staying reports a genuine one-to-one correspondence.
func (t TransitionTag) staying() bool { return t == Transition || t == Anchor }

// mirror returns the tag as seen from the other side: what one side adds the
// other side removes.
func (t TransitionTag) mirror() TransitionTag {
	switch t {
	case Add:
		return Remove
	case Remove:
		return Add
	default:
		return t
	}
}
