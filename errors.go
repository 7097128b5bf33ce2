package texmorph

import "errors"

// Alignment and playback errors. All of them are precondition violations:
// callers fix the input and try again, nothing is retried internally.
var (
	// ErrMultipleAnchors is returned when a table carries more than one Anchor.
	ErrMultipleAnchors = errors.New("texmorph: alignment table has more than one anchor")

	// ErrGroupCountMismatch is returned when the group slices do not match the
	// counts implied by the table. Call AdjustLength first.
	ErrGroupCountMismatch = errors.New("texmorph: group count does not match alignment table")

	// ErrSlotIndexOutOfRange is returned when an edit or index override refers
	// to a slot or group that does not exist.
	ErrSlotIndexOutOfRange = errors.New("texmorph: slot index out of range")

	// ErrInvalidSplit is returned when a group boundary cannot be inserted.
	ErrInvalidSplit = errors.New("texmorph: invalid group split")

	// ErrUnknownTag is returned when parsing an unrecognised tag name.
	ErrUnknownTag = errors.New("texmorph: unknown transition tag")

	// ErrInvalidTime is returned by Morph.Apply for a NaN time.
	ErrInvalidTime = errors.New("texmorph: invalid morph time")

	// ErrDisposed is returned by Node operations on a disposed node.
	ErrDisposed = errors.New("texmorph: node is disposed")
)
