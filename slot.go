package texmorph

// Side selects the before or after expression of a transition.
type Side uint8

const (
	Before Side = iota // the expression being morphed away from
	After              // the expression being morphed into
)

// String returns "before" or "after".
func (s Side) String() string {
	if s == Before {
		return "before"
	}
	return "after"
}

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == Before {
		return After
	}
	return Before
}

// SlotFacts are the facts about one slot from one side's point of view.
type SlotFacts struct {
	IsAnchor   bool // the slot pins the global offset
	IsRemoved  bool // this side has a group the other side lacks
	IsAdded    bool // the other side has a group this side lacks
	IsReplaced bool // both sides have unrelated groups
	IsStaying  bool // genuine one-to-one correspondence
}

// Classify derives the facts of a slot whose tag is tag on this side and
// paired on the other side.
func Classify(tag, paired TransitionTag) SlotFacts {
	return SlotFacts{
		IsAnchor:   tag == Anchor,
		IsRemoved:  tag == Remove,
		IsAdded:    tag == Add,
		IsReplaced: tag == Replace,
		IsStaying:  tag.staying() && paired.staying(),
	}
}
