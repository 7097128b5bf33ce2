package texmorph

import (
	"fmt"
	"strings"
)

// sourceEnumName prefixes every tag in generated source text.
const sourceEnumName = "TransitionTag"

// SourceText renders the table as a literal list of enum values for pasting
// into animation scripts:
//
//	TransitionTag.Transition, TransitionTag.Anchor, TransitionTag.Add
func (t AlignmentTable) SourceText() string {
	var b strings.Builder
	for i, tag := range t {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(sourceEnumName)
		b.WriteByte('.')
		b.WriteString(tag.String())
	}
	return b.String()
}

// ParseSourceText reads text produced by SourceText. The enum prefix is
// optional, whitespace and a trailing comma are ignored, and an empty string
// is an empty table.
func ParseSourceText(s string) (AlignmentTable, error) {
	var out AlignmentTable
	parts := strings.Split(s, ",")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			if i == len(parts)-1 {
				continue
			}
			return nil, fmt.Errorf("parse source text: empty entry %d", i)
		}
		if name, ok := strings.CutPrefix(part, sourceEnumName+"."); ok {
			part = name
		}
		tag, err := ParseTag(part)
		if err != nil {
			return nil, fmt.Errorf("parse source text: entry %d: %w", i, err)
		}
		out = append(out, tag)
	}
	return out, nil
}
