package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phanxgames/texmorph"
)

// parseGroups splits an expression into group texts at whitespace.
func parseGroups(s string) []string {
	return strings.Fields(s)
}

func parseSide(s string) (texmorph.Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "before", "b":
		return texmorph.Before, nil
	case "after", "a":
		return texmorph.After, nil
	default:
		return 0, fmt.Errorf("unknown side %q (want before or after)", s)
	}
}

func parseIndex(name, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return v, nil
}

func slotRole(table texmorph.AlignmentTable, slot int) string {
	f := table.Facts(slot, texmorph.Before)
	switch {
	case f.IsAnchor:
		return "anchor"
	case f.IsStaying:
		return "persisting"
	case f.IsReplaced:
		return "replaced"
	case f.IsRemoved:
		return "leaving"
	case f.IsAdded:
		return "entering"
	default:
		return ""
	}
}

func groupCell(groups []string, idx int) string {
	if idx < 0 || idx >= len(groups) {
		return "-"
	}
	return fmt.Sprintf("%d %s", idx, groups[idx])
}

// renderSlots renders one row per slot of the document's table.
func renderSlots(doc texmorph.Document) string {
	rows := make([][]string, 0, len(doc.Tags))
	for idx := range doc.Tags.Indexes() {
		rows = append(rows, []string{
			strconv.Itoa(idx.Slot),
			doc.Tags[idx.Slot].String(),
			slotRole(doc.Tags, idx.Slot),
			groupCell(doc.BeforeGroups, idx.Before),
			groupCell(doc.AfterGroups, idx.After),
		})
	}
	return renderTable(
		[]column{numCol("Slot"), col("Tag"), col("Role"), col("Before"), col("After")},
		rows,
	)
}
