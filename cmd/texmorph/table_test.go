package main

import (
	"strings"
	"testing"
)

func TestRenderTableEmpty(t *testing.T) {
	if got := renderTable(nil, [][]string{{"x"}}); got != "" {
		t.Errorf("renderTable without columns = %q, want empty", got)
	}
}

func TestRenderTableShapesRows(t *testing.T) {
	out := renderTable(
		[]column{col("Name"), numCol("Slots")},
		[][]string{{"swap", "7"}, {"short"}, {"long", "3", "extra"}},
	)
	requireContains(t, out, "╭")
	requireContains(t, out, "│ swap  │     7 │")
	requireContains(t, out, "│ short │       │")
	if strings.Contains(out, "extra") {
		t.Errorf("extra cell rendered:\n%s", out)
	}
}
