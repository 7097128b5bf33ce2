package texmorph

import (
	"errors"
	"slices"
	"testing"
)

func TestSourceText(t *testing.T) {
	table := AlignmentTable{Transition, Anchor, Add, Remove, Replace}
	want := "TransitionTag.Transition, TransitionTag.Anchor, TransitionTag.Add, TransitionTag.Remove, TransitionTag.Replace"
	if got := table.SourceText(); got != want {
		t.Errorf("SourceText() = %q, want %q", got, want)
	}
	if got := AlignmentTable(nil).SourceText(); got != "" {
		t.Errorf("empty SourceText() = %q, want empty", got)
	}
}

func TestParseSourceText(t *testing.T) {
	tests := []struct {
		in   string
		want AlignmentTable
	}{
		{"TransitionTag.Anchor, TransitionTag.Remove", AlignmentTable{Anchor, Remove}},
		{"Anchor,Add,", AlignmentTable{Anchor, Add}},
		{"  transition ,\n TransitionTag.Replace ", AlignmentTable{Transition, Replace}},
		{"", nil},
	}
	for _, tt := range tests {
		got, err := ParseSourceText(tt.in)
		if err != nil {
			t.Errorf("ParseSourceText(%q): %v", tt.in, err)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("ParseSourceText(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseSourceTextErrors(t *testing.T) {
	if _, err := ParseSourceText("Anchor,,Add"); err == nil {
		t.Error("expected error for empty middle entry")
	}
	if _, err := ParseSourceText("TransitionTag.Swap"); !errors.Is(err, ErrUnknownTag) {
		t.Errorf("err = %v, want ErrUnknownTag", err)
	}
}

func TestSourceTextRoundTrip(t *testing.T) {
	table := AutoAlign(3, 5)
	table[1] = Anchor
	got, err := ParseSourceText(table.SourceText())
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, table) {
		t.Errorf("round trip = %v, want %v", got, table)
	}
}
