package tui

import (
	"strings"
	"testing"
)

func TestBuildChipsStyles(t *testing.T) {
	chips := buildChips([]string{"Dm7", "G7", "Cmaj7"}, []chipState{chipCorrect, chipActive})
	if len(chips) != 5 {
		t.Fatalf("expected 3 chips and 2 spaces, got %d", len(chips))
	}
	if chips[0].s != correctStyle.Render("Dm7") {
		t.Fatalf("expected correct style for first chord")
	}
	if chips[2].s != activeStyle.Render("G7") {
		t.Fatalf("expected active style for second chord")
	}
	if chips[4].s != pendingStyle.Render("Cmaj7") {
		t.Fatalf("missing states should render pending")
	}
	if !chips[1].isSpace || chips[4].width != 5 {
		t.Fatalf("unexpected chip metadata: %+v", chips)
	}
}

func TestWrapChipsBreaksAtSpaces(t *testing.T) {
	chips := buildChips([]string{"Em7", "A7", "Dm7", "G7", "Cmaj7"}, nil)
	out := wrapChips(chips, 10)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
	plain := []string{"Em7 A7", "Dm7 G7", "Cmaj7"}
	for i, want := range plain {
		if !strings.Contains(lines[i], strings.Split(want, " ")[0]) {
			t.Fatalf("line %d %q should start with %q", i, lines[i], want)
		}
		if strings.HasPrefix(lines[i], " ") {
			t.Fatalf("line %d starts with a space: %q", i, lines[i])
		}
	}
}

func TestWrapChipsLongChip(t *testing.T) {
	chips := buildChips([]string{"[D F# A C E]", "G7"}, nil)
	out := wrapChips(chips, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected overlong chip on its own line, got %q", out)
	}
}

func TestWrapChipsNoWidth(t *testing.T) {
	chips := buildChips([]string{"Dm7", "G7"}, nil)
	if got := wrapChips(chips, 0); got != renderChips(chips) {
		t.Fatalf("zero width should not wrap")
	}
}
