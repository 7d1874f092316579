package listing

import (
	"strings"
	"testing"
)

func TestParseStripsTags(t *testing.T) {
	l := parse("x", "\na := 1 //@setup\nb := 2\nreturn //@result //@setup\n")
	if len(l.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(l.Lines))
	}
	if l.Line(1) != "a := 1" {
		t.Errorf("tag not stripped: %q", l.Line(1))
	}
	got := l.Tag("setup")
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("setup lines = %v", got)
	}
	if l.Line(0) != "" || l.Line(4) != "" {
		t.Error("out of range line should be empty")
	}
}

func TestEveryAlgorithmHasListing(t *testing.T) {
	names := []string{"quick", "merge", "heap", "bubble", "insertion", "jobs", "knapsack", "activities", "coloring", "kadane"}
	for _, n := range names {
		l, ok := For(n)
		if !ok {
			t.Errorf("%s: no listing", n)
			continue
		}
		for _, line := range l.Lines {
			if strings.Contains(line, "//@") {
				t.Errorf("%s: tag left in %q", n, line)
			}
		}
	}
	if len(Names()) != len(names) {
		t.Errorf("names = %v", Names())
	}
}

func TestNilListing(t *testing.T) {
	var l *Listing
	if l.Tag("compare") != nil {
		t.Error("nil listing should resolve no lines")
	}
}
