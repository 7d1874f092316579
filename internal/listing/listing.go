// Package listing holds the source code shown next to a replay. Lines carry
// tags ("//@compare") so traced algorithms can refer to them by meaning;
// tags are stripped from the displayed text.
package listing

import (
	"sort"
	"strings"
)

type Listing struct {
	Algorithm string
	Lines     []string
	tags      map[string][]int
}

var registry = map[string]*Listing{}

func register(name, src string) {
	registry[name] = parse(name, src)
}

func parse(name, src string) *Listing {
	l := &Listing{Algorithm: name, tags: make(map[string][]int)}
	src = strings.Trim(src, "\n")
	for i, raw := range strings.Split(src, "\n") {
		text := raw
		if at := strings.Index(raw, "//@"); at >= 0 {
			for _, tag := range strings.Fields(strings.ReplaceAll(raw[at:], "//@", " ")) {
				l.tags[tag] = append(l.tags[tag], i+1)
			}
			text = strings.TrimRight(raw[:at], " \t")
		}
		l.Lines = append(l.Lines, text)
	}
	return l
}

// For returns the listing registered for an algorithm.
func For(name string) (*Listing, bool) {
	l, ok := registry[name]
	return l, ok
}

// Names returns every algorithm with a listing, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Tag resolves tags to 1-based line numbers in listing order.
func (l *Listing) Tag(tags ...string) []int {
	if l == nil {
		return nil
	}
	var out []int
	for _, t := range tags {
		out = append(out, l.tags[t]...)
	}
	sort.Ints(out)
	return out
}

// HasTag reports whether t is defined.
func (l *Listing) HasTag(t string) bool {
	_, ok := l.tags[t]
	return ok
}

// Line returns the text of 1-based line n.
func (l *Listing) Line(n int) string {
	if n < 1 || n > len(l.Lines) {
		return ""
	}
	return l.Lines[n-1]
}
