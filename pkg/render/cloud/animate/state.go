package animate

import "github.com/matzehuels/wordcloud/pkg/render/cloud/layout"

// State is the rendered-state cell: the words currently on screen, keyed by
// text, in the order they were laid out. The zero value is empty.
//
// A State is immutable once built; [Diff] returns a fresh one.
type State struct {
	entries []layout.Entry
	index   map[string]int
}

// NewState captures the entries of a layout.
func NewState(l layout.Layout) State {
	return StateOf(l.Entries)
}

// StateOf builds a state from placed entries. Later duplicates of a word are
// ignored.
func StateOf(entries []layout.Entry) State {
	s := State{
		entries: make([]layout.Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if _, dup := s.index[e.Word]; dup {
			continue
		}
		s.index[e.Word] = len(s.entries)
		s.entries = append(s.entries, e)
	}
	return s
}

// Len returns the number of rendered words.
func (s State) Len() int { return len(s.entries) }

// Entries returns a copy of the rendered entries.
func (s State) Entries() []layout.Entry {
	out := make([]layout.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Lookup returns the rendered entry for word.
func (s State) Lookup(word string) (layout.Entry, bool) {
	i, ok := s.index[word]
	if !ok {
		return layout.Entry{}, false
	}
	return s.entries[i], true
}

// Has reports whether word is rendered.
func (s State) Has(word string) bool {
	_, ok := s.index[word]
	return ok
}

// frameOf is the resting frame of a rendered entry.
func frameOf(e layout.Entry) Frame {
	return Frame{X: e.X, Y: e.Y, FontSize: e.FontSize, Opacity: 1}
}
