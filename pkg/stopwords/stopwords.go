// Package stopwords provides immutable stop-word tables.
//
// A stop word is a common word excluded from frequency analysis regardless of
// how often it occurs. Tables are data, not code: the default English table
// is embedded from default.txt, and alternate tables can be loaded from plain
// text files, TOML files, or a MongoDB collection (see [Source]).
//
// Every entry is case-folded when the table is built, so lookups against
// case-folded tokens are exact string matches. Apostrophes are significant:
// "isn't" is a different entry from "isnt".
//
//	set := stopwords.Default()
//	set.Contains("the")   // true
//	set.Contains("wolf")  // false
package stopwords

import (
	"bufio"
	_ "embed"
	"io"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed default.txt
var defaultTable string

// Set is an immutable set of case-folded stop words.
// The zero value is an empty set and is ready to use.
type Set struct {
	words map[string]struct{}
}

// New builds a Set from the given words. Words are case-folded and trimmed;
// blank entries are ignored and duplicates collapse.
func New(words ...string) Set {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = Fold(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		m[w] = struct{}{}
	}
	return Set{words: m}
}

// Default returns the embedded English stop-word table.
func Default() Set {
	s, _ := Parse(strings.NewReader(defaultTable))
	return s
}

// Parse reads a plain-text table: one or more whitespace-separated words per
// line, with lines starting with '#' treated as comments.
func Parse(r io.Reader) (Set, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.Fields(line)...)
	}
	if err := sc.Err(); err != nil {
		return Set{}, err
	}
	return New(words...), nil
}

// Contains reports whether word is in the set. The lookup is exact; callers
// are expected to pass case-folded tokens.
func (s Set) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Len returns the number of distinct entries.
func (s Set) Len() int { return len(s.words) }

// Words returns the entries in sorted order.
func (s Set) Words() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// Union returns a new Set holding the entries of s and other.
func (s Set) Union(other Set) Set {
	m := make(map[string]struct{}, len(s.words)+len(other.words))
	for w := range s.words {
		m[w] = struct{}{}
	}
	for w := range other.words {
		m[w] = struct{}{}
	}
	return Set{words: m}
}

// Fold returns the language-neutral lowercase form of s. Tokenizers and
// tables must agree on this function for lookups to match.
func Fold(s string) string {
	// A Caser is stateful and must not be shared across goroutines.
	return cases.Lower(language.Und).String(s)
}
