package words

import (
	"strings"

	"github.com/matzehuels/wordcloud/pkg/stopwords"
)

// DefaultPunctuation is the set of characters removed before splitting.
// The apostrophe is not in the set, so contractions stay intact.
const DefaultPunctuation = ".,/#!$%^&*;:{}=_`~()"

// Tokenizer turns text into a filtered sequence of case-folded words.
// A Tokenizer is immutable after construction and safe for concurrent use.
type Tokenizer struct {
	strip map[rune]struct{}
	stop  stopwords.Set
}

// TokenizerOption configures a Tokenizer.
type TokenizerOption func(*Tokenizer)

// WithPunctuation replaces the strip set with the characters in chars.
func WithPunctuation(chars string) TokenizerOption {
	return func(t *Tokenizer) { t.strip = runeSet(chars) }
}

// NewTokenizer creates a tokenizer filtering the given stop words.
func NewTokenizer(stop stopwords.Set, opts ...TokenizerOption) *Tokenizer {
	t := &Tokenizer{strip: runeSet(DefaultPunctuation), stop: stop}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize folds case, removes punctuation, splits on whitespace runs and
// drops stop words. Every Unicode whitespace character separates tokens,
// including space, tab, newline and carriage return. Empty or degenerate
// input yields an empty slice.
func (t *Tokenizer) Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if _, ok := t.strip[r]; ok {
			return -1
		}
		return r
	}, stopwords.Fold(text))

	fields := strings.Fields(cleaned)
	out := fields[:0]
	for _, w := range fields {
		if t.stop.Contains(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Stopwords returns the table the tokenizer filters against.
func (t *Tokenizer) Stopwords() stopwords.Set { return t.stop }

func runeSet(chars string) map[rune]struct{} {
	m := make(map[rune]struct{}, len(chars))
	for _, r := range chars {
		m[r] = struct{}{}
	}
	return m
}
