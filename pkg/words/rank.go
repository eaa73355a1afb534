package words

import (
	"cmp"
	"slices"
)

// DefaultTopN is the number of words kept for layout.
const DefaultTopN = 5

// Rank returns the n most frequent entries, descending by count. The sort is
// stable over first-seen order, so equal counts keep their textual order.
// A table with fewer than n entries is returned whole; n <= 0 yields nothing.
func Rank(t Table, n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}
	entries := t.Entries()
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Analysis is the full text reduction result.
type Analysis struct {
	Tokens   int     // tokens surviving stop-word removal
	Distinct int     // distinct words among them
	Ranked   []Entry // top-N list, rank order
}

// Analyze runs Tokenize, Count and Rank.
func Analyze(tok *Tokenizer, text string, n int) Analysis {
	table := Count(tok.Tokenize(text))
	return Analysis{
		Tokens:   table.Total(),
		Distinct: table.Len(),
		Ranked:   Rank(table, n),
	}
}
