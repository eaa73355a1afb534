package words

// Entry is a distinct word and the number of times it occurred.
type Entry struct {
	Word  string `json:"word" bson:"word"`
	Count int    `json:"count" bson:"count"`
}

// Table maps words to counts and remembers first-seen order.
// The zero value is an empty table.
type Table struct {
	order  []string
	counts map[string]int
}

// Count builds a Table from a token sequence in a single pass.
func Count(tokens []string) Table {
	t := Table{counts: make(map[string]int, len(tokens))}
	for _, w := range tokens {
		if _, seen := t.counts[w]; !seen {
			t.order = append(t.order, w)
		}
		t.counts[w]++
	}
	return t
}

// Len returns the number of distinct words.
func (t Table) Len() int { return len(t.order) }

// Get returns the count for word, or zero when absent.
func (t Table) Get(word string) int { return t.counts[word] }

// Total returns the number of tokens counted.
func (t Table) Total() int {
	n := 0
	for _, c := range t.counts {
		n += c
	}
	return n
}

// Entries returns every (word, count) pair in first-seen order.
func (t Table) Entries() []Entry {
	out := make([]Entry, len(t.order))
	for i, w := range t.order {
		out[i] = Entry{Word: w, Count: t.counts[w]}
	}
	return out
}
