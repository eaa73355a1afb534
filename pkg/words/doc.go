// Package words reduces free-form text to a ranked list of prominent words.
//
// The reduction runs in three pure stages:
//
//  1. [Tokenizer.Tokenize]: case folding, punctuation stripping, whitespace
//     splitting and stop-word removal.
//  2. [Count]: a single pass building a [Table] of word counts.
//  3. [Rank]: a stable descending sort by count, truncated to the top N.
//
// Ties in stage 3 keep first-seen order: the word that appeared earlier in
// the text ranks first. This makes the output reproducible for every input.
//
//	tok := words.NewTokenizer(stopwords.Default())
//	ranked := words.Rank(words.Count(tok.Tokenize(text)), words.DefaultTopN)
package words
