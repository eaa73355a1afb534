package layout

import "github.com/matzehuels/wordcloud/pkg/words"

// FontScale maps word counts linearly onto a font-size range.
type FontScale struct {
	MinCount, MaxCount int
	MinSize, MaxSize   float64
}

// NewFontScale derives the count domain from entries.
func NewFontScale(entries []words.Entry, minSize, maxSize float64) FontScale {
	s := FontScale{MinSize: minSize, MaxSize: maxSize}
	for i, e := range entries {
		if i == 0 || e.Count < s.MinCount {
			s.MinCount = e.Count
		}
		if i == 0 || e.Count > s.MaxCount {
			s.MaxCount = e.Count
		}
	}
	return s
}

// Degenerate reports whether every count in the domain is equal.
func (s FontScale) Degenerate() bool { return s.MinCount == s.MaxCount }

// Size returns the font size for count. A degenerate domain yields MaxSize
// for every count.
func (s FontScale) Size(count int) float64 {
	if s.Degenerate() {
		return s.MaxSize
	}
	t := float64(count-s.MinCount) / float64(s.MaxCount-s.MinCount)
	return s.MinSize + t*(s.MaxSize-s.MinSize)
}
