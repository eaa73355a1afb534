package layout

import (
	"unicode/utf8"

	"github.com/matzehuels/wordcloud/pkg/words"
)

// Entry is a placed word. X and Y are the word's center in inner-frame
// coordinates; the word spans [X-HalfWidth, X+HalfWidth] horizontally.
type Entry struct {
	Word      string
	Count     int
	X, Y      float64
	FontSize  float64
	HalfWidth float64
}

// Left returns the estimated left edge.
func (e Entry) Left() float64 { return e.X - e.HalfWidth }

// Right returns the estimated right edge.
func (e Entry) Right() float64 { return e.X + e.HalfWidth }

// Layout is the result of a single layout pass. Entries keep rank order,
// which after the sweep is also left-to-right order.
type Layout struct {
	Params  Params
	Pad     float64 // edge padding derived from the widest word
	Entries []Entry
}

// Len returns the number of placed words.
func (l Layout) Len() int { return len(l.Entries) }

// Band returns the padded horizontal band [Pad, W-Pad].
func (l Layout) Band() (lo, hi float64) { return l.Pad, l.Params.InnerWidth() - l.Pad }

// CenterY is the shared vertical position of every word.
func (l Layout) CenterY() float64 { return l.Params.InnerHeight() / 2 }

// Lookup finds a placed word.
func (l Layout) Lookup(word string) (Entry, bool) {
	for _, e := range l.Entries {
		if e.Word == word {
			return e, true
		}
	}
	return Entry{}, false
}

// Compute lays out ranked words on a single row. Zero-valued params fall
// back to defaults. An empty ranked list yields an empty layout.
func Compute(ranked []words.Entry, p Params) Layout {
	p = p.WithDefaults()
	out := Layout{Params: p}
	n := len(ranked)
	if n == 0 {
		return out
	}

	scale := NewFontScale(ranked, p.FontMin, p.FontMax)

	sizes := make([]float64, n)
	halfWs := make([]float64, n)
	widest := 0.0
	for i, e := range ranked {
		sizes[i] = scale.Size(e.Count)
		w := EstimateWidth(e.Word, sizes[i], p.WidthFactor)
		halfWs[i] = w / 2
		widest = max(widest, w)
	}

	W := p.InnerWidth()
	pad := widest*p.PadFactor + p.PadExtra
	out.Pad = pad

	xs := baseline(n, pad, W-pad)
	sweep(xs, halfWs, p.MinGap)
	recenter(xs, (pad+(W-pad))/2)

	y := p.InnerHeight() / 2
	out.Entries = make([]Entry, n)
	for i, e := range ranked {
		out.Entries[i] = Entry{
			Word:      e.Word,
			Count:     e.Count,
			X:         xs[i],
			Y:         y,
			FontSize:  sizes[i],
			HalfWidth: halfWs[i],
		}
	}
	return out
}

// EstimateWidth approximates rendered text width from the rune count.
func EstimateWidth(word string, fontSize, factor float64) float64 {
	return fontSize * factor * float64(utf8.RuneCountInString(word))
}

// baseline spaces n positions evenly over [lo, hi] by rank index. A single
// position collapses onto lo.
func baseline(n int, lo, hi float64) []float64 {
	xs := make([]float64, n)
	span := float64(max(1, n-1))
	for i := range xs {
		xs[i] = lo + float64(i)/span*(hi-lo)
	}
	return xs
}

// sweep pushes words right until every neighbour pair is at least gap apart.
// Earlier words are never revisited.
func sweep(xs, halfWs []float64, gap float64) {
	for i := 1; i < len(xs); i++ {
		rightPrev := xs[i-1] + halfWs[i-1]
		if xs[i]-halfWs[i] < rightPrev+gap {
			xs[i] = rightPrev + gap + halfWs[i]
		}
	}
}

// recenter shifts all positions so the first/last midpoint lands on target.
func recenter(xs []float64, target float64) {
	if len(xs) == 0 {
		return
	}
	dx := target - (xs[0]+xs[len(xs)-1])/2
	for i := range xs {
		xs[i] += dx
	}
}
