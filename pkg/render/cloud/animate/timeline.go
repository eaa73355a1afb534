package animate

import (
	"slices"
	"time"
)

// Sprite is one visible word sampled from a [Timeline].
type Sprite struct {
	Word  string
	Frame Frame
}

type track struct {
	word   string
	from   Frame
	to     Frame
	dur    time.Duration
	remove bool
}

func (tr *track) at(elapsed time.Duration, ease Ease) Frame {
	t := Transition{From: tr.from, To: tr.to, Duration: tr.dur}
	return t.At(elapsed, ease)
}

// Timeline is an in-memory [Surface] that can be sampled at any point after
// the last [Timeline.Apply]. All transitions of a plan start together at
// time zero of the current epoch.
//
// Timeline is not safe for concurrent use.
type Timeline struct {
	ease   Ease
	order  []string
	tracks map[string]*track
}

// NewTimeline creates an empty timeline. A nil ease selects [CubicInOut].
func NewTimeline(ease Ease) *Timeline {
	if ease == nil {
		ease = CubicInOut
	}
	return &Timeline{ease: ease, tracks: make(map[string]*track)}
}

// Set places word at f with no transition.
func (tl *Timeline) Set(word string, f Frame) {
	tr, ok := tl.tracks[word]
	if !ok {
		tr = &track{word: word}
		tl.tracks[word] = tr
		tl.order = append(tl.order, word)
	}
	*tr = track{word: word, from: f, to: f}
}

// Transition schedules t, replacing any transition in flight for t.Word.
func (tl *Timeline) Transition(t Transition) {
	tr, ok := tl.tracks[t.Word]
	if !ok {
		tr = &track{word: t.Word}
		tl.tracks[t.Word] = tr
		tl.order = append(tl.order, t.Word)
	}
	*tr = track{word: t.Word, from: t.From, to: t.To, dur: t.Duration, remove: t.Remove()}
}

// Apply starts a new epoch: words whose exit has finished are dropped,
// every other word settles on its current target, and the plan's
// transitions are scheduled from time zero.
func (tl *Timeline) Apply(p Plan) {
	tl.settle()
	Apply(tl, p)
}

// settle collapses every track onto its end frame.
func (tl *Timeline) settle() {
	tl.order = slices.DeleteFunc(tl.order, func(w string) bool {
		tr := tl.tracks[w]
		if tr.remove {
			delete(tl.tracks, w)
			return true
		}
		tr.from, tr.dur = tr.to, 0
		return false
	})
}

// Sample returns the visible words at elapsed time since the last Apply,
// ordered by X.
func (tl *Timeline) Sample(elapsed time.Duration) []Sprite {
	out := make([]Sprite, 0, len(tl.order))
	for _, w := range tl.order {
		tr := tl.tracks[w]
		if tr.remove && elapsed >= tr.dur {
			continue
		}
		out = append(out, Sprite{Word: w, Frame: tr.at(elapsed, tl.ease)})
	}
	slices.SortStableFunc(out, func(a, b Sprite) int {
		switch {
		case a.Frame.X < b.Frame.X:
			return -1
		case a.Frame.X > b.Frame.X:
			return 1
		}
		return 0
	})
	return out
}

// Duration returns the time until every scheduled transition has finished.
func (tl *Timeline) Duration() time.Duration {
	var d time.Duration
	for _, tr := range tl.tracks {
		d = max(d, tr.dur)
	}
	return d
}

// Done reports whether every transition has finished at elapsed.
func (tl *Timeline) Done(elapsed time.Duration) bool { return elapsed >= tl.Duration() }

// Len returns the number of words on the timeline, including exiting ones.
func (tl *Timeline) Len() int { return len(tl.order) }
