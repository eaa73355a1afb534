package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/matzehuels/wordcloud/pkg/render/cloud/animate"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/layout"
)

// DefaultFontFamily is the font used for every word.
const DefaultFontFamily = "sans-serif"

// SVGOption configures SVG output.
type SVGOption func(*svgConfig)

type svgConfig struct {
	fontFamily string
	fill       string
	background string
}

// WithFontFamily sets the font-family of the word group.
func WithFontFamily(f string) SVGOption { return func(c *svgConfig) { c.fontFamily = f } }

// WithFill sets the text color.
func WithFill(color string) SVGOption { return func(c *svgConfig) { c.fill = color } }

// WithBackground paints a full-canvas rectangle behind the words.
func WithBackground(color string) SVGOption {
	return func(c *svgConfig) { c.background = color }
}

func newSVGConfig(opts ...SVGOption) svgConfig {
	c := svgConfig{fontFamily: DefaultFontFamily}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

type element struct {
	word  string
	frame animate.Frame
	anim  *animate.Transition
}

// SVGSurface is an [animate.Surface] that accumulates words and their
// transitions and serializes them as one SVG document.
//
// SVGSurface is not safe for concurrent use.
type SVGSurface struct {
	params layout.Params
	cfg    svgConfig
	order  []string
	elems  map[string]*element
}

// NewSVGSurface creates an empty surface for the given canvas.
func NewSVGSurface(p layout.Params, opts ...SVGOption) *SVGSurface {
	return &SVGSurface{
		params: p.WithDefaults(),
		cfg:    newSVGConfig(opts...),
		elems:  make(map[string]*element),
	}
}

func (s *SVGSurface) element(word string) *element {
	e, ok := s.elems[word]
	if !ok {
		e = &element{word: word}
		s.elems[word] = e
		s.order = append(s.order, word)
	}
	return e
}

// Set places word at f and cancels any pending transition for it.
func (s *SVGSurface) Set(word string, f animate.Frame) {
	e := s.element(word)
	e.frame = f
	e.anim = nil
}

// Transition replaces any transition for t.Word. The element starts at
// t.From in the document.
func (s *SVGSurface) Transition(t animate.Transition) {
	e := s.element(t.Word)
	e.frame = t.From
	e.anim = &t
}

// Len returns the number of words on the surface.
func (s *SVGSurface) Len() int { return len(s.order) }

// Bytes serializes the surface.
func (s *SVGSurface) Bytes() []byte {
	p := s.params
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(p.Width), num(p.Height), num(p.Width), num(p.Height))

	if s.cfg.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", EscapeXML(s.cfg.background))
	}

	fmt.Fprintf(&buf, `  <g class="wordcloud-container" transform="translate(%s,%s)" font-family="%s" text-anchor="middle" dominant-baseline="central" style="user-select:none"`,
		num(p.Margins.Left), num(p.Margins.Top), EscapeXML(s.cfg.fontFamily))
	if s.cfg.fill != "" {
		fmt.Fprintf(&buf, ` fill="%s"`, EscapeXML(s.cfg.fill))
	}
	buf.WriteString(">\n")

	for _, w := range s.order {
		renderWord(&buf, s.elems[w])
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderWord(buf *bytes.Buffer, e *element) {
	f := e.frame
	fmt.Fprintf(buf, `    <text class="word" x="%s" y="%s" font-size="%s" opacity="%s">%s`,
		num(f.X), num(f.Y), num(f.FontSize), num(f.Opacity), EscapeXML(e.word))

	if t := e.anim; t != nil && !t.Static() {
		dur := durAttr(t.Duration)
		animateAttr(buf, "x", t.From.X, t.To.X, dur)
		animateAttr(buf, "y", t.From.Y, t.To.Y, dur)
		animateAttr(buf, "font-size", t.From.FontSize, t.To.FontSize, dur)
		animateAttr(buf, "opacity", t.From.Opacity, t.To.Opacity, dur)
		if t.Remove() {
			fmt.Fprintf(buf, `<set attributeName="visibility" to="hidden" begin="%s"/>`, dur)
		}
	}
	buf.WriteString("</text>\n")
}

func animateAttr(buf *bytes.Buffer, name string, from, to float64, dur string) {
	if from == to {
		return
	}
	fmt.Fprintf(buf, `<animate attributeName="%s" from="%s" to="%s" dur="%s" fill="freeze"/>`,
		name, num(from), num(to), dur)
}

func durAttr(d time.Duration) string {
	if d <= 0 {
		return "0ms"
	}
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// RenderSVG writes a static SVG of l with every word at rest.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	s := NewSVGSurface(l.Params, opts...)
	for _, e := range l.Entries {
		s.Set(e.Word, animate.Frame{X: e.X, Y: e.Y, FontSize: e.FontSize, Opacity: 1})
	}
	return s.Bytes()
}

// RenderAnimatedSVG applies plan to a fresh surface and serializes it.
func RenderAnimatedSVG(p layout.Params, plan animate.Plan, opts ...SVGOption) []byte {
	s := NewSVGSurface(p, opts...)
	animate.Apply(s, plan)
	return s.Bytes()
}

// EscapeXML escapes s for use in text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
