package cloud

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/animate"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/layout"
)

// FormatVersion is the current layout format version.
const FormatVersion = 1

// =============================================================================
// Layout - Word Cloud Serialization Format
// =============================================================================

// Layout is the wire form of a computed word cloud.
type Layout struct {
	Version int `json:"version" bson:"version"`

	// Canvas geometry
	Width   float64 `json:"width" bson:"width"`
	Height  float64 `json:"height" bson:"height"`
	Margins Margins `json:"margins" bson:"margins"`

	// Scale and spacing used to produce the words
	FontMin     float64 `json:"font_min" bson:"font_min"`
	FontMax     float64 `json:"font_max" bson:"font_max"`
	MinGap      float64 `json:"min_gap" bson:"min_gap"`
	WidthFactor float64 `json:"width_factor" bson:"width_factor"`
	PadFactor   float64 `json:"pad_factor" bson:"pad_factor"`
	PadExtra    float64 `json:"pad_extra" bson:"pad_extra"`
	Pad         float64 `json:"pad" bson:"pad"`

	Words []Word `json:"words" bson:"words"`

	// Analysis summary (optional)
	Tokens   int `json:"tokens,omitempty" bson:"tokens,omitempty"`
	Distinct int `json:"distinct,omitempty" bson:"distinct,omitempty"`
}

// Margins mirrors [layout.Margins].
type Margins struct {
	Top    float64 `json:"top" bson:"top"`
	Right  float64 `json:"right" bson:"right"`
	Bottom float64 `json:"bottom" bson:"bottom"`
	Left   float64 `json:"left" bson:"left"`
}

// Word is one placed word.
type Word struct {
	Word      string  `json:"word" bson:"word"`
	Count     int     `json:"count" bson:"count"`
	X         float64 `json:"x" bson:"x"`
	Y         float64 `json:"y" bson:"y"`
	FontSize  float64 `json:"font_size" bson:"font_size"`
	HalfWidth float64 `json:"half_width" bson:"half_width"`
}

// Export converts a computed layout to its wire form.
func Export(l layout.Layout) Layout {
	p := l.Params
	out := Layout{
		Version: FormatVersion,
		Width:   p.Width,
		Height:  p.Height,
		Margins: Margins{
			Top:    p.Margins.Top,
			Right:  p.Margins.Right,
			Bottom: p.Margins.Bottom,
			Left:   p.Margins.Left,
		},
		FontMin:     p.FontMin,
		FontMax:     p.FontMax,
		MinGap:      p.MinGap,
		WidthFactor: p.WidthFactor,
		PadFactor:   p.PadFactor,
		PadExtra:    p.PadExtra,
		Pad:         l.Pad,
		Words:       make([]Word, len(l.Entries)),
	}
	for i, e := range l.Entries {
		out.Words[i] = Word{
			Word:      e.Word,
			Count:     e.Count,
			X:         e.X,
			Y:         e.Y,
			FontSize:  e.FontSize,
			HalfWidth: e.HalfWidth,
		}
	}
	return out
}

// Params returns the layout parameters recorded in l.
func (l Layout) Params() layout.Params {
	return layout.Params{
		Width:  l.Width,
		Height: l.Height,
		Margins: layout.Margins{
			Top:    l.Margins.Top,
			Right:  l.Margins.Right,
			Bottom: l.Margins.Bottom,
			Left:   l.Margins.Left,
		},
		FontMin:     l.FontMin,
		FontMax:     l.FontMax,
		MinGap:      l.MinGap,
		WidthFactor: l.WidthFactor,
		PadFactor:   l.PadFactor,
		PadExtra:    l.PadExtra,
	}
}

// Parse converts the wire form back to a computed layout.
func (l Layout) Parse() layout.Layout {
	out := layout.Layout{
		Params:  l.Params(),
		Pad:     l.Pad,
		Entries: make([]layout.Entry, len(l.Words)),
	}
	for i, w := range l.Words {
		out.Entries[i] = layout.Entry{
			Word:      w.Word,
			Count:     w.Count,
			X:         w.X,
			Y:         w.Y,
			FontSize:  w.FontSize,
			HalfWidth: w.HalfWidth,
		}
	}
	return out
}

// State returns the rendered state described by l.
func (l Layout) State() animate.State { return animate.NewState(l.Parse()) }

// Validate checks geometry, word uniqueness and that every number is finite.
func (l Layout) Validate() error {
	if l.Version > FormatVersion {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported layout version %d", l.Version)
	}
	if err := errors.ValidateGeometry(l.Width, l.Height, l.Margins.Top, l.Margins.Right, l.Margins.Bottom, l.Margins.Left); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(l.Words))
	for i, w := range l.Words {
		if w.Word == "" {
			return errors.New(errors.ErrCodeInvalidFormat, "word %d is empty", i)
		}
		if _, dup := seen[w.Word]; dup {
			return errors.New(errors.ErrCodeInvalidFormat, "duplicate word %q", w.Word)
		}
		seen[w.Word] = struct{}{}
		for _, v := range []float64{w.X, w.Y, w.FontSize, w.HalfWidth} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.New(errors.ErrCodeInvalidFormat, "word %q has a non-finite value", w.Word)
			}
		}
	}
	return nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	if l.Words == nil {
		l.Words = []Word{}
	}
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes and validates JSON bytes. A missing version
// is read as [FormatVersion].
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if l.Version == 0 {
		l.Version = FormatVersion
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
