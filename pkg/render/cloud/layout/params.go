package layout

// Static defaults for canvas geometry and layout tunables.
const (
	DefaultWidth       = 1000.0
	DefaultHeight      = 420.0
	DefaultMargin      = 20.0
	DefaultFontMin     = 18.0
	DefaultFontMax     = 110.0
	DefaultMinGap      = 18.0
	DefaultWidthFactor = 0.6
	DefaultPadFactor   = 0.55
	DefaultPadExtra    = 16.0
)

// Margins are the blank borders around the inner frame.
type Margins struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// Params holds canvas geometry and layout tunables.
type Params struct {
	Width   float64 `json:"width,omitempty"`  // canvas width including margins
	Height  float64 `json:"height,omitempty"` // canvas height including margins
	Margins Margins `json:"margins"`

	FontMin     float64 `json:"font_min,omitempty"`     // font size of the least frequent word
	FontMax     float64 `json:"font_max,omitempty"`     // font size of the most frequent word
	MinGap      float64 `json:"min_gap,omitempty"`      // minimum horizontal gap between neighbours
	WidthFactor float64 `json:"width_factor,omitempty"` // estimated glyph width as a fraction of font size
	PadFactor   float64 `json:"pad_factor,omitempty"`   // share of the widest word reserved at each edge
	PadExtra    float64 `json:"pad_extra,omitempty"`    // constant added to the edge padding
}

// DefaultParams returns the stock 1000x420 canvas with 20px margins.
func DefaultParams() Params {
	return Params{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Margins: Margins{
			Top: DefaultMargin, Right: DefaultMargin,
			Bottom: DefaultMargin, Left: DefaultMargin,
		},
		FontMin:     DefaultFontMin,
		FontMax:     DefaultFontMax,
		MinGap:      DefaultMinGap,
		WidthFactor: DefaultWidthFactor,
		PadFactor:   DefaultPadFactor,
		PadExtra:    DefaultPadExtra,
	}
}

// InnerWidth is the frame width available to words.
func (p Params) InnerWidth() float64 { return p.Width - p.Margins.Left - p.Margins.Right }

// InnerHeight is the frame height available to words.
func (p Params) InnerHeight() float64 { return p.Height - p.Margins.Top - p.Margins.Bottom }

// WithDefaults fills zero-valued fields from [DefaultParams]. Zero is never
// kept, so a MinGap or PadExtra of exactly 0 is not expressible.
func (p Params) WithDefaults() Params {
	d := DefaultParams()
	if p.Width == 0 {
		p.Width = d.Width
	}
	if p.Height == 0 {
		p.Height = d.Height
	}
	if p.Margins == (Margins{}) {
		p.Margins = d.Margins
	}
	if p.FontMin == 0 {
		p.FontMin = d.FontMin
	}
	if p.FontMax == 0 {
		p.FontMax = d.FontMax
	}
	if p.MinGap == 0 {
		p.MinGap = d.MinGap
	}
	if p.WidthFactor == 0 {
		p.WidthFactor = d.WidthFactor
	}
	if p.PadFactor == 0 {
		p.PadFactor = d.PadFactor
	}
	if p.PadExtra == 0 {
		p.PadExtra = d.PadExtra
	}
	return p
}
