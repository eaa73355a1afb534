package cache

import (
	"fmt"
	"time"
)

// Keyer builds cache keys for each pipeline stage.
type Keyer interface {
	// LayoutKey addresses a computed layout for a text.
	LayoutKey(textHash string, opts LayoutKeyOpts) string
	// ArtifactKey addresses one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
	// StopwordsKey addresses a stop-word table loaded from a remote source.
	StopwordsKey(source string) string
}

// LayoutKeyOpts holds every input besides the text that changes a layout.
type LayoutKeyOpts struct {
	TopN        int
	Punctuation string
	Stopwords   string // hash of the stop-word table
	Width       float64
	Height      float64
	Margins     [4]float64
	FontMin     float64
	FontMax     float64
	MinGap      float64
	WidthFactor float64
	PadFactor   float64
	PadExtra    float64
}

// ArtifactKeyOpts holds every render input besides the layout.
type ArtifactKeyOpts struct {
	Format     string
	FontFamily string
	Fill       string
	Background string
	// Durations are enter, update and exit times. Only formats that embed
	// transition timing set them; zero otherwise.
	Durations [3]time.Duration
}

// DefaultKeyer hashes options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(textHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", textHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

func (DefaultKeyer) StopwordsKey(source string) string {
	return fmt.Sprintf("stopwords:%s", source)
}
