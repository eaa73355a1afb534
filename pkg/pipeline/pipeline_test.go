package pipeline

import (
	"testing"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/animate"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/words"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"plan", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*layout.Params)
		code   errors.Code
	}{
		{"defaults", func(*layout.Params) {}, ""},
		{"negative width", func(p *layout.Params) { p.Width = -1 }, errors.ErrCodeInvalidGeometry},
		{"margins swallow canvas", func(p *layout.Params) { p.Margins.Left = 990 }, errors.ErrCodeInvalidGeometry},
		{"font range inverted", func(p *layout.Params) { p.FontMin = 200 }, errors.ErrCodeInvalidConfig},
		{"negative gap", func(p *layout.Params) { p.MinGap = -1 }, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := layout.DefaultParams()
			tt.modify(&p)
			err := ValidateParams(p)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}

	if opts.TopN != words.DefaultTopN {
		t.Errorf("TopN = %d, want %d", opts.TopN, words.DefaultTopN)
	}
	if opts.Punctuation != words.DefaultPunctuation {
		t.Errorf("Punctuation = %q", opts.Punctuation)
	}
	if opts.Params != layout.DefaultParams() {
		t.Errorf("Params = %+v, want defaults", opts.Params)
	}
	if opts.Durations != animate.DefaultDurations() {
		t.Errorf("Durations = %+v, want defaults", opts.Durations)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.MaxTextBytes != errors.DefaultMaxTextBytes {
		t.Errorf("MaxTextBytes = %d", opts.MaxTextBytes)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{TopN: 3}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first call error: %v", err)
	}
	first := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if opts.TopN != first.TopN || opts.Params != first.Params {
		t.Error("ValidateAndSetDefaults should be idempotent")
	}
}

func TestOptionsValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative top n", Options{TopN: -1}, errors.ErrCodeInvalidConfig},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"negative duration", Options{Durations: animate.Durations{Exit: -1}}, errors.ErrCodeInvalidConfig},
		{"bad geometry", Options{Params: layout.Params{Width: 10, Margins: layout.Margins{Left: 20}}}, errors.ErrCodeInvalidGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestLayoutKeyOptsVaryWithOptions(t *testing.T) {
	a := Options{}
	a.SetDefaults()
	b := a
	b.TopN = 10

	if a.LayoutKeyOpts("h") == b.LayoutKeyOpts("h") {
		t.Error("TopN should change the layout key")
	}
	if a.LayoutKeyOpts("h1") == a.LayoutKeyOpts("h2") {
		t.Error("stop-word hash should change the layout key")
	}
	if a.ArtifactKeyOpts("svg") == a.ArtifactKeyOpts("json") {
		t.Error("format should change the artifact key")
	}
}
