// Package config loads the wordcloud configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/wordcloud/config.toml unless
// another path is given with --config. Every key is optional; a missing file
// at the default location yields [Default]. Command-line flags override the
// values loaded here.
//
// The spacing keys min_gap, width_factor, pad_factor and pad_extra, and the
// animation durations, treat 0 as absent and keep their defaults. None of
// them can be configured to exactly zero.
//
//	[canvas]
//	width = 1000
//	height = 420
//	margins = { top = 20, right = 20, bottom = 20, left = 20 }
//
//	[layout]
//	top_n = 5
//	font_min = 18
//	font_max = 110
//
//	[animation]
//	enter_ms = 800
//	exit_ms = 300
//
//	[text]
//	stopwords = "mongodb://localhost:27017"
//
//	[stopwords.mongo]
//	collection = "stopwords_en"
//
//	[cache]
//	backend = "redis"
//
//	[redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	rate_limit = 10
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/animate"
	"github.com/matzehuels/wordcloud/pkg/render/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/session"
	"github.com/matzehuels/wordcloud/pkg/stopwords"
	"github.com/matzehuels/wordcloud/pkg/words"
)

// =============================================================================
// Constants
// =============================================================================

const (
	appName  = "wordcloud"
	fileName = "config.toml"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Session stores.
const (
	SessionsMemory = "memory"
	SessionsRedis  = "redis"
)

// Server defaults.
const (
	DefaultAddr      = ":8080"
	DefaultRateLimit = 10.0
	DefaultBurst     = 20
)

// =============================================================================
// Config Sections
// =============================================================================

// Config is the whole configuration file.
type Config struct {
	Canvas    Canvas             `toml:"canvas"`
	Layout    Layout             `toml:"layout"`
	Animation Animation          `toml:"animation"`
	Text      Text               `toml:"text"`
	Stopwords Stopwords          `toml:"stopwords"`
	Cache     Cache              `toml:"cache"`
	Redis     cache.RedisOptions `toml:"redis"`
	Server    Server             `toml:"server"`
}

// Canvas is the [canvas] section.
type Canvas struct {
	Width   float64        `toml:"width"`
	Height  float64        `toml:"height"`
	Margins layout.Margins `toml:"margins"`
}

// Layout is the [layout] section. Zero spacing fields take the layout
// defaults.
type Layout struct {
	TopN        int     `toml:"top_n"`
	FontMin     float64 `toml:"font_min"`
	FontMax     float64 `toml:"font_max"`
	MinGap      float64 `toml:"min_gap"`
	WidthFactor float64 `toml:"width_factor"`
	PadFactor   float64 `toml:"pad_factor"`
	PadExtra    float64 `toml:"pad_extra"`
}

// Animation is the [animation] section. Durations are in milliseconds; 0
// selects the default duration.
type Animation struct {
	EnterMS  int `toml:"enter_ms"`
	UpdateMS int `toml:"update_ms"`
	ExitMS   int `toml:"exit_ms"`
}

// Text is the [text] section.
type Text struct {
	Punctuation string `toml:"punctuation"`
	Stopwords   string `toml:"stopwords"` // "builtin", a file path, an http(s) URL or a mongodb:// URI
}

// Stopwords is the [stopwords] section.
type Stopwords struct {
	Mongo stopwords.MongoOptions `toml:"mongo"`
}

// Cache is the [cache] section.
type Cache struct {
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir"`
	TTL     Duration `toml:"ttl"` // caps every entry's lifetime; 0 keeps the built-in TTLs
}

// Server is the [server] section.
type Server struct {
	Addr         string   `toml:"addr"`
	RateLimit    float64  `toml:"rate_limit"` // requests per second per client; 0 disables
	Burst        int      `toml:"burst"`
	MaxTextBytes int      `toml:"max_text_bytes"`
	SessionTTL   Duration `toml:"session_ttl"`
	Sessions     string   `toml:"sessions"`
}

// Duration is a time.Duration written as a Go duration string ("30m").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) { return []byte(time.Duration(d).String()), nil }

// =============================================================================
// Defaults
// =============================================================================

// Default returns the built-in configuration.
func Default() Config {
	p := layout.DefaultParams()
	d := animate.DefaultDurations()
	return Config{
		Canvas: Canvas{Width: p.Width, Height: p.Height, Margins: p.Margins},
		Layout: Layout{
			TopN:        words.DefaultTopN,
			FontMin:     p.FontMin,
			FontMax:     p.FontMax,
			MinGap:      p.MinGap,
			WidthFactor: p.WidthFactor,
			PadFactor:   p.PadFactor,
			PadExtra:    p.PadExtra,
		},
		Animation: Animation{
			EnterMS:  int(d.Enter / time.Millisecond),
			UpdateMS: int(d.Update / time.Millisecond),
			ExitMS:   int(d.Exit / time.Millisecond),
		},
		Text: Text{
			Punctuation: words.DefaultPunctuation,
			Stopwords:   stopwords.Builtin,
		},
		Stopwords: Stopwords{Mongo: stopwords.MongoOptions{
			Database:   stopwords.DefaultMongoDatabase,
			Collection: stopwords.DefaultMongoCollection,
		}},
		Cache: Cache{Backend: BackendFile},
		Redis: cache.RedisOptions{Addr: "localhost:6379"},
		Server: Server{
			Addr:         DefaultAddr,
			RateLimit:    DefaultRateLimit,
			Burst:        DefaultBurst,
			MaxTextBytes: errors.DefaultMaxTextBytes,
			SessionTTL:   Duration(session.DefaultTTL),
			Sessions:     SessionsMemory,
		},
	}
}

// =============================================================================
// Loading
// =============================================================================

// DefaultPath returns $XDG_CONFIG_HOME/wordcloud/config.toml, falling back
// to the platform config directory.
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, fileName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, fileName), nil
}

// Load reads the file at path on top of [Default] and validates the result.
// An empty path selects [DefaultPath], which may be absent; an explicit path
// must exist. Unknown keys are rejected so typos don't go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return cfg, nil
		}
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML data on top of [Default] and validates the result.
func Parse(data string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks value ranges. Layout parameters are checked the same way
// the pipeline checks request options.
func (c Config) Validate() error {
	if c.Layout.TopN < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.top_n must be at least 1 (got %d)", c.Layout.TopN)
	}
	if err := pipeline.ValidateParams(c.Params()); err != nil {
		return err
	}
	a := c.Animation
	if a.EnterMS < 0 || a.UpdateMS < 0 || a.ExitMS < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "animation durations cannot be negative")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be one of file, redis, none (got %q)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	switch c.Server.Sessions {
	case SessionsMemory, SessionsRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "server.sessions must be memory or redis (got %q)", c.Server.Sessions)
	}
	if c.Server.RateLimit < 0 || c.Server.Burst < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server rate limits cannot be negative")
	}
	if c.Server.RateLimit > 0 && c.Server.Burst == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.burst must be positive when rate_limit is set")
	}
	if c.Server.MaxTextBytes < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_text_bytes cannot be negative")
	}
	if c.Server.SessionTTL <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.session_ttl must be positive")
	}
	return nil
}

// =============================================================================
// Conversions
// =============================================================================

// Params returns the layout parameters.
func (c Config) Params() layout.Params {
	return layout.Params{
		Width:       c.Canvas.Width,
		Height:      c.Canvas.Height,
		Margins:     c.Canvas.Margins,
		FontMin:     c.Layout.FontMin,
		FontMax:     c.Layout.FontMax,
		MinGap:      c.Layout.MinGap,
		WidthFactor: c.Layout.WidthFactor,
		PadFactor:   c.Layout.PadFactor,
		PadExtra:    c.Layout.PadExtra,
	}
}

// Durations returns the animation durations.
func (c Config) Durations() animate.Durations {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return animate.Durations{
		Enter:  ms(c.Animation.EnterMS),
		Update: ms(c.Animation.UpdateMS),
		Exit:   ms(c.Animation.ExitMS),
	}
}

// Options returns pipeline options seeded from the file. Callers override
// individual fields from flags or request bodies.
func (c Config) Options() pipeline.Options {
	return pipeline.Options{
		TopN:         c.Layout.TopN,
		Punctuation:  c.Text.Punctuation,
		Params:       c.Params(),
		Durations:    c.Durations(),
		MaxTextBytes: c.Server.MaxTextBytes,
	}
}

// StopwordsSource resolves [Text.Stopwords] to a loader.
func (c Config) StopwordsSource() stopwords.Source {
	return stopwords.Open(c.Text.Stopwords, c.Stopwords.Mongo)
}
