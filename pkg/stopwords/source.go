package stopwords

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Source loads a stop-word table from external data.
type Source interface {
	Load(ctx context.Context) (Set, error)
}

// Builtin is the name that selects the embedded table.
const Builtin = "builtin"

// BuiltinSource serves the embedded default table.
type BuiltinSource struct{}

// Load returns [Default].
func (BuiltinSource) Load(context.Context) (Set, error) { return Default(), nil }

// FileSource reads a table from disk. Files ending in .toml are parsed as
//
//	words = ["the", "and", "a"]
//
// and every other file as plain text (see [Parse]).
type FileSource struct {
	Path string
}

// tomlTable is the on-disk TOML layout for a stop-word table.
type tomlTable struct {
	Language string   `toml:"language"`
	Words    []string `toml:"words"`
}

// Load reads and parses the file.
func (s FileSource) Load(ctx context.Context) (Set, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Set{}, errors.Wrap(errors.ErrCodeStopwordsUnavailable, err, "read %s", s.Path)
	}
	if strings.EqualFold(filepath.Ext(s.Path), ".toml") {
		var t tomlTable
		if err := toml.Unmarshal(data, &t); err != nil {
			return Set{}, errors.Wrap(errors.ErrCodeStopwordsUnavailable, err, "parse %s", s.Path)
		}
		return New(t.Words...), nil
	}
	set, err := Parse(strings.NewReader(string(data)))
	if err != nil {
		return Set{}, errors.Wrap(errors.ErrCodeStopwordsUnavailable, err, "parse %s", s.Path)
	}
	return set, nil
}

// MongoOptions selects the collection backing a [MongoSource].
type MongoOptions struct {
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
	Language   string `toml:"language"`
}

// Open resolves a source spec: "" or "builtin" selects the embedded table,
// a mongodb:// or mongodb+srv:// URI selects a [MongoSource], an http:// or
// https:// URL selects an [HTTPSource], anything else is treated as a file path.
func Open(spec string, mongo MongoOptions) Source {
	switch {
	case spec == "" || spec == Builtin:
		return BuiltinSource{}
	case strings.HasPrefix(spec, "mongodb://"), strings.HasPrefix(spec, "mongodb+srv://"):
		return NewMongoSource(spec, mongo)
	case strings.HasPrefix(spec, "http://"), strings.HasPrefix(spec, "https://"):
		return HTTPSource{URL: spec}
	default:
		return FileSource{Path: spec}
	}
}

// Describe returns a short human-readable label for a source.
func Describe(src Source) string {
	switch s := src.(type) {
	case BuiltinSource:
		return Builtin
	case FileSource:
		return s.Path
	case HTTPSource:
		return stripUserinfo(s.URL)
	case *MongoSource:
		return fmt.Sprintf("mongo:%s.%s", s.opts.Database, s.opts.Collection)
	default:
		return fmt.Sprintf("%T", src)
	}
}

// Identity returns a cache identity for a source. Two sources share an
// identity only if they load the same table: the server, database,
// collection and language of a Mongo source are all included. Credentials
// never appear in the result.
func Identity(src Source) string {
	switch s := src.(type) {
	case *MongoSource:
		return fmt.Sprintf("mongo:%s|%s.%s|%s", stripUserinfo(s.uri), s.opts.Database, s.opts.Collection, s.opts.Language)
	case HTTPSource:
		return "http:" + stripUserinfo(s.URL)
	case *HTTPSource:
		return "http:" + stripUserinfo(s.URL)
	default:
		return Describe(src)
	}
}

// stripUserinfo drops the user:password@ part of a URI's authority.
func stripUserinfo(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return uri
	}
	end := strings.IndexAny(rest, "/?#")
	if end < 0 {
		end = len(rest)
	}
	if at := strings.LastIndex(rest[:end], "@"); at >= 0 {
		rest = rest[at+1:]
	}
	return scheme + "://" + rest
}
