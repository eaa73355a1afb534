package stopwords

import (
	"context"
	"net/http"
	"path"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/httputil"
	"github.com/matzehuels/wordcloud/pkg/retry"
)

// HTTPSource downloads a table from an http(s) URL. URLs whose path ends
// in .toml are parsed like a TOML [FileSource]; anything else as plain text.
// Transient failures are retried with backoff.
type HTTPSource struct {
	URL    string
	Client *http.Client // nil uses a shared client
}

// Load fetches and parses the table.
func (s HTTPSource) Load(ctx context.Context) (Set, error) {
	var data []byte
	err := retry.Network.Do(ctx, func() error {
		var err error
		data, err = httputil.Fetch(ctx, s.Client, s.URL, httputil.DefaultMaxBytes)
		return err
	})
	if err != nil {
		return Set{}, errors.Wrap(errors.ErrCodeStopwordsUnavailable, err, "fetch %s", Describe(s))
	}

	if strings.EqualFold(path.Ext(strings.SplitN(s.URL, "?", 2)[0]), ".toml") {
		var t tomlTable
		if err := toml.Unmarshal(data, &t); err != nil {
			return Set{}, errors.Wrap(errors.ErrCodeStopwordsUnavailable, err, "parse %s", s.URL)
		}
		return New(t.Words...), nil
	}
	set, err := Parse(strings.NewReader(string(data)))
	if err != nil {
		return Set{}, errors.Wrap(errors.ErrCodeStopwordsUnavailable, err, "parse %s", s.URL)
	}
	return set, nil
}

// IsRemote reports whether src reads over the network. Remote tables are
// worth caching between runs.
func IsRemote(src Source) bool {
	switch src.(type) {
	case *MongoSource, HTTPSource, *HTTPSource:
		return true
	default:
		return false
	}
}
