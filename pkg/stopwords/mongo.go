package stopwords

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// Defaults for MongoDB-backed tables.
const (
	DefaultMongoDatabase   = "wordcloud"
	DefaultMongoCollection = "stopwords"
)

// MongoEntry is one document in a stop-word collection.
type MongoEntry struct {
	Word     string `bson:"word"`
	Language string `bson:"lang,omitempty"`
}

// MongoSource loads a table from a MongoDB collection of [MongoEntry]
// documents. When Language is set only matching documents are read.
// The table is maintained outside this program; it is only ever read.
type MongoSource struct {
	uri  string
	opts MongoOptions
}

// NewMongoSource creates a source for the given connection URI.
// Empty database and collection names fall back to the defaults.
func NewMongoSource(uri string, opts MongoOptions) *MongoSource {
	if opts.Database == "" {
		opts.Database = DefaultMongoDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultMongoCollection
	}
	return &MongoSource{uri: uri, opts: opts}
}

// Load connects, reads the collection and disconnects.
func (s *MongoSource) Load(ctx context.Context) (Set, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return Set{}, errors.Wrap(errors.ErrCodeStopwordsUnavailable, err, "connect to mongo")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	return loadCollection(ctx, client.Database(s.opts.Database).Collection(s.opts.Collection), s.opts.Language)
}

func loadCollection(ctx context.Context, coll *mongo.Collection, lang string) (Set, error) {
	filter := bson.M{}
	if lang != "" {
		filter["lang"] = lang
	}
	cur, err := coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 0, "word": 1, "lang": 1}))
	if err != nil {
		return Set{}, errors.Wrap(errors.ErrCodeStopwordsUnavailable, err, "query %s", coll.Name())
	}

	var entries []MongoEntry
	if err := cur.All(ctx, &entries); err != nil {
		return Set{}, errors.Wrap(errors.ErrCodeStopwordsUnavailable, err, "decode %s", coll.Name())
	}

	words := make([]string, len(entries))
	for i, e := range entries {
		words[i] = e.Word
	}
	return New(words...), nil
}
