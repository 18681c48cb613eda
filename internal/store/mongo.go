package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pgherardini/ainewswire/internal/types"
)

// MongoMirror replicates article records into a MongoDB collection,
// keyed by URL. It is a config-gated convenience for sharing the record
// set across machines; the CSV file stays authoritative.
type MongoMirror struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewMongoMirror connects to MongoDB and verifies the connection.
func NewMongoMirror(uri, database, collection string, logger *slog.Logger) (*MongoMirror, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	return &MongoMirror{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.With("component", "mongo_mirror"),
	}, nil
}

// Upsert writes each record keyed by URL, replacing any previous copy.
func (m *MongoMirror) Upsert(ctx context.Context, records []types.Record) error {
	opts := options.Replace().SetUpsert(true)
	for _, r := range records {
		doc := bson.M{
			"url":               r.URL,
			"article_file_path": r.ArticleFilePath,
			"title":             r.Title,
			"source":            r.Source,
			"publish_date":      r.PublishDate,
			"has_text":          r.HasText,
		}
		if _, err := m.collection.ReplaceOne(ctx, bson.M{"url": r.URL}, doc, opts); err != nil {
			return &types.StorageError{Backend: "mongodb", Err: err}
		}
	}

	m.logger.Debug("records mirrored", "count", len(records))
	return nil
}

// Close disconnects from MongoDB.
func (m *MongoMirror) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
