// Package mongo implements docstore.Driver on MongoDB.
//
// All documents share one collection. Each record keeps its hierarchical path as _id,
// its parent collection path and collection id for listing, and the user fields under "data".
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medstory-be/pkg/docstore"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const collectionName = "documents"

type Config struct {
	URI      string
	Database string
	Username string
	Password string
	Timeout  time.Duration
}

type record struct {
	Path       string                 `bson:"_id"`
	Collection string                 `bson:"collection"`
	Group      string                 `bson:"group"`
	Data       map[string]interface{} `bson:"data"`
}

type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	clientOpts := options.Client().ApplyURI(cfg.URI)
	if cfg.Username != "" && cfg.Password != "" {
		clientOpts = clientOpts.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}
	clientOpts = clientOpts.
		SetSocketTimeout(timeout).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		SetMinPoolSize(1).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(collectionName)
	_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "collection", Value: 1}, {Key: "data.fullDate", Value: -1}}},
		{Keys: bson.D{{Key: "group", Value: 1}, {Key: "data.uid", Value: 1}, {Key: "data.fullDate", Value: -1}}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create mongodb indexes: %w", err)
	}

	return &Store{client: client, coll: coll}, nil
}

func (s *Store) Name() string {
	return "mongo"
}

func (s *Store) Set(ctx context.Context, path string, data map[string]interface{}) error {
	if !docstore.ValidDocumentPath(path) {
		return fmt.Errorf("invalid document path %q", path)
	}
	parent := docstore.Parent(path)
	rec := record{
		Path:       path,
		Collection: parent,
		Group:      docstore.CollectionID(parent),
		Data:       data,
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": path}, rec, options.Replace().SetUpsert(true))
	return err
}

func (s *Store) Get(ctx context.Context, path string) (map[string]interface{}, error) {
	var rec record
	err := s.coll.FindOne(ctx, bson.M{"_id": path}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec.Data, nil
}

func (s *Store) List(ctx context.Context, q docstore.Query) ([]docstore.Document, error) {
	filter := bson.M{}
	switch {
	case q.Collection != "":
		filter["collection"] = q.Collection
	case q.Group != "":
		filter["group"] = q.Group
	default:
		return nil, fmt.Errorf("query needs a collection or a group")
	}
	if q.Field != "" {
		filter["data."+q.Field] = q.Value
	}

	findOpts := options.Find()
	if q.OrderBy != "" {
		dir := 1
		if q.Descending {
			dir = -1
		}
		findOpts = findOpts.SetSort(bson.D{{Key: "data." + q.OrderBy, Value: dir}})
	}

	cursor, err := s.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	var recs []record
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, err
	}

	docs := make([]docstore.Document, 0, len(recs))
	for _, rec := range recs {
		docs = append(docs, docstore.Document{Path: rec.Path, Data: rec.Data})
	}
	return docs, nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	// DeletedCount of 0 means the document was already gone.
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": path})
	return err
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
