package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
)

// Mongo is a Store backed by a MongoDB collection. Documents are keyed by
// page name and upserted whole; the component list round-trips through the
// bson tags on component.Document.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures a Mongo store connection.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// NewMongo connects to MongoDB and verifies the connection with a ping.
// Database and Collection default to "pagecore" and "pages".
func NewMongo(ctx context.Context, cfg MongoConfig) (*Mongo, error) {
	if cfg.Database == "" {
		cfg.Database = "pagecore"
	}
	if cfg.Collection == "" {
		cfg.Collection = "pages"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Mongo{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Close disconnects from MongoDB.
func (m *Mongo) Close(ctx context.Context) error { return m.client.Disconnect(ctx) }

// Get implements Store.
func (m *Mongo) Get(ctx context.Context, name string) (component.Document, error) {
	var doc component.Document
	err := m.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return component.Document{}, ErrNotFound
	}
	if err != nil {
		return component.Document{}, fmt.Errorf("mongo find %s: %w", name, err)
	}
	return doc, nil
}

// Put implements Store.
func (m *Mongo) Put(ctx context.Context, doc component.Document) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := m.coll.ReplaceOne(ctx, bson.M{"name": doc.Name}, doc, opts); err != nil {
		return fmt.Errorf("mongo upsert %s: %w", doc.Name, err)
	}
	return nil
}

// Delete implements Store.
func (m *Mongo) Delete(ctx context.Context, name string) error {
	res, err := m.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("mongo delete %s: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List implements Store.
func (m *Mongo) List(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1}).SetSort(bson.M{"name": 1})
	cur, err := m.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo list: %w", err)
	}
	defer cur.Close(ctx)

	var names []string
	for cur.Next(ctx) {
		var row struct {
			Name string `bson:"name"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("mongo decode: %w", err)
		}
		names = append(names, row.Name)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongo cursor: %w", err)
	}
	return names, nil
}
