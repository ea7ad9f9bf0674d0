// Package store persists analyzed circuits to MongoDB.
//
// The archive is an optional collaborator of the HTTP API: when a Mongo
// URI is configured, analyzed circuits are stored as documents and can
// be fetched back by ID. The CLI never touches it.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/critpath/pkg/errors"
	"github.com/matzehuels/critpath/pkg/graph"
)

const collectionName = "circuits"

// Record is an archived circuit analysis.
type Record struct {
	ID        string         `bson:"_id" json:"id"`
	Name      string         `bson:"name" json:"name"`
	Document  graph.Document `bson:"document" json:"document"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
}

// Archive stores and retrieves circuit analysis records.
type Archive interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, limit int64) ([]Record, error)
	Close(ctx context.Context) error
}

// Mongo is the MongoDB-backed archive.
type Mongo struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongo connects to MongoDB and verifies the connection.
func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &Mongo{
		client: client,
		col:    client.Database(database).Collection(collectionName),
	}, nil
}

// Save archives a record. The caller supplies the ID.
func (s *Mongo) Save(ctx context.Context, rec Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.col.InsertOne(ctx, rec)
	return err
}

// Get fetches a record by ID.
func (s *Mongo) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeNotFound, "circuit %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns the most recently archived records, newest first.
func (s *Mongo) List(ctx context.Context, limit int64) ([]Record, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Close disconnects from MongoDB.
func (s *Mongo) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Archive = (*Mongo)(nil)
