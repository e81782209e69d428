package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/jjenkins/bulletin/internal/model"
)

// MongoCollection stores documents in a MongoDB collection
type MongoCollection struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoCollection connects to uri and selects the named collection in the
// URI's default database.
func NewMongoCollection(ctx context.Context, uri, name string) (*MongoCollection, error) {
	dbName, err := defaultDatabase(uri)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	return &MongoCollection{
		client: client,
		coll:   client.Database(dbName).Collection(name),
	}, nil
}

func defaultDatabase(uri string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("invalid mongodb connection string: %w", err)
	}
	if cs.Database == "" {
		return "", fmt.Errorf("no default database defined in mongodb connection string")
	}
	return cs.Database, nil
}

// InsertMany writes all records with a single insertMany command
func (c *MongoCollection) InsertMany(ctx context.Context, records []model.CourseRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	docs, err := toDocuments(records)
	if err != nil {
		return 0, err
	}

	res, err := c.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("failed to insert %d documents: %w", len(records), err)
	}

	return len(res.InsertedIDs), nil
}

// Find retrieves up to limit documents in insertion order as relaxed extended JSON
func (c *MongoCollection) Find(ctx context.Context, limit int64) ([]model.CourseRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}).SetLimit(limit)

	cur, err := c.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get documents: %w", err)
	}
	defer cur.Close(ctx)

	var docs []model.CourseRecord
	for cur.Next(ctx) {
		doc, err := bson.MarshalExtJSON(cur.Current, false, false)
		if err != nil {
			return nil, fmt.Errorf("failed to encode document: %w", err)
		}
		docs = append(docs, model.CourseRecord(doc))
	}

	return docs, cur.Err()
}

// Count returns the number of stored documents
func (c *MongoCollection) Count(ctx context.Context) (int64, error) {
	n, err := c.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

// Close disconnects the client
func (c *MongoCollection) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// toDocuments converts raw JSON records to BSON documents field for field
func toDocuments(records []model.CourseRecord) ([]interface{}, error) {
	docs := make([]interface{}, len(records))
	for i, rec := range records {
		doc, err := decodeDocument(rec)
		if err != nil {
			return nil, fmt.Errorf("failed to convert document %d: %w", i, err)
		}
		docs[i] = doc
	}
	return docs, nil
}
