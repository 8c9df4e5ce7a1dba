package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/boutique/internal/domain/models"
	"github.com/mamadbah2/boutique/internal/repository/records"
)

// MongoDBRepository implements records.Store on top of MongoDB. Document ids
// are ObjectID hex strings.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

var _ records.Store = (*MongoDBRepository)(nil)

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// List returns all documents of a collection. ObjectIDs grow with insertion
// time, so sorting on _id yields creation order.
func (r *MongoDBRepository) List(ctx context.Context, collection string) ([]models.Document, error) {
	cursor, err := r.collection(collection).Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []models.Document
	for cursor.Next(ctx) {
		doc, err := decodeDocument(cursor.Current)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", collection, err)
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", collection, err)
	}
	return docs, nil
}

// Create inserts a document and returns its generated id.
func (r *MongoDBRepository) Create(ctx context.Context, collection string, attrs models.Attributes) (string, error) {
	res, err := r.collection(collection).InsertOne(ctx, withoutID(attrs))
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	default:
		return fmt.Sprint(id), nil
	}
}

// Update sets the given attributes on an existing document.
func (r *MongoDBRepository) Update(ctx context.Context, collection, id string, attrs models.Attributes) error {
	filter, err := idFilter(id)
	if err != nil {
		return fmt.Errorf("%s/%s: %w", collection, id, records.ErrNotFound)
	}
	res, err := r.collection(collection).UpdateOne(ctx, filter, bson.M{"$set": withoutID(attrs)})
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, records.ErrNotFound)
	}
	return nil
}

// Delete removes a document; unknown ids are ignored.
func (r *MongoDBRepository) Delete(ctx context.Context, collection, id string) error {
	filter, err := idFilter(id)
	if err != nil {
		return nil
	}
	if _, err := r.collection(collection).DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func idFilter(id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return bson.M{"_id": oid}, nil
}

func withoutID(attrs models.Attributes) bson.M {
	out := bson.M{}
	for k, v := range attrs {
		if k == "_id" {
			continue
		}
		out[k] = v
	}
	return out
}

// decodeDocument turns a raw BSON document into plain attributes by going
// through relaxed extended JSON, so nested documents come back as ordinary maps
// and numbers as float64, the same shape the other stores produce.
func decodeDocument(raw bson.Raw) (models.Document, error) {
	var doc models.Document

	idValue, err := raw.LookupErr("_id")
	if err != nil {
		return doc, errors.New("document without _id")
	}
	if oid, ok := idValue.ObjectIDOK(); ok {
		doc.ID = oid.Hex()
	} else if s, ok := idValue.StringValueOK(); ok {
		doc.ID = s
	} else {
		doc.ID = idValue.String()
	}

	ext, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return doc, err
	}
	attrs := models.Attributes{}
	if err := json.Unmarshal(ext, &attrs); err != nil {
		return doc, err
	}
	delete(attrs, "_id")
	doc.Attributes = attrs
	return doc, nil
}
