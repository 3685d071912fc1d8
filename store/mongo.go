package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongo builds the Mongo-backed store over the given database.
func NewMongo(db *mongo.Database) *Store {
	return &Store{
		Users:      &mongoUsers{coll: db.Collection("users")},
		Categories: &mongoCategories{coll: db.Collection("categories")},
		Products:   &mongoProducts{coll: db.Collection("products")},
		Orders: &mongoOrders{
			coll:     db.Collection("orders"),
			products: db.Collection("products"),
			users:    db.Collection("users"),
		},
	}
}

// EnsureIndexes creates the unique indexes the stores rely on instead of
// read-then-write uniqueness checks.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = db.Collection("categories").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// translate maps driver errors onto the store sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// noPhoto excludes the raw image bytes from product projections.
var noPhoto = bson.M{"photo.data": 0}
