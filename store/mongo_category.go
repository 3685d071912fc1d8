package store

import (
	"context"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCategories struct {
	coll *mongo.Collection
}

func (s *mongoCategories) Insert(ctx context.Context, c *models.Category) error {
	res, err := s.coll.InsertOne(ctx, c)
	if err != nil {
		return translate(err)
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoCategories) Update(ctx context.Context, id primitive.ObjectID, name, slug string) (*models.Category, error) {
	var c models.Category
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name, "slug": slug}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *mongoCategories) All(ctx context.Context) ([]models.Category, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *mongoCategories) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	err := s.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&c)
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *mongoCategories) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
