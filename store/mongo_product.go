package store

import (
	"context"
	"regexp"
	"time"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoProducts struct {
	coll *mongo.Collection
}

func (s *mongoProducts) Insert(ctx context.Context, p *models.Product) error {
	p.CreatedAt = time.Now().UTC()
	res, err := s.coll.InsertOne(ctx, p)
	if err != nil {
		return translate(err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoProducts) Update(ctx context.Context, id primitive.ObjectID, fields ProductFields) (*models.Product, error) {
	set := bson.M{
		"name":        fields.Name,
		"slug":        fields.Slug,
		"description": fields.Description,
		"price":       fields.Price,
		"category":    fields.Category,
		"quantity":    fields.Quantity,
		"shipping":    fields.Shipping,
	}
	if fields.Photo != nil {
		set["photo"] = fields.Photo
	}

	var p models.Product
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(noPhoto),
	).Decode(&p)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *mongoProducts) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Product, error) {
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *mongoProducts) Latest(ctx context.Context, limit int64) ([]models.Product, error) {
	opts := options.Find().
		SetProjection(noPhoto).
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit)
	return s.find(ctx, bson.M{}, opts)
}

func (s *mongoProducts) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	err := s.coll.FindOne(ctx, bson.M{"slug": slug},
		options.FindOne().SetProjection(noPhoto)).Decode(&p)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *mongoProducts) PhotoByID(ctx context.Context, id primitive.ObjectID) (*models.Photo, error) {
	var p models.Product
	err := s.coll.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"photo": 1})).Decode(&p)
	if err != nil {
		return nil, translate(err)
	}
	if len(p.Photo.Data) == 0 {
		return nil, ErrNotFound
	}
	return &p.Photo, nil
}

func (s *mongoProducts) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoProducts) Filter(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	filter := bson.M{}
	if len(f.Categories) > 0 {
		filter["category"] = bson.M{"$in": f.Categories}
	}
	if f.PriceMin != nil || f.PriceMax != nil {
		price := bson.M{}
		if f.PriceMin != nil {
			price["$gte"] = *f.PriceMin
		}
		if f.PriceMax != nil {
			price["$lte"] = *f.PriceMax
		}
		filter["price"] = price
	}
	return s.find(ctx, filter, options.Find().SetProjection(noPhoto))
}

func (s *mongoProducts) Count(ctx context.Context) (int64, error) {
	return s.coll.EstimatedDocumentCount(ctx)
}

func (s *mongoProducts) Page(ctx context.Context, page, perPage int64) ([]models.Product, error) {
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetProjection(noPhoto).
		SetSort(bson.M{"created_at": -1}).
		SetSkip((page - 1) * perPage).
		SetLimit(perPage)
	return s.find(ctx, bson.M{}, opts)
}

func (s *mongoProducts) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"description": pattern},
	}}
	return s.find(ctx, filter, options.Find().SetProjection(noPhoto))
}

func (s *mongoProducts) Related(ctx context.Context, productID, categoryID primitive.ObjectID, limit int64) ([]models.Product, error) {
	filter := bson.M{
		"category": categoryID,
		"_id":      bson.M{"$ne": productID},
	}
	return s.find(ctx, filter, options.Find().SetProjection(noPhoto).SetLimit(limit))
}

func (s *mongoProducts) ByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]models.Product, error) {
	return s.find(ctx, bson.M{"category": categoryID}, options.Find().SetProjection(noPhoto))
}
