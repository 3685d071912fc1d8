package store

import (
	"context"
	"time"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoOrders struct {
	coll     *mongo.Collection
	products *mongo.Collection
	users    *mongo.Collection
}

func (s *mongoOrders) Insert(ctx context.Context, o *models.Order) error {
	o.CreatedAt = time.Now().UTC()
	if o.Status == "" {
		o.Status = models.StatusNotProcessed
	}
	res, err := s.coll.InsertOne(ctx, o)
	if err != nil {
		return translate(err)
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoOrders) ByBuyer(ctx context.Context, buyer primitive.ObjectID) ([]models.OrderView, error) {
	return s.list(ctx, bson.M{"buyer": buyer})
}

func (s *mongoOrders) All(ctx context.Context) ([]models.OrderView, error) {
	return s.list(ctx, bson.M{})
}

func (s *mongoOrders) list(ctx context.Context, filter bson.M) ([]models.OrderView, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}

	views := make([]models.OrderView, 0, len(orders))
	for _, o := range orders {
		view, err := s.populate(ctx, o)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// populate resolves the product refs (without photo bytes) and the buyer name.
// Missing refs are skipped rather than failing the listing; products may have
// been deleted after the order was placed.
func (s *mongoOrders) populate(ctx context.Context, o models.Order) (models.OrderView, error) {
	view := models.OrderView{
		ID:        o.ID,
		Products:  []models.Product{},
		Payment:   o.Payment,
		Buyer:     models.BuyerRef{ID: o.Buyer},
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
	}

	if len(o.Products) > 0 {
		cursor, err := s.products.Find(ctx,
			bson.M{"_id": bson.M{"$in": o.Products}},
			options.Find().SetProjection(noPhoto))
		if err != nil {
			return view, translate(err)
		}
		if err := cursor.All(ctx, &view.Products); err != nil {
			return view, err
		}
	}

	var buyer models.User
	err := s.users.FindOne(ctx, bson.M{"_id": o.Buyer},
		options.FindOne().SetProjection(bson.M{"name": 1})).Decode(&buyer)
	if err == nil {
		view.Buyer.Name = buyer.Name
	} else if err != mongo.ErrNoDocuments {
		return view, err
	}
	return view, nil
}

func (s *mongoOrders) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	var o models.Order
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&o)
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}
