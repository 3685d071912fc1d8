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

type mongoUsers struct {
	coll *mongo.Collection
}

func (s *mongoUsers) Insert(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	res, err := s.coll.InsertOne(ctx, u)
	if err != nil {
		return translate(err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *mongoUsers) FindByEmailAndAnswer(ctx context.Context, email, answer string) (*models.User, error) {
	var u models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email, "answer": answer}).Decode(&u)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *mongoUsers) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Password != nil {
		set["password"] = *upd.Password
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}

	var u models.User
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&u)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *mongoUsers) SetPassword(ctx context.Context, id primitive.ObjectID, hashed string) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"password": hashed, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
