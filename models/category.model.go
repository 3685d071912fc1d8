package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups products. The slug is derived from the name on every
// create/update and carries a unique index.
type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name string             `bson:"name" json:"name"`
	Slug string             `bson:"slug" json:"slug"`
}
