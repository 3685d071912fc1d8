package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxPhotoSize caps uploaded product photos at 1 MB.
const MaxPhotoSize = 1 << 20

// Photo holds the raw image bytes and their content type. It is stored inline
// on the product document and stripped from list responses.
type Photo struct {
	Data        []byte `bson:"data,omitempty" json:"-"`
	ContentType string `bson:"content_type,omitempty" json:"content_type,omitempty"`
}

// Product represents a catalog item
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    primitive.ObjectID `bson:"category" json:"category"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Shipping    bool               `bson:"shipping" json:"shipping"`
	Photo       Photo              `bson:"photo,omitempty" json:"photo,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
