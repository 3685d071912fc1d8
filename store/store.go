// Package store holds the typed persistence accessors for the four record
// kinds. Controllers depend on the interfaces; main wires the Mongo-backed
// implementations and tests wire the in-memory ones from testing.go.
package store

import (
	"context"
	"errors"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicate is returned when an insert or update collides with a
	// unique index (user email, category slug).
	ErrDuplicate = errors.New("store: duplicate key")
)

// ProfileUpdate carries the optional fields of a profile update. Nil fields
// keep their stored values.
type ProfileUpdate struct {
	Name     *string
	Password *string
	Phone    *string
	Address  *string
}

// ProductFields is the writable portion of a product document.
type ProductFields struct {
	Name        string
	Slug        string
	Description string
	Price       float64
	Category    primitive.ObjectID
	Quantity    int
	Shipping    bool
	Photo       *models.Photo // nil keeps the stored photo on update
}

// ProductFilter is a conjunctive catalog filter: an exact-match category set
// and an inclusive price range. Empty slice / nil range means "any".
type ProductFilter struct {
	Categories []primitive.ObjectID
	PriceMin   *float64
	PriceMax   *float64
}

// UserStore accesses the users collection.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailAndAnswer(ctx context.Context, email, answer string) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.User, error)
	SetPassword(ctx context.Context, id primitive.ObjectID, hashed string) error
}

// CategoryStore accesses the categories collection.
type CategoryStore interface {
	Insert(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, id primitive.ObjectID, name, slug string) (*models.Category, error)
	All(ctx context.Context) ([]models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductStore accesses the products collection. Listing methods omit photo
// bytes; PhotoByID is the only accessor that loads them.
type ProductStore interface {
	Insert(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, fields ProductFields) (*models.Product, error)
	Latest(ctx context.Context, limit int64) ([]models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	PhotoByID(ctx context.Context, id primitive.ObjectID) (*models.Photo, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Filter(ctx context.Context, f ProductFilter) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
	Page(ctx context.Context, page, perPage int64) ([]models.Product, error)
	Search(ctx context.Context, keyword string) ([]models.Product, error)
	Related(ctx context.Context, productID, categoryID primitive.ObjectID, limit int64) ([]models.Product, error)
	ByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]models.Product, error)
}

// OrderStore accesses the orders collection. Listing methods return populated
// views: product summaries without photos and the buyer name.
type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) error
	ByBuyer(ctx context.Context, buyer primitive.ObjectID) ([]models.OrderView, error)
	All(ctx context.Context) ([]models.OrderView, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error)
}

// Store bundles the four accessors for wiring.
type Store struct {
	Users      UserStore
	Categories CategoryStore
	Products   ProductStore
	Orders     OrderStore
}
