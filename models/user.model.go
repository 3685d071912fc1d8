package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Ordinary users register with RoleUser; admin accounts are
// promoted directly in the database.
const (
	RoleUser  = 0
	RoleAdmin = 1
)

// User represents a registered account
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	Phone     string             `bson:"phone" json:"phone"`
	Address   string             `bson:"address" json:"address"`
	Answer    string             `bson:"answer" json:"-"` // security answer for password reset
	Role      int                `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Summary returns the fields safe to echo back to clients after login.
func (u User) Summary() map[string]interface{} {
	return map[string]interface{}{
		"id":      u.ID,
		"name":    u.Name,
		"email":   u.Email,
		"phone":   u.Phone,
		"address": u.Address,
		"role":    u.Role,
	}
}
