package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/holisticagro/agromart/pkg/rbac"
)

// User is one registered customer or admin, keyed by phone number.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"      json:"_id,omitempty"`
	Phone     string             `bson:"phone"              json:"phone"`
	Name      string             `bson:"name,omitempty"     json:"name,omitempty"`
	Email     string             `bson:"email,omitempty"    json:"email,omitempty"`
	PhotoURL  string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role      string             `bson:"role"               json:"role"`
	Cart      []map[string]any   `bson:"cart"               json:"cart"`
	CreatedAt time.Time          `bson:"createdAt"          json:"createdAt"`
}

// NewUser builds a customer with an empty cart.
func NewUser(phone, name, email, photoURL string, now time.Time) *User {
	return &User{
		Phone:     phone,
		Name:      name,
		Email:     email,
		PhotoURL:  photoURL,
		Role:      rbac.RoleCustomer,
		Cart:      []map[string]any{},
		CreatedAt: now.UTC(),
	}
}
