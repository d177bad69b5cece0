package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/holisticagro/agromart/app/models"
)

// UserRepository stores users keyed by phone.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(models.CollectionUsers)}
}

// FindByPhone returns ErrNotFound when no user has phone.
func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (_ *models.User, err error) {
	defer observe(models.CollectionUsers, "find", time.Now(), &err)

	var u models.User
	if err := r.col.FindOne(ctx, bson.D{{Key: "phone", Value: phone}}).Decode(&u); err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// RoleOf returns the user's role, or "" when the user does not exist.
func (r *UserRepository) RoleOf(ctx context.Context, phone string) (_ string, err error) {
	defer observe(models.CollectionUsers, "find", time.Now(), &err)

	var u struct {
		Role string `bson:"role"`
	}
	opts := options.FindOne().SetProjection(bson.D{{Key: "role", Value: 1}})
	err = r.col.FindOne(ctx, bson.D{{Key: "phone", Value: phone}}, opts).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("users: role of %s: %w", phone, err)
	}
	return u.Role, nil
}

// Create inserts u. A phone that is already registered yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *models.User) (err error) {
	defer observe(models.CollectionUsers, "insert", time.Now(), &err)

	if _, err := r.col.InsertOne(ctx, u); err != nil {
		return translate(err)
	}
	return nil
}

// AddToCart adds line to the cart unless an identical line is present.
// Matched=0 means the user does not exist; Modified=0 with Matched=1 means
// the line was already there.
func (r *UserRepository) AddToCart(ctx context.Context, phone string, line bson.D) (_ UpdateResult, err error) {
	defer observe(models.CollectionUsers, "update", time.Now(), &err)

	res, err := r.col.UpdateOne(ctx,
		bson.D{{Key: "phone", Value: phone}},
		bson.D{{Key: "$addToSet", Value: bson.D{{Key: "cart", Value: line}}}},
	)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("users: add to cart: %w", err)
	}
	return updateResult(res), nil
}

// ClearCart replaces the cart with an empty array.
func (r *UserRepository) ClearCart(ctx context.Context, phone string) (_ UpdateResult, err error) {
	defer observe(models.CollectionUsers, "update", time.Now(), &err)

	res, err := r.col.UpdateOne(ctx,
		bson.D{{Key: "phone", Value: phone}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "cart", Value: bson.A{}}}}},
	)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("users: clear cart: %w", err)
	}
	return updateResult(res), nil
}
