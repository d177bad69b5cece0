// Package services holds the workflows behind each endpoint. Services take
// the narrow store interfaces below, return *apperr.Error for every
// failure a caller should see, and never touch HTTP.
package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/holisticagro/agromart/app/models"
	"github.com/holisticagro/agromart/app/repositories"
	"github.com/holisticagro/agromart/pkg/apperr"
)

// UserStore is the part of the user repository the user registry needs.
type UserStore interface {
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

// CartStore adds cart lines.
type CartStore interface {
	AddToCart(ctx context.Context, phone string, line bson.D) (repositories.UpdateResult, error)
}

// CartClearer empties a cart after an order is placed.
type CartClearer interface {
	ClearCart(ctx context.Context, phone string) (repositories.UpdateResult, error)
}

// OrderStore persists orders.
type OrderStore interface {
	Insert(ctx context.Context, doc map[string]any) (any, error)
	All(ctx context.Context) ([]map[string]any, error)
	ByPhone(ctx context.Context, phone string) ([]map[string]any, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (repositories.UpdateResult, error)
}

// DocumentStore persists upload metadata.
type DocumentStore interface {
	Insert(ctx context.Context, d *models.Document) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Document, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
	All(ctx context.Context) ([]models.Document, error)
}

// RecordStore is schemaless CRUD over the catalog collections.
type RecordStore interface {
	All(ctx context.Context, collection string) ([]models.Record, error)
	FindByID(ctx context.Context, collection string, id primitive.ObjectID) (models.Record, error)
	FindByIDs(ctx context.Context, collection string, ids []primitive.ObjectID) ([]models.Record, error)
	FindBy(ctx context.Context, collection, field string, value any) ([]models.Record, error)
	Search(ctx context.Context, collection, field, term string) ([]models.Record, error)
	Insert(ctx context.Context, collection string, rec models.Record) (any, error)
	Update(ctx context.Context, collection string, id primitive.ObjectID, fields models.Record) (repositories.UpdateResult, error)
	Delete(ctx context.Context, collection string, id primitive.ObjectID) (int64, error)
}

// Clock returns the current time. Services default to time.Now.
type Clock func() time.Time

// Inserted is the body returned after an insert.
type Inserted struct {
	InsertedID any `json:"insertedId"`
}

// Deleted is the body returned after a delete.
type Deleted struct {
	DeletedCount int64 `json:"deletedCount"`
}

// ParseID converts a hex ObjectID from a path segment.
func ParseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperr.Wrap(apperr.CodeValidation, err, "invalid id")
	}
	return id, nil
}
