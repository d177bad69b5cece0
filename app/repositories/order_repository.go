package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/holisticagro/agromart/app/models"
)

// OrderRepository stores orders as schemaless documents.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(models.CollectionOrders)}
}

// Insert stores doc and returns its generated id.
func (r *OrderRepository) Insert(ctx context.Context, doc map[string]any) (_ any, err error) {
	defer observe(models.CollectionOrders, "insert", time.Now(), &err)

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orders: insert: %w", err)
	}
	return res.InsertedID, nil
}

// All returns every order.
func (r *OrderRepository) All(ctx context.Context) ([]map[string]any, error) {
	return r.find(ctx, bson.D{})
}

// ByPhone returns the orders placed by phone.
func (r *OrderRepository) ByPhone(ctx context.Context, phone string) ([]map[string]any, error) {
	return r.find(ctx, bson.D{{Key: models.FieldUserLoginNumber, Value: phone}})
}

// UpdateStatus sets status on the order with id.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (_ UpdateResult, err error) {
	defer observe(models.CollectionOrders, "update", time.Now(), &err)

	res, err := r.col.UpdateByID(ctx, id, bson.D{{Key: "$set", Value: bson.D{{Key: models.FieldStatus, Value: status}}}})
	if err != nil {
		return UpdateResult{}, fmt.Errorf("orders: update status: %w", err)
	}
	return updateResult(res), nil
}

func (r *OrderRepository) find(ctx context.Context, filter bson.D) (_ []map[string]any, err error) {
	defer observe(models.CollectionOrders, "find", time.Now(), &err)

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("orders: find: %w", err)
	}
	out := []map[string]any{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("orders: decode: %w", err)
	}
	return out, nil
}
