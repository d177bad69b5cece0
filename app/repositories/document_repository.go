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

// DocumentRepository stores upload metadata.
type DocumentRepository struct {
	col *mongo.Collection
}

func NewDocumentRepository(db *mongo.Database) *DocumentRepository {
	return &DocumentRepository{col: db.Collection(models.CollectionDocuments)}
}

func (r *DocumentRepository) Insert(ctx context.Context, d *models.Document) (_ primitive.ObjectID, err error) {
	defer observe(models.CollectionDocuments, "insert", time.Now(), &err)

	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return primitive.NilObjectID, fmt.Errorf("documents: insert: %w", err)
	}
	return d.ID, nil
}

// FindByID returns ErrNotFound when no record has id.
func (r *DocumentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (_ *models.Document, err error) {
	defer observe(models.CollectionDocuments, "find", time.Now(), &err)

	var d models.Document
	if err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&d); err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

// DeleteByID returns the number of records removed.
func (r *DocumentRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (_ int64, err error) {
	defer observe(models.CollectionDocuments, "delete", time.Now(), &err)

	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return 0, fmt.Errorf("documents: delete: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *DocumentRepository) All(ctx context.Context) (_ []models.Document, err error) {
	defer observe(models.CollectionDocuments, "find", time.Now(), &err)

	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("documents: find: %w", err)
	}
	out := []models.Document{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("documents: decode: %w", err)
	}
	return out, nil
}
