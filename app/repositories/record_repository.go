package repositories

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/holisticagro/agromart/app/models"
)

// RecordRepository is passthrough CRUD over the schemaless catalog
// collections. The collection is chosen per call.
type RecordRepository struct {
	db *mongo.Database
}

func NewRecordRepository(db *mongo.Database) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) All(ctx context.Context, collection string) ([]models.Record, error) {
	return r.find(ctx, collection, bson.D{})
}

// FindByID returns ErrNotFound when no record has id.
func (r *RecordRepository) FindByID(ctx context.Context, collection string, id primitive.ObjectID) (_ models.Record, err error) {
	defer observe(collection, "find", time.Now(), &err)

	var rec models.Record
	if err := r.db.Collection(collection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&rec); err != nil {
		return nil, translate(err)
	}
	return rec, nil
}

func (r *RecordRepository) FindByIDs(ctx context.Context, collection string, ids []primitive.ObjectID) ([]models.Record, error) {
	return r.find(ctx, collection, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
}

// FindBy returns records whose field equals value.
func (r *RecordRepository) FindBy(ctx context.Context, collection, field string, value any) ([]models.Record, error) {
	return r.find(ctx, collection, bson.D{{Key: field, Value: value}})
}

// Search returns records whose field contains term, case-insensitively.
// term is matched literally.
func (r *RecordRepository) Search(ctx context.Context, collection, field, term string) ([]models.Record, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	return r.find(ctx, collection, bson.D{{Key: field, Value: pattern}})
}

func (r *RecordRepository) Insert(ctx context.Context, collection string, rec models.Record) (_ any, err error) {
	defer observe(collection, "insert", time.Now(), &err)

	res, err := r.db.Collection(collection).InsertOne(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("%s: insert: %w", collection, err)
	}
	return res.InsertedID, nil
}

// Update applies $set with fields to the record with id.
func (r *RecordRepository) Update(ctx context.Context, collection string, id primitive.ObjectID, fields models.Record) (_ UpdateResult, err error) {
	defer observe(collection, "update", time.Now(), &err)

	res, err := r.db.Collection(collection).UpdateByID(ctx, id, bson.D{{Key: "$set", Value: fields}})
	if err != nil {
		return UpdateResult{}, fmt.Errorf("%s: update: %w", collection, err)
	}
	return updateResult(res), nil
}

// Delete returns the number of records removed.
func (r *RecordRepository) Delete(ctx context.Context, collection string, id primitive.ObjectID) (_ int64, err error) {
	defer observe(collection, "delete", time.Now(), &err)

	res, err := r.db.Collection(collection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return 0, fmt.Errorf("%s: delete: %w", collection, err)
	}
	return res.DeletedCount, nil
}

func (r *RecordRepository) find(ctx context.Context, collection string, filter bson.D) (_ []models.Record, err error) {
	defer observe(collection, "find", time.Now(), &err)

	cur, err := r.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", collection, err)
	}
	out := []models.Record{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", collection, err)
	}
	return out, nil
}
