package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/holisticagro/agromart/app/models"
	"github.com/holisticagro/agromart/app/repositories"
	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/logger"
)

// Product fields the catalog queries by.
const (
	ProductTitleField    = "title"
	ProductCategoryField = "category"
)

// CatalogService is passthrough CRUD over the reference collections.
type CatalogService struct {
	records RecordStore
	allowed map[string]bool
}

func NewCatalogService(records RecordStore) *CatalogService {
	allowed := make(map[string]bool, len(models.CatalogCollections))
	for _, c := range models.CatalogCollections {
		allowed[c] = true
	}
	return &CatalogService{records: records, allowed: allowed}
}

func (s *CatalogService) check(collection string) error {
	if !s.allowed[collection] {
		return apperr.Store(fmt.Errorf("catalog: unknown collection %q", collection), "")
	}
	return nil
}

func (s *CatalogService) List(ctx context.Context, collection string) ([]models.Record, error) {
	if err := s.check(collection); err != nil {
		return nil, err
	}
	recs, err := s.records.All(ctx, collection)
	if err != nil {
		return nil, apperr.Store(err, fmt.Sprintf("Failed to fetch %s", collection))
	}
	return recs, nil
}

// Find returns one record by hex id.
func (s *CatalogService) Find(ctx context.Context, collection, rawID string) (models.Record, error) {
	if err := s.check(collection); err != nil {
		return nil, err
	}
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	rec, err := s.records.FindByID(ctx, collection, id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil, apperr.NotFound("Record not found")
	case err != nil:
		return nil, apperr.Store(err, "")
	}
	return rec, nil
}

// SearchProducts matches title as a literal, case-insensitive substring.
func (s *CatalogService) SearchProducts(ctx context.Context, title string) ([]models.Record, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperr.Validation("Title query is required")
	}
	recs, err := s.records.Search(ctx, models.CollectionProducts, ProductTitleField, title)
	if err != nil {
		return nil, apperr.Store(err, "")
	}
	return recs, nil
}

func (s *CatalogService) ProductsByCategory(ctx context.Context, category string) ([]models.Record, error) {
	recs, err := s.records.FindBy(ctx, models.CollectionProducts, ProductCategoryField, category)
	if err != nil {
		return nil, apperr.Store(err, "")
	}
	return recs, nil
}

// ProductsByIDs answers POST /products-by-ids. body["ids"] must be an
// array of hex ObjectIDs.
func (s *CatalogService) ProductsByIDs(ctx context.Context, body map[string]any) ([]models.Record, error) {
	raw, ok := body["ids"].([]any)
	if !ok {
		return nil, apperr.Validation("ids must be an array")
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for i, v := range raw {
		hex, ok := v.(string)
		if !ok {
			return nil, apperr.Validation(fmt.Sprintf("ids[%d] must be a string", i))
		}
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeValidation, err, fmt.Sprintf("ids[%d] is not a valid id", i))
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return []models.Record{}, nil
	}
	recs, err := s.records.FindByIDs(ctx, models.CollectionProducts, ids)
	if err != nil {
		return nil, apperr.Store(err, "Failed to fetch products by IDs")
	}
	return recs, nil
}

// Insert stores rec with a server-generated id.
func (s *CatalogService) Insert(ctx context.Context, collection string, rec models.Record) (*Inserted, error) {
	if err := s.check(collection); err != nil {
		return nil, err
	}
	rec = withoutID(rec)
	if len(rec) == 0 {
		return nil, apperr.Validation("request body must be a non-empty JSON object")
	}
	id, err := s.records.Insert(ctx, collection, rec)
	if err != nil {
		return nil, apperr.Store(err, "")
	}
	logger.WithCtx(ctx).Info("record inserted", "collection", collection, "id", id)
	return &Inserted{InsertedID: id}, nil
}

// Update sets fields on the record with the hex id. _id is never changed.
func (s *CatalogService) Update(ctx context.Context, collection, rawID string, fields models.Record) (repositories.UpdateResult, error) {
	if err := s.check(collection); err != nil {
		return repositories.UpdateResult{}, err
	}
	id, err := ParseID(rawID)
	if err != nil {
		return repositories.UpdateResult{}, err
	}
	fields = withoutID(fields)
	if len(fields) == 0 {
		return repositories.UpdateResult{}, apperr.Validation("no fields to update")
	}
	res, err := s.records.Update(ctx, collection, id, fields)
	if err != nil {
		return repositories.UpdateResult{}, apperr.Store(err, "")
	}
	if res.Matched == 0 {
		return repositories.UpdateResult{}, apperr.NotFound("Record not found")
	}
	return res, nil
}

func (s *CatalogService) Delete(ctx context.Context, collection, rawID string) (*Deleted, error) {
	if err := s.check(collection); err != nil {
		return nil, err
	}
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	n, err := s.records.Delete(ctx, collection, id)
	if err != nil {
		return nil, apperr.Store(err, "")
	}
	if n == 0 {
		return nil, apperr.NotFound("Record not found")
	}
	logger.WithCtx(ctx).Info("record deleted", "collection", collection, "id", rawID)
	return &Deleted{DeletedCount: n}, nil
}

func withoutID(rec models.Record) models.Record {
	if _, ok := rec["_id"]; !ok {
		return rec
	}
	out := make(models.Record, len(rec))
	for k, v := range rec {
		if k != "_id" {
			out[k] = v
		}
	}
	return out
}
